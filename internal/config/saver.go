package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/flow-cli/flow/internal/core"
	"github.com/goccy/go-yaml"
)

// Marshaler turns a value into file bytes.
type Marshaler interface {
	Marshal(v any) ([]byte, error)
}

// FileWriter writes file contents.
type FileWriter interface {
	MkdirAll(path string, perm os.FileMode) error
	WriteFile(name string, data []byte, perm os.FileMode) error
}

// Saver persists a Config with injected dependencies.
type Saver struct {
	marshaler Marshaler
	writer    FileWriter
}

// yamlMarshaler marshals with 2-space indentation for maps and sequences.
type yamlMarshaler struct{}

func (m *yamlMarshaler) Marshal(v any) ([]byte, error) {
	return yaml.MarshalWithOptions(v, yaml.Indent(2), yaml.IndentSequence(true))
}

// osFileWriter is the production FileWriter.
type osFileWriter struct{}

func (w *osFileWriter) MkdirAll(path string, perm os.FileMode) error {
	return os.MkdirAll(path, perm)
}

func (w *osFileWriter) WriteFile(name string, data []byte, perm os.FileMode) error {
	return os.WriteFile(name, data, perm)
}

// NewSaver creates a Saver. Nil dependencies fall back to production defaults.
func NewSaver(marshaler Marshaler, writer FileWriter) *Saver {
	if marshaler == nil {
		marshaler = &yamlMarshaler{}
	}
	if writer == nil {
		writer = &osFileWriter{}
	}
	return &Saver{marshaler: marshaler, writer: writer}
}

// Save writes cfg to cfg.Path().
func (s *Saver) Save(cfg *Config) error {
	return s.SaveTo(cfg, cfg.path)
}

// SaveTo writes cfg to path, creating its directory. Values that only came
// from env overrides are not written.
func (s *Saver) SaveTo(cfg *Config, path string) error {
	if path == "" {
		return fmt.Errorf("config path is empty")
	}

	data, err := s.marshaler.Marshal(cfg.Persisted())
	if err != nil {
		return fmt.Errorf("failed to marshal config to %q: %w", path, err)
	}

	if err := s.writer.MkdirAll(filepath.Dir(path), core.PermConfigDir); err != nil {
		return fmt.Errorf("failed to create config directory for %q: %w", path, err)
	}
	if err := s.writer.WriteFile(path, data, core.PermOwnerRW); err != nil {
		return fmt.Errorf("failed to write config to %q: %w", path, err)
	}
	return nil
}

var defaultSaver = NewSaver(nil, nil)

// Save writes cfg to its backing file with the default Saver.
func Save(cfg *Config) error {
	return defaultSaver.Save(cfg)
}

// EnsureFile writes the default configuration to path if no file exists.
// It reports whether a file was created.
func EnsureFile(path string) (bool, error) {
	if _, err := os.Stat(path); err == nil {
		return false, nil
	} else if !os.IsNotExist(err) {
		return false, err
	}
	cfg := Default()
	cfg.path = path
	if err := Save(cfg); err != nil {
		return false, err
	}
	return true, nil
}
