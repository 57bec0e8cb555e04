// Package config manages flow's per-user configuration file
// ($HOME/.flow-cli/config.yaml). A Config is loaded once per command
// invocation and passed explicitly to whatever needs it.
package config

import (
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"slices"
)

// FlutterConfig holds Flutter SDK settings.
type FlutterConfig struct {
	SDKPath string `koanf:"sdk_path" yaml:"sdk_path"`
	Channel string `koanf:"channel" yaml:"channel"`
}

// AndroidConfig holds Android SDK settings.
type AndroidConfig struct {
	SDKPath           string `koanf:"sdk_path" yaml:"sdk_path"`
	BuildToolsVersion string `koanf:"build_tools_version" yaml:"build_tools_version"`
}

// IOSConfig holds Xcode settings.
type IOSConfig struct {
	XcodePath string `koanf:"xcode_path" yaml:"xcode_path"`
	TeamID    string `koanf:"team_id" yaml:"team_id"`
}

// GeneralConfig holds behaviour toggles.
type GeneralConfig struct {
	DefaultFlavor string `koanf:"default_flavor" yaml:"default_flavor"`
	AutoPubGet    bool   `koanf:"auto_pub_get" yaml:"auto_pub_get"`
	VerboseOutput bool   `koanf:"verbose_output" yaml:"verbose_output"`
	ColorOutput   bool   `koanf:"color_output" yaml:"color_output"`
	Theme         string `koanf:"theme" yaml:"theme"`
}

// Config is the main configuration structure for flow.
type Config struct {
	Flutter        FlutterConfig     `koanf:"flutter" yaml:"flutter"`
	Android        AndroidConfig     `koanf:"android" yaml:"android"`
	IOS            IOSConfig         `koanf:"ios" yaml:"ios"`
	General        GeneralConfig     `koanf:"general" yaml:"general"`
	Aliases        map[string]string `koanf:"aliases" yaml:"aliases"`
	RecentProjects []string          `koanf:"recent_projects" yaml:"recent_projects"`

	// path is the file the config was loaded from and is saved to.
	path string

	// overrides holds keys whose loaded value came from an env var.
	overrides map[string]override
}

// override records a key's stored value next to the env value replacing it.
type override struct {
	stored string
	env    string
}

// EnvConfigPath overrides the config file location.
const EnvConfigPath = "FLOW_CONFIG"

// maxRecentProjects bounds the recent_projects list.
const maxRecentProjects = 10

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Flutter: FlutterConfig{Channel: "stable"},
		General: GeneralConfig{
			AutoPubGet:  true,
			ColorOutput: true,
			Theme:       "flow",
		},
		Aliases:        map[string]string{},
		RecentProjects: []string{},
	}
}

// Path returns the file backing this config.
func (c *Config) Path() string { return c.path }

// SetPath changes the file backing this config.
func (c *Config) SetPath(path string) { c.path = path }

// DefaultPath returns $FLOW_CONFIG or $HOME/.flow-cli/config.yaml.
func DefaultPath() (string, error) {
	if p := os.Getenv(EnvConfigPath); p != "" {
		return filepath.Clean(p), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve home directory: %w", err)
	}
	return filepath.Join(home, ".flow-cli", "config.yaml"), nil
}

// Clone returns a deep copy of c.
func (c *Config) Clone() *Config {
	out := *c
	out.Aliases = maps.Clone(c.Aliases)
	out.RecentProjects = slices.Clone(c.RecentProjects)
	out.overrides = maps.Clone(c.overrides)
	return &out
}

// Persisted returns the configuration as it should be written to disk:
// keys still holding an env override value get their stored value back.
func (c *Config) Persisted() *Config {
	out := c.Clone()
	out.overrides = nil
	for key, o := range c.overrides {
		if v, _ := c.Get(key); v == o.env {
			_ = out.Set(key, o.stored)
		}
	}
	return out
}

// AddRecentProject moves root to the front of RecentProjects.
func (c *Config) AddRecentProject(root string) {
	list := []string{root}
	for _, p := range c.RecentProjects {
		if p != root {
			list = append(list, p)
		}
	}
	if len(list) > maxRecentProjects {
		list = list[:maxRecentProjects]
	}
	c.RecentProjects = list
}
