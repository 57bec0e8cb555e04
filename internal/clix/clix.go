// Package clix holds the dependencies and helpers shared by flow commands.
package clix

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/flow-cli/flow/internal/config"
	"github.com/flow-cli/flow/internal/core"
	"github.com/flow-cli/flow/internal/project"
	"github.com/flow-cli/flow/internal/toolchain"
)

// Env carries everything a command needs. It is built once in main and
// passed explicitly; root flags are copied into it by the root Before hook.
type Env struct {
	FS        core.FileSystem
	Config    *config.Config
	Toolchain *toolchain.Toolchain
	Logger    *slog.Logger

	// Level controls Logger's handler; nil when the level is fixed.
	Level *slog.LevelVar

	// StartDir is where project discovery begins ("" = working directory).
	StartDir string
	Verbose  bool

	// Getwd is used by the locator when StartDir is empty.
	Getwd func() (string, error)
}

// NewEnv creates an Env over real OS resources.
func NewEnv(cfg *config.Config, logger *slog.Logger) *Env {
	if logger == nil {
		logger = slog.Default()
	}
	return &Env{
		FS:        core.NewOSFileSystem(),
		Config:    cfg,
		Toolchain: toolchain.New(toolchain.NewExecRunner(logger)),
		Logger:    logger,
		Getwd:     os.Getwd,
	}
}

// ErrNoProject is reported when discovery finds no Flutter project. It
// matches project.ErrNotFound with errors.Is.
var ErrNoProject error = noProjectError{}

type noProjectError struct{}

func (noProjectError) Error() string {
	return "No Flutter project found. Run flow inside a Flutter project or pass --project <dir>"
}

func (noProjectError) Unwrap() error { return project.ErrNotFound }

// RequireProject locates the enclosing Flutter project or fails with
// ErrNoProject.
func (e *Env) RequireProject() (*project.Project, error) {
	loc := project.NewLocator(e.FS).WithLogger(e.Logger)
	if e.Getwd != nil {
		loc = loc.WithGetwd(e.Getwd)
	}
	p, err := loc.Find(e.StartDir)
	if err != nil {
		if errors.Is(err, project.ErrNotFound) {
			return nil, ErrNoProject
		}
		return nil, err
	}
	e.Logger.Debug("using project", "root", p.Root(), "name", p.Name())
	return p, nil
}

// RememberProject records p in the recent projects list. Failures are
// logged, never fatal.
func (e *Env) RememberProject(p *project.Project) {
	if e.Config == nil || e.Config.Path() == "" {
		return
	}
	if len(e.Config.RecentProjects) > 0 && e.Config.RecentProjects[0] == p.Root() {
		return
	}
	e.Config.AddRecentProject(p.Root())
	if err := config.Save(e.Config); err != nil {
		e.Logger.Debug("could not update recent projects", "error", err)
	}
}

// DefaultFlavor returns the configured default flavor, if any.
func (e *Env) DefaultFlavor() string {
	if e.Config == nil {
		return ""
	}
	return e.Config.General.DefaultFlavor
}

// OutputFormat selects how a command renders its result.
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
)

// ParseOutputFormat validates a --format value.
func ParseOutputFormat(s string) (OutputFormat, error) {
	switch OutputFormat(strings.ToLower(s)) {
	case "", FormatText:
		return FormatText, nil
	case FormatJSON:
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("invalid format %q: expected text or json", s)
	}
}

// WriteJSON writes v as indented JSON followed by a newline.
func WriteJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
