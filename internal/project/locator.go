package project

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/flow-cli/flow/internal/core"
	"github.com/flow-cli/flow/internal/pubspec"
)

// ErrNotFound is returned when no valid project encloses the start directory.
var ErrNotFound = errors.New("no Flutter project found")

// Locator finds the nearest enclosing Flutter project.
type Locator struct {
	fs     core.FileSystem
	getwd  func() (string, error)
	logger *slog.Logger
}

// NewLocator creates a Locator over fs.
func NewLocator(fs core.FileSystem) *Locator {
	return &Locator{fs: fs, getwd: os.Getwd, logger: slog.Default()}
}

// WithGetwd replaces the working-directory lookup used for an empty start.
func (l *Locator) WithGetwd(getwd func() (string, error)) *Locator {
	l.getwd = getwd
	return l
}

// WithLogger sets the logger used for skipped manifests.
func (l *Locator) WithLogger(logger *slog.Logger) *Locator {
	if logger != nil {
		l.logger = logger
	}
	return l
}

// Find walks upward from start, which defaults to the working directory,
// and returns the first directory holding a valid pubspec.yaml. A manifest
// that is missing the marker key or fails to parse is skipped. The walk
// stops once the current directory is its own parent; the filesystem root
// itself is not checked specially.
func (l *Locator) Find(start string) (*Project, error) {
	if start == "" {
		wd, err := l.getwd()
		if err != nil {
			return nil, errors.Join(ErrNotFound, err)
		}
		start = wd
	}

	current, err := filepath.Abs(start)
	if err != nil {
		return nil, errors.Join(ErrNotFound, err)
	}
	if resolved, err := filepath.EvalSymlinks(current); err == nil {
		current = resolved
	}

	ctx := context.Background()
	for {
		parent := filepath.Dir(current)
		if parent == current {
			return nil, ErrNotFound
		}

		if core.Exists(ctx, l.fs, filepath.Join(current, pubspec.Filename)) {
			p := New(l.fs, current)
			if p.IsValid() {
				return p, nil
			}
			l.logger.Debug("skipping invalid manifest",
				"path", p.ManifestPath(),
				"status", p.Manifest().Status().String())
		}

		current = parent
	}
}

// Find is a convenience wrapper around NewLocator(fs).Find(start).
func Find(fs core.FileSystem, start string) (*Project, error) {
	return NewLocator(fs).Find(start)
}
