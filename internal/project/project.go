package project

import (
	"context"
	"path/filepath"
	"slices"

	"github.com/flow-cli/flow/internal/core"
	"github.com/flow-cli/flow/internal/pubspec"
)

// MarkerKey is the top-level pubspec key identifying a Flutter project.
const MarkerKey = "flutter"

// UnsetVersion is returned by Version when the manifest declares none.
const UnsetVersion = "unset"

// Project is a read-only view over a Flutter project rooted at an
// absolute directory. Only the raw manifest is cached; every derived
// attribute is recomputed on each call.
type Project struct {
	fs       core.FileSystem
	root     string
	manifest *pubspec.Manifest
}

// New creates a Project for root. The manifest is not read until needed.
func New(fs core.FileSystem, root string) *Project {
	if abs, err := filepath.Abs(root); err == nil {
		root = abs
	}
	return &Project{fs: fs, root: root}
}

// Root returns the absolute project directory.
func (p *Project) Root() string { return p.root }

// ManifestPath returns the path of pubspec.yaml.
func (p *Project) ManifestPath() string {
	return filepath.Join(p.root, pubspec.Filename)
}

// Path joins elem onto the project root.
func (p *Project) Path(elem ...string) string {
	return filepath.Join(append([]string{p.root}, elem...)...)
}

// Manifest returns the parsed manifest, loading it on first use.
func (p *Project) Manifest() *pubspec.Manifest {
	if p.manifest == nil {
		p.manifest = pubspec.Load(context.Background(), p.fs, p.ManifestPath())
	}
	return p.manifest
}

// IsValid reports whether the manifest exists, parses to a mapping and
// carries the flutter marker key.
func (p *Project) IsValid() bool {
	m := p.Manifest()
	return m.Loaded() && m.Has(MarkerKey)
}

// Name returns the declared package name, or the root directory name.
func (p *Project) Name() string {
	return p.Manifest().StringOr("name", filepath.Base(p.root))
}

// Version returns the declared version, or UnsetVersion.
func (p *Project) Version() string {
	return p.Manifest().StringOr("version", UnsetVersion)
}

// Description returns the declared description, if any.
func (p *Project) Description() string {
	return p.Manifest().StringOr("description", "")
}

// Dependencies returns the dependencies section as name -> constraint.
func (p *Project) Dependencies() map[string]string {
	return p.Manifest().Constraints("dependencies")
}

// DevDependencies returns the dev_dependencies section as name -> constraint.
func (p *Project) DevDependencies() map[string]string {
	return p.Manifest().Constraints("dev_dependencies")
}

// HasDependency reports whether name is declared in either dependency section.
func (p *Project) HasDependency(name string) bool {
	if _, ok := p.Dependencies()[name]; ok {
		return true
	}
	_, ok := p.DevDependencies()[name]
	return ok
}

// DependencyNames returns the sorted names of a dependency map.
func DependencyNames(deps map[string]string) []string {
	names := make([]string, 0, len(deps))
	for name := range deps {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
