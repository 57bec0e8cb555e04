package project

import (
	"context"
	"path/filepath"
	"slices"

	"github.com/flow-cli/flow/internal/core"
)

// Conventional flavor locations relative to the project root.
var (
	ConfigsDir        = filepath.Join("assets", "configs")
	AndroidSourceDir  = filepath.Join("android", "app", "src")
	FlavorConfigFile  = "config.json"
	reservedSourceSet = []string{"main", "debug", "release"}
)

// Flavors returns the sorted union of flavors declared through
// assets/configs/<flavor>/config.json and android/app/src/<flavor>/.
// The main, debug and release source sets are never reported.
func (p *Project) Flavors() []string {
	ctx := context.Background()
	flavors := make([]string, 0)
	flavors = append(flavors, p.configFlavors(ctx)...)
	flavors = append(flavors, p.androidFlavors(ctx)...)

	slices.Sort(flavors)
	return slices.Compact(flavors)
}

// HasFlavor reports whether name is one of Flavors.
func (p *Project) HasFlavor(name string) bool {
	return slices.Contains(p.Flavors(), name)
}

// FlavorDir returns assets/configs/<flavor> under the project root.
func (p *Project) FlavorDir(flavor string) string {
	return p.Path(ConfigsDir, flavor)
}

func (p *Project) configFlavors(ctx context.Context) []string {
	entries, err := p.fs.ReadDir(ctx, p.Path(ConfigsDir))
	if err != nil {
		return nil
	}

	var names []string
	for _, entry := range entries {
		if !core.IsDir(ctx, p.fs, p.Path(ConfigsDir, entry.Name())) {
			continue
		}
		if core.Exists(ctx, p.fs, p.Path(ConfigsDir, entry.Name(), FlavorConfigFile)) {
			names = append(names, entry.Name())
		}
	}
	return names
}

func (p *Project) androidFlavors(ctx context.Context) []string {
	entries, err := p.fs.ReadDir(ctx, p.Path(AndroidSourceDir))
	if err != nil {
		return nil
	}

	var names []string
	for _, entry := range entries {
		if slices.Contains(reservedSourceSet, entry.Name()) {
			continue
		}
		if !core.IsDir(ctx, p.fs, p.Path(AndroidSourceDir, entry.Name())) {
			continue
		}
		names = append(names, entry.Name())
	}
	return names
}
