// Package flavor derives per-flavor branding data from
// assets/configs/<flavor>/. Nothing is cached: every call re-reads the
// config.json and checks the sibling images.
package flavor

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/flow-cli/flow/internal/core"
	"github.com/flow-cli/flow/internal/project"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// Asset file names inside a flavor directory.
const (
	ConfigFile = "config.json"
	IconFile   = "icon.png"
	SplashFile = "splash.png"
)

// ErrExists is returned by Scaffold when config.json is already present.
var ErrExists = errors.New("flavor config already exists")

// Status summarises which assets a flavor provides.
type Status string

const (
	StatusComplete Status = "complete"
	StatusPartial  Status = "partial"
	StatusMissing  Status = "missing"
)

// Details describes one flavor's assets and config values.
type Details struct {
	Name       string
	Dir        string
	Status     Status
	ConfigPath string
	IconPath   string
	SplashPath string

	// ConfigJSON is the raw config.json content ("" when absent).
	ConfigJSON  string
	ValidJSON   bool
	AppName     string
	PackageName string
	MainColor   string
}

// HasConfig reports whether config.json exists.
func (d Details) HasConfig() bool { return d.ConfigPath != "" }

// HasIcon reports whether icon.png exists.
func (d Details) HasIcon() bool { return d.IconPath != "" }

// HasSplash reports whether splash.png exists.
func (d Details) HasSplash() bool { return d.SplashPath != "" }

// Inspect reads the assets of flavor name under p.
func Inspect(ctx context.Context, fs core.FileSystem, p *project.Project, name string) Details {
	dir := p.FlavorDir(name)
	d := Details{Name: name, Dir: dir}

	present := 0
	if path := filepath.Join(dir, ConfigFile); core.Exists(ctx, fs, path) {
		d.ConfigPath = path
		present++
	}
	if path := filepath.Join(dir, IconFile); core.Exists(ctx, fs, path) {
		d.IconPath = path
		present++
	}
	if path := filepath.Join(dir, SplashFile); core.Exists(ctx, fs, path) {
		d.SplashPath = path
		present++
	}

	switch present {
	case 3:
		d.Status = StatusComplete
	case 0:
		d.Status = StatusMissing
	default:
		d.Status = StatusPartial
	}

	if d.HasConfig() {
		if data, err := fs.ReadFile(ctx, d.ConfigPath); err == nil {
			d.ConfigJSON = string(data)
			d.ValidJSON = gjson.Valid(d.ConfigJSON)
			if d.ValidJSON {
				d.AppName = gjson.Get(d.ConfigJSON, "appName").String()
				d.PackageName = gjson.Get(d.ConfigJSON, "packageName").String()
				d.MainColor = gjson.Get(d.ConfigJSON, "mainColor").String()
			}
		}
	}

	return d
}

// InspectAll inspects every flavor of p in Flavors order.
func InspectAll(ctx context.Context, fs core.FileSystem, p *project.Project) []Details {
	names := p.Flavors()
	out := make([]Details, 0, len(names))
	for _, name := range names {
		out = append(out, Inspect(ctx, fs, p, name))
	}
	return out
}

// RequiredKeys must be present in config.json for branding generation.
var RequiredKeys = []string{"appName", "mainColor"}

// Validate lists the problems that prevent branding generation for d.
// An empty result means the flavor is ready.
func Validate(d Details) []string {
	var problems []string
	if !d.HasConfig() {
		problems = append(problems, "missing "+ConfigFile)
	}
	if !d.HasIcon() {
		problems = append(problems, "missing "+IconFile)
	}
	if !d.HasSplash() {
		problems = append(problems, "missing "+SplashFile)
	}
	if !d.HasConfig() {
		return problems
	}
	if !d.ValidJSON {
		return append(problems, ConfigFile+" is not valid JSON")
	}
	for _, key := range RequiredKeys {
		if !gjson.Get(d.ConfigJSON, key).Exists() {
			problems = append(problems, fmt.Sprintf("%s is missing %q", ConfigFile, key))
		}
	}
	return problems
}

// Config holds the values written by Scaffold.
type Config struct {
	AppName     string
	PackageName string
	MainColor   string
}

// Scaffold creates assets/configs/<name>/config.json. It refuses to
// overwrite an existing file.
func Scaffold(ctx context.Context, fs core.FileSystem, p *project.Project, name string, cfg Config) (string, error) {
	if name == "" || strings.ContainsAny(name, `/\`) || name == "." || name == ".." {
		return "", fmt.Errorf("invalid flavor name %q", name)
	}

	dir := p.FlavorDir(name)
	path := filepath.Join(dir, ConfigFile)
	if core.Exists(ctx, fs, path) {
		return "", fmt.Errorf("%w: %s", ErrExists, path)
	}

	doc := "{}"
	var err error
	for _, kv := range [][2]string{
		{"appName", cfg.AppName},
		{"packageName", cfg.PackageName},
		{"mainColor", NormalizeColor(cfg.MainColor)},
	} {
		if kv[1] == "" {
			continue
		}
		doc, err = sjson.Set(doc, kv[0], kv[1])
		if err != nil {
			return "", fmt.Errorf("failed to set %s: %w", kv[0], err)
		}
	}

	pretty := gjson.Get(doc, "@pretty").String()

	if err := fs.MkdirAll(ctx, dir, core.PermDir); err != nil {
		return "", fmt.Errorf("failed to create %q: %w", dir, err)
	}
	if err := fs.WriteFile(ctx, path, []byte(pretty), core.PermFile); err != nil {
		return "", fmt.Errorf("failed to write %q: %w", path, err)
	}
	return path, nil
}

// NormalizeColor ensures a hex color carries a leading '#'.
func NormalizeColor(c string) string {
	c = strings.TrimSpace(c)
	if c == "" {
		return ""
	}
	return "#" + strings.TrimLeft(c, "#")
}

// ApksFor returns the APK paths whose file name mentions flavor, following
// the app-<flavor>-<mode>.apk naming of flutter build.
func ApksFor(outputs project.BuildOutputs, flavor string) []string {
	var out []string
	marker := "-" + flavor + "-"
	for _, path := range outputs[project.AndroidAPK] {
		if strings.Contains(filepath.Base(path), marker) {
			out = append(out, path)
		}
	}
	return out
}
