// Package branding generates launcher icons and native splash screens by
// driving flutter_launcher_icons and flutter_native_splash through
// `dart run` with a temporary YAML config in the project root.
package branding

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"slices"

	"github.com/flow-cli/flow/internal/core"
	"github.com/flow-cli/flow/internal/flavor"
	"github.com/flow-cli/flow/internal/project"
	"github.com/flow-cli/flow/internal/toolchain"
	"github.com/goccy/go-yaml"
)

// Kind selects the generator.
type Kind string

const (
	KindIcons  Kind = "icons"
	KindSplash Kind = "splash"
)

// Package returns the pub package driving k.
func (k Kind) Package() string {
	if k == KindSplash {
		return "flutter_native_splash"
	}
	return "flutter_launcher_icons"
}

// Platform restricts generation to one mobile platform.
type Platform string

const (
	PlatformAndroid Platform = "android"
	PlatformIOS     Platform = "ios"
	PlatformBoth    Platform = "both"
)

// ParsePlatform validates a --platform value.
func ParsePlatform(s string) (Platform, error) {
	p := Platform(s)
	if s == "" {
		return PlatformBoth, nil
	}
	if !slices.Contains([]Platform{PlatformAndroid, PlatformIOS, PlatformBoth}, p) {
		return "", fmt.Errorf("invalid platform %q: expected android, ios or both", s)
	}
	return p, nil
}

func (p Platform) android() bool { return p == PlatformAndroid || p == PlatformBoth }
func (p Platform) ios() bool     { return p == PlatformIOS || p == PlatformBoth }

// Errors reported before any tool runs.
var (
	ErrMissingPackage = errors.New("generator package is not declared in pubspec.yaml")
	ErrMissingImage   = errors.New("source image not found")
)

// DefaultColor is used when a flavor declares no mainColor.
const DefaultColor = "#FFFFFF"

// Request describes one generation run. An empty Flavor targets the main app.
type Request struct {
	Kind     Kind
	Flavor   string
	Platform Platform
}

// Result reports one generation run.
type Result struct {
	Flavor     string
	Image      string
	ConfigFile string
	Output     toolchain.Output
}

// Generator runs the branding tools for a project.
type Generator struct {
	fs core.FileSystem
	tc *toolchain.Toolchain
}

// NewGenerator creates a Generator.
func NewGenerator(fs core.FileSystem, tc *toolchain.Toolchain) *Generator {
	return &Generator{fs: fs, tc: tc}
}

// SourceImage returns the image a request reads from:
// assets/configs/<flavor>/{icon,splash}.png, or assets/{icon,splash}.png
// for the main app.
func SourceImage(p *project.Project, req Request) string {
	name := flavor.IconFile
	if req.Kind == KindSplash {
		name = flavor.SplashFile
	}
	if req.Flavor == "" {
		return p.Path("assets", name)
	}
	return filepath.Join(p.FlavorDir(req.Flavor), name)
}

// ConfigFileName returns the temporary config file name for a request.
func ConfigFileName(req Request) string {
	if req.Flavor == "" {
		return req.Kind.Package() + ".yaml"
	}
	return fmt.Sprintf("%s_%s.yaml", req.Kind.Package(), req.Flavor)
}

// Generate writes the tool config, runs the generator and removes the
// config again, whatever the outcome.
func (g *Generator) Generate(ctx context.Context, p *project.Project, req Request) (Result, error) {
	res := Result{Flavor: req.Flavor, Image: SourceImage(p, req)}

	if !p.HasDependency(req.Kind.Package()) {
		return res, fmt.Errorf("%w: add %s to dev_dependencies", ErrMissingPackage, req.Kind.Package())
	}
	if !core.Exists(ctx, g.fs, res.Image) {
		return res, fmt.Errorf("%w: %s", ErrMissingImage, res.Image)
	}

	var cfg map[string]any
	if req.Kind == KindSplash {
		color := DefaultColor
		if req.Flavor != "" {
			if c := flavor.Inspect(ctx, g.fs, p, req.Flavor).MainColor; c != "" {
				color = flavor.NormalizeColor(c)
			}
		}
		cfg = SplashConfig(res.Image, color, req.Platform)
	} else {
		cfg = IconConfig(res.Image, req.Platform)
	}

	data, err := yaml.MarshalWithOptions(cfg, yaml.Indent(2))
	if err != nil {
		return res, fmt.Errorf("failed to encode %s config: %w", req.Kind, err)
	}

	res.ConfigFile = p.Path(ConfigFileName(req))
	if err := g.fs.WriteFile(ctx, res.ConfigFile, data, core.PermFile); err != nil {
		return res, fmt.Errorf("failed to write %s: %w", res.ConfigFile, err)
	}
	defer func() { _ = g.fs.Remove(ctx, res.ConfigFile) }()

	res.Output, err = g.tc.DartRun(ctx, p.Root(), runArgs(req.Kind, res.ConfigFile)...)
	if err != nil {
		return res, fmt.Errorf("%s generation failed: %w", req.Kind, err)
	}
	return res, nil
}

func runArgs(kind Kind, configFile string) []string {
	if kind == KindSplash {
		return []string{"flutter_native_splash:create", "--path=" + configFile}
	}
	return []string{"flutter_launcher_icons", "-f", configFile}
}

// IconConfig builds the flutter_launcher_icons configuration.
func IconConfig(image string, platform Platform) map[string]any {
	c := map[string]any{
		"image_path":       image,
		"remove_alpha_ios": true,
		"android":          platform.android(),
		"ios":              platform.ios(),
		"web": map[string]any{
			"generate":         true,
			"image_path":       image,
			"background_color": DefaultColor,
			"theme_color":      DefaultColor,
		},
	}
	if platform.android() {
		c["adaptive_icon_foreground"] = image
		c["adaptive_icon_background"] = DefaultColor
	}
	return map[string]any{"flutter_launcher_icons": c}
}

// SplashConfig builds the flutter_native_splash configuration.
func SplashConfig(image, color string, platform Platform) map[string]any {
	c := map[string]any{
		"color":         color,
		"image":         image,
		"color_dark":    color,
		"image_dark":    image,
		"branding_mode": "bottom",
		"android":       platform.android(),
		"ios":           platform.ios(),
		"web":           false,
	}
	if platform.android() {
		c["android_12"] = map[string]any{
			"image":                      image,
			"icon_background_color":      color,
			"image_dark":                 image,
			"icon_background_color_dark": color,
		}
	}
	return map[string]any{"flutter_native_splash": c}
}
