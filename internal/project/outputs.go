package project

import (
	"context"
	"path/filepath"
	"slices"
	"strings"

	"github.com/flow-cli/flow/internal/core"
)

// OutputKind names a category of build artifact.
type OutputKind string

const (
	AndroidAPK    OutputKind = "android-apk"
	AndroidBundle OutputKind = "android-bundle"
	IOSApp        OutputKind = "ios-app"
	WebBuild      OutputKind = "web-build"
)

// OutputKinds lists every category in display order.
var OutputKinds = []OutputKind{AndroidAPK, AndroidBundle, IOSApp, WebBuild}

// Conventional build output directories relative to the project root.
var (
	ApkOutputDir    = filepath.Join("build", "app", "outputs", "flutter-apk")
	BundleOutputDir = filepath.Join("build", "app", "outputs", "bundle")
	IOSOutputDir    = filepath.Join("build", "ios")
	WebOutputDir    = filepath.Join("build", "web")
)

// BuildOutputs maps every OutputKind to the artifacts found for it.
type BuildOutputs map[OutputKind][]string

// Total returns the number of artifacts across all kinds.
func (b BuildOutputs) Total() int {
	n := 0
	for _, paths := range b {
		n += len(paths)
	}
	return n
}

// BuildOutputs enumerates artifacts under the conventional output
// directories. Every kind is present in the result; missing directories
// yield empty lists. Matching is by extension only.
func (p *Project) BuildOutputs() BuildOutputs {
	ctx := context.Background()
	outputs := BuildOutputs{
		AndroidAPK:    p.globDir(ctx, p.Path(ApkOutputDir), ".apk", false),
		AndroidBundle: p.globDir(ctx, p.Path(BundleOutputDir), ".aab", true),
		IOSApp:        p.globDir(ctx, p.Path(IOSOutputDir), ".app", true),
		WebBuild:      []string{},
	}
	if web := p.Path(WebOutputDir); core.IsDir(ctx, p.fs, web) {
		outputs[WebBuild] = []string{web}
	}
	return outputs
}

// globDir collects entries of dir ending in ext, descending into
// subdirectories when recursive is set. Matched directories are descended
// into as well, so bundles nested in a .app are listed too.
func (p *Project) globDir(ctx context.Context, dir, ext string, recursive bool) []string {
	matches := []string{}

	var walk func(dir string)
	walk = func(dir string) {
		entries, err := p.fs.ReadDir(ctx, dir)
		if err != nil {
			return
		}
		for _, entry := range entries {
			path := filepath.Join(dir, entry.Name())
			if strings.HasSuffix(entry.Name(), ext) {
				matches = append(matches, path)
			}
			if recursive && entry.IsDir() {
				walk(path)
			}
		}
	}
	walk(dir)

	slices.Sort(matches)
	return matches
}
