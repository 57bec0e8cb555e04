// Package doctor checks the local Flutter development environment.
package doctor

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"

	"github.com/flow-cli/flow/internal/core"
	"github.com/flow-cli/flow/internal/toolchain"
	"golang.org/x/sync/errgroup"
)

// Status is the outcome of one check.
type Status string

const (
	StatusOK   Status = "ok"
	StatusWarn Status = "warn"
	StatusFail Status = "fail"
	StatusSkip Status = "skip"
)

// Check is the result of one environment or project check.
type Check struct {
	Name    string
	Status  Status
	Version string
	Detail  string
}

// Options configures a Doctor.
type Options struct {
	// AndroidSDK overrides SDK discovery (config android.sdk_path).
	AndroidSDK string
	GOOS       string
	Getenv     func(string) string
	HomeDir    string
	Logger     *slog.Logger
}

// Doctor runs environment checks through a Toolchain.
type Doctor struct {
	tc   *toolchain.Toolchain
	fs   core.FileSystem
	opts Options
}

// New creates a Doctor. Zero-valued options fall back to the host values.
func New(tc *toolchain.Toolchain, fs core.FileSystem, opts Options) *Doctor {
	if opts.GOOS == "" {
		opts.GOOS = runtime.GOOS
	}
	if opts.Getenv == nil {
		opts.Getenv = os.Getenv
	}
	if opts.HomeDir == "" {
		opts.HomeDir, _ = os.UserHomeDir()
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return &Doctor{tc: tc, fs: fs, opts: opts}
}

type checkFunc func(ctx context.Context) Check

// Environment runs every tool check concurrently. Results are sorted by name.
func (d *Doctor) Environment(ctx context.Context) ([]Check, error) {
	checks := []checkFunc{
		d.checkFlutter,
		d.checkDart,
		d.checkAndroid,
		d.checkXcode,
		d.tool("Git", "git", "Install Git from https://git-scm.com", false, "--version"),
		d.tool("Ruby", "ruby", "Needed for fastlane deployments", true, "--version"),
		d.tool("Bundler", "bundle", "Install with: gem install bundler", true, "--version"),
		d.tool("Fastlane", "fastlane", "Install with: gem install fastlane", true, "--version"),
	}

	results := make([]Check, len(checks))
	g, gctx := errgroup.WithContext(ctx)
	for i, fn := range checks {
		g.Go(func() error {
			results[i] = fn(gctx)
			d.opts.Logger.Debug("doctor check finished", "check", results[i].Name, "status", results[i].Status)
			return gctx.Err()
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	slices.SortFunc(results, func(a, b Check) int { return strings.Compare(a.Name, b.Name) })
	return results, nil
}

func (d *Doctor) checkFlutter(ctx context.Context) Check {
	c := Check{Name: "Flutter SDK"}
	if !d.tc.Available("flutter") {
		c.Status, c.Detail = StatusFail, "Install Flutter SDK from https://flutter.dev"
		return c
	}
	version, channel, err := d.tc.FlutterVersion(ctx)
	if err != nil {
		c.Status, c.Detail = StatusFail, "flutter is not responding: "+err.Error()
		return c
	}
	c.Version = version

	out, err := d.tc.Runner().Run(ctx, toolchain.Invocation{
		Name:    "flutter",
		Args:    []string{"doctor", "--no-version-check"},
		Timeout: toolchain.DoctorTimeout,
	})
	switch {
	case err == nil && strings.Contains(out.Stdout, "No issues found!"):
		c.Status = StatusOK
		c.Detail = "channel " + channel
	default:
		c.Status = StatusWarn
		c.Detail = "Run 'flutter doctor' for more details"
	}
	return c
}

func (d *Doctor) checkDart(ctx context.Context) Check {
	c := Check{Name: "Dart SDK"}
	if !d.tc.Available("dart") {
		c.Status, c.Detail = StatusFail, "Dart ships with the Flutter SDK; check your PATH"
		return c
	}
	v, err := d.tc.Version(ctx, "dart", "--version")
	if err != nil {
		c.Status, c.Detail = StatusFail, err.Error()
		return c
	}
	c.Status, c.Version = StatusOK, v
	return c
}

// AndroidSDK returns the first existing SDK directory among the configured
// path, ANDROID_HOME, ANDROID_SDK_ROOT and the Android Studio defaults.
func (d *Doctor) AndroidSDK(ctx context.Context) string {
	candidates := []string{
		d.opts.AndroidSDK,
		d.opts.Getenv("ANDROID_HOME"),
		d.opts.Getenv("ANDROID_SDK_ROOT"),
	}
	if d.opts.HomeDir != "" {
		candidates = append(candidates,
			filepath.Join(d.opts.HomeDir, "Library", "Android", "sdk"),
			filepath.Join(d.opts.HomeDir, "Android", "Sdk"),
		)
	}
	for _, dir := range candidates {
		if dir != "" && core.IsDir(ctx, d.fs, dir) {
			return dir
		}
	}
	return ""
}

func (d *Doctor) checkAndroid(ctx context.Context) Check {
	c := Check{Name: "Android SDK"}
	sdk := d.AndroidSDK(ctx)
	if sdk == "" {
		c.Status, c.Detail = StatusFail, "Install the Android SDK via Android Studio or set ANDROID_HOME"
		return c
	}

	adb := filepath.Join(sdk, "platform-tools", "adb")
	if !core.Exists(ctx, d.fs, adb) {
		if !d.tc.Available("adb") {
			c.Status, c.Detail = StatusWarn, fmt.Sprintf("SDK at %s, platform tools missing", sdk)
			return c
		}
		adb = "adb"
	}
	v, err := d.tc.Version(ctx, adb, "version")
	if err != nil {
		c.Status, c.Detail = StatusWarn, "adb is not working properly"
		return c
	}
	c.Status, c.Version, c.Detail = StatusOK, v, "SDK at "+sdk
	return c
}

func (d *Doctor) checkXcode(ctx context.Context) Check {
	c := Check{Name: "Xcode"}
	if d.opts.GOOS != "darwin" {
		c.Status, c.Detail = StatusSkip, "iOS development requires macOS"
		return c
	}
	if !d.tc.Available("xcrun") {
		c.Status, c.Detail = StatusFail, "Install Xcode from the Mac App Store"
		return c
	}
	v, err := d.tc.Version(ctx, "xcodebuild", "-version")
	if err != nil {
		c.Status, c.Detail = StatusFail, "Xcode command line tools are not configured"
		return c
	}
	c.Version = v

	sims, err := d.tc.Simulators(ctx)
	if err != nil || len(sims) == 0 {
		c.Status, c.Detail = StatusWarn, "No iOS simulators found"
		return c
	}
	c.Status, c.Detail = StatusOK, fmt.Sprintf("%d iOS simulators", len(sims))
	return c
}

// tool builds a presence-and-version check. Optional tools warn instead of
// failing when absent.
func (d *Doctor) tool(name, bin, hint string, optional bool, args ...string) checkFunc {
	return func(ctx context.Context) Check {
		c := Check{Name: name}
		if !d.tc.Available(bin) {
			c.Status, c.Detail = StatusFail, hint
			if optional {
				c.Status = StatusWarn
			}
			return c
		}
		v, err := d.tc.Version(ctx, bin, args...)
		if err != nil {
			c.Status, c.Detail = StatusWarn, err.Error()
			return c
		}
		c.Status, c.Version = StatusOK, v
		return c
	}
}

// Summary counts checks per status.
func Summary(checks []Check) map[Status]int {
	out := map[Status]int{}
	for _, c := range checks {
		out[c.Status]++
	}
	return out
}

// Healthy reports whether no check failed.
func Healthy(checks []Check) bool {
	return Summary(checks)[StatusFail] == 0
}
