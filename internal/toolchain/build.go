package toolchain

import (
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"github.com/flow-cli/flow/internal/project"
)

// Target is a flutter build subcommand.
type Target string

const (
	TargetAPK       Target = "apk"
	TargetAppBundle Target = "appbundle"
	TargetIOS       Target = "ios"
	TargetWeb       Target = "web"
)

// Mode is a flutter build mode.
type Mode string

const (
	ModeDebug   Mode = "debug"
	ModeProfile Mode = "profile"
	ModeRelease Mode = "release"
)

// Modes lists the accepted build modes.
var Modes = []Mode{ModeDebug, ModeProfile, ModeRelease}

// ParseMode validates a build mode label.
func ParseMode(s string) (Mode, error) {
	m := Mode(strings.ToLower(s))
	if !slices.Contains(Modes, m) {
		return "", fmt.Errorf("invalid build mode %q: expected debug, profile or release", s)
	}
	return m, nil
}

// ParseAndroidTarget validates an Android output format label.
func ParseAndroidTarget(s string) (Target, error) {
	switch Target(s) {
	case TargetAPK, TargetAppBundle:
		return Target(s), nil
	default:
		return "", fmt.Errorf("invalid output format %q: expected apk or appbundle", s)
	}
}

// BuildRequest describes one flutter build.
type BuildRequest struct {
	Target   Target
	Mode     Mode
	Flavor   string
	Verbose  bool
	NoSign   bool
	Extra    []string
	Platform string
}

// Label names the build for progress output.
func (r BuildRequest) Label() string {
	flavor := r.Flavor
	if flavor == "" {
		flavor = "default"
	}
	return fmt.Sprintf("%s (%s %s)", flavor, r.Mode, r.Target)
}

// FlutterBuildArgs assembles the arguments for `flutter build`.
func FlutterBuildArgs(r BuildRequest) []string {
	args := []string{"build", string(r.Target)}

	mode := r.Mode
	if mode == "" {
		mode = ModeDebug
	}
	args = append(args, "--"+string(mode))

	if r.Flavor != "" {
		args = append(args, "--flavor", r.Flavor)
	}

	if r.Target == TargetAPK || r.Target == TargetAppBundle {
		platform := r.Platform
		if platform == "" && r.Flavor != "" {
			platform = "android-arm64"
		}
		if platform != "" {
			args = append(args, "--target-platform", platform)
		}
	}

	if r.Target == TargetIOS && r.NoSign {
		args = append(args, "--no-codesign")
	}
	if r.Verbose {
		args = append(args, "--verbose")
	}
	return append(args, r.Extra...)
}

// ExpectedArtifact returns where flutter writes the artifact for r.
// Gradle names flavored bundles <flavor><Mode>/app-<flavor>-<mode>.aab.
func ExpectedArtifact(p *project.Project, r BuildRequest) string {
	mode := string(r.Mode)
	switch r.Target {
	case TargetAppBundle:
		if r.Flavor != "" {
			return p.Path(project.BundleOutputDir, r.Flavor+capitalize(mode), fmt.Sprintf("app-%s-%s.aab", r.Flavor, mode))
		}
		return p.Path(project.BundleOutputDir, mode, fmt.Sprintf("app-%s.aab", mode))
	case TargetAPK:
		if r.Flavor != "" {
			return p.Path(project.ApkOutputDir, fmt.Sprintf("app-%s-%s.apk", r.Flavor, mode))
		}
		return p.Path(project.ApkOutputDir, fmt.Sprintf("app-%s.apk", mode))
	case TargetIOS:
		return p.Path(project.IOSOutputDir, "iphoneos", "Runner.app")
	case TargetWeb:
		return p.Path(project.WebOutputDir)
	default:
		return filepath.Join(p.Root(), "build")
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
