package toolchain

import (
	"path/filepath"
	"slices"
	"testing"

	"github.com/flow-cli/flow/internal/core"
	"github.com/flow-cli/flow/internal/project"
)

func TestFlutterBuildArgs(t *testing.T) {
	tests := []struct {
		name string
		req  BuildRequest
		want []string
	}{
		{
			name: "default apk",
			req:  BuildRequest{Target: TargetAPK},
			want: []string{"build", "apk", "--debug"},
		},
		{
			name: "flavored release apk",
			req:  BuildRequest{Target: TargetAPK, Mode: ModeRelease, Flavor: "prod"},
			want: []string{"build", "apk", "--release", "--flavor", "prod", "--target-platform", "android-arm64"},
		},
		{
			name: "profile bundle verbose",
			req:  BuildRequest{Target: TargetAppBundle, Mode: ModeProfile, Verbose: true},
			want: []string{"build", "appbundle", "--profile", "--verbose"},
		},
		{
			name: "ios without codesign",
			req:  BuildRequest{Target: TargetIOS, Mode: ModeRelease, Flavor: "dev", NoSign: true},
			want: []string{"build", "ios", "--release", "--flavor", "dev", "--no-codesign"},
		},
		{
			name: "extra args",
			req:  BuildRequest{Target: TargetWeb, Mode: ModeRelease, Extra: []string{"--base-href", "/app/"}},
			want: []string{"build", "web", "--release", "--base-href", "/app/"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FlutterBuildArgs(tt.req); !slices.Equal(got, tt.want) {
				t.Errorf("FlutterBuildArgs() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestExpectedArtifact(t *testing.T) {
	p := project.New(core.NewOSFileSystem(), "/work/app")

	tests := []struct {
		req  BuildRequest
		want string
	}{
		{BuildRequest{Target: TargetAPK, Mode: ModeRelease}, "build/app/outputs/flutter-apk/app-release.apk"},
		{BuildRequest{Target: TargetAPK, Mode: ModeDebug, Flavor: "dev"}, "build/app/outputs/flutter-apk/app-dev-debug.apk"},
		{BuildRequest{Target: TargetAppBundle, Mode: ModeRelease}, "build/app/outputs/bundle/release/app-release.aab"},
		{BuildRequest{Target: TargetAppBundle, Mode: ModeRelease, Flavor: "prod"}, "build/app/outputs/bundle/prodRelease/app-prod-release.aab"},
		{BuildRequest{Target: TargetWeb, Mode: ModeRelease}, "build/web"},
	}
	for _, tt := range tests {
		t.Run(tt.req.Label(), func(t *testing.T) {
			want := filepath.Join(p.Root(), filepath.FromSlash(tt.want))
			if got := ExpectedArtifact(p, tt.req); got != want {
				t.Errorf("ExpectedArtifact() = %s, want %s", got, want)
			}
		})
	}
}

func TestParseMode(t *testing.T) {
	if m, err := ParseMode("Release"); err != nil || m != ModeRelease {
		t.Errorf("ParseMode(Release) = %v, %v", m, err)
	}
	if _, err := ParseMode("fast"); err == nil {
		t.Error("expected error for unknown mode")
	}
	if _, err := ParseAndroidTarget("ipa"); err == nil {
		t.Error("expected error for unknown android target")
	}
}

func TestFlutterRunArgs(t *testing.T) {
	tests := []struct {
		req  RunRequest
		want []string
	}{
		{RunRequest{}, []string{"run"}},
		{RunRequest{Device: "emulator-5554", Mode: ModeDebug}, []string{"run", "-d", "emulator-5554"}},
		{
			RunRequest{Device: "ABC", Flavor: "prod", Mode: ModeRelease, Extra: []string{"--dart-define=X=1"}},
			[]string{"run", "-d", "ABC", "--flavor", "prod", "--release", "--dart-define=X=1"},
		},
	}
	for _, tt := range tests {
		if got := FlutterRunArgs(tt.req); !slices.Equal(got, tt.want) {
			t.Errorf("FlutterRunArgs(%+v) = %v, want %v", tt.req, got, tt.want)
		}
	}
}
