package project

import (
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/flow-cli/flow/internal/core"
	"github.com/flow-cli/flow/internal/testutils"
)

func TestProject_ScenarioDemoApp(t *testing.T) {
	root := t.TempDir()
	testutils.WriteFile(t, root, "pubspec.yaml", "name: demo_app\ndependencies: {flutter: any}\nflutter:\n")
	testutils.WriteFile(t, root, "assets/configs/production/config.json", "{}")

	p := New(core.NewOSFileSystem(), root)

	if !p.IsValid() {
		t.Fatal("expected project to be valid")
	}
	if got := p.Name(); got != "demo_app" {
		t.Errorf("Name() = %q, want demo_app", got)
	}
	if got := p.Flavors(); !slices.Equal(got, []string{"production"}) {
		t.Errorf("Flavors() = %v, want [production]", got)
	}
	if !p.HasDependency("flutter") {
		t.Error("HasDependency(flutter) = false")
	}
	if p.HasDependency("riverpod") {
		t.Error("HasDependency(riverpod) = true")
	}
}

func TestProject_NameAndVersionFallbacks(t *testing.T) {
	root := filepath.Join(t.TempDir(), "my_app")
	testutils.WriteFile(t, root, "pubspec.yaml", "flutter:\n")

	p := New(core.NewOSFileSystem(), root)
	if got := p.Name(); got != "my_app" {
		t.Errorf("Name() = %q, want my_app", got)
	}
	if got := p.Version(); got != UnsetVersion {
		t.Errorf("Version() = %q, want %q", got, UnsetVersion)
	}
}

func TestProject_Version(t *testing.T) {
	root := testutils.NewFlutterProject(t)
	p := New(core.NewOSFileSystem(), root)
	if got := p.Version(); got != "1.0.0+1" {
		t.Errorf("Version() = %q, want 1.0.0+1", got)
	}
}

func TestProject_IsValid(t *testing.T) {
	tests := []struct {
		name    string
		content *string
		want    bool
	}{
		{"flutter marker", strp("name: a\nflutter:\n  uses-material-design: true\n"), true},
		{"null flutter marker", strp("name: a\nflutter:\n"), true},
		{"dart package without marker", strp("name: a\ndependencies:\n  http: any\n"), false},
		{"empty manifest", strp(""), false},
		{"malformed manifest", strp("name: [oops\n"), false},
		{"no manifest", nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := t.TempDir()
			if tt.content != nil {
				testutils.WriteFile(t, root, "pubspec.yaml", *tt.content)
			}
			if got := New(core.NewOSFileSystem(), root).IsValid(); got != tt.want {
				t.Errorf("IsValid() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestProject_MalformedDegradesToEmpty(t *testing.T) {
	root := t.TempDir()
	testutils.WriteFile(t, root, "pubspec.yaml", "name: demo\ndependencies: [unterminated\n")
	testutils.MkdirAll(t, root, "android/app/src/main")

	p := New(core.NewOSFileSystem(), root)
	if p.IsValid() {
		t.Error("IsValid() = true for malformed manifest")
	}
	if deps := p.Dependencies(); deps == nil || len(deps) != 0 {
		t.Errorf("Dependencies() = %#v, want empty map", deps)
	}
	if devDeps := p.DevDependencies(); len(devDeps) != 0 {
		t.Errorf("DevDependencies() = %#v, want empty map", devDeps)
	}
	if flavors := p.Flavors(); flavors == nil || len(flavors) != 0 {
		t.Errorf("Flavors() = %#v, want empty slice", flavors)
	}
	if p.Manifest().Err() == nil {
		t.Error("expected the parse error to be retained on the manifest")
	}
}

func TestProject_Dependencies(t *testing.T) {
	root := t.TempDir()
	testutils.WriteFile(t, root, "pubspec.yaml", `name: demo
flutter:
dependencies:
  flutter:
    sdk: flutter
  http: ^1.2.0
dev_dependencies:
  flutter_launcher_icons: ^0.13.1
  Lints: any
`)
	p := New(core.NewOSFileSystem(), root)

	deps := p.Dependencies()
	if deps["http"] != "^1.2.0" || deps["flutter"] != "sdk: flutter" {
		t.Errorf("Dependencies() = %v", deps)
	}
	if !p.HasDependency("flutter_launcher_icons") {
		t.Error("expected dev dependency to count")
	}
	if p.HasDependency("lints") {
		t.Error("HasDependency must be case-sensitive")
	}
	if got := DependencyNames(deps); !slices.Equal(got, []string{"flutter", "http"}) {
		t.Errorf("DependencyNames() = %v", got)
	}
}

func TestProject_FlavorsUnion(t *testing.T) {
	root := testutils.NewFlutterProject(t)
	testutils.WriteFile(t, root, "assets/configs/x/config.json", "{}")
	testutils.WriteFile(t, root, "assets/configs/shared/config.json", "{}")
	testutils.MkdirAll(t, root, "assets/configs/no_config")
	testutils.WriteFile(t, root, "assets/configs/stray.json", "{}")
	for _, d := range []string{"main", "debug", "release", "y", "shared"} {
		testutils.MkdirAll(t, root, filepath.Join("android/app/src", d))
	}
	testutils.WriteFile(t, root, "android/app/src/AndroidManifest.xml", "")

	p := New(core.NewOSFileSystem(), root)
	want := []string{"shared", "x", "y"}
	if got := p.Flavors(); !slices.Equal(got, want) {
		t.Errorf("Flavors() = %v, want %v", got, want)
	}
	if !p.HasFlavor("y") || p.HasFlavor("main") {
		t.Error("HasFlavor mismatch")
	}
}

func TestProject_FlavorsFollowSymlinks(t *testing.T) {
	root := testutils.NewFlutterProject(t)
	shared := t.TempDir()
	testutils.WriteFile(t, shared, "staging/config.json", "{}")
	testutils.MkdirAll(t, shared, "qa")
	testutils.MkdirAll(t, root, "assets/configs")
	testutils.MkdirAll(t, root, "android/app/src")

	links := map[string]string{
		filepath.Join(shared, "staging"): filepath.Join(root, "assets/configs/staging"),
		filepath.Join(shared, "qa"):      filepath.Join(root, "android/app/src/qa"),
	}
	for target, link := range links {
		if err := os.Symlink(target, link); err != nil {
			t.Skipf("symlinks unsupported: %v", err)
		}
	}
	testutils.WriteFile(t, shared, "plain.txt", "")
	if err := os.Symlink(filepath.Join(shared, "plain.txt"), filepath.Join(root, "android/app/src/file")); err != nil {
		t.Fatal(err)
	}

	p := New(core.NewOSFileSystem(), root)
	want := []string{"qa", "staging"}
	if got := p.Flavors(); !slices.Equal(got, want) {
		t.Errorf("Flavors() = %v, want %v", got, want)
	}
}

func TestProject_FlavorsEmpty(t *testing.T) {
	p := New(core.NewOSFileSystem(), testutils.NewFlutterProject(t))
	if got := p.Flavors(); got == nil || len(got) != 0 {
		t.Errorf("Flavors() = %#v, want empty non-nil slice", got)
	}
}

func TestProject_BuildOutputsSingleApk(t *testing.T) {
	root := testutils.NewFlutterProject(t)
	apk := testutils.WriteFile(t, root, "build/app/outputs/flutter-apk/app-release.apk", "apk")

	outputs := New(core.NewOSFileSystem(), root).BuildOutputs()

	if len(outputs) != len(OutputKinds) {
		t.Fatalf("BuildOutputs() has %d keys, want %d", len(outputs), len(OutputKinds))
	}
	if got := outputs[AndroidAPK]; !slices.Equal(got, []string{apk}) {
		t.Errorf("outputs[%s] = %v, want [%s]", AndroidAPK, got, apk)
	}
	for _, kind := range []OutputKind{AndroidBundle, IOSApp, WebBuild} {
		if got, ok := outputs[kind]; !ok || got == nil || len(got) != 0 {
			t.Errorf("outputs[%s] = %#v, want empty list", kind, got)
		}
	}
	if outputs.Total() != 1 {
		t.Errorf("Total() = %d, want 1", outputs.Total())
	}
}

func TestProject_BuildOutputsAllKinds(t *testing.T) {
	root := testutils.NewFlutterProject(t)
	testutils.WriteFile(t, root, "build/app/outputs/flutter-apk/app-prod-release.apk", "")
	testutils.WriteFile(t, root, "build/app/outputs/flutter-apk/app-release.apk.sha1", "")
	testutils.WriteFile(t, root, "build/app/outputs/flutter-apk/nested/ignored.apk", "")
	aab := testutils.WriteFile(t, root, "build/app/outputs/bundle/prodRelease/app-prod-release.aab", "")
	app := testutils.MkdirAll(t, root, "build/ios/iphoneos/Runner.app")
	testutils.WriteFile(t, root, "build/ios/iphoneos/Runner.app/Info.plist", "")
	watch := testutils.MkdirAll(t, root, "build/ios/iphoneos/Runner.app/Watch/WatchApp.app")
	web := testutils.MkdirAll(t, root, "build/web")

	outputs := New(core.NewOSFileSystem(), root).BuildOutputs()

	if got := outputs[AndroidAPK]; len(got) != 1 || filepath.Base(got[0]) != "app-prod-release.apk" {
		t.Errorf("outputs[%s] = %v", AndroidAPK, got)
	}
	if got := outputs[AndroidBundle]; !slices.Equal(got, []string{aab}) {
		t.Errorf("outputs[%s] = %v, want [%s]", AndroidBundle, got, aab)
	}
	if got := outputs[IOSApp]; !slices.Equal(got, []string{app, watch}) {
		t.Errorf("outputs[%s] = %v, want [%s %s]", IOSApp, got, app, watch)
	}
	if got := outputs[WebBuild]; !slices.Equal(got, []string{web}) {
		t.Errorf("outputs[%s] = %v, want [%s]", WebBuild, got, web)
	}
}

func TestProject_Idempotent(t *testing.T) {
	root := testutils.NewFlutterProject(t)
	testutils.WriteFile(t, root, "assets/configs/b/config.json", "{}")
	testutils.MkdirAll(t, root, "android/app/src/a")
	testutils.WriteFile(t, root, "build/app/outputs/flutter-apk/app-a-release.apk", "")

	p := New(core.NewOSFileSystem(), root)

	if a, b := p.Flavors(), p.Flavors(); !slices.Equal(a, b) {
		t.Errorf("Flavors() not idempotent: %v vs %v", a, b)
	}
	d1, d2 := p.Dependencies(), p.Dependencies()
	if len(d1) != len(d2) || d1["flutter"] != d2["flutter"] {
		t.Errorf("Dependencies() not idempotent: %v vs %v", d1, d2)
	}
	o1, o2 := p.BuildOutputs(), p.BuildOutputs()
	for _, kind := range OutputKinds {
		if !slices.Equal(o1[kind], o2[kind]) {
			t.Errorf("BuildOutputs()[%s] not idempotent", kind)
		}
	}
}

func strp(s string) *string { return &s }
