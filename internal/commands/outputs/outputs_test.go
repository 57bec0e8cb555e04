package outputs

import (
	"context"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/flow-cli/flow/internal/clix/clitest"
	"github.com/flow-cli/flow/internal/core"
	"github.com/flow-cli/flow/internal/project"
	"github.com/flow-cli/flow/internal/testutils"
)

func builtProject(t *testing.T) string {
	t.Helper()
	root := testutils.NewFlutterProject(t)
	testutils.WriteFile(t, root, "build/app/outputs/flutter-apk/app-release.apk", strings.Repeat("a", 1000))
	testutils.WriteFile(t, root, "build/app/outputs/bundle/release/app-release.aab", strings.Repeat("b", 500))
	testutils.WriteFile(t, root, "build/ios/iphoneos/Runner.app/Runner", strings.Repeat("c", 300))
	testutils.WriteFile(t, root, "build/ios/iphoneos/Runner.app/Info.plist", strings.Repeat("d", 200))
	testutils.WriteFile(t, root, "build/web/index.html", "<html></html>")
	return root
}

func TestCollect(t *testing.T) {
	root := builtProject(t)
	fs := core.NewOSFileSystem()
	list := Collect(context.Background(), fs, project.New(fs, root))

	if len(list) != 4 {
		t.Fatalf("got %d artifacts, want 4: %+v", len(list), list)
	}
	want := []struct {
		kind project.OutputKind
		size int64
	}{
		{project.AndroidAPK, 1000},
		{project.AndroidBundle, 500},
		{project.IOSApp, 500},
		{project.WebBuild, 13},
	}
	for i, w := range want {
		if list[i].Kind != w.kind || list[i].Size != w.size {
			t.Errorf("artifact %d = %+v, want kind %s size %d", i, list[i], w.kind, w.size)
		}
	}
}

func TestOutputsCmd(t *testing.T) {
	root := builtProject(t)
	out, err := clitest.Run(t, Run(clitest.NewEnv(t, root, nil)), "outputs")
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"Android APK", filepath.Join("build", "app", "outputs", "flutter-apk", "app-release.apk"), "1.0 kB", "iOS app", "Web build", "Total:"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestOutputsCmd_JSONEmpty(t *testing.T) {
	root := testutils.NewFlutterProject(t)
	out, err := clitest.Run(t, Run(clitest.NewEnv(t, root, nil)), "outputs", "--format", "json")
	if err != nil {
		t.Fatal(err)
	}
	var list []Artifact
	if err := json.Unmarshal([]byte(out), &list); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, out)
	}
	if len(list) != 0 {
		t.Errorf("list = %+v, want empty", list)
	}
	if strings.TrimSpace(out) != "[]" {
		t.Errorf("output = %q, want []", out)
	}
}

func TestOutputsCmd_Empty(t *testing.T) {
	root := testutils.NewFlutterProject(t)
	out, err := clitest.Run(t, Run(clitest.NewEnv(t, root, nil)), "outputs")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "No build outputs found.") {
		t.Errorf("output = %q", out)
	}
}
