package project

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/flow-cli/flow/internal/core"
	"github.com/flow-cli/flow/internal/testutils"
)

func TestLocator_FindFromNestedDirectories(t *testing.T) {
	root := testutils.NewFlutterProject(t)
	nested := testutils.MkdirAll(t, root, "lib/src/widgets")
	want := testutils.RealPath(t, root)

	for _, start := range []string{root, filepath.Join(root, "lib"), nested} {
		t.Run(filepath.Base(start), func(t *testing.T) {
			p, err := Find(core.NewOSFileSystem(), start)
			if err != nil {
				t.Fatalf("Find(%s) error: %v", start, err)
			}
			if p.Root() != want {
				t.Errorf("Root() = %s, want %s", p.Root(), want)
			}
		})
	}
}

func TestLocator_NearestRootWins(t *testing.T) {
	outer := testutils.NewFlutterProject(t)
	inner := filepath.Join(outer, "packages", "inner_app")
	testutils.WriteFile(t, inner, "pubspec.yaml", "name: inner_app\nflutter:\n")
	start := testutils.MkdirAll(t, inner, "lib")

	p, err := Find(core.NewOSFileSystem(), start)
	if err != nil {
		t.Fatal(err)
	}
	if want := testutils.RealPath(t, inner); p.Root() != want {
		t.Errorf("Root() = %s, want %s", p.Root(), want)
	}
	if p.Name() != "inner_app" {
		t.Errorf("Name() = %s, want inner_app", p.Name())
	}
}

func TestLocator_SkipsInvalidManifests(t *testing.T) {
	outer := testutils.NewFlutterProject(t)
	pkg := filepath.Join(outer, "packages", "dart_only")
	testutils.WriteFile(t, pkg, "pubspec.yaml", "name: dart_only\n")
	broken := filepath.Join(pkg, "example")
	testutils.WriteFile(t, broken, "pubspec.yaml", "name: [broken\n")

	p, err := Find(core.NewOSFileSystem(), broken)
	if err != nil {
		t.Fatal(err)
	}
	if want := testutils.RealPath(t, outer); p.Root() != want {
		t.Errorf("Root() = %s, want %s", p.Root(), want)
	}
}

func TestLocator_NotFound(t *testing.T) {
	start := testutils.MkdirAll(t, t.TempDir(), "a/b/c")

	p, err := Find(core.NewOSFileSystem(), start)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("Find() error = %v, want ErrNotFound", err)
	}
	if p != nil {
		t.Errorf("Find() project = %v, want nil", p)
	}
}

func TestLocator_DefaultsToWorkingDirectory(t *testing.T) {
	root := testutils.NewFlutterProject(t)
	lib := testutils.MkdirAll(t, root, "lib")

	l := NewLocator(core.NewOSFileSystem())
	l.getwd = func() (string, error) { return lib, nil }

	p, err := l.Find("")
	if err != nil {
		t.Fatal(err)
	}
	if want := testutils.RealPath(t, root); p.Root() != want {
		t.Errorf("Root() = %s, want %s", p.Root(), want)
	}
}

func TestLocator_GetwdFailure(t *testing.T) {
	l := NewLocator(core.NewOSFileSystem())
	l.getwd = func() (string, error) { return "", errors.New("cwd removed") }

	if _, err := l.Find(""); !errors.Is(err, ErrNotFound) {
		t.Errorf("Find() error = %v, want ErrNotFound", err)
	}
}
