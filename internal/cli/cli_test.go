package cli

import (
	"context"
	"log/slog"
	"slices"
	"strings"
	"testing"

	"github.com/flow-cli/flow/internal/clix/clitest"
	"github.com/flow-cli/flow/internal/testutils"
	"github.com/flow-cli/flow/internal/toolchain/toolchaintest"
	urfavecli "github.com/urfave/cli/v3"
)

func TestNew_RootFlags(t *testing.T) {
	root := testutils.NewFlutterProject(t)
	env := clitest.NewEnv(t, "", nil)
	env.Level = new(slog.LevelVar)

	app := New(env)
	app.ExitErrHandler = func(context.Context, *urfavecli.Command, error) {}

	out, err := testutils.CaptureStdout(func() {
		err := app.Run(context.Background(), []string{"flow", "--verbose", "--no-color", "-C", root, "info"})
		if err != nil {
			t.Errorf("Run() error = %v", err)
		}
	})
	if err != nil {
		t.Fatal(err)
	}
	if env.StartDir != root || !env.Verbose {
		t.Errorf("env not configured: StartDir=%q Verbose=%v", env.StartDir, env.Verbose)
	}
	if env.Level.Level() != slog.LevelDebug {
		t.Errorf("level = %v, want debug", env.Level.Level())
	}
	if !strings.Contains(out, "demo_app") {
		t.Errorf("info output = %q", out)
	}
}

func TestConfigure_FromConfig(t *testing.T) {
	env := clitest.NewEnv(t, "", nil)
	env.Level = new(slog.LevelVar)
	env.Config.General.VerboseOutput = true

	configure(env, false, false, "")
	if !env.Verbose || env.Level.Level() != slog.LevelDebug {
		t.Errorf("verbose_output not applied: Verbose=%v level=%v", env.Verbose, env.Level.Level())
	}

	env.Config.General.VerboseOutput = false
	configure(env, false, true, "/tmp/app")
	if env.Verbose || env.Level.Level() != slog.LevelWarn || env.StartDir != "/tmp/app" {
		t.Errorf("env = %+v level=%v", env, env.Level.Level())
	}
}

func TestCommands_Names(t *testing.T) {
	var names []string
	for _, c := range Commands(clitest.NewEnv(t, "", toolchaintest.NewFakeRunner())) {
		names = append(names, c.Name)
	}
	want := []string{"info", "deps", "flavors", "outputs", "analyze", "android", "ios", "generate", "release", "doctor", "config"}
	if !slices.Equal(names, want) {
		t.Errorf("commands = %v, want %v", names, want)
	}
}

func TestExpandAliases(t *testing.T) {
	builtin := Commands(clitest.NewEnv(t, "", nil))
	aliases := map[string]string{
		"b":     "android build --mode release",
		"info":  "deps",
		"loop":  "loop again",
		"blank": "  ",
	}

	tests := []struct {
		name    string
		args    []string
		want    []string
		wantErr string
	}{
		{"expands", []string{"flow", "b", "-f", "dev"}, []string{"flow", "android", "build", "--mode", "release", "-f", "dev"}, ""},
		{"after root flags", []string{"flow", "-v", "-C", "/app", "b"}, []string{"flow", "-v", "-C", "/app", "android", "build", "--mode", "release"}, ""},
		{"builtin wins", []string{"flow", "info"}, []string{"flow", "info"}, ""},
		{"unknown untouched", []string{"flow", "nope"}, []string{"flow", "nope"}, ""},
		{"flags only", []string{"flow", "--version"}, []string{"flow", "--version"}, ""},
		{"self reference", []string{"flow", "loop"}, nil, "refers to itself"},
		{"empty alias", []string{"flow", "blank"}, nil, "empty command"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExpandAliases(tt.args, aliases, builtin)
			if tt.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
					t.Fatalf("error = %v, want %q", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if !slices.Equal(got, tt.want) {
				t.Errorf("ExpandAliases() = %v, want %v", got, tt.want)
			}
		})
	}
}
