// Package clitest runs flow commands against temp projects and a fake
// toolchain.
package clitest

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/flow-cli/flow/internal/clix"
	"github.com/flow-cli/flow/internal/config"
	"github.com/flow-cli/flow/internal/core"
	"github.com/flow-cli/flow/internal/testutils"
	"github.com/flow-cli/flow/internal/toolchain"
	"github.com/flow-cli/flow/internal/toolchain/toolchaintest"
	"github.com/urfave/cli/v3"
)

// NewEnv returns an Env rooted at startDir with a throwaway config file.
func NewEnv(t *testing.T, startDir string, runner toolchain.Runner) *clix.Env {
	t.Helper()
	if runner == nil {
		runner = toolchaintest.NewFakeRunner()
	}
	cfg := config.Default()
	cfg.SetPath(filepath.Join(t.TempDir(), "config.yaml"))
	return &clix.Env{
		FS:        core.NewOSFileSystem(),
		Config:    cfg,
		Toolchain: toolchain.New(runner),
		Logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
		StartDir:  startDir,
		Getwd:     func() (string, error) { return startDir, nil },
	}
}

// Run executes cmd under a bare root command and returns captured stdout.
// args excludes the program name.
func Run(t *testing.T, cmd *cli.Command, args ...string) (string, error) {
	t.Helper()
	root := &cli.Command{
		Name:           "flow",
		Commands:       []*cli.Command{cmd},
		ExitErrHandler: func(context.Context, *cli.Command, error) {},
	}
	var runErr error
	out, err := testutils.CaptureStdout(func() {
		runErr = root.Run(context.Background(), append([]string{"flow"}, args...))
	})
	if err != nil {
		t.Fatalf("failed to capture stdout: %v", err)
	}
	return out, runErr
}
