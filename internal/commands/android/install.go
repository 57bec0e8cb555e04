package android

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/flow-cli/flow/internal/clix"
	"github.com/flow-cli/flow/internal/core"
	"github.com/flow-cli/flow/internal/flavor"
	"github.com/flow-cli/flow/internal/printer"
	"github.com/flow-cli/flow/internal/project"
	"github.com/flow-cli/flow/internal/toolchain"
	"github.com/flow-cli/flow/internal/tui"
	"github.com/urfave/cli/v3"
)

// multiSelectPrompt is swapped in tests.
var multiSelectPrompt = tui.MultiSelect

// apkModeOrder is tried when a flavor has several APKs and no --mode is given.
var apkModeOrder = []toolchain.Mode{toolchain.ModeDebug, toolchain.ModeRelease, toolchain.ModeProfile}

// installCmd returns the "android install" subcommand.
func installCmd(env *clix.Env) *cli.Command {
	return &cli.Command{
		Name:  "install",
		Usage: "Install built APKs on connected devices",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "apk", Usage: "Path to an APK file to install"},
			&cli.StringFlag{Name: "flavor", Aliases: []string{"f"}, Usage: "Install the APK built for a flavor"},
			&cli.StringFlag{Name: "mode", Aliases: []string{"m"}, Usage: "Only consider APKs built in this mode"},
			&cli.BoolFlag{Name: "all", Usage: "Install every APK in the build output"},
			&cli.StringFlag{Name: "device", Aliases: []string{"d"}, Usage: "Install on this device only"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return runInstall(ctx, env, cmd)
		},
	}
}

func runInstall(ctx context.Context, env *clix.Env, cmd *cli.Command) error {
	var mode toolchain.Mode
	if m := cmd.String("mode"); m != "" {
		parsed, err := toolchain.ParseMode(m)
		if err != nil {
			return err
		}
		mode = parsed
	}

	devices, err := onlineDevices(ctx, env, cmd.String("device"))
	if err != nil {
		return err
	}

	apks, root, err := chooseApks(ctx, env, cmd, mode)
	if err != nil {
		return err
	}
	if len(apks) == 0 {
		return nil
	}

	printer.PrintHeader(fmt.Sprintf("Installing %d APK(s) on %d device(s)", len(apks), len(devices)))

	rows := make([][]string, 0, len(apks)*len(devices))
	failed := 0
	for _, apk := range apks {
		for _, d := range devices {
			name := filepath.Base(apk)
			err := tui.Spin(ctx, fmt.Sprintf("Installing %s on %s", name, deviceLabel(d)), func(ctx context.Context) error {
				return env.Toolchain.InstallApk(ctx, d.ID, apk)
			})
			status := printer.Success("installed")
			if err != nil {
				failed++
				status = printer.Error(err.Error())
				env.Logger.Debug("install failed", "apk", apk, "device", d.ID, "error", err)
			}
			rows = append(rows, []string{relTo(root, apk), deviceLabel(d), status})
		}
	}
	printer.PrintTable([]string{"APK", "Device", "Status"}, rows)

	total := len(apks) * len(devices)
	if failed > 0 {
		return fmt.Errorf("%d of %d installations failed", failed, total)
	}
	printer.PrintSuccess(fmt.Sprintf("Completed %d installation(s)", total))
	return nil
}

// chooseApks resolves which APKs to install and the project root they are
// shown relative to ("" for an explicit --apk).
func chooseApks(ctx context.Context, env *clix.Env, cmd *cli.Command, mode toolchain.Mode) ([]string, string, error) {
	if path := cmd.String("apk"); path != "" {
		if !core.Exists(ctx, env.FS, path) {
			return nil, "", fmt.Errorf("APK file not found: %s", path)
		}
		return []string{path}, "", nil
	}

	p, err := env.RequireProject()
	if err != nil {
		return nil, "", err
	}
	outputs := p.BuildOutputs()

	if name := cmd.String("flavor"); name != "" {
		apk, ok := pickApk(flavor.ApksFor(outputs, name), mode)
		if !ok {
			return nil, "", fmt.Errorf("APK for flavor %q not found: run 'flow android build --flavor %s' first", name, name)
		}
		return []string{apk}, p.Root(), nil
	}

	apks := filterMode(outputs[project.AndroidAPK], mode)
	if cmd.Bool("all") || len(apks) <= 1 {
		if len(apks) == 0 {
			printer.PrintWarning("No APK files found. Build your app first with 'flow android build'.")
		}
		return apks, p.Root(), nil
	}
	if !tui.IsInteractive() {
		return nil, "", fmt.Errorf("found %d APKs: pass --apk, --flavor or --all", len(apks))
	}

	labels := make([]string, len(apks))
	for i, apk := range apks {
		labels[i] = fmt.Sprintf("%s (%s)", relTo(p.Root(), apk), printer.Size(fileSize(ctx, env.FS, apk)))
	}
	chosen, err := multiSelectPrompt("Select APKs to install", labels)
	if err != nil {
		return nil, "", err
	}
	if len(chosen) == 0 {
		printer.PrintWarning("No APKs selected for installation.")
	}
	var selected []string
	for i, label := range labels {
		for _, c := range chosen {
			if c == label {
				selected = append(selected, apks[i])
			}
		}
	}
	return selected, p.Root(), nil
}

// pickApk returns the APK built in mode, or the first one found in
// apkModeOrder when mode is empty.
func pickApk(apks []string, mode toolchain.Mode) (string, bool) {
	modes := apkModeOrder
	if mode != "" {
		modes = []toolchain.Mode{mode}
	}
	for _, m := range modes {
		if match := filterMode(apks, m); len(match) > 0 {
			return match[0], true
		}
	}
	return "", false
}

// filterMode keeps the APKs named *-<mode>.apk. An empty mode keeps all.
func filterMode(apks []string, mode toolchain.Mode) []string {
	if mode == "" {
		return apks
	}
	out := []string{}
	suffix := "-" + string(mode) + ".apk"
	for _, apk := range apks {
		if strings.HasSuffix(filepath.Base(apk), suffix) {
			out = append(out, apk)
		}
	}
	return out
}

func fileSize(ctx context.Context, fs core.FileSystem, path string) int64 {
	info, err := fs.Stat(ctx, path)
	if err != nil {
		return 0
	}
	return info.Size()
}

func relTo(root, path string) string {
	if root == "" {
		return path
	}
	if rel, err := filepath.Rel(root, path); err == nil {
		return rel
	}
	return path
}
