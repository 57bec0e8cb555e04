package ios

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/flow-cli/flow/internal/clix"
	"github.com/flow-cli/flow/internal/printer"
	"github.com/flow-cli/flow/internal/toolchain"
	"github.com/flow-cli/flow/internal/tui"
	"github.com/urfave/cli/v3"
)

var errNoTargets = errors.New("no iOS devices or simulators available: install a simulator runtime in Xcode or connect a device")

// Swapped in tests.
var (
	selectPrompt           = tui.Select
	runStdin     io.Reader = os.Stdin
	runStdout    io.Writer = os.Stdout
)

// runTarget is a device flutter run can launch on.
type runTarget struct {
	ID        string
	Name      string
	Simulator *toolchain.Simulator
}

func (t runTarget) label() string {
	if t.Simulator == nil {
		return fmt.Sprintf("%s (device)", t.Name)
	}
	return fmt.Sprintf("%s (%s, %s)", t.Name, t.Simulator.Runtime, t.Simulator.State)
}

// runCmd returns the "ios run" subcommand.
func runCmd(env *clix.Env) *cli.Command {
	return &cli.Command{
		Name:  "run",
		Usage: "Run the app on a simulator or connected device",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "flavor", Aliases: []string{"f"}, Usage: "Flavor to run"},
			&cli.StringFlag{Name: "device", Aliases: []string{"d"}, Usage: "Simulator or device name or UDID"},
			&cli.StringFlag{Name: "mode", Aliases: []string{"m"}, Usage: "Run mode: debug, profile or release", Value: "debug"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return runApp(ctx, env, cmd)
		},
	}
}

func runApp(ctx context.Context, env *clix.Env, cmd *cli.Command) error {
	mode, err := toolchain.ParseMode(cmd.String("mode"))
	if err != nil {
		return err
	}
	if !env.Toolchain.Available("xcrun") {
		return errNoXcode
	}
	p, err := env.RequireProject()
	if err != nil {
		return err
	}
	env.RememberProject(p)

	targets, err := runTargets(ctx, env)
	if err != nil {
		return err
	}
	target, err := chooseTarget(targets, cmd.String("device"))
	if err != nil {
		return err
	}

	flavorName, err := env.ChooseOneFlavor(p, cmd.String("flavor"), "Select flavor to run")
	if err != nil {
		return err
	}

	if sim := target.Simulator; sim != nil && !sim.Booted() {
		err := tui.Spin(ctx, "Booting "+sim.Name, func(ctx context.Context) error {
			return env.Toolchain.SetSimulatorState(ctx, sim.UDID, true)
		})
		if err != nil {
			return fmt.Errorf("failed to boot %s: %w", sim.Name, err)
		}
		printer.PrintSuccess(fmt.Sprintf("Booted %s (%s)", sim.Name, sim.Runtime))
	}

	printer.PrintHeader(fmt.Sprintf("Running %s", p.Name()))
	printer.PrintKeyValue("Device", target.label())
	if flavorName != "" {
		printer.PrintKeyValue("Flavor", flavorName)
	}
	printer.PrintKeyValue("Mode", string(mode))
	printer.PrintFaint("Press r to hot reload, R to hot restart, q to quit.")
	fmt.Println()

	req := toolchain.RunRequest{Device: target.ID, Flavor: flavorName, Mode: mode}
	if err := env.Toolchain.FlutterRun(ctx, p.Root(), req, runStdin, runStdout); err != nil {
		if ctx.Err() != nil {
			printer.PrintFaint("App stopped.")
			return nil
		}
		return fmt.Errorf("flutter run failed: %w", err)
	}
	return nil
}

// runTargets lists physical iOS devices followed by available simulators,
// booted ones first. Physical devices are best effort.
func runTargets(ctx context.Context, env *clix.Env) ([]runTarget, error) {
	var targets []runTarget
	if devices, err := env.Toolchain.FlutterDevices(ctx); err != nil {
		env.Logger.Debug("flutter devices failed", "error", err)
	} else {
		for _, d := range toolchain.PhysicalIOS(devices) {
			targets = append(targets, runTarget{ID: d.ID, Name: d.Name})
		}
	}

	sims, err := env.Toolchain.Simulators(ctx)
	if err != nil {
		if errors.Is(err, toolchain.ErrNotInstalled) {
			return nil, errNoXcode
		}
		return nil, err
	}
	for _, booted := range []bool{true, false} {
		for i := range sims {
			if sims[i].Available && sims[i].Booted() == booted {
				targets = append(targets, runTarget{ID: sims[i].UDID, Name: sims[i].Name, Simulator: &sims[i]})
			}
		}
	}
	return targets, nil
}

// chooseTarget resolves --device, or picks a target when none is given: a
// single candidate, the only booted simulator, or an interactive choice.
func chooseTarget(targets []runTarget, identifier string) (runTarget, error) {
	if identifier != "" {
		for _, t := range targets {
			if t.ID == identifier || strings.EqualFold(t.Name, identifier) {
				return t, nil
			}
		}
		return runTarget{}, fmt.Errorf("device %q not found: run 'flow ios devices' to list devices", identifier)
	}

	switch len(targets) {
	case 0:
		return runTarget{}, errNoTargets
	case 1:
		return targets[0], nil
	}

	if !tui.IsInteractive() {
		var booted []runTarget
		physical := false
		for _, t := range targets {
			if t.Simulator == nil {
				physical = true
			} else if t.Simulator.Booted() {
				booted = append(booted, t)
			}
		}
		if !physical && len(booted) == 1 {
			return booted[0], nil
		}
		return runTarget{}, fmt.Errorf("%d devices available: pass --device <name|udid>", len(targets))
	}

	labels := make([]string, len(targets))
	for i, t := range targets {
		labels[i] = t.label()
	}
	choice, err := selectPrompt("Select iOS device", "", labels)
	if err != nil {
		return runTarget{}, err
	}
	for i, label := range labels {
		if label == choice {
			return targets[i], nil
		}
	}
	return runTarget{}, fmt.Errorf("no device selected")
}
