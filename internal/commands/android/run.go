package android

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/flow-cli/flow/internal/clix"
	"github.com/flow-cli/flow/internal/printer"
	"github.com/flow-cli/flow/internal/toolchain"
	"github.com/urfave/cli/v3"
)

// Terminal streams for flutter run; swapped in tests.
var (
	runStdin  io.Reader = os.Stdin
	runStdout io.Writer = os.Stdout
)

// runCmd returns the "android run" subcommand.
func runCmd(env *clix.Env) *cli.Command {
	return &cli.Command{
		Name:  "run",
		Usage: "Run the app on a connected device or emulator",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "flavor", Aliases: []string{"f"}, Usage: "Flavor to run"},
			&cli.StringFlag{Name: "device", Aliases: []string{"d"}, Usage: "adb serial of the target device"},
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
	p, err := env.RequireProject()
	if err != nil {
		return err
	}
	env.RememberProject(p)

	device := cmd.String("device")
	if device == "" {
		devices, err := onlineDevices(ctx, env, "")
		if err != nil {
			return err
		}
		d, err := chooseDevice(devices)
		if err != nil {
			return err
		}
		device = d.ID
	}

	flavorName, err := env.ChooseOneFlavor(p, cmd.String("flavor"), "Select flavor to run")
	if err != nil {
		return err
	}

	printer.PrintHeader(fmt.Sprintf("Running %s", p.Name()))
	printer.PrintKeyValue("Device", device)
	if flavorName != "" {
		printer.PrintKeyValue("Flavor", flavorName)
	}
	printer.PrintKeyValue("Mode", string(mode))
	printer.PrintFaint("Press r to hot reload, R to hot restart, q to quit.")
	fmt.Println()

	req := toolchain.RunRequest{Device: device, Flavor: flavorName, Mode: mode}
	if err := env.Toolchain.FlutterRun(ctx, p.Root(), req, runStdin, runStdout); err != nil {
		if ctx.Err() != nil {
			printer.PrintFaint("App stopped.")
			return nil
		}
		return fmt.Errorf("flutter run failed: %w", err)
	}
	return nil
}
