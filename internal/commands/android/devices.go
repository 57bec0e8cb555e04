package android

import (
	"context"
	"errors"

	"github.com/flow-cli/flow/internal/clix"
	"github.com/flow-cli/flow/internal/printer"
	"github.com/flow-cli/flow/internal/toolchain"
	"github.com/urfave/cli/v3"
)

// devicesCmd returns the "android devices" subcommand.
func devicesCmd(env *clix.Env) *cli.Command {
	return &cli.Command{
		Name:  "devices",
		Usage: "List devices and emulators known to adb",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			devices, err := env.Toolchain.AdbDevices(ctx)
			if err != nil {
				if errors.Is(err, toolchain.ErrNotInstalled) {
					return errNoAdb
				}
				return err
			}
			if len(devices) == 0 {
				printer.PrintWarning("No Android devices connected.")
				printer.PrintFaint("Start an emulator or connect a device with USB debugging enabled.")
				return nil
			}

			rows := make([][]string, 0, len(devices))
			for _, d := range devices {
				state := printer.Success(d.State)
				if !d.Online {
					state = printer.Warning(d.State)
				}
				rows = append(rows, []string{
					d.ID,
					d.Type,
					state,
					valueOr(d.Model, "-"),
					valueOr(d.Props["android_version"], "-"),
					valueOr(d.Props["api_level"], "-"),
				})
			}
			printer.PrintTable([]string{"ID", "Type", "State", "Model", "Android", "API"}, rows)
			return nil
		},
	}
}

func valueOr(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
