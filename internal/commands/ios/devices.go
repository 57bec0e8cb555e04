package ios

import (
	"context"
	"errors"
	"fmt"

	"github.com/flow-cli/flow/internal/clix"
	"github.com/flow-cli/flow/internal/printer"
	"github.com/flow-cli/flow/internal/toolchain"
	"github.com/urfave/cli/v3"
)

var errNoXcode = errors.New("xcrun not found: iOS tooling requires Xcode on macOS")

// devicesCmd returns the "ios devices" subcommand.
func devicesCmd(env *clix.Env) *cli.Command {
	return &cli.Command{
		Name:  "devices",
		Usage: "List simulators and connected iOS devices",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "runtimes", Usage: "Also list installed simulator runtimes"},
			&cli.BoolFlag{Name: "all", Aliases: []string{"a"}, Usage: "Include unavailable simulators"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			sims, err := env.Toolchain.Simulators(ctx)
			if err != nil {
				if errors.Is(err, toolchain.ErrNotInstalled) {
					return errNoXcode
				}
				return err
			}

			printer.PrintHeader("Simulators")
			rows := make([][]string, 0, len(sims))
			for _, s := range sims {
				if !s.Available && !cmd.Bool("all") {
					continue
				}
				state := printer.Faint(s.State)
				if s.Booted() {
					state = printer.Success(s.State)
				}
				rows = append(rows, []string{s.Name, s.Runtime, state, s.UDID})
			}
			if len(rows) == 0 {
				printer.PrintFaint("No simulators found.")
			} else {
				printer.PrintTable([]string{"Name", "Runtime", "State", "UDID"}, rows)
			}

			// Physical devices are best effort: flutter may be missing or slow.
			if devices, err := env.Toolchain.FlutterDevices(ctx); err != nil {
				env.Logger.Debug("flutter devices failed", "error", err)
			} else if phys := toolchain.PhysicalIOS(devices); len(phys) > 0 {
				fmt.Println()
				printer.PrintHeader("Physical devices")
				prow := make([][]string, 0, len(phys))
				for _, d := range phys {
					prow = append(prow, []string{d.Name, d.SDK, d.ID})
				}
				printer.PrintTable([]string{"Name", "SDK", "ID"}, prow)
			}

			if !cmd.Bool("runtimes") {
				return nil
			}
			runtimes, err := env.Toolchain.Runtimes(ctx)
			if err != nil {
				return err
			}
			fmt.Println()
			printer.PrintHeader("Runtimes")
			rrows := make([][]string, 0, len(runtimes))
			for _, r := range runtimes {
				avail := printer.Success("yes")
				if !r.Available {
					avail = printer.Warning("no")
				}
				rrows = append(rrows, []string{r.Name, r.Version, avail})
			}
			printer.PrintTable([]string{"Runtime", "Version", "Available"}, rrows)
			return nil
		},
	}
}
