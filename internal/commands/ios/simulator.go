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

// simulatorCmd returns the "ios simulator" subcommand group.
func simulatorCmd(env *clix.Env) *cli.Command {
	return &cli.Command{
		Name:    "simulator",
		Aliases: []string{"sim"},
		Usage:   "Boot or shut down a simulator",
		Commands: []*cli.Command{
			simStateCmd(env, "boot", true),
			simStateCmd(env, "shutdown", false),
		},
	}
}

func simStateCmd(env *clix.Env, name string, boot bool) *cli.Command {
	return &cli.Command{
		Name:      name,
		Usage:     fmt.Sprintf("%s a simulator by name or UDID", name),
		ArgsUsage: "<name|udid>",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			id := cmd.Args().First()
			if id == "" {
				return fmt.Errorf("missing simulator name or UDID")
			}
			sims, err := env.Toolchain.Simulators(ctx)
			if err != nil {
				if errors.Is(err, toolchain.ErrNotInstalled) {
					return errNoXcode
				}
				return err
			}
			sim, ok := toolchain.FindSimulator(sims, id)
			if !ok {
				return fmt.Errorf("simulator %q not found", id)
			}
			if sim.Booted() == boot {
				printer.PrintFaint(fmt.Sprintf("%s is already %s", sim.Name, sim.State))
				return nil
			}
			if err := env.Toolchain.SetSimulatorState(ctx, sim.UDID, boot); err != nil {
				return fmt.Errorf("failed to %s %s: %w", name, sim.Name, err)
			}
			printer.PrintSuccess(fmt.Sprintf("%s %s (%s)", pastTense(name), sim.Name, sim.Runtime))
			return nil
		},
	}
}

func pastTense(action string) string {
	if action == "boot" {
		return "Booted"
	}
	return "Shut down"
}
