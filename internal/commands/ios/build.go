package ios

import (
	"context"
	"fmt"
	"os"

	"github.com/flow-cli/flow/internal/builder"
	"github.com/flow-cli/flow/internal/clix"
	"github.com/flow-cli/flow/internal/printer"
	"github.com/flow-cli/flow/internal/toolchain"
	"github.com/flow-cli/flow/internal/tui"
	"github.com/urfave/cli/v3"
)

// buildCmd returns the "ios build" subcommand.
func buildCmd(env *clix.Env) *cli.Command {
	return &cli.Command{
		Name:  "build",
		Usage: "Build the iOS app",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "flavor", Aliases: []string{"f"}, Usage: "Flavor (scheme) to build"},
			&cli.BoolFlag{Name: "all-flavors", Usage: "Build every flavor"},
			&cli.StringFlag{Name: "mode", Aliases: []string{"m"}, Usage: "Build mode: debug, profile or release", Value: "debug"},
			&cli.BoolFlag{Name: "codesign", Usage: "Sign the app (requires a configured team)"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			mode, err := toolchain.ParseMode(cmd.String("mode"))
			if err != nil {
				return err
			}
			p, err := env.RequireProject()
			if err != nil {
				return err
			}
			env.RememberProject(p)

			flavor, all, err := env.ChooseFlavor(p, cmd.String("flavor"), cmd.Bool("all-flavors"), "Select flavor to build")
			if err != nil {
				return err
			}
			base := toolchain.BuildRequest{
				Target:  toolchain.TargetIOS,
				Mode:    mode,
				NoSign:  !cmd.Bool("codesign"),
				Verbose: env.Verbose,
			}
			reqs, err := builder.Plan(p, base, flavor, all)
			if err != nil {
				return err
			}

			if env.Config != nil && env.Config.General.AutoPubGet {
				if err := env.Toolchain.PubGet(ctx, p.Root()); err != nil {
					return fmt.Errorf("flutter pub get failed: %w", err)
				}
			}

			printer.PrintHeader(fmt.Sprintf("Building iOS app: %s", p.Name()))
			b := builder.New(env.FS, env.Toolchain, env.Logger).WithSpinner(tui.Spin)
			if env.Verbose {
				b.WithStream(os.Stdout)
			}
			results := b.Run(ctx, p, reqs)
			builder.PrintResults(p.Root(), results)
			return builder.Err(results)
		},
	}
}
