package android

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

// buildCmd returns the "android build" subcommand.
func buildCmd(env *clix.Env) *cli.Command {
	return &cli.Command{
		Name:  "build",
		Usage: "Build an APK or App Bundle",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "flavor", Aliases: []string{"f"}, Usage: "Flavor to build"},
			&cli.BoolFlag{Name: "all-flavors", Usage: "Build every flavor"},
			&cli.StringFlag{Name: "mode", Aliases: []string{"m"}, Usage: "Build mode: debug, profile or release", Value: "debug"},
			&cli.StringFlag{Name: "format", Usage: "Output format: apk or appbundle", Value: "apk"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return runBuild(ctx, env, cmd)
		},
	}
}

func runBuild(ctx context.Context, env *clix.Env, cmd *cli.Command) error {
	mode, err := toolchain.ParseMode(cmd.String("mode"))
	if err != nil {
		return err
	}
	target, err := toolchain.ParseAndroidTarget(cmd.String("format"))
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
	reqs, err := builder.Plan(p, toolchain.BuildRequest{Target: target, Mode: mode, Verbose: env.Verbose}, flavor, all)
	if err != nil {
		return err
	}

	if env.Config != nil && env.Config.General.AutoPubGet {
		if err := env.Toolchain.PubGet(ctx, p.Root()); err != nil {
			return fmt.Errorf("flutter pub get failed: %w", err)
		}
	}

	printer.PrintHeader(fmt.Sprintf("Building Android app: %s", p.Name()))
	b := builder.New(env.FS, env.Toolchain, env.Logger).WithSpinner(tui.Spin)
	if env.Verbose {
		b.WithStream(os.Stdout)
	}
	results := b.Run(ctx, p, reqs)

	builder.PrintResults(p.Root(), results)
	return builder.Err(results)
}
