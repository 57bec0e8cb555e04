package flavors

import (
	"context"
	"fmt"

	"github.com/flow-cli/flow/internal/clix"
	"github.com/flow-cli/flow/internal/flavor"
	"github.com/flow-cli/flow/internal/printer"
	"github.com/urfave/cli/v3"
)

// initCmd returns the "flavors init" subcommand.
func initCmd(env *clix.Env) *cli.Command {
	return &cli.Command{
		Name:      "init",
		Usage:     "Create assets/configs/<name>/config.json",
		ArgsUsage: "<name>",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "app-name", Usage: "Display name of the app"},
			&cli.StringFlag{Name: "package", Usage: "Application id, e.g. com.example.app.dev"},
			&cli.StringFlag{Name: "color", Usage: "Main brand color as hex", Value: "#2196F3"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			name := cmd.Args().First()
			if name == "" {
				return fmt.Errorf("please provide a flavor name")
			}
			p, err := env.RequireProject()
			if err != nil {
				return err
			}

			appName := cmd.String("app-name")
			if appName == "" {
				appName = fmt.Sprintf("%s %s", p.Name(), name)
			}
			path, err := flavor.Scaffold(ctx, env.FS, p, name, flavor.Config{
				AppName:     appName,
				PackageName: cmd.String("package"),
				MainColor:   cmd.String("color"),
			})
			if err != nil {
				return err
			}

			printer.PrintSuccess(fmt.Sprintf("Created %s", path))
			printer.PrintFaint(fmt.Sprintf("Add %s and %s next to it to enable branding generation.", flavor.IconFile, flavor.SplashFile))
			return nil
		},
	}
}
