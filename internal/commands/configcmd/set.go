package configcmd

import (
	"context"
	"fmt"

	"github.com/flow-cli/flow/internal/clix"
	"github.com/flow-cli/flow/internal/config"
	"github.com/flow-cli/flow/internal/printer"
	"github.com/flow-cli/flow/internal/tui"
	"github.com/urfave/cli/v3"
)

func setCmd(env *clix.Env) *cli.Command {
	return &cli.Command{
		Name:      "set",
		Usage:     "Change one setting",
		ArgsUsage: "<key> <value>",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.Args().Len() < 2 {
				return fmt.Errorf("usage: flow config set <key> <value>")
			}
			key, value := cmd.Args().Get(0), cmd.Args().Get(1)

			// Validate a copy so a rejected value never reaches the file.
			next := env.Config.Clone()
			if err := next.Set(key, value); err != nil {
				return err
			}
			if err := next.Validate(); err != nil {
				return err
			}
			*env.Config = *next
			if err := config.Save(env.Config); err != nil {
				return fmt.Errorf("failed to save configuration: %w", err)
			}
			env.Logger.Debug("config updated", "key", key, "path", env.Config.Path())
			printer.PrintSuccess(fmt.Sprintf("Set %s = %s", key, value))
			return nil
		},
	}
}

func resetCmd(env *clix.Env) *cli.Command {
	return &cli.Command{
		Name:  "reset",
		Usage: "Restore the default configuration",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "yes", Aliases: []string{"y"}, Usage: "Skip the confirmation prompt"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if !cmd.Bool("yes") && tui.IsInteractive() {
				ok, err := confirmPrompt("Reset the flow configuration to defaults?", "Aliases and recent projects are cleared too.")
				if err != nil {
					return err
				}
				if !ok {
					printer.PrintFaint("Configuration unchanged.")
					return nil
				}
			}
			env.Config.Reset()
			if err := config.Save(env.Config); err != nil {
				return fmt.Errorf("failed to save configuration: %w", err)
			}
			printer.PrintSuccess("Configuration reset to defaults")
			return nil
		},
	}
}
