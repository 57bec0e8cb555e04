package configcmd

import (
	"context"
	"fmt"
	"os"
	"slices"

	"github.com/flow-cli/flow/internal/clix"
	"github.com/flow-cli/flow/internal/printer"
	"github.com/urfave/cli/v3"
)

func listCmd(env *clix.Env) *cli.Command {
	return &cli.Command{
		Name:    "list",
		Aliases: []string{"ls"},
		Usage:   "List every setting",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "format", Usage: "Output format: text or json", Value: string(clix.FormatText)},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			format, err := clix.ParseOutputFormat(cmd.String("format"))
			if err != nil {
				return err
			}
			values := env.Config.Values()
			if format == clix.FormatJSON {
				return clix.WriteJSON(os.Stdout, values)
			}

			keys := make([]string, 0, len(values))
			for k := range values {
				keys = append(keys, k)
			}
			slices.Sort(keys)

			rows := make([][]string, 0, len(keys))
			for _, k := range keys {
				v := values[k]
				if v == "" {
					v = printer.Faint("(unset)")
				}
				rows = append(rows, []string{k, v})
			}
			printer.PrintTable([]string{"Key", "Value"}, rows)
			if path := env.Config.Path(); path != "" {
				printer.PrintFaint(fmt.Sprintf("File: %s", path))
			}
			return nil
		},
	}
}

func getCmd(env *clix.Env) *cli.Command {
	return &cli.Command{
		Name:      "get",
		Usage:     "Print one setting",
		ArgsUsage: "<key>",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			key := cmd.Args().First()
			if key == "" {
				return fmt.Errorf("missing key: run 'flow config list' to see the available keys")
			}
			v, err := env.Config.Get(key)
			if err != nil {
				return err
			}
			fmt.Println(v)
			return nil
		},
	}
}

func pathCmd(env *clix.Env) *cli.Command {
	return &cli.Command{
		Name:  "path",
		Usage: "Print the configuration file path",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			fmt.Println(env.Config.Path())
			return nil
		},
	}
}
