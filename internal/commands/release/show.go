package release

import (
	"context"
	"fmt"

	"github.com/flow-cli/flow/internal/clix"
	"github.com/flow-cli/flow/internal/pubver"
	"github.com/urfave/cli/v3"
)

// showCmd returns the "release show" subcommand.
func showCmd(env *clix.Env) *cli.Command {
	return &cli.Command{
		Name:  "show",
		Usage: "Print the current pubspec version",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			p, err := env.RequireProject()
			if err != nil {
				return err
			}
			content, err := env.FS.ReadFile(ctx, p.ManifestPath())
			if err != nil {
				return err
			}
			v, err := pubver.Find(content)
			if err != nil {
				return err
			}
			fmt.Println(v.String())
			return nil
		},
	}
}
