package release

import (
	"github.com/flow-cli/flow/internal/clix"
	"github.com/urfave/cli/v3"
)

// Run returns the "release" parent command.
func Run(env *clix.Env) *cli.Command {
	return &cli.Command{
		Name:      "release",
		Usage:     "Manage the app version in pubspec.yaml",
		UsageText: "flow release <subcommand> [--flags]",
		Commands: []*cli.Command{
			bumpCmd(env),
			showCmd(env),
		},
	}
}
