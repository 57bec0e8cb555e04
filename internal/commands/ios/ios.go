package ios

import (
	"github.com/flow-cli/flow/internal/clix"
	"github.com/urfave/cli/v3"
)

// Run returns the "ios" parent command.
func Run(env *clix.Env) *cli.Command {
	return &cli.Command{
		Name:      "ios",
		Usage:     "Build and run iOS apps and manage simulators",
		UsageText: "flow ios <subcommand> [--flags]",
		Commands: []*cli.Command{
			buildCmd(env),
			devicesCmd(env),
			simulatorCmd(env),
			runCmd(env),
		},
	}
}
