package android

import (
	"github.com/flow-cli/flow/internal/clix"
	"github.com/urfave/cli/v3"
)

// Run returns the "android" parent command.
func Run(env *clix.Env) *cli.Command {
	return &cli.Command{
		Name:      "android",
		Usage:     "Build, install and run Android apps",
		UsageText: "flow android <subcommand> [--flags]",
		Commands: []*cli.Command{
			buildCmd(env),
			devicesCmd(env),
			installCmd(env),
			runCmd(env),
		},
	}
}
