package configcmd

import (
	"github.com/flow-cli/flow/internal/clix"
	"github.com/flow-cli/flow/internal/tui"
	"github.com/urfave/cli/v3"
)

// confirmPrompt is swapped in tests.
var confirmPrompt = tui.Confirm

// Run returns the "config" command.
func Run(env *clix.Env) *cli.Command {
	return &cli.Command{
		Name:      "config",
		Usage:     "Show and edit the global flow configuration",
		UsageText: "flow config <subcommand> [args]",
		Commands: []*cli.Command{
			listCmd(env),
			getCmd(env),
			setCmd(env),
			resetCmd(env),
			pathCmd(env),
			validateCmd(env),
		},
	}
}
