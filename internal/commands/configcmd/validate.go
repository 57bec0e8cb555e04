package configcmd

import (
	"context"
	"fmt"

	"github.com/flow-cli/flow/internal/clix"
	"github.com/flow-cli/flow/internal/config"
	"github.com/flow-cli/flow/internal/printer"
	"github.com/urfave/cli/v3"
)

func validateCmd(env *clix.Env) *cli.Command {
	return &cli.Command{
		Name:  "validate",
		Usage: "Check the configuration for invalid values",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			results := config.NewValidator(env.Config).Validate()

			rows := make([][]string, 0, len(results))
			for _, r := range results {
				status := printer.Success("✓")
				switch {
				case !r.Passed && r.Warning:
					status = printer.Warning("!")
				case !r.Passed:
					status = printer.Error("✗")
				}
				rows = append(rows, []string{r.Category, status, r.Message})
			}
			printer.PrintTable([]string{"Category", "", "Message"}, rows)

			errs, warns := config.ErrorCount(results), config.WarningCount(results)
			if errs > 0 {
				return fmt.Errorf("configuration has %d error(s) and %d warning(s)", errs, warns)
			}
			if warns > 0 {
				printer.PrintWarning(fmt.Sprintf("Configuration is valid with %d warning(s)", warns))
				return nil
			}
			printer.PrintSuccess("Configuration is valid")
			return nil
		},
	}
}
