package doctorcmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/flow-cli/flow/internal/clix"
	"github.com/flow-cli/flow/internal/doctor"
	"github.com/flow-cli/flow/internal/printer"
	"github.com/flow-cli/flow/internal/project"
	"github.com/flow-cli/flow/internal/tui"
	"github.com/urfave/cli/v3"
)

// doctorOptions builds the check options; tests pin the host values.
var doctorOptions = func(env *clix.Env) doctor.Options {
	opts := doctor.Options{Logger: env.Logger}
	if env.Config != nil {
		opts.AndroidSDK = env.Config.Android.SDKPath
	}
	return opts
}

// report is the JSON shape of the doctor output.
type report struct {
	Healthy     bool           `json:"healthy"`
	Environment []checkJSON    `json:"environment"`
	Project     []checkJSON    `json:"project,omitempty"`
	Summary     map[string]int `json:"summary"`
}

type checkJSON struct {
	Name    string `json:"name"`
	Status  string `json:"status"`
	Version string `json:"version,omitempty"`
	Detail  string `json:"detail,omitempty"`
}

// Run returns the "doctor" command.
func Run(env *clix.Env) *cli.Command {
	return &cli.Command{
		Name:  "doctor",
		Usage: "Check the development environment and the current project",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "format", Usage: "Output format: text or json", Value: string(clix.FormatText)},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			format, err := clix.ParseOutputFormat(cmd.String("format"))
			if err != nil {
				return err
			}

			d := doctor.New(env.Toolchain, env.FS, doctorOptions(env))

			var envChecks []doctor.Check
			err = tui.Spin(ctx, "Checking environment", func(ctx context.Context) error {
				var err error
				envChecks, err = d.Environment(ctx)
				return err
			})
			if err != nil {
				return err
			}

			var projChecks []doctor.Check
			p, err := env.RequireProject()
			switch {
			case err == nil:
				projChecks = d.Project(ctx, p)
			case errors.Is(err, project.ErrNotFound):
				env.Logger.Debug("doctor: no project, skipping project checks")
			default:
				return err
			}

			all := append(append([]doctor.Check{}, envChecks...), projChecks...)
			if format == clix.FormatJSON {
				if err := clix.WriteJSON(os.Stdout, toReport(envChecks, projChecks)); err != nil {
					return err
				}
			} else {
				printText(envChecks, projChecks, p)
			}

			if failed := doctor.Summary(all)[doctor.StatusFail]; failed > 0 {
				return fmt.Errorf("%d check(s) failed", failed)
			}
			return nil
		},
	}
}

func printText(envChecks, projChecks []doctor.Check, p *project.Project) {
	printer.PrintHeader("Environment")
	printChecks(envChecks)

	if p != nil {
		fmt.Println()
		printer.PrintHeader("Project: " + p.Name())
		printChecks(projChecks)
	}

	all := append(append([]doctor.Check{}, envChecks...), projChecks...)
	s := doctor.Summary(all)
	fmt.Println()
	line := fmt.Sprintf("%d passed, %d warnings, %d failed", s[doctor.StatusOK], s[doctor.StatusWarn], s[doctor.StatusFail])
	if s[doctor.StatusSkip] > 0 {
		line += fmt.Sprintf(", %d skipped", s[doctor.StatusSkip])
	}
	switch {
	case s[doctor.StatusFail] > 0:
		printer.PrintError(line)
	case s[doctor.StatusWarn] > 0:
		printer.PrintWarning(line)
	default:
		printer.PrintSuccess(line)
	}
}

func printChecks(checks []doctor.Check) {
	rows := make([][]string, 0, len(checks))
	for _, c := range checks {
		version := c.Version
		if version == "" {
			version = "-"
		}
		rows = append(rows, []string{c.Name, statusLabel(c.Status), version, c.Detail})
	}
	printer.PrintTable([]string{"Check", "Status", "Version", "Details"}, rows)
}

func statusLabel(s doctor.Status) string {
	switch s {
	case doctor.StatusOK:
		return printer.Success("✓ ok")
	case doctor.StatusWarn:
		return printer.Warning("! warn")
	case doctor.StatusFail:
		return printer.Error("✗ fail")
	default:
		return printer.Faint("- " + string(s))
	}
}

func toReport(envChecks, projChecks []doctor.Check) report {
	all := append(append([]doctor.Check{}, envChecks...), projChecks...)
	r := report{
		Healthy:     doctor.Healthy(all),
		Environment: toJSON(envChecks),
		Project:     toJSON(projChecks),
		Summary:     map[string]int{},
	}
	for status, n := range doctor.Summary(all) {
		r.Summary[string(status)] = n
	}
	return r
}

func toJSON(checks []doctor.Check) []checkJSON {
	if len(checks) == 0 {
		return nil
	}
	out := make([]checkJSON, 0, len(checks))
	for _, c := range checks {
		out = append(out, checkJSON{Name: c.Name, Status: string(c.Status), Version: c.Version, Detail: c.Detail})
	}
	return out
}
