package info

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/flow-cli/flow/internal/clix"
	"github.com/flow-cli/flow/internal/printer"
	"github.com/flow-cli/flow/internal/project"
	"github.com/urfave/cli/v3"
)

// Run returns the "info" command.
func Run(env *clix.Env) *cli.Command {
	return &cli.Command{
		Name:  "info",
		Usage: "Show a summary of the current Flutter project",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "format",
				Usage: "Output format: text or json",
				Value: "text",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return runInfo(env, cmd.String("format"))
		},
	}
}

// Summary is the machine-readable form of `flow info`.
type Summary struct {
	Name            string   `json:"name"`
	Version         string   `json:"version"`
	Description     string   `json:"description,omitempty"`
	Path            string   `json:"path"`
	Flavors         []string `json:"flavors"`
	Dependencies    int      `json:"dependencies"`
	DevDependencies int      `json:"dev_dependencies"`
	BuildOutputs    int      `json:"build_outputs"`
}

// Summarize collects the summary of p.
func Summarize(p *project.Project) Summary {
	return Summary{
		Name:            p.Name(),
		Version:         p.Version(),
		Description:     p.Description(),
		Path:            p.Root(),
		Flavors:         p.Flavors(),
		Dependencies:    len(p.Dependencies()),
		DevDependencies: len(p.DevDependencies()),
		BuildOutputs:    p.BuildOutputs().Total(),
	}
}

func runInfo(env *clix.Env, format string) error {
	f, err := clix.ParseOutputFormat(format)
	if err != nil {
		return err
	}
	p, err := env.RequireProject()
	if err != nil {
		return err
	}
	env.RememberProject(p)

	s := Summarize(p)
	if f == clix.FormatJSON {
		return clix.WriteJSON(os.Stdout, s)
	}

	printer.PrintHeader("Flutter project " + s.Name)
	printer.PrintKeyValue("Version", s.Version)
	if s.Description != "" {
		printer.PrintKeyValue("Description", s.Description)
	}
	printer.PrintKeyValue("Path", s.Path)
	printer.PrintKeyValue("Flavors", flavorSummary(s.Flavors))
	printer.PrintKeyValue("Dependencies", fmt.Sprintf("%d (+%d dev)", s.Dependencies, s.DevDependencies))
	printer.PrintKeyValue("Build outputs", strconv.Itoa(s.BuildOutputs))
	return nil
}

func flavorSummary(flavors []string) string {
	if len(flavors) == 0 {
		return "none"
	}
	return fmt.Sprintf("%d %v", len(flavors), flavors)
}
