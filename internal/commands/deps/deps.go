package deps

import (
	"context"
	"fmt"
	"os"

	"github.com/flow-cli/flow/internal/clix"
	"github.com/flow-cli/flow/internal/printer"
	"github.com/flow-cli/flow/internal/project"
	"github.com/urfave/cli/v3"
)

// Run returns the "deps" command.
func Run(env *clix.Env) *cli.Command {
	return &cli.Command{
		Name:  "deps",
		Usage: "List the dependencies declared in pubspec.yaml",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "dev",
				Usage: "Include dev_dependencies",
			},
			&cli.StringFlag{
				Name:  "format",
				Usage: "Output format: text or json",
				Value: "text",
			},
		},
		Commands: []*cli.Command{hasCmd(env)},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return runList(env, cmd.Bool("dev"), cmd.String("format"))
		},
	}
}

// Dependency is one declared package.
type Dependency struct {
	Name       string `json:"name"`
	Constraint string `json:"constraint"`
	Dev        bool   `json:"dev"`
}

// List returns the declared dependencies sorted by name, regular ones first.
func List(p *project.Project, includeDev bool) []Dependency {
	out := collect(p.Dependencies(), false)
	if includeDev {
		out = append(out, collect(p.DevDependencies(), true)...)
	}
	return out
}

func collect(deps map[string]string, dev bool) []Dependency {
	out := make([]Dependency, 0, len(deps))
	for _, name := range project.DependencyNames(deps) {
		out = append(out, Dependency{Name: name, Constraint: deps[name], Dev: dev})
	}
	return out
}

func runList(env *clix.Env, includeDev bool, format string) error {
	f, err := clix.ParseOutputFormat(format)
	if err != nil {
		return err
	}
	p, err := env.RequireProject()
	if err != nil {
		return err
	}

	list := List(p, includeDev)
	if f == clix.FormatJSON {
		return clix.WriteJSON(os.Stdout, list)
	}
	if len(list) == 0 {
		printer.PrintFaint("No dependencies declared.")
		return nil
	}

	rows := make([][]string, 0, len(list))
	for _, d := range list {
		section := "dependencies"
		if d.Dev {
			section = "dev_dependencies"
		}
		rows = append(rows, []string{d.Name, d.Constraint, section})
	}
	printer.PrintTable([]string{"Package", "Constraint", "Section"}, rows)
	return nil
}

// hasCmd returns the "deps has" subcommand.
func hasCmd(env *clix.Env) *cli.Command {
	return &cli.Command{
		Name:      "has",
		Usage:     "Exit non-zero unless the package is declared",
		ArgsUsage: "<package>",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			name := cmd.Args().First()
			if name == "" {
				return fmt.Errorf("please provide a package name")
			}
			p, err := env.RequireProject()
			if err != nil {
				return err
			}
			if !p.HasDependency(name) {
				return fmt.Errorf("%s is not declared in %s", name, p.ManifestPath())
			}
			printer.PrintSuccess(fmt.Sprintf("%s is declared", name))
			return nil
		},
	}
}
