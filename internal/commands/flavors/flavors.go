package flavors

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/flow-cli/flow/internal/clix"
	"github.com/flow-cli/flow/internal/flavor"
	"github.com/flow-cli/flow/internal/printer"
	"github.com/flow-cli/flow/internal/project"
	"github.com/urfave/cli/v3"
)

// Run returns the "flavors" command.
func Run(env *clix.Env) *cli.Command {
	return &cli.Command{
		Name:      "flavors",
		Usage:     "List build flavors, or show one flavor in detail",
		ArgsUsage: "[name]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "format",
				Usage: "Output format: text or json",
				Value: "text",
			},
		},
		Commands: []*cli.Command{initCmd(env)},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			f, err := clix.ParseOutputFormat(cmd.String("format"))
			if err != nil {
				return err
			}
			p, err := env.RequireProject()
			if err != nil {
				return err
			}
			if name := cmd.Args().First(); name != "" {
				return runDetail(ctx, env, p, name, f)
			}
			return runList(ctx, env, p, f)
		},
	}
}

// entry is the JSON form of one flavor.
type entry struct {
	Name        string   `json:"name"`
	Status      string   `json:"status"`
	AppName     string   `json:"app_name,omitempty"`
	PackageName string   `json:"package_name,omitempty"`
	MainColor   string   `json:"main_color,omitempty"`
	Problems    []string `json:"problems"`
	Apks        []string `json:"apks"`
}

func toEntry(d flavor.Details, outputs project.BuildOutputs) entry {
	problems := flavor.Validate(d)
	if problems == nil {
		problems = []string{}
	}
	apks := flavor.ApksFor(outputs, d.Name)
	if apks == nil {
		apks = []string{}
	}
	return entry{
		Name:        d.Name,
		Status:      string(d.Status),
		AppName:     d.AppName,
		PackageName: d.PackageName,
		MainColor:   d.MainColor,
		Problems:    problems,
		Apks:        apks,
	}
}

func runList(ctx context.Context, env *clix.Env, p *project.Project, f clix.OutputFormat) error {
	details := flavor.InspectAll(ctx, env.FS, p)
	outputs := p.BuildOutputs()

	if f == clix.FormatJSON {
		entries := make([]entry, 0, len(details))
		for _, d := range details {
			entries = append(entries, toEntry(d, outputs))
		}
		return clix.WriteJSON(os.Stdout, entries)
	}

	if len(details) == 0 {
		printer.PrintWarning("No flavors found.")
		printer.PrintFaint("Create one with: flow flavors init <name> --app-name <name>")
		return nil
	}

	rows := make([][]string, 0, len(details))
	for _, d := range details {
		rows = append(rows, []string{
			d.Name,
			styleStatus(d.Status),
			orDash(d.AppName),
			orDash(d.PackageName),
			fmt.Sprint(len(flavor.ApksFor(outputs, d.Name))),
		})
	}
	printer.PrintTable([]string{"Flavor", "Status", "App name", "Package", "APKs"}, rows)
	return nil
}

func runDetail(ctx context.Context, env *clix.Env, p *project.Project, name string, f clix.OutputFormat) error {
	if !p.HasFlavor(name) {
		return fmt.Errorf("flavor %q not found (available: %s)", name, available(p))
	}
	d := flavor.Inspect(ctx, env.FS, p, name)
	e := toEntry(d, p.BuildOutputs())

	if f == clix.FormatJSON {
		return clix.WriteJSON(os.Stdout, e)
	}

	printer.PrintHeader("Flavor " + name)
	printer.PrintKeyValue("Status", styleStatus(d.Status))
	printer.PrintKeyValue("Directory", d.Dir)
	printer.PrintKeyValue("App name", orDash(d.AppName))
	printer.PrintKeyValue("Package", orDash(d.PackageName))
	printer.PrintKeyValue("Main color", orDash(d.MainColor))
	printer.PrintKeyValue("config.json", mark(d.HasConfig()))
	printer.PrintKeyValue("icon.png", mark(d.HasIcon()))
	printer.PrintKeyValue("splash.png", mark(d.HasSplash()))

	if len(e.Apks) > 0 {
		fmt.Println()
		printer.PrintBold("APKs")
		for _, apk := range e.Apks {
			fmt.Println("  " + apk)
		}
	}
	if len(e.Problems) > 0 {
		fmt.Println()
		for _, problem := range e.Problems {
			printer.PrintWarning("  ! " + problem)
		}
	}
	return nil
}

func available(p *project.Project) string {
	names := p.Flavors()
	if len(names) == 0 {
		return "none"
	}
	return strings.Join(names, ", ")
}

func styleStatus(s flavor.Status) string {
	switch s {
	case flavor.StatusComplete:
		return printer.Success(string(s))
	case flavor.StatusPartial:
		return printer.Warning(string(s))
	default:
		return printer.Error(string(s))
	}
}

func mark(ok bool) string {
	if ok {
		return printer.Success("yes")
	}
	return printer.Faint("no")
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
