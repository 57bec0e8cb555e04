package outputs

import (
	"context"
	"os"
	"path/filepath"

	"github.com/flow-cli/flow/internal/clix"
	"github.com/flow-cli/flow/internal/core"
	"github.com/flow-cli/flow/internal/printer"
	"github.com/flow-cli/flow/internal/project"
	"github.com/urfave/cli/v3"
)

// Run returns the "outputs" command.
func Run(env *clix.Env) *cli.Command {
	return &cli.Command{
		Name:  "outputs",
		Usage: "List build artifacts grouped by platform",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "format",
				Usage: "Output format: text or json",
				Value: "text",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return runOutputs(ctx, env, cmd.String("format"))
		},
	}
}

// Artifact is one build output with its size on disk.
type Artifact struct {
	Kind project.OutputKind `json:"kind"`
	Path string             `json:"path"`
	Size int64              `json:"size"`
}

var kindLabels = map[project.OutputKind]string{
	project.AndroidAPK:    "Android APK",
	project.AndroidBundle: "Android App Bundle",
	project.IOSApp:        "iOS app",
	project.WebBuild:      "Web build",
}

// Collect lists the artifacts of p in OutputKinds order.
func Collect(ctx context.Context, fs core.FileSystem, p *project.Project) []Artifact {
	outputs := p.BuildOutputs()
	list := []Artifact{}
	for _, kind := range project.OutputKinds {
		for _, path := range outputs[kind] {
			list = append(list, Artifact{Kind: kind, Path: path, Size: Size(ctx, fs, path)})
		}
	}
	return list
}

// Size returns the size of a file, or the total size of a directory tree.
func Size(ctx context.Context, fs core.FileSystem, path string) int64 {
	info, err := fs.Stat(ctx, path)
	if err != nil {
		return 0
	}
	if !info.IsDir() {
		return info.Size()
	}
	entries, err := fs.ReadDir(ctx, path)
	if err != nil {
		return 0
	}
	var total int64
	for _, e := range entries {
		total += Size(ctx, fs, filepath.Join(path, e.Name()))
	}
	return total
}

func runOutputs(ctx context.Context, env *clix.Env, format string) error {
	f, err := clix.ParseOutputFormat(format)
	if err != nil {
		return err
	}
	p, err := env.RequireProject()
	if err != nil {
		return err
	}

	list := Collect(ctx, env.FS, p)
	if f == clix.FormatJSON {
		return clix.WriteJSON(os.Stdout, list)
	}
	if len(list) == 0 {
		printer.PrintWarning("No build outputs found.")
		printer.PrintFaint("Run 'flow android build' or 'flow ios build' first.")
		return nil
	}

	rows := make([][]string, 0, len(list))
	var total int64
	for _, a := range list {
		rel, err := filepath.Rel(p.Root(), a.Path)
		if err != nil {
			rel = a.Path
		}
		rows = append(rows, []string{kindLabels[a.Kind], rel, printer.Size(a.Size)})
		total += a.Size
	}
	printer.PrintTable([]string{"Type", "Path", "Size"}, rows)
	printer.PrintFaint("Total: " + printer.Size(total))
	return nil
}
