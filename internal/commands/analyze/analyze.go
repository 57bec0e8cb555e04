// Package analyze implements "flow analyze": a one-page health report of a
// Flutter project covering lint issues, dependencies, build artifacts,
// flavors and source layout.
package analyze

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/flow-cli/flow/internal/clix"
	"github.com/flow-cli/flow/internal/commands/outputs"
	"github.com/flow-cli/flow/internal/core"
	"github.com/flow-cli/flow/internal/flavor"
	"github.com/flow-cli/flow/internal/project"
	"github.com/flow-cli/flow/internal/toolchain"
	"github.com/urfave/cli/v3"
	"golang.org/x/sync/errgroup"
)

// shownIssues caps the issues listed without --verbose.
const shownIssues = 5

// Run returns the "analyze" command.
func Run(env *clix.Env) *cli.Command {
	return &cli.Command{
		Name:  "analyze",
		Usage: "Report code issues, dependencies, artifacts, flavors and project structure",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "flavor", Aliases: []string{"f"}, Usage: "Only report on this flavor"},
			&cli.StringFlag{
				Name:  "format",
				Usage: "Output format: text or json",
				Value: "text",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			f, err := clix.ParseOutputFormat(cmd.String("format"))
			if err != nil {
				return err
			}
			p, err := env.RequireProject()
			if err != nil {
				return err
			}
			name := cmd.String("flavor")
			if name != "" && !p.HasFlavor(name) {
				return fmt.Errorf("flavor %q not found (available: %s)", name, strings.Join(p.Flavors(), ", "))
			}

			report, err := Analyze(ctx, env, p, name)
			if err != nil {
				return err
			}
			if !env.Verbose && len(report.Code.Issues) > shownIssues {
				report.Code.Issues = report.Code.Issues[:shownIssues]
			}
			if f == clix.FormatJSON {
				return clix.WriteJSON(os.Stdout, report)
			}
			printReport(report)
			return nil
		},
	}
}

// Report is the full analysis of one project.
type Report struct {
	Project      string           `json:"project"`
	Version      string           `json:"version"`
	Code         CodeReport       `json:"code"`
	Dependencies DependencyReport `json:"dependencies"`
	Artifacts    ArtifactReport   `json:"artifacts"`
	Flavors      []FlavorReport   `json:"flavors"`
	Structure    StructureReport  `json:"structure"`
}

// CodeReport holds the output of flutter analyze. Error is set when the
// analyzer could not run; the other sections are still reported.
type CodeReport struct {
	Count  int                      `json:"count"`
	Issues []toolchain.AnalyzeIssue `json:"issues"`
	Error  string                   `json:"error,omitempty"`
}

// DependencyReport counts declared packages and notes well-known ones.
type DependencyReport struct {
	Total              int      `json:"total"`
	TotalDev           int      `json:"total_dev"`
	HasFlutter         bool     `json:"has_flutter"`
	Found              []string `json:"found"`
	MissingRecommended []string `json:"missing_recommended"`
}

// ArtifactReport lists build outputs.
type ArtifactReport struct {
	TotalSize int64              `json:"total_size"`
	Items     []outputs.Artifact `json:"items"`
}

// FlavorReport is the readiness of one flavor.
type FlavorReport struct {
	Name     string        `json:"name"`
	Status   flavor.Status `json:"status"`
	AppName  string        `json:"app_name,omitempty"`
	Problems []string      `json:"problems"`
}

// StructureReport counts Dart sources and conventional directories.
type StructureReport struct {
	DartFiles int      `json:"dart_files"`
	TestFiles int      `json:"test_files"`
	TestRatio float64  `json:"test_ratio"`
	Present   []string `json:"present_dirs"`
	Missing   []string `json:"missing_dirs"`
}

// KnownPackages describes packages worth calling out in the report.
var KnownPackages = map[string]string{
	"flutter_launcher_icons": "App icons generation",
	"flutter_native_splash":  "Splash screen generation",
	"flutter_flavorizr":      "Flavor configuration",
	"build_runner":           "Code generation",
	"json_annotation":        "JSON serialization",
	"provider":               "State management",
	"bloc":                   "State management",
	"riverpod":               "State management",
	"dio":                    "HTTP client",
	"shared_preferences":     "Local storage",
	"sqflite":                "SQLite database",
}

// recommended packages are reported when missing because branding
// generation drives them.
var recommended = []string{"flutter_launcher_icons", "flutter_native_splash"}

var conventionalDirs = []string{
	"lib/models",
	"lib/services",
	"lib/widgets",
	"lib/screens",
	"lib/utils",
	"test/unit",
	"test/widget",
	"test/integration",
}

// Analyze gathers every section concurrently. Only flavorName is reported
// in the flavor section when it is set.
func Analyze(ctx context.Context, env *clix.Env, p *project.Project, flavorName string) (*Report, error) {
	r := &Report{Project: p.Name(), Version: p.Version()}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		r.Code = analyzeCode(gctx, env, p)
		return gctx.Err()
	})
	g.Go(func() error {
		r.Dependencies = analyzeDependencies(p)
		return nil
	})
	g.Go(func() error {
		r.Artifacts = analyzeArtifacts(gctx, env.FS, p)
		return gctx.Err()
	})
	g.Go(func() error {
		r.Flavors = analyzeFlavors(gctx, env.FS, p, flavorName)
		return gctx.Err()
	})
	g.Go(func() error {
		r.Structure = analyzeStructure(gctx, env.FS, p)
		return gctx.Err()
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return r, nil
}

func analyzeCode(ctx context.Context, env *clix.Env, p *project.Project) CodeReport {
	if !env.Toolchain.Available("flutter") {
		return CodeReport{Issues: []toolchain.AnalyzeIssue{}, Error: "flutter not found in PATH"}
	}
	issues, err := env.Toolchain.Analyze(ctx, p.Root())
	if err != nil {
		env.Logger.Debug("flutter analyze failed", "error", err)
		return CodeReport{Issues: []toolchain.AnalyzeIssue{}, Error: err.Error()}
	}
	return CodeReport{Count: len(issues), Issues: issues}
}

func analyzeDependencies(p *project.Project) DependencyReport {
	deps := p.Dependencies()
	r := DependencyReport{
		Total:              len(deps),
		TotalDev:           len(p.DevDependencies()),
		Found:              []string{},
		MissingRecommended: []string{},
	}
	_, r.HasFlutter = deps["flutter"]
	for _, name := range project.DependencyNames(KnownPackages) {
		if p.HasDependency(name) {
			r.Found = append(r.Found, name)
		}
	}
	for _, name := range recommended {
		if !p.HasDependency(name) {
			r.MissingRecommended = append(r.MissingRecommended, name)
		}
	}
	return r
}

func analyzeArtifacts(ctx context.Context, fs core.FileSystem, p *project.Project) ArtifactReport {
	r := ArtifactReport{Items: outputs.Collect(ctx, fs, p)}
	for _, a := range r.Items {
		r.TotalSize += a.Size
	}
	return r
}

func analyzeFlavors(ctx context.Context, fs core.FileSystem, p *project.Project, only string) []FlavorReport {
	out := []FlavorReport{}
	for _, d := range flavor.InspectAll(ctx, fs, p) {
		if only != "" && d.Name != only {
			continue
		}
		problems := flavor.Validate(d)
		if problems == nil {
			problems = []string{}
		}
		out = append(out, FlavorReport{Name: d.Name, Status: d.Status, AppName: d.AppName, Problems: problems})
	}
	return out
}

func analyzeStructure(ctx context.Context, fs core.FileSystem, p *project.Project) StructureReport {
	r := StructureReport{
		DartFiles: countDart(ctx, fs, p.Path("lib")),
		TestFiles: countDart(ctx, fs, p.Path("test")),
		Present:   []string{},
		Missing:   []string{},
	}
	if r.DartFiles > 0 {
		r.TestRatio = float64(r.TestFiles) / float64(r.DartFiles) * 100
	}
	for _, dir := range conventionalDirs {
		if core.IsDir(ctx, fs, p.Path(filepath.FromSlash(dir))) {
			r.Present = append(r.Present, dir)
		} else {
			r.Missing = append(r.Missing, dir)
		}
	}
	return r
}

// countDart counts .dart files below dir.
func countDart(ctx context.Context, fs core.FileSystem, dir string) int {
	entries, err := fs.ReadDir(ctx, dir)
	if err != nil {
		return 0
	}
	n := 0
	for _, e := range entries {
		switch {
		case e.IsDir():
			n += countDart(ctx, fs, filepath.Join(dir, e.Name()))
		case strings.HasSuffix(e.Name(), ".dart"):
			n++
		}
	}
	return n
}
