package analyze

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/flow-cli/flow/internal/flavor"
	"github.com/flow-cli/flow/internal/printer"
)

func printReport(r *Report) {
	printer.PrintHeader("Analyzing " + r.Project)
	printer.PrintKeyValue("Version", r.Version)
	printer.PrintKeyValue("Flavors", strconv.Itoa(len(r.Flavors)))

	printer.PrintHeader("Code")
	switch {
	case r.Code.Error != "":
		printer.PrintWarning("Code analysis unavailable: " + r.Code.Error)
	case r.Code.Count == 0:
		printer.PrintSuccess("No issues found")
	default:
		rows := make([][]string, 0, len(r.Code.Issues))
		for _, i := range r.Code.Issues {
			rows = append(rows, []string{i.Severity, i.Location, i.Message})
		}
		printer.PrintTable([]string{"Severity", "Location", "Message"}, rows)
		if hidden := r.Code.Count - len(r.Code.Issues); hidden > 0 {
			printer.PrintFaint(fmt.Sprintf("%d more issue(s); rerun with --verbose to list them", hidden))
		}
	}

	printer.PrintHeader("Dependencies")
	printer.PrintTable([]string{"Metric", "Value"}, [][]string{
		{"Dependencies", strconv.Itoa(r.Dependencies.Total)},
		{"Dev dependencies", strconv.Itoa(r.Dependencies.TotalDev)},
		{"Known packages", orDash(strings.Join(r.Dependencies.Found, ", "))},
	})
	for _, name := range r.Dependencies.MissingRecommended {
		printer.PrintFaint(fmt.Sprintf("Consider adding %s (%s)", name, strings.ToLower(KnownPackages[name])))
	}

	if len(r.Artifacts.Items) > 0 {
		printer.PrintHeader("Build artifacts")
		rows := make([][]string, 0, len(r.Artifacts.Items))
		for _, a := range r.Artifacts.Items {
			rows = append(rows, []string{string(a.Kind), filepath.Base(a.Path), printer.Size(a.Size)})
		}
		printer.PrintTable([]string{"Kind", "File", "Size"}, rows)
		printer.PrintFaint("Total: " + printer.Size(r.Artifacts.TotalSize))
	}

	if len(r.Flavors) > 0 {
		printer.PrintHeader("Flavors")
		rows := make([][]string, 0, len(r.Flavors))
		for _, f := range r.Flavors {
			rows = append(rows, []string{f.Name, string(f.Status), orDash(f.AppName), orDash(strings.Join(f.Problems, "; "))})
		}
		printer.PrintTable([]string{"Flavor", "Status", "App name", "Problems"}, rows)
	}

	printer.PrintHeader("Structure")
	printer.PrintTable([]string{"Metric", "Value"}, [][]string{
		{"Dart files", strconv.Itoa(r.Structure.DartFiles)},
		{"Test files", strconv.Itoa(r.Structure.TestFiles)},
		{"Test ratio", fmt.Sprintf("%.1f%%", r.Structure.TestRatio)},
	})

	printer.PrintHeader("Summary")
	for _, line := range Summary(r) {
		fmt.Println("  " + line)
	}
}

// Summary condenses r into one verdict per section.
func Summary(r *Report) []string {
	var lines []string
	switch {
	case r.Code.Error != "":
	case r.Code.Count == 0:
		lines = append(lines, printer.Success("No code issues found"))
	default:
		lines = append(lines, printer.Warning(fmt.Sprintf("%d code issue(s) found", r.Code.Count)))
	}

	if total := len(r.Flavors); total > 0 {
		ready := 0
		for _, f := range r.Flavors {
			if f.Status == flavor.StatusComplete && len(f.Problems) == 0 {
				ready++
			}
		}
		if ready == total {
			lines = append(lines, printer.Success("All flavors properly configured"))
		} else {
			lines = append(lines, printer.Warning(fmt.Sprintf("%d flavor(s) need configuration", total-ready)))
		}
	}

	switch s := r.Structure; {
	case s.TestFiles == 0:
		lines = append(lines, printer.Error("No tests found"))
	case s.TestRatio >= 80:
		lines = append(lines, printer.Success("Good test coverage"))
	case s.TestRatio >= 50:
		lines = append(lines, printer.Warning("Moderate test coverage"))
	default:
		lines = append(lines, printer.Error("Low test coverage"))
	}
	return lines
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
