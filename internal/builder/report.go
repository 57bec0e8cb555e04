package builder

import (
	"path/filepath"

	"github.com/flow-cli/flow/internal/printer"
)

// PrintResults renders a build summary table. Artifact paths are shown
// relative to root.
func PrintResults(root string, results []Result) {
	rows := make([][]string, 0, len(results))
	for _, r := range results {
		flavor := r.Request.Flavor
		if flavor == "" {
			flavor = "default"
		}
		status := printer.Success("ok")
		artifact, size := "-", "-"
		if r.OK() {
			if rel, err := filepath.Rel(root, r.Artifact); err == nil {
				artifact = rel
			}
			if r.Size > 0 {
				size = printer.Size(r.Size)
			}
		} else {
			status = printer.Error("failed")
			artifact = r.Err.Error()
		}
		rows = append(rows, []string{flavor, string(r.Request.Mode), status, artifact, size})
	}
	printer.PrintTable([]string{"Flavor", "Mode", "Status", "Artifact", "Size"}, rows)
}
