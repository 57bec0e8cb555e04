package doctor

import (
	"context"

	"github.com/flow-cli/flow/internal/flavor"
	"github.com/flow-cli/flow/internal/project"
)

// Branding generators whose presence the project checks report.
const (
	LauncherIconsPackage = "flutter_launcher_icons"
	NativeSplashPackage  = "flutter_native_splash"
)

// Project inspects p for problems flow commands would run into.
func (d *Doctor) Project(ctx context.Context, p *project.Project) []Check {
	var checks []Check

	marker := Check{Name: "Flutter project", Detail: p.Root()}
	if p.IsValid() {
		marker.Status, marker.Version = StatusOK, p.Version()
	} else {
		marker.Status, marker.Detail = StatusFail, "pubspec.yaml has no flutter section"
	}
	checks = append(checks, marker)

	for _, pkg := range []string{LauncherIconsPackage, NativeSplashPackage} {
		c := Check{Name: pkg}
		if p.HasDependency(pkg) {
			c.Status, c.Detail = StatusOK, "declared"
		} else {
			c.Status, c.Detail = StatusWarn, "add it to dev_dependencies to use flow generate"
		}
		checks = append(checks, c)
	}

	for _, name := range p.Flavors() {
		details := flavor.Inspect(ctx, d.fs, p, name)
		c := Check{Name: "flavor " + name, Status: StatusOK, Detail: string(details.Status)}
		if problems := flavor.Validate(details); len(problems) > 0 {
			c.Status, c.Detail = StatusWarn, problems[0]
		}
		checks = append(checks, c)
	}
	return checks
}
