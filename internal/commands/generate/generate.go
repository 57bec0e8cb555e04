package generate

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/flow-cli/flow/internal/branding"
	"github.com/flow-cli/flow/internal/clix"
	"github.com/flow-cli/flow/internal/printer"
	"github.com/flow-cli/flow/internal/tui"
	"github.com/urfave/cli/v3"
)

// Run returns the "generate" command.
func Run(env *clix.Env) *cli.Command {
	return &cli.Command{
		Name:      "generate",
		Aliases:   []string{"gen"},
		Usage:     "Generate launcher icons and splash screens",
		UsageText: "flow generate <icons|splash> [--flavor name | --all-flavors] [--platform android|ios|both]",
		Commands: []*cli.Command{
			kindCmd(env, branding.KindIcons, "Generate launcher icons with flutter_launcher_icons"),
			kindCmd(env, branding.KindSplash, "Generate splash screens with flutter_native_splash"),
		},
	}
}

func kindCmd(env *clix.Env, kind branding.Kind, usage string) *cli.Command {
	return &cli.Command{
		Name:  string(kind),
		Usage: usage,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "flavor", Aliases: []string{"f"}, Usage: "Flavor to generate for"},
			&cli.BoolFlag{Name: "all-flavors", Usage: "Generate for every flavor"},
			&cli.StringFlag{Name: "platform", Aliases: []string{"p"}, Usage: "Target platform: android, ios or both", Value: string(branding.PlatformBoth)},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return runGenerate(ctx, env, cmd, kind)
		},
	}
}

func runGenerate(ctx context.Context, env *clix.Env, cmd *cli.Command, kind branding.Kind) error {
	platform, err := branding.ParsePlatform(cmd.String("platform"))
	if err != nil {
		return err
	}
	p, err := env.RequireProject()
	if err != nil {
		return err
	}
	env.RememberProject(p)

	flavor, all, err := env.ChooseFlavor(p, cmd.String("flavor"), cmd.Bool("all-flavors"), fmt.Sprintf("Generate %s for", kind))
	if err != nil {
		return err
	}

	var targets []string
	switch {
	case all:
		targets = p.Flavors()
		if len(targets) == 0 {
			targets = []string{""}
		}
	case flavor != "":
		if !p.HasFlavor(flavor) {
			return fmt.Errorf("flavor %q not found", flavor)
		}
		targets = []string{flavor}
	default:
		targets = []string{""}
	}

	gen := branding.NewGenerator(env.FS, env.Toolchain)
	var errs []error
	for _, target := range targets {
		req := branding.Request{Kind: kind, Flavor: target, Platform: platform}
		label := target
		if label == "" {
			label = "main app"
		}

		var res branding.Result
		err := tui.Spin(ctx, fmt.Sprintf("Generating %s for %s", kind, label), func(ctx context.Context) error {
			var err error
			res, err = gen.Generate(ctx, p, req)
			return err
		})
		if err != nil {
			env.Logger.Debug("generation failed", "kind", kind, "flavor", target, "error", err)
			printer.PrintError(fmt.Sprintf("✗ %s: %v", label, err))
			errs = append(errs, err)
			// A missing package fails every target the same way.
			if errors.Is(err, branding.ErrMissingPackage) {
				break
			}
			continue
		}
		printer.PrintSuccess(fmt.Sprintf("✓ %s %s generated from %s", label, kind, relPath(p.Root(), res.Image)))
	}

	switch {
	case len(errs) == 0:
		return nil
	case len(errs) == 1:
		return errs[0]
	default:
		return fmt.Errorf("%d of %d %s generations failed", len(errs), len(targets), kind)
	}
}

func relPath(root, path string) string {
	if rel, err := filepath.Rel(root, path); err == nil {
		return rel
	}
	return path
}
