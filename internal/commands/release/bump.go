package release

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/flow-cli/flow/internal/clix"
	"github.com/flow-cli/flow/internal/core"
	"github.com/flow-cli/flow/internal/printer"
	"github.com/flow-cli/flow/internal/project"
	"github.com/flow-cli/flow/internal/pubver"
	"github.com/flow-cli/flow/internal/tui"
	"github.com/urfave/cli/v3"
)

// confirmPrompt is swapped in tests.
var confirmPrompt = tui.Confirm

// bumpCmd returns the "release bump" subcommand.
func bumpCmd(env *clix.Env) *cli.Command {
	return &cli.Command{
		Name:      "bump",
		Usage:     "Increment the pubspec version (build number by default)",
		ArgsUsage: "[major|minor|patch|build]",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "yes", Aliases: []string{"y"}, Usage: "Skip the confirmation prompt"},
			&cli.BoolFlag{Name: "dry-run", Usage: "Print the new version without writing it"},
			&cli.BoolFlag{Name: "commit", Usage: "Commit pubspec.yaml after bumping"},
			&cli.BoolFlag{Name: "tag", Usage: "Commit and create an annotated v<version> tag"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			label := cmd.Args().First()
			if label == "" {
				label = string(pubver.PartBuild)
			}
			part, err := pubver.ParsePart(label)
			if err != nil {
				return err
			}
			p, err := env.RequireProject()
			if err != nil {
				return err
			}
			opts := bumpOptions{
				yes:    cmd.Bool("yes"),
				dryRun: cmd.Bool("dry-run"),
				commit: cmd.Bool("commit") || cmd.Bool("tag"),
				tag:    cmd.Bool("tag"),
			}
			return bump(ctx, env, p, part, opts)
		},
	}
}

type bumpOptions struct {
	yes    bool
	dryRun bool
	commit bool
	tag    bool
}

// TagName is the git tag created for a released version.
func TagName(v pubver.Version) string {
	return "v" + v.String()
}

func bump(ctx context.Context, env *clix.Env, p *project.Project, part pubver.Part, opts bumpOptions) error {
	path := p.ManifestPath()
	content, err := env.FS.ReadFile(ctx, path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	current, err := pubver.Find(content)
	if err != nil {
		if errors.Is(err, pubver.ErrNoVersion) {
			return fmt.Errorf("%w: add a version line such as \"version: 1.0.0+1\"", err)
		}
		return err
	}
	next, err := pubver.Bump(current, part)
	if err != nil {
		return err
	}

	if opts.dryRun {
		printer.PrintInfo(fmt.Sprintf("%s -> %s (dry run)", current, next))
		return nil
	}

	git := env.Toolchain.Git(p.Root())
	if opts.commit {
		if !git.IsRepo(ctx) {
			return fmt.Errorf("%s is not a git repository", p.Root())
		}
	}
	if opts.tag {
		exists, err := git.TagExists(ctx, TagName(next))
		if err != nil {
			return err
		}
		if exists {
			return fmt.Errorf("tag %s already exists", TagName(next))
		}
	}

	if !opts.yes && tui.IsInteractive() {
		ok, err := confirmPrompt(fmt.Sprintf("Bump %s from %s to %s?", p.Name(), current, next), "")
		if err != nil {
			return err
		}
		if !ok {
			printer.PrintFaint("Version unchanged.")
			return nil
		}
	}

	updated, _, err := pubver.Rewrite(content, next)
	if err != nil {
		return err
	}
	if err := env.FS.WriteFile(ctx, path, updated, core.PermFile); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	env.Logger.Debug("version bumped", "part", part, "from", current, "to", next)

	printer.PrintSuccess(fmt.Sprintf("Bumped %s version: %s -> %s", part, current, next))

	if opts.commit {
		if err := git.Commit(ctx, fmt.Sprintf("chore(release): bump version to %s", next), path); err != nil {
			return err
		}
		printer.PrintSuccess("Committed " + filepath.Base(path))
	}
	if opts.tag {
		if err := git.CreateTag(ctx, TagName(next), "Release "+next.String()); err != nil {
			return err
		}
		printer.PrintSuccess("Tagged " + TagName(next))
	}
	return nil
}
