package cli

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/flow-cli/flow/internal/clix"
	"github.com/flow-cli/flow/internal/commands/analyze"
	"github.com/flow-cli/flow/internal/commands/android"
	"github.com/flow-cli/flow/internal/commands/configcmd"
	"github.com/flow-cli/flow/internal/commands/deps"
	"github.com/flow-cli/flow/internal/commands/doctorcmd"
	"github.com/flow-cli/flow/internal/commands/flavors"
	"github.com/flow-cli/flow/internal/commands/generate"
	"github.com/flow-cli/flow/internal/commands/info"
	"github.com/flow-cli/flow/internal/commands/ios"
	"github.com/flow-cli/flow/internal/commands/outputs"
	"github.com/flow-cli/flow/internal/commands/release"
	"github.com/flow-cli/flow/internal/printer"
	"github.com/flow-cli/flow/internal/tui"
	"github.com/flow-cli/flow/internal/version"
	urfavecli "github.com/urfave/cli/v3"
)

// New builds and returns the root CLI command,
// configuring all subcommands and flags for the flow cli.
func New(env *clix.Env) *urfavecli.Command {
	// -v is --verbose; --version keeps only its long form.
	urfavecli.VersionFlag = &urfavecli.BoolFlag{
		Name:        "version",
		Usage:       "print the version",
		HideDefault: true,
		Local:       true,
	}

	return &urfavecli.Command{
		Name:                  "flow",
		Version:               "v" + strings.TrimPrefix(version.GetVersion(), "v"),
		Usage:                 "Flutter project companion: builds, flavors, branding and releases",
		EnableShellCompletion: true,
		Flags: []urfavecli.Flag{
			&urfavecli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "Show debug logs and stream tool output",
			},
			&urfavecli.BoolFlag{
				Name:  "no-color",
				Usage: "Disable colored output",
			},
			&urfavecli.StringFlag{
				Name:        "project",
				Aliases:     []string{"C"},
				Usage:       "Start project discovery from `DIR`",
				DefaultText: "current directory",
			},
		},
		Before: func(ctx context.Context, cmd *urfavecli.Command) (context.Context, error) {
			configure(env, cmd.Bool("verbose"), cmd.Bool("no-color"), cmd.String("project"))
			return ctx, nil
		},
		Commands: Commands(env),
	}
}

// Commands returns the top-level commands.
func Commands(env *clix.Env) []*urfavecli.Command {
	return []*urfavecli.Command{
		info.Run(env),
		deps.Run(env),
		flavors.Run(env),
		outputs.Run(env),
		analyze.Run(env),
		android.Run(env),
		ios.Run(env),
		generate.Run(env),
		release.Run(env),
		doctorcmd.Run(env),
		configcmd.Run(env),
	}
}

// configure applies the root flags and the general config section.
func configure(env *clix.Env, verbose, noColor bool, projectDir string) {
	if projectDir != "" {
		env.StartDir = projectDir
	}

	theme := ""
	if env.Config != nil {
		verbose = verbose || env.Config.General.VerboseOutput
		noColor = noColor || !env.Config.General.ColorOutput
		theme = env.Config.General.Theme
	}
	env.Verbose = verbose

	if env.Level != nil {
		if verbose {
			env.Level.Set(slog.LevelDebug)
		} else {
			env.Level.Set(slog.LevelWarn)
		}
	}
	printer.SetNoColor(noColor)
	if !tui.SetTheme(theme) && env.Logger != nil {
		env.Logger.Warn("unknown theme, using default", "theme", theme, "default", tui.DefaultTheme)
	}
}

// ExpandAliases rewrites args when the first argument after the program
// name is a configured alias. Built-in command names always win. Alias
// values are split on whitespace: "b" -> "android build --mode release".
func ExpandAliases(args []string, aliases map[string]string, builtin []*urfavecli.Command) ([]string, error) {
	if len(args) < 2 || len(aliases) == 0 {
		return args, nil
	}

	// The alias is the first non-flag argument.
	idx := -1
	for i := 1; i < len(args); i++ {
		a := args[i]
		if a == "--" {
			break
		}
		if strings.HasPrefix(a, "-") {
			if takesValue(a) && !strings.Contains(a, "=") {
				i++
			}
			continue
		}
		idx = i
		break
	}
	if idx < 0 {
		return args, nil
	}

	name := args[idx]
	if isBuiltin(name, builtin) {
		return args, nil
	}
	target, ok := aliases[name]
	if !ok {
		return args, nil
	}
	fields := strings.Fields(target)
	if len(fields) == 0 {
		return nil, fmt.Errorf("alias %q has an empty command", name)
	}
	if fields[0] == name {
		return nil, fmt.Errorf("alias %q refers to itself", name)
	}

	out := make([]string, 0, len(args)+len(fields)-1)
	out = append(out, args[:idx]...)
	out = append(out, fields...)
	return append(out, args[idx+1:]...), nil
}

// takesValue reports root flags that consume the next argument.
func takesValue(flag string) bool {
	return flag == "--project" || flag == "-C"
}

func isBuiltin(name string, cmds []*urfavecli.Command) bool {
	if name == "help" || name == "h" {
		return true
	}
	for _, c := range cmds {
		if c.Name == name || slices.Contains(c.Aliases, name) {
			return true
		}
	}
	return false
}
