package clix

import (
	"fmt"
	"strings"

	"github.com/flow-cli/flow/internal/project"
	"github.com/flow-cli/flow/internal/tui"
)

// Choices offered next to the flavor names in interactive selection.
const (
	ChoiceAllFlavors    = "All flavors"
	ChoiceDefaultFlavor = "Default (no flavor)"
)

// selectPrompt is swapped in tests.
var selectPrompt = tui.Select

// ChooseFlavor resolves the flavor selection of a command. An explicit flag
// or --all-flavors wins, then general.default_flavor, then an interactive
// prompt when the project has flavors. Otherwise the default build is used.
func (e *Env) ChooseFlavor(p *project.Project, flag string, all bool, title string) (string, bool, error) {
	if flag != "" || all {
		return flag, all, nil
	}
	return e.promptFlavor(p, title, true)
}

// ChooseOneFlavor is ChooseFlavor for commands that act on a single flavor,
// such as run: the prompt offers no "All flavors" choice and an explicit
// flag must name an existing flavor.
func (e *Env) ChooseOneFlavor(p *project.Project, flag, title string) (string, error) {
	if flag != "" {
		if !p.HasFlavor(flag) {
			return "", fmt.Errorf("flavor %q not found (available: %s)", flag, strings.Join(p.Flavors(), ", "))
		}
		return flag, nil
	}
	name, _, err := e.promptFlavor(p, title, false)
	return name, err
}

func (e *Env) promptFlavor(p *project.Project, title string, allowAll bool) (string, bool, error) {
	if def := e.DefaultFlavor(); def != "" && p.HasFlavor(def) {
		e.Logger.Debug("using default flavor from config", "flavor", def)
		return def, false, nil
	}

	flavors := p.Flavors()
	if len(flavors) == 0 || !tui.IsInteractive() {
		return "", false, nil
	}

	options := flavors
	if allowAll {
		options = append(options, ChoiceAllFlavors)
	}
	choice, err := selectPrompt(title, "", append(options, ChoiceDefaultFlavor))
	if err != nil {
		return "", false, err
	}
	switch choice {
	case ChoiceAllFlavors:
		return "", true, nil
	case ChoiceDefaultFlavor:
		return "", false, nil
	default:
		return choice, false, nil
	}
}
