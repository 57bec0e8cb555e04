package tui

import (
	"slices"
	"strings"

	"github.com/charmbracelet/huh"
)

// DefaultTheme is used when general.theme is empty.
const DefaultTheme = "flow"

// themes maps general.theme values to prompt theme constructors.
var themes = map[string]func() *huh.Theme{
	DefaultTheme: flowTheme,
	"base":       huh.ThemeBase,
	"base16":     huh.ThemeBase16,
	"catppuccin": huh.ThemeCatppuccin,
	"charm":      huh.ThemeCharm,
	"dracula":    huh.ThemeDracula,
}

// ThemeNames returns the accepted general.theme values, DefaultTheme first
// and the rest sorted.
func ThemeNames() []string {
	names := make([]string, 0, len(themes))
	for name := range themes {
		if name != DefaultTheme {
			names = append(names, name)
		}
	}
	slices.Sort(names)
	return append([]string{DefaultTheme}, names...)
}

// IsValidTheme reports whether name selects a theme. Matching ignores case
// and surrounding space; an empty name selects DefaultTheme.
func IsValidTheme(name string) bool {
	_, ok := lookupTheme(name)
	return ok
}

func lookupTheme(name string) (func() *huh.Theme, bool) {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" {
		key = DefaultTheme
	}
	build, ok := themes[key]
	return build, ok
}
