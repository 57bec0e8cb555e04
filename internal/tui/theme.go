package tui

import (
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// Flutter-blue palette used by the default theme.
var (
	flowBluePrimary   = lipgloss.AdaptiveColor{Light: "#0175c2", Dark: "#54c5f8"}
	flowBlueAccent    = lipgloss.AdaptiveColor{Light: "#02569b", Dark: "#29b6f6"}
	flowTextStrong    = lipgloss.AdaptiveColor{Light: "#111827", Dark: "#f9fafb"}
	flowTextMuted     = lipgloss.AdaptiveColor{Light: "#6b7280", Dark: "#9ca3af"}
	flowBorderFocused = lipgloss.AdaptiveColor{Light: "#0175c2", Dark: "#54c5f8"}
	flowButtonBg      = lipgloss.AdaptiveColor{Light: "#0175c2", Dark: "#0175c2"}
	flowButtonBlurred = lipgloss.AdaptiveColor{Light: "#e5e7eb", Dark: "#374151"}
	flowButtonText    = lipgloss.AdaptiveColor{Light: "#ffffff", Dark: "#ffffff"}
	flowErrorRed      = lipgloss.AdaptiveColor{Light: "#dc2626", Dark: "#f87171"}
)

// currentTheme holds the currently configured theme for TUI components.
// When nil, currentThemeOrDefault() returns the flow theme.
var currentTheme *huh.Theme

// SetTheme selects the prompt theme named by general.theme. An unknown
// name leaves the default theme in place and reports false.
func SetTheme(name string) bool {
	build, ok := lookupTheme(name)
	if !ok {
		currentTheme = nil
		return false
	}
	currentTheme = build()
	return true
}

// currentThemeOrDefault returns the current theme for TUI components.
func currentThemeOrDefault() *huh.Theme {
	if currentTheme == nil {
		return flowTheme()
	}
	return currentTheme
}

// resetTheme resets the current theme to the default.
func resetTheme() {
	currentTheme = nil
}

func flowTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Base = t.Focused.Base.
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(flowBorderFocused)
	t.Focused.Title = t.Focused.Title.Foreground(flowBluePrimary).Bold(true)
	t.Focused.Description = t.Focused.Description.Foreground(flowTextMuted)
	t.Focused.ErrorIndicator = t.Focused.ErrorIndicator.Foreground(flowErrorRed)
	t.Focused.ErrorMessage = t.Focused.ErrorMessage.Foreground(flowErrorRed)
	t.Focused.SelectSelector = t.Focused.SelectSelector.Foreground(flowBlueAccent)
	t.Focused.Option = t.Focused.Option.Foreground(flowTextStrong)
	t.Focused.SelectedOption = t.Focused.SelectedOption.Foreground(flowBlueAccent)
	t.Focused.FocusedButton = t.Focused.FocusedButton.
		Foreground(flowButtonText).
		Background(flowButtonBg).
		Bold(true).
		Padding(0, 1)
	t.Focused.BlurredButton = t.Focused.BlurredButton.
		Foreground(flowTextMuted).
		Background(flowButtonBlurred).
		Padding(0, 1)

	t.Blurred = t.Focused
	t.Blurred.Base = t.Focused.Base.BorderStyle(lipgloss.HiddenBorder())
	t.Blurred.Title = t.Blurred.Title.Foreground(flowTextMuted).Bold(false)

	return t
}
