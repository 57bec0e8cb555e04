package tui

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestFlowTheme(t *testing.T) {
	theme := flowTheme()
	if theme == nil {
		t.Fatal("flowTheme() returned nil")
	}

	if !theme.Focused.Title.GetBold() {
		t.Error("Focused.Title should be bold")
	}
	if theme.Focused.Base.GetBorderStyle() != lipgloss.RoundedBorder() {
		t.Error("Focused.Base should have rounded border")
	}
	if theme.Blurred.Base.GetBorderStyle() != lipgloss.HiddenBorder() {
		t.Error("Blurred.Base should have hidden border")
	}
	if !theme.Focused.FocusedButton.GetBold() {
		t.Error("Focused.FocusedButton should be bold")
	}

	_, fRight, _, fLeft := theme.Focused.FocusedButton.GetPadding()
	_, bRight, _, bLeft := theme.Focused.BlurredButton.GetPadding()
	if fLeft != 1 || fRight != 1 {
		t.Errorf("FocusedButton padding = %d/%d, want 1/1", fLeft, fRight)
	}
	if fLeft != bLeft || fRight != bRight {
		t.Error("FocusedButton and BlurredButton should have consistent padding")
	}
}

func TestFlowThemeColors(t *testing.T) {
	colors := map[string]lipgloss.AdaptiveColor{
		"flowBluePrimary":   flowBluePrimary,
		"flowBlueAccent":    flowBlueAccent,
		"flowTextStrong":    flowTextStrong,
		"flowTextMuted":     flowTextMuted,
		"flowBorderFocused": flowBorderFocused,
		"flowButtonBg":      flowButtonBg,
		"flowButtonBlurred": flowButtonBlurred,
		"flowButtonText":    flowButtonText,
		"flowErrorRed":      flowErrorRed,
	}
	for name, c := range colors {
		t.Run(name, func(t *testing.T) {
			if !isValidHexColor(c.Light) {
				t.Errorf("light color %q is not a valid hex color", c.Light)
			}
			if !isValidHexColor(c.Dark) {
				t.Errorf("dark color %q is not a valid hex color", c.Dark)
			}
		})
	}
}

// isValidHexColor checks if a string is a valid hex color (e.g., "#0175c2")
func isValidHexColor(s string) bool {
	if len(s) != 7 || s[0] != '#' {
		return false
	}
	for _, c := range s[1:] {
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') && (c < 'A' || c > 'F') {
			return false
		}
	}
	return true
}
