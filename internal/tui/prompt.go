package tui

import (
	"errors"

	"github.com/charmbracelet/huh"
)

// ErrNotInteractive is returned by prompts when no terminal is attached.
var ErrNotInteractive = errors.New("interactive prompt requires a terminal")

// Confirm shows a yes/no confirmation prompt.
func Confirm(title, description string) (bool, error) {
	if !IsInteractive() {
		return false, ErrNotInteractive
	}
	var ok bool
	err := huh.NewForm(huh.NewGroup(
		huh.NewConfirm().
			Title(title).
			Description(description).
			Affirmative("Yes").
			Negative("No").
			Value(&ok),
	)).WithTheme(currentThemeOrDefault()).Run()
	return ok, err
}

// Select shows a single-select prompt over options.
func Select(title, description string, options []string) (string, error) {
	if !IsInteractive() {
		return "", ErrNotInteractive
	}
	var choice string
	err := huh.NewForm(huh.NewGroup(
		huh.NewSelect[string]().
			Title(title).
			Description(description).
			Options(huh.NewOptions(options...)...).
			Value(&choice),
	)).WithTheme(currentThemeOrDefault()).Run()
	return choice, err
}

// Input shows a single-line text prompt prefilled with value.
func Input(title, value string) (string, error) {
	if !IsInteractive() {
		return value, ErrNotInteractive
	}
	err := huh.NewForm(huh.NewGroup(
		huh.NewInput().Title(title).Value(&value),
	)).WithTheme(currentThemeOrDefault()).Run()
	return value, err
}

// MultiSelect shows a multi-select prompt over options.
func MultiSelect(title string, options []string) ([]string, error) {
	if !IsInteractive() {
		return nil, ErrNotInteractive
	}
	var chosen []string
	err := huh.NewForm(huh.NewGroup(
		huh.NewMultiSelect[string]().
			Title(title).
			Options(huh.NewOptions(options...)...).
			Value(&chosen),
	)).WithTheme(currentThemeOrDefault()).Run()
	return chosen, err
}
