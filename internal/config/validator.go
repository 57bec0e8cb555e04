package config

import (
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/flow-cli/flow/internal/tui"
)

// ValidChannels lists the Flutter release channels flow accepts.
var ValidChannels = []string{"stable", "beta", "master", "main"}

// ValidationResult represents the result of a validation check.
type ValidationResult struct {
	// Category is the validation category (e.g., "Flutter", "General").
	Category string

	// Passed indicates if the check passed.
	Passed bool

	// Message provides details about the validation result.
	Message string

	// Warning indicates if this is a warning rather than an error.
	Warning bool
}

// Validator checks a loaded Config.
type Validator struct {
	cfg         *Config
	stat        func(string) (os.FileInfo, error)
	validations []ValidationResult
}

// NewValidator creates a new configuration validator.
func NewValidator(cfg *Config) *Validator {
	return &Validator{cfg: cfg, stat: os.Stat}
}

// Validate runs all validation checks and returns the results.
func (v *Validator) Validate() []ValidationResult {
	v.validations = v.validations[:0]

	v.validateChannel()
	v.validateTheme()
	v.validatePath("Flutter", "flutter.sdk_path", v.cfg.Flutter.SDKPath)
	v.validatePath("Android", "android.sdk_path", v.cfg.Android.SDKPath)
	v.validatePath("iOS", "ios.xcode_path", v.cfg.IOS.XcodePath)
	v.validateAliases()

	return slices.Clone(v.validations)
}

func (v *Validator) validateChannel() {
	ch := v.cfg.Flutter.Channel
	if slices.Contains(ValidChannels, ch) {
		v.addValidation("Flutter", true, fmt.Sprintf("channel %q", ch), false)
		return
	}
	v.addValidation("Flutter", false,
		fmt.Sprintf("invalid channel %q (expected one of %s)", ch, strings.Join(ValidChannels, ", ")), false)
}

func (v *Validator) validateTheme() {
	theme := v.cfg.General.Theme
	if tui.IsValidTheme(theme) {
		v.addValidation("General", true, "theme ok", false)
		return
	}
	v.addValidation("General", false,
		fmt.Sprintf("invalid theme %q (expected one of %s)", theme, strings.Join(tui.ThemeNames(), ", ")), false)
}

// validatePath warns when a configured directory does not exist.
func (v *Validator) validatePath(category, key, path string) {
	if path == "" {
		return
	}
	info, err := v.stat(path)
	if err != nil || !info.IsDir() {
		v.addValidation(category, false, fmt.Sprintf("%s: directory %s not found", key, path), true)
		return
	}
	v.addValidation(category, true, fmt.Sprintf("%s: %s", key, path), false)
}

func (v *Validator) validateAliases() {
	for name, target := range v.cfg.Aliases {
		if strings.TrimSpace(target) == "" {
			v.addValidation("Aliases", false, fmt.Sprintf("alias %q has an empty command", name), true)
		}
	}
}

// addValidation adds a validation result to the list.
func (v *Validator) addValidation(category string, passed bool, message string, warning bool) {
	v.validations = append(v.validations, ValidationResult{
		Category: category,
		Passed:   passed,
		Message:  message,
		Warning:  warning,
	})
}

// Validate returns an error describing the first failed check.
func (c *Config) Validate() error {
	for _, r := range NewValidator(c).Validate() {
		if !r.Passed && !r.Warning {
			return fmt.Errorf("invalid configuration: %s", r.Message)
		}
	}
	return nil
}

// HasErrors returns true if any validation failed.
func HasErrors(results []ValidationResult) bool {
	return ErrorCount(results) > 0
}

// ErrorCount returns the number of failed validations.
func ErrorCount(results []ValidationResult) int {
	count := 0
	for _, r := range results {
		if !r.Passed && !r.Warning {
			count++
		}
	}
	return count
}

// WarningCount returns the number of warnings.
func WarningCount(results []ValidationResult) int {
	count := 0
	for _, r := range results {
		if r.Warning {
			count++
		}
	}
	return count
}
