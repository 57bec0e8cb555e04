package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix prefixes environment overrides. Sections are separated by a
// double underscore: FLOW_GENERAL__DEFAULT_FLAVOR -> general.default_flavor.
const EnvPrefix = "FLOW_"

// defaults mirrors Default() as a flat koanf map.
func defaults() map[string]any {
	d := Default()
	return map[string]any{
		"flutter.sdk_path":            d.Flutter.SDKPath,
		"flutter.channel":             d.Flutter.Channel,
		"android.sdk_path":            d.Android.SDKPath,
		"android.build_tools_version": d.Android.BuildToolsVersion,
		"ios.xcode_path":              d.IOS.XcodePath,
		"ios.team_id":                 d.IOS.TeamID,
		"general.default_flavor":      d.General.DefaultFlavor,
		"general.auto_pub_get":        d.General.AutoPubGet,
		"general.verbose_output":      d.General.VerboseOutput,
		"general.color_output":        d.General.ColorOutput,
		"general.theme":               d.General.Theme,
	}
}

// Load reads configuration from path. Precedence (highest to lowest):
// env vars > config file > defaults. A missing file is not an error.
//
// Env overrides apply to this invocation only: Save writes back the file
// value of any key an env var still overrides.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
				return nil, fmt.Errorf("error reading config file %s: %w", path, err)
			}
		} else if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to stat config file %s: %w", path, err)
		}
	}

	stored, err := decode(k)
	if err != nil {
		return nil, err
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	cfg, err := decode(k)
	if err != nil {
		return nil, err
	}
	cfg.path = path
	cfg.overrides = diffValues(stored.Values(), cfg.Values())
	return cfg, nil
}

func decode(k *koanf.Koanf) (*Config, error) {
	cfg := Default()
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	if cfg.Aliases == nil {
		cfg.Aliases = map[string]string{}
	}
	if cfg.RecentProjects == nil {
		cfg.RecentProjects = []string{}
	}
	return cfg, nil
}

// diffValues returns the keys whose value differs between stored and
// effective. A key absent from stored has an empty stored value.
func diffValues(stored, effective map[string]string) map[string]override {
	var out map[string]override
	for key, v := range effective {
		if stored[key] == v {
			continue
		}
		if out == nil {
			out = map[string]override{}
		}
		out[key] = override{stored: stored[key], env: v}
	}
	return out
}

// LoadDefault loads the config from DefaultPath.
func LoadDefault() (*Config, error) {
	path, err := DefaultPath()
	if err != nil {
		return nil, err
	}
	return Load(path)
}

// envKey maps FLOW_GENERAL__DEFAULT_FLAVOR to general.default_flavor.
// FLOW_CONFIG and single-segment names are not config keys and are skipped.
func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	if !strings.Contains(key, "__") {
		return ""
	}
	return strings.ReplaceAll(key, "__", ".")
}
