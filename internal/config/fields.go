package config

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// ErrUnknownKey is returned by Get and Set for keys outside the schema.
var ErrUnknownKey = errors.New("unknown config key")

// aliasPrefix addresses entries of the aliases map, e.g. aliases.b.
const aliasPrefix = "aliases."

// field binds a dotted key to a scalar setting.
type field struct {
	str  func(c *Config) *string
	bool func(c *Config) *bool
}

var fields = map[string]field{
	"flutter.sdk_path":            {str: func(c *Config) *string { return &c.Flutter.SDKPath }},
	"flutter.channel":             {str: func(c *Config) *string { return &c.Flutter.Channel }},
	"android.sdk_path":            {str: func(c *Config) *string { return &c.Android.SDKPath }},
	"android.build_tools_version": {str: func(c *Config) *string { return &c.Android.BuildToolsVersion }},
	"ios.xcode_path":              {str: func(c *Config) *string { return &c.IOS.XcodePath }},
	"ios.team_id":                 {str: func(c *Config) *string { return &c.IOS.TeamID }},
	"general.default_flavor":      {str: func(c *Config) *string { return &c.General.DefaultFlavor }},
	"general.theme":               {str: func(c *Config) *string { return &c.General.Theme }},
	"general.auto_pub_get":        {bool: func(c *Config) *bool { return &c.General.AutoPubGet }},
	"general.verbose_output":      {bool: func(c *Config) *bool { return &c.General.VerboseOutput }},
	"general.color_output":        {bool: func(c *Config) *bool { return &c.General.ColorOutput }},
}

// Keys returns every scalar key in sorted order.
func Keys() []string {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// Get returns the string form of a setting.
func (c *Config) Get(key string) (string, error) {
	if name, ok := strings.CutPrefix(key, aliasPrefix); ok && name != "" {
		v, found := c.Aliases[name]
		if !found {
			return "", fmt.Errorf("%w: %s", ErrUnknownKey, key)
		}
		return v, nil
	}
	f, ok := fields[key]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
	if f.bool != nil {
		return strconv.FormatBool(*f.bool(c)), nil
	}
	return *f.str(c), nil
}

// Set assigns a setting from its string form. Bool fields accept
// true/false, yes/no, on/off and 1/0.
func (c *Config) Set(key, value string) error {
	delete(c.overrides, key)
	if name, ok := strings.CutPrefix(key, aliasPrefix); ok && name != "" {
		if c.Aliases == nil {
			c.Aliases = map[string]string{}
		}
		if value == "" {
			delete(c.Aliases, name)
			return nil
		}
		c.Aliases[name] = value
		return nil
	}
	f, ok := fields[key]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
	if f.bool != nil {
		b, err := parseBool(value)
		if err != nil {
			return fmt.Errorf("invalid value for %s: %w", key, err)
		}
		*f.bool(c) = b
		return nil
	}
	*f.str(c) = value
	return nil
}

// Reset restores the defaults, keeping the backing path.
func (c *Config) Reset() {
	path := c.path
	*c = *Default()
	c.path = path
}

// Values returns every scalar key with its current value.
func (c *Config) Values() map[string]string {
	out := make(map[string]string, len(fields)+len(c.Aliases))
	for k := range fields {
		v, _ := c.Get(k)
		out[k] = v
	}
	for name, v := range c.Aliases {
		out[aliasPrefix+name] = v
	}
	return out
}

func parseBool(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "yes", "on", "1":
		return true, nil
	case "false", "no", "off", "0":
		return false, nil
	}
	return false, fmt.Errorf("%q is not a boolean", s)
}
