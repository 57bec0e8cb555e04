// Package version reports the flow build version.
package version

import "runtime/debug"

// version is set at build time:
//
//	go build -ldflags "-X github.com/flow-cli/flow/internal/version.version=1.2.3"
var version = ""

// GetVersion returns the linked version, the module version recorded by
// `go install`, or "dev".
func GetVersion() string {
	if version != "" {
		return version
	}
	if info, ok := debug.ReadBuildInfo(); ok {
		if v := info.Main.Version; v != "" && v != "(devel)" {
			return v
		}
	}
	return "dev"
}
