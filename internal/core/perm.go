package core

import "os"

// File permission presets shared across the codebase.
const (
	// PermOwnerRW is used for files holding user configuration.
	PermOwnerRW os.FileMode = 0o600

	// PermFile is used for files that live inside a project tree.
	PermFile os.FileMode = 0o644

	// PermDir is used for directories created inside a project tree.
	PermDir os.FileMode = 0o755

	// PermConfigDir is used for the per-user configuration directory.
	PermConfigDir os.FileMode = 0o700
)
