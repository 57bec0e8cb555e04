// Package project locates Flutter projects on disk and answers structural
// questions about them: declared name, version and dependencies, flavors
// inferred from the assets and Android source trees, and build artifacts
// found under the conventional output directories.
//
// Everything here is best-effort introspection. Read and parse failures
// degrade to empty results; only the Locator reports "not found", through
// ErrNotFound.
package project
