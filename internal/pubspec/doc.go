// Package pubspec reads pubspec.yaml manifests into a generic document and
// exposes typed, defaulting accessors over it. Loading never fails: the
// returned Manifest records whether the file was missing, empty, malformed
// or loaded, so callers can choose whether that distinction matters.
package pubspec
