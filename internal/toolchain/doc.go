// Package toolchain runs the external tools flow wraps (flutter, dart, adb,
// xcrun, git, ruby, bundler, fastlane) and parses their loosely structured
// output. Argument assembly and output parsing are pure functions so they
// can be tested without the tools installed.
package toolchain
