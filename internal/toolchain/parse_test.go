package toolchain

import (
	"testing"
)

func TestParseFlutterVersion(t *testing.T) {
	out := "Flutter 3.16.0 • channel stable • https://github.com/flutter/flutter.git\n" +
		"Framework • revision db7ef5bf9f (6 weeks ago) • 2023-11-15 11:25:44 -0800\n"
	if got := ParseFlutterVersion(out); got != "3.16.0" {
		t.Errorf("ParseFlutterVersion() = %q, want 3.16.0", got)
	}
	if got := ParseChannel(out); got != "stable" {
		t.Errorf("ParseChannel() = %q, want stable", got)
	}
	if got := ParseFlutterVersion(""); got != "" {
		t.Errorf("ParseFlutterVersion(empty) = %q", got)
	}
}

func TestParseToolVersion(t *testing.T) {
	tests := map[string]string{
		"git version 2.43.0\n":                           "2.43.0",
		"ruby 3.2.2p53 (2023-03-30 revision e51014f9c0)": "3.2.2p53",
		"Bundler version 2.4.10":                         "2.4.10",
		"fastlane 2.219.0":                               "2.219.0",
		"xcrun version 67.":                              "67.",
		"Dart SDK version: 3.2.0 (stable)":               "3.2.0",
		"no digits here":                                 "",
	}
	for in, want := range tests {
		if got := ParseToolVersion(in); got != want {
			t.Errorf("ParseToolVersion(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestParseAdbDevices(t *testing.T) {
	out := `* daemon not running; starting now at tcp:5037
* daemon started successfully
List of devices attached
emulator-5554          device product:sdk_gphone64_arm64 model:sdk_gphone64_arm64 device:emu64a transport_id:1
R58M12345AB            unauthorized usb:1-1 transport_id:2

`
	devices := ParseAdbDevices(out)
	if len(devices) != 2 {
		t.Fatalf("ParseAdbDevices() returned %d devices, want 2", len(devices))
	}

	emu := devices[0]
	if emu.ID != "emulator-5554" || emu.State != "device" || !emu.Online || emu.Type != "emulator" {
		t.Errorf("unexpected emulator entry: %+v", emu)
	}
	if emu.Model != "sdk gphone64 arm64" {
		t.Errorf("Model = %q", emu.Model)
	}

	phone := devices[1]
	if phone.Online || phone.Type != "device" || phone.State != "unauthorized" {
		t.Errorf("unexpected phone entry: %+v", phone)
	}
}

const simctlDevices = `{
  "devices": {
    "com.apple.CoreSimulator.SimRuntime.watchOS-10-0": [
      {"udid": "W1", "name": "Apple Watch", "state": "Shutdown", "isAvailable": true}
    ],
    "com.apple.CoreSimulator.SimRuntime.iOS-17-0": [
      {"udid": "B2", "name": "iPhone 15", "state": "Booted", "isAvailable": true},
      {"udid": "A1", "name": "iPad Air", "state": "Shutdown", "isAvailable": false}
    ]
  }
}`

func TestParseSimctlDevices(t *testing.T) {
	sims := ParseSimctlDevices(simctlDevices)
	if len(sims) != 2 {
		t.Fatalf("ParseSimctlDevices() returned %d, want 2 (iOS only)", len(sims))
	}
	if sims[0].Name != "iPad Air" || sims[1].Name != "iPhone 15" {
		t.Errorf("unexpected order: %+v", sims)
	}
	if sims[1].Runtime != "iOS 17.0" || !sims[1].Booted() {
		t.Errorf("unexpected simulator: %+v", sims[1])
	}
	if sims[0].Available {
		t.Error("iPad Air should be unavailable")
	}

	if got := ParseSimctlDevices("not json"); len(got) != 0 {
		t.Errorf("ParseSimctlDevices(invalid) = %v", got)
	}
}

func TestFindSimulator(t *testing.T) {
	sims := ParseSimctlDevices(simctlDevices)

	if s, ok := FindSimulator(sims, "iphone 15"); !ok || s.UDID != "B2" {
		t.Errorf("FindSimulator(name) = %+v, %v", s, ok)
	}
	if s, ok := FindSimulator(sims, "A1"); !ok || s.Name != "iPad Air" {
		t.Errorf("FindSimulator(udid) = %+v, %v", s, ok)
	}
	if _, ok := FindSimulator(sims, "Pixel"); ok {
		t.Error("FindSimulator(unknown) should fail")
	}
}

func TestParseSimctlRuntimes(t *testing.T) {
	out := `{"runtimes": [
	  {"name": "iOS 17.0", "version": "17.0", "identifier": "com.apple.CoreSimulator.SimRuntime.iOS-17-0", "isAvailable": true}
	]}`
	rts := ParseSimctlRuntimes(out)
	if len(rts) != 1 || rts[0].Version != "17.0" || !rts[0].Available {
		t.Errorf("ParseSimctlRuntimes() = %+v", rts)
	}
}

func TestParseFlutterDevices(t *testing.T) {
	out := `Waiting for devices...
[
  {"name": "Jane's iPhone", "id": "00008101", "targetPlatform": "ios", "emulator": false, "sdk": "iOS 17.1"},
  {"name": "iPhone 15", "id": "B2", "targetPlatform": "ios", "emulator": true, "sdk": "iOS 17.0"},
  {"name": "macOS", "id": "macos", "targetPlatform": "darwin", "emulator": false, "sdk": "macOS 14"}
]`
	devices := ParseFlutterDevices(out)
	if len(devices) != 3 {
		t.Fatalf("ParseFlutterDevices() returned %d, want 3", len(devices))
	}
	physical := PhysicalIOS(devices)
	if len(physical) != 1 || physical[0].ID != "00008101" {
		t.Errorf("PhysicalIOS() = %+v", physical)
	}
}

func TestParseAnalyzeIssues(t *testing.T) {
	out := `Analyzing demo_app...

   info • Avoid 'print' calls in production code • lib/main.dart:12:5 • avoid_print
warning • Unused import: 'dart:io' • lib/src/api.dart:1:8 • unused_import
  error - lib/src/home.dart:40:3 - Undefined name 'foo' - undefined_identifier
   info - test/widget_test.dart:7:1 - Prefer const - with a dash - prefer_const_constructors

4 issues found. (ran in 2.1s)
`
	issues := ParseAnalyzeIssues(out)
	if len(issues) != 4 {
		t.Fatalf("got %d issues, want 4: %+v", len(issues), issues)
	}
	want := []AnalyzeIssue{
		{Severity: "info", Message: "Avoid 'print' calls in production code", Location: "lib/main.dart:12:5", Rule: "avoid_print"},
		{Severity: "warning", Message: "Unused import: 'dart:io'", Location: "lib/src/api.dart:1:8", Rule: "unused_import"},
		{Severity: "error", Message: "Undefined name 'foo'", Location: "lib/src/home.dart:40:3", Rule: "undefined_identifier"},
		{Severity: "info", Message: "Prefer const - with a dash", Location: "test/widget_test.dart:7:1", Rule: "prefer_const_constructors"},
	}
	for i, w := range want {
		if issues[i] != w {
			t.Errorf("issue %d = %+v, want %+v", i, issues[i], w)
		}
	}

	if got := ParseAnalyzeIssues("Analyzing demo_app...\nNo issues found!\n"); got == nil || len(got) != 0 {
		t.Errorf("clean output = %#v, want empty slice", got)
	}
}
