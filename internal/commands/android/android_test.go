package android

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/flow-cli/flow/internal/clix/clitest"
	"github.com/flow-cli/flow/internal/testutils"
	"github.com/flow-cli/flow/internal/toolchain/toolchaintest"
)

func flavoredProject(t *testing.T) string {
	t.Helper()
	root := testutils.NewFlutterProject(t)
	testutils.WriteFile(t, root, "assets/configs/dev/config.json", `{"appName":"Demo Dev"}`)
	testutils.WriteFile(t, root, "assets/configs/prod/config.json", `{"appName":"Demo"}`)
	return root
}

func TestAndroidBuild_SingleFlavor(t *testing.T) {
	root := flavoredProject(t)
	testutils.WriteFile(t, root, "build/app/outputs/flutter-apk/app-dev-release.apk", strings.Repeat("x", 2048))
	runner := toolchaintest.NewFakeRunner()
	env := clitest.NewEnv(t, root, runner)

	out, err := clitest.Run(t, Run(env), "android", "build", "--flavor", "dev", "--mode", "release")
	if err != nil {
		t.Fatalf("build error = %v", err)
	}

	want := []string{
		"flutter pub get",
		"flutter build apk --release --flavor dev --target-platform android-arm64",
	}
	if got := runner.Commands(); strings.Join(got, "|") != strings.Join(want, "|") {
		t.Errorf("commands = %v, want %v", got, want)
	}
	for _, s := range []string{"dev", "app-dev-release.apk", "2.0 kB"} {
		if !strings.Contains(out, s) {
			t.Errorf("output missing %q:\n%s", s, out)
		}
	}
}

func TestAndroidBuild_AllFlavorsAppBundle(t *testing.T) {
	root := flavoredProject(t)
	runner := toolchaintest.NewFakeRunner()
	env := clitest.NewEnv(t, root, runner)
	env.Config.General.AutoPubGet = false

	if _, err := clitest.Run(t, Run(env), "android", "build", "--all-flavors", "--format", "appbundle", "-m", "profile"); err != nil {
		t.Fatal(err)
	}
	cmds := runner.Commands()
	if len(cmds) != 2 {
		t.Fatalf("commands = %v", cmds)
	}
	for i, f := range []string{"dev", "prod"} {
		want := fmt.Sprintf("flutter build appbundle --profile --flavor %s --target-platform android-arm64", f)
		if cmds[i] != want {
			t.Errorf("command %d = %q, want %q", i, cmds[i], want)
		}
	}
}

func TestAndroidBuild_DefaultFlavorFromConfig(t *testing.T) {
	root := flavoredProject(t)
	runner := toolchaintest.NewFakeRunner()
	env := clitest.NewEnv(t, root, runner)
	env.Config.General.AutoPubGet = false
	env.Config.General.DefaultFlavor = "prod"

	if _, err := clitest.Run(t, Run(env), "android", "build"); err != nil {
		t.Fatal(err)
	}
	if !runner.Called("flutter build apk --debug --flavor prod") {
		t.Errorf("commands = %v", runner.Commands())
	}
}

func TestAndroidBuild_Errors(t *testing.T) {
	root := flavoredProject(t)

	t.Run("unknown flavor", func(t *testing.T) {
		runner := toolchaintest.NewFakeRunner()
		_, err := clitest.Run(t, Run(clitest.NewEnv(t, root, runner)), "android", "build", "--flavor", "qa")
		if err == nil || !strings.Contains(err.Error(), `flavor "qa" not found`) {
			t.Errorf("error = %v", err)
		}
		if len(runner.Calls) != 0 {
			t.Errorf("nothing should run: %v", runner.Commands())
		}
	})

	t.Run("invalid mode", func(t *testing.T) {
		_, err := clitest.Run(t, Run(clitest.NewEnv(t, root, nil)), "android", "build", "--mode", "fast")
		if err == nil {
			t.Error("expected error for invalid mode")
		}
	})

	t.Run("build failure", func(t *testing.T) {
		runner := toolchaintest.NewFakeRunner()
		runner.Fail("flutter build apk --debug --flavor dev --target-platform android-arm64", errors.New("Gradle task assembleDevDebug failed"))
		out, err := clitest.Run(t, Run(clitest.NewEnv(t, root, runner)), "android", "build", "-f", "dev")
		if err == nil || !strings.Contains(err.Error(), "Gradle task") {
			t.Errorf("error = %v", err)
		}
		if !strings.Contains(out, "failed") {
			t.Errorf("summary should mark failure:\n%s", out)
		}
	})
}

func TestAndroidDevices(t *testing.T) {
	runner := toolchaintest.NewFakeRunner().
		On("adb devices -l", "List of devices attached\nemulator-5554          device product:sdk_gphone64 model:sdk_gphone64_arm64 transport_id:1\nR58M123ABC             unauthorized usb:1-1 transport_id:2\n\n").
		On("adb -s emulator-5554 shell getprop ro.build.version.release", "14\n").
		On("adb -s emulator-5554 shell getprop ro.build.version.sdk", "34\n")

	out, err := clitest.Run(t, Run(clitest.NewEnv(t, t.TempDir(), runner)), "android", "devices")
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"emulator-5554", "emulator", "sdk gphone64 arm64", "14", "34", "R58M123ABC", "unauthorized"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestAndroidDevices_NoneAndMissingAdb(t *testing.T) {
	runner := toolchaintest.NewFakeRunner().On("adb devices -l", "List of devices attached\n\n")
	out, err := clitest.Run(t, Run(clitest.NewEnv(t, t.TempDir(), runner)), "android", "devices")
	if err != nil || !strings.Contains(out, "No Android devices connected.") {
		t.Errorf("out = %q, err = %v", out, err)
	}

	missing := toolchaintest.NewFakeRunner()
	missing.Missing["adb"] = true
	_, err = clitest.Run(t, Run(clitest.NewEnv(t, t.TempDir(), missing)), "android", "devices")
	if err == nil || !strings.Contains(err.Error(), "adb not found") {
		t.Errorf("error = %v", err)
	}
}

const twoDevices = "List of devices attached\n" +
	"emulator-5554 device model:Pixel_7\n" +
	"R58M123ABC device model:SM_G991B\n" +
	"ZX1 offline\n"

func builtFlavors(t *testing.T) string {
	t.Helper()
	root := flavoredProject(t)
	for _, name := range []string{"app-dev-debug.apk", "app-dev-release.apk", "app-prod-release.apk"} {
		testutils.WriteFile(t, root, "build/app/outputs/flutter-apk/"+name, "apk")
	}
	return root
}

func installs(runner *toolchaintest.FakeRunner) []string {
	var out []string
	for _, c := range runner.Commands() {
		if strings.Contains(c, " install -r ") {
			out = append(out, c)
		}
	}
	return out
}

func TestAndroidInstall_FlavorOnEveryOnlineDevice(t *testing.T) {
	tests := []struct {
		args []string
		want string
	}{
		{[]string{"--flavor", "dev"}, "app-dev-debug.apk"},
		{[]string{"--flavor", "dev", "--mode", "release"}, "app-dev-release.apk"},
		{[]string{"-f", "prod"}, "app-prod-release.apk"},
	}
	for _, tt := range tests {
		t.Run(strings.Join(tt.args, " "), func(t *testing.T) {
			root := builtFlavors(t)
			runner := toolchaintest.NewFakeRunner().On("adb devices -l", twoDevices)

			out, err := clitest.Run(t, Run(clitest.NewEnv(t, root, runner)), append([]string{"android", "install"}, tt.args...)...)
			if err != nil {
				t.Fatal(err)
			}

			got := installs(runner)
			if len(got) != 2 {
				t.Fatalf("installs = %v, want one per online device", got)
			}
			for i, serial := range []string{"emulator-5554", "R58M123ABC"} {
				if !strings.HasPrefix(got[i], "adb -s "+serial+" install -r ") || !strings.HasSuffix(got[i], tt.want) {
					t.Errorf("install %d = %q, want %s on %s", i, got[i], tt.want, serial)
				}
			}
			if !strings.Contains(out, "Completed 2 installation(s)") {
				t.Errorf("output = %q", out)
			}
		})
	}
}

func TestAndroidInstall_AllOnOneDevice(t *testing.T) {
	root := builtFlavors(t)
	runner := toolchaintest.NewFakeRunner().On("adb devices -l", twoDevices)

	_, err := clitest.Run(t, Run(clitest.NewEnv(t, root, runner)), "android", "install", "--all", "--device", "R58M123ABC")
	if err != nil {
		t.Fatal(err)
	}
	got := installs(runner)
	if len(got) != 3 {
		t.Fatalf("installs = %v, want 3", got)
	}
	for _, c := range got {
		if !strings.HasPrefix(c, "adb -s R58M123ABC ") {
			t.Errorf("installed on the wrong device: %q", c)
		}
	}
}

func TestAndroidInstall_Errors(t *testing.T) {
	root := builtFlavors(t)

	tests := []struct {
		name    string
		devices string
		args    []string
		want    string
	}{
		{"no devices", "List of devices attached\nZX1 offline\n", nil, "no Android devices connected"},
		{"unknown device", twoDevices, []string{"--all", "-d", "XYZ"}, `device "XYZ" is not connected`},
		{"missing apk file", twoDevices, []string{"--apk", "/nope/app.apk"}, "APK file not found"},
		{"flavor not built", twoDevices, []string{"--flavor", "qa"}, `APK for flavor "qa" not found`},
		{"ambiguous", twoDevices, nil, "found 3 APKs"},
		{"invalid mode", twoDevices, []string{"--mode", "fast"}, "fast"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runner := toolchaintest.NewFakeRunner().On("adb devices -l", tt.devices)
			_, err := clitest.Run(t, Run(clitest.NewEnv(t, root, runner)), append([]string{"android", "install"}, tt.args...)...)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error = %v, want %q", err, tt.want)
			}
			if got := installs(runner); len(got) != 0 {
				t.Errorf("nothing should be installed: %v", got)
			}
		})
	}
}

func TestAndroidInstall_ReportsFailures(t *testing.T) {
	apk := testutils.WriteFile(t, t.TempDir(), "app.apk", "apk")
	runner := toolchaintest.NewFakeRunner().
		On("adb devices -l", twoDevices).
		On("adb -s R58M123ABC install -r "+apk, "Failure [INSTALL_FAILED_INSUFFICIENT_STORAGE]\n")

	out, err := clitest.Run(t, Run(clitest.NewEnv(t, t.TempDir(), runner)), "android", "install", "--apk", apk)
	if err == nil || err.Error() != "1 of 2 installations failed" {
		t.Errorf("error = %v", err)
	}
	if !strings.Contains(out, "INSTALL_FAILED_INSUFFICIENT_STORAGE") {
		t.Errorf("output should show the adb failure:\n%s", out)
	}
}

func TestAndroidRun(t *testing.T) {
	root := flavoredProject(t)
	stdin := strings.NewReader("q")
	origIn, origOut := runStdin, runStdout
	runStdin, runStdout = stdin, io.Discard
	t.Cleanup(func() { runStdin, runStdout = origIn, origOut })

	t.Run("single device", func(t *testing.T) {
		runner := toolchaintest.NewFakeRunner().On("adb devices -l", "List of devices attached\nemulator-5554 device\n")
		out, err := clitest.Run(t, Run(clitest.NewEnv(t, root, runner)), "android", "run", "--flavor", "dev")
		if err != nil {
			t.Fatal(err)
		}
		last := runner.Calls[len(runner.Calls)-1]
		if last.String() != "flutter run -d emulator-5554 --flavor dev" {
			t.Errorf("last command = %q", last.String())
		}
		if last.Stdin != stdin {
			t.Error("flutter run should read from the terminal")
		}
		if !strings.Contains(out, "hot reload") {
			t.Errorf("output = %q", out)
		}
	})

	t.Run("explicit device skips adb", func(t *testing.T) {
		runner := toolchaintest.NewFakeRunner()
		_, err := clitest.Run(t, Run(clitest.NewEnv(t, root, runner)), "android", "run", "-d", "R58M123ABC", "-m", "profile")
		if err != nil {
			t.Fatal(err)
		}
		if got := runner.Commands(); len(got) != 1 || got[0] != "flutter run -d R58M123ABC --profile" {
			t.Errorf("commands = %v", got)
		}
	})

	t.Run("several devices need a choice", func(t *testing.T) {
		runner := toolchaintest.NewFakeRunner().On("adb devices -l", twoDevices)
		_, err := clitest.Run(t, Run(clitest.NewEnv(t, root, runner)), "android", "run")
		if err == nil || !strings.Contains(err.Error(), "2 devices connected") {
			t.Errorf("error = %v", err)
		}
		if runner.Called("flutter run") {
			t.Error("flutter run should not start")
		}
	})

	t.Run("unknown flavor", func(t *testing.T) {
		runner := toolchaintest.NewFakeRunner()
		_, err := clitest.Run(t, Run(clitest.NewEnv(t, root, runner)), "android", "run", "-d", "X", "-f", "qa")
		if err == nil || !strings.Contains(err.Error(), `flavor "qa" not found`) {
			t.Errorf("error = %v", err)
		}
	})
}
