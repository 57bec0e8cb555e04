package toolchain

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"
)

// Default timeouts for short tool queries. Builds run without a timeout.
const (
	QueryTimeout    = 10 * time.Second
	PropTimeout     = 5 * time.Second
	GenerateTimeout = 120 * time.Second
	DoctorTimeout   = 60 * time.Second
	InstallTimeout  = 60 * time.Second
	AnalyzeTimeout  = 120 * time.Second
)

// Toolchain bundles the tool invocations flow commands need.
type Toolchain struct {
	runner Runner
}

// New creates a Toolchain over runner.
func New(runner Runner) *Toolchain {
	return &Toolchain{runner: runner}
}

// Runner returns the underlying Runner.
func (t *Toolchain) Runner() Runner { return t.runner }

// Available reports whether name is on PATH.
func (t *Toolchain) Available(name string) bool {
	_, err := t.runner.LookPath(name)
	return err == nil
}

// Version runs `<name> <args...>` and extracts a version token from its output.
func (t *Toolchain) Version(ctx context.Context, name string, args ...string) (string, error) {
	out, err := t.runner.Run(ctx, Invocation{Name: name, Args: args, Timeout: QueryTimeout})
	if err != nil {
		return "", err
	}
	return ParseToolVersion(out.Stdout + "\n" + out.Stderr), nil
}

// FlutterVersion returns the Flutter SDK version and channel.
func (t *Toolchain) FlutterVersion(ctx context.Context) (version, channel string, err error) {
	out, err := t.runner.Run(ctx, Invocation{Name: "flutter", Args: []string{"--version"}, Timeout: QueryTimeout})
	if err != nil {
		return "", "", err
	}
	return ParseFlutterVersion(out.Stdout), ParseChannel(out.Stdout), nil
}

// Build runs `flutter build` inside dir, streaming output when stream is set.
func (t *Toolchain) Build(ctx context.Context, dir string, req BuildRequest, stream io.Writer) (Output, error) {
	return t.runner.Run(ctx, Invocation{
		Name:   "flutter",
		Args:   FlutterBuildArgs(req),
		Dir:    dir,
		Stream: stream,
	})
}

// PubGet runs `flutter pub get` inside dir.
func (t *Toolchain) PubGet(ctx context.Context, dir string) error {
	_, err := t.runner.Run(ctx, Invocation{Name: "flutter", Args: []string{"pub", "get"}, Dir: dir})
	return err
}

// DartRun runs `dart run <args...>` inside dir with the generator timeout.
func (t *Toolchain) DartRun(ctx context.Context, dir string, args ...string) (Output, error) {
	return t.runner.Run(ctx, Invocation{
		Name:    "dart",
		Args:    append([]string{"run"}, args...),
		Dir:     dir,
		Timeout: GenerateTimeout,
	})
}

// AdbDevices lists adb devices and fills Props for online ones.
func (t *Toolchain) AdbDevices(ctx context.Context) ([]AdbDevice, error) {
	out, err := t.runner.Run(ctx, Invocation{Name: "adb", Args: []string{"devices", "-l"}, Timeout: QueryTimeout})
	if err != nil {
		return nil, err
	}
	devices := ParseAdbDevices(out.Stdout)
	for i := range devices {
		if !devices[i].Online {
			continue
		}
		for name, key := range AdbProps {
			devices[i].Props[name] = t.getprop(ctx, devices[i].ID, key)
		}
	}
	return devices, nil
}

func (t *Toolchain) getprop(ctx context.Context, id, key string) string {
	out, err := t.runner.Run(ctx, Invocation{
		Name:    "adb",
		Args:    []string{"-s", id, "shell", "getprop", key},
		Timeout: PropTimeout,
	})
	if err != nil {
		return "Unknown"
	}
	if v := strings.TrimSpace(out.Stdout); v != "" {
		return v
	}
	return "Unknown"
}

// Simulators lists iOS simulators.
func (t *Toolchain) Simulators(ctx context.Context) ([]Simulator, error) {
	out, err := t.runner.Run(ctx, Invocation{
		Name:    "xcrun",
		Args:    []string{"simctl", "list", "devices", "--json"},
		Timeout: QueryTimeout,
	})
	if err != nil {
		return nil, err
	}
	return ParseSimctlDevices(out.Stdout), nil
}

// Runtimes lists installed simulator runtimes.
func (t *Toolchain) Runtimes(ctx context.Context) ([]Runtime, error) {
	out, err := t.runner.Run(ctx, Invocation{
		Name:    "xcrun",
		Args:    []string{"simctl", "list", "runtimes", "--json"},
		Timeout: QueryTimeout,
	})
	if err != nil {
		return nil, err
	}
	return ParseSimctlRuntimes(out.Stdout), nil
}

// SetSimulatorState boots (boot=true) or shuts down a simulator.
func (t *Toolchain) SetSimulatorState(ctx context.Context, udid string, boot bool) error {
	action := "shutdown"
	if boot {
		action = "boot"
	}
	_, err := t.runner.Run(ctx, Invocation{
		Name:    "xcrun",
		Args:    []string{"simctl", action, udid},
		Timeout: 30 * time.Second,
	})
	return err
}

// FlutterDevices lists devices known to flutter.
func (t *Toolchain) FlutterDevices(ctx context.Context) ([]FlutterDevice, error) {
	out, err := t.runner.Run(ctx, Invocation{
		Name:    "flutter",
		Args:    []string{"devices", "--machine"},
		Timeout: QueryTimeout,
	})
	if err != nil {
		return nil, err
	}
	return ParseFlutterDevices(out.Stdout), nil
}

// InstallApk installs apk on the adb device serial, replacing an existing
// installation. Older adb versions exit 0 on failure and only print
// "Failure [...]", so stdout is checked too.
func (t *Toolchain) InstallApk(ctx context.Context, serial, apk string) error {
	out, err := t.runner.Run(ctx, Invocation{
		Name:    "adb",
		Args:    []string{"-s", serial, "install", "-r", apk},
		Timeout: InstallTimeout,
	})
	if err != nil {
		return err
	}
	for _, line := range strings.Split(out.Stdout, "\n") {
		if line = strings.TrimSpace(line); strings.HasPrefix(line, "Failure") {
			return fmt.Errorf("adb install: %s", line)
		}
	}
	return nil
}

// FlutterRun starts `flutter run` inside dir and blocks until the session
// ends. The terminal is attached so hot reload keys reach flutter.
func (t *Toolchain) FlutterRun(ctx context.Context, dir string, req RunRequest, stdin io.Reader, stream io.Writer) error {
	_, err := t.runner.Run(ctx, Invocation{
		Name:   "flutter",
		Args:   FlutterRunArgs(req),
		Dir:    dir,
		Stdin:  stdin,
		Stream: stream,
	})
	return err
}

// Analyze runs `flutter analyze` inside dir. flutter exits non-zero when it
// reports issues; that is only an error if no issue could be parsed.
func (t *Toolchain) Analyze(ctx context.Context, dir string) ([]AnalyzeIssue, error) {
	out, err := t.runner.Run(ctx, Invocation{
		Name:    "flutter",
		Args:    []string{"analyze", "--no-congratulate"},
		Dir:     dir,
		Timeout: AnalyzeTimeout,
	})
	issues := ParseAnalyzeIssues(out.Stdout)
	if err != nil && (len(issues) == 0 || out.ExitCode <= 0) {
		return nil, err
	}
	return issues, nil
}
