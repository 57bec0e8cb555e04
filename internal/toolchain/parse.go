package toolchain

import (
	"slices"
	"sort"
	"strings"

	"github.com/tidwall/gjson"
)

// ParseFlutterVersion extracts the version from the first line of
// `flutter --version`, e.g. "Flutter 3.16.0 • channel stable • ...".
func ParseFlutterVersion(out string) string {
	return secondField(firstLine(out))
}

// ParseToolVersion extracts a version token from a one-line banner such as
// "git version 2.43.0", "ruby 3.2.2p53 (...)" or "fastlane 2.219.0".
func ParseToolVersion(out string) string {
	for _, line := range strings.Split(out, "\n") {
		for _, field := range strings.Fields(line) {
			f := strings.TrimPrefix(field, "v")
			if len(f) > 0 && f[0] >= '0' && f[0] <= '9' && strings.Contains(f, ".") {
				return strings.TrimRight(f, ",;")
			}
		}
	}
	return ""
}

// ParseChannel extracts the channel from `flutter --version` output.
func ParseChannel(out string) string {
	line := firstLine(out)
	_, after, ok := strings.Cut(line, "channel ")
	if !ok {
		return ""
	}
	return secondField("x " + after)
}

// AdbDevice is one entry of `adb devices -l`.
type AdbDevice struct {
	ID     string
	State  string
	Model  string
	Info   string
	Type   string
	Props  map[string]string
	Online bool
}

// ParseAdbDevices parses `adb devices -l` output.
//
//	List of devices attached
//	emulator-5554  device product:sdk_gphone64 model:sdk_gphone64_arm64 transport_id:1
func ParseAdbDevices(out string) []AdbDevice {
	var devices []AdbDevice
	for i, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(line)
		if i == 0 && strings.HasPrefix(line, "List of devices") {
			continue
		}
		if line == "" || strings.HasPrefix(line, "*") || strings.HasPrefix(line, "List of devices") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 2 {
			continue
		}

		d := AdbDevice{
			ID:     fields[0],
			State:  fields[1],
			Info:   strings.Join(fields[2:], " "),
			Props:  map[string]string{},
			Type:   "device",
			Online: fields[1] == "device",
		}
		if strings.Contains(d.ID, "emulator") {
			d.Type = "emulator"
		}
		for _, f := range fields[2:] {
			if k, v, ok := strings.Cut(f, ":"); ok {
				d.Props[k] = v
			}
		}
		d.Model = strings.ReplaceAll(d.Props["model"], "_", " ")
		devices = append(devices, d)
	}
	return devices
}

// AdbProps are the getprop keys queried for each online device.
var AdbProps = map[string]string{
	"manufacturer":    "ro.product.manufacturer",
	"android_version": "ro.build.version.release",
	"api_level":       "ro.build.version.sdk",
	"abi":             "ro.product.cpu.abi",
}

// Simulator is one device from `xcrun simctl list devices --json`.
type Simulator struct {
	UDID      string
	Name      string
	State     string
	Runtime   string
	Available bool
}

// Booted reports whether the simulator is running.
func (s Simulator) Booted() bool { return s.State == "Booted" }

// ParseSimctlDevices parses `xcrun simctl list devices --json`. Only iOS
// runtimes are kept; results are sorted by runtime, then name.
func ParseSimctlDevices(out string) []Simulator {
	var sims []Simulator
	if !gjson.Valid(out) {
		return sims
	}
	gjson.Get(out, "devices").ForEach(func(runtime, list gjson.Result) bool {
		rt := runtimeName(runtime.String())
		if !strings.HasPrefix(rt, "iOS") {
			return true
		}
		list.ForEach(func(_, dev gjson.Result) bool {
			available := true
			if v := dev.Get("isAvailable"); v.Exists() {
				available = v.Bool()
			}
			sims = append(sims, Simulator{
				UDID:      dev.Get("udid").String(),
				Name:      dev.Get("name").String(),
				State:     dev.Get("state").String(),
				Runtime:   rt,
				Available: available,
			})
			return true
		})
		return true
	})
	sort.SliceStable(sims, func(i, j int) bool {
		if sims[i].Runtime != sims[j].Runtime {
			return sims[i].Runtime < sims[j].Runtime
		}
		return sims[i].Name < sims[j].Name
	})
	return sims
}

// FindSimulator matches identifier against UDID or (case-insensitive) name,
// preferring available devices.
func FindSimulator(sims []Simulator, identifier string) (Simulator, bool) {
	var fallback *Simulator
	for i, s := range sims {
		if s.UDID == identifier || strings.EqualFold(s.Name, identifier) {
			if s.Available {
				return s, true
			}
			if fallback == nil {
				fallback = &sims[i]
			}
		}
	}
	if fallback != nil {
		return *fallback, true
	}
	return Simulator{}, false
}

// Runtime is one entry of `xcrun simctl list runtimes --json`.
type Runtime struct {
	Name       string
	Version    string
	Identifier string
	Available  bool
}

// ParseSimctlRuntimes parses `xcrun simctl list runtimes --json`.
func ParseSimctlRuntimes(out string) []Runtime {
	var runtimes []Runtime
	if !gjson.Valid(out) {
		return runtimes
	}
	gjson.Get(out, "runtimes").ForEach(func(_, rt gjson.Result) bool {
		runtimes = append(runtimes, Runtime{
			Name:       rt.Get("name").String(),
			Version:    rt.Get("version").String(),
			Identifier: rt.Get("identifier").String(),
			Available:  rt.Get("isAvailable").Bool(),
		})
		return true
	})
	return runtimes
}

// FlutterDevice is one entry of `flutter devices --machine`.
type FlutterDevice struct {
	ID         string
	Name       string
	Platform   string
	IsEmulator bool
	SDK        string
}

// ParseFlutterDevices parses `flutter devices --machine`. Non-JSON preamble
// lines that flutter sometimes prints are skipped.
func ParseFlutterDevices(out string) []FlutterDevice {
	var devices []FlutterDevice
	if i := strings.Index(out, "["); i > 0 {
		out = out[i:]
	}
	if !gjson.Valid(out) {
		return devices
	}
	gjson.Parse(out).ForEach(func(_, d gjson.Result) bool {
		devices = append(devices, FlutterDevice{
			ID:         d.Get("id").String(),
			Name:       d.Get("name").String(),
			Platform:   d.Get("targetPlatform").String(),
			IsEmulator: d.Get("emulator").Bool(),
			SDK:        d.Get("sdk").String(),
		})
		return true
	})
	return devices
}

// PhysicalIOS filters flutter devices down to physical iOS hardware.
func PhysicalIOS(devices []FlutterDevice) []FlutterDevice {
	var out []FlutterDevice
	for _, d := range devices {
		if d.Platform == "ios" && !d.IsEmulator {
			out = append(out, d)
		}
	}
	return out
}

// runtimeName turns "com.apple.CoreSimulator.SimRuntime.iOS-17-0" into "iOS 17.0".
func runtimeName(key string) string {
	name := key[strings.LastIndex(key, ".")+1:]
	platform, version, ok := strings.Cut(name, "-")
	if !ok {
		return name
	}
	return platform + " " + strings.ReplaceAll(version, "-", ".")
}

func firstLine(s string) string {
	line, _, _ := strings.Cut(strings.TrimSpace(s), "\n")
	return strings.TrimSpace(line)
}

func secondField(line string) string {
	fields := strings.Fields(line)
	if len(fields) < 2 {
		return ""
	}
	return fields[1]
}

// AnalyzeIssue is one diagnostic reported by `flutter analyze`.
type AnalyzeIssue struct {
	Severity string `json:"severity"`
	Message  string `json:"message"`
	Location string `json:"location"`
	Rule     string `json:"rule"`
}

var analyzeSeverities = []string{"error", "warning", "info"}

// ParseAnalyzeIssues parses `flutter analyze` output. Both the bullet form
// ("info • message • lib/a.dart:3:7 • rule") and the dash form used by newer
// SDKs ("info - lib/a.dart:3:7 - message - rule") are understood.
func ParseAnalyzeIssues(out string) []AnalyzeIssue {
	issues := []AnalyzeIssue{}
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(line)
		sep := " - "
		if strings.Contains(line, " • ") {
			sep = " • "
		}
		parts := strings.Split(line, sep)
		if len(parts) < 4 || !slices.Contains(analyzeSeverities, parts[0]) {
			continue
		}
		last := len(parts) - 1
		issue := AnalyzeIssue{Severity: parts[0], Rule: parts[last]}
		if sep == " • " {
			issue.Message = strings.Join(parts[1:last-1], sep)
			issue.Location = parts[last-1]
		} else {
			issue.Location = parts[1]
			issue.Message = strings.Join(parts[2:last], sep)
		}
		issues = append(issues, issue)
	}
	return issues
}
