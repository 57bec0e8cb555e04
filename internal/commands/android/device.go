package android

import (
	"context"
	"errors"
	"fmt"

	"github.com/flow-cli/flow/internal/clix"
	"github.com/flow-cli/flow/internal/toolchain"
	"github.com/flow-cli/flow/internal/tui"
)

var (
	errNoAdb     = errors.New("adb not found: install the Android SDK platform tools")
	errNoDevices = errors.New("no Android devices connected: start an emulator or connect a device with USB debugging enabled")
)

// selectPrompt is swapped in tests.
var selectPrompt = tui.Select

// onlineDevices returns the adb devices ready to accept commands. A non-empty
// serial narrows the result to that device.
func onlineDevices(ctx context.Context, env *clix.Env, serial string) ([]toolchain.AdbDevice, error) {
	devices, err := env.Toolchain.AdbDevices(ctx)
	if err != nil {
		if errors.Is(err, toolchain.ErrNotInstalled) {
			return nil, errNoAdb
		}
		return nil, err
	}

	var online []toolchain.AdbDevice
	for _, d := range devices {
		if !d.Online {
			continue
		}
		if serial != "" && d.ID != serial {
			continue
		}
		online = append(online, d)
	}
	if len(online) == 0 {
		if serial != "" {
			return nil, fmt.Errorf("device %q is not connected", serial)
		}
		return nil, errNoDevices
	}
	return online, nil
}

// chooseDevice picks one of devices, prompting when several are connected.
func chooseDevice(devices []toolchain.AdbDevice) (toolchain.AdbDevice, error) {
	if len(devices) == 1 {
		return devices[0], nil
	}
	if !tui.IsInteractive() {
		return toolchain.AdbDevice{}, fmt.Errorf("%d devices connected: pass --device <id>", len(devices))
	}

	labels := make([]string, len(devices))
	for i, d := range devices {
		labels[i] = deviceLabel(d)
	}
	choice, err := selectPrompt("Select Android device", "", labels)
	if err != nil {
		return toolchain.AdbDevice{}, err
	}
	for i, label := range labels {
		if label == choice {
			return devices[i], nil
		}
	}
	return toolchain.AdbDevice{}, fmt.Errorf("no device selected")
}

func deviceLabel(d toolchain.AdbDevice) string {
	if d.Model == "" {
		return d.ID
	}
	return fmt.Sprintf("%s (%s)", d.Model, d.ID)
}
