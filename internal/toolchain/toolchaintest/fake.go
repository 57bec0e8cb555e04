// Package toolchaintest provides a scripted toolchain.Runner for tests.
package toolchaintest

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/flow-cli/flow/internal/toolchain"
)

// FakeRunner is a scripted toolchain.Runner. Responses are keyed by the
// invocation string ("flutter --version"); unmatched invocations succeed
// with empty output unless Strict is set.
type FakeRunner struct {
	mu        sync.Mutex
	Responses map[string]toolchain.Output
	Errors    map[string]error
	Missing   map[string]bool
	Strict    bool
	Calls     []toolchain.Invocation
}

// NewFakeRunner returns an empty FakeRunner.
func NewFakeRunner() *FakeRunner {
	return &FakeRunner{
		Responses: map[string]toolchain.Output{},
		Errors:    map[string]error{},
		Missing:   map[string]bool{},
	}
}

// Verify FakeRunner implements Runner.
var _ toolchain.Runner = (*FakeRunner)(nil)

// On registers stdout for a command line.
func (f *FakeRunner) On(cmdline, stdout string) *FakeRunner {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Responses[cmdline] = toolchain.Output{Stdout: stdout}
	return f
}

// Fail registers an error for a command line.
func (f *FakeRunner) Fail(cmdline string, err error) *FakeRunner {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Errors[cmdline] = err
	return f
}

// Run records inv and returns the registered response.
func (f *FakeRunner) Run(_ context.Context, inv toolchain.Invocation) (toolchain.Output, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Calls = append(f.Calls, inv)

	if f.Missing[inv.Name] {
		return toolchain.Output{ExitCode: -1}, fmt.Errorf("%w: %s", toolchain.ErrNotInstalled, inv.Name)
	}
	key := inv.String()
	if err, ok := f.Errors[key]; ok {
		return toolchain.Output{ExitCode: 1}, err
	}
	out, ok := f.Responses[key]
	if !ok && f.Strict {
		return toolchain.Output{ExitCode: 1}, fmt.Errorf("unexpected invocation: %s", key)
	}
	if inv.Stream != nil && out.Stdout != "" {
		_, _ = inv.Stream.Write([]byte(out.Stdout))
	}
	return out, nil
}

// LookPath reports tools listed in Missing as absent.
func (f *FakeRunner) LookPath(name string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Missing[name] {
		return "", fmt.Errorf("%w: %s", toolchain.ErrNotInstalled, name)
	}
	return "/usr/bin/" + name, nil
}

// Commands returns the recorded invocations as command lines.
func (f *FakeRunner) Commands() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, 0, len(f.Calls))
	for _, c := range f.Calls {
		out = append(out, c.String())
	}
	return out
}

// Called reports whether a command line starting with prefix was run.
func (f *FakeRunner) Called(prefix string) bool {
	for _, c := range f.Commands() {
		if strings.HasPrefix(c, prefix) {
			return true
		}
	}
	return false
}
