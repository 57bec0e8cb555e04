// Package builder plans and runs flutter builds for one or more flavors.
package builder

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/flow-cli/flow/internal/core"
	"github.com/flow-cli/flow/internal/project"
	"github.com/flow-cli/flow/internal/toolchain"
)

// Result reports one build.
type Result struct {
	Request  toolchain.BuildRequest
	Artifact string
	Size     int64
	Duration time.Duration
	Err      error
}

// OK reports whether the build succeeded.
func (r Result) OK() bool { return r.Err == nil }

// SpinFunc wraps a long-running action with progress output.
type SpinFunc func(ctx context.Context, title string, action func(ctx context.Context) error) error

// Builder runs BuildRequests sequentially.
type Builder struct {
	fs     core.FileSystem
	tc     *toolchain.Toolchain
	logger *slog.Logger
	stream io.Writer
	spin   SpinFunc
	now    func() time.Time
}

// New creates a Builder. Output is captured unless WithStream is used.
func New(fs core.FileSystem, tc *toolchain.Toolchain, logger *slog.Logger) *Builder {
	if logger == nil {
		logger = slog.Default()
	}
	return &Builder{
		fs:     fs,
		tc:     tc,
		logger: logger,
		spin: func(ctx context.Context, _ string, action func(context.Context) error) error {
			return action(ctx)
		},
		now: time.Now,
	}
}

// WithStream forwards build output to w as it is produced.
func (b *Builder) WithStream(w io.Writer) *Builder {
	b.stream = w
	return b
}

// WithSpinner wraps each build in spin. Ignored while streaming.
func (b *Builder) WithSpinner(spin SpinFunc) *Builder {
	if spin != nil {
		b.spin = spin
	}
	return b
}

// Plan expands a flavor selection into build requests. all builds every
// flavor (or the default build when the project has none); an explicit
// flavor must exist.
func Plan(p *project.Project, base toolchain.BuildRequest, flavor string, all bool) ([]toolchain.BuildRequest, error) {
	var flavors []string
	switch {
	case all:
		flavors = p.Flavors()
		if len(flavors) == 0 {
			flavors = []string{""}
		}
	case flavor != "":
		if !p.HasFlavor(flavor) {
			available := strings.Join(p.Flavors(), ", ")
			if available == "" {
				available = "none"
			}
			return nil, fmt.Errorf("flavor %q not found (available: %s)", flavor, available)
		}
		flavors = []string{flavor}
	default:
		flavors = []string{""}
	}

	reqs := make([]toolchain.BuildRequest, 0, len(flavors))
	for _, f := range flavors {
		req := base
		req.Flavor = f
		reqs = append(reqs, req)
	}
	return reqs, nil
}

// Run executes reqs in order. A failed build does not stop later ones.
func (b *Builder) Run(ctx context.Context, p *project.Project, reqs []toolchain.BuildRequest) []Result {
	results := make([]Result, 0, len(reqs))
	for _, req := range reqs {
		if ctx.Err() != nil {
			results = append(results, Result{Request: req, Err: ctx.Err()})
			continue
		}
		results = append(results, b.build(ctx, p, req))
	}
	return results
}

func (b *Builder) build(ctx context.Context, p *project.Project, req toolchain.BuildRequest) Result {
	res := Result{Request: req}
	start := b.now()

	action := func(ctx context.Context) error {
		_, err := b.tc.Build(ctx, p.Root(), req, b.stream)
		return err
	}
	var err error
	if b.stream != nil {
		err = action(ctx)
	} else {
		err = b.spin(ctx, "Building "+req.Label(), action)
	}
	res.Duration = b.now().Sub(start)
	b.logger.Debug("build finished", "build", req.Label(), "duration", res.Duration, "error", err)

	if err != nil {
		res.Err = fmt.Errorf("build %s failed: %w", req.Label(), err)
		return res
	}

	res.Artifact = toolchain.ExpectedArtifact(p, req)
	if info, err := b.fs.Stat(ctx, res.Artifact); err == nil {
		res.Size = info.Size()
	} else {
		b.logger.Debug("artifact not found at expected path", "path", res.Artifact)
	}
	return res
}

// Failed counts failed results.
func Failed(results []Result) int {
	n := 0
	for _, r := range results {
		if !r.OK() {
			n++
		}
	}
	return n
}

// Err summarises failures, or returns nil when every build succeeded.
func Err(results []Result) error {
	failed := Failed(results)
	switch {
	case failed == 0:
		return nil
	case len(results) == 1:
		return results[0].Err
	default:
		return fmt.Errorf("%d of %d builds failed", failed, len(results))
	}
}
