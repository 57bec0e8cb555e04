package toolchain

import (
	"context"
	"fmt"
	"strings"
)

// Git runs release-related git commands inside a project. Errors carry the
// git stderr via the Runner.
type Git struct {
	runner Runner
	dir    string
}

// Git returns git operations rooted at dir.
func (t *Toolchain) Git(dir string) *Git {
	return &Git{runner: t.runner, dir: dir}
}

func (g *Git) run(ctx context.Context, args ...string) (string, error) {
	out, err := g.runner.Run(ctx, Invocation{Name: "git", Args: args, Dir: g.dir, Timeout: QueryTimeout})
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out.Stdout), nil
}

// IsRepo reports whether dir is inside a git work tree.
func (g *Git) IsRepo(ctx context.Context) bool {
	out, err := g.run(ctx, "rev-parse", "--is-inside-work-tree")
	return err == nil && out == "true"
}

// Commit stages files and commits them with message.
func (g *Git) Commit(ctx context.Context, message string, files ...string) error {
	if _, err := g.run(ctx, append([]string{"add", "--"}, files...)...); err != nil {
		return fmt.Errorf("git add failed: %w", err)
	}
	if _, err := g.run(ctx, "commit", "-m", message); err != nil {
		return fmt.Errorf("git commit failed: %w", err)
	}
	return nil
}

// TagExists reports whether tag name exists locally.
func (g *Git) TagExists(ctx context.Context, name string) (bool, error) {
	out, err := g.run(ctx, "tag", "-l", name)
	if err != nil {
		return false, fmt.Errorf("failed to list tags: %w", err)
	}
	return out == name, nil
}

// CreateTag creates an annotated tag, or a lightweight one when message is
// empty.
func (g *Git) CreateTag(ctx context.Context, name, message string) error {
	args := []string{"tag", name}
	if message != "" {
		args = []string{"tag", "-a", name, "-m", message}
	}
	if _, err := g.run(ctx, args...); err != nil {
		return fmt.Errorf("git tag failed: %w", err)
	}
	return nil
}
