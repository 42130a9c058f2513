// Package vcs queries the version-control system for the tracked file set.
package vcs

import (
	"context"
	"fmt"
	"strings"

	"github.com/vk/pubpipego/internal/ctxlog"
	"github.com/vk/pubpipego/internal/execx"
)

// TrackedFiles returns the version-controlled files under dir whose paths
// match the given glob pattern, as reported by `git ls-files`. The result
// is recomputed on every call; nothing is cached between runs.
func TrackedFiles(ctx context.Context, runner execx.Runner, dir string, pattern string) ([]string, error) {
	logger := ctxlog.FromContext(ctx)

	out, err := runner.Capture(ctx, execx.Command{
		Name: "git",
		Args: []string{"ls-files", "--", pattern},
		Dir:  dir,
	})
	if err != nil {
		return nil, fmt.Errorf("listing tracked files matching %q: %w", pattern, err)
	}

	var files []string
	for _, line := range strings.Split(out, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			files = append(files, line)
		}
	}
	logger.Debug("Tracked file set computed.", "pattern", pattern, "count", len(files))
	return files, nil
}
