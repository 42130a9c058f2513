package pipeline

import (
	"context"

	"github.com/vk/pubpipego/internal/config"
	"github.com/vk/pubpipego/internal/ctxlog"
	"github.com/vk/pubpipego/internal/execx"
	"github.com/vk/pubpipego/internal/vcs"
)

// LintStep runs the style checker over every tracked source file matching
// the configured pattern. The tracked set is recomputed on each run; when
// it is empty the checker is not invoked at all.
type LintStep struct {
	Runner  execx.Runner
	Config  config.LintConfig
	WorkDir string
}

// Stage implements Step.
func (s *LintStep) Stage() Stage {
	return StageLint
}

// Run implements Step.
func (s *LintStep) Run(ctx context.Context) error {
	files, err := vcs.TrackedFiles(ctx, s.Runner, s.WorkDir, s.Config.Pattern)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		ctxlog.FromContext(ctx).Info("No tracked files match pattern, skipping style check.", "pattern", s.Config.Pattern)
		return nil
	}
	return s.Runner.Run(ctx, execx.Command{
		Name: s.Config.Checker,
		Args: files,
		Dir:  s.WorkDir,
	})
}
