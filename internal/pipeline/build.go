package pipeline

import (
	"context"
	"fmt"

	"github.com/vk/pubpipego/internal/config"
	"github.com/vk/pubpipego/internal/ctxlog"
	"github.com/vk/pubpipego/internal/execx"
	"github.com/vk/pubpipego/internal/fsutil"
)

// BuildStep invokes the packaging tool, which is expected to leave one
// source distribution and one built-package distribution in the build
// output directory.
type BuildStep struct {
	Runner  execx.Runner
	Config  config.BuildConfig
	Output  config.CleanConfig
	WorkDir string
	// DryRun skips the post-build artifact check, since nothing was built.
	DryRun bool
}

// Stage implements Step.
func (s *BuildStep) Stage() Stage {
	return StageBuild
}

// Run implements Step.
func (s *BuildStep) Run(ctx context.Context) error {
	if err := s.Runner.Run(ctx, execx.Command{
		Name: s.Config.Tool,
		Args: s.Config.Args,
		Dir:  s.WorkDir,
	}); err != nil {
		return err
	}
	if s.DryRun {
		return nil
	}

	dir := resolvePath(s.WorkDir, s.Output.OutputDir)
	artifacts, err := fsutil.Glob(dir, "*")
	if err != nil {
		return fmt.Errorf("inspecting build output directory %s: %w", dir, err)
	}
	if len(artifacts) == 0 {
		return fmt.Errorf("packaging tool produced no artifacts in %s", dir)
	}
	ctxlog.FromContext(ctx).Info("Distribution artifacts built.", "dir", dir, "count", len(artifacts))
	return nil
}
