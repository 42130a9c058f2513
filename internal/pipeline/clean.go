package pipeline

import (
	"context"
	"fmt"

	"github.com/vk/pubpipego/internal/config"
	"github.com/vk/pubpipego/internal/ctxlog"
	"github.com/vk/pubpipego/internal/fsutil"
)

// CleanStep removes the build output directory so the packaging stage
// starts from a blank slate. Removal is idempotent: an absent directory is
// success.
type CleanStep struct {
	Config  config.CleanConfig
	WorkDir string
	// DryRun reports what would be removed without touching the filesystem.
	DryRun bool
}

// Stage implements Step.
func (s *CleanStep) Stage() Stage {
	return StageClean
}

// Run implements Step.
func (s *CleanStep) Run(ctx context.Context) error {
	dir := resolvePath(s.WorkDir, s.Config.OutputDir)
	logger := ctxlog.FromContext(ctx)
	if s.DryRun {
		logger.Info("Dry run: would remove build output directory.", "dir", dir)
		return nil
	}
	if err := fsutil.RemoveTree(dir); err != nil {
		return fmt.Errorf("removing build output directory %s: %w", dir, err)
	}
	logger.Debug("Build output directory removed.", "dir", dir)
	return nil
}
