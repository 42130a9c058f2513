package pipeline

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/vk/pubpipego/internal/config"
	"github.com/vk/pubpipego/internal/ctxlog"
	"github.com/vk/pubpipego/internal/execx"
	"github.com/vk/pubpipego/internal/fsutil"
)

// UploadStep publishes exactly one artifact: the built-package
// distribution matching the configured glob. The source distribution
// stays local. The glob is resolved here, not by the upload tool, so the
// selection is verified before anything leaves the machine.
type UploadStep struct {
	Runner  execx.Runner
	Config  config.UploadConfig
	Output  config.CleanConfig
	WorkDir string
	// DryRun echoes the upload command with the unresolved glob, since no
	// artifacts exist to select from.
	DryRun bool
}

// Stage implements Step.
func (s *UploadStep) Stage() Stage {
	return StageUpload
}

// Run implements Step.
func (s *UploadStep) Run(ctx context.Context) error {
	dir := resolvePath(s.WorkDir, s.Output.OutputDir)

	artifact := filepath.Join(dir, s.Config.Pattern)
	if !s.DryRun {
		matches, err := fsutil.Glob(dir, s.Config.Pattern)
		if err != nil {
			return fmt.Errorf("selecting upload artifact in %s: %w", dir, err)
		}
		switch len(matches) {
		case 0:
			return fmt.Errorf("no artifact matching %q in %s", s.Config.Pattern, dir)
		case 1:
			artifact = matches[0]
		default:
			return fmt.Errorf("%d artifacts match %q in %s, expected exactly one", len(matches), s.Config.Pattern, dir)
		}
		ctxlog.FromContext(ctx).Info("Publishing artifact.", "artifact", artifact, "username", s.Config.Username)
	}

	args := []string{"upload", "-u", s.Config.Username}
	if s.Config.Repository != "" {
		args = append(args, "--repository-url", s.Config.Repository)
	}
	args = append(args, artifact)

	return s.Runner.Run(ctx, execx.Command{
		Name: s.Config.Tool,
		Args: args,
		Dir:  s.WorkDir,
	})
}
