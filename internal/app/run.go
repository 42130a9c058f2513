package app

import (
	"context"

	"github.com/vk/pubpipego/internal/ctxlog"
	"github.com/vk/pubpipego/internal/pipeline"
)

// Run executes the release pipeline: lint, test, clean, build, upload, in
// that order, aborting on the first failing stage. The returned error, if
// any, wraps a *pipeline.StageError carrying the failing tool's exit code.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	steps := a.assembleSteps()
	exec := pipeline.NewExecutor(pipeline.Strict(), steps...)

	a.logger.Info("🚀 Starting release pipeline.", "workdir", a.model.WorkDir, "dry_run", a.dryRun)
	results, err := exec.Run(ctx)

	for _, r := range results {
		a.logger.Info("Stage summary.",
			"stage", r.Stage.String(),
			"status", r.Status.String(),
			"duration", r.Duration,
		)
	}

	if err != nil {
		return err
	}
	a.logger.Info("🏁 Release pipeline finished.")
	return nil
}

// assembleSteps builds the fixed five-stage sequence from the loaded model.
func (a *App) assembleSteps() []pipeline.Step {
	return []pipeline.Step{
		&pipeline.LintStep{
			Runner:  a.runner,
			Config:  a.model.Lint,
			WorkDir: a.model.WorkDir,
		},
		&pipeline.TestStep{
			Runner:  a.runner,
			Config:  a.model.Test,
			WorkDir: a.model.WorkDir,
		},
		&pipeline.CleanStep{
			Config:  a.model.Clean,
			WorkDir: a.model.WorkDir,
			DryRun:  a.dryRun,
		},
		&pipeline.BuildStep{
			Runner:  a.runner,
			Config:  a.model.Build,
			Output:  a.model.Clean,
			WorkDir: a.model.WorkDir,
			DryRun:  a.dryRun,
		},
		&pipeline.UploadStep{
			Runner:  a.runner,
			Config:  a.model.Upload,
			Output:  a.model.Clean,
			WorkDir: a.model.WorkDir,
			DryRun:  a.dryRun,
		},
	}
}
