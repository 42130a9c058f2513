package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"

	"github.com/vk/pubpipego/internal/config"
	"github.com/vk/pubpipego/internal/ctxlog"
	"github.com/vk/pubpipego/internal/execx"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW   io.Writer
	logger *slog.Logger
	model  *config.Model
	runner execx.Runner
	dryRun bool
}

// NewApp is the constructor for the main application. It returns a fully
// initialized App with its own isolated logger and a loaded, validated
// pipeline model. An optional runner may be injected for testing; by
// default the app executes real child processes, or echoes them in
// dry-run mode.
func NewApp(outW io.Writer, appConfig *Config, loader config.Loader, runners ...execx.Runner) *App {
	logger := newLogger(appConfig.LogLevel, appConfig.LogFormat, outW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	base := config.Default()
	base.WorkDir = appConfig.WorkDir

	pipelinePath := appConfig.PipelinePath
	if !filepath.IsAbs(pipelinePath) {
		pipelinePath = filepath.Join(appConfig.WorkDir, pipelinePath)
	}

	model, err := loader.Load(ctx, pipelinePath, base)
	if err != nil {
		// A failure to load config is a fatal startup error.
		panic(fmt.Errorf("failed to load pipeline definition: %w", err))
	}
	if err := model.Validate(); err != nil {
		panic(fmt.Errorf("invalid pipeline definition: %w", err))
	}
	logger.Debug("Pipeline definition loaded and validated.", "workdir", model.WorkDir)

	var runner execx.Runner
	switch {
	case len(runners) > 0:
		runner = runners[0]
	case appConfig.DryRun:
		runner = &execx.EchoRunner{Out: outW}
	default:
		runner = execx.NewOSRunner()
	}

	return &App{
		outW:   outW,
		logger: logger,
		model:  model,
		runner: runner,
		dryRun: appConfig.DryRun,
	}
}

// Model returns the loaded pipeline model. This is primarily for testing.
func (a *App) Model() *config.Model {
	return a.model
}
