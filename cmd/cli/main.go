package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/vk/pubpipego/internal/app"
	"github.com/vk/pubpipego/internal/cli"
	"github.com/vk/pubpipego/internal/hclcfg"
	"github.com/vk/pubpipego/internal/pipeline"
)

// main is the entrypoint for the pubpipe release pipeline runner.
func main() {
	// Use a minimal logger until the full one is configured.
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})))

	if err := run(os.Stdout, os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)

		var exitErr *cli.ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.Code)
		}
		// A failed stage propagates the failing tool's own exit code.
		var stageErr *pipeline.StageError
		if errors.As(err, &stageErr) && stageErr.ExitCode > 0 {
			os.Exit(stageErr.ExitCode)
		}
		os.Exit(1)
	}
}

// run encapsulates the main application logic for easier testing and error handling.
func run(outW io.Writer, args []string) (err error) {
	appConfig, shouldExit, parseErr := cli.Parse(args, outW)
	if parseErr != nil {
		return parseErr
	}
	if shouldExit {
		return nil
	}

	// The app panics on critical config errors, so we recover here to
	// provide a clean exit message to the user.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("application startup panicked: %v", r)
		}
	}()

	loader := hclcfg.NewLoader()
	pipelineApp := app.NewApp(outW, appConfig, loader)

	return pipelineApp.Run(context.Background())
}
