package app

import (
	"fmt"
	"os"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	// PipelinePath points at the optional HCL pipeline override file,
	// resolved against the working directory when relative.
	PipelinePath string
	// WorkDir is the directory the pipeline runs in. Empty means the
	// current process working directory.
	WorkDir string

	LogFormat string
	LogLevel  string
	// DryRun prints every external command instead of executing it.
	DryRun bool
}

// NewConfig validates and completes a Config. The working directory is
// resolved exactly once here and stays fixed for the whole run.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.WorkDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("resolving working directory: %w", err)
		}
		cfg.WorkDir = wd
	}
	if cfg.PipelinePath == "" {
		cfg.PipelinePath = "pipeline.hcl"
	}
	return &cfg, nil
}
