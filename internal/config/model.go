package config

import (
	"errors"
	"fmt"
)

// Model is the format-agnostic definition of one release pipeline run. It
// is assembled from built-in defaults, optionally overridden by a loaded
// pipeline file, and consumed by the stage implementations.
type Model struct {
	// WorkDir is the directory every relative path resolves against. It is
	// established once at startup and never changes during a run.
	WorkDir string

	Lint   LintConfig
	Test   TestConfig
	Clean  CleanConfig
	Build  BuildConfig
	Upload UploadConfig
}

// LintConfig drives the style-check stage.
type LintConfig struct {
	// Checker is the style checker executable.
	Checker string
	// Pattern is the version-control glob selecting the source files the
	// checker receives.
	Pattern string
}

// TestConfig drives the test stage.
type TestConfig struct {
	// Runner is the test discovery-and-execution executable.
	Runner string
	// PathVar is the environment variable set to the working directory so
	// the runner resolves the package in place.
	PathVar string
}

// CleanConfig drives the cleanup stage.
type CleanConfig struct {
	// OutputDir is the build output directory, relative to the working
	// directory. It is owned exclusively by the pipeline: destroyed before
	// every build and repopulated by the packaging tool.
	OutputDir string
}

// BuildConfig drives the packaging stage.
type BuildConfig struct {
	// Tool is the packaging executable.
	Tool string
	// Args are the packaging tool's arguments; the defaults request one
	// source distribution and one built-package distribution.
	Args []string
}

// UploadConfig drives the publish stage.
type UploadConfig struct {
	// Tool is the upload executable.
	Tool string
	// Username is the identity the upload tool authenticates with.
	Username string
	// Pattern is the glob, within the build output directory, that must
	// select exactly the built-package distribution.
	Pattern string
	// Repository is an alternative package index URL. Empty means the
	// upload tool's default index.
	Repository string
}

// Default returns the pipeline definition used when no override file is
// present: flake8 over the tracked Python sources, pytest with PYTHONPATH
// pointed at the working directory, a dist/ output directory, a
// sdist+wheel build, and a twine upload of the wheel.
func Default() *Model {
	return &Model{
		Lint: LintConfig{
			Checker: "flake8",
			Pattern: "*.py",
		},
		Test: TestConfig{
			Runner:  "pytest",
			PathVar: "PYTHONPATH",
		},
		Clean: CleanConfig{
			OutputDir: "dist",
		},
		Build: BuildConfig{
			Tool: "python",
			Args: []string{"setup.py", "sdist", "bdist_wheel"},
		},
		Upload: UploadConfig{
			Tool:     "twine",
			Username: "mephi42",
			Pattern:  "*.whl",
		},
	}
}

// Validate reports the first structural problem with the model. A model
// that passes is safe to hand to the stage implementations.
func (m *Model) Validate() error {
	if m.WorkDir == "" {
		return errors.New("working directory is not set")
	}
	checks := []struct {
		field string
		value string
	}{
		{"lint.checker", m.Lint.Checker},
		{"lint.pattern", m.Lint.Pattern},
		{"test.runner", m.Test.Runner},
		{"test.path_var", m.Test.PathVar},
		{"clean.output_dir", m.Clean.OutputDir},
		{"build.tool", m.Build.Tool},
		{"upload.tool", m.Upload.Tool},
		{"upload.username", m.Upload.Username},
		{"upload.pattern", m.Upload.Pattern},
	}
	for _, c := range checks {
		if c.value == "" {
			return fmt.Errorf("pipeline field %s must not be empty", c.field)
		}
	}
	if len(m.Build.Args) == 0 {
		return errors.New("pipeline field build.args must not be empty")
	}
	return nil
}
