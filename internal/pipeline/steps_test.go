package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/pubpipego/internal/config"
	"github.com/vk/pubpipego/internal/execx"
)

func TestLintStep_PassesTrackedFilesToChecker(t *testing.T) {
	t.Parallel()

	recorder := &execx.RecorderRunner{
		CaptureOut: map[string]string{"git": "setup.py\nraw_zlib/__init__.py\n"},
	}
	step := &LintStep{
		Runner:  recorder,
		Config:  config.LintConfig{Checker: "flake8", Pattern: "*.py"},
		WorkDir: "/repo",
	}

	require.NoError(t, step.Run(context.Background()))

	calls := recorder.Calls()
	require.Len(t, calls, 2)
	assert.Equal(t, "git", calls[0].Name)
	assert.Equal(t, "flake8", calls[1].Name)
	assert.Equal(t, []string{"setup.py", "raw_zlib/__init__.py"}, calls[1].Args)
	assert.Equal(t, "/repo", calls[1].Dir)
}

func TestLintStep_SkipsCheckerWhenNoFiles(t *testing.T) {
	t.Parallel()

	recorder := &execx.RecorderRunner{CaptureOut: map[string]string{"git": ""}}
	step := &LintStep{
		Runner:  recorder,
		Config:  config.LintConfig{Checker: "flake8", Pattern: "*.py"},
		WorkDir: "/repo",
	}

	require.NoError(t, step.Run(context.Background()))
	assert.Equal(t, 0, recorder.Invocations("flake8"))
}

func TestTestStep_SetsSearchPathVariable(t *testing.T) {
	t.Parallel()

	recorder := &execx.RecorderRunner{}
	step := &TestStep{
		Runner:  recorder,
		Config:  config.TestConfig{Runner: "pytest", PathVar: "PYTHONPATH"},
		WorkDir: "/repo",
	}

	require.NoError(t, step.Run(context.Background()))

	calls := recorder.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, "pytest", calls[0].Name)
	assert.Equal(t, "/repo", calls[0].Dir)
	assert.Equal(t, []string{"PYTHONPATH=/repo"}, calls[0].Env)
}

func TestCleanStep_RemovesOutputDir(t *testing.T) {
	t.Parallel()

	workDir := t.TempDir()
	distDir := filepath.Join(workDir, "dist")
	require.NoError(t, os.MkdirAll(distDir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(distDir, "stale.whl"), nil, 0644))

	step := &CleanStep{Config: config.CleanConfig{OutputDir: "dist"}, WorkDir: workDir}
	require.NoError(t, step.Run(context.Background()))

	_, err := os.Stat(distDir)
	assert.True(t, os.IsNotExist(err))

	// Absent directory: still success.
	require.NoError(t, step.Run(context.Background()))
}

func TestCleanStep_AbsoluteOutputDir(t *testing.T) {
	t.Parallel()

	// An output_dir interpolated from the workdir variable arrives here
	// already absolute; it must be removed as-is, not re-anchored to the
	// working directory.
	workDir := t.TempDir()
	absDir := filepath.Join(workDir, "artifacts")
	require.NoError(t, os.MkdirAll(absDir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(absDir, "stale.whl"), nil, 0644))

	step := &CleanStep{Config: config.CleanConfig{OutputDir: absDir}, WorkDir: workDir}
	require.NoError(t, step.Run(context.Background()))

	_, err := os.Stat(absDir)
	assert.True(t, os.IsNotExist(err), "clean stage must remove the configured output directory")
}

func TestCleanStep_DryRunLeavesDirAlone(t *testing.T) {
	t.Parallel()

	workDir := t.TempDir()
	distDir := filepath.Join(workDir, "dist")
	require.NoError(t, os.MkdirAll(distDir, 0755))

	step := &CleanStep{Config: config.CleanConfig{OutputDir: "dist"}, WorkDir: workDir, DryRun: true}
	require.NoError(t, step.Run(context.Background()))

	_, err := os.Stat(distDir)
	assert.NoError(t, err)
}

func TestBuildStep_InvokesPackagingTool(t *testing.T) {
	t.Parallel()

	workDir := t.TempDir()
	recorder := &execx.RecorderRunner{
		RunHook: func(cmd execx.Command) error {
			// The packaging tool materializes both artifact types.
			distDir := filepath.Join(workDir, "dist")
			if err := os.MkdirAll(distDir, 0755); err != nil {
				return err
			}
			for _, name := range []string{"raw_zlib-0.1.15.tar.gz", "raw_zlib-0.1.15-py3-none-any.whl"} {
				if err := os.WriteFile(filepath.Join(distDir, name), nil, 0644); err != nil {
					return err
				}
			}
			return nil
		},
	}
	step := &BuildStep{
		Runner:  recorder,
		Config:  config.BuildConfig{Tool: "python", Args: []string{"setup.py", "sdist", "bdist_wheel"}},
		Output:  config.CleanConfig{OutputDir: "dist"},
		WorkDir: workDir,
	}

	require.NoError(t, step.Run(context.Background()))

	calls := recorder.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, "python", calls[0].Name)
	assert.Equal(t, []string{"setup.py", "sdist", "bdist_wheel"}, calls[0].Args)
}

func TestBuildStep_FailsWhenNoArtifactsProduced(t *testing.T) {
	t.Parallel()

	step := &BuildStep{
		Runner:  &execx.RecorderRunner{},
		Config:  config.BuildConfig{Tool: "python", Args: []string{"setup.py", "sdist", "bdist_wheel"}},
		Output:  config.CleanConfig{OutputDir: "dist"},
		WorkDir: t.TempDir(),
	}

	err := step.Run(context.Background())
	require.Error(t, err)
	assert.ErrorContains(t, err, "no artifacts")
}

func TestBuildStep_AbsoluteOutputDir(t *testing.T) {
	t.Parallel()

	workDir := t.TempDir()
	absDir := filepath.Join(workDir, "artifacts")
	recorder := &execx.RecorderRunner{
		RunHook: func(cmd execx.Command) error {
			if err := os.MkdirAll(absDir, 0755); err != nil {
				return err
			}
			return os.WriteFile(filepath.Join(absDir, "raw_zlib-0.1.15-py3-none-any.whl"), nil, 0644)
		},
	}
	step := &BuildStep{
		Runner:  recorder,
		Config:  config.BuildConfig{Tool: "python", Args: []string{"setup.py", "sdist", "bdist_wheel"}},
		Output:  config.CleanConfig{OutputDir: absDir},
		WorkDir: workDir,
	}

	require.NoError(t, step.Run(context.Background()))
}

func TestUploadStep_SelectsOnlyBuiltPackage(t *testing.T) {
	t.Parallel()

	workDir := t.TempDir()
	distDir := filepath.Join(workDir, "dist")
	require.NoError(t, os.MkdirAll(distDir, 0755))
	sdist := filepath.Join(distDir, "raw_zlib-0.1.15.tar.gz")
	wheel := filepath.Join(distDir, "raw_zlib-0.1.15-py3-none-any.whl")
	require.NoError(t, os.WriteFile(sdist, nil, 0644))
	require.NoError(t, os.WriteFile(wheel, nil, 0644))

	recorder := &execx.RecorderRunner{}
	step := &UploadStep{
		Runner:  recorder,
		Config:  config.UploadConfig{Tool: "twine", Username: "mephi42", Pattern: "*.whl"},
		Output:  config.CleanConfig{OutputDir: "dist"},
		WorkDir: workDir,
	}

	require.NoError(t, step.Run(context.Background()))

	calls := recorder.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, "twine", calls[0].Name)
	assert.Equal(t, []string{"upload", "-u", "mephi42", wheel}, calls[0].Args)
	assert.NotContains(t, calls[0].Args, sdist, "the source distribution must never be uploaded")
}

func TestUploadStep_CustomRepository(t *testing.T) {
	t.Parallel()

	workDir := t.TempDir()
	distDir := filepath.Join(workDir, "dist")
	require.NoError(t, os.MkdirAll(distDir, 0755))
	wheel := filepath.Join(distDir, "raw_zlib-0.1.15-py3-none-any.whl")
	require.NoError(t, os.WriteFile(wheel, nil, 0644))

	recorder := &execx.RecorderRunner{}
	step := &UploadStep{
		Runner: recorder,
		Config: config.UploadConfig{
			Tool:       "twine",
			Username:   "release-bot",
			Pattern:    "*.whl",
			Repository: "https://test.pypi.org/legacy/",
		},
		Output:  config.CleanConfig{OutputDir: "dist"},
		WorkDir: workDir,
	}

	require.NoError(t, step.Run(context.Background()))

	calls := recorder.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, []string{"upload", "-u", "release-bot", "--repository-url", "https://test.pypi.org/legacy/", wheel}, calls[0].Args)
}

func TestUploadStep_AbsoluteOutputDir(t *testing.T) {
	t.Parallel()

	workDir := t.TempDir()
	absDir := filepath.Join(workDir, "artifacts")
	require.NoError(t, os.MkdirAll(absDir, 0755))
	wheel := filepath.Join(absDir, "raw_zlib-0.1.15-py3-none-any.whl")
	require.NoError(t, os.WriteFile(wheel, nil, 0644))

	recorder := &execx.RecorderRunner{}
	step := &UploadStep{
		Runner:  recorder,
		Config:  config.UploadConfig{Tool: "twine", Username: "mephi42", Pattern: "*.whl"},
		Output:  config.CleanConfig{OutputDir: absDir},
		WorkDir: workDir,
	}

	require.NoError(t, step.Run(context.Background()))

	calls := recorder.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, []string{"upload", "-u", "mephi42", wheel}, calls[0].Args)
}

func TestUploadStep_FailsWithoutArtifact(t *testing.T) {
	t.Parallel()

	recorder := &execx.RecorderRunner{}
	step := &UploadStep{
		Runner:  recorder,
		Config:  config.UploadConfig{Tool: "twine", Username: "mephi42", Pattern: "*.whl"},
		Output:  config.CleanConfig{OutputDir: "dist"},
		WorkDir: t.TempDir(),
	}

	err := step.Run(context.Background())
	require.Error(t, err)
	assert.ErrorContains(t, err, "no artifact matching")
	assert.Equal(t, 0, recorder.Invocations("twine"))
}

func TestUploadStep_FailsOnAmbiguousMatch(t *testing.T) {
	t.Parallel()

	workDir := t.TempDir()
	distDir := filepath.Join(workDir, "dist")
	require.NoError(t, os.MkdirAll(distDir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(distDir, "a-0.1.0-py3-none-any.whl"), nil, 0644))
	require.NoError(t, os.WriteFile(filepath.Join(distDir, "a-0.2.0-py3-none-any.whl"), nil, 0644))

	recorder := &execx.RecorderRunner{}
	step := &UploadStep{
		Runner:  recorder,
		Config:  config.UploadConfig{Tool: "twine", Username: "mephi42", Pattern: "*.whl"},
		Output:  config.CleanConfig{OutputDir: "dist"},
		WorkDir: workDir,
	}

	err := step.Run(context.Background())
	require.Error(t, err)
	assert.ErrorContains(t, err, "expected exactly one")
	assert.Equal(t, 0, recorder.Invocations("twine"))
}
