package pipeline

import (
	"context"

	"github.com/vk/pubpipego/internal/config"
	"github.com/vk/pubpipego/internal/execx"
)

// TestStep invokes the test runner in discovery mode. Exactly one
// environment variable is injected: the configured search-path variable,
// set to the working directory so the runner resolves the package in
// place.
type TestStep struct {
	Runner  execx.Runner
	Config  config.TestConfig
	WorkDir string
}

// Stage implements Step.
func (s *TestStep) Stage() Stage {
	return StageTest
}

// Run implements Step.
func (s *TestStep) Run(ctx context.Context) error {
	return s.Runner.Run(ctx, execx.Command{
		Name: s.Config.Runner,
		Dir:  s.WorkDir,
		Env:  []string{s.Config.PathVar + "=" + s.WorkDir},
	})
}
