package pipeline

import (
	"context"
	"time"

	"github.com/vk/pubpipego/internal/ctxlog"
	"github.com/vk/pubpipego/internal/execx"
)

// Policy is the explicit process-wide failure policy. The release pipeline
// always runs strict, but modeling the behavior as a value keeps the abort
// decision visible and testable instead of being an ambient property of
// the runner.
type Policy struct {
	// ContinueOnFailure lets later stages run after a failure. No built-in
	// stage sets it.
	ContinueOnFailure bool
}

// Strict returns the abort-on-first-failure policy.
func Strict() Policy {
	return Policy{}
}

// Executor runs pipeline steps strictly in order on a single goroutine.
// Each step is waited on synchronously before the next begins.
type Executor struct {
	policy Policy
	steps  []Step
}

// NewExecutor creates an Executor over the given steps.
func NewExecutor(policy Policy, steps ...Step) *Executor {
	return &Executor{policy: policy, steps: steps}
}

// Run executes every step in order. Under the strict policy the first
// failing step aborts the run: its error is returned as a *StageError and
// all later steps are recorded as skipped, never invoked. The returned
// results always cover every step.
func (e *Executor) Run(ctx context.Context) ([]Result, error) {
	logger := ctxlog.FromContext(ctx)
	results := make([]Result, 0, len(e.steps))
	var firstErr error

	for _, step := range e.steps {
		if firstErr != nil && !e.policy.ContinueOnFailure {
			results = append(results, Result{Stage: step.Stage(), Status: StatusSkipped})
			continue
		}

		stageLogger := logger.With("stage", step.Stage().String())
		stageLogger.Info("▶️ Starting stage")
		start := time.Now()
		err := step.Run(ctx)
		elapsed := time.Since(start)

		if err != nil {
			stageErr := &StageError{
				Stage:    step.Stage(),
				ExitCode: execx.ExitCode(err),
				Err:      err,
			}
			results = append(results, Result{
				Stage:    step.Stage(),
				Status:   StatusFailed,
				Duration: elapsed,
				ExitCode: stageErr.ExitCode,
				Err:      stageErr,
			})
			stageLogger.Error("Stage execution failed.", "error", err, "duration", elapsed)
			if firstErr == nil {
				firstErr = stageErr
			}
			continue
		}

		results = append(results, Result{
			Stage:    step.Stage(),
			Status:   StatusPassed,
			Duration: elapsed,
		})
		stageLogger.Info("✅ Finished stage", "duration", elapsed)
	}

	return results, firstErr
}
