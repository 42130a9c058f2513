package pipeline

import (
	"context"
	"time"
)

// Stage identifies one of the five fixed pipeline stages. Stages run in
// declaration order; there is no branching and no re-entry.
type Stage int

const (
	StageLint Stage = iota
	StageTest
	StageClean
	StageBuild
	StageUpload
)

// String returns the operator-facing stage name.
func (s Stage) String() string {
	switch s {
	case StageLint:
		return "lint"
	case StageTest:
		return "test"
	case StageClean:
		return "clean"
	case StageBuild:
		return "build"
	case StageUpload:
		return "upload"
	default:
		return "unknown"
	}
}

// Status is the terminal state of a stage within one run.
type Status int

const (
	// StatusPassed means the stage completed without error.
	StatusPassed Status = iota
	// StatusFailed means the stage reported an error and aborted the run.
	StatusFailed
	// StatusSkipped means an earlier failure prevented the stage from running.
	StatusSkipped
)

// String returns the operator-facing status name.
func (s Status) String() string {
	switch s {
	case StatusPassed:
		return "passed"
	case StatusFailed:
		return "failed"
	case StatusSkipped:
		return "skipped"
	default:
		return "unknown"
	}
}

// Result records the outcome of a single stage.
type Result struct {
	Stage    Stage
	Status   Status
	Duration time.Duration
	// ExitCode is the failing tool's exit code; 0 unless Status is
	// StatusFailed.
	ExitCode int
	Err      error
}

// Step is a single pipeline stage implementation. Run blocks until the
// stage's work, including any child process, has finished.
type Step interface {
	Stage() Stage
	Run(ctx context.Context) error
}
