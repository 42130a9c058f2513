package execx

import (
	"context"
	"sync"
)

// RecorderRunner is a Runner test double. It records every invocation in
// order and lets a test script the outcome of each tool by name.
type RecorderRunner struct {
	mu    sync.Mutex
	calls []Command

	// RunErr maps a tool name to the error its Run invocation returns.
	RunErr map[string]error
	// CaptureOut maps a tool name to the stdout its Capture invocation returns.
	CaptureOut map[string]string
	// CaptureErr maps a tool name to the error its Capture invocation returns.
	CaptureErr map[string]error
	// RunHook, when set, runs after each Run invocation is recorded. It
	// lets a test reproduce a tool's side effects, such as the packaging
	// tool materializing artifacts on disk.
	RunHook func(cmd Command) error
}

// Run implements Runner.
func (r *RecorderRunner) Run(_ context.Context, cmd Command) error {
	r.record(cmd)
	if r.RunErr != nil {
		if err := r.RunErr[cmd.Name]; err != nil {
			return err
		}
	}
	if r.RunHook != nil {
		return r.RunHook(cmd)
	}
	return nil
}

// Capture implements Runner.
func (r *RecorderRunner) Capture(_ context.Context, cmd Command) (string, error) {
	r.record(cmd)
	if r.CaptureErr != nil {
		if err := r.CaptureErr[cmd.Name]; err != nil {
			return "", err
		}
	}
	if r.CaptureOut != nil {
		return r.CaptureOut[cmd.Name], nil
	}
	return "", nil
}

func (r *RecorderRunner) record(cmd Command) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, cmd)
}

// Calls returns a copy of every recorded invocation in execution order.
func (r *RecorderRunner) Calls() []Command {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Command, len(r.calls))
	copy(out, r.calls)
	return out
}

// Invocations counts recorded invocations of the named tool.
func (r *RecorderRunner) Invocations(name string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, c := range r.calls {
		if c.Name == name {
			n++
		}
	}
	return n
}
