// Package execx runs external tools as synchronous child processes. It is
// the single seam between the pipeline and the outside world: production
// code uses OSRunner, dry-run uses EchoRunner, and tests use RecorderRunner
// to observe invocation order without spawning anything.
package execx
