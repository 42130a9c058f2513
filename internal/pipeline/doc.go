// Package pipeline is the release pipeline core: five fixed stages
// (lint, test, clean, build, upload) executed strictly in order by a
// sequential executor under an explicit abort-on-first-failure policy.
// Stages have no retry, no rollback, and no resumption; a failed run is
// re-run from the start after the cause is fixed.
package pipeline
