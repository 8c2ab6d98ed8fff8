// Package round implements the touch-targets game rules: target layout,
// touch resolution, celebration effects and the per-frame round state
// machine. It has no rendering or input dependencies; callers feed one
// fingertip Sample per frame and read back a Snapshot.
package round
