//go:build !linux

package executor

// becomeSubreaper is a no-op on platforms without PR_SET_CHILD_SUBREAPER;
// the executor still waits directly on every process it starts, so
// the only effect of skipping this is that a command's own stray
// grandchildren are not reparented here.
func becomeSubreaper() {}
