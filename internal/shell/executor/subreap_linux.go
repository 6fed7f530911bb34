//go:build linux

package executor

import (
	"log"

	"golang.org/x/sys/unix"
)

// becomeSubreaper marks this process a child subreaper so that
// grandchildren orphaned by a pipeline or parallel branch are
// reparented here instead of to init, matching the original
// prctl(PR_SET_CHILD_SUBREAPER) call. Best-effort: a failure here is
// logged, not fatal, since its absence only affects reparenting of
// descendants nanosh was never going to wait on directly.
func becomeSubreaper() {
	if err := unix.Prctl(unix.PR_SET_CHILD_SUBREAPER, 1, 0, 0, 0); err != nil {
		log.Printf("subreaper: prctl failed: %v", err)
	}
}
