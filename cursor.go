package telegram

import (
	"go.uber.org/atomic"
)

// cursor is the poll offset: the identifier of the next update the
// engine will request. It is the only mutable state shared between the
// polling loop and callers, under a single-writer discipline. The loop
// is the sole writer through advance; everyone else reads snapshots
// through current. Explicit overwrites (seeding, ResetOffset) go
// through reset and are only legal while no loop is running.
type cursor struct {
	next atomic.Int64
}

// current returns a snapshot of the next offset to request. Safe from
// any goroutine.
func (c *cursor) current() int64 {
	return c.next.Load()
}

// advance moves the offset to maxSeenID+1. Called by the polling loop
// only, strictly after the batch containing maxSeenID has been fully
// dispatched. The offset never moves backwards.
func (c *cursor) advance(maxSeenID int64) {
	if next := maxSeenID + 1; next > c.next.Load() {
		c.next.Store(next)
	}
}

// reset overwrites the offset unconditionally, including backwards for
// replay. Callers must guarantee no loop is running.
func (c *cursor) reset(offset int64) {
	c.next.Store(offset)
}
