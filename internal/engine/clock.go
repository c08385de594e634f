package engine

import "sync/atomic"

// Clock is a monotonic logical clock stamping the events of one match.
//
// Every applied event gets a strictly increasing sequence number, so the
// event log replays in the order it was written. Wall-clock time is never
// used for ordering.
type Clock struct {
	seq atomic.Int64
}

// NewClock creates a new clock starting at 0.
func NewClock() *Clock {
	return &Clock{}
}

// NewClockAt creates a clock resuming after start, the sequence number of
// the last event already applied to a match.
func NewClockAt(start int64) *Clock {
	c := &Clock{}
	c.seq.Store(start)
	return c
}

// Next increments the clock and returns the new sequence number.
func (c *Clock) Next() int64 {
	return c.seq.Add(1)
}

// Current returns the current sequence number without incrementing.
func (c *Clock) Current() int64 {
	return c.seq.Load()
}
