package ident

import "sync/atomic"

// Sequence produces values that are never repeated for the lifetime of the
// process. It can be mocked for deterministic tests.
type Sequence interface {
	// Next returns a value never returned before by this sequence.
	// It is safe for concurrent use and never blocks.
	Next() uint64
}

// Counter implements Sequence with an atomic monotonic counter
type Counter struct {
	n atomic.Uint64
}

// New creates a Counter whose first value is 1
func New() *Counter {
	return &Counter{}
}

// Next returns the next value in the sequence
func (c *Counter) Next() uint64 {
	return c.n.Add(1)
}
