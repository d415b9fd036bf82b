package mocks

import (
	"partyhub/internal/dependencies/ident"
)

// MockSequence is a mock implementation of Sequence for testing
type MockSequence struct {
	// Results is a queue of values to return from Next
	Results []uint64
	index   int
}

// Ensure MockSequence implements Sequence
var _ ident.Sequence = (*MockSequence)(nil)

// NewMockSequence creates a MockSequence with the given queued values
func NewMockSequence(values ...uint64) *MockSequence {
	return &MockSequence{Results: values}
}

// Next returns the next queued value; once the queue is exhausted it keeps
// counting up from the last queued value so ids stay unique
func (s *MockSequence) Next() uint64 {
	if s.index < len(s.Results) {
		result := s.Results[s.index]
		s.index++
		return result
	}
	s.index++
	if len(s.Results) == 0 {
		return uint64(s.index)
	}
	return s.Results[len(s.Results)-1] + uint64(s.index-len(s.Results))
}

// Queue adds values to the result queue
func (s *MockSequence) Queue(values ...uint64) {
	s.Results = append(s.Results, values...)
}
