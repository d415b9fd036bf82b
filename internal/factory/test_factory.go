package factory

import (
	"time"

	"partyhub/internal/dependencies/mocks"
	"partyhub/internal/storage/memory"
	"partyhub/internal/testutil"
)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mocks for test control
	MockClock    *mocks.MockClock
	MockRandom   *mocks.MockRandom
	MockSequence *mocks.MockSequence
}

// NewTestApp creates an App configured for testing with mocked dependencies
func NewTestApp() *TestApp {
	store := memory.New()
	mockClock := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	mockRandom := mocks.NewMockRandom()
	mockSequence := mocks.NewMockSequence()

	app := newWithDependencies(store, mockClock, mockRandom, mockSequence, testutil.NopLogger())

	return &TestApp{
		App:          app,
		MockClock:    mockClock,
		MockRandom:   mockRandom,
		MockSequence: mockSequence,
	}
}
