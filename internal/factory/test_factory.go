package factory

import (
	"io"
	"log/slog"
	"time"

	"github.com/calebmcg/deadeye/internal/dependencies/mocks"
	"github.com/calebmcg/deadeye/internal/services/auth"
	"github.com/calebmcg/deadeye/internal/storage/memory"
)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mocks for test control
	MockClock *mocks.MockClock
	MockIDGen *mocks.MockIDGen
}

// NewTestApp creates an App configured for testing with mocked dependencies
func NewTestApp() *TestApp {
	store := memory.New()
	mockClock := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	mockIDGen := mocks.NewMockIDGen()
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))

	authCfg := auth.Config{
		Secret:   []byte("test-secret"),
		TokenTTL: time.Hour,
	}

	app := newWithDependencies(store, mockClock, mockIDGen, authCfg, 0, logger)

	return &TestApp{
		App:       app,
		MockClock: mockClock,
		MockIDGen: mockIDGen,
	}
}
