package factory

import (
	"time"

	"github.com/hyunw/bboard/internal/dependencies/mocks"
	"github.com/hyunw/bboard/internal/services/auth"
	"github.com/hyunw/bboard/internal/storage/memory"
	"github.com/hyunw/bboard/internal/testutil"
)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mocks for test control
	MockClock *mocks.MockClock
}

// NewTestApp creates an App configured for testing: in-memory storage, a
// fixed mock clock, and a well-known signing secret.
func NewTestApp() *TestApp {
	return NewTestAppWithAuthConfig(auth.DefaultConfig())
}

// NewTestAppWithAuthConfig is NewTestApp with specific auth settings.
// A zero TokenTTL falls back to the default, as in New.
func NewTestAppWithAuthConfig(authCfg auth.Config) *TestApp {
	store := memory.New()
	mockClock := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))

	if authCfg.TokenTTL == 0 {
		authCfg.TokenTTL = auth.DefaultConfig().TokenTTL
	}

	app := newWithDependencies(store, mockClock, []byte("test-secret"), authCfg, testutil.NopLogger())

	return &TestApp{
		App:       app,
		MockClock: mockClock,
	}
}
