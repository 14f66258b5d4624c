package factory

import (
	"time"

	"github.com/courtside/rallybot/internal/dependencies/mocks"
	"github.com/courtside/rallybot/internal/notify"
	"github.com/courtside/rallybot/internal/services/auth"
	sessionmemory "github.com/courtside/rallybot/internal/session/memory"
	storememory "github.com/courtside/rallybot/internal/store/memory"
	"github.com/courtside/rallybot/internal/testutil"
)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mocks for test control
	MockClock *mocks.MockClock
	Recorder  *notify.Recorder
}

// NewTestApp creates an App on in-memory backends with a mocked clock
// and a notification recorder
func NewTestApp() *TestApp {
	app := &App{
		Store:    storememory.New(),
		Sessions: sessionmemory.New(),
	}
	mockClock := mocks.NewMockClock(time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC))
	recorder := &notify.Recorder{}

	authCfg := auth.DefaultConfig()
	authCfg.AdminNicknames = []string{"captain"}

	wireServices(app, authCfg, 24*time.Hour, mockClock, recorder, testutil.NopLogger())

	return &TestApp{
		App:       app,
		MockClock: mockClock,
		Recorder:  recorder,
	}
}
