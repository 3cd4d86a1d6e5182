package factory

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/mcoot/activities-client/internal/apiclient"
	"github.com/mcoot/activities-client/internal/dependencies/mocks"
	"github.com/mcoot/activities-client/internal/model"
	"github.com/mcoot/activities-client/internal/services/auth"
	"github.com/mcoot/activities-client/internal/services/notifier"
	"github.com/mcoot/activities-client/internal/storage/memory"
	"github.com/mcoot/activities-client/internal/testutil"
)

// Test staff account registered on every test server
const (
	TestStaffUser     = "teacher"
	TestStaffPassword = "hunter2"
)

// TestApp extends App with a running development service and test controls
type TestApp struct {
	*App

	Server     *ServerApp
	HTTPServer *httptest.Server

	// Mocks for test control
	MockClock   *mocks.MockClock
	MemoryStore *memory.Storage
}

// NewTestApp starts a development service seeded with activities and wires a
// client to it. The client and service share a mock clock, so advancing it
// both hides notifications and expires tokens.
func NewTestApp(t testing.TB, activities []model.Activity) *TestApp {
	t.Helper()

	mockClock := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	logger := testutil.NopLogger()

	server, err := NewServer(ServerConfig{
		AuthConfig: auth.Config{Secret: "test-secret", TokenTTL: time.Hour},
		Staff:      []auth.Staff{{Username: TestStaffUser, Password: TestStaffPassword}},
		Activities: activities,
		Clock:      mockClock,
		Logger:     logger,
	})
	if err != nil {
		t.Fatalf("create test server: %v", err)
	}
	httpServer := httptest.NewServer(server.Handler)
	t.Cleanup(httpServer.Close)

	return NewTestClient(t, server, httpServer, mockClock, memory.New())
}

// NewTestClient wires another client against an existing test service,
// sharing its clock. Use it with the same store to simulate a reload.
func NewTestClient(t testing.TB, server *ServerApp, httpServer *httptest.Server, mockClock *mocks.MockClock, store *memory.Storage) *TestApp {
	t.Helper()

	client := apiclient.New(httpServer.URL,
		apiclient.WithHTTPClient(httpServer.Client()),
		apiclient.WithLogger(testutil.NopLogger()),
	)
	app := newWithDependencies(store, client, mockClock, notifier.DefaultTTL, testutil.NopLogger())

	return &TestApp{
		App:         app,
		Server:      server,
		HTTPServer:  httpServer,
		MockClock:   mockClock,
		MemoryStore: store,
	}
}

// Reload builds a fresh client over the same store and service, as a new
// process or page load would
func (t *TestApp) Reload(tb testing.TB) *TestApp {
	return NewTestClient(tb, t.Server, t.HTTPServer, t.MockClock, t.MemoryStore)
}
