package cli

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/activities-client/internal/factory"
	"github.com/mcoot/activities-client/internal/model"
	"github.com/mcoot/activities-client/internal/services/auth"
	"github.com/mcoot/activities-client/internal/services/roster"
	"github.com/mcoot/activities-client/internal/testutil"
)

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("ACTIVITIES_SERVER", "http://service:9000")
	t.Setenv("ACTIVITIES_STORE", "sqlite")
	t.Setenv("ACTIVITIES_STORE_PATH", "/tmp/creds.db")
	t.Setenv("ACTIVITIES_REQUEST_TIMEOUT", "2s")
	t.Setenv("ACTIVITIES_OUTPUT", "json")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "http://service:9000", cfg.ServerURL)
	assert.Equal(t, "sqlite", cfg.Store)
	assert.Equal(t, "/tmp/creds.db", cfg.StorePath)
	assert.Equal(t, 2*time.Second, cfg.RequestTimeout)
	assert.Equal(t, 5*time.Second, cfg.NotificationTTL)
	assert.Equal(t, "json", cfg.Output)
}

func TestLoadConfigRejectsBadDuration(t *testing.T) {
	t.Setenv("ACTIVITIES_REQUEST_TIMEOUT", "soon")

	_, err := LoadConfig()
	assert.Error(t, err)
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{name: "text", cfg: Config{Output: "text", LogLevel: "warn"}},
		{name: "json", cfg: Config{Output: "json", LogLevel: "info"}},
		{name: "bad output", cfg: Config{Output: "yaml", LogLevel: "warn"}, wantErr: true},
		{name: "bad level", cfg: Config{Output: "text", LogLevel: "loud"}, wantErr: true},
		{name: "verbose ignores level", cfg: Config{Output: "text", LogLevel: "loud", Verbose: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestConfigLevel(t *testing.T) {
	cfg := Config{LogLevel: "info"}
	level, err := cfg.level()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelInfo, level)

	cfg.Verbose = true
	level, err = cfg.level()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, level)
}

func TestFactoryConfigRedis(t *testing.T) {
	cfg := Config{Store: factory.StoreTypeRedis, RedisURL: "redis://cache:6379/2"}

	fc := cfg.FactoryConfig(testutil.NopLogger())

	require.NotNil(t, fc.RedisConfig)
	assert.Equal(t, "redis://cache:6379/2", fc.RedisConfig.URL)
}

func TestOutputRosterText(t *testing.T) {
	var out bytes.Buffer
	o := NewOutput("text", &out, &out)

	o.Print(RosterResult{Activities: []ActivityResult{
		{
			Name:         "Chess Club",
			Schedule:     "Fridays",
			Availability: "1 spots left",
			Participants: []ParticipantResult{{Email: "a@x.com", Removable: true}},
		},
		{Name: "Art", Availability: "5 spots left"},
	}})

	assert.Equal(t, `Chess Club
  Schedule: Fridays
  Availability: 1 spots left
  Participants:
    - a@x.com [x]

Art
  Availability: 5 spots left
  Participants:
    `+roster.NoParticipants+"\n", out.String())
}

func TestOutputPlaceholderAndSession(t *testing.T) {
	var out bytes.Buffer
	o := NewOutput("text", &out, &out)

	o.Print(RosterResult{Placeholder: roster.FailurePlaceholder})
	o.Print(SessionFromModel(model.Anonymous()))
	o.Print(SessionFromModel(model.NewSession(model.Credentials{Token: "t", DisplayName: "teacher"})))

	assert.Equal(t, roster.FailurePlaceholder+"\nNot logged in\n👋 teacher\n", out.String())
}

func TestOutputErrorJSON(t *testing.T) {
	var out, errOut bytes.Buffer
	o := NewOutput("json", &out, &errOut)

	o.PrintError(&ActionError{Outcome: model.Outcome{
		Kind:         model.OutcomeRejected,
		Notification: model.Notification{Kind: model.NotificationError, Text: "Activity is full"},
	}})

	assert.Empty(t, out.String())
	assert.JSONEq(t, `{"error":{"message":"Activity is full"}}`, errOut.String())
}

// runCLI runs the CLI in-process against a development service
func runCLI(t *testing.T, serverURL, storePath, stdin string, args ...string) (string, string, int) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	fullArgs := append([]string{"--server", serverURL, "--store", factory.StoreTypeFile, "--store-path", storePath}, args...)
	code := Run(context.Background(), fullArgs, strings.NewReader(stdin), &stdout, &stderr)
	return stdout.String(), stderr.String(), code
}

func startService(t *testing.T) *httptest.Server {
	t.Helper()
	app, err := factory.NewServer(factory.ServerConfig{
		AuthConfig: auth.Config{Secret: "cli-secret", TokenTTL: time.Hour},
		Staff:      []auth.Staff{{Username: "teacher", Password: "hunter2"}},
		Activities: []model.Activity{{Name: "Chess Club", Schedule: "Fridays", MaxParticipants: 2}},
		Logger:     testutil.NopLogger(),
	})
	require.NoError(t, err)
	server := httptest.NewServer(app.Handler)
	t.Cleanup(server.Close)
	return server
}

// countingService counts directory fetches made against the service
func countingService(t *testing.T) (*httptest.Server, *atomic.Int32) {
	t.Helper()
	app, err := factory.NewServer(factory.ServerConfig{
		Staff:  []auth.Staff{{Username: "teacher", Password: "hunter2"}},
		Logger: testutil.NopLogger(),
	})
	require.NoError(t, err)

	var fetches atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet && r.URL.Path == "/activities" {
			fetches.Add(1)
		}
		app.Handler.ServeHTTP(w, r)
	}))
	t.Cleanup(server.Close)
	return server, &fetches
}

func TestSessionCommandsDoNotFetchDirectory(t *testing.T) {
	server, fetches := countingService(t)
	storePath := filepath.Join(t.TempDir(), "credentials.json")

	_, _, code := runCLI(t, server.URL, storePath, "", "login", "--user", "teacher", "--pass", "hunter2")
	require.Equal(t, 0, code)
	fetches.Store(0)

	stdout, _, code := runCLI(t, server.URL, storePath, "", "whoami")
	require.Equal(t, 0, code)
	assert.Equal(t, "👋 teacher\n", stdout)

	stdout, _, code = runCLI(t, server.URL, storePath, "", "logout")
	require.Equal(t, 0, code)
	assert.Equal(t, "Logged out\n", stdout)

	assert.Equal(t, int32(0), fetches.Load())
}

func TestShellUsageShowsArgumentOrder(t *testing.T) {
	server := startService(t)
	storePath := filepath.Join(t.TempDir(), "credentials.json")

	_, stderr, code := runCLI(t, server.URL, storePath, "signup a@x.com\nquit\n", "shell")

	require.Equal(t, 0, code)
	assert.Contains(t, stderr, "usage: signup <activity...> <email>")
}

func TestRunListText(t *testing.T) {
	server := startService(t)
	storePath := filepath.Join(t.TempDir(), "credentials.json")

	stdout, _, code := runCLI(t, server.URL, storePath, "", "list")

	assert.Equal(t, 0, code)
	assert.Contains(t, stdout, "Chess Club\n")
	assert.Contains(t, stdout, "Availability: 2 spots left")
	assert.Contains(t, stdout, roster.NoParticipants)
}

func TestRunSignupFailureExitCode(t *testing.T) {
	server := startService(t)
	storePath := filepath.Join(t.TempDir(), "credentials.json")

	_, stderr, code := runCLI(t, server.URL, storePath, "", "signup", "Drama", "a@x.com")

	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "Error: Activity not found")
}

func TestRunInvalidOutput(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := Run(context.Background(), []string{"--output", "yaml", "--store", "memory", "list"}, strings.NewReader(""), &stdout, &stderr)

	assert.Equal(t, 1, code)
	assert.Contains(t, stderr.String(), "invalid output format")
}

func TestShellSession(t *testing.T) {
	server := startService(t)
	storePath := filepath.Join(t.TempDir(), "credentials.json")

	script := strings.Join([]string{
		"whoami",
		"signup Chess Club a@x.com",
		"status",
		"login teacher hunter2",
		"unregister Chess Club a@x.com",
		"bogus",
		"quit",
		"list",
	}, "\n")

	stdout, stderr, code := runCLI(t, server.URL, storePath, script, "shell")

	require.Equal(t, 0, code, "stderr: %s", stderr)
	assert.Contains(t, stdout, "Not logged in")
	assert.Equal(t, 2, strings.Count(stdout, "Signed up a@x.com for Chess Club"))
	assert.Contains(t, stdout, "👋 teacher")
	assert.Contains(t, stdout, "Unregistered a@x.com from Chess Club")
	assert.Contains(t, stderr, `unknown command "bogus"`)
	// Nothing after quit runs
	assert.NotContains(t, stdout, "Availability:")

	// The login outlives the shell
	stdout, _, code = runCLI(t, server.URL, storePath, "", "whoami")
	assert.Equal(t, 0, code)
	assert.Equal(t, "👋 teacher\n", stdout)
}
