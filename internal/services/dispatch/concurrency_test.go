package dispatch

import (
	"context"
	"net/http"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/activities-client/internal/dependencies/mocks"
	"github.com/mcoot/activities-client/internal/model"
	"github.com/mcoot/activities-client/internal/services/notifier"
	"github.com/mcoot/activities-client/internal/services/roster"
	"github.com/mcoot/activities-client/internal/testutil"
)

// gatedActions blocks unregister until released and counts requests in flight
type gatedActions struct {
	inFlight    atomic.Int32
	maxInFlight atomic.Int32
	started     chan struct{}
	release     chan struct{}
}

func (a *gatedActions) enter() {
	n := a.inFlight.Add(1)
	for {
		peak := a.maxInFlight.Load()
		if n <= peak || a.maxInFlight.CompareAndSwap(peak, n) {
			return
		}
	}
}

func (a *gatedActions) Signup(ctx context.Context, header http.Header, activity, email string) (string, error) {
	a.enter()
	defer a.inFlight.Add(-1)
	return "Signed up " + email + " for " + activity, nil
}

func (a *gatedActions) Unregister(ctx context.Context, header http.Header, activity, email string) (string, error) {
	a.enter()
	defer a.inFlight.Add(-1)
	close(a.started)
	<-a.release
	return "Unregistered " + email + " from " + activity, nil
}

type noSession struct{}

func (noSession) AuthorizationHeader() http.Header { return http.Header{} }

func (noSession) ForceExpire(ctx context.Context) model.Notification { return model.Notification{} }

// orderedRoster records the notification showing at each fetch
type orderedRoster struct {
	mu       sync.Mutex
	notifier *notifier.Service
	fetches  []string
}

func (r *orderedRoster) FetchAndRender(ctx context.Context) roster.View {
	n, _ := r.notifier.Current()
	r.mu.Lock()
	r.fetches = append(r.fetches, n.Text)
	r.mu.Unlock()
	return roster.View{}
}

func TestConcurrentActionsLastToSettleWins(t *testing.T) {
	clk := mocks.NewMockClock(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	notes := notifier.New(clk, notifier.DefaultTTL, testutil.NopLogger())
	actions := &gatedActions{started: make(chan struct{}), release: make(chan struct{})}
	rost := &orderedRoster{notifier: notes}
	service := New(actions, noSession{}, rost, notes, testutil.NopLogger())
	ctx := context.Background()

	unregistered := make(chan model.Outcome, 1)
	go func() {
		unregistered <- service.Unregister(ctx, "Chess Club", "a@x.com")
	}()

	select {
	case <-actions.started:
	case <-time.After(5 * time.Second):
		t.Fatal("unregister never reached the service")
	}

	// Runs to completion while the unregister is still waiting
	signup := service.Signup(ctx, "Chess Club", "b@x.com")
	require.True(t, signup.Succeeded())
	assert.Equal(t, int32(2), actions.maxInFlight.Load())

	current, ok := notes.Current()
	require.True(t, ok)
	assert.Equal(t, "Signed up b@x.com for Chess Club", current.Text)

	close(actions.release)
	var unregister model.Outcome
	select {
	case unregister = <-unregistered:
	case <-time.After(5 * time.Second):
		t.Fatal("unregister did not settle")
	}
	require.True(t, unregister.Succeeded())

	current, ok = notes.Current()
	require.True(t, ok)
	assert.Equal(t, "Unregistered a@x.com from Chess Club", current.Text)
	assert.Equal(t, model.NotificationSuccess, current.Kind)

	rost.mu.Lock()
	defer rost.mu.Unlock()
	assert.Equal(t, []string{
		"Signed up b@x.com for Chess Club",
		"Unregistered a@x.com from Chess Club",
	}, rost.fetches)
}
