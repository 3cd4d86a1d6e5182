package roster

import (
	"context"
	"log/slog"
	"sync"

	"github.com/mcoot/activities-client/internal/model"
)

// Directory is the source of the activity list
type Directory interface {
	Activities(ctx context.Context) ([]model.Activity, error)
}

// SessionSource exposes the current session without letting the roster
// change it
type SessionSource interface {
	Current() model.Session
}

// Service fetches the directory and keeps the most recent rendered view.
// It holds no state between fetches other than that last snapshot.
type Service struct {
	directory Directory
	session   SessionSource
	logger    *slog.Logger

	mu        sync.RWMutex
	snapshot  []model.Activity
	view      View
	listeners []func(View)
}

// New creates a roster service
func New(directory Directory, session SessionSource, logger *slog.Logger) *Service {
	return &Service{
		directory: directory,
		session:   session,
		logger:    logger,
		view:      View{},
	}
}

// FetchAndRender replaces the snapshot with a fresh directory and renders
// it for the session as it is now. Failures render the placeholder; they
// never propagate.
func (s *Service) FetchAndRender(ctx context.Context) View {
	activities, err := s.directory.Activities(ctx)

	var view View
	if err != nil {
		s.logger.Error("error fetching activities", slog.String("error", err.Error()))
		activities = nil
		view = RenderFailure()
	} else {
		view = Render(activities, s.session.Current())
	}

	s.mu.Lock()
	s.snapshot = activities
	s.view = view
	listeners := s.listeners
	s.mu.Unlock()

	for _, fn := range listeners {
		fn(view)
	}
	return view
}

// View returns the last rendered view
func (s *Service) View() View {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.view
}

// Snapshot returns the activities behind the last successful render
func (s *Service) Snapshot() []model.Activity {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Activity, len(s.snapshot))
	copy(out, s.snapshot)
	return out
}

// Subscribe registers fn to run after every render
func (s *Service) Subscribe(fn func(View)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}
