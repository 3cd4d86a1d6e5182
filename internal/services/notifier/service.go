package notifier

import (
	"log/slog"
	"sync"
	"time"

	"github.com/mcoot/activities-client/internal/dependencies/clock"
	"github.com/mcoot/activities-client/internal/model"
)

// DefaultTTL is how long a notification stays visible
const DefaultTTL = 5 * time.Second

// Service shows one transient notification at a time. Showing a new one
// replaces the current one and restarts the hide timer.
type Service struct {
	clock  clock.Clock
	ttl    time.Duration
	logger *slog.Logger

	mu        sync.Mutex
	current   *model.Notification
	timer     clock.Timer
	seq       uint64
	listeners []func(*model.Notification)
}

// New creates a notifier. A non-positive ttl uses DefaultTTL.
func New(clk clock.Clock, ttl time.Duration, logger *slog.Logger) *Service {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Service{
		clock:  clk,
		ttl:    ttl,
		logger: logger,
	}
}

// Show makes text visible immediately, superseding any visible notification
func (s *Service) Show(text string, kind model.NotificationKind) model.Notification {
	s.mu.Lock()
	if s.timer != nil {
		s.timer.Stop()
	}
	s.seq++
	seq := s.seq
	n := model.Notification{
		Text:      text,
		Kind:      kind,
		ExpiresAt: s.clock.Now().Add(s.ttl),
	}
	s.current = &n
	s.timer = s.clock.AfterFunc(s.ttl, func() { s.hide(seq) })
	listeners := s.listeners
	s.mu.Unlock()

	s.logger.Debug("notification shown",
		slog.String("kind", string(kind)),
		slog.String("text", text),
	)

	shown := n
	for _, fn := range listeners {
		fn(&shown)
	}
	return n
}

// Current returns the visible notification, if any
func (s *Service) Current() (model.Notification, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return model.Notification{}, false
	}
	return *s.current, true
}

// Subscribe registers fn to run after every show and hide. A hide passes nil.
func (s *Service) Subscribe(fn func(*model.Notification)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}

// hide clears the notification started with seq. A later Show bumps the
// sequence, so a timer that fires late cannot hide its successor.
func (s *Service) hide(seq uint64) {
	s.mu.Lock()
	if seq != s.seq || s.current == nil {
		s.mu.Unlock()
		return
	}
	s.current = nil
	s.timer = nil
	listeners := s.listeners
	s.mu.Unlock()

	for _, fn := range listeners {
		fn(nil)
	}
}
