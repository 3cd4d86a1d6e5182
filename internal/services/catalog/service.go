package catalog

import (
	"context"
	"log/slog"
	"slices"
	"strings"
	"sync"

	"github.com/mcoot/activities-client/internal/model"
)

// DefaultActivities is the directory the development server starts with
func DefaultActivities() []model.Activity {
	return []model.Activity{
		{
			Name:            "Chess Club",
			Description:     "Learn strategies and compete in chess tournaments",
			Schedule:        "Fridays, 3:30 PM - 5:00 PM",
			MaxParticipants: 12,
			Participants:    []string{"michael@mergington.edu", "daniel@mergington.edu"},
		},
		{
			Name:            "Programming Class",
			Description:     "Learn programming fundamentals and build software projects",
			Schedule:        "Tuesdays and Thursdays, 3:30 PM - 4:30 PM",
			MaxParticipants: 20,
			Participants:    []string{"emma@mergington.edu", "sophia@mergington.edu"},
		},
		{
			Name:            "Gym Class",
			Description:     "Physical education and sports activities",
			Schedule:        "Mondays, Wednesdays, Fridays, 2:00 PM - 3:00 PM",
			MaxParticipants: 30,
			Participants:    []string{"john@mergington.edu", "olivia@mergington.edu"},
		},
	}
}

// Service holds the activity directory in insertion order
type Service struct {
	logger *slog.Logger

	mu         sync.RWMutex
	activities []model.Activity
}

// New creates a catalog seeded with activities
func New(seed []model.Activity, logger *slog.Logger) *Service {
	activities := make([]model.Activity, len(seed))
	for i, a := range seed {
		a.Participants = slices.Clone(a.Participants)
		activities[i] = a
	}
	return &Service{
		logger:     logger,
		activities: activities,
	}
}

// List returns a copy of every activity in directory order
func (s *Service) List(ctx context.Context) []model.Activity {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.Activity, len(s.activities))
	for i, a := range s.activities {
		a.Participants = slices.Clone(a.Participants)
		out[i] = a
	}
	return out
}

// Signup adds email to the named activity
func (s *Service) Signup(ctx context.Context, name, email string) error {
	email = strings.TrimSpace(email)

	s.mu.Lock()
	defer s.mu.Unlock()

	activity := s.find(name)
	if activity == nil {
		return model.ErrActivityNotFound
	}
	if email == "" {
		return model.ErrEmailRequired
	}
	if activity.HasParticipant(email) {
		return model.ErrAlreadySignedUp
	}
	if activity.SpotsLeft() <= 0 {
		return model.ErrActivityFull
	}

	activity.Participants = append(activity.Participants, email)
	s.logger.Info("participant signed up", slog.String("activity", name), slog.String("email", email))
	return nil
}

// Unregister removes email from the named activity
func (s *Service) Unregister(ctx context.Context, name, email string) error {
	email = strings.TrimSpace(email)

	s.mu.Lock()
	defer s.mu.Unlock()

	activity := s.find(name)
	if activity == nil {
		return model.ErrActivityNotFound
	}
	idx := slices.Index(activity.Participants, email)
	if idx < 0 {
		return model.ErrNotSignedUp
	}

	activity.Participants = slices.Delete(activity.Participants, idx, idx+1)
	s.logger.Info("participant unregistered", slog.String("activity", name), slog.String("email", email))
	return nil
}

// find must be called with the lock held
func (s *Service) find(name string) *model.Activity {
	for i := range s.activities {
		if s.activities[i].Name == name {
			return &s.activities[i]
		}
	}
	return nil
}
