package dispatch

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/mcoot/activities-client/internal/apiclient"
	"github.com/mcoot/activities-client/internal/model"
	"github.com/mcoot/activities-client/internal/services/roster"
)

// User-facing messages
const (
	MsgGenericError     = "An error occurred"
	MsgSignupFailed     = "Failed to sign up. Please try again."
	MsgUnregisterFailed = "Failed to unregister. Please try again."
	MsgSignupSucceeded  = "Signed up successfully"
	MsgUnregistered     = "Unregistered successfully"
)

// Actions is the mutating half of the service contract
type Actions interface {
	Signup(ctx context.Context, header http.Header, activity, email string) (string, error)
	Unregister(ctx context.Context, header http.Header, activity, email string) (string, error)
}

// Session is what the dispatcher may read from and do to the session
type Session interface {
	AuthorizationHeader() http.Header
	ForceExpire(ctx context.Context) model.Notification
}

// Refresher re-fetches and re-renders the roster
type Refresher interface {
	FetchAndRender(ctx context.Context) roster.View
}

// Notifier shows transient messages
type Notifier interface {
	Show(text string, kind model.NotificationKind) model.Notification
}

// FormResetter clears the signup form after a successful signup
type FormResetter interface {
	ResetSignupForm()
}

// Service runs signup and unregister actions through the session and turns
// every response into exactly one notification. Actions are not serialized:
// two in flight settle independently and the later one wins.
type Service struct {
	actions  Actions
	session  Session
	roster   Refresher
	notifier Notifier
	logger   *slog.Logger
	form     FormResetter
}

// New creates a dispatcher
func New(actions Actions, session Session, roster Refresher, notifier Notifier, logger *slog.Logger) *Service {
	return &Service{
		actions:  actions,
		session:  session,
		roster:   roster,
		notifier: notifier,
		logger:   logger,
	}
}

// SetForm sets the form cleared after a successful signup
func (s *Service) SetForm(form FormResetter) {
	s.form = form
}

// Signup enrolls email in activity
func (s *Service) Signup(ctx context.Context, activity, email string) model.Outcome {
	action := model.NewPendingAction(model.ActionSignup, activity, email)
	message, err := s.actions.Signup(ctx, s.session.AuthorizationHeader(), activity, email)
	return s.settle(ctx, action, message, err)
}

// Unregister removes email from activity
func (s *Service) Unregister(ctx context.Context, activity, email string) model.Outcome {
	action := model.NewPendingAction(model.ActionUnregister, activity, email)
	message, err := s.actions.Unregister(ctx, s.session.AuthorizationHeader(), activity, email)
	return s.settle(ctx, action, message, err)
}

func (s *Service) settle(ctx context.Context, action model.PendingAction, message string, err error) model.Outcome {
	logger := s.logger.With(
		slog.String("action_id", action.ID.String()),
		slog.String("kind", string(action.Kind)),
		slog.String("activity", action.Activity),
	)
	outcome := model.Outcome{Action: action}

	statusErr, isStatus := apiclient.AsStatusError(err)
	switch {
	case isStatus && statusErr.Unauthorized():
		// The expiry notice is the only feedback for this action
		logger.Info("action rejected: session expired")
		outcome.Kind = model.OutcomeExpired
		outcome.Notification = s.session.ForceExpire(ctx)

	case isStatus:
		logger.Info("action rejected", slog.Int("status", statusErr.StatusCode))
		outcome.Kind = model.OutcomeRejected
		outcome.Notification = s.notifier.Show(statusErr.DetailOr(MsgGenericError), model.NotificationError)

	case err != nil:
		logger.Error("action failed", slog.String("error", err.Error()))
		outcome.Kind = model.OutcomeFailed
		outcome.Notification = s.notifier.Show(failureMessage(action.Kind), model.NotificationError)

	default:
		logger.Info("action succeeded")
		outcome.Kind = model.OutcomeSucceeded
		if message == "" {
			message = successFallback(action.Kind)
		}
		outcome.Notification = s.notifier.Show(message, model.NotificationSuccess)
		if action.Kind == model.ActionSignup && s.form != nil {
			s.form.ResetSignupForm()
		}
		s.roster.FetchAndRender(ctx)
	}

	return outcome
}

func failureMessage(kind model.ActionKind) string {
	if kind == model.ActionSignup {
		return MsgSignupFailed
	}
	return MsgUnregisterFailed
}

func successFallback(kind model.ActionKind) string {
	if kind == model.ActionSignup {
		return MsgSignupSucceeded
	}
	return MsgUnregistered
}
