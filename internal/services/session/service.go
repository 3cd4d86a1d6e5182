package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"

	"github.com/mcoot/activities-client/internal/apiclient"
	"github.com/mcoot/activities-client/internal/model"
	"github.com/mcoot/activities-client/internal/storage"
)

// User-facing messages
const (
	MsgSessionExpired  = "Session expired. Please log in again."
	MsgLoginFailed     = "Login failed"
	MsgConnectionError = "Connection error. Please try again."
)

// LoginError is a failed login, carrying the text to show next to the form
type LoginError struct {
	Message string
	Err     error
}

func (e *LoginError) Error() string {
	return e.Message
}

func (e *LoginError) Unwrap() error {
	return e.Err
}

// Authenticator is the part of the service contract the session needs
type Authenticator interface {
	Login(ctx context.Context, username, password string) (*apiclient.LoginResult, error)
	Logout(ctx context.Context, header http.Header) error
}

// Notifier shows transient messages
type Notifier interface {
	Show(text string, kind model.NotificationKind) model.Notification
}

// Service is the single owner of the client's session. Every transition
// goes through Restore, Login, Logout or ForceExpire.
type Service struct {
	store    storage.CredentialStore
	auth     Authenticator
	notifier Notifier
	logger   *slog.Logger

	mu        sync.RWMutex
	session   model.Session
	listeners []func(model.Session)
}

// New creates a session service starting out anonymous
func New(store storage.CredentialStore, auth Authenticator, notifier Notifier, logger *slog.Logger) *Service {
	return &Service{
		store:    store,
		auth:     auth,
		notifier: notifier,
		logger:   logger,
		session:  model.Anonymous(),
	}
}

// Subscribe registers fn to run after every session transition
func (s *Service) Subscribe(fn func(model.Session)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}

// Current returns the session as of now
func (s *Service) Current() model.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.session
}

// AuthorizationHeader returns the bearer header for the current session, or
// an empty header when anonymous
func (s *Service) AuthorizationHeader() http.Header {
	return authorizationHeader(s.Current())
}

func authorizationHeader(sess model.Session) http.Header {
	header := http.Header{}
	if sess.Authenticated() {
		header.Set("Authorization", "Bearer "+sess.Token())
	}
	return header
}

// Restore loads the session persisted by a previous run. It makes no
// network calls. If the store cannot be read the session is anonymous and
// the read error is returned.
func (s *Service) Restore(ctx context.Context) error {
	creds, err := s.store.Load(ctx)
	if err != nil {
		s.logger.Warn("could not read stored credentials", slog.String("error", err.Error()))
		s.transition(model.Anonymous())
		return fmt.Errorf("restore session: %w", err)
	}

	sess := model.NewSession(creds)
	s.logger.Debug("session restored", slog.Bool("authenticated", sess.Authenticated()))
	s.transition(sess)
	return nil
}

// Login authenticates against the service and persists the new session.
// On failure the current session is left as it was and a *LoginError is
// returned.
func (s *Service) Login(ctx context.Context, username, password string) error {
	result, err := s.auth.Login(ctx, username, password)
	if err != nil {
		if statusErr, ok := apiclient.AsStatusError(err); ok {
			s.logger.Info("login rejected", slog.Int("status", statusErr.StatusCode))
			return &LoginError{Message: statusErr.DetailOr(MsgLoginFailed), Err: err}
		}
		s.logger.Warn("login request failed", slog.String("error", err.Error()))
		return &LoginError{Message: MsgConnectionError, Err: err}
	}

	creds := model.Credentials{Token: result.Token, DisplayName: result.Username}
	if !creds.Complete() {
		s.logger.Warn("login response missing token or username")
		return &LoginError{Message: MsgLoginFailed, Err: apiclient.ErrDecode}
	}

	if err := s.store.Save(ctx, creds); err != nil {
		return fmt.Errorf("save credentials: %w", err)
	}

	s.logger.Info("logged in", slog.String("username", creds.DisplayName))
	s.transition(model.NewSession(creds))
	return nil
}

// Logout ends the session. The service is told on a best-effort basis; the
// local session is cleared regardless.
func (s *Service) Logout(ctx context.Context) {
	sess := s.Current()
	if sess.Authenticated() {
		if err := s.auth.Logout(ctx, authorizationHeader(sess)); err != nil {
			s.logger.Debug("server logout failed", slog.String("error", err.Error()))
		}
	}
	s.clear(ctx)
	s.logger.Info("logged out")
}

// ForceExpire drops the session after the service rejected it. It does not
// contact the service and shows the expiry notification, which it returns.
func (s *Service) ForceExpire(ctx context.Context) model.Notification {
	s.clear(ctx)
	s.logger.Info("session expired")
	return s.notifier.Show(MsgSessionExpired, model.NotificationError)
}

func (s *Service) clear(ctx context.Context) {
	if err := s.store.Clear(ctx); err != nil {
		s.logger.Warn("could not clear stored credentials", slog.String("error", err.Error()))
	}
	s.transition(model.Anonymous())
}

// transition swaps the whole session under the lock, then tells listeners
func (s *Service) transition(next model.Session) {
	s.mu.Lock()
	s.session = next
	listeners := s.listeners
	s.mu.Unlock()

	for _, fn := range listeners {
		fn(next)
	}
}

// IsLoginError reports whether err is a rejected or failed login
func IsLoginError(err error) bool {
	var loginErr *LoginError
	return errors.As(err, &loginErr)
}
