package page

import (
	"context"
	"log/slog"
	"sync"

	"github.com/mcoot/activities-client/internal/model"
	"github.com/mcoot/activities-client/internal/services/dispatch"
	"github.com/mcoot/activities-client/internal/services/notifier"
	"github.com/mcoot/activities-client/internal/services/roster"
	"github.com/mcoot/activities-client/internal/services/session"
)

// Form is the signup form as last submitted
type Form struct {
	Activity string
	Email    string
}

// State is everything a front end needs to draw the page
type State struct {
	Session      model.Session
	Roster       roster.View
	Notification *model.Notification
	// LoginError is shown beside the login form, apart from notifications
	LoginError string
	Form       Form
}

// Controller binds user intents to the session, roster and dispatcher.
// Each intent produces one outcome; State is recomputed from the owners on
// every call.
type Controller struct {
	sessions   *session.Service
	roster     *roster.Service
	dispatcher *dispatch.Service
	notifier   *notifier.Service
	logger     *slog.Logger

	mu         sync.Mutex
	loaded     bool
	loginError string
	form       Form
}

// NewController creates a page controller. Once the page is loaded, every
// session transition re-fetches the roster so removal controls follow the
// session.
func NewController(
	sessions *session.Service,
	roster *roster.Service,
	dispatcher *dispatch.Service,
	notifier *notifier.Service,
	logger *slog.Logger,
) *Controller {
	c := &Controller{
		sessions:   sessions,
		roster:     roster,
		dispatcher: dispatcher,
		notifier:   notifier,
		logger:     logger,
	}
	dispatcher.SetForm(c)
	sessions.Subscribe(c.onSessionChange)
	return c
}

// Load restores the persisted session. The roster is fetched by the
// resulting session transition.
func (c *Controller) Load(ctx context.Context) State {
	c.markLoaded()
	if err := c.sessions.Restore(ctx); err != nil {
		c.logger.Warn("starting anonymous", slog.String("error", err.Error()))
	}
	return c.State()
}

// SubmitLogin logs in. A failure sets the login error text; success clears it.
func (c *Controller) SubmitLogin(ctx context.Context, username, password string) error {
	err := c.sessions.Login(ctx, username, password)

	c.mu.Lock()
	defer c.mu.Unlock()
	switch {
	case err == nil:
		c.loginError = ""
	case session.IsLoginError(err):
		c.loginError = err.Error()
	default:
		c.loginError = session.MsgLoginFailed
	}
	return err
}

// ClickLogout logs out
func (c *Controller) ClickLogout(ctx context.Context) {
	c.sessions.Logout(ctx)

	c.mu.Lock()
	c.loginError = ""
	c.mu.Unlock()
}

// SubmitSignup records the form and signs email up for activity
func (c *Controller) SubmitSignup(ctx context.Context, activity, email string) model.Outcome {
	c.mu.Lock()
	c.form = Form{Activity: activity, Email: email}
	c.mu.Unlock()

	return c.dispatcher.Signup(ctx, activity, email)
}

// ClickUnregister removes email from activity. It is sent regardless of
// the session; the service decides.
func (c *Controller) ClickUnregister(ctx context.Context, activity, email string) model.Outcome {
	return c.dispatcher.Unregister(ctx, activity, email)
}

// ResetSignupForm clears the signup form
func (c *Controller) ResetSignupForm() {
	c.mu.Lock()
	c.form = Form{}
	c.mu.Unlock()
}

// Refresh re-fetches the roster without changing the session
func (c *Controller) Refresh(ctx context.Context) State {
	c.markLoaded()
	c.roster.FetchAndRender(ctx)
	return c.State()
}

// State returns the page as it stands
func (c *Controller) State() State {
	c.mu.Lock()
	loginError := c.loginError
	form := c.form
	c.mu.Unlock()

	state := State{
		Session:    c.sessions.Current(),
		Roster:     c.roster.View(),
		LoginError: loginError,
		Form:       form,
	}
	if n, ok := c.notifier.Current(); ok {
		state.Notification = &n
	}
	return state
}

func (c *Controller) markLoaded() {
	c.mu.Lock()
	c.loaded = true
	c.mu.Unlock()
}

// onSessionChange re-renders a loaded page. Before Load there is nothing
// on screen to update.
func (c *Controller) onSessionChange(sess model.Session) {
	c.mu.Lock()
	loaded := c.loaded
	c.mu.Unlock()

	c.logger.Debug("session changed",
		slog.Bool("authenticated", sess.Authenticated()),
		slog.Bool("page_loaded", loaded),
	)
	if loaded {
		c.roster.FetchAndRender(context.Background())
	}
}
