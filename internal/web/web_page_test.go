package web_test

import (
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/activities-client/internal/services/roster"
	"github.com/mcoot/activities-client/internal/services/session"
)

func TestHealthz(t *testing.T) {
	ts := newWebTestServer(t)

	rr := ts.get("/healthz")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "ok", rr.Body.String())
}

func TestAnonymousPage(t *testing.T) {
	ts := newWebTestServer(t)
	doc := ts.page()

	assertContainsElement(t, doc, "form#login-form[action='/login']")
	assertNotContainsElement(t, doc, "#logout-btn")
	assertNotContainsElement(t, doc, "#signup-form")
	assertNotContainsElement(t, doc, ".delete-btn")
	assertNotContainsElement(t, doc, "#message")

	cards := doc.Find(".activity-card")
	require.Equal(t, 2, cards.Length())
	assert.Equal(t, "Chess Club", cards.Eq(0).Find("h4").Text())
	assertContainsText(t, doc, ".activity-card:first-child .availability", "1 spots left")
	assert.Equal(t, "a@x.com", cards.Eq(0).Find(".participant-email").Text())
}

func TestOverCapacityAndEscaping(t *testing.T) {
	ts := newWebTestServer(t)
	doc := ts.page()

	card := doc.Find(".activity-card").Eq(1)
	assert.Equal(t, "Drama <Club>", card.Find("h4").Text())
	assert.True(t, card.Find(".availability").HasClass("over-capacity"))
	assert.Contains(t, card.Find(".availability").Text(), "over capacity by 1")
}

func TestLoginShowsGreetingAndControls(t *testing.T) {
	ts := newWebTestServer(t)
	doc := ts.login()

	assertContainsText(t, doc, "#logged-in-user", "👋 teacher")
	assertContainsElement(t, doc, "#logout-btn")
	assertNotContainsElement(t, doc, "#login-form")
	assert.Equal(t, 3, doc.Find(".delete-btn").Length())

	options := doc.Find("#activity option")
	require.Equal(t, 3, options.Length())
	assert.Equal(t, "", options.Eq(0).AttrOr("value", "missing"))
	assert.Equal(t, "Chess Club", options.Eq(1).AttrOr("value", ""))
	assert.Equal(t, "Drama <Club>", options.Eq(2).AttrOr("value", ""))
}

func TestLoginFailureShowsError(t *testing.T) {
	ts := newWebTestServer(t)
	doc := ts.postAndFollow("/login", url.Values{"username": {"teacher"}, "password": {"nope"}})

	assertContainsText(t, doc, "#login-error", "Invalid username or password")
	assertNotContainsElement(t, doc, "#message")
}

func TestLogout(t *testing.T) {
	ts := newWebTestServer(t)
	ts.login()

	doc := ts.postAndFollow("/logout", nil)

	assertContainsElement(t, doc, "#login-form")
	assertNotContainsElement(t, doc, ".delete-btn")
}

func TestSignup(t *testing.T) {
	ts := newWebTestServer(t)
	ts.login()

	doc := ts.postAndFollow("/signup", url.Values{"activity": {"Chess Club"}, "email": {"b@x.com"}})

	assertContainsText(t, doc, "#message.success", "Signed up b@x.com for Chess Club")
	assertContainsText(t, doc, ".activity-card:first-child .availability", "0 spots left")
	assert.Equal(t, "", doc.Find("#email").AttrOr("value", "missing"))
	assertNotContainsElement(t, doc, "#activity option[selected]")
}

func TestSignupErrorKeepsForm(t *testing.T) {
	ts := newWebTestServer(t)
	ts.login()

	doc := ts.postAndFollow("/signup", url.Values{"activity": {"Chess Club"}, "email": {"a@x.com"}})

	assertContainsText(t, doc, "#message.error", "Student is already signed up")
	assert.Equal(t, "a@x.com", doc.Find("#email").AttrOr("value", ""))
	assert.Equal(t, "Chess Club", doc.Find("#activity option[selected]").AttrOr("value", ""))
}

func TestUnregister(t *testing.T) {
	ts := newWebTestServer(t)
	ts.login()

	doc := ts.postAndFollow("/unregister", url.Values{"activity": {"Chess Club"}, "email": {"a@x.com"}})

	assertContainsText(t, doc, "#message.success", "Unregistered a@x.com from Chess Club")
	assertContainsText(t, doc, ".activity-card:first-child .no-participants", roster.NoParticipants)
}

func TestUnregisterWithRevokedToken(t *testing.T) {
	ts := newWebTestServer(t)
	ts.login()

	// Revoke the token behind the client's back
	sess, err := ts.app.Server.Auth.ValidateToken(ts.app.Sessions.Current().Token())
	require.NoError(t, err)
	ts.app.Server.Auth.Revoke(sess)

	doc := ts.postAndFollow("/unregister", url.Values{"activity": {"Chess Club"}, "email": {"a@x.com"}})

	assertContainsText(t, doc, "#message.error", session.MsgSessionExpired)
	assertContainsElement(t, doc, "#login-form")
	assertNotContainsElement(t, doc, ".delete-btn")
}

func TestServiceDownShowsPlaceholder(t *testing.T) {
	ts := newWebTestServer(t)
	ts.app.HTTPServer.Close()

	doc := ts.page()

	assertContainsText(t, doc, "#activities-list", roster.FailurePlaceholder)
	assertNotContainsElement(t, doc, ".activity-card")
}

func TestWrongMethod(t *testing.T) {
	ts := newWebTestServer(t)

	rr := ts.get("/signup")
	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
}
