package api_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/activities-client/internal/api/apierr"
	"github.com/mcoot/activities-client/internal/api/response"
	"github.com/mcoot/activities-client/internal/factory"
	"github.com/mcoot/activities-client/internal/model"
	"github.com/mcoot/activities-client/internal/services/auth"
	"github.com/mcoot/activities-client/internal/testutil"
)

type testServer struct {
	handler http.Handler
	app     *factory.ServerApp
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	app, err := factory.NewServer(factory.ServerConfig{
		Logger: testutil.NopLogger(),
		Staff:  []auth.Staff{{Username: "teacher", Password: "hunter2"}},
		Activities: []model.Activity{
			{Name: "Chess Club", Description: "Chess", Schedule: "Fridays", MaxParticipants: 2, Participants: []string{"a@x.com"}},
			{Name: "Art/Design", MaxParticipants: 1},
			{Name: "Basketball", MaxParticipants: 10},
		},
	})
	require.NoError(t, err)

	return &testServer{handler: app.Handler, app: app}
}

func (ts *testServer) request(method, path string, body any, token string) *httptest.ResponseRecorder {
	reqBody := bytes.NewBuffer(nil)
	if body != nil {
		b, _ := json.Marshal(body)
		reqBody = bytes.NewBuffer(b)
	}

	req := httptest.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rr := httptest.NewRecorder()
	ts.handler.ServeHTTP(rr, req)
	return rr
}

func (ts *testServer) login(t *testing.T) string {
	t.Helper()
	rr := ts.request(http.MethodPost, "/auth/login", map[string]string{"username": "teacher", "password": "hunter2"}, "")
	require.Equal(t, http.StatusOK, rr.Code)

	var resp response.LoginResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	return resp.Token
}

func detail(t *testing.T, rr *httptest.ResponseRecorder) string {
	t.Helper()
	var resp apierr.ErrorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	return resp.Detail
}

func message(t *testing.T, rr *httptest.ResponseRecorder) string {
	t.Helper()
	var resp response.MessageResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	return resp.Message
}

func TestHealthCheck(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/health", nil, "")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "ok")
}

func TestListKeepsCatalogOrder(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/activities", nil, "")
	require.Equal(t, http.StatusOK, rr.Code)

	body := rr.Body.String()
	chess := bytes.Index([]byte(body), []byte(`"Chess Club"`))
	art := bytes.Index([]byte(body), []byte(`"Art/Design"`))
	basket := bytes.Index([]byte(body), []byte(`"Basketball"`))
	assert.True(t, chess < art && art < basket, body)

	var decoded map[string]response.Activity
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &decoded))
	assert.Equal(t, 2, decoded["Chess Club"].MaxParticipants)
	assert.Equal(t, []string{"a@x.com"}, decoded["Chess Club"].Participants)
	assert.Equal(t, []string{}, decoded["Basketball"].Participants)
}

func TestLogin(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodPost, "/auth/login", map[string]string{"username": "teacher", "password": "hunter2"}, "")
	require.Equal(t, http.StatusOK, rr.Code)

	var resp response.LoginResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "teacher", resp.Username)
}

func TestLoginRejected(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodPost, "/auth/login", map[string]string{"username": "teacher", "password": "nope"}, "")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Equal(t, "Invalid username or password", detail(t, rr))
}

func TestLoginMalformedBody(t *testing.T) {
	ts := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewBufferString("{"))
	rr := httptest.NewRecorder()
	ts.handler.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestAnonymousSignup(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodPost, "/activities/Chess%20Club/signup?email=b%40x.com", nil, "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "Signed up b@x.com for Chess Club", message(t, rr))

	list := ts.app.Catalog.List(t.Context())
	assert.Equal(t, []string{"a@x.com", "b@x.com"}, list[0].Participants)
}

func TestSignupNameWithSlash(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodPost, "/activities/Art%2FDesign/signup?email=b%40x.com", nil, "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "Signed up b@x.com for Art/Design", message(t, rr))
}

func TestSignupErrors(t *testing.T) {
	ts := newTestServer(t)

	tests := []struct {
		name   string
		path   string
		status int
		detail string
	}{
		{"unknown activity", "/activities/Nope/signup?email=b%40x.com", http.StatusNotFound, "Activity not found"},
		{"already signed up", "/activities/Chess%20Club/signup?email=a%40x.com", http.StatusBadRequest, "Student is already signed up"},
		{"missing email", "/activities/Chess%20Club/signup", http.StatusBadRequest, "Email is required"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := ts.request(http.MethodPost, tt.path, nil, "")
			assert.Equal(t, tt.status, rr.Code)
			assert.Equal(t, tt.detail, detail(t, rr))
		})
	}
}

func TestSignupFull(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodPost, "/activities/Chess%20Club/signup?email=b%40x.com", nil, "")
	require.Equal(t, http.StatusOK, rr.Code)

	rr = ts.request(http.MethodPost, "/activities/Chess%20Club/signup?email=c%40x.com", nil, "")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "Activity is full", detail(t, rr))
}

func TestSignupWithInvalidTokenIsUnauthorized(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodPost, "/activities/Chess%20Club/signup?email=b%40x.com", nil, "bogus")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Equal(t, "Invalid or expired token", detail(t, rr))
}

func TestUnregisterRequiresAuth(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodDelete, "/activities/Chess%20Club/unregister?email=a%40x.com", nil, "")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Equal(t, "Not authenticated", detail(t, rr))

	rr = ts.request(http.MethodDelete, "/activities/Chess%20Club/unregister?email=a%40x.com", nil, "bogus")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Equal(t, "Invalid or expired token", detail(t, rr))
}

func TestUnregister(t *testing.T) {
	ts := newTestServer(t)
	token := ts.login(t)

	rr := ts.request(http.MethodDelete, "/activities/Chess%20Club/unregister?email=a%40x.com", nil, token)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "Unregistered a@x.com from Chess Club", message(t, rr))

	rr = ts.request(http.MethodDelete, "/activities/Chess%20Club/unregister?email=a%40x.com", nil, token)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "Student is not signed up for this activity", detail(t, rr))

	rr = ts.request(http.MethodDelete, "/activities/Nope/unregister?email=a%40x.com", nil, token)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestLogoutRevokesToken(t *testing.T) {
	ts := newTestServer(t)
	token := ts.login(t)

	rr := ts.request(http.MethodPost, "/auth/logout", nil, token)
	require.Equal(t, http.StatusOK, rr.Code)

	rr = ts.request(http.MethodDelete, "/activities/Chess%20Club/unregister?email=a%40x.com", nil, token)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestLogoutWithoutToken(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodPost, "/auth/logout", nil, "")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestWrongMethod(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/activities/Chess%20Club/signup?email=b%40x.com", nil, "")
	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
}
