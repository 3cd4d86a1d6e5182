package model

// Credentials is the persisted half of a session: the bearer token and the
// name shown for the logged-in staff user
type Credentials struct {
	Token       string
	DisplayName string
}

// Complete reports whether both values are present. A partial pair is never
// treated as a session.
func (c Credentials) Complete() bool {
	return c.Token != "" && c.DisplayName != ""
}

// Session is the client's identity state: anonymous or authenticated
type Session struct {
	token       string
	displayName string
}

// Anonymous returns the empty session
func Anonymous() Session {
	return Session{}
}

// NewSession builds a session from stored credentials. Incomplete
// credentials yield an anonymous session.
func NewSession(c Credentials) Session {
	if !c.Complete() {
		return Session{}
	}
	return Session{token: c.Token, displayName: c.DisplayName}
}

// Authenticated reports whether the session holds a token and display name
func (s Session) Authenticated() bool {
	return s.token != ""
}

// Token returns the bearer token, empty when anonymous
func (s Session) Token() string {
	return s.token
}

// DisplayName returns the logged-in user's name, empty when anonymous
func (s Session) DisplayName() string {
	return s.displayName
}

// Credentials returns the persisted form of the session
func (s Session) Credentials() Credentials {
	return Credentials{Token: s.token, DisplayName: s.displayName}
}
