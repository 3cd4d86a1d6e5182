package model

import "github.com/google/uuid"

// ActionKind identifies a mutating request against an activity
type ActionKind string

const (
	ActionSignup     ActionKind = "signup"
	ActionUnregister ActionKind = "unregister"
)

// PendingAction describes one in-flight signup or unregister. It lives for
// a single request/response cycle and is never queued or retried.
type PendingAction struct {
	ID       uuid.UUID
	Kind     ActionKind
	Activity string
	Email    string
}

// NewPendingAction creates an action with a fresh correlation ID
func NewPendingAction(kind ActionKind, activity, email string) PendingAction {
	return PendingAction{
		ID:       uuid.New(),
		Kind:     kind,
		Activity: activity,
		Email:    email,
	}
}

// OutcomeKind classifies how an action settled
type OutcomeKind string

const (
	OutcomeSucceeded OutcomeKind = "succeeded" // 2xx, roster refreshed
	OutcomeRejected  OutcomeKind = "rejected"  // non-2xx other than 401
	OutcomeExpired   OutcomeKind = "expired"   // 401, session force-expired
	OutcomeFailed    OutcomeKind = "failed"    // request never completed
)

// Outcome is the settled result of an action together with the single
// notification it produced
type Outcome struct {
	Action       PendingAction
	Kind         OutcomeKind
	Notification Notification
}

// Succeeded reports whether the server confirmed the action
func (o Outcome) Succeeded() bool {
	return o.Kind == OutcomeSucceeded
}
