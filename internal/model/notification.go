package model

import "time"

// NotificationKind selects how a notification is styled
type NotificationKind string

const (
	NotificationSuccess NotificationKind = "success"
	NotificationError   NotificationKind = "error"
)

// Notification is a transient status message. At most one is visible.
type Notification struct {
	Text      string
	Kind      NotificationKind
	ExpiresAt time.Time
}
