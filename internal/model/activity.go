package model

// Activity is one entry of the activity directory as returned by the service
type Activity struct {
	Name            string // unique key
	Description     string
	Schedule        string
	MaxParticipants int
	Participants    []string // emails, in service order
}

// SpotsLeft is the remaining capacity. It goes negative when the service
// reports more participants than the maximum.
func (a Activity) SpotsLeft() int {
	return a.MaxParticipants - len(a.Participants)
}

// OverCapacity reports whether the activity has more participants than spots
func (a Activity) OverCapacity() bool {
	return a.SpotsLeft() < 0
}

// HasParticipant reports whether email is enrolled
func (a Activity) HasParticipant(email string) bool {
	for _, p := range a.Participants {
		if p == email {
			return true
		}
	}
	return false
}
