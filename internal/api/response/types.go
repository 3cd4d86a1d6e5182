package response

import (
	"bytes"
	"encoding/json"

	"github.com/mcoot/activities-client/internal/model"
)

// LoginResponse is the response for a successful login
type LoginResponse struct {
	Token    string `json:"token"`
	Username string `json:"username"`
}

// MessageResponse is the response for successful actions
type MessageResponse struct {
	Message string `json:"message"`
}

// Activity is one value of the directory object
type Activity struct {
	Description     string   `json:"description"`
	Schedule        string   `json:"schedule"`
	MaxParticipants int      `json:"max_participants"`
	Participants    []string `json:"participants"`
}

// ActivityFromModel converts model.Activity
func ActivityFromModel(a model.Activity) Activity {
	participants := a.Participants
	if participants == nil {
		participants = []string{}
	}
	return Activity{
		Description:     a.Description,
		Schedule:        a.Schedule,
		MaxParticipants: a.MaxParticipants,
		Participants:    participants,
	}
}

// Directory is the activity directory keyed by name. It encodes as a JSON
// object whose keys keep the catalog's order.
type Directory []model.Activity

// MarshalJSON writes the activities as an ordered object
func (d Directory) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, a := range d {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(a.Name)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(ActivityFromModel(a))
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
