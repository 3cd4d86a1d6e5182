package apiclient

import (
	"fmt"
	"math"

	"github.com/tidwall/gjson"

	"github.com/mcoot/activities-client/internal/model"
)

// decodeDirectory turns the {name: details} object into activities, keeping
// the key order of the document. encoding/json would lose it in a map.
func decodeDirectory(body []byte) ([]model.Activity, error) {
	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("%w: invalid JSON", ErrDecode)
	}
	root := gjson.ParseBytes(body)
	if !root.IsObject() {
		return nil, fmt.Errorf("%w: directory is not an object", ErrDecode)
	}

	activities := []model.Activity{}
	index := make(map[string]int)
	var decodeErr error

	root.ForEach(func(key, value gjson.Result) bool {
		activity, err := decodeActivity(key.String(), value)
		if err != nil {
			decodeErr = err
			return false
		}
		// A repeated key keeps its first position and its last value
		if i, seen := index[activity.Name]; seen {
			activities[i] = activity
			return true
		}
		index[activity.Name] = len(activities)
		activities = append(activities, activity)
		return true
	})
	if decodeErr != nil {
		return nil, decodeErr
	}

	return activities, nil
}

func decodeActivity(name string, value gjson.Result) (model.Activity, error) {
	if !value.IsObject() {
		return model.Activity{}, fmt.Errorf("%w: activity %q is not an object", ErrDecode, name)
	}

	maxField := value.Get("max_participants")
	if maxField.Type != gjson.Number {
		return model.Activity{}, fmt.Errorf("%w: activity %q has no max_participants", ErrDecode, name)
	}
	if maxField.Num < 0 || maxField.Num != math.Trunc(maxField.Num) {
		return model.Activity{}, fmt.Errorf("%w: activity %q has invalid max_participants %v", ErrDecode, name, maxField.Num)
	}

	participantsField := value.Get("participants")
	if !participantsField.IsArray() {
		return model.Activity{}, fmt.Errorf("%w: activity %q has no participants list", ErrDecode, name)
	}
	participants := []string{}
	for _, p := range participantsField.Array() {
		if p.Type != gjson.String {
			return model.Activity{}, fmt.Errorf("%w: activity %q has a non-string participant", ErrDecode, name)
		}
		participants = append(participants, p.String())
	}

	return model.Activity{
		Name:            name,
		Description:     value.Get("description").String(),
		Schedule:        value.Get("schedule").String(),
		MaxParticipants: int(maxField.Int()),
		Participants:    participants,
	}, nil
}
