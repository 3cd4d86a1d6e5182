package roster

import (
	"fmt"

	"github.com/mcoot/activities-client/internal/model"
)

// FailurePlaceholder replaces the roster when the directory cannot be loaded
const FailurePlaceholder = "Failed to load activities. Please try again later."

// NoParticipants is shown on a card with an empty participant list
const NoParticipants = "No participants yet"

// View is the render-ready roster
type View struct {
	Cards []Card
	// Options feeds the activity selector of the signup form
	Options []string
	// Failed means Placeholder is shown instead of the cards
	Failed      bool
	Placeholder string
}

// Card is one activity as rendered
type Card struct {
	Name            string
	Description     string
	Schedule        string
	MaxParticipants int
	SpotsLeft       int
	OverCapacity    bool
	Availability    string
	Participants    []ParticipantRow
}

// ParticipantRow is one enrolled email. Removable is set only when the
// session was authenticated at render time.
type ParticipantRow struct {
	Activity  string
	Email     string
	Removable bool
}

// Empty reports whether a card has no participants
func (c Card) Empty() bool {
	return len(c.Participants) == 0
}

// Render derives the roster view from a directory snapshot and the session.
// Order is the service's order for both activities and participants.
func Render(snapshot []model.Activity, sess model.Session) View {
	removable := sess.Authenticated()

	view := View{
		Cards:   make([]Card, 0, len(snapshot)),
		Options: make([]string, 0, len(snapshot)),
	}
	for _, activity := range snapshot {
		rows := make([]ParticipantRow, 0, len(activity.Participants))
		for _, email := range activity.Participants {
			rows = append(rows, ParticipantRow{
				Activity:  activity.Name,
				Email:     email,
				Removable: removable,
			})
		}

		view.Cards = append(view.Cards, Card{
			Name:            activity.Name,
			Description:     activity.Description,
			Schedule:        activity.Schedule,
			MaxParticipants: activity.MaxParticipants,
			SpotsLeft:       activity.SpotsLeft(),
			OverCapacity:    activity.OverCapacity(),
			Availability:    availability(activity),
			Participants:    rows,
		})
		view.Options = append(view.Options, activity.Name)
	}
	return view
}

// RenderFailure is the view shown when the directory could not be loaded
func RenderFailure() View {
	return View{
		Failed:      true,
		Placeholder: FailurePlaceholder,
	}
}

func availability(a model.Activity) string {
	if a.OverCapacity() {
		return fmt.Sprintf("over capacity by %d", -a.SpotsLeft())
	}
	return fmt.Sprintf("%d spots left", a.SpotsLeft())
}
