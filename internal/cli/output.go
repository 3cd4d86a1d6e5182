package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/mcoot/activities-client/internal/model"
	"github.com/mcoot/activities-client/internal/services/roster"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
	out    io.Writer
	errOut io.Writer
}

// NewOutput creates a new Output formatter
func NewOutput(format string, out, errOut io.Writer) *Output {
	return &Output{format: format, out: out, errOut: errOut}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintError outputs an error
func (o *Output) PrintError(err error) {
	if o.format == "json" {
		errData := map[string]any{
			"error": map[string]string{
				"message": err.Error(),
			},
		}
		data, _ := json.Marshal(errData)
		fmt.Fprintln(o.errOut, string(data))
	} else {
		fmt.Fprintf(o.errOut, "Error: %s\n", err)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Fprintln(o.out, string(data))
	} else {
		fmt.Fprintln(o.out, msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(o.out)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case SessionResult:
		o.printSession(v)
	case RosterResult:
		o.printRoster(v)
	case NotificationResult:
		o.printNotification(v)
	case ActionResult:
		o.printNotification(v.Notification)
		if v.Roster != nil {
			fmt.Fprintln(o.out)
			o.printRoster(*v.Roster)
		}
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// SessionResult describes who is logged in
type SessionResult struct {
	Authenticated bool   `json:"authenticated"`
	Username      string `json:"username,omitempty"`
}

// SessionFromModel converts model.Session
func SessionFromModel(s model.Session) SessionResult {
	return SessionResult{Authenticated: s.Authenticated(), Username: s.DisplayName()}
}

// ParticipantResult is one enrolled email
type ParticipantResult struct {
	Email     string `json:"email"`
	Removable bool   `json:"removable"`
}

// ActivityResult is one rendered activity card
type ActivityResult struct {
	Name            string              `json:"name"`
	Description     string              `json:"description"`
	Schedule        string              `json:"schedule"`
	MaxParticipants int                 `json:"max_participants"`
	SpotsLeft       int                 `json:"spots_left"`
	Availability    string              `json:"availability"`
	Participants    []ParticipantResult `json:"participants"`
}

// RosterResult is the rendered roster, or the placeholder when it could
// not be loaded
type RosterResult struct {
	Activities  []ActivityResult `json:"activities"`
	Placeholder string           `json:"placeholder,omitempty"`
}

// RosterFromView converts roster.View
func RosterFromView(v roster.View) RosterResult {
	result := RosterResult{Activities: make([]ActivityResult, 0, len(v.Cards))}
	if v.Failed {
		result.Placeholder = v.Placeholder
		return result
	}
	for _, card := range v.Cards {
		participants := make([]ParticipantResult, len(card.Participants))
		for i, p := range card.Participants {
			participants[i] = ParticipantResult{Email: p.Email, Removable: p.Removable}
		}
		result.Activities = append(result.Activities, ActivityResult{
			Name:            card.Name,
			Description:     card.Description,
			Schedule:        card.Schedule,
			MaxParticipants: card.MaxParticipants,
			SpotsLeft:       card.SpotsLeft,
			Availability:    card.Availability,
			Participants:    participants,
		})
	}
	return result
}

// NotificationResult is a shown notification
type NotificationResult struct {
	Kind string `json:"kind"`
	Text string `json:"text"`
}

// NotificationFromModel converts model.Notification
func NotificationFromModel(n model.Notification) NotificationResult {
	return NotificationResult{Kind: string(n.Kind), Text: n.Text}
}

// ActionResult is the outcome of a signup or unregister
type ActionResult struct {
	Outcome      string             `json:"outcome"`
	Notification NotificationResult `json:"notification"`
	Roster       *RosterResult      `json:"roster,omitempty"`
}

func (o *Output) printSession(s SessionResult) {
	if s.Authenticated {
		fmt.Fprintf(o.out, "👋 %s\n", s.Username)
	} else {
		fmt.Fprintln(o.out, "Not logged in")
	}
}

func (o *Output) printRoster(r RosterResult) {
	if r.Placeholder != "" {
		fmt.Fprintln(o.out, r.Placeholder)
		return
	}
	for i, a := range r.Activities {
		if i > 0 {
			fmt.Fprintln(o.out)
		}
		fmt.Fprintf(o.out, "%s\n", a.Name)
		if a.Description != "" {
			fmt.Fprintf(o.out, "  %s\n", a.Description)
		}
		if a.Schedule != "" {
			fmt.Fprintf(o.out, "  Schedule: %s\n", a.Schedule)
		}
		fmt.Fprintf(o.out, "  Availability: %s\n", a.Availability)
		fmt.Fprintln(o.out, "  Participants:")
		if len(a.Participants) == 0 {
			fmt.Fprintf(o.out, "    %s\n", roster.NoParticipants)
			continue
		}
		for _, p := range a.Participants {
			marker := ""
			if p.Removable {
				marker = " [x]"
			}
			fmt.Fprintf(o.out, "    - %s%s\n", p.Email, marker)
		}
	}
}

func (o *Output) printNotification(n NotificationResult) {
	fmt.Fprintln(o.out, n.Text)
}
