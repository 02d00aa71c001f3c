// Package model holds the domain records served by the API.
//
// Records that are listed or drawn through the query core implement
// query.Record and expose a Fields value naming their filterable attributes.
package model

import (
	"time"

	"github.com/deppfellow/go-quizbank/internal/query"
)

// Category groups trivia questions ("Science", "Art", ...).
type Category struct {
	ID   int64  `json:"id" db:"id"`
	Type string `json:"type" db:"type"`
}

// Question is a single trivia question.
type Question struct {
	ID         int64  `json:"id" db:"id"`
	Question   string `json:"question" db:"question"`
	Answer     string `json:"answer" db:"answer"`
	Category   int64  `json:"category" db:"category"`
	Difficulty int    `json:"difficulty" db:"difficulty"`
}

func (q Question) RecordID() int64 { return q.ID }

// QuestionFields filters questions by category id and searches question text.
var QuestionFields = query.Fields[Question]{
	Category: func(q Question) int64 { return q.Category },
	Text:     func(q Question) string { return q.Question },
}

// Event is a volunteering event hosted by an organisation.
type Event struct {
	ID               int64     `json:"id" db:"id"`
	Name             string    `json:"name" db:"name"`
	Type             string    `json:"type" db:"type"`
	Description      string    `json:"description" db:"description"`
	StartDatetime    time.Time `json:"start_datetime" db:"start_datetime"`
	EndDatetime      time.Time `json:"end_datetime" db:"end_datetime"`
	Address          string    `json:"address" db:"address"`
	OrganisationID   int64     `json:"organisation_id" db:"organisation_id"`
	OrganisationName string    `json:"organisation_name" db:"organisation_name"`
}

func (e Event) RecordID() int64 { return e.ID }

// IsPast reports whether the event has ended at now.
func (e Event) IsPast(now time.Time) bool {
	return !e.EndDatetime.After(now)
}

// EventFields filters events by type (as a single tag) and searches the
// name and description.
var EventFields = query.Fields[Event]{
	Tags: func(e Event) []string {
		if e.Type == "" {
			return nil
		}
		return []string{e.Type}
	},
	Text: func(e Event) string { return e.Name + "\n" + e.Description },
}

// SplitEvents partitions events into past and upcoming relative to now,
// preserving order within each group.
func SplitEvents(events []Event, now time.Time) (past, upcoming []Event) {
	past, upcoming = []Event{}, []Event{}
	for _, e := range events {
		if e.IsPast(now) {
			past = append(past, e)
		} else {
			upcoming = append(upcoming, e)
		}
	}
	return past, upcoming
}

// Organisation hosts events.
type Organisation struct {
	ID           int64  `json:"id" db:"id"`
	Name         string `json:"name" db:"name"`
	Description  string `json:"description" db:"description"`
	Website      string `json:"website" db:"website"`
	PhoneContact string `json:"phone_contact" db:"phone_contact"`
	EmailContact string `json:"email_contact" db:"email_contact"`
}

// User is a volunteer who can join events.
type User struct {
	ID           int64  `json:"id" db:"id"`
	Name         string `json:"name" db:"name"`
	EmailContact string `json:"email_contact" db:"email_contact"`
}

// Participant is one row of the event <-> user association.
type Participant struct {
	EventID int64  `json:"event_id" db:"event_id"`
	UserID  int64  `json:"user_id" db:"user_id"`
	Name    string `json:"name" db:"name"`
}
