package activity

import (
	"time"

	"github.com/kami8ma8810/ichizen-app/internal/template"
)

type Status string

const StatusCompleted Status = "COMPLETED"

type Mood string

const (
	MoodExcellent Mood = "EXCELLENT"
	MoodGood      Mood = "GOOD"
	MoodNeutral   Mood = "NEUTRAL"
	MoodBad       Mood = "BAD"
)

// Activity is one user's good deed for a single calendar day. Date is
// normalized to midnight UTC; the store enforces at most one row per
// (user, date).
type Activity struct {
	ID          string            `json:"id"`
	UserID      string            `json:"userId"`
	TemplateID  string            `json:"templateId,omitempty"`
	CustomTitle string            `json:"customTitle,omitempty"`
	Date        time.Time         `json:"date"`
	Status      Status            `json:"status"`
	Note        string            `json:"note,omitempty"`
	Mood        Mood              `json:"mood,omitempty"`
	CreatedAt   time.Time         `json:"createdAt"`
	UpdatedAt   time.Time         `json:"updatedAt"`
	Template    *template.Summary `json:"template,omitempty"`
}

// Midnight strips the time-of-day component, keeping the calendar day
// in UTC.
func Midnight(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
