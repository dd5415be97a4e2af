package model

import (
	"fmt"
	"net/url"
	"time"

	"github.com/google/uuid"
)

// Record types are what the Repository callbacks deliver: parsed, validated
// views of the stored rows. They are also the shape of the JSON dump.

type CalendarRecord struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Description  *string   `json:"description"`
	CreatedAt    time.Time `json:"created_at"`
	LastModified time.Time `json:"last_modified"`
}

// EventRecord is a parsed master event row. RRule holds the validated
// recurrence rule text, empty when the event is a single occurrence.
type EventRecord struct {
	ID           uuid.UUID `json:"id"`
	CalendarID   uuid.UUID `json:"calendar_id"`
	Summary      string    `json:"summary"`
	Description  *string   `json:"description"`
	URL          *string   `json:"url"`
	StartDate    time.Time `json:"dtstart_initial"`
	DurationDays int       `json:"duration_days"`
	RRule        string    `json:"rrule,omitempty"`
	Sequence     int64     `json:"sequence"`
	CreatedAt    time.Time `json:"created_at"`
	LastModified time.Time `json:"last_modified"`
}

type ExceptionRecord struct {
	ID             uuid.UUID  `json:"id"`
	EventID        uuid.UUID  `json:"event_id"`
	OriginalDate   time.Time  `json:"original_date"`
	NewDate        *time.Time `json:"new_date"`
	NewSummary     *string    `json:"new_summary"`
	NewDescription *string    `json:"new_description"`
}

// Event URLs are restricted to credential-free http(s).
func validateEventURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("invalid url scheme %q", u.Scheme)
	}
	if u.User != nil {
		return fmt.Errorf("url must not carry credentials")
	}
	return nil
}
