package ical

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Event is one renderable calendar entry: either a master (possibly
// recurring) event or an override produced by an exception. Overrides carry
// a RecurrenceID pointing at the occurrence they replace and never a
// recurrence rule or date lists of their own.
type Event struct {
	UID          uuid.UUID
	DTStamp      time.Time
	Sequence     int64
	StartDate    time.Time
	DurationDays int
	RRule        string
	ExDates      []time.Time
	RDates       []time.Time
	Summary      string
	Description  string
	URL          string
	RecurrenceID *time.Time
}

// Serialize the event through an already fold-wrapped writer, one logical
// line per call. Property order is fixed.
func (e *Event) toIcal(writer func(string) (int, error)) error {
	if e.DurationDays < 1 {
		return fmt.Errorf("Event.toIcal: duration must be at least one day")
	}

	lines := []string{
		"BEGIN:VEVENT",
		"UID:" + strings.ToUpper(e.UID.String()),
		"DTSTAMP:" + formatTimestamp(e.DTStamp),
		fmt.Sprintf("SEQUENCE:%d", e.Sequence),
		"DTSTART;VALUE=DATE:" + formatDate(e.StartDate),
		"DTEND;VALUE=DATE:" + formatDate(e.StartDate.AddDate(0, 0, e.DurationDays)),
	}
	if e.RecurrenceID != nil {
		lines = append(lines, "RECURRENCE-ID;VALUE=DATE:"+formatDate(*e.RecurrenceID))
	}
	if e.RRule != "" {
		lines = append(lines, "RRULE:"+e.RRule)
	}
	for _, exDate := range e.ExDates {
		lines = append(lines, "EXDATE;VALUE=DATE:"+formatDate(exDate))
	}
	for _, rDate := range e.RDates {
		lines = append(lines, "RDATE;VALUE=DATE:"+formatDate(rDate))
	}
	lines = append(lines,
		"SUMMARY:"+EscapeText(e.Summary),
		"TRANSP:TRANSPARENT",
	)
	if e.URL != "" {
		lines = append(lines, "URL:"+e.URL)
	}
	if e.Description != "" {
		lines = append(lines, "DESCRIPTION:"+EscapeText(e.Description))
	}
	lines = append(lines, "END:VEVENT")

	for _, line := range lines {
		if _, err := writer(line); err != nil {
			return err
		}
	}
	return nil
}
