package model

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
	"github.com/xyedo/rrule"
)

// Stored dates are whole-day and floating, so a plain civil date is enough.
const dateLayout = "2006-01-02"

// Event is a master event row: one per distinct recurring (or single)
// activity. Exceptions to its recurrence live in event_exceptions.
type Event struct {
	bun.BaseModel `bun:"table:events"`

	ID         string `bun:"id,pk,notnull"`
	CalendarID string `bun:"calendar_id,notnull"`

	Summary     string `bun:"summary,notnull"`
	Description string `bun:"description"`
	URL         string `bun:"url"`

	StartDate    string `bun:"dtstart,notnull"`
	DurationDays int    `bun:"duration_days,notnull"`
	RRule        string `bun:"rrule"`

	Sequence     int64 `bun:"sequence"`
	CreatedAt    int64 `bun:"created_at,notnull"`
	LastModified int64 `bun:"last_modified,notnull"`

	Calendar   *Calendar         `bun:"rel:belongs-to,join:calendar_id=id"`
	Exceptions []*EventException `bun:"rel:has-many,join:id=event_id"`
}

// Upsert the event to the database
func (e *Event) Upsert(ctx context.Context, db bun.IDB) error {
	switch {
	case e.ID == "":
		return fmt.Errorf("Event.Upsert: id is required")
	case e.CalendarID == "":
		return fmt.Errorf("Event.Upsert: calendar id is required")
	case e.Summary == "":
		return fmt.Errorf("Event.Upsert: summary is required")
	case e.DurationDays < 1:
		return fmt.Errorf("Event.Upsert: duration must be at least one day")
	case e.CreatedAt == 0:
		return fmt.Errorf("Event.Upsert: created at is required")
	}
	if _, err := uuid.Parse(e.ID); err != nil {
		return fmt.Errorf("Event.Upsert: invalid id: %w", err)
	}
	if _, err := time.ParseInLocation(dateLayout, e.StartDate, time.UTC); err != nil {
		return fmt.Errorf("Event.Upsert: invalid start date: %w", err)
	}
	if e.URL != "" {
		if err := validateEventURL(e.URL); err != nil {
			return fmt.Errorf("Event.Upsert: %w", err)
		}
	}
	if e.RRule != "" {
		if _, err := rrule.StrToRRule(e.RRule); err != nil {
			return fmt.Errorf("Event.Upsert: invalid rrule: %w", err)
		}
	}

	// check if calendar exists
	calendarExist, err := db.NewSelect().
		Model((*Calendar)(nil)).
		Where("id = ?", e.CalendarID).
		Exists(ctx)
	if err != nil {
		return fmt.Errorf("Event.Upsert: %w", err)
	}
	if !calendarExist {
		return fmt.Errorf("Event.Upsert: calendar id not found")
	}

	if _, err := db.NewInsert().
		Model(e).
		On("CONFLICT (id) DO UPDATE").
		Set("calendar_id = EXCLUDED.calendar_id").
		Set("summary = EXCLUDED.summary").
		Set("description = EXCLUDED.description").
		Set("url = EXCLUDED.url").
		Set("dtstart = EXCLUDED.dtstart").
		Set("duration_days = EXCLUDED.duration_days").
		Set("rrule = EXCLUDED.rrule").
		Set("sequence = EXCLUDED.sequence").
		Set("last_modified = EXCLUDED.last_modified").
		Exec(ctx); err != nil {
		return fmt.Errorf("Event.Upsert: %w", err)
	}
	return nil
}

func (e *Event) toRecord() (*EventRecord, error) {
	id, err := uuid.Parse(e.ID)
	if err != nil {
		return nil, fmt.Errorf("invalid event id: %w", err)
	}
	calendarID, err := uuid.Parse(e.CalendarID)
	if err != nil {
		return nil, fmt.Errorf("invalid calendar id: %w", err)
	}
	startDate, err := time.ParseInLocation(dateLayout, e.StartDate, time.UTC)
	if err != nil {
		return nil, fmt.Errorf("invalid start date: %w", err)
	}
	if e.DurationDays < 1 {
		return nil, fmt.Errorf("invalid duration: %d", e.DurationDays)
	}

	record := &EventRecord{
		ID:           id,
		CalendarID:   calendarID,
		Summary:      e.Summary,
		StartDate:    startDate,
		DurationDays: e.DurationDays,
		Sequence:     e.Sequence,
		CreatedAt:    time.Unix(e.CreatedAt, 0).UTC(),
		LastModified: time.Unix(e.LastModified, 0).UTC(),
	}
	if e.Description != "" {
		description := e.Description
		record.Description = &description
	}
	if e.URL != "" {
		if err := validateEventURL(e.URL); err != nil {
			return nil, err
		}
		url := e.URL
		record.URL = &url
	}

	// A rule that doesn't parse degrades the event to a single occurrence
	// instead of dropping the whole row.
	if rule := strings.TrimSpace(e.RRule); rule != "" {
		if _, err := rrule.StrToRRule(rule); err != nil {
			slog.Warn("can't parse recurrence rule, treating event as a single occurrence",
				"event", e.ID, "rrule", rule, "error", err)
		} else {
			record.RRule = rule
		}
	}
	return record, nil
}
