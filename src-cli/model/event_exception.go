package model

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// EventException overrides or suppresses one occurrence of a recurring
// master event. The original date identifies which occurrence; the new_*
// columns, when set, replace the master's values for that occurrence.
type EventException struct {
	bun.BaseModel `bun:"table:event_exceptions"`

	ID      string `bun:"id,pk,notnull"`
	EventID string `bun:"event_id,notnull"`

	OriginalDate   string `bun:"original_date,notnull"`
	NewDate        string `bun:"new_date"`
	NewSummary     string `bun:"new_summary"`
	NewDescription string `bun:"new_description"`

	Event *Event `bun:"rel:belongs-to,join:event_id=id"`
}

// Upsert the exception to the database
func (e *EventException) Upsert(ctx context.Context, db bun.IDB) error {
	switch {
	case e.ID == "":
		return fmt.Errorf("EventException.Upsert: id is required")
	case e.EventID == "":
		return fmt.Errorf("EventException.Upsert: event id is required")
	}
	if _, err := uuid.Parse(e.ID); err != nil {
		return fmt.Errorf("EventException.Upsert: invalid id: %w", err)
	}
	if _, err := time.ParseInLocation(dateLayout, e.OriginalDate, time.UTC); err != nil {
		return fmt.Errorf("EventException.Upsert: invalid original date: %w", err)
	}
	if e.NewDate != "" {
		if _, err := time.ParseInLocation(dateLayout, e.NewDate, time.UTC); err != nil {
			return fmt.Errorf("EventException.Upsert: invalid new date: %w", err)
		}
	}

	// check if master event exists
	eventExist, err := db.NewSelect().
		Model((*Event)(nil)).
		Where("id = ?", e.EventID).
		Exists(ctx)
	if err != nil {
		return fmt.Errorf("EventException.Upsert: %w", err)
	}
	if !eventExist {
		return fmt.Errorf("EventException.Upsert: event id not found")
	}

	if _, err := db.NewInsert().
		Model(e).
		On("CONFLICT (id) DO UPDATE").
		Set("event_id = EXCLUDED.event_id").
		Set("original_date = EXCLUDED.original_date").
		Set("new_date = EXCLUDED.new_date").
		Set("new_summary = EXCLUDED.new_summary").
		Set("new_description = EXCLUDED.new_description").
		Exec(ctx); err != nil {
		return fmt.Errorf("EventException.Upsert: %w", err)
	}
	return nil
}

func (e *EventException) toRecord() (*ExceptionRecord, error) {
	id, err := uuid.Parse(e.ID)
	if err != nil {
		return nil, fmt.Errorf("invalid exception id: %w", err)
	}
	eventID, err := uuid.Parse(e.EventID)
	if err != nil {
		return nil, fmt.Errorf("invalid event id: %w", err)
	}
	originalDate, err := time.ParseInLocation(dateLayout, e.OriginalDate, time.UTC)
	if err != nil {
		return nil, fmt.Errorf("invalid original date: %w", err)
	}

	record := &ExceptionRecord{
		ID:           id,
		EventID:      eventID,
		OriginalDate: originalDate,
	}
	if e.NewDate != "" {
		newDate, err := time.ParseInLocation(dateLayout, e.NewDate, time.UTC)
		if err != nil {
			return nil, fmt.Errorf("invalid new date: %w", err)
		}
		record.NewDate = &newDate
	}
	if e.NewSummary != "" {
		newSummary := e.NewSummary
		record.NewSummary = &newSummary
	}
	if e.NewDescription != "" {
		newDescription := e.NewDescription
		record.NewDescription = &newDescription
	}
	return record, nil
}
