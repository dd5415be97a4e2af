package model

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

type Calendar struct {
	bun.BaseModel `bun:"table:calendars"`

	ID          string `bun:"id,pk,notnull"`
	Name        string `bun:"name,notnull"`
	Description string `bun:"description"`

	CreatedAt    int64 `bun:"created_at,notnull"`
	LastModified int64 `bun:"last_modified,notnull"`

	Events []*Event `bun:"rel:has-many,join:id=calendar_id"`
}

// Upsert the calendar to the database
func (c *Calendar) Upsert(ctx context.Context, db bun.IDB) error {
	switch {
	case c.ID == "":
		return fmt.Errorf("Calendar.Upsert: id is required")
	case c.Name == "":
		return fmt.Errorf("Calendar.Upsert: name is required")
	case c.CreatedAt == 0:
		return fmt.Errorf("Calendar.Upsert: created at is required")
	}
	if _, err := uuid.Parse(c.ID); err != nil {
		return fmt.Errorf("Calendar.Upsert: invalid id: %w", err)
	}

	if _, err := db.NewInsert().
		Model(c).
		On("CONFLICT (id) DO UPDATE").
		Set("name = EXCLUDED.name").
		Set("description = EXCLUDED.description").
		Set("last_modified = EXCLUDED.last_modified").
		Exec(ctx); err != nil {
		return fmt.Errorf("Calendar.Upsert: %w", err)
	}
	return nil
}

func (c *Calendar) toRecord() (*CalendarRecord, error) {
	id, err := uuid.Parse(c.ID)
	if err != nil {
		return nil, fmt.Errorf("invalid calendar id: %w", err)
	}
	record := &CalendarRecord{
		ID:           id,
		Name:         c.Name,
		CreatedAt:    time.Unix(c.CreatedAt, 0).UTC(),
		LastModified: time.Unix(c.LastModified, 0).UTC(),
	}
	if c.Description != "" {
		description := c.Description
		record.Description = &description
	}
	return record, nil
}
