package model

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// ErrCalendarNotFound is returned when an export targets a calendar id that
// does not exist in the store.
var ErrCalendarNotFound = errors.New("calendar not found")

// Repository is the record source: it enumerates stored rows one at a time
// through callbacks. A row that fails to parse is logged and skipped, it
// never aborts the rest of the listing; a callback error does abort.
type Repository struct {
	db *bun.DB
}

func NewRepository(db *bun.DB) *Repository {
	return &Repository{db: db}
}

// GetCalendar fetches a single calendar by id.
func (r *Repository) GetCalendar(ctx context.Context, id uuid.UUID) (*CalendarRecord, error) {
	calendarModel := new(Calendar)
	if err := r.db.NewSelect().
		Model(calendarModel).
		Where("id = ?", id.String()).
		Scan(ctx); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCalendarNotFound
		}
		return nil, fmt.Errorf("Repository.GetCalendar: %w", err)
	}
	record, err := calendarModel.toRecord()
	if err != nil {
		return nil, fmt.Errorf("Repository.GetCalendar: %w", err)
	}
	return record, nil
}

// ForEachCalendar visits every calendar in the store.
func (r *Repository) ForEachCalendar(ctx context.Context, fn func(CalendarRecord) error) error {
	rows, err := r.db.NewSelect().
		Model((*Calendar)(nil)).
		Rows(ctx)
	if err != nil {
		return fmt.Errorf("Repository.ForEachCalendar: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		calendarModel := new(Calendar)
		if err := r.db.ScanRow(ctx, rows, calendarModel); err != nil {
			slog.Error("can't scan calendar row", "error", err)
			continue
		}
		record, err := calendarModel.toRecord()
		if err != nil {
			slog.Error("skipping malformed calendar row", "id", calendarModel.ID, "error", err)
			continue
		}
		if err := fn(*record); err != nil {
			return err
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("Repository.ForEachCalendar: %w", err)
	}
	return nil
}

// ForEachEvent visits master events, all of them or only those belonging to
// calendarID when it is non-nil.
func (r *Repository) ForEachEvent(ctx context.Context, calendarID *uuid.UUID, fn func(EventRecord) error) error {
	query := r.db.NewSelect().Model((*Event)(nil))
	if calendarID != nil {
		query = query.Where("calendar_id = ?", calendarID.String())
	}
	rows, err := query.Rows(ctx)
	if err != nil {
		return fmt.Errorf("Repository.ForEachEvent: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		eventModel := new(Event)
		if err := r.db.ScanRow(ctx, rows, eventModel); err != nil {
			slog.Error("can't scan event row", "error", err)
			continue
		}
		record, err := eventModel.toRecord()
		if err != nil {
			slog.Error("skipping malformed event row", "id", eventModel.ID, "error", err)
			continue
		}
		if err := fn(*record); err != nil {
			return err
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("Repository.ForEachEvent: %w", err)
	}
	return nil
}

// ForEachEventException visits exception rows in ascending original-date
// order, all of them or only those targeting eventID when it is non-nil.
func (r *Repository) ForEachEventException(ctx context.Context, eventID *uuid.UUID, fn func(ExceptionRecord) error) error {
	query := r.db.NewSelect().Model((*EventException)(nil))
	if eventID != nil {
		query = query.Where("event_id = ?", eventID.String())
	}
	rows, err := query.Order("original_date ASC").Rows(ctx)
	if err != nil {
		return fmt.Errorf("Repository.ForEachEventException: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		exceptionModel := new(EventException)
		if err := r.db.ScanRow(ctx, rows, exceptionModel); err != nil {
			slog.Error("can't scan exception row", "error", err)
			continue
		}
		record, err := exceptionModel.toRecord()
		if err != nil {
			slog.Error("skipping malformed exception row", "id", exceptionModel.ID, "error", err)
			continue
		}
		if err := fn(*record); err != nil {
			return err
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("Repository.ForEachEventException: %w", err)
	}
	return nil
}
