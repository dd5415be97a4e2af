package model

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/uptrace/bun"
)

// Ordered schema migrations. The sqlite user_version pragma records how many
// have been applied; append new entries, never reorder or edit old ones.
var migrations = [][]string{
	{
		`CREATE TABLE calendars (
			id TEXT PRIMARY KEY NOT NULL,
			name TEXT NOT NULL,
			description TEXT,
			created_at INTEGER NOT NULL,
			last_modified INTEGER NOT NULL
		)`,
		`CREATE TABLE events (
			id TEXT PRIMARY KEY NOT NULL,
			calendar_id TEXT NOT NULL REFERENCES calendars (id),
			summary TEXT NOT NULL,
			description TEXT,
			url TEXT,
			dtstart TEXT NOT NULL,
			duration_days INTEGER NOT NULL DEFAULT 1,
			rrule TEXT,
			sequence INTEGER NOT NULL DEFAULT 0,
			created_at INTEGER NOT NULL,
			last_modified INTEGER NOT NULL
		)`,
		`CREATE TABLE event_exceptions (
			id TEXT PRIMARY KEY NOT NULL,
			event_id TEXT NOT NULL REFERENCES events (id),
			original_date TEXT NOT NULL,
			new_date TEXT,
			new_summary TEXT,
			new_description TEXT
		)`,
		`CREATE INDEX idx_events_calendar_id ON events (calendar_id)`,
		`CREATE INDEX idx_event_exceptions_event_id ON event_exceptions (event_id)`,
	},
}

func schemaVersion(ctx context.Context, db bun.IDB) (int, error) {
	var version int
	if err := db.NewRaw("SELECT user_version FROM pragma_user_version").
		Scan(ctx, &version); err != nil {
		return 0, fmt.Errorf("schemaVersion: %w", err)
	}
	return version, nil
}

// HasLatestMigrations reports whether the store schema is at the latest
// known version.
func (r *Repository) HasLatestMigrations(ctx context.Context) (bool, error) {
	version, err := schemaVersion(ctx, r.db)
	if err != nil {
		return false, err
	}
	return version == len(migrations), nil
}

// Migrate applies pending schema migrations inside one transaction.
// Migrations already recorded in user_version are never reapplied, so
// running it against an up-to-date store is a no-op.
func (r *Repository) Migrate(ctx context.Context) error {
	if err := r.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		version, err := schemaVersion(ctx, tx)
		if err != nil {
			return err
		}
		if version >= len(migrations) {
			return nil
		}
		for _, migration := range migrations[version:] {
			for _, statement := range migration {
				if _, err := tx.ExecContext(ctx, statement); err != nil {
					return err
				}
			}
		}
		if _, err := tx.ExecContext(ctx,
			fmt.Sprintf("PRAGMA user_version = %d", len(migrations))); err != nil {
			return err
		}
		return nil
	}); err != nil {
		return fmt.Errorf("Repository.Migrate: %w", err)
	}
	return nil
}
