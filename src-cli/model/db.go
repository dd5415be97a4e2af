package model

import (
	"database/sql"
	"fmt"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"
	"github.com/uptrace/bun/extra/bundebug"
)

// OpenReadOnly opens the store for export and list operations. Readers take
// no locks beyond sqlite's own.
func OpenReadOnly(path string) (*bun.DB, error) {
	return open(fmt.Sprintf("file:%s?mode=ro", path))
}

// OpenWritable opens the store for migrations and imports. Transactions take
// an exclusive lock so a schema migration cannot interleave with readers.
func OpenWritable(path string) (*bun.DB, error) {
	return open(fmt.Sprintf("file:%s?_txlock=exclusive", path))
}

func open(dsn string) (*bun.DB, error) {
	sqlDB, err := sql.Open(sqliteshim.ShimName, dsn)
	if err != nil {
		return nil, fmt.Errorf("model.open: %w", err)
	}
	db := bun.NewDB(sqlDB, sqlitedialect.New())
	db.AddQueryHook(bundebug.NewQueryHook(bundebug.FromEnv("BUNDEBUG")))
	return db, nil
}
