package store

import (
	"context"
	"database/sql"

	"github.com/MKhiriev/admin-panel/internal/logger"
	"github.com/MKhiriev/admin-panel/migrations"
)

const (
	dialectPostgres = migrations.DialectPostgres
	dialectSQLite   = migrations.DialectSQLite
)

// DB is an open SQL connection pool together with what the repositories need
// to know about its dialect.
type DB struct {
	*sql.DB
	dialect            string
	errorClassificator ErrorClassificator
	logger             *logger.Logger
}

// Migrate applies the embedded schema for the connection's dialect.
func (db *DB) Migrate(ctx context.Context) error {
	return migrations.Migrate(ctx, db.DB, db.dialect)
}
