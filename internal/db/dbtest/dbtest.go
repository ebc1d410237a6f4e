// Package dbtest provides migrated in-memory sqlite databases for tests.
package dbtest

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/rizkyprovidervisa/visa-admin/internal/db/schema"
)

// New returns a fresh in-memory database with every table migrated.
// The pool is limited to one connection, each new connection would
// otherwise see an empty memory database.
func New(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:                                   logger.Discard,
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	require.NoError(t, err, "failed to create test database")

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	require.NoError(t, schema.Migrate(context.Background(), db), "failed to migrate test database")

	return db
}

// Closed returns a database whose pool is already closed, every query fails.
func Closed(t *testing.T) *gorm.DB {
	t.Helper()

	db := New(t)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	return db
}
