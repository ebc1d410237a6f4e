package schema

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/rizkyprovidervisa/visa-admin/internal/db/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Discard})
	require.NoError(t, err, "failed to create test database")

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	return db
}

func TestMigrate(t *testing.T) {
	db := setupTestDB(t)

	require.NoError(t, Migrate(context.Background(), db))

	for _, m := range Models() {
		assert.True(t, db.Migrator().HasTable(m))
	}

	// no constraints may exist, orphans are allowed
	assert.False(t, db.Migrator().HasConstraint(&models.VisaType{}, "fk_visa_types_country"))
	require.NoError(t, db.Create(&models.VisaType{CountryID: 999, Name: "Orphan"}).Error)

	// running twice is fine
	require.NoError(t, Migrate(context.Background(), db))
}

func TestMigrateNilDB(t *testing.T) {
	require.ErrorIs(t, Migrate(context.Background(), nil), ErrDBNil)

	_, err := EnsureCountryFlagColumn(context.Background(), nil)
	require.ErrorIs(t, err, ErrDBNil)
}

func TestEnsureCountryFlagColumn(t *testing.T) {
	ctx := context.Background()

	t.Run("no table", func(t *testing.T) {
		db := setupTestDB(t)

		added, err := EnsureCountryFlagColumn(ctx, db)
		require.NoError(t, err)
		assert.False(t, added)
	})

	t.Run("legacy table without flag", func(t *testing.T) {
		db := setupTestDB(t)

		require.NoError(t, db.Exec(`CREATE TABLE countries (
			id integer PRIMARY KEY AUTOINCREMENT,
			name varchar(100) NOT NULL,
			code varchar(10) NOT NULL,
			image varchar(255),
			description text
		)`).Error)
		require.NoError(t, db.Exec(`INSERT INTO countries (name, code) VALUES ('Japan', 'JP')`).Error)

		added, err := EnsureCountryFlagColumn(ctx, db)
		require.NoError(t, err)
		assert.True(t, added)
		assert.True(t, db.Migrator().HasColumn(&models.Country{}, "flag"))

		var c models.Country
		require.NoError(t, db.First(&c).Error)
		assert.Equal(t, "Japan", c.Name)
		assert.Nil(t, c.Flag)

		added, err = EnsureCountryFlagColumn(ctx, db)
		require.NoError(t, err)
		assert.False(t, added)
	})
}
