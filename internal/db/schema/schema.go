// Package schema creates and upgrades the catalog tables.
package schema

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/rizkyprovidervisa/visa-admin/internal/db/models"
)

// ErrDBNil is returned when the database connection is nil.
var ErrDBNil = errors.New("database connection is nil")

// Models lists every table of the service.
func Models() []any {
	return []any{
		&models.Country{},
		&models.VisaType{},
		&models.VisaCategory{},
		&models.VisaDetail{},
		&models.Setting{},
		&models.AdminUser{},
	}
}

// Migrate creates missing tables and columns. The models carry no
// associations, so parent columns are plain indexed columns and no foreign
// key constraint is ever created.
func Migrate(ctx context.Context, db *gorm.DB) error {
	if db == nil {
		return ErrDBNil
	}

	tx := db.WithContext(ctx)

	// tables created by the previous installation may lack the flag column
	if _, err := EnsureCountryFlagColumn(ctx, tx); err != nil {
		return err
	}

	if err := tx.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	return nil
}

// EnsureCountryFlagColumn adds countries.flag when the table exists without it.
// It reports whether the column was added.
func EnsureCountryFlagColumn(ctx context.Context, db *gorm.DB) (bool, error) {
	if db == nil {
		return false, ErrDBNil
	}

	m := db.WithContext(ctx).Migrator()

	if !m.HasTable(&models.Country{}) || m.HasColumn(&models.Country{}, "Flag") {
		return false, nil
	}

	if err := m.AddColumn(&models.Country{}, "Flag"); err != nil {
		return false, fmt.Errorf("failed adding countries.flag column: %w", err)
	}

	log.Info().Msg("added countries.flag column")

	return true, nil
}
