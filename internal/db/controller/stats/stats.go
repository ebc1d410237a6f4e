// Package stats counts the rows of the catalog for the admin dashboard.
package stats

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/rizkyprovidervisa/visa-admin/internal/db/models"
)

// ErrDBNil is returned when the database connection is nil.
var ErrDBNil = errors.New("database connection is nil")

// Counts is the dashboard summary.
type Counts struct {
	Countries      int64 `json:"countries"`
	VisaTypes      int64 `json:"visa_types"`
	VisaCategories int64 `json:"visa_categories"`
}

// Counter is the store contract of the dashboard.
type Counter interface {
	Counts(ctx context.Context) (Counts, error)
}

// Store implements Counter with gorm.
type Store struct {
	DB *gorm.DB
}

// New returns a gorm backed Counter.
func New(db *gorm.DB) *Store {
	return &Store{DB: db}
}

// Counts implements Counter.
func (s *Store) Counts(ctx context.Context) (Counts, error) { return Get(ctx, s.DB) }

// Get counts countries, visa types and visa categories. Nothing is cached.
func Get(ctx context.Context, db *gorm.DB) (Counts, error) {
	var c Counts

	if db == nil {
		return c, ErrDBNil
	}

	tx := db.WithContext(ctx)

	if err := tx.Model(&models.Country{}).Count(&c.Countries).Error; err != nil {
		return Counts{}, err //nolint:wrapcheck
	}

	if err := tx.Model(&models.VisaType{}).Count(&c.VisaTypes).Error; err != nil {
		return Counts{}, err //nolint:wrapcheck
	}

	if err := tx.Model(&models.VisaCategory{}).Count(&c.VisaCategories).Error; err != nil {
		return Counts{}, err //nolint:wrapcheck
	}

	return c, nil
}
