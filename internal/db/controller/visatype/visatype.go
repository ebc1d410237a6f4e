// Package visatype provides CRUD operations for the visa types of a country.
package visatype

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/rizkyprovidervisa/visa-admin/internal/db/models"
)

// ErrDBNil is returned when the database connection is nil.
var ErrDBNil = errors.New("database connection is nil")

// Repository is the store contract of the visa type level.
type Repository interface {
	List(ctx context.Context, countryID *uint64) ([]models.VisaTypeRow, error)
	Create(ctx context.Context, vt models.VisaType) (uint64, error)
	Update(ctx context.Context, id uint64, vt models.VisaType) error
	Delete(ctx context.Context, id uint64) error
}

// Store implements Repository with gorm.
type Store struct {
	DB *gorm.DB
}

// New returns a gorm backed Repository.
func New(db *gorm.DB) *Store {
	return &Store{DB: db}
}

// List implements Repository.
func (s *Store) List(ctx context.Context, countryID *uint64) ([]models.VisaTypeRow, error) {
	return List(ctx, s.DB, countryID)
}

// Create implements Repository.
func (s *Store) Create(ctx context.Context, vt models.VisaType) (uint64, error) {
	return Create(ctx, s.DB, vt)
}

// Update implements Repository.
func (s *Store) Update(ctx context.Context, id uint64, vt models.VisaType) error {
	return Update(ctx, s.DB, id, vt)
}

// Delete implements Repository.
func (s *Store) Delete(ctx context.Context, id uint64) error { return Delete(ctx, s.DB, id) }

// List returns visa types ordered by name, each with the name of its country.
// countryID nil lists every visa type. Rows of a deleted country have a nil CountryName.
func List(ctx context.Context, db *gorm.DB, countryID *uint64) ([]models.VisaTypeRow, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	// LEFT JOIN keeps rows whose parent was deleted, their parent name is null.
	q := db.WithContext(ctx).
		Table("visa_types AS vt").
		Select("vt.*, c.name AS country_name").
		Joins("LEFT JOIN countries c ON vt.country_id = c.id")

	if countryID != nil {
		q = q.Where("vt.country_id = ?", *countryID)
	}

	rows := make([]models.VisaTypeRow, 0)
	if err := q.Order("vt.name").Order("vt.id").Scan(&rows).Error; err != nil {
		return nil, err //nolint:wrapcheck
	}

	return rows, nil
}

// Create inserts a visa type and returns its new id. The country is not checked.
func Create(ctx context.Context, db *gorm.DB, vt models.VisaType) (uint64, error) {
	if db == nil {
		return 0, ErrDBNil
	}

	vt.ID = 0
	if err := db.WithContext(ctx).Create(&vt).Error; err != nil {
		return 0, err //nolint:wrapcheck
	}

	return vt.ID, nil
}

// Update replaces country_id and name of a visa type.
func Update(ctx context.Context, db *gorm.DB, id uint64, vt models.VisaType) error {
	if db == nil {
		return ErrDBNil
	}

	values := map[string]any{
		"country_id": vt.CountryID,
		"name":       vt.Name,
	}

	return db.WithContext(ctx).Model(&models.VisaType{}).Where("id = ?", id).Updates(values).Error //nolint:wrapcheck
}

// Delete removes a visa type. Its categories are left untouched.
func Delete(ctx context.Context, db *gorm.DB, id uint64) error {
	if db == nil {
		return ErrDBNil
	}

	return db.WithContext(ctx).Where("id = ?", id).Delete(&models.VisaType{}).Error //nolint:wrapcheck
}
