// Package visacategory provides CRUD operations for the categories of a visa type.
package visacategory

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/rizkyprovidervisa/visa-admin/internal/db/models"
)

// ErrDBNil is returned when the database connection is nil.
var ErrDBNil = errors.New("database connection is nil")

// Repository is the store contract of the visa category level.
type Repository interface {
	List(ctx context.Context, visaTypeID *uint64) ([]models.VisaCategoryRow, error)
	Create(ctx context.Context, vc models.VisaCategory) (uint64, error)
	Update(ctx context.Context, id uint64, vc models.VisaCategory) error
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
func (s *Store) List(ctx context.Context, visaTypeID *uint64) ([]models.VisaCategoryRow, error) {
	return List(ctx, s.DB, visaTypeID)
}

// Create implements Repository.
func (s *Store) Create(ctx context.Context, vc models.VisaCategory) (uint64, error) {
	return Create(ctx, s.DB, vc)
}

// Update implements Repository.
func (s *Store) Update(ctx context.Context, id uint64, vc models.VisaCategory) error {
	return Update(ctx, s.DB, id, vc)
}

// Delete implements Repository.
func (s *Store) Delete(ctx context.Context, id uint64) error { return Delete(ctx, s.DB, id) }

// List returns visa categories ordered by name, each with the name of its visa type.
// visaTypeID nil lists every category. Rows of a deleted visa type have a nil VisaTypeName.
func List(ctx context.Context, db *gorm.DB, visaTypeID *uint64) ([]models.VisaCategoryRow, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	// LEFT JOIN keeps rows whose parent was deleted, their parent name is null.
	q := db.WithContext(ctx).
		Table("visa_categories AS vc").
		Select("vc.*, vt.name AS visa_type_name").
		Joins("LEFT JOIN visa_types vt ON vc.visa_type_id = vt.id")

	if visaTypeID != nil {
		q = q.Where("vc.visa_type_id = ?", *visaTypeID)
	}

	rows := make([]models.VisaCategoryRow, 0)
	if err := q.Order("vc.name").Order("vc.id").Scan(&rows).Error; err != nil {
		return nil, err //nolint:wrapcheck
	}

	return rows, nil
}

// Create inserts a visa category and returns its new id. The visa type is not checked.
func Create(ctx context.Context, db *gorm.DB, vc models.VisaCategory) (uint64, error) {
	if db == nil {
		return 0, ErrDBNil
	}

	vc.ID = 0
	if err := db.WithContext(ctx).Create(&vc).Error; err != nil {
		return 0, err //nolint:wrapcheck
	}

	return vc.ID, nil
}

// Update replaces visa_type_id and name of a visa category.
func Update(ctx context.Context, db *gorm.DB, id uint64, vc models.VisaCategory) error {
	if db == nil {
		return ErrDBNil
	}

	values := map[string]any{
		"visa_type_id": vc.VisaTypeID,
		"name":         vc.Name,
	}

	return db.WithContext(ctx).Model(&models.VisaCategory{}).Where("id = ?", id).Updates(values).Error //nolint:wrapcheck
}

// Delete removes a visa category. Its details are left untouched.
func Delete(ctx context.Context, db *gorm.DB, id uint64) error {
	if db == nil {
		return ErrDBNil
	}

	return db.WithContext(ctx).Where("id = ?", id).Delete(&models.VisaCategory{}).Error //nolint:wrapcheck
}
