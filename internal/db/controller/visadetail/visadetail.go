// Package visadetail provides CRUD operations for the priced details of a visa category.
package visadetail

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/rizkyprovidervisa/visa-admin/internal/db/models"
)

// ErrDBNil is returned when the database connection is nil.
var ErrDBNil = errors.New("database connection is nil")

// Repository is the store contract of the visa detail level.
type Repository interface {
	List(ctx context.Context, categoryID *uint64) ([]models.VisaDetailRow, error)
	Create(ctx context.Context, vd models.VisaDetail) (uint64, error)
	Update(ctx context.Context, id uint64, vd models.VisaDetail) error
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
func (s *Store) List(ctx context.Context, categoryID *uint64) ([]models.VisaDetailRow, error) {
	return List(ctx, s.DB, categoryID)
}

// Create implements Repository.
func (s *Store) Create(ctx context.Context, vd models.VisaDetail) (uint64, error) {
	return Create(ctx, s.DB, vd)
}

// Update implements Repository.
func (s *Store) Update(ctx context.Context, id uint64, vd models.VisaDetail) error {
	return Update(ctx, s.DB, id, vd)
}

// Delete implements Repository.
func (s *Store) Delete(ctx context.Context, id uint64) error { return Delete(ctx, s.DB, id) }

// List returns visa details ordered by process type, each with the name of its category.
func List(ctx context.Context, db *gorm.DB, categoryID *uint64) ([]models.VisaDetailRow, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	// LEFT JOIN keeps rows whose parent was deleted, their parent name is null.
	q := db.WithContext(ctx).
		Table("visa_details AS vd").
		Select("vd.*, vc.name AS category_name").
		Joins("LEFT JOIN visa_categories vc ON vd.visa_category_id = vc.id")

	if categoryID != nil {
		q = q.Where("vd.visa_category_id = ?", *categoryID)
	}

	rows := make([]models.VisaDetailRow, 0)
	if err := q.Order("vd.process_type").Order("vd.id").Scan(&rows).Error; err != nil {
		return nil, err //nolint:wrapcheck
	}

	return rows, nil
}

// Create inserts a visa detail and returns its new id.
func Create(ctx context.Context, db *gorm.DB, vd models.VisaDetail) (uint64, error) {
	if db == nil {
		return 0, ErrDBNil
	}

	vd.ID = 0
	if err := db.WithContext(ctx).Create(&vd).Error; err != nil {
		return 0, err //nolint:wrapcheck
	}

	return vd.ID, nil
}

// Update replaces every mutable column of a visa detail, the category included.
func Update(ctx context.Context, db *gorm.DB, id uint64, vd models.VisaDetail) error {
	if db == nil {
		return ErrDBNil
	}

	values := map[string]any{
		"visa_category_id": vd.VisaCategoryID,
		"process_type":     vd.ProcessType,
		"processing_time":  vd.ProcessingTime,
		"price":            vd.Price,
		"requirements":     vd.Requirements,
	}

	return db.WithContext(ctx).Model(&models.VisaDetail{}).Where("id = ?", id).Updates(values).Error //nolint:wrapcheck
}

// Delete removes a visa detail.
func Delete(ctx context.Context, db *gorm.DB, id uint64) error {
	if db == nil {
		return ErrDBNil
	}

	return db.WithContext(ctx).Where("id = ?", id).Delete(&models.VisaDetail{}).Error //nolint:wrapcheck
}
