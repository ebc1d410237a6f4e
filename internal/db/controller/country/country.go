// Package country provides CRUD operations for the countries of the catalog.
package country

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/rizkyprovidervisa/visa-admin/internal/db/models"
)

const idQueryPattern = "id = ?"

var (
	// ErrCountryNotFound is returned when no country has the requested id.
	ErrCountryNotFound = errors.New("country not found")
	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")
)

// Fields are the mutable columns of a country apart from the image.
type Fields struct {
	Name        string
	Code        string
	Flag        *string
	Description string
}

// Repository is the store contract of the country level.
type Repository interface {
	List(ctx context.Context) ([]models.Country, error)
	Get(ctx context.Context, id uint64) (*models.Country, error)
	Create(ctx context.Context, f Fields, image *string) (uint64, error)
	Update(ctx context.Context, id uint64, f Fields, image *string) error
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
func (s *Store) List(ctx context.Context) ([]models.Country, error) { return List(ctx, s.DB) }

// Get implements Repository.
func (s *Store) Get(ctx context.Context, id uint64) (*models.Country, error) { return Get(ctx, s.DB, id) }

// Create implements Repository.
func (s *Store) Create(ctx context.Context, f Fields, image *string) (uint64, error) {
	return Create(ctx, s.DB, f, image)
}

// Update implements Repository.
func (s *Store) Update(ctx context.Context, id uint64, f Fields, image *string) error {
	return Update(ctx, s.DB, id, f, image)
}

// Delete implements Repository.
func (s *Store) Delete(ctx context.Context, id uint64) error { return Delete(ctx, s.DB, id) }

// List returns every country ordered by name.
func List(ctx context.Context, db *gorm.DB) ([]models.Country, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	countries := make([]models.Country, 0)
	if err := db.WithContext(ctx).Order("name").Order("id").Find(&countries).Error; err != nil {
		return nil, err //nolint:wrapcheck
	}

	return countries, nil
}

// Get retrieves a country by its id.
func Get(ctx context.Context, db *gorm.DB, id uint64) (*models.Country, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var c models.Country

	result := db.WithContext(ctx).First(&c, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrCountryNotFound
		}

		return nil, result.Error
	}

	return &c, nil
}

// Create inserts a country and returns its new id. image may be nil.
func Create(ctx context.Context, db *gorm.DB, f Fields, image *string) (uint64, error) {
	if db == nil {
		return 0, ErrDBNil
	}

	c := models.Country{
		Name:        f.Name,
		Code:        f.Code,
		Flag:        emptyToNil(f.Flag),
		Image:       image,
		Description: f.Description,
	}

	if err := db.WithContext(ctx).Create(&c).Error; err != nil {
		return 0, err //nolint:wrapcheck
	}

	return c.ID, nil
}

// Update replaces the mutable fields of a country. The image column is only
// written when image is not nil. Updating an unknown id is not an error.
func Update(ctx context.Context, db *gorm.DB, id uint64, f Fields, image *string) error {
	if db == nil {
		return ErrDBNil
	}

	values := map[string]any{
		"name":        f.Name,
		"code":        f.Code,
		"flag":        emptyToNil(f.Flag),
		"description": f.Description,
	}

	if image != nil {
		values["image"] = *image
	}

	return db.WithContext(ctx).Model(&models.Country{}).Where(idQueryPattern, id).Updates(values).Error //nolint:wrapcheck
}

// Delete removes a country. Visa types of the country are left untouched.
func Delete(ctx context.Context, db *gorm.DB, id uint64) error {
	if db == nil {
		return ErrDBNil
	}

	return db.WithContext(ctx).Where(idQueryPattern, id).Delete(&models.Country{}).Error //nolint:wrapcheck
}

// emptyToNil stores an empty flag as NULL.
func emptyToNil(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}

	return s
}
