// Package setting provides the key value store behind the site settings.
package setting

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/rizkyprovidervisa/visa-admin/internal/db/models"
)

const keyQueryPattern = "setting_key = ?"

var (
	// ErrSettingNotFound is returned when a setting is not found.
	ErrSettingNotFound = errors.New("setting not found")
	// ErrSettingKeyEmpty is returned when attempting to write a setting with an empty key.
	ErrSettingKeyEmpty = errors.New("setting key cannot be empty")
	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")
)

// BatchError reports a SetMany call that failed for some keys.
// Applied lists the keys that were written nevertheless.
type BatchError struct {
	Failed  []string
	Applied []string
	Errs    map[string]error
}

// Error implements error.
func (e *BatchError) Error() string {
	return fmt.Sprintf("failed to store settings %s", strings.Join(e.Failed, ", "))
}

// Unwrap returns the per key errors in the order of Failed.
func (e *BatchError) Unwrap() []error {
	out := make([]error, 0, len(e.Failed))
	for _, k := range e.Failed {
		out = append(out, e.Errs[k])
	}

	return out
}

// Repository is the store contract of the settings.
type Repository interface {
	All(ctx context.Context) (map[string]string, error)
	SetMany(ctx context.Context, values map[string]string) ([]string, error)
}

// Store implements Repository with gorm.
type Store struct {
	DB *gorm.DB
}

// New returns a gorm backed Repository.
func New(db *gorm.DB) *Store {
	return &Store{DB: db}
}

// All implements Repository.
func (s *Store) All(ctx context.Context) (map[string]string, error) { return All(ctx, s.DB) }

// SetMany implements Repository.
func (s *Store) SetMany(ctx context.Context, values map[string]string) ([]string, error) {
	return SetMany(ctx, s.DB, values)
}

// All returns every stored setting as a flat key to value map.
// Keys that were never written are absent.
func All(ctx context.Context, db *gorm.DB) (map[string]string, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var settings []models.Setting
	if err := db.WithContext(ctx).Find(&settings).Error; err != nil {
		return nil, err //nolint:wrapcheck
	}

	out := make(map[string]string, len(settings))
	for _, s := range settings {
		out[s.Key] = s.Value
	}

	return out, nil
}

// Get retrieves a setting by its key.
func Get(ctx context.Context, db *gorm.DB, key string) (*models.Setting, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	if key == "" {
		return nil, ErrSettingKeyEmpty
	}

	var setting models.Setting

	result := db.WithContext(ctx).Where(keyQueryPattern, key).First(&setting)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrSettingNotFound
		}

		return nil, result.Error
	}

	return &setting, nil
}

// Set creates or overwrites a setting by key in a single upsert statement.
func Set(ctx context.Context, db *gorm.DB, key, value string) error {
	if db == nil {
		return ErrDBNil
	}

	if key == "" {
		return ErrSettingKeyEmpty
	}

	return db.WithContext(ctx).Clauses(clause.OnConflict{ //nolint:wrapcheck
		Columns:   []clause.Column{{Name: "setting_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"setting_value"}),
	}).Create(&models.Setting{Key: key, Value: value}).Error
}

// SetMany upserts every key independently, in key order. A failing key does
// not stop the others. The written keys are returned, on any failure the
// error is a *BatchError.
func SetMany(ctx context.Context, db *gorm.DB, values map[string]string) ([]string, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}

	sort.Strings(keys)

	var (
		applied = make([]string, 0, len(keys))
		batch   *BatchError
	)

	for _, k := range keys {
		if err := Set(ctx, db, k, values[k]); err != nil {
			if batch == nil {
				batch = &BatchError{Errs: make(map[string]error)}
			}

			batch.Failed = append(batch.Failed, k)
			batch.Errs[k] = err

			continue
		}

		applied = append(applied, k)
	}

	if batch != nil {
		batch.Applied = applied

		return applied, batch
	}

	return applied, nil
}

// Delete deletes a setting by key.
func Delete(ctx context.Context, db *gorm.DB, key string) error {
	if db == nil {
		return ErrDBNil
	}

	if key == "" {
		return ErrSettingKeyEmpty
	}

	result := db.WithContext(ctx).Where(keyQueryPattern, key).Delete(&models.Setting{})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ErrSettingNotFound
	}

	return nil
}
