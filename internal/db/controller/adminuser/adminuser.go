// Package adminuser provides the lookups behind admin sign in.
package adminuser

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/rizkyprovidervisa/visa-admin/internal/db/models"
)

var (
	// ErrUserNotFound is returned when no admin has the requested username.
	ErrUserNotFound = errors.New("admin user not found")
	// ErrUsernameEmpty is returned when creating an admin without username.
	ErrUsernameEmpty = errors.New("username cannot be empty")
	// ErrPasswordEmpty is returned when creating an admin without password.
	ErrPasswordEmpty = errors.New("password cannot be empty")
	// ErrUserAlreadyExists is returned when the username is taken.
	ErrUserAlreadyExists = errors.New("admin user already exists")
	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")
)

// Finder looks admins up by username.
type Finder interface {
	GetByUsername(ctx context.Context, username string) (*models.AdminUser, error)
}

// Store implements Finder with gorm.
type Store struct {
	DB *gorm.DB
}

// New returns a gorm backed Finder.
func New(db *gorm.DB) *Store {
	return &Store{DB: db}
}

// GetByUsername implements Finder.
func (s *Store) GetByUsername(ctx context.Context, username string) (*models.AdminUser, error) {
	return GetByUsername(ctx, s.DB, username)
}

// GetByUsername retrieves an admin by username.
func GetByUsername(ctx context.Context, db *gorm.DB, username string) (*models.AdminUser, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var u models.AdminUser

	result := db.WithContext(ctx).Where("username = ?", username).First(&u)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}

		return nil, result.Error
	}

	return &u, nil
}

// Count returns the number of admins.
func Count(ctx context.Context, db *gorm.DB) (int64, error) {
	if db == nil {
		return 0, ErrDBNil
	}

	var count int64
	if err := db.WithContext(ctx).Model(&models.AdminUser{}).Count(&count).Error; err != nil {
		return 0, err //nolint:wrapcheck
	}

	return count, nil
}

// Create hashes the password and stores a new admin.
func Create(ctx context.Context, db *gorm.DB, username, password, email string) (*models.AdminUser, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	if username == "" {
		return nil, ErrUsernameEmpty
	}

	if password == "" {
		return nil, ErrPasswordEmpty
	}

	if _, err := GetByUsername(ctx, db, username); err == nil {
		return nil, ErrUserAlreadyExists
	} else if !errors.Is(err, ErrUserNotFound) {
		return nil, err
	}

	hash, err := models.HashPassword(password)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}

	u := &models.AdminUser{
		Username: username,
		Password: hash,
		Email:    email,
	}

	if err = db.WithContext(ctx).Create(u).Error; err != nil {
		return nil, err //nolint:wrapcheck
	}

	return u, nil
}
