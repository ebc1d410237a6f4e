package models

import (
	"strings"
	"time"

	"github.com/alexedwards/argon2id"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
)

// AdminUser is an account allowed to sign in to the admin panel.
// Accounts are created from the command line, the api only reads them.
type AdminUser struct {
	ID       uint64 `gorm:"primaryKey" json:"id"`
	Username string `gorm:"unique;size:50;not null" json:"username"`
	// Password is an Argon2id hash. Bcrypt hashes of accounts imported from
	// the previous installation are accepted as well.
	Password  string    `gorm:"size:255;not null" json:"-"`
	Email     string    `gorm:"size:100" json:"email"`
	CreatedAt time.Time `json:"-"`
}

// TableName implements gorm's tabler interface.
func (AdminUser) TableName() string {
	return "admin_users"
}

// HashPassword hashes a plaintext password using the Argon2id algorithm.
func HashPassword(password string) (string, error) {
	return argon2id.CreateHash(password, argon2id.DefaultParams) //nolint:wrapcheck
}

// isBcrypt reports whether hash was produced by bcrypt.
func isBcrypt(hash string) bool {
	return strings.HasPrefix(hash, "$2a$") || strings.HasPrefix(hash, "$2b$") || strings.HasPrefix(hash, "$2y$")
}

// VerifyPassword compares the plaintext password with the stored hash in constant time.
func (u *AdminUser) VerifyPassword(password string) bool {
	if isBcrypt(u.Password) {
		return bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)) == nil
	}

	match, err := argon2id.ComparePasswordAndHash(password, u.Password)
	if err != nil {
		log.Error().Err(err).Str("username", u.Username).Msg("failed to verify password")

		return false
	}

	return match
}
