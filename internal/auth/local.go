package auth

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/rizkyprovidervisa/visa-admin/internal/db/controller/adminuser"
	"github.com/rizkyprovidervisa/visa-admin/internal/db/models"
)

// User is the public part of an admin returned after sign in.
type User struct {
	ID       uint64 `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// Session is the result of a successful sign in.
type Session struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// Authenticator handles local database authentication.
type Authenticator struct {
	users  adminuser.Finder
	secret string
	ttl    time.Duration
	now    func() time.Time
}

// NewAuthenticator creates a new local authenticator signing tokens with secret.
func NewAuthenticator(users adminuser.Finder, secret string, ttl time.Duration) *Authenticator {
	return &Authenticator{
		users:  users,
		secret: secret,
		ttl:    ttl,
		now:    time.Now,
	}
}

var (
	dummyOnce sync.Once //nolint:gochecknoglobals
	dummyUser *models.AdminUser
)

// burnHash spends the time of a password check so unknown usernames
// answer as slow as wrong passwords.
func burnHash(password string) {
	dummyOnce.Do(func() {
		hash, err := models.HashPassword("visa-admin-dummy")
		if err != nil {
			log.Error().Err(err).Msg("failed to create dummy hash")
		}

		dummyUser = &models.AdminUser{Password: hash}
	})

	_ = dummyUser.VerifyPassword(password)
}

// Login checks username and password and issues a token. Unknown usernames
// and wrong passwords both return ErrInvalidCredentials, store failures are
// returned wrapped.
func (a *Authenticator) Login(ctx context.Context, username, password string) (*Session, error) {
	user, err := a.users.GetByUsername(ctx, username)
	if errors.Is(err, adminuser.ErrUserNotFound) {
		burnHash(password)

		return nil, ErrInvalidCredentials
	}

	if err != nil {
		return nil, fmt.Errorf("failed to query admin user: %w", err)
	}

	if !user.VerifyPassword(password) {
		return nil, ErrInvalidCredentials
	}

	token, err := Issue(a.secret, user.ID, user.Username, a.ttl, a.now())
	if err != nil {
		return nil, err
	}

	return &Session{
		Token: token,
		User: User{
			ID:       user.ID,
			Username: user.Username,
			Email:    user.Email,
		},
	}, nil
}
