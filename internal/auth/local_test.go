package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rizkyprovidervisa/visa-admin/internal/db/controller/adminuser"
	"github.com/rizkyprovidervisa/visa-admin/internal/db/dbtest"
	"github.com/rizkyprovidervisa/visa-admin/internal/db/models"
)

type brokenFinder struct{}

func (brokenFinder) GetByUsername(context.Context, string) (*models.AdminUser, error) {
	return nil, errors.New("connection refused") //nolint:goerr113
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	db := dbtest.New(t)

	_, err := adminuser.Create(ctx, db, "admin", "changeme", "admin@example.com")
	require.NoError(t, err)

	a := NewAuthenticator(adminuser.New(db), testSecret, time.Hour)

	t.Run("success", func(t *testing.T) {
		s, err := a.Login(ctx, "admin", "changeme")
		require.NoError(t, err)
		assert.Equal(t, "admin", s.User.Username)
		assert.Equal(t, "admin@example.com", s.User.Email)
		assert.NotZero(t, s.User.ID)

		claims, err := Verify(testSecret, s.Token)
		require.NoError(t, err)
		assert.Equal(t, s.User.ID, claims.ID)
		assert.Equal(t, "admin", claims.Username)
	})

	t.Run("wrong password and unknown user look the same", func(t *testing.T) {
		_, errWrong := a.Login(ctx, "admin", "wrong")
		_, errUnknown := a.Login(ctx, "nobody", "changeme")

		require.ErrorIs(t, errWrong, ErrInvalidCredentials)
		require.ErrorIs(t, errUnknown, ErrInvalidCredentials)
		assert.Equal(t, errWrong.Error(), errUnknown.Error())
	})

	t.Run("store failure is not an auth failure", func(t *testing.T) {
		_, err := NewAuthenticator(brokenFinder{}, testSecret, time.Hour).Login(ctx, "admin", "changeme")
		require.Error(t, err)
		require.NotErrorIs(t, err, ErrInvalidCredentials)
	})
}
