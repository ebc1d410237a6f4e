package auth

import (
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultTokenTTL is how long an issued token stays valid.
const DefaultTokenTTL = 24 * time.Hour

// Claims are carried by every admin token.
type Claims struct {
	ID       uint64 `json:"id"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// Issue signs a token for the admin that expires ttl after now.
func Issue(secret string, id uint64, username string, ttl time.Duration, now time.Time) (string, error) {
	if secret == "" {
		return "", ErrEmptySecret
	}

	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}

	claims := Claims{
		ID:       id,
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(id, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, nil
}

// Verify checks signature and expiry of token and returns its claims.
// Every failure is reported as ErrInvalidCredential.
func Verify(secret, token string) (*Claims, error) {
	if secret == "" {
		return nil, ErrEmptySecret
	}

	if token == "" {
		return nil, ErrMissingCredential
	}

	claims := new(Claims)

	keyFunc := func(*jwt.Token) (any, error) {
		return []byte(secret), nil
	}

	_, err := jwt.ParseWithClaims(token, claims, keyFunc,
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidCredential, err)
	}

	return claims, nil
}
