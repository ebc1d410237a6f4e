package auth

import "errors"

var (
	// ErrInvalidCredentials is returned by Login for an unknown username and for a wrong password alike.
	ErrInvalidCredentials = errors.New("invalid username or password")

	// ErrMissingCredential is returned when a request carries no bearer token.
	ErrMissingCredential = errors.New("missing credential")

	// ErrInvalidCredential is returned for a malformed, expired or badly signed token.
	ErrInvalidCredential = errors.New("invalid credential")

	// ErrEmptySecret is returned when signing or verifying without a secret.
	ErrEmptySecret = errors.New("token secret is empty")
)
