package config

import (
	"errors"
)

var (
	// ErrEmptyURL error if config webserver.URL is empty.
	ErrEmptyURL = errors.New("toml config webserver.url can not be empty")

	// ErrWebServerPortCanNotBeZero error if config webserver listening port is 0.
	ErrWebServerPortCanNotBeZero = errors.New("toml config webserver.port listening port can not be 0")

	// ErrEmptyJWTSecret error if no signing secret for bearer tokens is configured.
	ErrEmptyJWTSecret = errors.New("toml config auth.jwtsecret can not be empty")

	// ErrUnknownDBEngine error if db.engine is not mysql, postgres or sqlite.
	ErrUnknownDBEngine = errors.New("toml config db.engine must be mysql, postgres or sqlite")

	// ErrUnknownUploadBackend error if upload.backend is not disk or minio.
	ErrUnknownUploadBackend = errors.New("toml config upload.backend must be disk or minio")

	// ErrMinIOBucketEmpty error if the minio backend is selected without a bucket.
	ErrMinIOBucketEmpty = errors.New("toml config upload.minio.bucket can not be empty")
)

// ErrConfigNil is returned by constructors handed a nil config.
var ErrConfigNil = errors.New("config is nil")
