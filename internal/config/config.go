// Package config handles input from etc/*.toml files and the process environment.
package config

import (
	"bytes"
	"encoding/json"
	"os"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

const (
	// EnvConfigJSON holds a JSON document merged over the toml file.
	EnvConfigJSON = "VISA_ADMIN_CONFIG_JSON"

	// UploadBackendDisk stores images on the local filesystem.
	UploadBackendDisk = "disk"
	// UploadBackendMinIO stores images in a minio/s3 bucket.
	UploadBackendMinIO = "minio"

	defaultShutDownTime   = 5
	defaultTokenTTL       = 24 * time.Hour
	defaultUploadDir      = "./uploads-rizkyprovidervisa"
	defaultPublicPath     = "/uploads"
	defaultMaxUploadSize  = 5 << 20
	defaultCheckAliveURI  = "/checkalive"
	defaultLoginRateMax   = 10
	defaultLoginRateFrame = time.Minute
)

// envBindings maps config keys to the plain environment variables
// a deployment of the site already sets.
var envBindings = map[string]string{ //nolint:gochecknoglobals
	"webserver.port": "PORT",
	"db.host":        "DB_HOST",
	"db.port":        "DB_PORT",
	"db.user":        "DB_USER",
	"db.password":    "DB_PASSWORD",
	"db.name":        "DB_NAME",
	"auth.jwtsecret": "JWT_SECRET",
	"upload.dir":     "UPLOAD_DIR",
}

// ReadConfig from config file.
func ReadConfig(path string) (Config, error) {
	var (
		c             Config
		JSONConfigEnv string
		err           error
	)

	// Read main configuration
	if path == "" {
		path = "./etc/"
	}

	if _, err = toml.DecodeFile(path+"main.toml", &c); err != nil {
		return Config{}, errors.Wrap(err, "failed to read main config file")
	}

	// override it from env
	JSONConfigEnv = os.Getenv(EnvConfigJSON)

	if JSONConfigEnv != "" {
		c, err = decodeAndMergeConfig(c, JSONConfigEnv)
		if err != nil {
			return c, err
		}
	}

	applyEnv(&c)

	return c, validate(&c)
}

func decodeAndMergeConfig(c Config, configAsJSON string) (Config, error) {
	err := json.Unmarshal([]byte(configAsJSON), &c)
	if err != nil {
		return Config{}, errors.Wrap(err, "failed to read main config file")
	}

	return c, nil
}

// applyEnv loads an optional .env file and lets the bound
// environment variables win over the file values.
func applyEnv(c *Config) {
	_ = godotenv.Load()

	v := viper.New()
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	if v.IsSet("webserver.port") {
		c.Webserver.Port = v.GetInt("webserver.port")
	}

	if v.IsSet("db.host") {
		c.DB.Host = v.GetString("db.host")
	}

	if v.IsSet("db.port") {
		c.DB.Port = v.GetInt("db.port")
	}

	if v.IsSet("db.user") {
		c.DB.User = v.GetString("db.user")
	}

	if v.IsSet("db.password") {
		c.DB.Password = v.GetString("db.password")
	}

	if v.IsSet("db.name") {
		c.DB.Name = v.GetString("db.name")
	}

	if v.IsSet("auth.jwtsecret") {
		c.Auth.JWTSecret = v.GetString("auth.jwtsecret")
	}

	if v.IsSet("upload.dir") {
		c.Upload.Dir = v.GetString("upload.dir")
	}
}

// DumpConfig config as TOML String.
func DumpConfig(c Config) (string, error) {
	var buffer bytes.Buffer
	t := toml.NewEncoder(&buffer)

	if err := t.Encode(c); err != nil {
		return "", err //nolint: wrapcheck
	}

	return buffer.String(), nil
}

// validate checks the settings the service can not start without
// and fills defaults for the optional ones.
func validate(c *Config) error {
	invalidErrMessage := "invalid config"

	if c.Webserver.Port == 0 {
		return errors.Wrap(ErrWebServerPortCanNotBeZero, invalidErrMessage)
	}

	if c.Webserver.URL == "" {
		return errors.Wrap(ErrEmptyURL, invalidErrMessage)
	}

	if c.Auth.JWTSecret == "" {
		return errors.Wrap(ErrEmptyJWTSecret, invalidErrMessage)
	}

	switch c.DB.Engine {
	case "":
		c.DB.Engine = EngineMySQL
	case EngineMySQL, EnginePostgres, EngineSQLite:
	default:
		return errors.Wrap(ErrUnknownDBEngine, invalidErrMessage)
	}

	switch c.Upload.Backend {
	case "":
		c.Upload.Backend = UploadBackendDisk
	case UploadBackendDisk:
	case UploadBackendMinIO:
		if c.Upload.MinIO.Bucket == "" {
			return errors.Wrap(ErrMinIOBucketEmpty, invalidErrMessage)
		}
	default:
		return errors.Wrap(ErrUnknownUploadBackend, invalidErrMessage)
	}

	if c.Webserver.ShutDownTime == 0 {
		c.Webserver.ShutDownTime = defaultShutDownTime
	}

	if c.Webserver.CheckAliveURI == "" {
		c.Webserver.CheckAliveURI = defaultCheckAliveURI
	}

	if c.Webserver.LoginRateLimit.Max == 0 {
		c.Webserver.LoginRateLimit.Max = defaultLoginRateMax
	}

	if c.Webserver.LoginRateLimit.Window == 0 {
		c.Webserver.LoginRateLimit.Window = defaultLoginRateFrame
	}

	if c.Auth.TokenTTL == 0 {
		c.Auth.TokenTTL = defaultTokenTTL
	}

	if c.Upload.Dir == "" {
		c.Upload.Dir = defaultUploadDir
	}

	if c.Upload.PublicPath == "" {
		c.Upload.PublicPath = defaultPublicPath
	}

	if c.Upload.MaxSize == 0 {
		c.Upload.MaxSize = defaultMaxUploadSize
	}

	return nil
}
