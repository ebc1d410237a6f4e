package config

import (
	"time"

	"github.com/rizkyprovidervisa/visa-admin/internal/logger"
)

// Config overall data structure.
type Config struct {
	DevMode   bool // enable dev mode for development
	DB        DB
	Log       logger.Log
	Title     string
	Webserver Webserver
	Auth      Auth
	Upload    Upload
}

// Webserver implement webserver settings.
type Webserver struct {
	CleanPath        bool           // use clean path middleware to allow multi slash requests
	DisableRecover   bool           // disable recover middleware
	Port             int            // listening port for the webserver
	ShutDownTime     int            // wait time for shutdown
	URL              string         // base url for the webserver
	BodyLimit        int            // max request body size in bytes
	CORSAllowOrigins string         // comma separated list for the cors middleware
	CheckAliveURI    string         // liveness endpoint, answers 503 while shutting down
	MetricsPath      string         // prometheus scrape endpoint, empty disables it
	LoginRateLimit   LoginRateLimit // throttling of POST /api/auth/login
}

// LoginRateLimit limits login attempts per client ip.
type LoginRateLimit struct {
	Enabled bool
	Max     int
	Window  time.Duration
}

// Auth holds the bearer token and bootstrap admin settings.
type Auth struct {
	JWTSecret    string
	TokenTTL     time.Duration
	DefaultAdmin DefaultAdmin
}

// DefaultAdmin is created on startup when the admin_users table is empty.
type DefaultAdmin struct {
	Username string
	Password string
	Email    string
}

// Upload configures where country images are stored.
type Upload struct {
	Backend    string // disk or minio
	Dir        string // disk backend target directory
	PublicPath string // url prefix the disk backend is served under
	MaxSize    int64  // max accepted image size in bytes
	MinIO      MinIO
}

// MinIO holds the object storage settings for the minio upload backend.
type MinIO struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
	PublicURL string // base url objects are reachable under, defaults to the endpoint
}
