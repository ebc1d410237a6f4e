// Package daemon assembles and runs the visa admin service.
package daemon

import (
	"context"
	"fmt"

	"github.com/gofiber/fiber/v2"
	mysqlstorage "github.com/gofiber/storage/mysql/v2"
	postgresstorage "github.com/gofiber/storage/postgres/v3"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/rizkyprovidervisa/visa-admin/internal/config"
	"github.com/rizkyprovidervisa/visa-admin/internal/db/database"
	"github.com/rizkyprovidervisa/visa-admin/internal/db/dsn"
	"github.com/rizkyprovidervisa/visa-admin/internal/db/schema"
	"github.com/rizkyprovidervisa/visa-admin/internal/upload"
	"github.com/rizkyprovidervisa/visa-admin/internal/web"
)

// limiterTable keeps the login attempt counters of all instances.
const limiterTable = "login_limiter"

// Daemon represents the main application daemon.
type Daemon struct {
	cfg        *config.Config
	webService *web.Service
}

// Start serves http until SIGINT or SIGTERM.
func (d *Daemon) Start() error {
	go d.webService.WaitShutdown()

	return d.webService.Start(fmt.Sprintf(":%d", d.cfg.Webserver.Port))
}

// New opens and migrates the database, creates the default admin and builds the web service.
func New(ctx context.Context, cfg *config.Config) (*Daemon, error) {
	if cfg == nil {
		return nil, config.ErrConfigNil
	}

	db, err := database.Open(cfg)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}

	if err = schema.Migrate(ctx, db); err != nil {
		_ = database.Close(db)

		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	if err = seed(ctx, cfg, db); err != nil {
		_ = database.Close(db)

		return nil, err
	}

	images, err := NewImageStore(ctx, cfg)
	if err != nil {
		_ = database.Close(db)

		return nil, err
	}

	opts := web.Options{DB: db, Images: images}
	if cfg.Webserver.LoginRateLimit.Enabled {
		if opts.LimiterStorage, err = limiterStorage(cfg); err != nil {
			_ = database.Close(db)

			return nil, err
		}
	}

	webService, err := web.New(cfg, opts)
	if err != nil {
		_ = database.Close(db)

		return nil, err //nolint:wrapcheck
	}

	log.Info().
		Str("db", cfg.DB.Engine).
		Str("images", cfg.Upload.Backend).
		Int("port", cfg.Webserver.Port).
		Msg("visa admin service ready")

	return &Daemon{cfg: cfg, webService: webService}, nil
}

// NewImageStore builds the configured country image backend.
func NewImageStore(ctx context.Context, cfg *config.Config) (upload.Store, error) {
	if cfg.Upload.Backend == config.UploadBackendMinIO {
		m := cfg.Upload.MinIO

		store, err := upload.NewMinIOStore(ctx, upload.MinIOConfig{
			Endpoint:  m.Endpoint,
			AccessKey: m.AccessKey,
			SecretKey: m.SecretKey,
			Bucket:    m.Bucket,
			UseSSL:    m.UseSSL,
			PublicURL: m.PublicURL,
			MaxSize:   cfg.Upload.MaxSize,
		})
		if err != nil {
			return nil, err //nolint:wrapcheck
		}

		return store, nil
	}

	store, err := upload.NewDiskStore(cfg.Upload.Dir, cfg.Upload.PublicPath, cfg.Upload.MaxSize)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}

	return store, nil
}

// limiterStorage shares the login counters through the catalog database.
// sqlite has no storage driver, the counters stay in process memory.
func limiterStorage(cfg *config.Config) (fiber.Storage, error) {
	if cfg.DB.Engine == config.EngineSQLite {
		return nil, nil //nolint:nilnil
	}

	uri, err := dsn.Create(cfg)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}

	if cfg.DB.Engine == config.EnginePostgres {
		return postgresstorage.New(postgresstorage.Config{
			ConnectionURI: uri,
			Table:         limiterTable,
		}), nil
	}

	return mysqlstorage.New(mysqlstorage.Config{
		ConnectionURI: uri,
		Table:         limiterTable,
	}), nil
}

// DB opens and migrates the configured database for the maintenance commands.
func DB(ctx context.Context, cfg *config.Config) (*gorm.DB, error) {
	db, err := database.Open(cfg)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}

	if err = schema.Migrate(ctx, db); err != nil {
		_ = database.Close(db)

		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return db, nil
}
