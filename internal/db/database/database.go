// Package database opens and closes the gorm handle shared by the repositories.
package database

import (
	"errors"
	"fmt"
	"strings"

	"github.com/glebarez/sqlite"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	gormmysql "gorm.io/driver/mysql"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/rizkyprovidervisa/visa-admin/internal/config"
	"github.com/rizkyprovidervisa/visa-admin/internal/db/dsn"
	"github.com/rizkyprovidervisa/visa-admin/internal/logger"
	gormadapter "github.com/rizkyprovidervisa/visa-admin/internal/logger/adapter/gorm"
)

// ErrNilConfig is returned by Open without a configuration.
var ErrNilConfig = errors.New("database config is nil")

// Dialector returns the gorm dialector for the configured engine.
func Dialector(cfg *config.Config) (gorm.Dialector, error) {
	source, err := dsn.Create(cfg)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}

	switch cfg.DB.Engine {
	case config.EnginePostgres:
		return gormpostgres.Open(source), nil
	case config.EngineSQLite:
		return sqlite.Open(source), nil
	default:
		return gormmysql.Open(source), nil
	}
}

// Open connects to the store. The handle is opened once at startup and handed to every repository.
func Open(cfg *config.Config) (*gorm.DB, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}

	dialector, err := Dialector(cfg)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: SQLLogger(cfg.Log),
		// deletes must never cascade, so no constraints are created for the parent columns
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect database: %w", err)
	}

	if cfg.DB.Engine == config.EngineSQLite {
		// sqlite allows a single writer
		sqlDB, err := db.DB()
		if err != nil {
			return nil, fmt.Errorf("failed to get sql handle: %w", err)
		}

		sqlDB.SetMaxOpenConns(1)
	}

	log.Info().Str("engine", cfg.DB.Engine).Str("host", cfg.DB.Host).Str("name", cfg.DB.Name).
		Msg("database connected")

	return db, nil
}

// SQLLogger returns the gorm logger for the log config. Every statement is
// traced when the service logs at trace level.
func SQLLogger(cfg logger.Log) gormlogger.Interface {
	l := gormadapter.New(cfg.SlowQueryThreshold)
	if strings.EqualFold(cfg.LogLevel, zerolog.TraceLevel.String()) {
		return l.LogMode(gormlogger.Info)
	}

	return l
}

// Close releases the connection pool behind db.
func Close(db *gorm.DB) error {
	if db == nil {
		return nil
	}

	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get sql handle: %w", err)
	}

	if err = sqlDB.Close(); err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}

	log.Info().Msg("database closed")

	return nil
}
