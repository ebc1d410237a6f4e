// Package gorm routes gorm's sql log through zerolog.
package gorm

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// DefaultSlowThreshold is used when no threshold was configured.
const DefaultSlowThreshold = 200 * time.Millisecond

// Logger implements gorm's logger.Interface on top of zerolog.
type Logger struct {
	// Log receives the events. Nil uses the global zerolog logger.
	Log           *zerolog.Logger
	Level         gormlogger.LogLevel
	SlowThreshold time.Duration
}

// New returns a gorm logger writing warnings and errors. Every sql statement
// is traced only after LogMode(Info) and while zerolog runs at trace level.
func New(slowThreshold time.Duration) *Logger {
	if slowThreshold <= 0 {
		slowThreshold = DefaultSlowThreshold
	}

	return &Logger{
		Level:         gormlogger.Warn,
		SlowThreshold: slowThreshold,
	}
}

func (l *Logger) logger() *zerolog.Logger {
	if l.Log != nil {
		return l.Log
	}

	return &log.Logger
}

// LogMode implements gormlogger.Interface.
func (l *Logger) LogMode(level gormlogger.LogLevel) gormlogger.Interface {
	n := *l
	n.Level = level

	return &n
}

// Info implements gormlogger.Interface.
func (l *Logger) Info(_ context.Context, msg string, data ...any) {
	if l.Level >= gormlogger.Info {
		l.logger().Info().Str("component", "gorm").Msg(fmt.Sprintf(msg, data...))
	}
}

// Warn implements gormlogger.Interface.
func (l *Logger) Warn(_ context.Context, msg string, data ...any) {
	if l.Level >= gormlogger.Warn {
		l.logger().Warn().Str("component", "gorm").Msg(fmt.Sprintf(msg, data...))
	}
}

// Error implements gormlogger.Interface.
func (l *Logger) Error(_ context.Context, msg string, data ...any) {
	if l.Level >= gormlogger.Error {
		l.logger().Error().Str("component", "gorm").Msg(fmt.Sprintf(msg, data...))
	}
}

// Trace implements gormlogger.Interface. Record not found is not an error here,
// the repositories turn it into their own not found errors.
func (l *Logger) Trace(_ context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.Level <= gormlogger.Silent {
		return
	}

	elapsed := time.Since(begin)
	zl := l.logger()

	switch {
	case err != nil && l.Level >= gormlogger.Error && !errors.Is(err, gorm.ErrRecordNotFound):
		sql, rows := fc()
		zl.Error().Err(err).Str("component", "gorm").
			Dur("elapsed", elapsed).Int64("rows", rows).Str("sql", sql).
			Msg("sql failed")
	case l.SlowThreshold > 0 && elapsed > l.SlowThreshold && l.Level >= gormlogger.Warn:
		sql, rows := fc()
		zl.Warn().Str("component", "gorm").
			Dur("elapsed", elapsed).Dur("threshold", l.SlowThreshold).Int64("rows", rows).Str("sql", sql).
			Msg("slow sql")
	case l.Level >= gormlogger.Info && zl.GetLevel() <= zerolog.TraceLevel && zerolog.GlobalLevel() <= zerolog.TraceLevel:
		sql, rows := fc()
		zl.Trace().Str("component", "gorm").
			Dur("elapsed", elapsed).Int64("rows", rows).Str("sql", sql).
			Msg("sql")
	}
}
