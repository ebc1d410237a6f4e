// Package fiber implements the zerolog http access log middleware.
package fiber

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/rizkyprovidervisa/visa-admin/internal/logger"
)

// Config implements fiber middleware struct.
type Config struct {
	// Next defines a function to skip this middleware when returned true.
	//
	// Optional. Default: nil
	Next func(c *fiber.Ctx) bool

	// Config of the logger.
	Config logger.Log

	// CacheControlError max-age caching on chain errors.
	CacheControlError string

	// CheckAliveURI for disabling logging of check alive http calls.
	CheckAliveURI string

	// MetricsURI for disabling logging of prometheus scrapes.
	MetricsURI string

	// UserLocal is the fiber.Ctx locals key holding the authenticated admin name.
	// The value must be a string. Empty disables the field.
	UserLocal string
}

// ConfigDefault is the default config for fiber.
var ConfigDefault = Config{ //nolint:gochecknoglobals
	Next:              nil,
	CacheControlError: "max-age=0",
}

func configDefault(config ...Config) Config {
	if len(config) < 1 {
		return ConfigDefault
	}

	cfg := config[0]

	if cfg.CacheControlError == "" {
		cfg.CacheControlError = ConfigDefault.CacheControlError
	}

	return cfg
}

// accessWriters collects the enabled access log targets.
func accessWriters(cfg logger.Log) []io.Writer {
	var writers []io.Writer

	if cfg.File.Enabled {
		fw, err := logger.NewAccessFile(cfg.File)
		if err != nil {
			log.Error().Err(err).Msg("access log file disabled")
		} else {
			writers = append(writers, fw)
		}
	}

	// console access log needs the general console output as well
	if cfg.Console.Enabled && cfg.EnableAccessLogToConsole {
		if cfg.Console.UseConsoleWriter {
			writers = append(writers, zerolog.ConsoleWriter{
				Out:          os.Stdout,
				NoColor:      false,
				TimeFormat:   zerolog.TimeFieldFormat,
				PartsExclude: []string{"level"},
			})
		} else {
			writers = append(writers, os.Stdout)
		}
	}

	return writers
}

// skip reports whether the request path must not be logged.
func (cfg Config) skip(path string) bool {
	if cfg.Config.DisableCheckAlive && cfg.CheckAliveURI != "" && path == cfg.CheckAliveURI {
		return true
	}

	return cfg.Config.DisableMetrics && cfg.MetricsURI != "" && path == cfg.MetricsURI
}

// New creates a new fiber access logging middleware using zerolog.
func New(config ...Config) fiber.Handler {
	var (
		cfg        = configDefault(config...)
		once       sync.Once
		errHandler fiber.ErrorHandler
	)

	accessLogger := zerolog.New(zerolog.MultiLevelWriter(accessWriters(cfg.Config)...)).
		With().
		Timestamp().
		Logger().
		Level(zerolog.NoLevel)

	return func(ctx *fiber.Ctx) error {
		if cfg.Next != nil && cfg.Next(ctx) {
			return ctx.Next()
		}

		once.Do(func() {
			errHandler = ctx.App().ErrorHandler
		})

		start := time.Now()

		chainErr := ctx.Next()
		if chainErr != nil {
			if errH := errHandler(ctx, chainErr); errH != nil {
				_ = ctx.SendStatus(fiber.StatusInternalServerError) //nolint:errcheck // ok here
				ctx.Response().Header.Set(fiber.HeaderCacheControl, cfg.CacheControlError)
			}
		}

		elapsed := time.Since(start).Seconds()
		ctx.Response().Header.Set("X-Performance", fmt.Sprintf("%f", elapsed))

		if cfg.skip(ctx.Path()) {
			return nil
		}

		// fasthttp normalizes the path (//a becomes /a), the raw one is logged.
		p := ctx.Path()
		if qs := ctx.Request().URI().QueryString(); len(qs) > 0 {
			p = p + "?" + string(qs)
		}

		event := accessLogger.Log().Str("IP", ctx.IP()).
			Int("status", ctx.Response().StatusCode()).
			Float64("X-Performance", elapsed).
			Str("URI", p).
			Str("method", ctx.Method()).
			Bytes("host", ctx.Request().Host()).
			Str(fiber.HeaderXForwardedFor, ctx.Get(fiber.HeaderXForwardedFor)).
			Str(fiber.HeaderUserAgent, ctx.Get(fiber.HeaderUserAgent)).
			Str(fiber.HeaderOrigin, ctx.Get(fiber.HeaderOrigin)).
			Str(fiber.HeaderReferer, ctx.Get(fiber.HeaderReferer))

		if cfg.UserLocal != "" {
			if user, ok := ctx.Locals(cfg.UserLocal).(string); ok && user != "" {
				event.Str("user", user)
			}
		}

		if chainErr != nil {
			event.Err(chainErr)
		}

		event.Send()

		return nil
	}
}
