// Package logger sets up the global zerolog logger of the visa admin service.
package logger

import (
	"fmt"
	"io"
	"os"
	"path"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/rs/zerolog/pkgerrors"
	"gopkg.in/natefinch/lumberjack.v2"
)

// LevelWriter implements a struct to split logs by info and error and up level.
// See func WriteLevel about the separation.
type LevelWriter struct {
	io.Writer
	ErrorWriter io.Writer
	InfoWriter  io.Writer
	TraceWriter io.Writer
	WarnWriter  io.Writer
}

// WriteLevel splits logging by level and links the pointer to the target output depending on the logger defined.
func (lw *LevelWriter) WriteLevel(l zerolog.Level, p []byte) (n int, err error) {
	var w io.Writer

	// disabled logging
	if l == zerolog.Disabled {
		return 0, nil
	}

	switch {
	case l == zerolog.TraceLevel:
		w = lw.TraceWriter
	case l == zerolog.WarnLevel:
		w = lw.WarnWriter
	case l > zerolog.WarnLevel: // error and fatal panic go to error
		w = lw.ErrorWriter
	default:
		w = lw.InfoWriter // debug and info go to info
	}

	return w.Write(p) //nolint:wrapcheck
}

// Init the zerolog logger.
// Depending on the config it enables all, some or no logger at all.
func Init(cfg Log) error {
	var (
		logLevel, err = zerolog.ParseLevel(cfg.LogLevel)
		writers       []io.Writer
		stack         bool
	)

	if err != nil {
		return errors.Wrap(err, fmt.Sprintf("loglevel %s is not supported", cfg.LogLevel))
	}

	if cfg.ServiceName == "" {
		return ErrServiceNameIsEmpty
	}

	if cfg.AppName == "" {
		return ErrAppNameIsEmpty
	}

	// use zerolog stack marshal func if trace level is set
	if logLevel == zerolog.TraceLevel {
		zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack //nolint:reassign
		stack = true
	}

	zerolog.SetGlobalLevel(logLevel)
	zerolog.ErrorHandler = ErrorHandler //nolint:reassign

	ph := NewPrometheusHook(cfg.ServiceName)

	if cfg.Console.Enabled {
		writers = append(writers, NewConsoleWriter(cfg))
	}

	if cfg.File.Enabled {
		fw, err := newRollingLevelFile(cfg.File)
		if err != nil {
			return err
		}

		writers = append(writers, fw)
	}

	ctx := zerolog.New(zerolog.MultiLevelWriter(writers...)).Hook(ph).With().
		Timestamp().
		Str("app", cfg.AppName)

	switch {
	case cfg.ReportCaller && stack:
		ctx = ctx.Stack()
	case cfg.ReportCaller:
		ctx = ctx.Caller()
	}

	log.Logger = ctx.Logger()

	return nil
}

// rollingFile returns a size rotated log file below dir.
func rollingFile(dir, name string, maxSize, maxAge, maxBackups int) *lumberjack.Logger {
	return &lumberjack.Logger{
		Filename:   path.Join(dir, name),
		MaxSize:    maxSize,
		MaxAge:     maxAge,
		MaxBackups: maxBackups,
		LocalTime:  false,
		Compress:   false,
	}
}

// newRollingLevelFile uses LevelWriter and lumberjack to split the log into one file per level group.
func newRollingLevelFile(f LogFile) (io.Writer, error) {
	if err := os.MkdirAll(f.Path, 0o750); err != nil { //nolint:mnd
		return nil, errors.Wrapf(err, "can't create log directory %s", f.Path)
	}

	return &LevelWriter{
		ErrorWriter: rollingFile(f.Path, f.ErrorLog, f.ErrorMaxSize, f.ErrorMaxAge, f.ErrorMaxBackups),
		InfoWriter:  rollingFile(f.Path, f.InfoLog, f.InfoMaxSize, f.InfoMaxAge, f.InfoMaxBackups),
		TraceWriter: rollingFile(f.Path, f.TraceLog, f.TraceMaxSize, f.TraceMaxAge, f.TraceMaxBackups),
		WarnWriter:  rollingFile(f.Path, f.WarnLog, f.WarnMaxSize, f.WarnMaxAge, f.WarnMaxBackups),
	}, nil
}

// NewAccessFile returns the rolling file the http access log is written to.
func NewAccessFile(f LogFile) (io.Writer, error) {
	if f.Path != "" {
		if err := os.MkdirAll(f.Path, 0o750); err != nil { //nolint:mnd
			return nil, errors.Wrapf(err, "can't create log directory %s", f.Path)
		}
	}

	return rollingFile(f.Path, f.AccessLog, f.AccessMaxSize, f.AccessMaxAge, f.AccessMaxBackups), nil
}

// consoleOut wraps out into a zerolog.ConsoleWriter when human readable output is wanted.
func consoleOut(out io.Writer, pretty bool) io.Writer {
	if !pretty {
		return out
	}

	return zerolog.ConsoleWriter{
		Out:        out,
		NoColor:    false,
		TimeFormat: zerolog.TimeFieldFormat,
	}
}

// NewConsoleWriter creates the console writer. Info and debug go to stdout, everything else to stderr.
func NewConsoleWriter(cfg Log) io.Writer {
	pretty := cfg.Console.UseConsoleWriter

	return &LevelWriter{
		ErrorWriter: consoleOut(os.Stderr, pretty),
		InfoWriter:  consoleOut(os.Stdout, pretty),
		TraceWriter: consoleOut(os.Stderr, pretty),
		WarnWriter:  consoleOut(os.Stderr, pretty),
	}
}
