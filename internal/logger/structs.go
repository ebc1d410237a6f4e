package logger

import "time"

// Console implements a console based logger.
type Console struct {
	Enabled          bool `toml:"enabled"`
	UseConsoleWriter bool
}

// LogFile implements a file based logger.
type LogFile struct {
	// Legacy non docker env file logging.
	Enabled bool   `toml:"enabled"`
	Path    string `toml:"path"`

	AccessLog        string `toml:"access"`
	AccessMaxSize    int    `toml:"accessMaxSize"`
	AccessMaxBackups int    `toml:"accessMaxBackups"`
	AccessMaxAge     int    `toml:"accessMaxAge"`

	ErrorLog        string `toml:"error"`
	ErrorMaxSize    int    `toml:"errorMaxSize"`
	ErrorMaxBackups int    `toml:"errorMaxBackups"`
	ErrorMaxAge     int    `toml:"errorMaxAge"`

	InfoLog        string `toml:"info"`
	InfoMaxSize    int    `toml:"infoMaxSize"`
	InfoMaxBackups int    `toml:"infoMaxBackups"`
	InfoMaxAge     int    `toml:"infoMaxAge"`

	TraceLog        string `toml:"trace"`
	TraceMaxSize    int    `toml:"traceMaxSize"`
	TraceMaxBackups int    `toml:"traceMaxBackups"`
	TraceMaxAge     int    `toml:"traceMaxAge"`

	WarnLog        string `toml:"warn"`
	WarnMaxSize    int    `toml:"warnMaxSize"`
	WarnMaxBackups int    `toml:"warnMaxBackups"`
	WarnMaxAge     int    `toml:"warnMaxAge"`
}

// Log implements the logger config.
type Log struct {
	LogLevel string // info, warn, error.
	LogEnv   string

	// EnableAccessLogToConsole writes the http access log to stdout.
	// Console.Enabled must be true as well.
	EnableAccessLogToConsole bool
	ReportCaller             bool
	DisableCheckAlive        bool // do not log /checkalive calls
	DisableMetrics           bool // do not log /metrics scrapes

	// SlowQueryThreshold marks sql statements as slow in the gorm log. 0 uses 200ms.
	SlowQueryThreshold time.Duration

	AppName     string
	ServiceName string

	// Console used mainly for docker and dev.
	Console Console

	// Legacy non docker env file logging.
	File LogFile `toml:"file"`
}
