package fiber_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	adapter "github.com/rizkyprovidervisa/visa-admin/internal/logger/adapter/fiber"

	"github.com/rizkyprovidervisa/visa-admin/internal/logger"
)

// expectedLoggerJSONFormat implements loggers default json format.
type expectedLoggerJSONFormat struct {
	IP            net.IP    `json:"IP"`
	Status        int       `json:"status"`
	XPerformance  float32   `json:"X-Performance"`
	URI           string    `json:"URI"`
	Method        string    `json:"method"`
	Host          string    `json:"host"`
	XForwardedFor string    `json:"X-Forwarded-For"`
	UserAgent     string    `json:"User-Agent"`
	User          string    `json:"user"`
	Time          time.Time `json:"time"`
}

func consoleConfig() adapter.Config {
	return adapter.Config{
		Config: logger.Log{
			EnableAccessLogToConsole: true,
			DisableCheckAlive:        true,
			DisableMetrics:           true,
			Console:                  logger.Console{Enabled: true},
		},
		CheckAliveURI: "/checkalive",
		MetricsURI:    "/metrics",
		UserLocal:     "admin",
	}
}

func TestNew(t *testing.T) {
	type arguments struct {
		config     adapter.Config
		targetPath string
	}

	tests := []struct {
		name string
		args arguments
		want *expectedLoggerJSONFormat
	}{
		{
			name: "empty no output at all",
			args: arguments{targetPath: "/api/countries"},
			want: nil,
		},
		{
			name: "get countries log to console json",
			args: arguments{targetPath: "/api/countries", config: consoleConfig()},
			want: &expectedLoggerJSONFormat{
				IP:     net.ParseIP("0.0.0.0"),
				Status: fiber.StatusOK,
				URI:    "/api/countries",
				Method: fiber.MethodGet,
				Host:   "example.com",
			},
		},
		{
			name: "query string is kept",
			args: arguments{targetPath: "/api/visa-types?country_id=3", config: consoleConfig()},
			want: &expectedLoggerJSONFormat{
				IP:     net.ParseIP("0.0.0.0"),
				Status: fiber.StatusOK,
				URI:    "/api/visa-types?country_id=3",
				Method: fiber.MethodGet,
				Host:   "example.com",
			},
		},
		{
			name: "unknown path logs 404",
			args: arguments{targetPath: "/api/unknown", config: consoleConfig()},
			want: &expectedLoggerJSONFormat{
				IP:     net.ParseIP("0.0.0.0"),
				Status: fiber.StatusNotFound,
				URI:    "/api/unknown",
				Method: fiber.MethodGet,
				Host:   "example.com",
			},
		},
		{
			name: "authenticated admin is logged",
			args: arguments{targetPath: "/api/dashboard/stats", config: consoleConfig()},
			want: &expectedLoggerJSONFormat{
				IP:     net.ParseIP("0.0.0.0"),
				Status: fiber.StatusOK,
				URI:    "/api/dashboard/stats",
				Method: fiber.MethodGet,
				Host:   "example.com",
				User:   "admin",
			},
		},
		{
			name: "check alive is not logged",
			args: arguments{targetPath: "/checkalive", config: consoleConfig()},
			want: nil,
		},
		{
			name: "metrics scrape is not logged",
			args: arguments{targetPath: "/metrics", config: consoleConfig()},
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output, err := testMiddlewareHelper(t, tt.args.targetPath, tt.args.config)
			require.NoError(t, err)

			if tt.want == nil {
				assert.Empty(t, output)

				return
			}

			require.NotEmpty(t, output)

			var decodedOutput expectedLoggerJSONFormat
			require.NoError(t, json.Unmarshal([]byte(output), &decodedOutput))

			assert.Equal(t, tt.want.Host, decodedOutput.Host)
			assert.Equal(t, tt.want.Method, decodedOutput.Method)
			assert.Equal(t, tt.want.Status, decodedOutput.Status)
			assert.Equal(t, tt.want.IP, decodedOutput.IP)
			assert.Equal(t, tt.want.URI, decodedOutput.URI)
			assert.Equal(t, tt.want.User, decodedOutput.User)
		})
	}
}

func testMiddlewareHelper(t *testing.T, targetPath string, adapterConfig adapter.Config) (string, error) {
	t.Helper()

	stdout := os.Stdout
	stderr := os.Stderr

	// capture stdout
	r, w, _ := os.Pipe()
	os.Stdout = w
	os.Stderr = w

	app := fiber.New(fiber.Config{
		CaseSensitive: true,
		Immutable:     true,
	})

	app.Use(adapter.New(adapterConfig))

	ok := func(ctx *fiber.Ctx) error {
		return ctx.SendString("ok")
	}

	app.Get("/api/countries", ok)
	app.Get("/api/visa-types", ok)
	app.Get("/checkalive", ok)
	app.Get("/metrics", ok)
	app.Get("/api/dashboard/stats", func(ctx *fiber.Ctx) error {
		ctx.Locals("admin", "admin")

		return ctx.Next()
	}, ok)

	_, err := app.Test(httptest.NewRequest(fiber.MethodGet, targetPath, nil), 100000)

	outC := make(chan string)
	// copy the output in a separate goroutine so printing can't block indefinitely
	go func() {
		var buf bytes.Buffer
		_, _ = io.Copy(&buf, r)
		outC <- buf.String()
	}()

	_ = w.Close()
	os.Stdout = stdout
	os.Stderr = stderr
	out := <-outC

	return out, err
}
