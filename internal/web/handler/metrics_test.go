package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rizkyprovidervisa/visa-admin/internal/web/handler"
	ht "github.com/rizkyprovidervisa/visa-admin/internal/web/handler/handlertest"
)

func captureLog(t *testing.T) *bytes.Buffer {
	t.Helper()

	prev, prevLevel := log.Logger, zerolog.GlobalLevel()
	t.Cleanup(func() {
		log.Logger = prev
		zerolog.SetGlobalLevel(prevLevel)
	})

	var buf bytes.Buffer
	log.Logger = zerolog.New(&buf)
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	return &buf
}

func TestMutatedLogsActingAdmin(t *testing.T) {
	buf := captureLog(t)

	app := fiber.New()
	app.Delete("/things/:id", ht.Gate(), func(c *fiber.Ctx) error {
		handler.Mutated(c, "thing", handler.ActionDelete, c.Params(handler.IDParam))

		return c.SendStatus(fiber.StatusNoContent)
	})

	resp := ht.Do(t, app, http.MethodDelete, "/things/7", "", ht.Token(t))
	require.Equal(t, http.StatusNoContent, resp.Status)

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "catalog changed", line["message"])
	assert.Equal(t, "thing", line["entity"])
	assert.Equal(t, handler.ActionDelete, line["action"])
	assert.Equal(t, "7", line["ref"])
	assert.Equal(t, "admin", line["admin"])
	assert.InDelta(t, 1, line["admin_id"], 0)
}

func TestMutatedWithoutClaims(t *testing.T) {
	buf := captureLog(t)

	app := fiber.New()
	app.Put("/settings", func(c *fiber.Ctx) error {
		handler.Mutated(c, "setting", handler.ActionUpdate, "site_name")

		return c.SendStatus(fiber.StatusNoContent)
	})

	resp := ht.Do(t, app, http.MethodPut, "/settings", "", "")
	require.Equal(t, http.StatusNoContent, resp.Status)

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "site_name", line["ref"])
	assert.NotContains(t, line, "admin")
}
