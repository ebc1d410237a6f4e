// Package handlertest has request helpers shared by the api handler tests.
package handlertest

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"

	"github.com/rizkyprovidervisa/visa-admin/internal/auth"
)

// Secret signs the tokens of Token and Gate.
const Secret = "handler-test-secret"

// Token returns a valid bearer token for the admin "admin".
func Token(t *testing.T) string {
	t.Helper()

	token, err := auth.Issue(Secret, 1, "admin", time.Hour, time.Now())
	require.NoError(t, err)

	return token
}

// Gate is the bearer middleware matching Token.
func Gate() fiber.Handler {
	return auth.RequireBearer(Secret)
}

// Response is a finished test request.
type Response struct {
	Status int
	Body   []byte
}

// JSON decodes the body into v.
func (r Response) JSON(t *testing.T, v any) {
	t.Helper()

	require.NoError(t, json.Unmarshal(r.Body, v), string(r.Body))
}

// Message returns the "message" member of a json object body.
func (r Response) Message(t *testing.T) string {
	t.Helper()

	var m struct {
		Message string `json:"message"`
	}
	r.JSON(t, &m)

	return m.Message
}

// Do sends a request with an optional json body and bearer token.
func Do(t *testing.T, app *fiber.App, method, target, body, token string) Response {
	t.Helper()

	var r io.Reader
	if body != "" {
		r = bytes.NewBufferString(body)
	}

	req := httptest.NewRequest(method, target, r)
	if body != "" {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}

	return send(t, app, req, token)
}

// File is a multipart file part.
type File struct {
	Field string
	Name  string
	Body  []byte
}

// Multipart sends fields and files as multipart/form-data.
func Multipart(t *testing.T, app *fiber.App, method, target string, fields map[string]string, file *File, token string) Response {
	t.Helper()

	var buf bytes.Buffer

	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}

	if file != nil {
		fw, err := w.CreateFormFile(file.Field, file.Name)
		require.NoError(t, err)

		_, err = fw.Write(file.Body)
		require.NoError(t, err)
	}

	require.NoError(t, w.Close())

	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set(fiber.HeaderContentType, w.FormDataContentType())

	return send(t, app, req, token)
}

func send(t *testing.T, app *fiber.App, req *http.Request, token string) Response {
	t.Helper()

	if token != "" {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	return Response{Status: resp.StatusCode, Body: raw}
}
