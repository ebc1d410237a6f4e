package visacategory

import (
	"context"
	"net/http"
	"strconv"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ctrl "github.com/rizkyprovidervisa/visa-admin/internal/db/controller/visacategory"
	"github.com/rizkyprovidervisa/visa-admin/internal/db/controller/visatype"
	"github.com/rizkyprovidervisa/visa-admin/internal/db/dbtest"
	"github.com/rizkyprovidervisa/visa-admin/internal/db/models"
	"github.com/rizkyprovidervisa/visa-admin/internal/web/handler"
	ht "github.com/rizkyprovidervisa/visa-admin/internal/web/handler/handlertest"
)

func newApp(repo ctrl.Repository) *fiber.App {
	app := fiber.New()
	New(repo).Register(app.Group("/api"), ht.Gate())

	return app
}

func TestVisaCategoryCRUD(t *testing.T) {
	db := dbtest.New(t)
	app := newApp(ctrl.New(db))
	token := ht.Token(t)

	tourist, err := visatype.Create(context.Background(), db, models.VisaType{CountryID: 1, Name: "Tourist"})
	require.NoError(t, err)

	vt := strconv.FormatUint(tourist, 10)

	resp := ht.Do(t, app, http.MethodPost, "/api/visa-categories", `{"visa_type_id":"`+vt+`","name":"Single Entry"}`, token)
	require.Equal(t, http.StatusOK, resp.Status, string(resp.Body))

	var created handler.CreatedResponse
	resp.JSON(t, &created)
	assert.Equal(t, MsgCreated, created.Message)

	resp = ht.Do(t, app, http.MethodPost, "/api/visa-categories", `{"visa_type_id":`+vt+`,"name":"Multiple Entry"}`, token)
	require.Equal(t, http.StatusOK, resp.Status, string(resp.Body))

	var rows []models.VisaCategoryRow
	resp = ht.Do(t, app, http.MethodGet, "/api/visa-categories?visa_type_id="+vt, "", "")
	require.Equal(t, http.StatusOK, resp.Status)
	resp.JSON(t, &rows)
	require.Len(t, rows, 2)
	assert.Equal(t, "Multiple Entry", rows[0].Name)
	require.NotNil(t, rows[0].VisaTypeName)
	assert.Equal(t, "Tourist", *rows[0].VisaTypeName)

	target := "/api/visa-categories/" + strconv.FormatUint(created.ID, 10)
	resp = ht.Do(t, app, http.MethodPut, target, `{"visa_type_id":`+vt+`,"name":"Single Entry 30 days"}`, token)
	require.Equal(t, http.StatusOK, resp.Status, string(resp.Body))
	assert.Equal(t, MsgUpdated, resp.Message(t))

	resp = ht.Do(t, app, http.MethodDelete, target, "", token)
	require.Equal(t, http.StatusOK, resp.Status)

	// deleting the visa type leaves the category as orphan
	require.NoError(t, visatype.Delete(context.Background(), db, tourist))

	rows = nil
	resp = ht.Do(t, app, http.MethodGet, "/api/visa-categories", "", "")
	resp.JSON(t, &rows)
	require.Len(t, rows, 1)
	assert.Equal(t, "Multiple Entry", rows[0].Name)
	assert.Nil(t, rows[0].VisaTypeName)
}

func TestVisaCategoryRejections(t *testing.T) {
	app := newApp(ctrl.New(dbtest.New(t)))
	token := ht.Token(t)

	tests := []struct {
		name       string
		method     string
		target     string
		body       string
		token      string
		wantStatus int
	}{
		{name: "create without token", method: http.MethodPost, target: "/api/visa-categories", body: `{"visa_type_id":1,"name":"x"}`, wantStatus: http.StatusUnauthorized},
		{name: "missing visa type", method: http.MethodPost, target: "/api/visa-categories", body: `{"name":"x"}`, token: token, wantStatus: http.StatusBadRequest},
		{name: "bad filter", method: http.MethodGet, target: "/api/visa-categories?visa_type_id=-1", wantStatus: http.StatusBadRequest},
		{name: "empty filter lists all", method: http.MethodGet, target: "/api/visa-categories?visa_type_id=", wantStatus: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := ht.Do(t, app, tt.method, tt.target, tt.body, tt.token)
			assert.Equal(t, tt.wantStatus, resp.Status, string(resp.Body))
		})
	}
}
