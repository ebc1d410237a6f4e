package visatype

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/rizkyprovidervisa/visa-admin/internal/db/controller/country"
	ctrl "github.com/rizkyprovidervisa/visa-admin/internal/db/controller/visatype"
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

func seedCountry(t *testing.T, db *gorm.DB, name string) uint64 {
	t.Helper()

	id, err := country.Create(context.Background(), db, country.Fields{Name: name, Code: "XX"}, nil)
	require.NoError(t, err)

	return id
}

func TestVisaTypeCRUD(t *testing.T) {
	db := dbtest.New(t)
	app := newApp(ctrl.New(db))
	token := ht.Token(t)

	japan := seedCountry(t, db, "Japan")
	korea := seedCountry(t, db, "Korea")
	jp := strconv.FormatUint(japan, 10)

	// ids arrive as numbers and as strings
	resp := ht.Do(t, app, http.MethodPost, "/api/visa-types", `{"country_id":`+jp+`,"name":"Tourist"}`, token)
	require.Equal(t, http.StatusOK, resp.Status, string(resp.Body))

	var created handler.CreatedResponse
	resp.JSON(t, &created)
	assert.Equal(t, MsgCreated, created.Message)

	resp = ht.Do(t, app, http.MethodPost, "/api/visa-types", `{"country_id":"`+jp+`","name":"Business"}`, token)
	require.Equal(t, http.StatusOK, resp.Status, string(resp.Body))

	var rows []models.VisaTypeRow
	resp = ht.Do(t, app, http.MethodGet, "/api/visa-types?country_id="+jp, "", "")
	require.Equal(t, http.StatusOK, resp.Status)
	resp.JSON(t, &rows)
	require.Len(t, rows, 2)
	assert.Equal(t, "Business", rows[0].Name)
	assert.Equal(t, "Tourist", rows[1].Name)
	require.NotNil(t, rows[0].CountryName)
	assert.Equal(t, "Japan", *rows[0].CountryName)

	// move Tourist to Korea
	target := "/api/visa-types/" + strconv.FormatUint(created.ID, 10)
	resp = ht.Do(t, app, http.MethodPut, target, `{"country_id":`+strconv.FormatUint(korea, 10)+`,"name":"Tourist"}`, token)
	require.Equal(t, http.StatusOK, resp.Status, string(resp.Body))
	assert.Equal(t, MsgUpdated, resp.Message(t))

	rows = nil
	resp = ht.Do(t, app, http.MethodGet, "/api/visa-types?country_id="+strconv.FormatUint(korea, 10), "", "")
	resp.JSON(t, &rows)
	require.Len(t, rows, 1)
	assert.Equal(t, created.ID, rows[0].ID)

	resp = ht.Do(t, app, http.MethodDelete, target, "", token)
	require.Equal(t, http.StatusOK, resp.Status)
	assert.Equal(t, MsgDeleted, resp.Message(t))

	rows = nil
	resp = ht.Do(t, app, http.MethodGet, "/api/visa-types", "", "")
	resp.JSON(t, &rows)
	require.Len(t, rows, 1)
	assert.Equal(t, "Business", rows[0].Name)
}

func TestVisaTypeOrphanStaysVisible(t *testing.T) {
	db := dbtest.New(t)
	app := newApp(ctrl.New(db))

	japan := seedCountry(t, db, "Japan")
	_, err := ctrl.Create(context.Background(), db, models.VisaType{CountryID: japan, Name: "Tourist"})
	require.NoError(t, err)
	require.NoError(t, country.Delete(context.Background(), db, japan))

	var rows []models.VisaTypeRow
	resp := ht.Do(t, app, http.MethodGet, "/api/visa-types", "", "")
	require.Equal(t, http.StatusOK, resp.Status)
	resp.JSON(t, &rows)
	require.Len(t, rows, 1)
	assert.Nil(t, rows[0].CountryName)
}

func TestVisaTypeEmptyFilter(t *testing.T) {
	app := newApp(ctrl.New(dbtest.New(t)))

	resp := ht.Do(t, app, http.MethodGet, "/api/visa-types?country_id=42", "", "")
	require.Equal(t, http.StatusOK, resp.Status)
	assert.JSONEq(t, `[]`, string(resp.Body))
}

func TestVisaTypeRejections(t *testing.T) {
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
		{name: "create without token", method: http.MethodPost, target: "/api/visa-types", body: `{"country_id":1,"name":"Tourist"}`, wantStatus: http.StatusUnauthorized},
		{name: "update with bad token", method: http.MethodPut, target: "/api/visa-types/1", body: `{"country_id":1,"name":"Tourist"}`, token: "x.y.z", wantStatus: http.StatusForbidden},
		{name: "missing country", method: http.MethodPost, target: "/api/visa-types", body: `{"name":"Tourist"}`, token: token, wantStatus: http.StatusBadRequest},
		{name: "country not a number", method: http.MethodPost, target: "/api/visa-types", body: `{"country_id":"japan","name":"Tourist"}`, token: token, wantStatus: http.StatusBadRequest},
		{name: "missing name", method: http.MethodPost, target: "/api/visa-types", body: `{"country_id":1}`, token: token, wantStatus: http.StatusBadRequest},
		{name: "bad filter", method: http.MethodGet, target: "/api/visa-types?country_id=abc", wantStatus: http.StatusBadRequest},
		{name: "bad id", method: http.MethodDelete, target: "/api/visa-types/abc", token: token, wantStatus: http.StatusBadRequest},
		{name: "unknown id", method: http.MethodDelete, target: "/api/visa-types/999", token: token, wantStatus: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := ht.Do(t, app, tt.method, tt.target, tt.body, tt.token)
			assert.Equal(t, tt.wantStatus, resp.Status, string(resp.Body))
		})
	}
}

type brokenRepo struct{ ctrl.Repository }

func (brokenRepo) List(context.Context, *uint64) ([]models.VisaTypeRow, error) {
	return nil, errors.New("table visa_types is locked")
}

func TestVisaTypeStoreFailure(t *testing.T) {
	app := newApp(brokenRepo{})

	resp := ht.Do(t, app, http.MethodGet, "/api/visa-types", "", "")
	assert.Equal(t, http.StatusInternalServerError, resp.Status)
	assert.Equal(t, MsgListFailed, resp.Message(t))
}
