// Package settings implements the site settings endpoints.
package settings

import (
	"encoding/json"
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/rizkyprovidervisa/visa-admin/internal/db/controller/setting"
	"github.com/rizkyprovidervisa/visa-admin/internal/web/handler"
)

const (
	// Path is the path of the settings routes below /api.
	Path = "/settings"

	// MaxKeyLength is the size of the setting_key column.
	MaxKeyLength = 100

	entity = "setting"
)

// Answers of the settings routes.
const (
	MsgListFailed   = "Error fetching settings"
	MsgUpdated      = "Settings updated successfully"
	MsgUpdateFailed = "Error updating settings"
)

// BatchResponse is the 500 body of a partly applied update.
type BatchResponse struct {
	Message string   `json:"message"`
	Failed  []string `json:"failed"`
	Updated []string `json:"updated"`
}

// Service is the settings handler service.
type Service struct {
	repo setting.Repository
}

// New creates the settings service.
func New(repo setting.Repository) *Service {
	return &Service{repo: repo}
}

// Register adds GET and PUT /settings.
func (s *Service) Register(router fiber.Router, gate fiber.Handler) {
	router.Route(Path, func(r fiber.Router) {
		r.Get(handler.RootPath, s.Get)
		r.Put(handler.RootPath, gate, s.Put)
	})
}

// Get answers every setting as flat map. An empty store answers {}.
func (s *Service) Get(c *fiber.Ctx) error {
	values, err := s.repo.All(c.UserContext())
	if err != nil {
		return handler.StoreError(c, err, MsgListFailed)
	}

	return c.JSON(values)
}

// Put upserts every key of the body. Keys not in the body are left alone.
func (s *Service) Put(c *fiber.Ctx) error {
	var body map[string]any
	if err := json.Unmarshal(c.Body(), &body); err != nil || body == nil {
		return handler.Message(c, fiber.StatusBadRequest, handler.MsgInvalidBody)
	}

	values, rejected := normalize(body)
	if len(rejected) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(handler.ValidationResponse{
			Message: handler.MsgValidationFailed,
			Errors:  rejected,
		})
	}

	applied, err := s.repo.SetMany(c.UserContext(), values)

	var batch *setting.BatchError

	switch {
	case errors.As(err, &batch):
		log.Error().Err(err).Strs("applied", batch.Applied).Msg(MsgUpdateFailed)

		return c.Status(fiber.StatusInternalServerError).JSON(BatchResponse{
			Message: MsgUpdateFailed,
			Failed:  batch.Failed,
			Updated: batch.Applied,
		})
	case err != nil:
		return handler.StoreError(c, err, MsgUpdateFailed)
	}

	for _, key := range applied {
		handler.Mutated(c, entity, handler.ActionUpdate, key)
	}

	return handler.Message(c, fiber.StatusOK, MsgUpdated)
}

// normalize turns the json values into the stored text. Strings are kept,
// numbers and booleans are written as their json text, null is stored empty.
// Objects and arrays are rejected.
func normalize(body map[string]any) (map[string]string, []handler.ErrorResponse) {
	var (
		values   = make(map[string]string, len(body))
		rejected []handler.ErrorResponse
	)

	for k, v := range body {
		if k == "" || len(k) > MaxKeyLength {
			rejected = append(rejected, handler.ErrorResponse{FailedField: k, Tag: "key", Value: v})

			continue
		}

		switch val := v.(type) {
		case string:
			values[k] = val
		case float64:
			values[k] = strconv.FormatFloat(val, 'f', -1, 64)
		case bool:
			values[k] = strconv.FormatBool(val)
		case nil:
			values[k] = ""
		default:
			rejected = append(rejected, handler.ErrorResponse{FailedField: k, Tag: "scalar", Value: v})
		}
	}

	return values, rejected
}
