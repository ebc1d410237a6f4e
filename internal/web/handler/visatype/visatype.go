// Package visatype implements the visa type endpoints of the catalog api.
package visatype

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	ctrl "github.com/rizkyprovidervisa/visa-admin/internal/db/controller/visatype"
	"github.com/rizkyprovidervisa/visa-admin/internal/db/models"
	"github.com/rizkyprovidervisa/visa-admin/internal/web/handler"
)

const (
	// Path is the path of the visa type routes below /api.
	Path = "/visa-types"

	// FilterParam narrows the list to one country.
	FilterParam = "country_id"

	entity = "visa_type"
)

// Answers of the visa type routes.
const (
	MsgListFailed   = "Error fetching visa types"
	MsgInvalidQuery = "Invalid country_id"
	MsgCreated      = "Visa type created successfully"
	MsgCreateFailed = "Error creating visa type"
	MsgUpdated      = "Visa type updated successfully"
	MsgUpdateFailed = "Error updating visa type"
	MsgDeleted      = "Visa type deleted successfully"
	MsgDeleteFailed = "Error deleting visa type"
)

// Request is the create and update body.
type Request struct {
	CountryID handler.ID `json:"country_id" validate:"required"`
	Name      string     `json:"name" validate:"required,max=100"`
}

func (r *Request) model() models.VisaType {
	return models.VisaType{CountryID: uint64(r.CountryID), Name: r.Name}
}

// Service is the visa type handler service.
type Service struct {
	repo      ctrl.Repository
	validator *handler.XValidator
}

// New creates the visa type service.
func New(repo ctrl.Repository) *Service {
	return &Service{repo: repo, validator: handler.NewValidator()}
}

// Register adds the visa type routes.
func (s *Service) Register(router fiber.Router, gate fiber.Handler) {
	router.Route(Path, func(r fiber.Router) {
		r.Get(handler.RootPath, s.List)
		r.Post(handler.RootPath, gate, s.Create)
		r.Put(handler.IDPath, gate, s.Update)
		r.Delete(handler.IDPath, gate, s.Delete)
	})
}

// List answers the visa types, optionally of one country, with the country name.
func (s *Service) List(c *fiber.Ctx) error {
	countryID, err := handler.QueryID(c, FilterParam)
	if err != nil {
		return handler.Message(c, fiber.StatusBadRequest, MsgInvalidQuery)
	}

	rows, err := s.repo.List(c.UserContext(), countryID)
	if err != nil {
		return handler.StoreError(c, err, MsgListFailed)
	}

	return c.JSON(rows)
}

// Create adds a visa type.
func (s *Service) Create(c *fiber.Ctx) error {
	req, ok, err := s.parse(c)
	if !ok {
		return err
	}

	id, err := s.repo.Create(c.UserContext(), req.model())
	if err != nil {
		return handler.StoreError(c, err, MsgCreateFailed)
	}

	handler.Mutated(c, entity, handler.ActionCreate, strconv.FormatUint(id, 10))

	return handler.Created(c, id, MsgCreated)
}

// Update replaces the country and name of a visa type.
func (s *Service) Update(c *fiber.Ctx) error {
	id, ok := handler.ParseID(c)
	if !ok {
		return handler.Message(c, fiber.StatusBadRequest, handler.MsgInvalidID)
	}

	req, ok, err := s.parse(c)
	if !ok {
		return err
	}

	if err := s.repo.Update(c.UserContext(), id, req.model()); err != nil {
		return handler.StoreError(c, err, MsgUpdateFailed)
	}

	handler.Mutated(c, entity, handler.ActionUpdate, strconv.FormatUint(id, 10))

	return handler.Message(c, fiber.StatusOK, MsgUpdated)
}

// Delete removes a visa type. Its categories are kept.
func (s *Service) Delete(c *fiber.Ctx) error {
	id, ok := handler.ParseID(c)
	if !ok {
		return handler.Message(c, fiber.StatusBadRequest, handler.MsgInvalidID)
	}

	if err := s.repo.Delete(c.UserContext(), id); err != nil {
		return handler.StoreError(c, err, MsgDeleteFailed)
	}

	handler.Mutated(c, entity, handler.ActionDelete, strconv.FormatUint(id, 10))

	return handler.Message(c, fiber.StatusOK, MsgDeleted)
}

func (s *Service) parse(c *fiber.Ctx) (*Request, bool, error) {
	req := new(Request)
	if err := c.BodyParser(req); err != nil {
		return nil, false, handler.Message(c, fiber.StatusBadRequest, handler.MsgInvalidBody)
	}

	ok, err := s.validator.Check(c, req)

	return req, ok, err
}
