// Package visacategory implements the visa category endpoints of the catalog api.
package visacategory

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	ctrl "github.com/rizkyprovidervisa/visa-admin/internal/db/controller/visacategory"
	"github.com/rizkyprovidervisa/visa-admin/internal/db/models"
	"github.com/rizkyprovidervisa/visa-admin/internal/web/handler"
)

const (
	// Path is the path of the visa category routes below /api.
	Path = "/visa-categories"

	// FilterParam narrows the list to one visa type.
	FilterParam = "visa_type_id"

	entity = "visa_category"
)

// Answers of the visa category routes.
const (
	MsgListFailed   = "Error fetching visa categories"
	MsgInvalidQuery = "Invalid visa_type_id"
	MsgCreated      = "Visa category created successfully"
	MsgCreateFailed = "Error creating visa category"
	MsgUpdated      = "Visa category updated successfully"
	MsgUpdateFailed = "Error updating visa category"
	MsgDeleted      = "Visa category deleted successfully"
	MsgDeleteFailed = "Error deleting visa category"
)

// Request is the create and update body.
type Request struct {
	VisaTypeID handler.ID `json:"visa_type_id" validate:"required"`
	Name       string     `json:"name" validate:"required,max=100"`
}

func (r *Request) model() models.VisaCategory {
	return models.VisaCategory{VisaTypeID: uint64(r.VisaTypeID), Name: r.Name}
}

// Service is the visa category handler service.
type Service struct {
	repo      ctrl.Repository
	validator *handler.XValidator
}

// New creates the visa category service.
func New(repo ctrl.Repository) *Service {
	return &Service{repo: repo, validator: handler.NewValidator()}
}

// Register adds the visa category routes.
func (s *Service) Register(router fiber.Router, gate fiber.Handler) {
	router.Route(Path, func(r fiber.Router) {
		r.Get(handler.RootPath, s.List)
		r.Post(handler.RootPath, gate, s.Create)
		r.Put(handler.IDPath, gate, s.Update)
		r.Delete(handler.IDPath, gate, s.Delete)
	})
}

// List answers the visa categories, optionally of one visa type, with the visa type name.
func (s *Service) List(c *fiber.Ctx) error {
	visaTypeID, err := handler.QueryID(c, FilterParam)
	if err != nil {
		return handler.Message(c, fiber.StatusBadRequest, MsgInvalidQuery)
	}

	rows, err := s.repo.List(c.UserContext(), visaTypeID)
	if err != nil {
		return handler.StoreError(c, err, MsgListFailed)
	}

	return c.JSON(rows)
}

// Create adds a visa category.
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

// Update replaces the visa type and name of a category.
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

// Delete removes a visa category. Its details are kept.
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
