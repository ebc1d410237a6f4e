// Package visadetail implements the visa detail endpoints of the catalog api.
package visadetail

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	ctrl "github.com/rizkyprovidervisa/visa-admin/internal/db/controller/visadetail"
	"github.com/rizkyprovidervisa/visa-admin/internal/db/models"
	"github.com/rizkyprovidervisa/visa-admin/internal/web/handler"
)

const (
	// Path is the path of the visa detail routes below /api.
	Path = "/visa-details"

	// FilterParam narrows the list to one visa category.
	FilterParam = "visa_category_id"

	entity = "visa_detail"
)

// Answers of the visa detail routes.
const (
	MsgListFailed   = "Error fetching visa details"
	MsgInvalidQuery = "Invalid visa_category_id"
	MsgCreated      = "Visa detail created successfully"
	MsgCreateFailed = "Error creating visa detail"
	MsgUpdated      = "Visa detail updated successfully"
	MsgUpdateFailed = "Error updating visa detail"
	MsgDeleted      = "Visa detail deleted successfully"
	MsgDeleteFailed = "Error deleting visa detail"
)

// Request is the create and update body. The price arrives as number or as
// the text of the price input.
type Request struct {
	VisaCategoryID handler.ID     `json:"visa_category_id" validate:"required"`
	ProcessType    string         `json:"process_type" validate:"required,max=50"`
	ProcessingTime string         `json:"processing_time" validate:"max=100"`
	Price          handler.Amount `json:"price" validate:"gte=0"`
	Requirements   string         `json:"requirements"`
}

func (r *Request) model() models.VisaDetail {
	return models.VisaDetail{
		VisaCategoryID: uint64(r.VisaCategoryID),
		ProcessType:    r.ProcessType,
		ProcessingTime: r.ProcessingTime,
		Price:          float64(r.Price),
		Requirements:   r.Requirements,
	}
}

// Service is the visa detail handler service.
type Service struct {
	repo      ctrl.Repository
	validator *handler.XValidator
}

// New creates the visa detail service.
func New(repo ctrl.Repository) *Service {
	return &Service{repo: repo, validator: handler.NewValidator()}
}

// Register adds the visa detail routes.
func (s *Service) Register(router fiber.Router, gate fiber.Handler) {
	router.Route(Path, func(r fiber.Router) {
		r.Get(handler.RootPath, s.List)
		r.Post(handler.RootPath, gate, s.Create)
		r.Put(handler.IDPath, gate, s.Update)
		r.Delete(handler.IDPath, gate, s.Delete)
	})
}

// List answers the visa details ordered by process type, each with its category name.
func (s *Service) List(c *fiber.Ctx) error {
	categoryID, err := handler.QueryID(c, FilterParam)
	if err != nil {
		return handler.Message(c, fiber.StatusBadRequest, MsgInvalidQuery)
	}

	rows, err := s.repo.List(c.UserContext(), categoryID)
	if err != nil {
		return handler.StoreError(c, err, MsgListFailed)
	}

	return c.JSON(rows)
}

// Create adds a visa detail.
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

// Update replaces every field of a visa detail, the category included.
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

// Delete removes a visa detail.
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
