// Package country implements the country endpoints of the catalog api.
package country

import (
	"context"
	"errors"
	"mime/multipart"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	ctrl "github.com/rizkyprovidervisa/visa-admin/internal/db/controller/country"
	"github.com/rizkyprovidervisa/visa-admin/internal/upload"
	"github.com/rizkyprovidervisa/visa-admin/internal/web/handler"
)

const (
	// Path is the path of the country routes below /api.
	Path = "/countries"

	// ImageField is the multipart field carrying the country image.
	ImageField = "image"

	entity = "country"
)

// Answers of the country routes.
const (
	MsgListFailed    = "Error fetching countries"
	MsgGetFailed     = "Error fetching country"
	MsgNotFound      = "Country not found"
	MsgCreated       = "Country created successfully"
	MsgCreateFailed  = "Error creating country"
	MsgUpdated       = "Country updated successfully"
	MsgUpdateFailed  = "Error updating country"
	MsgDeleted       = "Country deleted successfully"
	MsgDeleteFailed  = "Error deleting country"
	MsgUploadFailed  = "Error uploading image"
	MsgImageTooLarge = "Image too large"
	MsgImageInvalid  = "Image must be a jpeg, png, gif, webp or svg file"
)

// Request is the create and update body. It arrives as multipart form
// when an image is attached and as json otherwise.
type Request struct {
	Name        string `json:"name" form:"name" validate:"required,max=100"`
	Code        string `json:"code" form:"code" validate:"required,max=10"`
	Flag        string `json:"flag" form:"flag" validate:"max=50"`
	Description string `json:"description" form:"description"`
}

func (r *Request) fields() ctrl.Fields {
	flag := r.Flag

	return ctrl.Fields{
		Name:        r.Name,
		Code:        r.Code,
		Flag:        &flag,
		Description: r.Description,
	}
}

// Service is the country handler service.
type Service struct {
	repo      ctrl.Repository
	images    upload.Store
	validator *handler.XValidator
}

// New creates the country service.
func New(repo ctrl.Repository, images upload.Store) *Service {
	return &Service{
		repo:      repo,
		images:    images,
		validator: handler.NewValidator(),
	}
}

// Register adds the country routes. Reads are public.
func (s *Service) Register(router fiber.Router, gate fiber.Handler) {
	router.Route(Path, func(r fiber.Router) {
		r.Get(handler.RootPath, s.List)
		r.Get(handler.IDPath, s.Get)
		r.Post(handler.RootPath, gate, s.Create)
		r.Put(handler.IDPath, gate, s.Update)
		r.Delete(handler.IDPath, gate, s.Delete)
	})
}

// List answers every country ordered by name.
func (s *Service) List(c *fiber.Ctx) error {
	countries, err := s.repo.List(c.UserContext())
	if err != nil {
		return handler.StoreError(c, err, MsgListFailed)
	}

	return c.JSON(countries)
}

// Get answers a single country.
func (s *Service) Get(c *fiber.Ctx) error {
	id, ok := handler.ParseID(c)
	if !ok {
		return handler.Message(c, fiber.StatusBadRequest, handler.MsgInvalidID)
	}

	country, err := s.repo.Get(c.UserContext(), id)

	switch {
	case errors.Is(err, ctrl.ErrCountryNotFound):
		return handler.Message(c, fiber.StatusNotFound, MsgNotFound)
	case err != nil:
		return handler.StoreError(c, err, MsgGetFailed)
	}

	return c.JSON(country)
}

// Create adds a country, storing the optional image first.
func (s *Service) Create(c *fiber.Ctx) error {
	req, ok, err := s.parse(c)
	if !ok {
		return err
	}

	image, ok, err := s.saveImage(c)
	if !ok {
		return err
	}

	ctx := c.UserContext()

	id, err := s.repo.Create(ctx, req.fields(), image)
	if err != nil {
		s.removeImage(ctx, image)

		return handler.StoreError(c, err, MsgCreateFailed)
	}

	handler.Mutated(c, entity, handler.ActionCreate, strconv.FormatUint(id, 10))

	return handler.Created(c, id, MsgCreated)
}

// Update replaces the fields of a country. The image is only replaced when a new one is attached.
func (s *Service) Update(c *fiber.Ctx) error {
	id, ok := handler.ParseID(c)
	if !ok {
		return handler.Message(c, fiber.StatusBadRequest, handler.MsgInvalidID)
	}

	req, ok, err := s.parse(c)
	if !ok {
		return err
	}

	ctx := c.UserContext()

	var image, previous *string

	// an image for an unknown id is not stored, the update itself is a no-op
	if imageFile(c) != nil {
		country, err := s.repo.Get(ctx, id)

		switch {
		case errors.Is(err, ctrl.ErrCountryNotFound):
		case err != nil:
			return handler.StoreError(c, err, MsgUpdateFailed)
		default:
			previous = country.Image

			if image, ok, err = s.saveImage(c); !ok {
				return err
			}
		}
	}

	if err := s.repo.Update(ctx, id, req.fields(), image); err != nil {
		s.removeImage(ctx, image)

		return handler.StoreError(c, err, MsgUpdateFailed)
	}

	s.removeImage(ctx, previous)
	handler.Mutated(c, entity, handler.ActionUpdate, strconv.FormatUint(id, 10))

	return handler.Message(c, fiber.StatusOK, MsgUpdated)
}

// Delete removes a country. Its visa types are kept.
func (s *Service) Delete(c *fiber.Ctx) error {
	id, ok := handler.ParseID(c)
	if !ok {
		return handler.Message(c, fiber.StatusBadRequest, handler.MsgInvalidID)
	}

	ctx := c.UserContext()
	previous := s.currentImage(ctx, id)

	if err := s.repo.Delete(ctx, id); err != nil {
		return handler.StoreError(c, err, MsgDeleteFailed)
	}

	s.removeImage(ctx, previous)
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

// imageFile returns the attached image or nil.
func imageFile(c *fiber.Ctx) *multipart.FileHeader {
	form, err := c.MultipartForm()
	if err != nil || form == nil {
		return nil
	}

	files := form.File[ImageField]
	if len(files) == 0 {
		return nil
	}

	return files[0]
}

// saveImage stores the attached image. It returns a nil path when the
// request carries none. On rejection the answer is already written.
func (s *Service) saveImage(c *fiber.Ctx) (*string, bool, error) {
	fh := imageFile(c)
	if fh == nil || s.images == nil {
		return nil, true, nil
	}

	f, err := fh.Open()
	if err != nil {
		return nil, false, handler.StoreError(c, err, MsgUploadFailed)
	}
	defer f.Close()

	p, err := s.images.Save(c.UserContext(), fh.Filename, fh.Size, f)

	switch {
	case errors.Is(err, upload.ErrTooLarge):
		return nil, false, handler.Message(c, fiber.StatusRequestEntityTooLarge, MsgImageTooLarge)
	case errors.Is(err, upload.ErrUnsupportedType), errors.Is(err, upload.ErrEmptyFile):
		return nil, false, handler.Message(c, fiber.StatusBadRequest, MsgImageInvalid)
	case err != nil:
		return nil, false, handler.StoreError(c, err, MsgUploadFailed)
	}

	return &p, true, nil
}

func (s *Service) currentImage(ctx context.Context, id uint64) *string {
	country, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil
	}

	return country.Image
}

// removeImage deletes a stored image. Failures only leave an orphaned file and are logged.
func (s *Service) removeImage(ctx context.Context, p *string) {
	if p == nil || *p == "" || s.images == nil {
		return
	}

	if err := s.images.Remove(ctx, *p); err != nil {
		log.Warn().Err(err).Str("image", *p).Msg("failed to remove country image")
	}
}
