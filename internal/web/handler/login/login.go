// Package login implements the admin sign in endpoint.
package login

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/rizkyprovidervisa/visa-admin/internal/auth"
	"github.com/rizkyprovidervisa/visa-admin/internal/web/handler"
)

const (
	// Path is the path of the sign in endpoint below /api.
	Path = "/auth/login"

	// MsgInvalidCredentials is the answer for an unknown user and a wrong password alike.
	MsgInvalidCredentials = "Invalid username or password"

	// MsgServerError is the answer when the admin store fails.
	MsgServerError = "Server error"
)

// Authenticator checks credentials and issues a session.
type Authenticator interface {
	Login(ctx context.Context, username, password string) (*auth.Session, error)
}

// Service is the login handler service.
type Service struct {
	auth       Authenticator
	validator  *handler.XValidator
	middleware []fiber.Handler
}

// Request is the sign in body.
type Request struct {
	Username string `json:"username" form:"username" validate:"required,max=100"`
	Password string `json:"password" form:"password" validate:"required"`
}

// New creates the login service. middleware runs in front of the handler,
// the daemon puts the rate limiter there.
func New(a Authenticator, middleware ...fiber.Handler) *Service {
	return &Service{
		auth:       a,
		validator:  handler.NewValidator(),
		middleware: middleware,
	}
}

// Register adds POST /auth/login. The gate is not used, signing in is public.
func (s *Service) Register(router fiber.Router, _ fiber.Handler) {
	handlers := append(append([]fiber.Handler{}, s.middleware...), s.Post)
	router.Post(Path, handlers...)
}

// Post handles the sign in.
func (s *Service) Post(c *fiber.Ctx) error {
	req := new(Request)
	if err := c.BodyParser(req); err != nil {
		return handler.Message(c, fiber.StatusBadRequest, handler.MsgInvalidBody)
	}

	if ok, err := s.validator.Check(c, req); !ok {
		return err
	}

	session, err := s.auth.Login(c.UserContext(), req.Username, req.Password)

	switch {
	case errors.Is(err, auth.ErrInvalidCredentials):
		log.Info().Str("username", req.Username).Str("ip", c.IP()).Msg("failed sign in")

		return handler.Message(c, fiber.StatusUnauthorized, MsgInvalidCredentials)
	case err != nil:
		return handler.StoreError(c, err, MsgServerError)
	}

	c.Locals(auth.LocalUsername, session.User.Username)

	return c.JSON(session)
}
