package auth

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

const (
	// LocalClaims is the fiber.Ctx locals key holding the verified *Claims.
	LocalClaims = "claims"
	// LocalUsername is the fiber.Ctx locals key holding the admin username.
	LocalUsername = "admin"

	bearerPrefix = "bearer "
)

// Messages returned by RequireBearer.
const (
	MsgMissingToken = "Token not found"
	MsgInvalidToken = "Invalid token"
)

// BearerToken extracts the token of an "Authorization: Bearer <token>" header.
// It returns an empty string when there is none.
func BearerToken(c *fiber.Ctx) string {
	header := strings.TrimSpace(c.Get(fiber.HeaderAuthorization))
	if len(header) < len(bearerPrefix) || !strings.EqualFold(header[:len(bearerPrefix)], bearerPrefix) {
		return ""
	}

	return strings.TrimSpace(header[len(bearerPrefix):])
}

// RequireBearer creates Fiber middleware that lets only requests with a valid
// token pass. Missing tokens are rejected with 401, invalid ones with 403.
func RequireBearer(secret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := BearerToken(c)
		if token == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": MsgMissingToken})
		}

		claims, err := Verify(secret, token)
		if err != nil {
			if errors.Is(err, ErrEmptySecret) {
				log.Error().Err(err).Msg("bearer check without secret")
			} else {
				log.Debug().Err(err).Str("IP", c.IP()).Msg("rejected bearer token")
			}

			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"message": MsgInvalidToken})
		}

		c.Locals(LocalClaims, claims)
		c.Locals(LocalUsername, claims.Username)

		return c.Next()
	}
}

// ClaimsFrom returns the claims stored by RequireBearer, nil outside a protected route.
func ClaimsFrom(c *fiber.Ctx) *Claims {
	claims, _ := c.Locals(LocalClaims).(*Claims)

	return claims
}
