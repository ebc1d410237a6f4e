// Package handler holds what the api handler packages share: the service
// contract, json responses, request validation and the mutation counter.
package handler

import "github.com/gofiber/fiber/v2"

// Service is the interface for an api handler service. Register adds the
// routes below router. gate guards the mutating routes.
type Service interface {
	Register(router fiber.Router, gate fiber.Handler)
}
