package handler

import (
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

// MessageResponse is the body of every status only answer.
type MessageResponse struct {
	Message string `json:"message"`
}

// CreatedResponse is the body of a successful create.
type CreatedResponse struct {
	ID      uint64 `json:"id"`
	Message string `json:"message"`
}

// Message answers with status and {"message": msg}.
func Message(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(MessageResponse{Message: msg})
}

// Created answers a successful create with the new id.
func Created(c *fiber.Ctx, id uint64, msg string) error {
	return c.JSON(CreatedResponse{ID: id, Message: msg})
}

// StoreError logs err and answers 500 with a static msg. The cause never reaches the client.
func StoreError(c *fiber.Ctx, err error, msg string) error {
	log.Error().Err(err).Str("method", c.Method()).Str("path", c.Path()).Msg(msg)

	return Message(c, fiber.StatusInternalServerError, msg)
}

// ParseID reads the :id route parameter.
func ParseID(c *fiber.Ctx) (uint64, bool) {
	id, err := strconv.ParseUint(c.Params(IDParam), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}

	return id, true
}

// QueryID reads an optional numeric filter from the query string.
// An absent or empty parameter returns nil.
func QueryID(c *fiber.Ctx, name string) (*uint64, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil //nolint:nilnil
	}

	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid %s: %w", name, err)
	}

	return &id, nil
}
