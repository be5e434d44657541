package handler

import (
	"errors"

	"go-pharmacy-pos/internal/pricing"
	"go-pharmacy-pos/internal/repository"
	"go-pharmacy-pos/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// Helpers to pull the authenticated identity out of the request context
// (set by the auth middleware).
func getUserID(c *fiber.Ctx) string {
	userID := c.Locals("user_id")
	if userID == nil {
		return "system"
	}
	return userID.(string)
}

func getUsername(c *fiber.Ctx) string {
	username := c.Locals("username")
	if username == nil {
		return "unknown"
	}
	return username.(string)
}

func parseUUID(id string) (uuid.UUID, error) {
	return uuid.Parse(id)
}

// respondError maps service sentinels onto HTTP statuses in one place so
// each handler can stay a thin parse-call-respond wrapper.
func respondError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrValidation),
		errors.Is(err, service.ErrAggregateMismatch),
		errors.Is(err, service.ErrPasswordTooShort),
		errors.Is(err, service.ErrUnknownRole),
		errors.Is(err, pricing.ErrEmptyCart),
		errors.Is(err, pricing.ErrInvalidLine),
		errors.Is(err, pricing.ErrInvalidDiscount),
		errors.Is(err, pricing.ErrInsufficientCash):
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})

	case errors.Is(err, service.ErrProductNotFound),
		errors.Is(err, service.ErrCategoryNotFound),
		errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, repository.ErrProductNotFound),
		errors.Is(err, repository.ErrReceiptNotFound):
		return c.Status(404).JSON(fiber.Map{"error": err.Error()})

	case errors.Is(err, service.ErrDuplicateProduct),
		errors.Is(err, service.ErrDuplicateCategory),
		errors.Is(err, service.ErrDuplicateUsername),
		errors.Is(err, service.ErrCategoryInUse),
		errors.Is(err, repository.ErrInsufficientStock):
		return c.Status(409).JSON(fiber.Map{"error": err.Error()})
	}

	return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
}
