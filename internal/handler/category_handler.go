package handler

import (
	"go-pharmacy-pos/internal/model"
	"go-pharmacy-pos/internal/service"

	"github.com/gofiber/fiber/v2"
)

type CategoryHandler struct {
	service service.InventoryService
}

func NewCategoryHandler(s service.InventoryService) *CategoryHandler {
	return &CategoryHandler{service: s}
}

type categoryRequest struct {
	Name string `json:"name"`
}

func (h *CategoryHandler) CreateCategory(c *fiber.Ctx) error {
	var req categoryRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	category := &model.Category{Name: req.Name}
	if err := h.service.CreateCategory(category, getUsername(c)); err != nil {
		return respondError(c, err)
	}

	return c.Status(201).JSON(fiber.Map{"message": "Category created", "data": category})
}

func (h *CategoryHandler) UpdateCategory(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid category ID"})
	}

	var req categoryRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	updated, err := h.service.UpdateCategory(id, req.Name, getUsername(c))
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{"message": "Category updated", "data": updated})
}

func (h *CategoryHandler) DeleteCategory(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid category ID"})
	}

	if err := h.service.DeleteCategory(id); err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{"message": "Category deleted"})
}

func (h *CategoryHandler) GetCategories(c *fiber.Ctx) error {
	categories, err := h.service.GetAllCategories()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(categories)
}
