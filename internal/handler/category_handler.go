package handler

import (
	"errors"

	"go-pos-inventory/internal/service"

	"github.com/gofiber/fiber/v2"
)

type CategoryHandler struct {
	service service.CategoryService
}

func NewCategoryHandler(s service.CategoryService) *CategoryHandler {
	return &CategoryHandler{service: s}
}

type categoryBody struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (h *CategoryHandler) categoryError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrCategoryMissing):
		return c.Status(404).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, service.ErrCategoryNameTaken):
		return c.Status(409).JSON(fiber.Map{"error": err.Error()})
	}
	return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
}

// POST /categories
func (h *CategoryHandler) CreateCategory(c *fiber.Ctx) error {
	var body categoryBody
	if err := c.BodyParser(&body); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	if body.Name == "" {
		return c.Status(400).JSON(fiber.Map{"error": "Name is required"})
	}

	category, err := h.service.CreateCategory(body.Name, body.Description)
	if err != nil {
		return h.categoryError(c, err)
	}

	return c.Status(201).JSON(category)
}

// GET /categories
func (h *CategoryHandler) GetCategories(c *fiber.Ctx) error {
	categories, err := h.service.GetCategories()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}
	return c.JSON(categories)
}

// GET /categories/:id
func (h *CategoryHandler) GetCategory(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid category ID"})
	}

	category, err := h.service.GetCategory(id)
	if err != nil {
		return h.categoryError(c, err)
	}
	return c.JSON(category)
}

// PUT /categories/:id
func (h *CategoryHandler) UpdateCategory(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid category ID"})
	}

	var body categoryBody
	if err := c.BodyParser(&body); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	category, err := h.service.UpdateCategory(id, body.Name, body.Description)
	if err != nil {
		return h.categoryError(c, err)
	}
	return c.JSON(category)
}

// DELETE /categories/:id
func (h *CategoryHandler) DeleteCategory(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid category ID"})
	}

	if err := h.service.DeleteCategory(id); err != nil {
		return h.categoryError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Category deleted."})
}
