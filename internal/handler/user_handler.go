package handler

import (
	"errors"

	"go-pos-inventory/internal/service"

	"github.com/gofiber/fiber/v2"
)

type UserHandler struct {
	service service.UserService
}

func NewUserHandler(s service.UserService) *UserHandler {
	return &UserHandler{service: s}
}

func (h *UserHandler) userError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrUserNotFound):
		return c.Status(404).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, service.ErrUserExists):
		return c.Status(409).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, service.ErrInvalidRole):
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}
	return c.Status(400).JSON(fiber.Map{"error": err.Error()})
}

// POST /users
func (h *UserHandler) CreateUser(c *fiber.Ctx) error {
	var req service.CreateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	user, err := h.service.CreateUser(&req)
	if err != nil {
		return h.userError(c, err)
	}

	return c.Status(201).JSON(fiber.Map{"message": "User created successfully", "user": user})
}

// GET /users
func (h *UserHandler) GetUsers(c *fiber.Ctx) error {
	users, err := h.service.GetAllUsers()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Error fetching users"})
	}
	return c.JSON(users)
}

// GET /users/:id
func (h *UserHandler) GetUser(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid user ID"})
	}

	user, err := h.service.GetUserByID(id)
	if err != nil {
		return h.userError(c, err)
	}

	return c.JSON(fiber.Map{"user": user})
}

// PATCH /users/:id
func (h *UserHandler) UpdateUser(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid user ID"})
	}

	var req service.UpdateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	user, err := h.service.UpdateUser(id, &req)
	if err != nil {
		return h.userError(c, err)
	}

	return c.JSON(fiber.Map{"message": "User updated", "user": user})
}

// DELETE /users/:id
func (h *UserHandler) DeleteUser(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid user ID"})
	}

	if err := h.service.DeleteUser(id); err != nil {
		return h.userError(c, err)
	}

	return c.JSON(fiber.Map{"message": "User deleted"})
}
