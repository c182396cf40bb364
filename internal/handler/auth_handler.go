package handler

import (
	"errors"

	"go-pos-inventory/internal/service"

	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	authService service.AuthService
}

func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// LoginRequest accepts either username or email in the login field
type LoginRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login handles user authentication
// POST /auth/login
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	login := req.Username
	if login == "" {
		login = req.Email
	}
	if login == "" || req.Password == "" {
		return c.Status(400).JSON(fiber.Map{"error": "Username/email and password are required"})
	}

	response, err := h.authService.Login(login, req.Password)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(response)
}

// Me returns the authenticated user
// GET /users/me
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	actor := actorFromCtx(c)

	user, err := h.authService.Me(actor.ID)
	if err != nil {
		return c.Status(404).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(fiber.Map{"user": user})
}

// ForgotPassword issues an OTP without revealing account existence
// POST /auth/forgot-password
func (h *AuthHandler) ForgotPassword(c *fiber.Ctx) error {
	var req struct {
		Email string `json:"email"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	if req.Email == "" {
		return c.Status(400).JSON(fiber.Map{"error": "Email is required."})
	}

	if err := h.authService.ForgotPassword(req.Email); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Internal server error."})
	}

	return c.JSON(fiber.Map{"message": "If that email exists, an OTP has been sent."})
}

// VerifyOTP checks a code without consuming it
// POST /auth/verify-otp
func (h *AuthHandler) VerifyOTP(c *fiber.Ctx) error {
	var req struct {
		Email string `json:"email"`
		OTP   string `json:"otp"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	if req.Email == "" || req.OTP == "" {
		return c.Status(400).JSON(fiber.Map{"error": "Email and OTP are required."})
	}

	if err := h.authService.VerifyOTP(req.Email, req.OTP); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(fiber.Map{"message": "OTP verified"})
}

// ResetPassword consumes a valid OTP and sets the new password
// POST /auth/reset-password
func (h *AuthHandler) ResetPassword(c *fiber.Ctx) error {
	var req struct {
		Email    string `json:"email"`
		OTP      string `json:"otp"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	if req.Email == "" || req.OTP == "" || req.Password == "" {
		return c.Status(400).JSON(fiber.Map{"error": "Email, OTP, and new password are required."})
	}

	if err := h.authService.ResetPassword(req.Email, req.OTP, req.Password); err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			return c.Status(404).JSON(fiber.Map{"error": err.Error()})
		case errors.Is(err, service.ErrInvalidOTP),
			errors.Is(err, service.ErrExpiredOTP),
			errors.Is(err, service.ErrWeakPassword):
			return c.Status(400).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Internal server error."})
	}

	return c.JSON(fiber.Map{"message": "Password has been successfully reset."})
}
