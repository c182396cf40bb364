package handler

import (
	"go-pos-inventory/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// actorFromCtx builds the acting identity from locals set by RequireAuth
func actorFromCtx(c *fiber.Ctx) service.Actor {
	actor := service.Actor{}
	if v, ok := c.Locals("user_id").(string); ok {
		if id, err := uuid.Parse(v); err == nil {
			actor.ID = id
		}
	}
	if v, ok := c.Locals("role").(string); ok {
		actor.Role = v
	}
	return actor
}

func parseUUID(id string) (uuid.UUID, error) {
	return uuid.Parse(id)
}
