package handler

import (
	"errors"
	"time"

	"go-pos-inventory/internal/service"

	"github.com/gofiber/fiber/v2"
)

type InventoryHandler struct {
	service service.InventoryService
}

func NewInventoryHandler(s service.InventoryService) *InventoryHandler {
	return &InventoryHandler{service: s}
}

type createTransactionBody struct {
	ProductID string `json:"productId"`
	Type      string `json:"type"`
	Quantity  int    `json:"quantity"`
	Reference string `json:"reference"`
	Direction string `json:"direction"`
}

// CreateTransaction records one stock-ledger transaction
// POST /inventory
func (h *InventoryHandler) CreateTransaction(c *fiber.Ctx) error {
	var body createTransactionBody
	if err := c.BodyParser(&body); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	if body.ProductID == "" || body.Type == "" || body.Quantity == 0 {
		return c.Status(400).JSON(fiber.Map{"error": "productId, type, and quantity are required."})
	}

	productID, err := parseUUID(body.ProductID)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid product ID"})
	}

	result, err := h.service.RecordTransaction(&service.RecordTransactionRequest{
		ProductID: productID,
		Type:      body.Type,
		Quantity:  body.Quantity,
		Reference: body.Reference,
		Direction: body.Direction,
	}, actorFromCtx(c))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrProductNotFound):
			return c.Status(404).JSON(fiber.Map{"error": err.Error()})
		case errors.Is(err, service.ErrInsufficientStock),
			errors.Is(err, service.ErrInvalidQuantity),
			errors.Is(err, service.ErrInvalidTransactionType),
			errors.Is(err, service.ErrInvalidDirection):
			return c.Status(400).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Failed to record inventory transaction."})
	}

	return c.Status(201).JSON(fiber.Map{
		"message":       "Inventory transaction recorded.",
		"transactionId": result.TransactionID,
		"product": fiber.Map{
			"id":            result.ProductID,
			"stockQuantity": result.StockQuantity,
		},
	})
}

// ListTransactions returns the filtered, paginated ledger with a sales summary
// GET /inventory
func (h *InventoryHandler) ListTransactions(c *fiber.Ctx) error {
	query := service.ListTransactionsQuery{
		Page:  c.QueryInt("page", 1),
		Limit: c.QueryInt("limit", 20),
		Type:  c.Query("type"),
	}

	if v := c.Query("productId"); v != "" {
		id, err := parseUUID(v)
		if err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "Invalid product ID"})
		}
		query.ProductID = id
	}
	if v := c.Query("performedBy"); v != "" {
		id, err := parseUUID(v)
		if err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "Invalid performedBy ID"})
		}
		query.PerformedBy = id
	}
	if v := c.Query("dateFrom"); v != "" {
		t, err := parseDate(v, false)
		if err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "Invalid dateFrom"})
		}
		query.DateFrom = &t
	}
	if v := c.Query("dateTo"); v != "" {
		t, err := parseDate(v, true)
		if err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "Invalid dateTo"})
		}
		query.DateTo = &t
	}

	list, err := h.service.ListTransactions(query, actorFromCtx(c))
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to retrieve inventory transactions."})
	}

	return c.JSON(list)
}

// parseDate accepts RFC3339 or plain dates; a plain dateTo is widened to the
// end of its day so the range stays inclusive.
func parseDate(v string, endOfDay bool) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, v); err == nil {
		return t, nil
	}
	t, err := time.Parse("2006-01-02", v)
	if err != nil {
		return time.Time{}, err
	}
	if endOfDay {
		t = t.Add(24*time.Hour - time.Nanosecond)
	}
	return t, nil
}
