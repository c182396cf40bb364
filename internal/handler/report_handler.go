package handler

import (
	"strconv"

	"go-pos-inventory/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ReportHandler struct {
	service service.ReportService
}

func NewReportHandler(s service.ReportService) *ReportHandler {
	return &ReportHandler{service: s}
}

// GetStockMovement returns per-day inbound/outbound quantity totals
// GET /reports/stock-movement?days=N
func (h *ReportHandler) GetStockMovement(c *fiber.Ctx) error {
	daysStr := c.Query("days", "7")
	days, err := strconv.Atoi(daysStr)
	if err != nil || days <= 0 {
		days = 7
	}

	data, err := h.service.GetStockMovement(days)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch stock movement"})
	}

	return c.JSON(fiber.Map{
		"period": days,
		"data":   data,
	})
}

// GetInventoryStats returns the catalog overview
// GET /reports/stats
func (h *ReportHandler) GetInventoryStats(c *fiber.Ctx) error {
	stats, err := h.service.GetInventoryStats()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch inventory stats"})
	}

	return c.JSON(stats)
}
