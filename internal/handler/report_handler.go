package handler

import (
	"go-pharmacy-pos/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ReportHandler struct {
	service service.ReportService
}

func NewReportHandler(s service.ReportService) *ReportHandler {
	return &ReportHandler{service: s}
}

// SalesReport returns one row per sold item joined with its receipt,
// newest transactions first.
func (h *ReportHandler) SalesReport(c *fiber.Ctx) error {
	rows, err := h.service.SalesReport()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(rows)
}

func (h *ReportHandler) InventoryStats(c *fiber.Ctx) error {
	stats, err := h.service.InventoryStats()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(stats)
}
