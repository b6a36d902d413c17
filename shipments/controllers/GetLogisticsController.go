package controllers

import (
	"time"

	"rebar-shipment-backend/config"
	"rebar-shipment-backend/shipments/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// GetLogistics returns the merged logistics view: workbook rows enriched with
// the effective arrival status, optionally filtered by project and
// delivery-date window. A missing workbook yields an empty list, not an
// error; the dashboard renders "no data yet".
func (sc *ShipmentController) GetLogistics(c *fiber.Ctx) error {
	records := sc.loadLogistics()

	overlay, err := sc.StatusRepo.GetAll()
	if err != nil {
		config.Logger.Error("Failed to load status overlay", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to load status records",
			"error":   err.Error(),
		})
	}

	merged := services.MergeWithStatus(records, overlay, time.Now())

	project := c.Query("project")
	start, end := parseDateWindow(c.Query("start"), c.Query("end"))

	filtered := make([]services.ShipmentRecord, 0, len(merged))
	for _, rec := range merged {
		if !forProject(rec.Project, project) {
			continue
		}
		if (start != nil || end != nil) && !inWindow(rec.DeliveryTime, start, end) {
			continue
		}
		filtered = append(filtered, rec)
	}

	return c.JSON(fiber.Map{
		"message": "Logistics records retrieved successfully",
		"data":    filtered,
		"count":   len(filtered),
	})
}
