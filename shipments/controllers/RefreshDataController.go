package controllers

import (
	"rebar-shipment-backend/config"
	"rebar-shipment-backend/utils"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// RefreshData drops the extraction cache so the next read re-parses the
// workbook. Used by the dashboard's refresh button after the operations team
// swaps in an updated file.
func (sc *ShipmentController) RefreshData(c *fiber.Ctx) error {
	if err := utils.InvalidateCache(sc.Ctx, sc.Redis, "shipments"); err != nil {
		config.Logger.Error("Failed to invalidate extraction cache", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to refresh data",
			"error":   err.Error(),
		})
	}
	return c.JSON(fiber.Map{
		"message": "Extraction cache cleared",
	})
}
