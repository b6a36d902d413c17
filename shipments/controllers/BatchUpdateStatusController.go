package controllers

import (
	"rebar-shipment-backend/config"
	"rebar-shipment-backend/shipments/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type batchUpdateStatusRequest struct {
	RecordIDs []string `json:"record_ids"`
	Status    string   `json:"status"`
}

// BatchUpdateStatus applies one status to many records in a single save.
// From the caller's point of view either every requested row carries the new
// status afterwards or none does.
func (sc *ShipmentController) BatchUpdateStatus(c *fiber.Ctx) error {
	var req batchUpdateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if len(req.RecordIDs) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "No record_ids supplied",
		})
	}
	if !services.IsValidStatus(req.Status) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid status value",
			"options": services.StatusOptions,
		})
	}

	if err := sc.StatusRepo.BatchUpsert(req.RecordIDs, req.Status); err != nil {
		config.Logger.Error("Failed to persist batch status update",
			zap.Int("count", len(req.RecordIDs)),
			zap.Error(err),
		)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to save statuses",
			"saved":   false,
			"error":   err.Error(),
		})
	}

	if req.Status == services.StatusNotArrived {
		for _, id := range req.RecordIDs {
			sc.enqueueNotArrivedAlert(id)
		}
	}
	sc.Hub.BroadcastStatusUpdate(req.RecordIDs, req.Status)

	return c.JSON(fiber.Map{
		"message": "Statuses updated successfully",
		"saved":   true,
		"updated": len(req.RecordIDs),
	})
}
