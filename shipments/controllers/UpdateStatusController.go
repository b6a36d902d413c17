package controllers

import (
	"rebar-shipment-backend/config"
	notification_services "rebar-shipment-backend/notifications/services"
	"rebar-shipment-backend/shipments/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type updateStatusRequest struct {
	RecordID string `json:"record_id"`
	Status   string `json:"status"`
}

// UpdateStatus upserts one overlay row. A durable write failure is the
// caller's problem to surface (saved=false); a notification failure is not --
// the alert is queued fire-and-forget and asynq owns the retries.
func (sc *ShipmentController) UpdateStatus(c *fiber.Ctx) error {
	var req updateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if req.RecordID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Missing 'record_id' field",
		})
	}
	if !services.IsValidStatus(req.Status) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid status value",
			"options": services.StatusOptions,
		})
	}

	if err := sc.StatusRepo.Upsert(req.RecordID, req.Status); err != nil {
		config.Logger.Error("Failed to persist status update",
			zap.String("record_id", req.RecordID),
			zap.Error(err),
		)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to save status",
			"saved":   false,
			"error":   err.Error(),
		})
	}

	if req.Status == services.StatusNotArrived {
		sc.enqueueNotArrivedAlert(req.RecordID)
	}
	sc.Hub.BroadcastStatusUpdate([]string{req.RecordID}, req.Status)

	return c.JSON(fiber.Map{
		"message": "Status updated successfully",
		"saved":   true,
	})
}

// enqueueNotArrivedAlert looks the record up in the current extraction and
// queues a Feishu alert. Any failure here is logged and swallowed: alerting
// never decides the fate of the status write.
func (sc *ShipmentController) enqueueNotArrivedAlert(recordID string) {
	var alert notification_services.NotArrivedAlert
	alert.RecordID = recordID

	for _, rec := range sc.loadLogistics() {
		if rec.RecordID != recordID {
			continue
		}
		alert.Material = rec.Material
		alert.Spec = rec.Spec
		alert.Quantity = rec.Quantity.String()
		alert.Unit = rec.Unit
		alert.DeliveryTime = rec.DeliveryRaw
		alert.Project = rec.Project
		break
	}

	task, err := notification_services.NewNotArrivedTask(alert)
	if err != nil {
		config.Logger.Error("Failed to build alert task", zap.Error(err))
		return
	}
	if _, err := sc.AsynqClient.Enqueue(task); err != nil {
		config.Logger.Error("Failed to enqueue alert task",
			zap.String("record_id", recordID),
			zap.Error(err),
		)
	}
}
