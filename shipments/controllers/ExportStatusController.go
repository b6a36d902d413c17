package controllers

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"rebar-shipment-backend/config"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// ExportStatus streams the overlay table as a CSV snapshot, the same shape as
// the flat-file store writes, so operators can archive or inspect it
// regardless of which store backs the API.
func (sc *ShipmentController) ExportStatus(c *fiber.Ctx) error {
	rows, err := sc.StatusRepo.GetAll()
	if err != nil {
		config.Logger.Error("Failed to load status overlay for export", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to load status records",
			"error":   err.Error(),
		})
	}

	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)
	writer.Write([]string{"record_id", "到货状态", "update_time", "revision"})
	for _, row := range rows {
		writer.Write([]string{
			row.Identity,
			row.Status,
			row.UpdateTime.Format("2006-01-02 15:04:05"),
			fmt.Sprintf("%d", row.Revision),
		})
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to encode export",
			"error":   err.Error(),
		})
	}

	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="logistics_status.csv"`)
	return c.Send(buf.Bytes())
}
