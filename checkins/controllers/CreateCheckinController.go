package controllers

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"rebar-shipment-backend/config"
	"rebar-shipment-backend/db/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"
)

// CreateCheckin records a driver arrival: multipart form with project,
// detail, address, optional latitude/longitude, an optional raw geolocation
// payload, and an optional site photo. A driver without GPS permission can
// still confirm arrival, so everything but project and detail is optional.
func (cc *CheckinController) CreateCheckin(c *fiber.Ctx) error {
	project := c.FormValue("project")
	detail := c.FormValue("detail")
	if project == "" || detail == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Missing 'project' or 'detail' field in FormData",
		})
	}

	checkin := &models.Checkin{
		Project: project,
		Detail:  detail,
		Address: c.FormValue("address"),
	}

	if lat, err := strconv.ParseFloat(c.FormValue("latitude"), 64); err == nil {
		checkin.Latitude = &lat
	}
	if lon, err := strconv.ParseFloat(c.FormValue("longitude"), 64); err == nil {
		checkin.Longitude = &lon
	}
	if raw := c.FormValue("position"); raw != "" {
		checkin.Position = datatypes.JSON(raw)
	}

	// Photo is optional; a failed save rejects the check-in rather than
	// silently dropping the evidence the photo exists for.
	if file, err := c.FormFile("photo"); err == nil && file != nil {
		if err := os.MkdirAll(cc.UploadDir, 0755); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"message": "Failed to prepare upload directory",
				"error":   err.Error(),
			})
		}
		ext := filepath.Ext(file.Filename)
		if ext == "" {
			ext = ".jpg"
		}
		filename := fmt.Sprintf("%s%s", uuid.New().String(), ext)
		savePath := filepath.Join(cc.UploadDir, filename)
		if err := c.SaveFile(file, savePath); err != nil {
			config.Logger.Error("Failed to save check-in photo", zap.Error(err))
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"message": "Failed to save photo",
				"error":   err.Error(),
			})
		}
		checkin.PhotoPath = filename
	}

	created, err := cc.CheckinRepo.CreateCheckin(checkin)
	if err != nil {
		config.Logger.Error("Failed to persist check-in",
			zap.String("project", project),
			zap.Error(err),
		)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to save check-in",
			"error":   err.Error(),
		})
	}

	cc.Hub.BroadcastCheckin(created)

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Check-in recorded successfully",
		"data":    created,
	})
}
