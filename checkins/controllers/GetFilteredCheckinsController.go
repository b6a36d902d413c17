package controllers

import (
	"rebar-shipment-backend/config"
	"rebar-shipment-backend/shipments/services"
	"rebar-shipment-backend/utils/pagination"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// GetFilteredCheckins feeds the monitoring tab: paginated check-in records,
// newest first. The head-office overview project sees every project's
// check-ins.
func (cc *CheckinController) GetFilteredCheckins(c *fiber.Ctx) error {
	params := pagination.ParsePaginationParams(c)
	if err := pagination.ValidatePaginationParams(params); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": err.Error(),
		})
	}

	project := params.Filters["project"]
	if project == services.OverviewProject {
		project = ""
	}

	offset := (params.Page - 1) * params.PageSize
	checkins, total, err := cc.CheckinRepo.GetFilteredCheckins(params.PageSize, offset, project)
	if err != nil {
		config.Logger.Error("Failed to load check-ins", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to retrieve check-ins",
			"error":   err.Error(),
		})
	}

	return c.JSON(pagination.NewPaginatedResponse(c, checkins, total, params))
}
