package controllers

import (
	"sort"

	"rebar-shipment-backend/shipments/services"

	"github.com/gofiber/fiber/v2"
)

// GetProjects lists the distinct projects found in the logistics sheet,
// head-office overview first, for the project selector.
func (sc *ShipmentController) GetProjects(c *fiber.Ctx) error {
	records := sc.loadLogistics()

	seen := make(map[string]bool)
	var projects []string
	for _, rec := range records {
		if rec.Project == "" || seen[rec.Project] {
			continue
		}
		seen[rec.Project] = true
		projects = append(projects, rec.Project)
	}
	sort.Strings(projects)

	return c.JSON(fiber.Map{
		"message": "Projects retrieved successfully",
		"data":    append([]string{services.OverviewProject}, projects...),
	})
}
