package controllers

import (
	"rebar-shipment-backend/shipments/services"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

// GetPlanSummary returns plan rows for the requested project/date window plus
// the metric card totals: demand, shipped and remaining tonnage, and how many
// orders have run overdue.
func (sc *ShipmentController) GetPlanSummary(c *fiber.Ctx) error {
	records := sc.loadPlan()

	project := c.Query("project")
	start, end := parseDateWindow(c.Query("start"), c.Query("end"))

	totalDemand := decimal.Zero
	totalShipped := decimal.Zero
	totalRemaining := decimal.Zero
	overdueCount := 0

	filtered := make([]services.PlanRecord, 0, len(records))
	for _, rec := range records {
		if !forProject(rec.Project, project) {
			continue
		}
		if (start != nil || end != nil) && !inWindow(rec.OrderTime, start, end) {
			continue
		}
		filtered = append(filtered, rec)

		totalDemand = totalDemand.Add(rec.Demand)
		totalShipped = totalShipped.Add(rec.Shipped)
		totalRemaining = totalRemaining.Add(rec.Remaining)
		if rec.OverdueDays.IsPositive() {
			overdueCount++
		}
	}

	return c.JSON(fiber.Map{
		"message": "Plan records retrieved successfully",
		"data":    filtered,
		"summary": fiber.Map{
			"total_demand":    totalDemand,
			"total_shipped":   totalShipped,
			"total_remaining": totalRemaining,
			"overdue_orders":  overdueCount,
		},
	})
}
