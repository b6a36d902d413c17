package controllers

import (
	"sort"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

type projectTonnage struct {
	Project  string          `json:"project"`
	Quantity decimal.Decimal `json:"quantity"`
}

type supplierTonnage struct {
	Project  string          `json:"project"`
	Supplier string          `json:"supplier"`
	Quantity decimal.Decimal `json:"quantity"`
}

// GetStatistics aggregates shipped tonnage by project and by
// project+supplier for the statistics tab.
func (sc *ShipmentController) GetStatistics(c *fiber.Ctx) error {
	records := sc.loadLogistics()

	byProject := make(map[string]decimal.Decimal)
	bySupplier := make(map[[2]string]decimal.Decimal)
	for _, rec := range records {
		byProject[rec.Project] = byProject[rec.Project].Add(rec.Quantity)
		key := [2]string{rec.Project, rec.Supplier}
		bySupplier[key] = bySupplier[key].Add(rec.Quantity)
	}

	projects := make([]projectTonnage, 0, len(byProject))
	for project, qty := range byProject {
		projects = append(projects, projectTonnage{Project: project, Quantity: qty})
	}
	sort.Slice(projects, func(i, j int) bool { return projects[i].Project < projects[j].Project })

	suppliers := make([]supplierTonnage, 0, len(bySupplier))
	for key, qty := range bySupplier {
		suppliers = append(suppliers, supplierTonnage{Project: key[0], Supplier: key[1], Quantity: qty})
	}
	sort.Slice(suppliers, func(i, j int) bool {
		if suppliers[i].Project != suppliers[j].Project {
			return suppliers[i].Project < suppliers[j].Project
		}
		return suppliers[i].Supplier < suppliers[j].Supplier
	})

	return c.JSON(fiber.Map{
		"message":     "Statistics retrieved successfully",
		"by_project":  projects,
		"by_supplier": suppliers,
	})
}
