package controllers

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
)

type receiverOption struct {
	Label    string `json:"label"` // "标段 - 收货人", what the driver picks from
	Section  string `json:"section"`
	Receiver string `json:"receiver"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
}

// GetReceivers lists the receiver options for one project from the auxiliary
// sheet. An empty list means the project has no configured receivers and the
// driver page tells them to contact the administrator.
func (cc *CheckinController) GetReceivers(c *fiber.Ctx) error {
	project := c.Query("project")
	if project == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Missing 'project' query parameter",
		})
	}

	seen := make(map[string]bool)
	var options []receiverOption
	for _, rec := range cc.Extractor.LoadAuxiliary() {
		if rec.Project != project {
			continue
		}
		label := fmt.Sprintf("%s - %s", rec.Section, rec.Receiver)
		if seen[label] {
			continue
		}
		seen[label] = true
		options = append(options, receiverOption{
			Label:    label,
			Section:  rec.Section,
			Receiver: rec.Receiver,
			Phone:    rec.Phone,
			Address:  rec.Address,
		})
	}

	return c.JSON(fiber.Map{
		"message": "Receivers retrieved successfully",
		"data":    options,
	})
}
