package controllers

import (
	"fmt"
	"net/url"

	"rebar-shipment-backend/config"

	"github.com/gofiber/fiber/v2"
	qrcode "github.com/skip2/go-qrcode"
	"go.uber.org/zap"
)

// GenerateQRCode renders the printable per-project QR image. Scanning it
// opens the driver check-in page with the project preselected:
// {BASE_URL}/?role=driver&p={project}.
func (cc *CheckinController) GenerateQRCode(c *fiber.Ctx) error {
	project := c.Query("project")
	if project == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Missing 'project' query parameter",
		})
	}

	query := url.Values{}
	query.Set("role", "driver")
	query.Set("p", project)
	link := fmt.Sprintf("%s/?%s", cc.BaseURL, query.Encode())

	png, err := qrcode.Encode(link, qrcode.Medium, 320)
	if err != nil {
		config.Logger.Error("Failed to encode QR code",
			zap.String("project", project),
			zap.Error(err),
		)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to generate QR code",
			"error":   err.Error(),
		})
	}

	c.Set(fiber.HeaderContentType, "image/png")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`inline; filename="%s_QR_Code.png"`, project))
	return c.Send(png)
}
