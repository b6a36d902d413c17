package routes

import (
	"rebar-shipment-backend/checkins/controllers"
	"rebar-shipment-backend/checkins/repositories"
	"rebar-shipment-backend/shipments/services"
	"rebar-shipment-backend/websocket"

	"github.com/gofiber/fiber/v2"
)

func CheckinRouterInit(
	app *fiber.App,
	checkinRepository repositories.CheckinRepository,
	extractor *services.ExtractorService,
	wsHub *websocket.Hub,
	uploadDir string,
	baseURL string,
) {
	checkinController := &controllers.CheckinController{
		CheckinRepo: checkinRepository,
		Extractor:   extractor,
		Hub:         wsHub,
		UploadDir:   uploadDir,
		BaseURL:     baseURL,
	}

	checkinRoutes := app.Group("/checkins")
	checkinRoutes.Get("/", checkinController.GetFilteredCheckins)
	checkinRoutes.Post("/", checkinController.CreateCheckin)
	checkinRoutes.Get("/receivers", checkinController.GetReceivers)
	checkinRoutes.Get("/qrcode", checkinController.GenerateQRCode)
}
