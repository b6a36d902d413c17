package routes

import (
	"context"

	"rebar-shipment-backend/shipments/controllers"
	"rebar-shipment-backend/shipments/repositories"
	"rebar-shipment-backend/shipments/services"
	"rebar-shipment-backend/websocket"

	"github.com/gofiber/fiber/v2"
	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"
)

func ShipmentRouterInit(
	app *fiber.App,
	ctx context.Context,
	statusRepo repositories.StatusRepository,
	extractor *services.ExtractorService,
	redisClient *redis.Client,
	asynqClient *asynq.Client,
	wsHub *websocket.Hub,
) {
	shipmentController := &controllers.ShipmentController{
		StatusRepo:  statusRepo,
		Extractor:   extractor,
		Redis:       redisClient,
		AsynqClient: asynqClient,
		Hub:         wsHub,
		Ctx:         ctx,
	}

	shipmentRoutes := app.Group("/shipments")
	shipmentRoutes.Get("/logistics", shipmentController.GetLogistics)
	shipmentRoutes.Put("/status", shipmentController.UpdateStatus)
	shipmentRoutes.Put("/status/batch", shipmentController.BatchUpdateStatus)
	shipmentRoutes.Get("/status/export", shipmentController.ExportStatus)
	shipmentRoutes.Get("/plan", shipmentController.GetPlanSummary)
	shipmentRoutes.Get("/statistics", shipmentController.GetStatistics)
	shipmentRoutes.Get("/projects", shipmentController.GetProjects)
	shipmentRoutes.Post("/refresh", shipmentController.RefreshData)
}
