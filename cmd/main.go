package main

import (
	"context"
	"strings"

	"rebar-shipment-backend/config"
	"rebar-shipment-backend/middleware"
	"rebar-shipment-backend/utils"

	// Repositories
	checkin_repositories "rebar-shipment-backend/checkins/repositories"
	shipment_repositories "rebar-shipment-backend/shipments/repositories"

	// Services
	notification_services "rebar-shipment-backend/notifications/services"
	shipment_services "rebar-shipment-backend/shipments/services"

	// Routes
	checkin_routes "rebar-shipment-backend/checkins/routes"
	shipment_routes "rebar-shipment-backend/shipments/routes"

	// WebSocket
	"rebar-shipment-backend/websocket"

	"github.com/gofiber/fiber/v2"
	"github.com/hibiken/asynq"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	// Initialize Zap logger
	config.InitLogger()

	// Load environment variables
	err := godotenv.Load(".env")
	if err != nil {
		config.Logger.Warn("No .env file loaded, relying on process environment", zap.Error(err))
	}

	app := fiber.New(fiber.Config{
		BodyLimit: 20 * 1024 * 1024, // site photos from phone cameras
	})

	// Apply CORS middleware from middleware package
	middleware.InitCors(app)

	// Initialize database and configs
	db := config.ConfigureDatabase()
	port := config.GetEnvOrDefault("PORT", "8080")
	ctx := context.Background()

	// Redis client for the extraction cache; Asynq keeps its own connection.
	redisAddr := config.GetEnv("REDIS_ADDRESS")
	if redisAddr == "" {
		redisAddr = "localhost:6379" // Default for development
		config.Logger.Warn("REDIS_ADDRESS not set, using default: localhost:6379")
	}
	redisClient := config.InitRedisServer(ctx)

	asynqRedisOpt := asynq.RedisClientOpt{
		Addr:     redisAddr,
		Password: "",
		DB:       0,
	}

	asynqClient := asynq.NewClient(asynqRedisOpt)
	defer asynqClient.Close()

	baseURL := config.GetEnv("BASE_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8080"
		config.Logger.Warn("BASE_URL not set, using default", zap.String("url", baseURL))
	}

	uploadDir := config.GetEnvOrDefault("UPLOAD_DIR", "./site_uploads")

	// Initialize the mailer for the daily overdue report
	utils.InitializeMailer()

	// ------ WebSocket Hub for live dashboard updates ------
	wsHub := websocket.NewHub()
	go wsHub.Run()

	// Serve uploaded check-in photos
	app.Static("/uploads", uploadDir)

	// The workbook the operations team drops next to the binary
	workbookPaths := []string{
		config.GetEnvOrDefault("WORKBOOK_PATH", "发货计划（宜宾项目）汇总.xlsm"),
		"发货计划（宜宾项目）汇总.xlsx",
	}
	extractor := shipment_services.NewExtractorService(workbookPaths, config.Logger)

	// Status overlay store: flat CSV matching the original file contract, or
	// the versioned Postgres table when configured.
	var statusRepo shipment_repositories.StatusRepository
	switch strings.ToLower(config.GetEnvOrDefault("STATUS_STORE", "csv")) {
	case "postgres":
		statusRepo = shipment_repositories.NewGormStatusRepository(db)
		config.Logger.Info("Using Postgres status store with optimistic versioning")
	default:
		statusPath := config.GetEnvOrDefault("STATUS_FILE", "logistics_status.csv")
		statusRepo = shipment_repositories.NewCSVStatusRepository(statusPath)
		config.Logger.Info("Using CSV status store", zap.String("path", statusPath))
	}

	checkinRepo := checkin_repositories.NewCheckinRepository(db)

	// Routes
	shipment_routes.ShipmentRouterInit(app, ctx, statusRepo, extractor, redisClient, asynqClient, wsHub)
	checkin_routes.CheckinRouterInit(app, checkinRepo, extractor, wsHub, uploadDir, baseURL)

	// ------ WebSocket Route for live dashboard updates ------
	wsHandler := websocket.NewWsHandler(wsHub)
	app.Get("/ws", wsHandler.HandleWebSocket)

	// ------ Asynq worker for Feishu alert delivery ------
	feishuClient := notification_services.NewFeishuClient(config.GetEnv("FEISHU_WEBHOOK_URL"), config.Logger)
	processor := notification_services.NewNotificationProcessor(feishuClient, db, config.Logger)
	asynqServer := asynq.NewServer(asynqRedisOpt, asynq.Config{Concurrency: 2})
	asynqMux := asynq.NewServeMux()
	processor.RegisterHandlers(asynqMux)
	go func() {
		if err := asynqServer.Run(asynqMux); err != nil {
			config.Logger.Fatal("Asynq worker failed", zap.Error(err))
		}
	}()

	// ------ Daily overdue summary email ------
	var recipients []string
	if raw := config.GetEnv("OVERDUE_REPORT_RECIPIENTS"); raw != "" {
		for _, r := range strings.Split(raw, ",") {
			if r = strings.TrimSpace(r); r != "" {
				recipients = append(recipients, r)
			}
		}
	}
	if len(recipients) > 0 {
		reportCron := notification_services.StartOverdueReportJob(extractor, recipients)
		defer reportCron.Stop()
	} else {
		config.Logger.Warn("OVERDUE_REPORT_RECIPIENTS not set, daily report disabled")
	}

	// Start the application
	config.Logger.Info("Server starting", zap.String("port", port))
	config.Logger.Fatal("Server failed", zap.String("port", port), zap.Error(app.Listen(":"+port)))
}
