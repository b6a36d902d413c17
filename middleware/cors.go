package middleware

import (
	"rebar-shipment-backend/config"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

// InitCors applies CORS settings to the app. The driver check-in page is
// opened from QR-scanned phone browsers, so origins come from config rather
// than a hardcoded dev host.
func InitCors(app *fiber.App) {
	origins := config.GetEnvOrDefault("CORS_ALLOW_ORIGINS", "http://localhost:5173")
	app.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     "GET,POST,HEAD,PUT,DELETE,PATCH",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, X-Requested-With, Cookie",
		AllowCredentials: true,
	}))
}
