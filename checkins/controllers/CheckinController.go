package controllers

import (
	"rebar-shipment-backend/checkins/repositories"
	"rebar-shipment-backend/shipments/services"
	"rebar-shipment-backend/websocket"
)

// CheckinController serves the driver check-in flow: receiver lookup, photo +
// geolocation submission, the monitoring feed, and project QR codes.
type CheckinController struct {
	CheckinRepo repositories.CheckinRepository
	Extractor   *services.ExtractorService
	Hub         *websocket.Hub
	UploadDir   string
	BaseURL     string
}
