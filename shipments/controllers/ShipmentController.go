package controllers

import (
	"context"
	"time"

	"rebar-shipment-backend/shipments/repositories"
	"rebar-shipment-backend/shipments/services"
	"rebar-shipment-backend/utils"
	"rebar-shipment-backend/websocket"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"
)

// ShipmentController serves the dashboard's shipment surface: logistics view,
// status edits, plan summary, statistics.
type ShipmentController struct {
	StatusRepo  repositories.StatusRepository
	Extractor   *services.ExtractorService
	Redis       *redis.Client
	AsynqClient *asynq.Client
	Hub         *websocket.Hub
	Ctx         context.Context
}

// loadLogistics returns extracted logistics records, re-reading the workbook
// only when the ten-minute cache is cold.
func (sc *ShipmentController) loadLogistics() []services.ShipmentRecord {
	var records []services.ShipmentRecord
	if utils.GetCachedExtraction(sc.Ctx, sc.Redis, "logistics", &records) {
		return records
	}
	records = sc.Extractor.LoadLogistics()
	utils.CacheExtraction(sc.Ctx, sc.Redis, "logistics", records)
	return records
}

func (sc *ShipmentController) loadPlan() []services.PlanRecord {
	var records []services.PlanRecord
	if utils.GetCachedExtraction(sc.Ctx, sc.Redis, "plan", &records) {
		return records
	}
	records = sc.Extractor.LoadPlan()
	utils.CacheExtraction(sc.Ctx, sc.Redis, "plan", records)
	return records
}

// parseDateWindow reads optional start/end query params (YYYY-MM-DD). The end
// bound is exclusive at the following midnight so a single-day window catches
// deliveries at any time of that day.
func parseDateWindow(startRaw, endRaw string) (start, end *time.Time) {
	if t, err := time.ParseInLocation("2006-01-02", startRaw, time.Local); err == nil {
		start = &t
	}
	if t, err := time.ParseInLocation("2006-01-02", endRaw, time.Local); err == nil {
		e := t.Add(24 * time.Hour)
		end = &e
	}
	return start, end
}

func inWindow(t *time.Time, start, end *time.Time) bool {
	if t == nil {
		// Undated rows only show up in unfiltered views.
		return start == nil && end == nil
	}
	if start != nil && t.Before(*start) {
		return false
	}
	if end != nil && !t.Before(*end) {
		return false
	}
	return true
}

// forProject reports whether a row belongs to the requested project view. The
// head-office overview sees everything.
func forProject(rowProject, requested string) bool {
	return requested == "" || requested == services.OverviewProject || rowProject == requested
}
