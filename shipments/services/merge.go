package services

import (
	"time"

	"rebar-shipment-backend/db/models"
)

// MergeWithStatus overlays the durable status table onto freshly extracted
// records and returns the enriched view. For each record: the overlay row's
// status wins when one exists for the record identity; otherwise the
// age-based fallback applies. Every returned record carries a non-empty
// effective status. Inputs are not mutated and the overlay is only read.
func MergeWithStatus(records []ShipmentRecord, overlay []models.ShipmentStatus, now time.Time) []ShipmentRecord {
	byIdentity := make(map[string]string, len(overlay))
	for _, row := range overlay {
		byIdentity[row.Identity] = row.Status
	}

	merged := make([]ShipmentRecord, len(records))
	for i, rec := range records {
		if status, ok := byIdentity[rec.RecordID]; ok && status != "" {
			rec.Status = status
		} else {
			rec.Status = FallbackStatus(rec.DeliveryTime, now)
		}
		merged[i] = rec
	}
	return merged
}
