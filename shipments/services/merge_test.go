package services

import (
	"testing"
	"time"

	"rebar-shipment-backend/db/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func recordWithDelivery(delivery time.Time) ShipmentRecord {
	raw := delivery.Format("2006-01-02 15:04:05")
	rec := ShipmentRecord{
		Supplier:     "钢厂A",
		Material:     "螺纹钢",
		Spec:         "HRB400",
		DeliveryRaw:  raw,
		DeliveryTime: &delivery,
		Project:      "项目X",
	}
	rec.RecordID = RecordIdentity(rec.Supplier, rec.Material, rec.Spec, rec.DeliveryRaw, rec.Project)
	return rec
}

func TestFallbackBoundary(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.Local)

	// 3 days + 1 second past delivery: presumed arrived.
	past := now.Add(-(3*24*time.Hour + time.Second))
	assert.Equal(t, StatusArrived, FallbackStatus(&past, now))

	// 2 days 23 hours: still inside the grace period.
	recent := now.Add(-(2*24*time.Hour + 23*time.Hour))
	assert.Equal(t, StatusCoordinating, FallbackStatus(&recent, now))

	// Exactly 3 days is not past the grace period.
	exact := now.Add(-3 * 24 * time.Hour)
	assert.Equal(t, StatusCoordinating, FallbackStatus(&exact, now))

	assert.Equal(t, StatusCoordinating, FallbackStatus(nil, now))
}

func TestMergeCompleteness(t *testing.T) {
	now := time.Now()
	records := []ShipmentRecord{
		recordWithDelivery(now.Add(-10 * 24 * time.Hour)),
		recordWithDelivery(now.Add(-time.Hour)),
		{Supplier: "钢厂B", Project: "项目Y", RecordID: RecordIdentity("钢厂B", "", "", "", "项目Y")},
	}

	merged := MergeWithStatus(records, nil, now)
	require.Len(t, merged, len(records))
	for _, rec := range merged {
		assert.NotEmpty(t, rec.Status)
	}
}

func TestMergeOverlayWins(t *testing.T) {
	// Delivery nine days before "now": the fallback alone would say arrived.
	delivery := time.Date(2024, 1, 1, 0, 0, 0, 0, time.Local)
	now := time.Date(2024, 1, 10, 0, 0, 0, 0, time.Local)
	rec := recordWithDelivery(delivery)

	merged := MergeWithStatus([]ShipmentRecord{rec}, nil, now)
	require.Len(t, merged, 1)
	assert.Equal(t, StatusArrived, merged[0].Status)

	// An overlay row overrides the age-based fallback regardless of age.
	overlay := []models.ShipmentStatus{{Identity: rec.RecordID, Status: StatusNotArrived}}
	merged = MergeWithStatus([]ShipmentRecord{rec}, overlay, now)
	require.Len(t, merged, 1)
	assert.Equal(t, StatusNotArrived, merged[0].Status)
}

func TestMergeDoesNotMutateInput(t *testing.T) {
	rec := recordWithDelivery(time.Now().Add(-10 * 24 * time.Hour))
	records := []ShipmentRecord{rec}

	_ = MergeWithStatus(records, nil, time.Now())
	assert.Equal(t, rec.Status, records[0].Status)
}
