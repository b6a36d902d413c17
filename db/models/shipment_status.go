package models

import "time"

// ShipmentStatus is one row of the arrival-status overlay table. The workbook
// itself is never written; every operator edit lands here, keyed by the
// content-derived record identity of the logistics row it annotates.
type ShipmentStatus struct {
	Identity   string    `gorm:"primaryKey;size:32" json:"record_id"`
	Status     string    `gorm:"size:32;not null" json:"status"`
	Revision   int64     `gorm:"not null;default:1" json:"revision"`
	UpdateTime time.Time `gorm:"autoUpdateTime" json:"update_time"`
}

func (ShipmentStatus) TableName() string {
	return "shipment_statuses"
}
