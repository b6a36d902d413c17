package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Checkin records one driver arrival confirmation: which project and receiver
// the driver delivered to, where the browser said they were, and the photo
// taken on site. Latitude/Longitude are nil when the driver skipped
// geolocation and confirmed arrival manually.
type Checkin struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;" json:"id"`
	Project   string    `gorm:"not null;index" json:"project"`
	Detail    string    `gorm:"not null" json:"detail"` // "标段 - 收货人"
	Address   string    `json:"address"`
	Latitude  *float64  `gorm:"type:decimal(10,8)" json:"latitude"`
	Longitude *float64  `gorm:"type:decimal(11,8)" json:"longitude"`
	PhotoPath string    `json:"photo_path"`

	// Raw geolocation payload as delivered by the browser, kept verbatim for
	// auditing (accuracy, altitude, timestamp vary by device).
	Position datatypes.JSON `json:"position,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime;index" json:"created_at"`
}
