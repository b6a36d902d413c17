package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// NotificationLog keeps an audit trail of outbound alerts. Delivery is
// fire-and-forget from the status update's point of view; this table is how
// an operator finds out a webhook has been failing.
type NotificationLog struct {
	ID        uuid.UUID      `gorm:"type:uuid;primary_key;" json:"id"`
	Identity  string         `gorm:"size:32;index" json:"record_id"`
	Channel   string         `gorm:"size:16;not null" json:"channel"` // feishu | email
	Payload   datatypes.JSON `json:"payload"`
	Success   bool           `gorm:"default:false" json:"success"`
	Error     string         `gorm:"type:text" json:"error,omitempty"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
}
