package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// MessageLog records the outcome of one notification attempt on one channel.
type MessageLog struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	InvoiceID uuid.UUID `gorm:"type:uuid;index"`
	Channel   string    `gorm:"index"`
	Provider  string
	Success   bool
	MessageID string
	Error     string
	Details   datatypes.JSON
	CreatedAt time.Time
}
