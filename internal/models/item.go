package models

import (
	"time"

	"github.com/google/uuid"
)

// Item is the master catalog entry. Invoices copy name and rate at billing
// time, so later catalog edits never change already-issued invoices.
type Item struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name      string    `gorm:"index"`
	Rate      float64
	IsActive  bool `gorm:"default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
