package models

import (
	"time"

	"github.com/google/uuid"
)

// Vehicle numbers are stored normalized to uppercase, e.g. TN32AX3344.
type Vehicle struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	VehicleNumber string    `gorm:"uniqueIndex"`
	VehicleType   *string
	CustomerID    *uuid.UUID `gorm:"type:uuid;index"`
	CreatedAt     time.Time
}
