package models

import (
	"time"

	"github.com/google/uuid"
)

type Customer struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name      string    `gorm:"uniqueIndex"`
	GSTNumber *string   `gorm:"column:gst_number"`
	Phone     *string
	Address   *string
	CreatedAt time.Time
}
