package models

import (
	"time"

	"github.com/google/uuid"
)

type Waybill struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey"`
	InvoiceID        uuid.UUID `gorm:"type:uuid;uniqueIndex"`
	DriverName       string
	LoadingTime      time.Time
	UnloadingTime    time.Time
	MaterialType     string
	VehicleCapacity  string
	DeliveryLocation string
	CreatedAt        time.Time
}
