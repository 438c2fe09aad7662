package models

import (
	"time"

	"github.com/google/uuid"
)

type Invoice struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey"`
	BillNo           string    `gorm:"uniqueIndex"`
	Date             time.Time
	CustomerID       uuid.UUID `gorm:"type:uuid;index"`
	Customer         *Customer
	VehicleID        *uuid.UUID `gorm:"type:uuid;index"`
	Vehicle          *Vehicle
	Subtotal         float64
	CGST             float64 `gorm:"column:cgst"`
	SGST             float64 `gorm:"column:sgst"`
	RoundOff         float64
	GrandTotal       float64
	UserID           uuid.UUID `gorm:"type:uuid;index"`
	FromLocation     string
	DeliveryLocation *string
	HasWaybill       bool
	Lines            []InvoiceLine `gorm:"foreignKey:InvoiceID"`
	Waybill          *Waybill      `gorm:"foreignKey:InvoiceID"`
	CreatedAt        time.Time
}

// InvoiceLine carries a copied item name and rate, never a catalog reference.
type InvoiceLine struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	InvoiceID uuid.UUID `gorm:"type:uuid;index"`
	ItemName  string
	Quantity  float64
	Rate      float64
	Amount    float64
}
