package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	RoleAdmin = "admin"
	RoleStaff = "staff"
	RoleUser  = "user"
)

// User carries the role and optional bound customer used for read scoping.
// Authentication itself happens outside this service.
type User struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Username   string     `gorm:"uniqueIndex"`
	Role       string     `gorm:"default:user"`
	CustomerID *uuid.UUID `gorm:"type:uuid"`
	CreatedAt  time.Time
}
