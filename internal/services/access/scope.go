package access

import (
	"materials-billing-backend/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// InvoiceScope is the single visibility gate for invoice reads. Every read
// path (list, detail, export) must apply it rather than filter on its own.
// Admin and staff see everything; a user sees only invoices of the customer
// bound to their account. A user with no bound customer sees nothing.
func InvoiceScope(role string, customerID *uuid.UUID) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		switch role {
		case models.RoleAdmin, models.RoleStaff:
			return db
		default:
			if customerID == nil {
				return db.Where("1 = 0")
			}
			return db.Where("invoices.customer_id = ?", *customerID)
		}
	}
}
