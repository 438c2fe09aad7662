package repository

import (
	"time"

	"materials-billing-backend/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type InvoiceRepository struct {
	db *gorm.DB
}

func NewInvoiceRepository(db *gorm.DB) *InvoiceRepository {
	return &InvoiceRepository{db: db}
}

// Expose DB if needed
func (r *InvoiceRepository) DB() *gorm.DB {
	return r.db
}

// GetByID fetches a single invoice with its lines, customer, vehicle and
// waybill. The caller applies the access scope.
func (r *InvoiceRepository) GetByID(id uuid.UUID, scope func(*gorm.DB) *gorm.DB) (*models.Invoice, error) {
	var invoice models.Invoice
	err := r.db.Scopes(scope).
		Preload("Lines").
		Preload("Customer").
		Preload("Vehicle").
		Preload("Waybill").
		First(&invoice, "invoices.id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &invoice, nil
}

// List returns invoices visible under the given scope, newest first, with
// optional inclusive date bounds.
func (r *InvoiceRepository) List(scope func(*gorm.DB) *gorm.DB, from, to *time.Time) ([]models.Invoice, error) {
	var invoices []models.Invoice

	q := r.db.Model(&models.Invoice{}).Scopes(scope).
		Preload("Lines").
		Preload("Customer").
		Preload("Vehicle")
	if from != nil {
		q = q.Where("date >= ?", *from)
	}
	if to != nil {
		q = q.Where("date <= ?", *to)
	}

	err := q.Order("date DESC").Find(&invoices).Error
	return invoices, err
}

// Delete removes an invoice with its lines and waybill in one transaction.
func (r *InvoiceRepository) Delete(id uuid.UUID) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("invoice_id = ?", id).Delete(&models.InvoiceLine{}).Error; err != nil {
			return err
		}
		if err := tx.Where("invoice_id = ?", id).Delete(&models.Waybill{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Invoice{}, "id = ?", id).Error
	})
}
