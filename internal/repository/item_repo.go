package repository

import (
	"time"

	"materials-billing-backend/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ItemRepository struct {
	db *gorm.DB
}

func NewItemRepository(db *gorm.DB) *ItemRepository {
	return &ItemRepository{db: db}
}

func (r *ItemRepository) List(activeOnly bool) ([]models.Item, error) {
	var items []models.Item
	q := r.db.Order("name")
	if activeOnly {
		q = q.Where("is_active = ?", true)
	}
	err := q.Find(&items).Error
	return items, err
}

func (r *ItemRepository) GetByID(id uuid.UUID) (*models.Item, error) {
	var item models.Item
	if err := r.db.First(&item, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *ItemRepository) Create(item *models.Item) error {
	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}
	item.CreatedAt = time.Now()
	item.UpdatedAt = item.CreatedAt
	return r.db.Create(item).Error
}

func (r *ItemRepository) Update(item *models.Item) error {
	item.UpdatedAt = time.Now()
	return r.db.Save(item).Error
}

// SuggestRate averages the rates the item was last billed at, over its three
// most recent invoices. Lines match by copied item name. Returns nil when the
// item has no billing history.
func (r *ItemRepository) SuggestRate(itemName string) (*float64, error) {
	var rates []float64
	err := r.db.Model(&models.InvoiceLine{}).
		Joins("JOIN invoices ON invoices.id = invoice_lines.invoice_id").
		Where("invoice_lines.item_name = ?", itemName).
		Order("invoices.date DESC, invoices.created_at DESC").
		Limit(3).
		Pluck("invoice_lines.rate", &rates).Error
	if err != nil {
		return nil, err
	}
	if len(rates) == 0 {
		return nil, nil
	}

	sum := decimal.Zero
	for _, rate := range rates {
		sum = sum.Add(decimal.NewFromFloat(rate))
	}
	avg, _ := sum.Div(decimal.NewFromInt(int64(len(rates)))).Round(2).Float64()
	return &avg, nil
}
