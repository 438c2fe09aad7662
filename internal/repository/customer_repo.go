package repository

import (
	"strings"

	"materials-billing-backend/internal/models"

	"gorm.io/gorm"
)

type CustomerRepository struct {
	db *gorm.DB
}

func NewCustomerRepository(db *gorm.DB) *CustomerRepository {
	return &CustomerRepository{db: db}
}

// Search performs a case-insensitive substring search for autocomplete.
func (r *CustomerRepository) Search(query string, limit int) ([]models.Customer, error) {
	var customers []models.Customer
	like := "%" + strings.ToLower(query) + "%"
	err := r.db.Where("LOWER(name) LIKE ?", like).Limit(limit).Find(&customers).Error
	return customers, err
}
