package repository

import (
	"strings"

	"materials-billing-backend/internal/models"

	"gorm.io/gorm"
)

type VehicleRepository struct {
	db *gorm.DB
}

func NewVehicleRepository(db *gorm.DB) *VehicleRepository {
	return &VehicleRepository{db: db}
}

// Search matches vehicle numbers by substring, uppercased to match storage.
func (r *VehicleRepository) Search(query string, limit int) ([]models.Vehicle, error) {
	var vehicles []models.Vehicle
	like := "%" + strings.ToUpper(query) + "%"
	err := r.db.Where("vehicle_number LIKE ?", like).Limit(limit).Find(&vehicles).Error
	return vehicles, err
}
