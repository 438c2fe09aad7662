package repository

import (
	"errors"
	"time"

	"materials-billing-backend/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SettingsRepository struct {
	db *gorm.DB
}

func NewSettingsRepository(db *gorm.DB) *SettingsRepository {
	return &SettingsRepository{db: db}
}

// Get returns the singleton settings row, creating it with defaults on
// first access.
func (r *SettingsRepository) Get() (*models.Settings, error) {
	var settings models.Settings
	err := r.db.First(&settings).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		settings = models.Settings{
			ID:               uuid.New(),
			CGSTPercent:      2.5,
			SGSTPercent:      2.5,
			SMSProvider:      "twilio",
			WhatsAppProvider: "twilio",
			UpdatedAt:        time.Now(),
		}
		if err := r.db.Create(&settings).Error; err != nil {
			return nil, err
		}
		return &settings, nil
	}
	if err != nil {
		return nil, err
	}
	return &settings, nil
}

func (r *SettingsRepository) Update(settings *models.Settings) error {
	settings.UpdatedAt = time.Now()
	return r.db.Save(settings).Error
}
