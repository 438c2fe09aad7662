package models

import (
	"time"

	"github.com/google/uuid"
)

// Settings is a singleton row, created lazily on first access.
type Settings struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey"`
	CompanyName      string
	CompanyNameLocal string
	Address          string
	GSTIN            string `gorm:"column:gstin"`
	PhoneNumbers     string
	FooterMessage    string
	CGSTPercent      float64 `gorm:"column:cgst_percent"`
	SGSTPercent      float64 `gorm:"column:sgst_percent"`
	FromLocation     string

	SMSProvider  string `gorm:"column:sms_provider"`
	SMSAPIKey    string `gorm:"column:sms_api_key"`
	SMSAPISecret string `gorm:"column:sms_api_secret"`
	SMSSenderID  string `gorm:"column:sms_sender_id"`
	SMSAPIURL    string `gorm:"column:sms_api_url"`
	SMSTemplate  string `gorm:"column:sms_template"`

	WhatsAppProvider     string `gorm:"column:whatsapp_provider"`
	WhatsAppSenderNumber string `gorm:"column:whatsapp_sender_number"`
	WhatsAppAPIKey       string `gorm:"column:whatsapp_api_key"`
	WhatsAppAPIURL       string `gorm:"column:whatsapp_api_url"`
	WhatsAppTemplate     string `gorm:"column:whatsapp_template"`

	AutoSendSMS      bool `gorm:"column:auto_send_sms"`
	AutoSendWhatsApp bool `gorm:"column:auto_send_whatsapp"`

	UpdatedAt time.Time
}
