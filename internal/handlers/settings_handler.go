package handler

import (
	"net/http"

	"materials-billing-backend/internal/repository"

	"github.com/gin-gonic/gin"
)

type SettingsHandler struct {
	settingsRepo *repository.SettingsRepository
}

func NewSettingsHandler(settingsRepo *repository.SettingsRepository) *SettingsHandler {
	return &SettingsHandler{settingsRepo: settingsRepo}
}

func (h *SettingsHandler) GetSettings(c *gin.Context) {
	settings, err := h.settingsRepo.Get()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, settings)
}

type settingsPayload struct {
	CompanyName      *string  `json:"company_name"`
	CompanyNameLocal *string  `json:"company_name_local"`
	Address          *string  `json:"address"`
	GSTIN            *string  `json:"gstin"`
	PhoneNumbers     *string  `json:"phone_numbers"`
	FooterMessage    *string  `json:"footer_message"`
	CGSTPercent      *float64 `json:"cgst_percent"`
	SGSTPercent      *float64 `json:"sgst_percent"`
	FromLocation     *string  `json:"from_location"`

	SMSProvider  *string `json:"sms_provider"`
	SMSAPIKey    *string `json:"sms_api_key"`
	SMSAPISecret *string `json:"sms_api_secret"`
	SMSSenderID  *string `json:"sms_sender_id"`
	SMSAPIURL    *string `json:"sms_api_url"`
	SMSTemplate  *string `json:"sms_template"`

	WhatsAppProvider     *string `json:"whatsapp_provider"`
	WhatsAppSenderNumber *string `json:"whatsapp_sender_number"`
	WhatsAppAPIKey       *string `json:"whatsapp_api_key"`
	WhatsAppAPIURL       *string `json:"whatsapp_api_url"`
	WhatsAppTemplate     *string `json:"whatsapp_template"`

	AutoSendSMS      *bool `json:"auto_send_sms"`
	AutoSendWhatsApp *bool `json:"auto_send_whatsapp"`
}

// UpdateSettings applies a partial update to the singleton settings row.
// Tax rates are range-checked here; everything else is stored as given and
// validated at the point of use.
func (h *SettingsHandler) UpdateSettings(c *gin.Context) {
	var payload settingsPayload
	if err := c.BindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}
	if payload.CGSTPercent != nil && (*payload.CGSTPercent < 0 || *payload.CGSTPercent > 100) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "cgst_percent must be within [0, 100]"})
		return
	}
	if payload.SGSTPercent != nil && (*payload.SGSTPercent < 0 || *payload.SGSTPercent > 100) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "sgst_percent must be within [0, 100]"})
		return
	}

	settings, err := h.settingsRepo.Get()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	setString := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	setString(&settings.CompanyName, payload.CompanyName)
	setString(&settings.CompanyNameLocal, payload.CompanyNameLocal)
	setString(&settings.Address, payload.Address)
	setString(&settings.GSTIN, payload.GSTIN)
	setString(&settings.PhoneNumbers, payload.PhoneNumbers)
	setString(&settings.FooterMessage, payload.FooterMessage)
	setString(&settings.FromLocation, payload.FromLocation)
	setString(&settings.SMSProvider, payload.SMSProvider)
	setString(&settings.SMSAPIKey, payload.SMSAPIKey)
	setString(&settings.SMSAPISecret, payload.SMSAPISecret)
	setString(&settings.SMSSenderID, payload.SMSSenderID)
	setString(&settings.SMSAPIURL, payload.SMSAPIURL)
	setString(&settings.SMSTemplate, payload.SMSTemplate)
	setString(&settings.WhatsAppProvider, payload.WhatsAppProvider)
	setString(&settings.WhatsAppSenderNumber, payload.WhatsAppSenderNumber)
	setString(&settings.WhatsAppAPIKey, payload.WhatsAppAPIKey)
	setString(&settings.WhatsAppAPIURL, payload.WhatsAppAPIURL)
	setString(&settings.WhatsAppTemplate, payload.WhatsAppTemplate)
	if payload.CGSTPercent != nil {
		settings.CGSTPercent = *payload.CGSTPercent
	}
	if payload.SGSTPercent != nil {
		settings.SGSTPercent = *payload.SGSTPercent
	}
	if payload.AutoSendSMS != nil {
		settings.AutoSendSMS = *payload.AutoSendSMS
	}
	if payload.AutoSendWhatsApp != nil {
		settings.AutoSendWhatsApp = *payload.AutoSendWhatsApp
	}

	if err := h.settingsRepo.Update(settings); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, settings)
}
