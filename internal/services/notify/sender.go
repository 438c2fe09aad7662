package notify

import (
	"fmt"

	"materials-billing-backend/internal/models"
)

// Result is the transient outcome of one provider call. It is reported and
// logged but never rolls back the invoice that triggered it.
type Result struct {
	Success   bool   `json:"success"`
	Provider  string `json:"provider"`
	MessageID string `json:"message_id,omitempty"`
	Error     string `json:"error,omitempty"`
}

// Sender delivers one message to one recipient. Implementations make exactly
// one attempt with a bounded timeout.
type Sender interface {
	Send(to, message string) Result
}

// NewSMSSender picks the SMS provider configured in settings.
func NewSMSSender(settings *models.Settings) (Sender, error) {
	if settings.SMSAPIKey == "" {
		return nil, fmt.Errorf("sms api key not configured")
	}

	provider := settings.SMSProvider
	if provider == "" {
		provider = "twilio"
	}

	switch provider {
	case "twilio":
		if settings.SMSSenderID == "" {
			return nil, fmt.Errorf("sms sender number not configured")
		}
		secret := settings.SMSAPISecret
		if secret == "" {
			secret = settings.SMSAPIKey
		}
		return newTwilioSender(settings.SMSAPIKey, secret, settings.SMSSenderID, false), nil
	case "msg91":
		sender := settings.SMSSenderID
		if sender == "" {
			sender = "SENDER"
		}
		return newMSG91Sender(settings.SMSAPIKey, sender), nil
	case "generic":
		return newGenericSender(settings.SMSAPIURL, settings.SMSAPIKey, settings.SMSSenderID), nil
	default:
		return nil, fmt.Errorf("unknown sms provider: %s", provider)
	}
}

// NewWhatsAppSender picks the WhatsApp provider configured in settings. The
// Twilio WhatsApp channel reuses the SMS credentials, as Twilio does.
func NewWhatsAppSender(settings *models.Settings) (Sender, error) {
	if settings.WhatsAppSenderNumber == "" {
		return nil, fmt.Errorf("whatsapp sender number not configured")
	}

	provider := settings.WhatsAppProvider
	if provider == "" {
		provider = "twilio"
	}

	switch provider {
	case "twilio":
		if settings.SMSAPIKey == "" {
			return nil, fmt.Errorf("whatsapp via twilio requires sms api credentials")
		}
		secret := settings.SMSAPISecret
		if secret == "" {
			secret = settings.SMSAPIKey
		}
		return newTwilioSender(settings.SMSAPIKey, secret, settings.WhatsAppSenderNumber, true), nil
	case "generic":
		apiKey := settings.WhatsAppAPIKey
		if apiKey == "" {
			apiKey = settings.SMSAPIKey
		}
		return newGenericSender(settings.WhatsAppAPIURL, apiKey, settings.WhatsAppSenderNumber), nil
	default:
		return nil, fmt.Errorf("unknown whatsapp provider: %s", provider)
	}
}
