package notify

import (
	"encoding/json"
	"fmt"
	"time"

	"materials-billing-backend/internal/logger"
	"materials-billing-backend/internal/models"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

const (
	ChannelSMS      = "sms"
	ChannelWhatsApp = "whatsapp"
)

// Channels selects which channels a dispatch attempt covers. A selected
// channel is still skipped when its provider is not configured.
type Channels struct {
	SMS      bool
	WhatsApp bool
}

// InvoiceResults reports the two channel outcomes independently; a nil entry
// means the channel was not attempted.
type InvoiceResults struct {
	SMS      *Result `json:"sms,omitempty"`
	WhatsApp *Result `json:"whatsapp,omitempty"`
}

// Dispatcher delivers invoice notifications. Provider factories are fields
// so tests can swap in stubs.
type Dispatcher struct {
	db      *gorm.DB
	baseURL string
	log     zerolog.Logger

	SMSFactory      func(*models.Settings) (Sender, error)
	WhatsAppFactory func(*models.Settings) (Sender, error)
}

func NewDispatcher(db *gorm.DB, baseURL string) *Dispatcher {
	return &Dispatcher{
		db:              db,
		baseURL:         baseURL,
		log:             logger.WithComponent("notify"),
		SMSFactory:      NewSMSSender,
		WhatsAppFactory: NewWhatsAppSender,
	}
}

// SendInvoiceNotification renders the configured templates for the invoice
// and dispatches the selected channels. Failures are captured per channel
// and logged; they never propagate to the invoice itself.
func (d *Dispatcher) SendInvoiceNotification(settings *models.Settings, invoice *models.Invoice, channels Channels) InvoiceResults {
	results := InvoiceResults{}

	if invoice.Customer == nil || invoice.Customer.Phone == nil || *invoice.Customer.Phone == "" {
		missing := "customer phone number not available"
		if channels.SMS {
			results.SMS = &Result{Error: missing}
		}
		if channels.WhatsApp {
			results.WhatsApp = &Result{Error: missing}
		}
		return results
	}

	to := NormalizePhone(*invoice.Customer.Phone)
	vars := map[string]string{
		"customer": invoice.Customer.Name,
		"amount":   fmt.Sprintf("₹%.2f", invoice.GrandTotal),
		"bill_no":  invoice.BillNo,
		"date":     invoice.Date.Format("02-01-2006"),
		"pdf_link": fmt.Sprintf("%s/invoice/%s/pdf", d.baseURL, invoice.ID),
	}

	if channels.SMS && settings.SMSAPIKey != "" && settings.SMSTemplate != "" {
		results.SMS = d.sendChannel(ChannelSMS, d.SMSFactory, settings, invoice, to, RenderTemplate(settings.SMSTemplate, vars))
	}
	if channels.WhatsApp && settings.WhatsAppSenderNumber != "" && settings.WhatsAppTemplate != "" {
		results.WhatsApp = d.sendChannel(ChannelWhatsApp, d.WhatsAppFactory, settings, invoice, to, RenderTemplate(settings.WhatsAppTemplate, vars))
	}

	return results
}

func (d *Dispatcher) sendChannel(channel string, factory func(*models.Settings) (Sender, error), settings *models.Settings, invoice *models.Invoice, to, message string) *Result {
	sender, err := factory(settings)
	if err != nil {
		result := &Result{Error: err.Error()}
		d.record(channel, invoice, to, result)
		return result
	}

	result := sender.Send(to, message)
	d.record(channel, invoice, to, &result)
	return &result
}

// record appends a MessageLog row. Logging failures are themselves
// non-fatal.
func (d *Dispatcher) record(channel string, invoice *models.Invoice, to string, result *Result) {
	if result.Success {
		d.log.Info().Str("channel", channel).Str("bill_no", invoice.BillNo).
			Str("message_id", result.MessageID).Msg("notification sent")
	} else {
		d.log.Warn().Str("channel", channel).Str("bill_no", invoice.BillNo).
			Str("error", result.Error).Msg("notification failed")
	}

	details, _ := json.Marshal(map[string]string{"to": to})
	entry := models.MessageLog{
		ID:        uuid.New(),
		InvoiceID: invoice.ID,
		Channel:   channel,
		Provider:  result.Provider,
		Success:   result.Success,
		MessageID: result.MessageID,
		Error:     result.Error,
		Details:   details,
		CreatedAt: time.Now(),
	}
	if err := d.db.Create(&entry).Error; err != nil {
		d.log.Error().Err(err).Str("channel", channel).Msg("failed to record message log")
	}
}
