package billing

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"materials-billing-backend/internal/logger"
	"materials-billing-backend/internal/models"
	"materials-billing-backend/internal/repository"
	"materials-billing-backend/internal/services/notify"
	"materials-billing-backend/internal/services/resolver"
	"materials-billing-backend/internal/services/sequence"
	"materials-billing-backend/internal/services/tax"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

var (
	ErrNoValidLines       = errors.New("no valid invoice lines")
	ErrDriverNameRequired = errors.New("driver name is required when a waybill is requested")
)

const defaultWaybillDuration = 2 * time.Hour

// LineInput is one (item, quantity, rate) triple. Quantity and rate arrive
// as strings so a malformed row can be skipped instead of failing the bind.
type LineInput struct {
	ItemName string `json:"item_name"`
	Quantity string `json:"quantity"`
	Rate     string `json:"rate"`
}

type WaybillRequest struct {
	DriverName       string  `json:"driver_name"`
	MaterialType     string  `json:"material_type"`
	VehicleCapacity  string  `json:"vehicle_capacity"`
	DeliveryLocation string  `json:"delivery_location"`
	DeliveryDuration float64 `json:"delivery_duration"`
	DurationUnit     string  `json:"duration_unit"`
}

type CreateInvoiceRequest struct {
	CustomerName     string          `json:"customer_name"`
	CustomerGST      string          `json:"customer_gst"`
	CustomerPhone    string          `json:"customer_phone"`
	CustomerAddress  string          `json:"customer_address"`
	VehicleNumber    string          `json:"vehicle_number"`
	VehicleType      string          `json:"vehicle_type"`
	Lines            []LineInput     `json:"lines"`
	RoundOff         float64         `json:"round_off"`
	DeliveryLocation string          `json:"delivery_location"`
	Waybill          *WaybillRequest `json:"waybill"`

	UserID uuid.UUID `json:"-"`
}

// Service orchestrates entity resolution, line validation, tax computation,
// bill numbering and the atomic persistence of the invoice aggregate.
type Service struct {
	db           *gorm.DB
	allocator    *sequence.Allocator
	settingsRepo *repository.SettingsRepository
	dispatcher   *notify.Dispatcher
	log          zerolog.Logger

	// Async controls whether auto-send notifications run in a goroutine.
	// Tests set it to false to observe outcomes synchronously.
	Async bool
}

func NewService(db *gorm.DB, allocator *sequence.Allocator, settingsRepo *repository.SettingsRepository, dispatcher *notify.Dispatcher) *Service {
	return &Service{
		db:           db,
		allocator:    allocator,
		settingsRepo: settingsRepo,
		dispatcher:   dispatcher,
		log:          logger.WithComponent("billing"),
		Async:        true,
	}
}

// CreateInvoice validates the request, then persists the invoice, its lines
// and the optional waybill in one transaction. Validation failures leave no
// state behind; notification outcomes never affect the created invoice.
func (s *Service) CreateInvoice(ctx context.Context, req CreateInvoiceRequest) (*models.Invoice, error) {
	if strings.TrimSpace(req.CustomerName) == "" {
		return nil, resolver.ErrEmptyCustomerName
	}
	if _, err := resolver.NormalizeVehicleNumber(req.VehicleNumber); err != nil {
		return nil, err
	}

	lines := validLines(req.Lines)
	if len(lines) == 0 {
		return nil, ErrNoValidLines
	}

	subtotal := 0.0
	for _, line := range lines {
		subtotal += line.Amount
	}

	waybill, err := buildWaybill(req.Waybill)
	if err != nil {
		return nil, err
	}

	settings, err := s.settingsRepo.Get()
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}

	breakdown, err := tax.Compute(subtotal, settings.CGSTPercent, settings.SGSTPercent, req.RoundOff)
	if err != nil {
		return nil, fmt.Errorf("tax configuration rejected: %w", err)
	}

	var invoice *models.Invoice
	err = s.allocator.Allocate(s.db.WithContext(ctx), func(tx *gorm.DB, billNo string) error {
		customer, err := resolver.ResolveCustomer(tx, resolver.CustomerInput{
			Name:      req.CustomerName,
			GSTNumber: req.CustomerGST,
			Phone:     req.CustomerPhone,
			Address:   req.CustomerAddress,
		})
		if err != nil {
			return err
		}

		vehicle, err := resolver.ResolveVehicle(tx, resolver.VehicleInput{
			Number:      req.VehicleNumber,
			VehicleType: req.VehicleType,
		})
		if err != nil {
			return err
		}

		inv := models.Invoice{
			ID:           uuid.New(),
			BillNo:       billNo,
			Date:         time.Now(),
			CustomerID:   customer.ID,
			VehicleID:    &vehicle.ID,
			Subtotal:     subtotal,
			CGST:         breakdown.CGST,
			SGST:         breakdown.SGST,
			RoundOff:     breakdown.RoundOff,
			GrandTotal:   breakdown.GrandTotal,
			UserID:       req.UserID,
			FromLocation: settings.FromLocation,
			HasWaybill:   waybill != nil,
		}
		if loc := strings.TrimSpace(req.DeliveryLocation); loc != "" {
			inv.DeliveryLocation = &loc
		}
		if err := tx.Create(&inv).Error; err != nil {
			return err
		}

		for i := range lines {
			lines[i].ID = uuid.New()
			lines[i].InvoiceID = inv.ID
		}
		if err := tx.Create(&lines).Error; err != nil {
			return fmt.Errorf("failed to persist invoice lines: %w", err)
		}
		inv.Lines = lines

		if waybill != nil {
			waybill.ID = uuid.New()
			waybill.InvoiceID = inv.ID
			if err := tx.Create(waybill).Error; err != nil {
				return fmt.Errorf("failed to persist waybill: %w", err)
			}
			inv.Waybill = waybill
		}

		inv.Customer = customer
		inv.Vehicle = vehicle
		invoice = &inv
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("bill_no", invoice.BillNo).Str("customer", invoice.Customer.Name).
		Float64("grand_total", invoice.GrandTotal).Msg("invoice created")

	if settings.AutoSendSMS || settings.AutoSendWhatsApp {
		channels := notify.Channels{SMS: settings.AutoSendSMS, WhatsApp: settings.AutoSendWhatsApp}
		if s.Async {
			go s.dispatcher.SendInvoiceNotification(settings, invoice, channels)
		} else {
			s.dispatcher.SendInvoiceNotification(settings, invoice, channels)
		}
	}

	return invoice, nil
}

// Resend dispatches notifications for an existing invoice on both channels.
func (s *Service) Resend(invoice *models.Invoice) (notify.InvoiceResults, error) {
	settings, err := s.settingsRepo.Get()
	if err != nil {
		return notify.InvoiceResults{}, fmt.Errorf("failed to load settings: %w", err)
	}
	return s.dispatcher.SendInvoiceNotification(settings, invoice, notify.Channels{SMS: true, WhatsApp: true}), nil
}

// validLines filters the parallel triples independently: rows with a missing
// field or a non-numeric quantity/rate are skipped, never fatal by
// themselves.
func validLines(inputs []LineInput) []models.InvoiceLine {
	var lines []models.InvoiceLine
	for _, in := range inputs {
		name := strings.TrimSpace(in.ItemName)
		if name == "" {
			continue
		}
		quantity, err := strconv.ParseFloat(strings.TrimSpace(in.Quantity), 64)
		if err != nil || quantity <= 0 {
			continue
		}
		rate, err := strconv.ParseFloat(strings.TrimSpace(in.Rate), 64)
		if err != nil || rate < 0 {
			continue
		}
		lines = append(lines, models.InvoiceLine{
			ItemName: name,
			Quantity: quantity,
			Rate:     rate,
			Amount:   tax.LineAmount(quantity, rate),
		})
	}
	return lines
}

func buildWaybill(req *WaybillRequest) (*models.Waybill, error) {
	if req == nil {
		return nil, nil
	}
	if strings.TrimSpace(req.DriverName) == "" {
		return nil, ErrDriverNameRequired
	}

	duration := defaultWaybillDuration
	if req.DeliveryDuration > 0 {
		switch strings.ToLower(req.DurationUnit) {
		case "minutes", "minute", "min":
			duration = time.Duration(req.DeliveryDuration * float64(time.Minute))
		default:
			duration = time.Duration(req.DeliveryDuration * float64(time.Hour))
		}
	}

	loading := time.Now()
	return &models.Waybill{
		DriverName:       strings.TrimSpace(req.DriverName),
		LoadingTime:      loading,
		UnloadingTime:    loading.Add(duration),
		MaterialType:     strings.TrimSpace(req.MaterialType),
		VehicleCapacity:  strings.TrimSpace(req.VehicleCapacity),
		DeliveryLocation: strings.TrimSpace(req.DeliveryLocation),
		CreatedAt:        loading,
	}, nil
}
