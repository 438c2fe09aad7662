package billing

import (
	"context"
	"testing"

	"materials-billing-backend/internal/models"
	"materials-billing-backend/internal/repository"
	"materials-billing-backend/internal/services/notify"
	"materials-billing-backend/internal/services/resolver"
	"materials-billing-backend/internal/services/sequence"
	"materials-billing-backend/internal/testutil"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type stubSender struct {
	result notify.Result
}

func (s *stubSender) Send(to, message string) notify.Result {
	return s.result
}

func newTestService(t *testing.T, db *gorm.DB) *Service {
	t.Helper()
	dispatcher := notify.NewDispatcher(db, "http://localhost:8080")
	dispatcher.SMSFactory = func(*models.Settings) (notify.Sender, error) {
		return &stubSender{result: notify.Result{Success: true, Provider: "twilio", MessageID: "SM1"}}, nil
	}
	dispatcher.WhatsAppFactory = func(*models.Settings) (notify.Sender, error) {
		return &stubSender{result: notify.Result{Success: true, Provider: "twilio", MessageID: "WA1"}}, nil
	}
	svc := NewService(db, sequence.NewAllocator(), repository.NewSettingsRepository(db), dispatcher)
	svc.Async = false
	return svc
}

func baseRequest() CreateInvoiceRequest {
	return CreateInvoiceRequest{
		CustomerName:  "Sri Traders",
		CustomerPhone: "9788388823",
		VehicleNumber: "tn32ax3344",
		VehicleType:   "Truck",
		Lines: []LineInput{
			{ItemName: "Blue Metal 20mm", Quantity: "2", Rate: "3000"},
		},
		UserID: uuid.New(),
	}
}

func rowCounts(t *testing.T, db *gorm.DB) (customers, vehicles, invoices, lines, waybills int64) {
	t.Helper()
	require.NoError(t, db.Model(&models.Customer{}).Count(&customers).Error)
	require.NoError(t, db.Model(&models.Vehicle{}).Count(&vehicles).Error)
	require.NoError(t, db.Model(&models.Invoice{}).Count(&invoices).Error)
	require.NoError(t, db.Model(&models.InvoiceLine{}).Count(&lines).Error)
	require.NoError(t, db.Model(&models.Waybill{}).Count(&waybills).Error)
	return
}

func TestCreateInvoiceHappyPath(t *testing.T) {
	db := testutil.NewDB(t)
	svc := newTestService(t, db)

	invoice, err := svc.CreateInvoice(context.Background(), baseRequest())
	require.NoError(t, err)

	assert.Equal(t, "INV-0001", invoice.BillNo)
	assert.InDelta(t, 6000.0, invoice.Subtotal, 0.01)
	assert.InDelta(t, 150.0, invoice.CGST, 0.01)
	assert.InDelta(t, 150.0, invoice.SGST, 0.01)
	assert.InDelta(t, 6300.0, invoice.GrandTotal, 0.01)
	assert.Equal(t, "TN32AX3344", invoice.Vehicle.VehicleNumber)

	// Grand total and subtotal invariants.
	assert.InDelta(t, invoice.Subtotal+invoice.CGST+invoice.SGST+invoice.RoundOff, invoice.GrandTotal, 0.01)
	lineSum := 0.0
	for _, line := range invoice.Lines {
		lineSum += line.Amount
	}
	assert.InDelta(t, invoice.Subtotal, lineSum, 0.01)

	second, err := svc.CreateInvoice(context.Background(), baseRequest())
	require.NoError(t, err)
	assert.Equal(t, "INV-0002", second.BillNo)
}

func TestCreateInvoiceSkipsMalformedLines(t *testing.T) {
	db := testutil.NewDB(t)
	svc := newTestService(t, db)

	req := baseRequest()
	req.Lines = []LineInput{
		{ItemName: "Blue Metal 20mm", Quantity: "2", Rate: "3000"},
		{ItemName: "", Quantity: "1", Rate: "100"},
		{ItemName: "M Sand", Quantity: "abc", Rate: "100"},
		{ItemName: "P Sand", Quantity: "1", Rate: ""},
		{ItemName: "Gravel", Quantity: "-4", Rate: "50"},
		{ItemName: "Dust", Quantity: "3", Rate: "250.50"},
	}

	invoice, err := svc.CreateInvoice(context.Background(), req)
	require.NoError(t, err)
	require.Len(t, invoice.Lines, 2)
	assert.InDelta(t, 6000.0+751.50, invoice.Subtotal, 0.01)
}

func TestCreateInvoiceRejectsZeroValidLines(t *testing.T) {
	db := testutil.NewDB(t)
	svc := newTestService(t, db)

	req := baseRequest()
	req.Lines = []LineInput{
		{ItemName: "M Sand", Quantity: "abc", Rate: "100"},
		{ItemName: "", Quantity: "1", Rate: "100"},
	}

	_, err := svc.CreateInvoice(context.Background(), req)
	assert.ErrorIs(t, err, ErrNoValidLines)

	customers, vehicles, invoices, lines, waybills := rowCounts(t, db)
	assert.Zero(t, customers)
	assert.Zero(t, vehicles)
	assert.Zero(t, invoices)
	assert.Zero(t, lines)
	assert.Zero(t, waybills)
}

func TestCreateInvoiceRejectsBadPlateBeforePersisting(t *testing.T) {
	db := testutil.NewDB(t)
	svc := newTestService(t, db)

	req := baseRequest()
	req.VehicleNumber = "TN32A334"

	_, err := svc.CreateInvoice(context.Background(), req)
	assert.ErrorIs(t, err, resolver.ErrInvalidVehicleNo)

	customers, vehicles, invoices, _, _ := rowCounts(t, db)
	assert.Zero(t, customers)
	assert.Zero(t, vehicles)
	assert.Zero(t, invoices)
}

func TestCreateInvoiceWaybillRequiresDriver(t *testing.T) {
	db := testutil.NewDB(t)
	svc := newTestService(t, db)

	req := baseRequest()
	req.Waybill = &WaybillRequest{DriverName: "  ", MaterialType: "Blue Metal"}

	_, err := svc.CreateInvoice(context.Background(), req)
	assert.ErrorIs(t, err, ErrDriverNameRequired)

	customers, vehicles, invoices, lines, waybills := rowCounts(t, db)
	assert.Zero(t, customers)
	assert.Zero(t, vehicles)
	assert.Zero(t, invoices)
	assert.Zero(t, lines)
	assert.Zero(t, waybills)
}

func TestCreateInvoiceWithWaybill(t *testing.T) {
	db := testutil.NewDB(t)
	svc := newTestService(t, db)

	req := baseRequest()
	req.Waybill = &WaybillRequest{
		DriverName:       "Kumar",
		MaterialType:     "Blue Metal",
		VehicleCapacity:  "3 units",
		DeliveryLocation: "Villupuram",
	}

	invoice, err := svc.CreateInvoice(context.Background(), req)
	require.NoError(t, err)
	require.NotNil(t, invoice.Waybill)
	assert.True(t, invoice.HasWaybill)
	assert.Equal(t, "Kumar", invoice.Waybill.DriverName)
	// Default delivery duration is 2 hours.
	assert.InDelta(t, 2.0, invoice.Waybill.UnloadingTime.Sub(invoice.Waybill.LoadingTime).Hours(), 0.01)
}

func TestCreateInvoiceWaybillCustomDuration(t *testing.T) {
	db := testutil.NewDB(t)
	svc := newTestService(t, db)

	req := baseRequest()
	req.Waybill = &WaybillRequest{DriverName: "Kumar", DeliveryDuration: 45, DurationUnit: "minutes"}

	invoice, err := svc.CreateInvoice(context.Background(), req)
	require.NoError(t, err)
	assert.InDelta(t, 45.0, invoice.Waybill.UnloadingTime.Sub(invoice.Waybill.LoadingTime).Minutes(), 0.01)
}

func TestCreateInvoiceNotificationFailureDoesNotRollBack(t *testing.T) {
	db := testutil.NewDB(t)
	svc := newTestService(t, db)

	// Both channels configured for auto-send, SMS provider broken.
	settings, err := repository.NewSettingsRepository(db).Get()
	require.NoError(t, err)
	settings.SMSAPIKey = "sid"
	settings.SMSSenderID = "+15550001111"
	settings.SMSTemplate = "Bill {bill_no}"
	settings.WhatsAppSenderNumber = "+15550002222"
	settings.WhatsAppTemplate = "Bill {bill_no}"
	settings.AutoSendSMS = true
	settings.AutoSendWhatsApp = true
	require.NoError(t, repository.NewSettingsRepository(db).Update(settings))

	svc.dispatcher.SMSFactory = func(*models.Settings) (notify.Sender, error) {
		return &stubSender{result: notify.Result{Provider: "twilio", Error: "invalid credentials"}}, nil
	}

	invoice, err := svc.CreateInvoice(context.Background(), baseRequest())
	require.NoError(t, err)

	var stored models.Invoice
	require.NoError(t, db.First(&stored, "id = ?", invoice.ID).Error)

	var logs []models.MessageLog
	require.NoError(t, db.Where("invoice_id = ?", invoice.ID).Order("channel").Find(&logs).Error)
	require.Len(t, logs, 2)
	assert.False(t, logs[0].Success)
	assert.Equal(t, "invalid credentials", logs[0].Error)
	assert.True(t, logs[1].Success)
}

func TestCreateInvoiceMergesCustomerFirstWriteWins(t *testing.T) {
	db := testutil.NewDB(t)
	svc := newTestService(t, db)

	_, err := svc.CreateInvoice(context.Background(), baseRequest())
	require.NoError(t, err)

	req := baseRequest()
	req.CustomerPhone = "0000000000"
	req.CustomerGST = "33AAAAA0000A1Z5"
	_, err = svc.CreateInvoice(context.Background(), req)
	require.NoError(t, err)

	var customer models.Customer
	require.NoError(t, db.First(&customer, "name = ?", "Sri Traders").Error)
	require.NotNil(t, customer.Phone)
	assert.Equal(t, "9788388823", *customer.Phone, "existing phone is kept")
	require.NotNil(t, customer.GSTNumber)
	assert.Equal(t, "33AAAAA0000A1Z5", *customer.GSTNumber, "blank gst is filled")
}
