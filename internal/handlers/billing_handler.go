package handler

import (
	"errors"
	"net/http"
	"time"

	"materials-billing-backend/internal/repository"
	"materials-billing-backend/internal/services/access"
	"materials-billing-backend/internal/services/billing"
	"materials-billing-backend/internal/services/export"
	"materials-billing-backend/internal/services/resolver"
	"materials-billing-backend/internal/services/tax"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BillingHandler struct {
	service      *billing.Service
	invoiceRepo  *repository.InvoiceRepository
	customerRepo *repository.CustomerRepository
	vehicleRepo  *repository.VehicleRepository
}

func NewBillingHandler(
	service *billing.Service,
	invoiceRepo *repository.InvoiceRepository,
	customerRepo *repository.CustomerRepository,
	vehicleRepo *repository.VehicleRepository,
) *BillingHandler {
	return &BillingHandler{
		service:      service,
		invoiceRepo:  invoiceRepo,
		customerRepo: customerRepo,
		vehicleRepo:  vehicleRepo,
	}
}

func (h *BillingHandler) CreateInvoice(c *gin.Context) {
	var req billing.CreateInvoiceRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}
	req.UserID = currentUser(c).ID

	invoice, err := h.service.CreateInvoice(c.Request.Context(), req)
	if err != nil {
		status := http.StatusInternalServerError
		if isValidationError(err) {
			status = http.StatusBadRequest
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"id": invoice.ID, "bill_no": invoice.BillNo})
}

func (h *BillingHandler) ListInvoices(c *gin.Context) {
	user := currentUser(c)
	from, to, err := dateRange(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	invoices, err := h.invoiceRepo.List(access.InvoiceScope(user.Role, user.CustomerID), from, to)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"invoices": invoices, "count": len(invoices)})
}

func (h *BillingHandler) GetInvoice(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid invoice ID"})
		return
	}

	user := currentUser(c)
	invoice, err := h.invoiceRepo.GetByID(id, access.InvoiceScope(user.Role, user.CustomerID))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "invoice not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, invoice)
}

func (h *BillingHandler) DeleteInvoice(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid invoice ID"})
		return
	}

	if err := h.invoiceRepo.Delete(id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "invoice deleted"})
}

// ResendNotification re-dispatches SMS and WhatsApp for an invoice the
// caller can see. Outcomes are returned per channel.
func (h *BillingHandler) ResendNotification(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid invoice ID"})
		return
	}

	user := currentUser(c)
	invoice, err := h.invoiceRepo.GetByID(id, access.InvoiceScope(user.Role, user.CustomerID))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "invoice not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	results, err := h.service.Resend(invoice)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, results)
}

// ExportInvoices returns the scoped tabular rows an external formatter
// consumes.
func (h *BillingHandler) ExportInvoices(c *gin.Context) {
	user := currentUser(c)
	from, to, err := dateRange(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	invoices, err := h.invoiceRepo.List(access.InvoiceScope(user.Role, user.CustomerID), from, to)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"header": export.Header, "rows": export.Rows(invoices)})
}

func (h *BillingHandler) SearchCustomers(c *gin.Context) {
	customers, err := h.customerRepo.Search(c.Query("q"), 10)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, customers)
}

func (h *BillingHandler) SearchVehicles(c *gin.Context) {
	vehicles, err := h.vehicleRepo.Search(c.Query("q"), 10)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, vehicles)
}

func isValidationError(err error) bool {
	return errors.Is(err, resolver.ErrEmptyCustomerName) ||
		errors.Is(err, resolver.ErrInvalidVehicleNo) ||
		errors.Is(err, billing.ErrNoValidLines) ||
		errors.Is(err, billing.ErrDriverNameRequired) ||
		errors.Is(err, tax.ErrRateOutOfRange)
}

// dateRange parses optional from/to query params in DD-MM-YYYY form; the to
// bound is made inclusive of the whole day.
func dateRange(c *gin.Context) (*time.Time, *time.Time, error) {
	var from, to *time.Time
	if raw := c.Query("from"); raw != "" {
		t, err := time.Parse("02-01-2006", raw)
		if err != nil {
			return nil, nil, errors.New("invalid from date, expected DD-MM-YYYY")
		}
		from = &t
	}
	if raw := c.Query("to"); raw != "" {
		t, err := time.Parse("02-01-2006", raw)
		if err != nil {
			return nil, nil, errors.New("invalid to date, expected DD-MM-YYYY")
		}
		end := t.Add(24*time.Hour - time.Nanosecond)
		to = &end
	}
	return from, to, nil
}
