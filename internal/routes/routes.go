package routes

import (
	"os"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	handler "materials-billing-backend/internal/handlers"
	"materials-billing-backend/internal/repository"
	"materials-billing-backend/internal/services/billing"
	"materials-billing-backend/internal/services/notify"
	"materials-billing-backend/internal/services/sequence"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB) {
	invoiceRepo := repository.NewInvoiceRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	vehicleRepo := repository.NewVehicleRepository(db)
	itemRepo := repository.NewItemRepository(db)
	settingsRepo := repository.NewSettingsRepository(db)
	userRepo := repository.NewUserRepository(db)

	dispatcher := notify.NewDispatcher(db, os.Getenv("PUBLIC_BASE_URL"))
	billingService := billing.NewService(db, sequence.NewAllocator(), settingsRepo, dispatcher)

	billingHandler := handler.NewBillingHandler(billingService, invoiceRepo, customerRepo, vehicleRepo)
	itemHandler := handler.NewItemHandler(itemRepo)
	settingsHandler := handler.NewSettingsHandler(settingsRepo)

	api := r.Group("/api")

	// Health check
	api.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	authed := api.Group("")
	authed.Use(handler.Identity(userRepo))

	invoices := authed.Group("/invoices")
	{
		invoices.POST("", billingHandler.CreateInvoice)
		invoices.GET("", billingHandler.ListInvoices)
		invoices.GET("/export", billingHandler.ExportInvoices)
		invoices.GET("/:id", billingHandler.GetInvoice)
		invoices.DELETE("/:id", handler.AdminOnly(), billingHandler.DeleteInvoice)
		invoices.POST("/:id/notify", billingHandler.ResendNotification)
	}

	authed.GET("/customers/search", billingHandler.SearchCustomers)
	authed.GET("/vehicles/search", billingHandler.SearchVehicles)

	items := authed.Group("/items")
	{
		items.GET("", itemHandler.ListItems)
		items.GET("/:id/suggest-rate", itemHandler.SuggestRate)
		items.POST("", handler.AdminOnly(), itemHandler.CreateItem)
		items.PUT("/:id", handler.AdminOnly(), itemHandler.UpdateItem)
	}

	settings := authed.Group("/settings")
	settings.Use(handler.AdminOnly())
	{
		settings.GET("", settingsHandler.GetSettings)
		settings.PUT("", settingsHandler.UpdateSettings)
	}
}
