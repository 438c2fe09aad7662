package export

import (
	"fmt"

	"materials-billing-backend/internal/models"

	"github.com/samber/lo"
)

// Renderer is implemented by the external document collaborator (PDF etc.).
// The engine only supplies the assembled invoice and settings.
type Renderer interface {
	Render(invoice *models.Invoice, settings *models.Settings) ([]byte, error)
}

// Formatter is implemented by the external tabular-output collaborator
// (CSV, spreadsheet). It receives the already-scoped rows from Rows.
type Formatter interface {
	Format(header []string, rows [][]string) ([]byte, error)
}

// Header is the column order Rows produces.
var Header = []string{
	"Bill No", "Date", "Customer", "Vehicle", "Subtotal", "CGST", "SGST", "Round Off", "Grand Total",
}

// Rows flattens invoices into ordered string cells for an external
// formatter. Callers must pass an access-scoped invoice set.
func Rows(invoices []models.Invoice) [][]string {
	return lo.Map(invoices, func(inv models.Invoice, _ int) []string {
		customer := ""
		if inv.Customer != nil {
			customer = inv.Customer.Name
		}
		vehicle := ""
		if inv.Vehicle != nil {
			vehicle = inv.Vehicle.VehicleNumber
		}
		return []string{
			inv.BillNo,
			inv.Date.Format("02-01-2006"),
			customer,
			vehicle,
			fmt.Sprintf("%.2f", inv.Subtotal),
			fmt.Sprintf("%.2f", inv.CGST),
			fmt.Sprintf("%.2f", inv.SGST),
			fmt.Sprintf("%.2f", inv.RoundOff),
			fmt.Sprintf("%.2f", inv.GrandTotal),
		}
	})
}
