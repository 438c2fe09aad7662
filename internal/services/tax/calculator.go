package tax

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// ErrRateOutOfRange marks a tax-rate configuration outside [0, 100]. It is
// reported at the point of use, never silently clamped.
var ErrRateOutOfRange = errors.New("tax rate must be within [0, 100]")

// Breakdown holds the computed tax amounts for one invoice, each rounded to
// 2 decimal places.
type Breakdown struct {
	CGST       float64
	SGST       float64
	RoundOff   float64
	GrandTotal float64
}

// Compute derives CGST, SGST and the grand total from a subtotal. Amounts are
// rounded half away from zero to 2 decimal places; the same rule is used
// everywhere monetary values are produced.
func Compute(subtotal, cgstPercent, sgstPercent, roundOff float64) (Breakdown, error) {
	if subtotal < 0 {
		return Breakdown{}, fmt.Errorf("subtotal must not be negative, got %v", subtotal)
	}
	if cgstPercent < 0 || cgstPercent > 100 {
		return Breakdown{}, fmt.Errorf("cgst percent %v: %w", cgstPercent, ErrRateOutOfRange)
	}
	if sgstPercent < 0 || sgstPercent > 100 {
		return Breakdown{}, fmt.Errorf("sgst percent %v: %w", sgstPercent, ErrRateOutOfRange)
	}

	sub := decimal.NewFromFloat(subtotal)
	hundred := decimal.NewFromInt(100)

	cgst := sub.Mul(decimal.NewFromFloat(cgstPercent)).Div(hundred).Round(2)
	sgst := sub.Mul(decimal.NewFromFloat(sgstPercent)).Div(hundred).Round(2)
	ro := decimal.NewFromFloat(roundOff)
	grand := sub.Add(cgst).Add(sgst).Add(ro).Round(2)

	return Breakdown{
		CGST:       cgst.InexactFloat64(),
		SGST:       sgst.InexactFloat64(),
		RoundOff:   ro.InexactFloat64(),
		GrandTotal: grand.InexactFloat64(),
	}, nil
}

// LineAmount computes quantity × rate rounded to 2 decimal places.
func LineAmount(quantity, rate float64) float64 {
	return decimal.NewFromFloat(quantity).
		Mul(decimal.NewFromFloat(rate)).
		Round(2).
		InexactFloat64()
}
