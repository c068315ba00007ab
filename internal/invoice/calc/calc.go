// Package calc derives line and invoice totals. All monetary values are
// rounded to two decimals; aggregation runs over integer cents so a sum
// over many lines cannot drift.
package calc

import (
	"math"
	"strings"

	"github.com/MathisL971/invoicegen/internal/invoice/domain"
)

// VATRate is the single supported VAT rate. Invoices only choose whether
// it applies, never the rate itself.
const VATRate = 0.20

// Round2 rounds to two decimal places, half away from zero.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// ItemTotal computes the extended line total.
func ItemTotal(unitPriceHT, quantity float64) float64 {
	return Round2(unitPriceHT * quantity)
}

// Totals aggregates one invoice.
type Totals struct {
	TotalHT  float64
	TotalVAT float64
	TotalTTC float64
}

// Compute sums already-rounded line totals in cents and applies VAT when
// the invoice carries it.
func Compute(items []domain.InvoiceItem, vatApplicable bool) Totals {
	var cents int64
	for _, item := range items {
		cents += int64(math.Round(Round2(item.TotalHT) * 100))
	}

	ht := float64(cents) / 100
	if !vatApplicable {
		return Totals{TotalHT: ht, TotalTTC: ht}
	}

	ttc := Round2(ht * (1 + VATRate))
	return Totals{
		TotalHT:  ht,
		TotalVAT: Round2(ttc - ht),
		TotalTTC: ttc,
	}
}

// ValidateItems rejects an empty list, a blank description or a zero line
// total (an incomplete row). Errors surface as one validation failure.
func ValidateItems(items []domain.ItemInput) error {
	if len(items) == 0 {
		return domain.ErrInvalidItems
	}
	for _, item := range items {
		if strings.TrimSpace(item.Description) == "" {
			return domain.ErrInvalidItems
		}
		if ItemTotal(item.UnitPriceHT, item.Quantity) == 0 {
			return domain.ErrInvalidItems
		}
	}
	return nil
}
