// Package format renders money, quantities and dates the way French
// invoices expect them (comma decimals, space grouping, dd/mm/yyyy).
package format

import (
	"math"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var frPrinter = message.NewPrinter(language.French)

// FormatNumber renders a decimal with exactly two fraction digits, e.g. "1 234,56".
func FormatNumber(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		v = 0
	}
	return frPrinter.Sprint(number.Decimal(v,
		number.MinFractionDigits(2),
		number.MaxFractionDigits(2),
	))
}

// FormatCurrency renders an EUR amount, e.g. "1 234,56 €".
func FormatCurrency(v float64) string {
	return FormatNumber(v) + " €"
}

// FormatDate renders a date as dd/mm/yyyy; the zero time renders empty.
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("02/01/2006")
}
