package receipt

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/fjod/go_storefront/internal/domain"
	"github.com/shopspring/decimal"
)

const DefaultTitle = "GarageOnline - Purchase Invoice"

// Lines returns the body of the receipt, one printed line per element.
func Lines(r domain.Receipt) []string {
	lines := []string{
		fmt.Sprintf("Date: %s", r.DateString()),
		fmt.Sprintf("Total items: %d", r.TotalQuantity),
		"",
		"Purchase detail:",
	}
	for _, e := range r.Entries {
		lines = append(lines, fmt.Sprintf("%s - Quantity: %d - Subtotal: $%s",
			e.Title(), e.Quantity, FormatAmount(e.Subtotal())))
	}
	lines = append(lines, "", fmt.Sprintf("TOTAL: $%s", FormatAmount(r.TotalPrice)))
	return lines
}

// FormatAmount renders d with thousands separators and cents only when present,
// e.g. 90000 -> "90,000" and 20000.5 -> "20,000.50".
func FormatAmount(d decimal.Decimal) string {
	rounded := d.Round(2)

	sign := ""
	if rounded.IsNegative() {
		sign, rounded = "-", rounded.Abs()
	}

	whole := rounded.Truncate(0)
	cents := rounded.Sub(whole).StringFixed(2) // "0.xx"
	if cents == "0.00" {
		return sign + humanize.BigComma(whole.BigInt())
	}
	return sign + humanize.BigComma(whole.BigInt()) + cents[1:]
}
