package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

const receiptDateLayout = "2006-01-02"

// Receipt is the immutable snapshot handed to the receipt formatter at checkout.
type Receipt struct {
	CheckoutID    string          `json:"checkout_id"`
	Entries       []CartEntry     `json:"items"`
	TotalQuantity int             `json:"total_quantity"`
	TotalPrice    decimal.Decimal `json:"total_price"`
	Date          time.Time       `json:"completed_at"`
}

// NewReceipt copies the summary entries so later cart mutations cannot leak into it.
func NewReceipt(checkoutID string, summary CartSummary, at time.Time) Receipt {
	entries := make([]CartEntry, len(summary.Entries))
	copy(entries, summary.Entries)
	return Receipt{
		CheckoutID:    checkoutID,
		Entries:       entries,
		TotalQuantity: summary.TotalQuantity,
		TotalPrice:    summary.TotalPrice,
		Date:          at,
	}
}

// DateString is the ISO calendar date of the checkout.
func (r Receipt) DateString() string {
	return r.Date.Format(receiptDateLayout)
}

// Name is the artifact name, derived only from the checkout date.
func (r Receipt) Name() string {
	return "receipt_" + r.DateString()
}
