package domain

import "github.com/shopspring/decimal"

// CartEntry is a line of the cart. UnitPrice is locked in when the item is first added.
type CartEntry struct {
	Code      int64           `json:"code"`
	Brand     string          `json:"brand"`
	Model     string          `json:"model"`
	ImageRef  string          `json:"image_ref"`
	LogoRef   string          `json:"logo_ref,omitempty"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int             `json:"quantity"`
}

func NewCartEntry(item Item, quantity int) CartEntry {
	return CartEntry{
		Code:      item.Code,
		Brand:     item.Brand,
		Model:     item.Model,
		ImageRef:  item.ImageRef,
		LogoRef:   item.LogoRef,
		UnitPrice: item.SalePrice,
		Quantity:  quantity,
	}
}

func (e CartEntry) Title() string {
	return Item{Brand: e.Brand, Model: e.Model}.Title()
}

// Subtotal is unit price times quantity. It is never stored.
func (e CartEntry) Subtotal() decimal.Decimal {
	return e.UnitPrice.Mul(decimal.NewFromInt(int64(e.Quantity)))
}

// CartSummary is a read-only view of the cart together with its derived totals.
type CartSummary struct {
	Entries       []CartEntry     `json:"entries"`
	TotalQuantity int             `json:"total_quantity"`
	TotalPrice    decimal.Decimal `json:"total_price"`
}

// Summarize derives the totals of entries.
func Summarize(entries []CartEntry) CartSummary {
	summary := CartSummary{
		Entries:    entries,
		TotalPrice: decimal.Zero,
	}
	for _, e := range entries {
		summary.TotalQuantity += e.Quantity
		summary.TotalPrice = summary.TotalPrice.Add(e.Subtotal())
	}
	return summary
}

func (s CartSummary) IsEmpty() bool {
	return len(s.Entries) == 0
}
