package domain

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

var decorativeChars = regexp.MustCompile(`[^\w\s]`)

// Item is a catalog record. Field tags follow the remote catalog document.
type Item struct {
	Code      int64           `json:"codigo"`
	Brand     string          `json:"marca"`
	Model     string          `json:"modelo"`
	Category  string          `json:"categoria"`
	Type      string          `json:"tipo"`
	ImageRef  string          `json:"imagen"`
	LogoRef   string          `json:"logo,omitempty"`
	SalePrice decimal.Decimal `json:"precio_venta"`
}

// Title is the "brand model" heading used by cards, cart rows and receipts.
func (i Item) Title() string {
	return strings.TrimSpace(i.Brand + " " + i.Model)
}

// DisplayType returns Type without emoji and other decorative characters.
func (i Item) DisplayType() string {
	return strings.TrimSpace(decorativeChars.ReplaceAllString(i.Type, ""))
}

// Matches reports whether the lower-cased query is a substring of brand, model or category.
func (i Item) Matches(lowerQuery string) bool {
	return strings.Contains(strings.ToLower(i.Brand), lowerQuery) ||
		strings.Contains(strings.ToLower(i.Model), lowerQuery) ||
		strings.Contains(strings.ToLower(i.Category), lowerQuery)
}
