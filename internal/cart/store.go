package cart

import (
	"github.com/fjod/go_storefront/internal/domain"
	"github.com/shopspring/decimal"
)

// Store holds the entries of a single session cart in insertion order.
type Store struct {
	entries []domain.CartEntry
	index   map[int64]int // code -> position in entries
}

func NewStore() *Store {
	return &Store{index: make(map[int64]int)}
}

// AddItem merges quantity into the entry for item.Code, or appends a new entry
// priced at item.SalePrice. The cart is untouched when quantity < 1.
func (s *Store) AddItem(item domain.Item, quantity int) error {
	if quantity < 1 {
		return &ValidationError{Code: item.Code, Quantity: quantity}
	}

	if pos, ok := s.index[item.Code]; ok {
		s.entries[pos].Quantity += quantity
		return nil
	}

	s.index[item.Code] = len(s.entries)
	s.entries = append(s.entries, domain.NewCartEntry(item, quantity))
	return nil
}

// Entries returns a copy of the entries in insertion order.
func (s *Store) Entries() []domain.CartEntry {
	out := make([]domain.CartEntry, len(s.entries))
	copy(out, s.entries)
	return out
}

func (s *Store) Len() int {
	return len(s.entries)
}

func (s *Store) TotalQuantity() int {
	total := 0
	for _, e := range s.entries {
		total += e.Quantity
	}
	return total
}

func (s *Store) TotalPrice() decimal.Decimal {
	total := decimal.Zero
	for _, e := range s.entries {
		total = total.Add(e.Subtotal())
	}
	return total
}

// Summary returns a snapshot of the entries together with both totals.
func (s *Store) Summary() domain.CartSummary {
	return domain.Summarize(s.Entries())
}

// Clear empties the cart. Calling it on an empty cart is a no-op.
func (s *Store) Clear() {
	s.entries = nil
	s.index = make(map[int64]int)
}
