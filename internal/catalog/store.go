package catalog

import (
	"errors"
	"strings"

	"github.com/fjod/go_storefront/internal/domain"
)

var ErrItemNotFound = errors.New("item not found in catalog")

// Store holds the catalog of a session. It is read-only between loads.
type Store struct {
	items  []domain.Item
	byCode map[int64]int // code -> index into items
	loaded bool
}

// NewStore creates a store; with no items it starts absent (not loaded).
func NewStore(items ...domain.Item) *Store {
	s := &Store{byCode: make(map[int64]int)}
	if len(items) > 0 {
		s.Load(items)
	}
	return s
}

// Load replaces the held catalog wholesale. When a code repeats, the first record wins.
func (s *Store) Load(items []domain.Item) {
	held := make([]domain.Item, 0, len(items))
	byCode := make(map[int64]int, len(items))
	for _, item := range items {
		if _, dup := byCode[item.Code]; dup {
			continue
		}
		byCode[item.Code] = len(held)
		held = append(held, item)
	}

	s.items = held
	s.byCode = byCode
	s.loaded = true
}

// Loaded reports whether a catalog has been applied to the store.
func (s *Store) Loaded() bool {
	return s.loaded
}

func (s *Store) Len() int {
	return len(s.items)
}

// Search returns items whose brand, model or category contain query, ignoring case.
// The query is matched as given, whitespace included. An empty query returns
// the whole catalog in load order.
func (s *Store) Search(query string) []domain.Item {
	needle := strings.ToLower(query)

	result := make([]domain.Item, 0, len(s.items))
	for _, item := range s.items {
		if needle == "" || item.Matches(needle) {
			result = append(result, item)
		}
	}
	return result
}

func (s *Store) FindByCode(code int64) (domain.Item, error) {
	idx, ok := s.byCode[code]
	if !ok {
		return domain.Item{}, ErrItemNotFound
	}
	return s.items[idx], nil
}
