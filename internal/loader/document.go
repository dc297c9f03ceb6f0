package loader

import (
	"encoding/json"
	"fmt"

	"github.com/fjod/go_storefront/internal/domain"
)

// DecodeItems parses a catalog document: a JSON array of item records.
func DecodeItems(data []byte) ([]domain.Item, error) {
	var items []domain.Item
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedCatalog, err)
	}

	for _, item := range items {
		if item.SalePrice.IsNegative() {
			return nil, fmt.Errorf("%w: item %d has negative price %s", ErrMalformedCatalog, item.Code, item.SalePrice)
		}
	}
	return items, nil
}
