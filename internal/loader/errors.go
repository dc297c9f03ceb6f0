package loader

import (
	"errors"
	"fmt"
)

var (
	ErrSourceUnavailable = errors.New("catalog source unavailable")
	ErrMalformedCatalog  = errors.New("malformed catalog document")
)

// LoadError is returned when the catalog could not be retrieved. The catalog
// is treated as empty and the message is shown to the user as is.
type LoadError struct {
	Source string
	Err    error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("failed to load catalog from %s: %v", e.Source, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}
