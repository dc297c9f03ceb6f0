package cache

import (
	"context"
	"errors"
)

// DocumentCache stores raw catalog documents keyed by their source.
type DocumentCache interface {
	Get(ctx context.Context, source string) ([]byte, error)
	Set(ctx context.Context, source string, document []byte) error
	Delete(ctx context.Context, source string) error
}

var ErrCacheMiss = errors.New("cache miss")
