package cart

import (
	"context"
	"errors"
)

// Cache holds a per-user snapshot of the cart so other instances can
// read it without re-hydrating from the backend.
type Cache interface {
	Get(ctx context.Context, userID string) ([]Line, error)
	Set(ctx context.Context, userID string, lines []Line) error
	Delete(ctx context.Context, userID string) error
}

var ErrCacheMiss = errors.New("cache miss")
