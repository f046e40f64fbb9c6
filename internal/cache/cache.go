// Package cache stores serialized calculation outputs keyed by their
// canonical inputs.
package cache

import (
	"context"
	"time"
)

type Cache interface {
	// Get reports a miss as (nil, false, nil). An error means the backend
	// could not answer.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Close() error
}

// Nop never stores anything.
type Nop struct{}

func (Nop) Get(context.Context, string) ([]byte, bool, error)        { return nil, false, nil }
func (Nop) Set(context.Context, string, []byte, time.Duration) error { return nil }
func (Nop) Close() error                                             { return nil }
