package services

import (
	"fmt"

	"github.com/dgraph-io/ristretto"
	ristretto_store "github.com/eko/gocache/store/ristretto/v4"
)

// CacheSize bounds a cache by entry count: every entry costs 1 and
// ristretto's internal per-item overhead is not counted.
type CacheSize struct {
	NumCounters int64
	MaxCost     int64
}

// DefaultCacheSize holds 100k entries, NumCounters is 10x that as ristretto recommends.
var DefaultCacheSize = CacheSize{NumCounters: 1e6, MaxCost: 100_000}

func newRistretto(size CacheSize) (*ristretto.Cache, *ristretto_store.RistrettoStore, error) {
	client, err := ristretto.NewCache(&ristretto.Config{
		NumCounters:        size.NumCounters,
		MaxCost:            size.MaxCost,
		BufferItems:        64,
		IgnoreInternalCost: true,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create ristretto cache: %w", err)
	}
	return client, ristretto_store.NewRistretto(client), nil
}
