package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"wardrobeapi/models"

	"github.com/dgraph-io/ristretto"
	"github.com/eko/gocache/lib/v4/cache"
	"github.com/eko/gocache/lib/v4/store"
)

// ErrProposalNotCached means the cache refused the proposal, usually because it is full.
var ErrProposalNotCached = errors.New("proposal was not admitted to the cache")

// ProposalTTL is how long a generated outfit can still be liked or re-rolled.
const ProposalTTL = 30 * time.Minute

// Proposal is a generated, not yet accepted outfit together with the request that produced it.
type Proposal struct {
	UserID   uint            `json:"user_id"`
	Occasion models.Occasion `json:"occasion"`
	Mood     string          `json:"mood"`
	Hint     string          `json:"hint"`
	Outfit   models.Outfit   `json:"outfit"`
}

type ProposalCache interface {
	Put(ctx context.Context, proposal Proposal) error
	Get(ctx context.Context, userID uint, outfitID string) (*Proposal, error)
	Drop(ctx context.Context, outfitID string) error
}

type RistrettoProposalCache struct {
	client *ristretto.Cache
	cache  *cache.Cache[Proposal]
	ttl    time.Duration
}

func NewProposalCache(size CacheSize, ttl time.Duration) (*RistrettoProposalCache, error) {
	client, ristrettoStore, err := newRistretto(size)
	if err != nil {
		return nil, err
	}
	if ttl <= 0 {
		ttl = ProposalTTL
	}
	return &RistrettoProposalCache{
		client: client,
		cache:  cache.New[Proposal](ristrettoStore),
		ttl:    ttl,
	}, nil
}

func (c *RistrettoProposalCache) Put(ctx context.Context, proposal Proposal) error {
	if proposal.Outfit.ID == "" {
		return errors.New("proposal without outfit id")
	}
	err := c.cache.Set(ctx, proposal.Outfit.ID, proposal, store.WithExpiration(c.ttl), store.WithCost(1))
	if err != nil {
		return fmt.Errorf("cache proposal %s: %w", proposal.Outfit.ID, err)
	}
	// ristretto applies sets asynchronously and may still reject them on admission
	c.client.Wait()
	if _, ok := c.client.Get(proposal.Outfit.ID); !ok {
		return fmt.Errorf("cache proposal %s: %w", proposal.Outfit.ID, ErrProposalNotCached)
	}
	return nil
}

// Get returns ErrNotFound for unknown, expired or foreign proposals.
func (c *RistrettoProposalCache) Get(ctx context.Context, userID uint, outfitID string) (*Proposal, error) {
	proposal, err := c.cache.Get(ctx, outfitID)
	if err != nil {
		return nil, ErrNotFound
	}
	if proposal.UserID != userID {
		return nil, ErrNotFound
	}
	return &proposal, nil
}

func (c *RistrettoProposalCache) Drop(ctx context.Context, outfitID string) error {
	return c.cache.Delete(ctx, outfitID)
}
