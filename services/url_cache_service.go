package services

import (
	"context"
	"fmt"
	"time"

	"github.com/eko/gocache/lib/v4/cache"
	"github.com/eko/gocache/lib/v4/store"
	"github.com/rs/zerolog/log"
)

// slightly less than presignedURLExpiration so a cached URL never outlives its signature
const readURLCacheTTL = 12 * time.Minute

type URLCacheServiceProvider interface {
	GetReadURL(ctx context.Context, objectKey string) (string, error)
}

// URLCacheService hands out presigned read URLs for clothing photos,
// presigning only on cache misses.
type URLCacheService struct {
	cache      *cache.LoadableCache[string]
	bucketName string
}

func NewURLCacheService(awsService AWSServiceProvider, bucketName string) (*URLCacheService, error) {
	_, ristrettoStore, err := newRistretto(DefaultCacheSize)
	if err != nil {
		return nil, err
	}

	presignOnMiss := func(ctx context.Context, key any) (string, []store.Option, error) {
		objectKey, ok := key.(string)
		if !ok {
			return "", nil, fmt.Errorf("photo url cache: unexpected key type %T", key)
		}
		log.Ctx(ctx).Debug().Str("object_key", objectKey).Msg("url cache miss, presigning")
		url, err := awsService.PresignPhotoRead(ctx, bucketName, objectKey)
		return url, []store.Option{store.WithExpiration(readURLCacheTTL), store.WithCost(1)}, err
	}

	photoURLs := cache.NewLoadable[string](
		presignOnMiss,
		cache.New[string](ristrettoStore),
	)
	return &URLCacheService{
		cache:      photoURLs,
		bucketName: bucketName,
	}, nil
}

func (s *URLCacheService) GetReadURL(ctx context.Context, objectKey string) (string, error) {
	if objectKey == "" {
		return "", nil
	}
	return s.cache.Get(ctx, objectKey)
}
