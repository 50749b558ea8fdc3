// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package comicinfo

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/taibuivan/yomira-galleryinfo/internal/platform/constants"
)

// Cache stores encoded ComicInfo documents keyed by gallery ID and generation.
//
// Every invalidation advances a gallery's generation. A document is only
// readable under the generation it was rendered for, so a render that loaded
// the record before an import can never be served after it.
type Cache interface {
	// Generation reports the current generation of a gallery, 0 if never invalidated.
	Generation(context context.Context, galleryID int64) (uint64, error)
	// Get reports found=false on a miss; err is reserved for backend failures.
	Get(context context.Context, galleryID int64, generation uint64) (document []byte, found bool, err error)
	Set(context context.Context, galleryID int64, generation uint64, document []byte, ttl time.Duration) error
	// Invalidate advances the generation, orphaning every stored document.
	Invalidate(context context.Context, galleryID int64) error
}

// RedisCache implements [Cache] on Redis string keys.
//
// Documents live under comicinfo:<id>:<generation> and expire with their TTL.
// The generation counter lives under comicinfo:gen:<id> without expiry.
type RedisCache struct {
	client redis.UniversalClient
}

// NewRedisCache creates a new [RedisCache].
func NewRedisCache(client redis.UniversalClient) *RedisCache {
	return &RedisCache{client: client}
}

// CacheKey returns the Redis key holding a gallery's document for one generation.
func CacheKey(galleryID int64, generation uint64) string {
	return constants.RedisPrefixComicInfo + strconv.FormatInt(galleryID, 10) + ":" + strconv.FormatUint(generation, 10)
}

// GenerationKey returns the Redis key holding a gallery's generation counter.
func GenerationKey(galleryID int64) string {
	return constants.RedisPrefixComicInfoGeneration + strconv.FormatInt(galleryID, 10)
}

// Generation reads the counter. A missing key is generation 0.
func (cache *RedisCache) Generation(context context.Context, galleryID int64) (uint64, error) {
	generation, err := cache.client.Get(context, GenerationKey(galleryID)).Uint64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return generation, nil
}

// Get fetches a cached document.
func (cache *RedisCache) Get(context context.Context, galleryID int64, generation uint64) ([]byte, bool, error) {
	document, err := cache.client.Get(context, CacheKey(galleryID, generation)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return document, true, nil
}

// Set stores a document with an expiry.
func (cache *RedisCache) Set(context context.Context, galleryID int64, generation uint64, document []byte, ttl time.Duration) error {
	return cache.client.Set(context, CacheKey(galleryID, generation), document, ttl).Err()
}

// Invalidate increments the generation counter.
func (cache *RedisCache) Invalidate(context context.Context, galleryID int64) error {
	return cache.client.Incr(context, GenerationKey(galleryID)).Err()
}
