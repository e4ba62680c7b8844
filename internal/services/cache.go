package services

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/dsahare/portfolio-backend/internal/models"
)

const (
	// galleryCacheKey holds the JSON-encoded photo list.
	galleryCacheKey = "cache:gallery:photos"
	// galleryCacheTTL bounds staleness when an invalidation is missed.
	galleryCacheTTL = 10 * time.Minute
)

// PhotoCache is the read-through cache in front of the photo table. The
// count mutators exist for the optimistic like command: they adjust the
// cached copy only, never the store.
type PhotoCache interface {
	GetPhotos(ctx context.Context) ([]*models.GalleryPhoto, bool, error)
	SetPhotos(ctx context.Context, photos []*models.GalleryPhoto) error
	AdjustCount(ctx context.Context, photoID uuid.UUID, delta int) error
	SetCount(ctx context.Context, photoID uuid.UUID, count int) error
	Invalidate(ctx context.Context) error
}

// RedisPhotoCache caches the gallery listing in Redis.
type RedisPhotoCache struct {
	client *redis.Client
}

// NewRedisPhotoCache creates a PhotoCache on the given Redis client.
func NewRedisPhotoCache(client *redis.Client) *RedisPhotoCache {
	return &RedisPhotoCache{client: client}
}

// GetPhotos returns the cached listing. A miss is not an error; Redis
// failures are.
func (c *RedisPhotoCache) GetPhotos(ctx context.Context) ([]*models.GalleryPhoto, bool, error) {
	val, err := c.client.Get(ctx, galleryCacheKey).Result()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		log.Printf("[GALLERY] cache read failed: %v", err)
		return nil, false, err
	}

	var photos []*models.GalleryPhoto
	if err := json.Unmarshal([]byte(val), &photos); err != nil {
		return nil, false, err
	}
	return photos, true, nil
}

// SetPhotos stores the listing with the default TTL.
func (c *RedisPhotoCache) SetPhotos(ctx context.Context, photos []*models.GalleryPhoto) error {
	jsonData, err := json.Marshal(photos)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, galleryCacheKey, jsonData, galleryCacheTTL).Err()
}

// AdjustCount applies a tentative delta to one photo's cached count,
// floored at zero. A cache miss is a no-op.
func (c *RedisPhotoCache) AdjustCount(ctx context.Context, photoID uuid.UUID, delta int) error {
	return c.mutateCount(ctx, photoID, func(count int) int {
		count += delta
		if count < 0 {
			count = 0
		}
		return count
	})
}

// SetCount pins one photo's cached count to the store's authoritative
// value. A cache miss is a no-op.
func (c *RedisPhotoCache) SetCount(ctx context.Context, photoID uuid.UUID, count int) error {
	return c.mutateCount(ctx, photoID, func(int) int { return count })
}

func (c *RedisPhotoCache) mutateCount(ctx context.Context, photoID uuid.UUID, fn func(int) int) error {
	photos, hit, err := c.GetPhotos(ctx)
	if err != nil || !hit {
		return err
	}
	for _, p := range photos {
		if p.ID == photoID {
			p.LikesCount = fn(p.LikesCount)
		}
	}
	return c.SetPhotos(ctx, photos)
}

// Invalidate drops the cached listing.
func (c *RedisPhotoCache) Invalidate(ctx context.Context) error {
	return c.client.Del(ctx, galleryCacheKey).Err()
}
