package services

import (
	"context"
	"log"

	"github.com/google/uuid"

	"github.com/dsahare/portfolio-backend/internal/models"
)

// PhotoStore is the authoritative source for photos and likes.
type PhotoStore interface {
	ListPhotos(ctx context.Context) ([]*models.GalleryPhoto, error)
	LikedPhotoIDs(ctx context.Context, userIdentifier string) ([]uuid.UUID, error)
	HasLiked(ctx context.Context, photoID uuid.UUID, userIdentifier string) (bool, error)
	Like(ctx context.Context, photoID uuid.UUID, userIdentifier string) (int, error)
	Unlike(ctx context.Context, photoID uuid.UUID, userIdentifier string) (int, error)
}

// GalleryNotifier pushes invalidation events to connected clients.
type GalleryNotifier interface {
	BroadcastInvalidate()
}

// ToggleResult reports the post-toggle state of one photo for the caller.
type ToggleResult struct {
	PhotoID    uuid.UUID `json:"photo_id"`
	Liked      bool      `json:"liked"`
	LikesCount int       `json:"likes_count"`
}

// GalleryService serves the photo grid through a cache and toggles likes.
// The store is the source of truth; the cache carries tentative counts
// between a toggle and its reconciliation.
type GalleryService struct {
	store    PhotoStore
	cache    PhotoCache
	notifier GalleryNotifier
}

// NewGalleryService wires the gallery. cache and notifier may be nil.
func NewGalleryService(store PhotoStore, cache PhotoCache, notifier GalleryNotifier) *GalleryService {
	return &GalleryService{store: store, cache: cache, notifier: notifier}
}

// ListPhotos returns the gallery ordered oldest first, served from cache
// when warm.
func (s *GalleryService) ListPhotos(ctx context.Context) ([]*models.GalleryPhoto, error) {
	if s.cache != nil {
		if photos, hit, err := s.cache.GetPhotos(ctx); err == nil && hit {
			return photos, nil
		}
	}

	photos, err := s.store.ListPhotos(ctx)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.SetPhotos(ctx, photos); err != nil {
			log.Printf("[GALLERY] failed to cache photo listing: %v", err)
		}
	}
	return photos, nil
}

// LikedPhotoIDs returns the photo IDs the caller already liked.
func (s *GalleryService) LikedPhotoIDs(ctx context.Context, userIdentifier string) ([]uuid.UUID, error) {
	return s.store.LikedPhotoIDs(ctx, userIdentifier)
}

// ToggleLike likes the photo when the caller hasn't, unlikes it when they
// have. Idempotent per (user, photo). The cached count is mutated
// optimistically, reconciled from the store on success, and rolled back on
// failure.
func (s *GalleryService) ToggleLike(ctx context.Context, photoID uuid.UUID, userIdentifier string) (*ToggleResult, error) {
	liked, err := s.store.HasLiked(ctx, photoID, userIdentifier)
	if err != nil {
		return nil, err
	}

	delta := 1
	persist := s.store.Like
	if liked {
		delta = -1
		persist = s.store.Unlike
	}

	cmd := newLikeCommand(s.cache, photoID, delta)
	cmd.Apply(ctx)

	count, err := persist(ctx, photoID, userIdentifier)
	if err != nil {
		cmd.Rollback(ctx)
		return nil, err
	}
	cmd.Reconcile(ctx, count)

	if s.notifier != nil {
		s.notifier.BroadcastInvalidate()
	}

	return &ToggleResult{PhotoID: photoID, Liked: !liked, LikesCount: count}, nil
}

// InvalidateListing drops the cached grid and notifies clients. Called
// after out-of-band photo changes (admin upload).
func (s *GalleryService) InvalidateListing(ctx context.Context) {
	if s.cache != nil {
		if err := s.cache.Invalidate(ctx); err != nil {
			log.Printf("[GALLERY] failed to invalidate photo cache: %v", err)
		}
	}
	if s.notifier != nil {
		s.notifier.BroadcastInvalidate()
	}
}

// likeCommand is the tentative cache mutation for one toggle: Apply puts
// the expected count in the cache before the write, Reconcile replaces it
// with the store's answer, Rollback undoes Apply when the write fails.
type likeCommand struct {
	cache   PhotoCache
	photoID uuid.UUID
	delta   int
	applied bool
}

func newLikeCommand(cache PhotoCache, photoID uuid.UUID, delta int) *likeCommand {
	return &likeCommand{cache: cache, photoID: photoID, delta: delta}
}

func (c *likeCommand) Apply(ctx context.Context) {
	if c.cache == nil {
		return
	}
	if err := c.cache.AdjustCount(ctx, c.photoID, c.delta); err != nil {
		log.Printf("[GALLERY] optimistic count update failed: %v", err)
		return
	}
	c.applied = true
}

func (c *likeCommand) Rollback(ctx context.Context) {
	if !c.applied {
		return
	}
	if err := c.cache.AdjustCount(ctx, c.photoID, -c.delta); err != nil {
		log.Printf("[GALLERY] optimistic count rollback failed: %v", err)
	}
	c.applied = false
}

func (c *likeCommand) Reconcile(ctx context.Context, count int) {
	if c.cache == nil {
		return
	}
	if err := c.cache.SetCount(ctx, c.photoID, count); err != nil {
		log.Printf("[GALLERY] count reconcile failed: %v", err)
	}
}
