package models

import (
	"time"

	"github.com/google/uuid"
)

// GalleryPhoto is one photo in the gallery grid. LikesCount is maintained
// by the store in the same transaction as the like row.
type GalleryPhoto struct {
	ID        uuid.UUID `json:"id"`
	CreatedAt time.Time `json:"created_at"`

	URL      string `json:"url"`
	Caption  string `json:"caption,omitempty"`
	Location string `json:"location,omitempty"`
	TakenOn  string `json:"date,omitempty"`
	Span     string `json:"span,omitempty"`

	LikesCount int `json:"likes_count"`
}

// GalleryLike records that a user (guest token or admin session identity)
// liked a photo. Unique per (photo_id, user_identifier).
type GalleryLike struct {
	ID             uuid.UUID `json:"id"`
	CreatedAt      time.Time `json:"created_at"`
	PhotoID        uuid.UUID `json:"photo_id"`
	UserIdentifier string    `json:"user_identifier"`
}
