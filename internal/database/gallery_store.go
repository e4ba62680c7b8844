package database

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/dsahare/portfolio-backend/internal/models"
)

// GalleryStore persists gallery photos and per-user likes. likes_count on
// the photo row is updated in the same transaction as the like row, so the
// counter never drifts from the like table.
type GalleryStore struct {
	db *sql.DB
}

// NewGalleryStore creates a GalleryStore on the given database handle.
func NewGalleryStore(db *sql.DB) *GalleryStore {
	return &GalleryStore{db: db}
}

// ListPhotos returns all photos ordered by created_at ascending.
func (s *GalleryStore) ListPhotos(ctx context.Context) ([]*models.GalleryPhoto, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, created_at, url, caption, location, taken_on, span, likes_count
		FROM gallery_photos
		ORDER BY created_at ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	photos := make([]*models.GalleryPhoto, 0)
	for rows.Next() {
		var p models.GalleryPhoto
		var caption, location, takenOn, span sql.NullString
		if err := rows.Scan(&p.ID, &p.CreatedAt, &p.URL, &caption, &location, &takenOn, &span, &p.LikesCount); err != nil {
			return nil, err
		}
		p.Caption = caption.String
		p.Location = location.String
		p.TakenOn = takenOn.String
		p.Span = span.String
		photos = append(photos, &p)
	}
	return photos, rows.Err()
}

// InsertPhoto registers a new photo and returns its ID.
func (s *GalleryStore) InsertPhoto(ctx context.Context, photo *models.GalleryPhoto) (uuid.UUID, error) {
	id := uuid.New()
	createdAt := time.Now().UTC()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO gallery_photos (id, created_at, url, caption, location, taken_on, span, likes_count)
		VALUES ($1, $2, $3, $4, $5, $6, $7, 0)
	`, id, createdAt, photo.URL, photo.Caption, photo.Location, photo.TakenOn, photo.Span)
	if err != nil {
		return uuid.Nil, err
	}

	photo.ID = id
	photo.CreatedAt = createdAt
	return id, nil
}

// LikedPhotoIDs returns the photo IDs the given user has liked.
func (s *GalleryStore) LikedPhotoIDs(ctx context.Context, userIdentifier string) ([]uuid.UUID, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT photo_id FROM gallery_likes WHERE user_identifier = $1
	`, userIdentifier)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := make([]uuid.UUID, 0)
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// Like records a like for (photo, user). Idempotent: a duplicate pair is a
// no-op and the counter is untouched. Returns the photo's current count.
func (s *GalleryStore) Like(ctx context.Context, photoID uuid.UUID, userIdentifier string) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		INSERT INTO gallery_likes (id, created_at, photo_id, user_identifier)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (photo_id, user_identifier) DO NOTHING
	`, uuid.New(), time.Now().UTC(), photoID, userIdentifier)
	if err != nil {
		return 0, err
	}

	inserted, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}

	var count int
	if inserted > 0 {
		err = tx.QueryRowContext(ctx, `
			UPDATE gallery_photos SET likes_count = likes_count + 1
			WHERE id = $1
			RETURNING likes_count
		`, photoID).Scan(&count)
	} else {
		err = tx.QueryRowContext(ctx, `SELECT likes_count FROM gallery_photos WHERE id = $1`, photoID).Scan(&count)
	}
	if err != nil {
		return 0, err
	}

	return count, tx.Commit()
}

// Unlike removes a like for (photo, user). Idempotent: a missing pair is a
// no-op. The counter is floored at zero. Returns the photo's current count.
func (s *GalleryStore) Unlike(ctx context.Context, photoID uuid.UUID, userIdentifier string) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		DELETE FROM gallery_likes WHERE photo_id = $1 AND user_identifier = $2
	`, photoID, userIdentifier)
	if err != nil {
		return 0, err
	}

	deleted, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}

	var count int
	if deleted > 0 {
		err = tx.QueryRowContext(ctx, `
			UPDATE gallery_photos SET likes_count = GREATEST(likes_count - 1, 0)
			WHERE id = $1
			RETURNING likes_count
		`, photoID).Scan(&count)
	} else {
		err = tx.QueryRowContext(ctx, `SELECT likes_count FROM gallery_photos WHERE id = $1`, photoID).Scan(&count)
	}
	if err != nil {
		return 0, err
	}

	return count, tx.Commit()
}

// HasLiked reports whether the user already liked the photo.
func (s *GalleryStore) HasLiked(ctx context.Context, photoID uuid.UUID, userIdentifier string) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx, `
		SELECT EXISTS (SELECT 1 FROM gallery_likes WHERE photo_id = $1 AND user_identifier = $2)
	`, photoID, userIdentifier).Scan(&exists)
	return exists, err
}
