package database

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/dsahare/portfolio-backend/internal/models"
)

// ContactStore is the durable append-only log of accepted contact
// submissions. The rate limiter reads the same table, so counts stay
// correct across restarts and replicas.
type ContactStore struct {
	db *sql.DB
}

// NewContactStore creates a ContactStore on the given database handle.
func NewContactStore(db *sql.DB) *ContactStore {
	return &ContactStore{db: db}
}

// Append inserts a submission and returns the assigned ID. CreatedAt is
// assigned here, at write time.
func (s *ContactStore) Append(ctx context.Context, sub *models.ContactSubmission) (uuid.UUID, error) {
	id := uuid.New()
	createdAt := time.Now().UTC()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO contact_submissions (id, created_at, name, email, message, ip_address, user_agent)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, id, createdAt, sub.Name, sub.Email, sub.Message, sub.IPAddress, sub.UserAgent)
	if err != nil {
		return uuid.Nil, err
	}

	sub.ID = id
	sub.CreatedAt = createdAt
	return id, nil
}

// CountByEmailSince returns the number of submissions from email after since.
func (s *ContactStore) CountByEmailSince(ctx context.Context, email string, since time.Time) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM contact_submissions
		WHERE email = $1 AND created_at >= $2
	`, email, since).Scan(&count)
	return count, err
}

// CountByIPSince returns the number of submissions from ipAddress after since.
func (s *ContactStore) CountByIPSince(ctx context.Context, ipAddress string, since time.Time) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM contact_submissions
		WHERE ip_address = $1 AND created_at >= $2
	`, ipAddress, since).Scan(&count)
	return count, err
}

// List returns submissions newest first (admin listing).
func (s *ContactStore) List(ctx context.Context, limit, offset int) ([]*models.ContactSubmission, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, created_at, name, email, message, ip_address, user_agent
		FROM contact_submissions
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	subs := make([]*models.ContactSubmission, 0)
	for rows.Next() {
		var sub models.ContactSubmission
		var ipAddress, userAgent sql.NullString
		if err := rows.Scan(&sub.ID, &sub.CreatedAt, &sub.Name, &sub.Email, &sub.Message, &ipAddress, &userAgent); err != nil {
			return nil, err
		}
		sub.IPAddress = ipAddress.String
		sub.UserAgent = userAgent.String
		subs = append(subs, &sub)
	}
	return subs, rows.Err()
}

// Total returns the total number of stored submissions.
func (s *ContactStore) Total(ctx context.Context) (int64, error) {
	var total int64
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM contact_submissions`).Scan(&total)
	return total, err
}
