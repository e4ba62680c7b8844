package services

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// AdminSessionDuration is 7 days
	AdminSessionDuration = 7 * 24 * time.Hour
	// adminSessionKeyPrefix is the Redis key prefix for admin sessions
	adminSessionKeyPrefix = "admin_session:"
)

// AdminSessionService stores admin session tokens in Redis so sessions
// survive restarts and are shared across replicas.
type AdminSessionService struct {
	client *redis.Client
}

// NewAdminSessionService creates the session service on the given client.
func NewAdminSessionService(client *redis.Client) *AdminSessionService {
	return &AdminSessionService{client: client}
}

// Create issues a new session token with a 7-day expiration.
func (s *AdminSessionService) Create(ctx context.Context) (string, error) {
	tokenBytes := make([]byte, 32)
	if _, err := rand.Read(tokenBytes); err != nil {
		return "", err
	}
	token := base64.URLEncoding.EncodeToString(tokenBytes)

	if err := s.client.Set(ctx, adminSessionKeyPrefix+token, "1", AdminSessionDuration).Err(); err != nil {
		return "", err
	}
	return token, nil
}

// Validate reports whether the token names a live session.
func (s *AdminSessionService) Validate(ctx context.Context, token string) (bool, error) {
	if token == "" {
		return false, nil
	}
	count, err := s.client.Exists(ctx, adminSessionKeyPrefix+token).Result()
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// Invalidate removes a session.
func (s *AdminSessionService) Invalidate(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return s.client.Del(ctx, adminSessionKeyPrefix+token).Err()
}
