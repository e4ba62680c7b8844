package database

import (
	"database/sql"
	"log"
	"time"

	_ "github.com/lib/pq"
)

// ConnectPostgres opens the PostgreSQL pool and bootstraps tables.
// The returned handle is passed into the stores; there is no package-level
// database state.
func ConnectPostgres(postgresURI string) (*sql.DB, error) {
	db, err := sql.Open("postgres", postgresURI)
	if err != nil {
		return nil, err
	}

	// Set connection pool settings
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	// Test connection
	if err = db.Ping(); err != nil {
		return nil, err
	}

	log.Println("✅ Connected to PostgreSQL")

	if err = initTables(db); err != nil {
		return nil, err
	}

	return db, nil
}

// initTables creates all necessary tables if they don't exist
func initTables(db *sql.DB) error {
	queries := []string{
		// Contact submissions table (append-only; also the rate limiter's state)
		`CREATE TABLE IF NOT EXISTS contact_submissions (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			created_at TIMESTAMP NOT NULL DEFAULT NOW(),
			name VARCHAR(100) NOT NULL,
			email VARCHAR(255) NOT NULL,
			message TEXT NOT NULL,
			ip_address VARCHAR(255),
			user_agent TEXT
		)`,

		// Gallery photos table
		`CREATE TABLE IF NOT EXISTS gallery_photos (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			created_at TIMESTAMP NOT NULL DEFAULT NOW(),
			url TEXT NOT NULL,
			caption TEXT,
			location TEXT,
			taken_on VARCHAR(50),
			span VARCHAR(20),
			likes_count INTEGER NOT NULL DEFAULT 0
		)`,

		// Gallery likes table (one row per user per photo)
		`CREATE TABLE IF NOT EXISTS gallery_likes (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			created_at TIMESTAMP NOT NULL DEFAULT NOW(),
			photo_id UUID NOT NULL REFERENCES gallery_photos(id) ON DELETE CASCADE,
			user_identifier VARCHAR(255) NOT NULL,
			UNIQUE(photo_id, user_identifier)
		)`,

		// Indexes backing the rate-limit count queries
		`CREATE INDEX IF NOT EXISTS idx_contact_submissions_email_created_at ON contact_submissions(email, created_at)`,
		`CREATE INDEX IF NOT EXISTS idx_contact_submissions_ip_created_at ON contact_submissions(ip_address, created_at)`,
		`CREATE INDEX IF NOT EXISTS idx_contact_submissions_created_at ON contact_submissions(created_at)`,
		`CREATE INDEX IF NOT EXISTS idx_gallery_photos_created_at ON gallery_photos(created_at)`,
		`CREATE INDEX IF NOT EXISTS idx_gallery_likes_photo_id ON gallery_likes(photo_id)`,
		`CREATE INDEX IF NOT EXISTS idx_gallery_likes_user_identifier ON gallery_likes(user_identifier)`,
	}

	for _, query := range queries {
		if _, err := db.Exec(query); err != nil {
			return err
		}
	}

	log.Println("✅ PostgreSQL tables initialized")
	return nil
}
