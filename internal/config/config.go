package config

import (
	"os"
	"strings"
)

type Config struct {
	PostgresURI         string
	RedisURI            string
	Port                string
	Environment         string // ENV: production, development, etc.
	ResendAPIKey        string
	ContactFrom         string // From address for operator notifications
	ContactTo           string // Operator inbox for contact notifications
	AckFrom             string // From address for the submitter acknowledgment
	AdminPasswordHash   string // bcrypt hash; admin signin is disabled when empty
	CloudinaryName      string
	CloudinaryAPIKey    string
	CloudinaryAPISecret string
}

func Load() *Config {
	env := strings.ToLower(strings.TrimSpace(getEnv("ENV", "development")))

	return &Config{
		PostgresURI:         getEnv("POSTGRES_URI", "postgres://localhost:5432/portfolio?sslmode=disable"),
		RedisURI:            getEnv("REDIS_URI", "redis://localhost:6379/0"),
		Port:                getEnv("PORT", "8080"),
		Environment:         env,
		ResendAPIKey:        getEnv("RESEND_API_KEY", ""),
		ContactFrom:         getEnv("CONTACT_FROM", "Contact Form <onboarding@resend.dev>"),
		ContactTo:           getEnv("CONTACT_TO", "dsahare75@gmail.com"),
		AckFrom:             getEnv("ACK_FROM", "Diksha Sahare <onboarding@resend.dev>"),
		AdminPasswordHash:   getEnv("ADMIN_PASSWORD_HASH", ""),
		CloudinaryName:      getEnv("CLOUDINARY_CLOUD_NAME", ""),
		CloudinaryAPIKey:    getEnv("CLOUDINARY_API_KEY", ""),
		CloudinaryAPISecret: getEnv("CLOUDINARY_API_SECRET", ""),
	}
}

// IsProduction returns true when ENV is set to "production".
func (c *Config) IsProduction() bool {
	return strings.ToLower(strings.TrimSpace(c.Environment)) == "production"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
