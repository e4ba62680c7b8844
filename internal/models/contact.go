package models

import (
	"time"

	"github.com/google/uuid"
)

// ContactSubmission is one accepted contact-form request. Rows are
// append-only: never updated or deleted by this service.
type ContactSubmission struct {
	ID        uuid.UUID `json:"id"`
	CreatedAt time.Time `json:"created_at"`

	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`

	// Best-effort request metadata, "unknown" when absent
	IPAddress string `json:"ip_address,omitempty"`
	UserAgent string `json:"user_agent,omitempty"`
}
