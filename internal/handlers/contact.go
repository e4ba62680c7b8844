package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/dsahare/portfolio-backend/internal/services"
	"github.com/dsahare/portfolio-backend/pkg/clientip"
)

// SubmitContactRequest represents the request to submit the contact form
type SubmitContactRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Message  string `json:"message"`
	Honeypot string `json:"honeypot,omitempty"`
}

// SubmitContactResponse represents the success response
type SubmitContactResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// ErrorResponse represents any failure response
type ErrorResponse struct {
	Error string `json:"error"`
}

// ContactHandler exposes the contact intake pipeline over HTTP.
type ContactHandler struct {
	contactService *services.ContactService
}

// NewContactHandler creates a ContactHandler with the given service.
func NewContactHandler(contactService *services.ContactService) *ContactHandler {
	return &ContactHandler{contactService: contactService}
}

// Submit handles POST /api/contact. Every failure is terminal for the
// request; the client resubmits. Internal detail never reaches the
// response body.
func (h *ContactHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req SubmitContactRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}

	intake := services.IntakeRequest{
		Name:      req.Name,
		Email:     req.Email,
		Message:   req.Message,
		Honeypot:  req.Honeypot,
		IPAddress: clientip.FromRequest(r),
		UserAgent: clientip.UserAgent(r),
	}

	if _, err := h.contactService.Intake(r.Context(), intake); err != nil {
		h.writeIntakeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, SubmitContactResponse{
		Success: true,
		Message: "Thank you for your message! I'll get back to you soon.",
	})
}

// writeIntakeError maps the service error taxonomy to HTTP responses.
func (h *ContactHandler) writeIntakeError(w http.ResponseWriter, err error) {
	if errors.Is(err, services.ErrSpamRejected) {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "Invalid submission"})
		return
	}

	var validationErr *services.ValidationError
	if errors.As(err, &validationErr) {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: validationErr.Message})
		return
	}

	var rateLimitErr *services.RateLimitError
	if errors.As(err, &rateLimitErr) {
		writeJSON(w, http.StatusTooManyRequests, ErrorResponse{Error: rateLimitErr.Message()})
		return
	}

	log.Printf("[CONTACT] intake failed: %v", err)
	writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "Failed to send message. Please try again later."})
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
