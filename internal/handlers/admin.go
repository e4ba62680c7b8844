package handlers

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/dsahare/portfolio-backend/internal/database"
	"github.com/dsahare/portfolio-backend/internal/models"
)

// AdminSessions is the session backend the admin surface needs. Satisfied
// by services.AdminSessionService.
type AdminSessions interface {
	Create(ctx context.Context) (string, error)
	Validate(ctx context.Context, token string) (bool, error)
	Invalidate(ctx context.Context, token string) error
}

// AdminHandler exposes the operator-facing surface: signin, signout and
// the submission listing.
type AdminHandler struct {
	passwordHash string
	sessions     AdminSessions
	contactStore *database.ContactStore
}

// NewAdminHandler creates an AdminHandler. passwordHash is the bcrypt hash
// from ADMIN_PASSWORD_HASH; signin is disabled when it is empty.
func NewAdminHandler(passwordHash string, sessions AdminSessions, contactStore *database.ContactStore) *AdminHandler {
	return &AdminHandler{passwordHash: passwordHash, sessions: sessions, contactStore: contactStore}
}

// AdminSigninRequest represents the request to sign in as admin
type AdminSigninRequest struct {
	Password string `json:"password"`
}

// AdminSigninResponse represents the response after admin signin
type AdminSigninResponse struct {
	Success bool   `json:"success"`
	Token   string `json:"token,omitempty"`
}

// Signin handles POST /api/admin/signin.
func (h *AdminHandler) Signin(w http.ResponseWriter, r *http.Request) {
	if h.passwordHash == "" {
		writeJSON(w, http.StatusForbidden, ErrorResponse{Error: "Admin access is not configured"})
		return
	}

	var req AdminSigninRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Password == "" {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "Password is required"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(h.passwordHash), []byte(req.Password)); err != nil {
		writeJSON(w, http.StatusUnauthorized, ErrorResponse{Error: "Invalid credentials"})
		return
	}

	token, err := h.sessions.Create(r.Context())
	if err != nil {
		log.Printf("[ADMIN] failed to create session: %v", err)
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "Failed to sign in"})
		return
	}

	writeJSON(w, http.StatusOK, AdminSigninResponse{Success: true, Token: token})
}

// AdminSignoutResponse represents the response after admin signout
type AdminSignoutResponse struct {
	Success bool `json:"success"`
}

// Signout handles POST /api/admin/signout. The presented session token is
// removed so it can no longer be used.
func (h *AdminHandler) Signout(w http.ResponseWriter, r *http.Request) {
	if !h.requireAdminAuth(w, r) {
		return
	}

	if err := h.sessions.Invalidate(r.Context(), bearerToken(r)); err != nil {
		log.Printf("[ADMIN] failed to invalidate session: %v", err)
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "Failed to sign out"})
		return
	}

	writeJSON(w, http.StatusOK, AdminSignoutResponse{Success: true})
}

// GetContactsResponse represents the admin contact listing
type GetContactsResponse struct {
	Success  bool                        `json:"success"`
	Contacts []*models.ContactSubmission `json:"contacts"`
	Total    int64                       `json:"total"`
}

// GetContacts handles GET /api/admin/contacts (session required).
func (h *AdminHandler) GetContacts(w http.ResponseWriter, r *http.Request) {
	if !h.requireAdminAuth(w, r) {
		return
	}

	limit := 50
	if l := r.URL.Query().Get("limit"); l != "" {
		if n, err := strconv.Atoi(l); err == nil && n > 0 && n <= 200 {
			limit = n
		}
	}
	offset := 0
	if o := r.URL.Query().Get("offset"); o != "" {
		if n, err := strconv.Atoi(o); err == nil && n >= 0 {
			offset = n
		}
	}

	total, err := h.contactStore.Total(r.Context())
	if err != nil {
		log.Printf("[ADMIN] failed to count contacts: %v", err)
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "Failed to fetch contacts"})
		return
	}

	contacts, err := h.contactStore.List(r.Context(), limit, offset)
	if err != nil {
		log.Printf("[ADMIN] failed to list contacts: %v", err)
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "Failed to fetch contacts"})
		return
	}

	writeJSON(w, http.StatusOK, GetContactsResponse{Success: true, Contacts: contacts, Total: total})
}

// bearerToken extracts the session token from the Authorization header.
func bearerToken(r *http.Request) string {
	return strings.TrimSpace(strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer"))
}

// requireAdminAuth validates the Bearer session token. Writes the error
// response and returns false when the caller is not an admin.
func (h *AdminHandler) requireAdminAuth(w http.ResponseWriter, r *http.Request) bool {
	valid, err := h.sessions.Validate(r.Context(), bearerToken(r))
	if err != nil {
		log.Printf("[ADMIN] session validation error: %v", err)
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "Failed to validate session"})
		return false
	}
	if !valid {
		writeJSON(w, http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return false
	}
	return true
}
