package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/dsahare/portfolio-backend/internal/models"
	"github.com/dsahare/portfolio-backend/internal/services"
)

// ---------------------------------------------------------------------------
// Fakes wired through the real ContactService
// ---------------------------------------------------------------------------

type fakeStore struct {
	appendErr  error
	emailCount int
	ipCount    int
	appended   []*models.ContactSubmission
}

func (f *fakeStore) Append(ctx context.Context, sub *models.ContactSubmission) (uuid.UUID, error) {
	if f.appendErr != nil {
		return uuid.Nil, f.appendErr
	}
	sub.ID = uuid.New()
	sub.CreatedAt = time.Now().UTC()
	f.appended = append(f.appended, sub)
	return sub.ID, nil
}

func (f *fakeStore) CountByEmailSince(ctx context.Context, email string, since time.Time) (int, error) {
	return f.emailCount, nil
}

func (f *fakeStore) CountByIPSince(ctx context.Context, ip string, since time.Time) (int, error) {
	return f.ipCount, nil
}

type fakeMailer struct {
	sends int
}

func (f *fakeMailer) Send(ctx context.Context, from string, to []string, subject, htmlBody string) error {
	f.sends++
	return nil
}

func newTestHandler(store *fakeStore, mailer services.Mailer) *ContactHandler {
	svc := services.NewContactService(store, mailer, "form@example.com", "owner@example.com", "owner@example.com")
	return NewContactHandler(svc)
}

func postContact(t *testing.T, h *ContactHandler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/contact", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.RemoteAddr = "192.0.2.9:43122"
	rec := httptest.NewRecorder()
	h.Submit(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var resp ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid error body %q: %v", rec.Body.String(), err)
	}
	return resp.Error
}

// ---------------------------------------------------------------------------
// POST /api/contact tests
// ---------------------------------------------------------------------------

func TestSubmit_Success(t *testing.T) {
	store := &fakeStore{}
	mailer := &fakeMailer{}
	h := newTestHandler(store, mailer)

	rec := postContact(t, h, `{"name":"Ada Lovelace","email":"ADA@Example.com","message":"Hello"}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d — body: %s", rec.Code, rec.Body.String())
	}

	var resp SubmitContactResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid body: %v", err)
	}
	if !resp.Success {
		t.Error("expected success=true")
	}
	if resp.Message == "" {
		t.Error("expected a confirmation message")
	}

	if len(store.appended) != 1 {
		t.Fatalf("expected 1 stored row, got %d", len(store.appended))
	}
	if store.appended[0].Email != "ada@example.com" {
		t.Errorf("expected lowercased email stored, got %q", store.appended[0].Email)
	}
	if mailer.sends != 2 {
		t.Errorf("expected 2 emails attempted, got %d", mailer.sends)
	}
}

func TestSubmit_InvalidJSON(t *testing.T) {
	h := newTestHandler(&fakeStore{}, nil)
	rec := postContact(t, h, `{"name":`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}

func TestSubmit_Honeypot(t *testing.T) {
	store := &fakeStore{}
	mailer := &fakeMailer{}
	h := newTestHandler(store, mailer)

	rec := postContact(t, h, `{"name":"Ada","email":"ada@example.com","message":"Hello","honeypot":"x"}`)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if got := decodeError(t, rec); got != "Invalid submission" {
		t.Errorf("expected generic spam message, got %q", got)
	}
	if len(store.appended) != 0 {
		t.Error("expected no row persisted")
	}
	if mailer.sends != 0 {
		t.Error("expected no emails sent")
	}
}

func TestSubmit_FieldErrors(t *testing.T) {
	cases := []struct {
		name    string
		body    string
		wantMsg string
	}{
		{
			name:    "empty name",
			body:    `{"name":"  ","email":"ada@example.com","message":"Hello"}`,
			wantMsg: "Name must be between 1 and 100 characters",
		},
		{
			name:    "bad email",
			body:    `{"name":"Ada","email":"nope","message":"Hello"}`,
			wantMsg: "Please provide a valid email address",
		},
		{
			name:    "empty message",
			body:    `{"name":"Ada","email":"ada@example.com","message":""}`,
			wantMsg: "Message must be between 1 and 2000 characters",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			store := &fakeStore{}
			h := newTestHandler(store, nil)
			rec := postContact(t, h, tc.body)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d", rec.Code)
			}
			if got := decodeError(t, rec); got != tc.wantMsg {
				t.Errorf("expected %q, got %q", tc.wantMsg, got)
			}
			if len(store.appended) != 0 {
				t.Error("expected no row persisted")
			}
		})
	}
}

func TestSubmit_BoundaryLengthsAccepted(t *testing.T) {
	store := &fakeStore{}
	h := newTestHandler(store, nil)

	body, _ := json.Marshal(map[string]string{
		"name":    strings.Repeat("n", 100),
		"email":   "ada@example.com",
		"message": strings.Repeat("m", 2000),
	})
	rec := postContact(t, h, string(body))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 at exact bounds, got %d — %s", rec.Code, rec.Body.String())
	}
}

func TestSubmit_EmailRateLimited(t *testing.T) {
	store := &fakeStore{emailCount: 3}
	h := newTestHandler(store, nil)

	rec := postContact(t, h, `{"name":"Ada","email":"ada@example.com","message":"Hello"}`)

	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", rec.Code)
	}
	if got := decodeError(t, rec); got != "Too many submissions. Please try again later." {
		t.Errorf("unexpected message %q", got)
	}
	if len(store.appended) != 0 {
		t.Error("expected no row persisted")
	}
}

func TestSubmit_IPRateLimited(t *testing.T) {
	store := &fakeStore{ipCount: 3}
	h := newTestHandler(store, nil)

	rec := postContact(t, h, `{"name":"Ada","email":"ada@example.com","message":"Hello"}`)

	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", rec.Code)
	}
	if got := decodeError(t, rec); got != "Too many submissions from this location. Please try again later." {
		t.Errorf("unexpected message %q", got)
	}
}

func TestSubmit_PersistFailureIsGeneric500(t *testing.T) {
	store := &fakeStore{appendErr: errors.New("pq: connection reset")}
	h := newTestHandler(store, nil)

	rec := postContact(t, h, `{"name":"Ada","email":"ada@example.com","message":"Hello"}`)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	got := decodeError(t, rec)
	if got != "Failed to send message. Please try again later." {
		t.Errorf("expected generic message, got %q", got)
	}
	if strings.Contains(rec.Body.String(), "pq:") {
		t.Error("internal error detail leaked into the response")
	}
}
