package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/dsahare/portfolio-backend/internal/models"
)

// ---------------------------------------------------------------------------
// mockSubmissionStore — in-memory stub for testing
// ---------------------------------------------------------------------------

type mockSubmissionStore struct {
	appendFunc     func(ctx context.Context, sub *models.ContactSubmission) (uuid.UUID, error)
	countEmailFunc func(ctx context.Context, email string, since time.Time) (int, error)
	countIPFunc    func(ctx context.Context, ip string, since time.Time) (int, error)

	emailChecks int
	ipChecks    int
}

func (m *mockSubmissionStore) Append(ctx context.Context, sub *models.ContactSubmission) (uuid.UUID, error) {
	if m.appendFunc != nil {
		return m.appendFunc(ctx, sub)
	}
	sub.ID = uuid.New()
	sub.CreatedAt = time.Now().UTC()
	return sub.ID, nil
}

func (m *mockSubmissionStore) CountByEmailSince(ctx context.Context, email string, since time.Time) (int, error) {
	m.emailChecks++
	if m.countEmailFunc != nil {
		return m.countEmailFunc(ctx, email, since)
	}
	return 0, nil
}

func (m *mockSubmissionStore) CountByIPSince(ctx context.Context, ip string, since time.Time) (int, error) {
	m.ipChecks++
	if m.countIPFunc != nil {
		return m.countIPFunc(ctx, ip, since)
	}
	return 0, nil
}

// ---------------------------------------------------------------------------
// mockMailer — records sends
// ---------------------------------------------------------------------------

type sentEmail struct {
	from    string
	to      []string
	subject string
	html    string
}

type mockMailer struct {
	sent     []sentEmail
	sendFunc func(ctx context.Context, from string, to []string, subject, htmlBody string) error
}

func (m *mockMailer) Send(ctx context.Context, from string, to []string, subject, htmlBody string) error {
	m.sent = append(m.sent, sentEmail{from: from, to: to, subject: subject, html: htmlBody})
	if m.sendFunc != nil {
		return m.sendFunc(ctx, from, to, subject, htmlBody)
	}
	return nil
}

func newTestService(store SubmissionStore, mailer Mailer) *ContactService {
	return NewContactService(store, mailer, "Contact Form <form@example.com>", "owner@example.com", "Owner <owner@example.com>")
}

func validIntake() IntakeRequest {
	return IntakeRequest{
		Name:      "Ada Lovelace",
		Email:     "ADA@Example.com",
		Message:   "Hello",
		IPAddress: "203.0.113.7",
		UserAgent: "Mozilla/5.0",
	}
}

// ---------------------------------------------------------------------------
// Intake tests
// ---------------------------------------------------------------------------

func TestIntake_AcceptsAndNormalizes(t *testing.T) {
	var stored *models.ContactSubmission
	store := &mockSubmissionStore{
		appendFunc: func(ctx context.Context, sub *models.ContactSubmission) (uuid.UUID, error) {
			stored = sub
			sub.ID = uuid.New()
			return sub.ID, nil
		},
	}
	mailer := &mockMailer{}
	svc := newTestService(store, mailer)

	sub, err := svc.Intake(context.Background(), validIntake())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if stored == nil {
		t.Fatal("expected Append to be called")
	}
	if stored.Email != "ada@example.com" {
		t.Errorf("expected stored email lowercased, got %q", stored.Email)
	}
	if stored.Name != "Ada Lovelace" || stored.Message != "Hello" {
		t.Errorf("unexpected stored fields: %+v", stored)
	}
	if stored.IPAddress != "203.0.113.7" || stored.UserAgent != "Mozilla/5.0" {
		t.Errorf("expected request metadata stored, got %+v", stored)
	}
	if sub != stored {
		t.Error("expected returned submission to be the stored row")
	}
	if len(mailer.sent) != 2 {
		t.Fatalf("expected 2 emails attempted, got %d", len(mailer.sent))
	}
	if mailer.sent[0].to[0] != "owner@example.com" {
		t.Errorf("expected operator notification first, got to=%v", mailer.sent[0].to)
	}
	if mailer.sent[1].to[0] != "ada@example.com" {
		t.Errorf("expected acknowledgment to submitter, got to=%v", mailer.sent[1].to)
	}
}

func TestIntake_HoneypotRejectsBeforeEverything(t *testing.T) {
	appended := false
	store := &mockSubmissionStore{
		appendFunc: func(ctx context.Context, sub *models.ContactSubmission) (uuid.UUID, error) {
			appended = true
			return uuid.New(), nil
		},
	}
	mailer := &mockMailer{}
	svc := newTestService(store, mailer)

	req := validIntake()
	req.Honeypot = "x"
	_, err := svc.Intake(context.Background(), req)
	if !errors.Is(err, ErrSpamRejected) {
		t.Fatalf("expected ErrSpamRejected, got %v", err)
	}
	if appended {
		t.Error("expected no row persisted for honeypot submission")
	}
	if store.emailChecks != 0 || store.ipChecks != 0 {
		t.Error("expected no rate-limit reads for honeypot submission")
	}
	if len(mailer.sent) != 0 {
		t.Errorf("expected no emails sent, got %d", len(mailer.sent))
	}
}

func TestIntake_ValidationFailureSkipsStoreAndMail(t *testing.T) {
	appended := false
	store := &mockSubmissionStore{
		appendFunc: func(ctx context.Context, sub *models.ContactSubmission) (uuid.UUID, error) {
			appended = true
			return uuid.New(), nil
		},
	}
	mailer := &mockMailer{}
	svc := newTestService(store, mailer)

	req := validIntake()
	req.Email = "not-an-email"
	_, err := svc.Intake(context.Background(), req)

	var vErr *ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("expected *ValidationError, got %v", err)
	}
	if appended || len(mailer.sent) != 0 {
		t.Error("expected nothing persisted or sent on validation failure")
	}
}

func TestIntake_EmailRateLimit(t *testing.T) {
	store := &mockSubmissionStore{
		countEmailFunc: func(ctx context.Context, email string, since time.Time) (int, error) {
			return 3, nil
		},
	}
	svc := newTestService(store, &mockMailer{})

	_, err := svc.Intake(context.Background(), validIntake())

	var rlErr *RateLimitError
	if !errors.As(err, &rlErr) {
		t.Fatalf("expected *RateLimitError, got %v", err)
	}
	if rlErr.Scope != ScopeEmail {
		t.Errorf("expected email scope, got %q", rlErr.Scope)
	}
	// Email check trips first and short-circuits the IP read.
	if store.ipChecks != 0 {
		t.Errorf("expected no IP count after email limit tripped, got %d reads", store.ipChecks)
	}
}

func TestIntake_IPRateLimit(t *testing.T) {
	store := &mockSubmissionStore{
		countIPFunc: func(ctx context.Context, ip string, since time.Time) (int, error) {
			return 3, nil
		},
	}
	svc := newTestService(store, &mockMailer{})

	_, err := svc.Intake(context.Background(), validIntake())

	var rlErr *RateLimitError
	if !errors.As(err, &rlErr) {
		t.Fatalf("expected *RateLimitError, got %v", err)
	}
	if rlErr.Scope != ScopeIP {
		t.Errorf("expected ip scope, got %q", rlErr.Scope)
	}
}

func TestIntake_UnderThresholdAccepted(t *testing.T) {
	store := &mockSubmissionStore{
		countEmailFunc: func(ctx context.Context, email string, since time.Time) (int, error) {
			return 2, nil
		},
		countIPFunc: func(ctx context.Context, ip string, since time.Time) (int, error) {
			return 2, nil
		},
	}
	svc := newTestService(store, &mockMailer{})

	if _, err := svc.Intake(context.Background(), validIntake()); err != nil {
		t.Fatalf("expected acceptance at count 2, got %v", err)
	}
}

func TestIntake_RateLimitWindowIsOneHour(t *testing.T) {
	var gotSince time.Time
	store := &mockSubmissionStore{
		countEmailFunc: func(ctx context.Context, email string, since time.Time) (int, error) {
			gotSince = since
			return 0, nil
		},
	}
	svc := newTestService(store, &mockMailer{})
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	if _, err := svc.Intake(context.Background(), validIntake()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := now.Add(-time.Hour); !gotSince.Equal(want) {
		t.Errorf("expected since=%v, got %v", want, gotSince)
	}
}

func TestIntake_CountErrorFailsOpen(t *testing.T) {
	store := &mockSubmissionStore{
		countEmailFunc: func(ctx context.Context, email string, since time.Time) (int, error) {
			return 0, errors.New("store unavailable")
		},
		countIPFunc: func(ctx context.Context, ip string, since time.Time) (int, error) {
			return 0, errors.New("store unavailable")
		},
	}
	svc := newTestService(store, &mockMailer{})

	if _, err := svc.Intake(context.Background(), validIntake()); err != nil {
		t.Fatalf("expected fail-open acceptance, got %v", err)
	}
}

func TestIntake_AppendFailure(t *testing.T) {
	store := &mockSubmissionStore{
		appendFunc: func(ctx context.Context, sub *models.ContactSubmission) (uuid.UUID, error) {
			return uuid.Nil, errors.New("disk on fire")
		},
	}
	mailer := &mockMailer{}
	svc := newTestService(store, mailer)

	_, err := svc.Intake(context.Background(), validIntake())

	var pErr *PersistenceError
	if !errors.As(err, &pErr) {
		t.Fatalf("expected *PersistenceError, got %v", err)
	}
	if len(mailer.sent) != 0 {
		t.Error("expected no emails after a failed write")
	}
}

func TestIntake_NotificationFailureStillSucceeds(t *testing.T) {
	store := &mockSubmissionStore{}
	mailer := &mockMailer{
		sendFunc: func(ctx context.Context, from string, to []string, subject, htmlBody string) error {
			return errors.New("smtp down")
		},
	}
	svc := newTestService(store, mailer)

	if _, err := svc.Intake(context.Background(), validIntake()); err != nil {
		t.Fatalf("expected success despite mail failure, got %v", err)
	}
	// Both sends are still attempted.
	if len(mailer.sent) != 2 {
		t.Errorf("expected 2 attempted sends, got %d", len(mailer.sent))
	}
}

func TestIntake_NilMailerSkipsNotifications(t *testing.T) {
	svc := newTestService(&mockSubmissionStore{}, nil)
	if _, err := svc.Intake(context.Background(), validIntake()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestIntake_MessageStoredVerbatimButEscapedInEmail(t *testing.T) {
	var stored *models.ContactSubmission
	store := &mockSubmissionStore{
		appendFunc: func(ctx context.Context, sub *models.ContactSubmission) (uuid.UUID, error) {
			stored = sub
			return uuid.New(), nil
		},
	}
	mailer := &mockMailer{}
	svc := newTestService(store, mailer)

	req := validIntake()
	req.Message = `<script>alert("hi")</script>`
	if _, err := svc.Intake(context.Background(), req); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if stored.Message != `<script>alert("hi")</script>` {
		t.Errorf("expected message stored verbatim, got %q", stored.Message)
	}

	notification := mailer.sent[0].html
	if strings.Contains(notification, "<script>") {
		t.Error("notification email contains unescaped markup")
	}
	if !strings.Contains(notification, "&lt;script&gt;") {
		t.Errorf("expected escaped markup in notification, got %q", notification)
	}
}

func TestIntake_MultilineMessageBreaksInEmail(t *testing.T) {
	mailer := &mockMailer{}
	svc := newTestService(&mockSubmissionStore{}, mailer)

	req := validIntake()
	req.Message = "line one\nline two"
	if _, err := svc.Intake(context.Background(), req); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(mailer.sent[0].html, "line one<br>line two") {
		t.Errorf("expected newlines rendered as <br>, got %q", mailer.sent[0].html)
	}
}
