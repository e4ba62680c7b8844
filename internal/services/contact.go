package services

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/dsahare/portfolio-backend/internal/models"
)

const (
	// rateLimitWindow is the trailing window the limiter counts over.
	rateLimitWindow = time.Hour
	// rateLimitMax is the inclusive submission cap per scope per window.
	rateLimitMax = 3
)

// SubmissionStore is the durable append-only log the intake pipeline
// writes to and the rate limiter reads from.
type SubmissionStore interface {
	Append(ctx context.Context, sub *models.ContactSubmission) (uuid.UUID, error)
	CountByEmailSince(ctx context.Context, email string, since time.Time) (int, error)
	CountByIPSince(ctx context.Context, ipAddress string, since time.Time) (int, error)
}

// IntakeRequest is the raw contact-form payload plus request metadata.
type IntakeRequest struct {
	Name      string
	Email     string
	Message   string
	Honeypot  string
	IPAddress string
	UserAgent string
}

// ContactService runs the intake pipeline: honeypot, validation, dual-scope
// rate limiting, durable append, then two best-effort notification emails.
type ContactService struct {
	store  SubmissionStore
	mailer Mailer

	contactFrom string
	contactTo   string
	ackFrom     string

	now func() time.Time
}

// NewContactService wires the intake pipeline. mailer may be nil, in which
// case notifications are skipped (dev setups without a Resend key).
func NewContactService(store SubmissionStore, mailer Mailer, contactFrom, contactTo, ackFrom string) *ContactService {
	return &ContactService{
		store:       store,
		mailer:      mailer,
		contactFrom: contactFrom,
		contactTo:   contactTo,
		ackFrom:     ackFrom,
		now:         time.Now,
	}
}

// Intake processes one submission end to end and returns the stored row.
// Error values map to the response taxonomy: ErrSpamRejected and
// *ValidationError are 400s, *RateLimitError is a 429, *PersistenceError
// is a 500. Notification failures never surface; by the time the emails go
// out the submission is already durable, which is the correctness boundary.
func (s *ContactService) Intake(ctx context.Context, req IntakeRequest) (*models.ContactSubmission, error) {
	// Honeypot check runs before everything else. The field is invisible
	// to humans, so any value means an automated submitter.
	if req.Honeypot != "" {
		log.Printf("[CONTACT] honeypot triggered from ip=%s", req.IPAddress)
		return nil, ErrSpamRejected
	}

	name, email, message, err := validateSubmission(req.Name, req.Email, req.Message)
	if err != nil {
		return nil, err
	}

	if err := s.checkRateLimits(ctx, email, req.IPAddress); err != nil {
		return nil, err
	}

	sub := &models.ContactSubmission{
		Name:      name,
		Email:     email,
		Message:   message,
		IPAddress: req.IPAddress,
		UserAgent: req.UserAgent,
	}

	if _, err := s.store.Append(ctx, sub); err != nil {
		log.Printf("[CONTACT] failed to save submission: %v", err)
		return nil, &PersistenceError{Err: err}
	}

	// Both sends run sequentially and are best-effort; either may fail
	// without affecting the response.
	s.notify(ctx, sub)

	return sub, nil
}

// checkRateLimits counts prior accepted submissions per scope over the
// trailing hour, email first, then IP. The two reads are independent
// queries with no transaction: a concurrent burst at the exact threshold
// can let a few extras through before the counts catch up, which is
// tolerated given the low limit. A failed count fails open.
func (s *ContactService) checkRateLimits(ctx context.Context, email, ipAddress string) error {
	since := s.now().Add(-rateLimitWindow)

	emailCount, err := s.store.CountByEmailSince(ctx, email, since)
	if err != nil {
		log.Printf("[CONTACT] error checking email rate limit: %v", err)
	} else if emailCount >= rateLimitMax {
		return &RateLimitError{Scope: ScopeEmail}
	}

	ipCount, err := s.store.CountByIPSince(ctx, ipAddress, since)
	if err != nil {
		log.Printf("[CONTACT] error checking ip rate limit: %v", err)
	} else if ipCount >= rateLimitMax {
		return &RateLimitError{Scope: ScopeIP}
	}

	return nil
}

// notify sends the operator notification and the submitter acknowledgment.
// Failures are logged only.
func (s *ContactService) notify(ctx context.Context, sub *models.ContactSubmission) {
	if s.mailer == nil {
		log.Printf("[CONTACT] mailer not configured, skipping notifications for %s", sub.Email)
		return
	}

	subject := notificationSubject(htmlEscapedName(sub))
	if err := s.mailer.Send(ctx, s.contactFrom, []string{s.contactTo}, subject, notificationBody(sub, s.now())); err != nil {
		log.Printf("[CONTACT] error sending notification email: %v", err)
	}

	if err := s.mailer.Send(ctx, s.ackFrom, []string{sub.Email}, ackSubject, ackBody(sub)); err != nil {
		log.Printf("[CONTACT] error sending acknowledgment email: %v", err)
	}
}
