package services

import (
	"context"
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/resend/resend-go/v2"

	"github.com/dsahare/portfolio-backend/internal/models"
)

// Mailer sends one HTML email. Implementations do not guarantee delivery;
// the intake flow treats every send as best-effort.
type Mailer interface {
	Send(ctx context.Context, from string, to []string, subject, htmlBody string) error
}

// ResendMailer sends through the Resend API.
type ResendMailer struct {
	client *resend.Client
}

// NewResendMailer creates a Mailer backed by Resend.
func NewResendMailer(apiKey string) *ResendMailer {
	return &ResendMailer{client: resend.NewClient(apiKey)}
}

func (m *ResendMailer) Send(ctx context.Context, from string, to []string, subject, htmlBody string) error {
	params := &resend.SendEmailRequest{
		From:    from,
		To:      to,
		Subject: subject,
		Html:    htmlBody,
	}
	if _, err := m.client.Emails.SendWithContext(ctx, params); err != nil {
		return fmt.Errorf("resend send: %w", err)
	}
	return nil
}

// htmlEscapedName returns the submitter's name escaped for HTML contexts.
func htmlEscapedName(sub *models.ContactSubmission) string {
	return html.EscapeString(sub.Name)
}

// notificationSubject is the operator email subject line. The name is
// escaped before formatting.
func notificationSubject(safeName string) string {
	return fmt.Sprintf("New Contact Form Submission from %s", safeName)
}

// notificationBody builds the operator email. All user-controlled fields
// are HTML-escaped so a message containing markup renders as text.
func notificationBody(sub *models.ContactSubmission, submittedAt time.Time) string {
	safeName := html.EscapeString(sub.Name)
	safeEmail := html.EscapeString(sub.Email)
	safeMessage := strings.ReplaceAll(html.EscapeString(sub.Message), "\n", "<br>")

	return fmt.Sprintf(`
        <h2>New Contact Form Submission</h2>
        <p><strong>Name:</strong> %s</p>
        <p><strong>Email:</strong> %s</p>
        <p><strong>Message:</strong></p>
        <p>%s</p>
        <hr>
        <p><small>Submitted: %s</small></p>
        <p><small>IP: %s</small></p>
      `, safeName, safeEmail, safeMessage, submittedAt.Format("1/2/2006, 3:04:05 PM"), sub.IPAddress)
}

// ackSubject is the submitter acknowledgment subject line.
const ackSubject = "Thanks for reaching out!"

// ackBody builds the acknowledgment sent back to the submitter.
func ackBody(sub *models.ContactSubmission) string {
	safeName := html.EscapeString(sub.Name)

	return fmt.Sprintf(`
        <h2>Hi %s,</h2>
        <p>Thank you for contacting me! I've received your message and will get back to you as soon as possible.</p>
        <p>Best regards,<br>Diksha Sahare</p>
        <hr>
        <p><small>This is an automated response. Please do not reply to this email.</small></p>
      `, safeName)
}
