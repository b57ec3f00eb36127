// Package notify emails the club admins when public forms are submitted.
package notify

import (
	"context"
	"fmt"
	"log"

	"github.com/resend/resend-go/v2"

	"clubsite/internal/display"
	"clubsite/internal/records"
)

// Sender delivers admin notifications via the Resend API.
type Sender struct {
	client *resend.Client
	from   string
	to     string
}

// NewSender creates a sender. to is the admin inbox.
func NewSender(apiKey, from, to string) *Sender {
	return &Sender{client: resend.NewClient(apiKey), from: from, to: to}
}

// ContactMessage notifies admins about a new contact-form submission.
func (s *Sender) ContactMessage(ctx context.Context, m records.Message) error {
	html := fmt.Sprintf(
		"<p><strong>From:</strong> %s</p><p><strong>Subject:</strong> %s</p><p>%s</p>",
		display.EscapeHTML(m.Email), display.EscapeHTML(m.Subject), display.EscapeHTML(m.Message))
	return s.send(ctx, "New contact message: "+m.Subject, html, m.Email)
}

// MembershipApplication notifies admins about a new join-form submission.
func (s *Sender) MembershipApplication(ctx context.Context, m records.Membership) error {
	html := fmt.Sprintf(
		"<p><strong>Name:</strong> %s</p><p><strong>Email:</strong> %s</p>"+
			"<p><strong>Student ID:</strong> %s</p><p><strong>Department:</strong> %s</p>"+
			"<p><strong>Semester:</strong> %s</p>",
		display.EscapeHTML(m.Name), display.EscapeHTML(m.Email), display.EscapeHTML(m.StudentID),
		display.EscapeHTML(m.Department), display.EscapeHTML(m.Semester))
	return s.send(ctx, "New membership application: "+m.Name, html, m.Email)
}

func (s *Sender) send(ctx context.Context, subject, html, replyTo string) error {
	params := &resend.SendEmailRequest{
		From:    s.from,
		To:      []string{s.to},
		Subject: subject,
		Html:    html,
	}
	if replyTo != "" {
		params.ReplyTo = replyTo
	}
	sent, err := s.client.Emails.SendWithContext(ctx, params)
	if err != nil {
		return fmt.Errorf("resend send failed: %w", err)
	}
	log.Printf("notification sent: %s (%s)", subject, sent.Id)
	return nil
}
