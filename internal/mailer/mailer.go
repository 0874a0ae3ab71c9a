// Package mailer dispatches expiry alert emails.
//
// Callers treat delivery failure as logged-and-ignored: an alert is never
// retried or queued, the next scheduled cycle simply recomputes and sends
// again.
package mailer

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"
	"time"

	"github.com/expiryguard/backend/internal/domain"
	"github.com/expiryguard/backend/internal/expiry"
)

const alertSubject = "ExpiryGuard - Product Expiry Alert"

// SMTPMailer sends alert emails through a plain SMTP relay.
type SMTPMailer struct {
	host     string
	port     string
	user     string
	password string
	now      func() time.Time
}

// NewSMTPMailer creates a mailer for the given relay. The sender address is
// the authenticated user.
func NewSMTPMailer(host, port, user, password string) *SMTPMailer {
	return &SMTPMailer{
		host:     host,
		port:     port,
		user:     user,
		password: password,
		now:      time.Now,
	}
}

// SendExpiryAlert emails the given items to one recipient. Items whose
// stored date no longer parses are silently skipped from the body.
func (m *SMTPMailer) SendExpiryAlert(_ context.Context, to string, items []domain.InventoryItem) error {
	body := buildAlertBody(items, m.now())
	msg := buildMessage(m.user, to, alertSubject, body)

	auth := smtp.PlainAuth("", m.user, m.password, m.host)
	addr := m.host + ":" + m.port
	if err := smtp.SendMail(addr, auth, m.user, []string{to}, msg); err != nil {
		return fmt.Errorf("failed to send alert email: %w", err)
	}
	return nil
}

func buildAlertBody(items []domain.InventoryItem, now time.Time) string {
	var b strings.Builder
	b.WriteString("The following products in your inventory need attention:\n\n")
	for _, item := range items {
		days, ok := expiry.DaysUntil(item.ExpiryDate, now)
		if !ok {
			continue
		}
		if days < 0 {
			fmt.Fprintf(&b, "- %s - EXPIRED\n", item.ProductName)
		} else {
			fmt.Fprintf(&b, "- %s - Expires in %d days\n", item.ProductName, days)
		}
	}
	b.WriteString("\nPlease check your ExpiryGuard dashboard for more details.")
	return b.String()
}

func buildMessage(from, to, subject, body string) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", from)
	fmt.Fprintf(&b, "To: %s\r\n", to)
	fmt.Fprintf(&b, "Subject: %s\r\n", subject)
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=\"utf-8\"\r\n")
	b.WriteString("\r\n")
	b.WriteString(body)
	return []byte(b.String())
}
