package mailer

import (
	"strings"
	"testing"
	"time"

	"github.com/expiryguard/backend/internal/domain"
)

func TestBuildAlertBody(t *testing.T) {
	now := time.Date(2026, time.March, 10, 8, 0, 0, 0, time.Local)
	items := []domain.InventoryItem{
		{ProductName: "Milk", ExpiryDate: "12/03/2026"},
		{ProductName: "Old Cheese", ExpiryDate: "01/03/2026"},
		{ProductName: "Mystery Jar", ExpiryDate: "soon"},
	}

	body := buildAlertBody(items, now)

	if !strings.Contains(body, "- Milk - Expires in 2 days") {
		t.Errorf("missing near-expiry line:\n%s", body)
	}
	if !strings.Contains(body, "- Old Cheese - EXPIRED") {
		t.Errorf("missing expired line:\n%s", body)
	}
	if strings.Contains(body, "Mystery Jar") {
		t.Errorf("unparseable item should be skipped:\n%s", body)
	}
	if !strings.Contains(body, "need attention") || !strings.Contains(body, "dashboard") {
		t.Errorf("missing boilerplate:\n%s", body)
	}
}

func TestBuildMessage(t *testing.T) {
	msg := string(buildMessage("alerts@example.com", "user@example.com", "Subject Line", "hello"))

	for _, want := range []string{
		"From: alerts@example.com\r\n",
		"To: user@example.com\r\n",
		"Subject: Subject Line\r\n",
		"\r\n\r\nhello",
	} {
		if !strings.Contains(msg, want) {
			t.Errorf("message missing %q:\n%s", want, msg)
		}
	}
}
