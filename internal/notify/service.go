package notify

import (
	"context"
	"fmt"
	"strings"

	"github.com/turbopyme/landing-telemetry/internal/collector"
	"github.com/turbopyme/landing-telemetry/pkg/logging"
)

// LeadNotifier emails newly captured leads to the sales inbox.
type LeadNotifier struct {
	email  EmailSender
	to     string
	logger *logging.Logger
}

// NewLeadNotifier creates a lead notifier. Returns nil when no recipient is
// configured, which disables notifications entirely.
func NewLeadNotifier(email EmailSender, to string, logger *logging.Logger) *LeadNotifier {
	if email == nil || strings.TrimSpace(to) == "" {
		return nil
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &LeadNotifier{email: email, to: to, logger: logger}
}

// NotifyNewLead sends the new-lead email.
func (n *LeadNotifier) NotifyNewLead(ctx context.Context, lead *collector.StoredLead) error {
	if lead == nil {
		return fmt.Errorf("notify: lead required")
	}

	var b strings.Builder
	fmt.Fprintf(&b, "New lead from %s\n\n", lead.Site)
	fmt.Fprintf(&b, "Name:    %s\n", lead.Name)
	fmt.Fprintf(&b, "Email:   %s\n", lead.Email)
	if lead.Phone != "" {
		fmt.Fprintf(&b, "Phone:   %s\n", lead.Phone)
	}
	if lead.Company != "" {
		fmt.Fprintf(&b, "Company: %s\n", lead.Company)
	}
	if lead.Message != "" {
		fmt.Fprintf(&b, "\nMessage:\n%s\n", lead.Message)
	}
	fmt.Fprintf(&b, "\nCaptured at %s\n", lead.CreatedAt.Format("2006-01-02 15:04:05 UTC"))

	msg := EmailMessage{
		To:      n.to,
		Subject: fmt.Sprintf("Nuevo lead: %s", lead.Name),
		Body:    b.String(),
	}
	if err := n.email.Send(ctx, msg); err != nil {
		return fmt.Errorf("notify: send lead email: %w", err)
	}

	n.logger.Info("lead notification sent", "lead_id", lead.ID, "to", n.to)
	return nil
}
