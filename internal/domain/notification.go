package domain

import (
	"context"
	"time"
)

// Mailer sends a single email. Implementations may use SES, SMTP, or a noop
// for development.
type Mailer interface {
	Send(to, subject, html, text string) error
}

// EmailTemplateRenderer renders a named email template with data and returns
// the subject, html body, and text body.
type EmailTemplateRenderer interface {
	Render(templateName string, data interface{}) (subject, htmlBody, textBody string, err error)
}

// SwapRequestedNotification carries the context for the swap.requested event
// sent to the target leader when a proposal is created.
type SwapRequestedNotification struct {
	RecipientEmail     string
	RecipientName      string
	InitiatorName      string
	InitiatingDate     time.Time
	InitiatingTeamName string
	TargetDate         time.Time
	TargetTeamName     string
}

// SwapRespondedNotification carries the context for the swap.responded event
// sent to the initiating leader when the target leader accepts or rejects.
type SwapRespondedNotification struct {
	RecipientEmail     string
	RecipientName      string
	ResponderName      string
	Accepted           bool
	InitiatingDate     time.Time
	InitiatingTeamName string
	TargetDate         time.Time
	TargetTeamName     string
}

// NotificationService dispatches swap lifecycle notifications. Calls are
// best-effort from the engine's perspective: the engine logs failures and
// never joins them into its own result.
type NotificationService interface {
	SwapRequested(ctx context.Context, data *SwapRequestedNotification) error
	SwapResponded(ctx context.Context, data *SwapRespondedNotification) error
}
