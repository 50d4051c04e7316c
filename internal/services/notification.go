package services

import (
	"context"
	"fmt"
	"log/slog"

	"worshipscheduler/internal/domain"
)

type notificationService struct {
	mailer   domain.Mailer
	renderer domain.EmailTemplateRenderer
	logger   *slog.Logger
}

// NewNotificationService returns a NotificationService that renders swap
// lifecycle emails and sends them through the given Mailer.
func NewNotificationService(mailer domain.Mailer, renderer domain.EmailTemplateRenderer, logger *slog.Logger) domain.NotificationService {
	return &notificationService{mailer: mailer, renderer: renderer, logger: logger}
}

// SwapRequested sends the swap.requested email to the target leader.
func (s *notificationService) SwapRequested(ctx context.Context, data *domain.SwapRequestedNotification) error {
	if data == nil {
		return fmt.Errorf("swap requested data is nil")
	}
	subject, htmlBody, textBody, err := s.renderer.Render("swap_requested", data)
	if err != nil {
		return fmt.Errorf("failed to render swap_requested template: %w", err)
	}
	if err := s.mailer.Send(data.RecipientEmail, subject, htmlBody, textBody); err != nil {
		return fmt.Errorf("failed to send swap requested email: %w", err)
	}
	s.logger.InfoContext(ctx, "swap.requested notification sent", "to", data.RecipientEmail)
	return nil
}

// SwapResponded sends the swap.responded email to the initiating leader.
func (s *notificationService) SwapResponded(ctx context.Context, data *domain.SwapRespondedNotification) error {
	if data == nil {
		return fmt.Errorf("swap responded data is nil")
	}
	subject, htmlBody, textBody, err := s.renderer.Render("swap_responded", data)
	if err != nil {
		return fmt.Errorf("failed to render swap_responded template: %w", err)
	}
	if err := s.mailer.Send(data.RecipientEmail, subject, htmlBody, textBody); err != nil {
		return fmt.Errorf("failed to send swap responded email: %w", err)
	}
	s.logger.InfoContext(ctx, "swap.responded notification sent", "to", data.RecipientEmail)
	return nil
}
