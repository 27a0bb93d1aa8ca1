package services

import (
	"context"
	"fmt"
	"log/slog"

	"staffline/internal/domain"
)

type emailService struct {
	mailer   domain.Mailer
	renderer domain.EmailTemplateRenderer
	logger   *slog.Logger
}

// NewEmailService returns an EmailService that uses the given Mailer and template renderer.
func NewEmailService(mailer domain.Mailer, renderer domain.EmailTemplateRenderer, logger *slog.Logger) domain.EmailService {
	if logger == nil {
		logger = slog.Default()
	}
	return &emailService{mailer: mailer, renderer: renderer, logger: logger}
}

// SendShiftApproved notifies a staff member that their shift request was approved.
func (s *emailService) SendShiftApproved(ctx context.Context, data *domain.ShiftDecisionEmailData) error {
	return s.send("shift_approved", data)
}

// SendShiftRejected notifies a staff member that their shift request was rejected.
func (s *emailService) SendShiftRejected(ctx context.Context, data *domain.ShiftDecisionEmailData) error {
	return s.send("shift_rejected", data)
}

func (s *emailService) send(templateName string, data *domain.ShiftDecisionEmailData) error {
	if data == nil {
		return fmt.Errorf("shift decision email data is nil")
	}
	subject, htmlBody, textBody, err := s.renderer.Render(templateName, data)
	if err != nil {
		return fmt.Errorf("failed to render %s template: %w", templateName, err)
	}
	if err := s.mailer.Send(data.Email, subject, htmlBody, textBody); err != nil {
		return fmt.Errorf("failed to send %s email: %w", templateName, err)
	}
	s.logger.Info("shift decision email sent", "template", templateName, "to", data.Email)
	return nil
}
