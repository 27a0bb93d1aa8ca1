package domain

import "context"

// Mailer defines the contract for sending emails (infrastructure port).
type Mailer interface {
	Send(to, subject, html, text string) error
}

// EmailTemplateRenderer renders email content from a named template with the given data.
type EmailTemplateRenderer interface {
	Render(templateName string, data any) (subject, htmlBody, textBody string, err error)
}

// ShiftDecisionEmailData holds data for the shift approved/rejected emails.
type ShiftDecisionEmailData struct {
	Email      string
	StaffName  string
	EventTitle string
	EventDate  string
	Venue      string
	StartTime  string
}

// EmailService defines the contract for sending domain-level emails.
type EmailService interface {
	SendShiftApproved(ctx context.Context, data *ShiftDecisionEmailData) error
	SendShiftRejected(ctx context.Context, data *ShiftDecisionEmailData) error
}
