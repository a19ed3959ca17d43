package port

import (
	"context"

	"greenlens/internal/domain"
)

// EmailSender defines the contract for sending sustainability report emails.
type EmailSender interface {
	SendReportEmail(ctx context.Context, toEmail, toName string, metrics *domain.SustainabilityMetrics) error
}
