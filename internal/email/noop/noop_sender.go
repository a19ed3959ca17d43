package noop

import (
	"context"
	"log"

	"greenlens/internal/domain"
	"greenlens/internal/port"
)

type noopSender struct{}

// NewNoopSender creates a no-op EmailSender that logs report summaries
// to stdout.
func NewNoopSender() port.EmailSender {
	return noopSender{}
}

func (noopSender) SendReportEmail(_ context.Context, toEmail, toName string, metrics *domain.SustainabilityMetrics) error {
	log.Printf("[NOOP EMAIL] report for %s (%s): %.5f %s over %d documents, ESG %.1f",
		toName, toEmail, metrics.TotalEmissions, metrics.Unit, metrics.DocumentCount, metrics.ESGScore)
	return nil
}
