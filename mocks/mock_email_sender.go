package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"greenlens/internal/domain"
)

// MockEmailSender is a mock implementation of port.EmailSender.
type MockEmailSender struct {
	mock.Mock
}

func (m *MockEmailSender) SendReportEmail(ctx context.Context, toEmail, toName string, metrics *domain.SustainabilityMetrics) error {
	args := m.Called(ctx, toEmail, toName, metrics)
	return args.Error(0)
}
