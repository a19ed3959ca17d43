package mocks

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"

	"greenlens/internal/domain"
)

// MockReportService is a mock implementation of service.ReportService.
type MockReportService struct {
	mock.Mock
}

func (m *MockReportService) Metrics(ctx context.Context) (*domain.SustainabilityMetrics, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SustainabilityMetrics), args.Error(1)
}

func (m *MockReportService) ExportCSV(ctx context.Context, w io.Writer) error {
	args := m.Called(ctx, w)
	return args.Error(0)
}

func (m *MockReportService) ExportXLSX(ctx context.Context) ([]byte, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockReportService) EmailReport(ctx context.Context, toEmail, toName string) error {
	args := m.Called(ctx, toEmail, toName)
	return args.Error(0)
}
