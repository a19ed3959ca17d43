package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"greenlens/internal/domain"
)

// MockEmissionService is a mock implementation of service.EmissionService.
type MockEmissionService struct {
	mock.Mock
}

func (m *MockEmissionService) Calculate(ctx context.Context, docs []domain.ExtractedDocument) (*domain.EmissionSummary, error) {
	args := m.Called(ctx, docs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.EmissionSummary), args.Error(1)
}

func (m *MockEmissionService) CalculateStored(ctx context.Context) (*domain.EmissionSummary, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.EmissionSummary), args.Error(1)
}
