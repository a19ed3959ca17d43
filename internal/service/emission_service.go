package service

import (
	"context"
	"fmt"

	"greenlens/internal/domain"
	"greenlens/internal/emissions"
	"greenlens/internal/port"
)

// EmissionService aggregates document batches into emission totals.
type EmissionService interface {
	Calculate(ctx context.Context, docs []domain.ExtractedDocument) (*domain.EmissionSummary, error)
	CalculateStored(ctx context.Context) (*domain.EmissionSummary, error)
}

type emissionService struct {
	docRepo    port.DocumentRepository
	calculator *emissions.Calculator
}

// NewEmissionService creates a new EmissionService implementation.
func NewEmissionService(docRepo port.DocumentRepository, calculator *emissions.Calculator) EmissionService {
	return &emissionService{docRepo: docRepo, calculator: calculator}
}

// Calculate computes the emission summary for a caller-supplied batch.
func (s *emissionService) Calculate(_ context.Context, docs []domain.ExtractedDocument) (*domain.EmissionSummary, error) {
	return s.calculator.Calculate(docs)
}

// CalculateStored computes the emission summary over every stored document.
func (s *emissionService) CalculateStored(ctx context.Context) (*domain.EmissionSummary, error) {
	docs, err := s.docRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("emissionService.CalculateStored: %w", err)
	}
	return s.calculator.Calculate(docs)
}
