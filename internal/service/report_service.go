package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log"

	"github.com/xuri/excelize/v2"

	"greenlens/internal/config"
	"greenlens/internal/domain"
	"greenlens/internal/emissions"
	"greenlens/internal/export"
	"greenlens/internal/port"
)

// ReportService produces the sustainability metrics view and its exports.
type ReportService interface {
	Metrics(ctx context.Context) (*domain.SustainabilityMetrics, error)
	ExportCSV(ctx context.Context, w io.Writer) error
	ExportXLSX(ctx context.Context) ([]byte, error)
	EmailReport(ctx context.Context, toEmail, toName string) error
}

type reportService struct {
	docRepo    port.DocumentRepository
	calculator *emissions.Calculator
	scorer     *emissions.ESGScorer
	sender     port.EmailSender
	cfg        *config.EngineConfig
}

// NewReportService creates a new ReportService implementation.
func NewReportService(
	docRepo port.DocumentRepository,
	calculator *emissions.Calculator,
	scorer *emissions.ESGScorer,
	sender port.EmailSender,
	cfg *config.EngineConfig,
) ReportService {
	return &reportService{
		docRepo:    docRepo,
		calculator: calculator,
		scorer:     scorer,
		sender:     sender,
		cfg:        cfg,
	}
}

// Metrics recomputes the full sustainability picture from the stored
// documents. Nothing is cached or incrementally updated: the result is a
// pure function of the current batch.
func (s *reportService) Metrics(ctx context.Context) (*domain.SustainabilityMetrics, error) {
	docs, err := s.docRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("reportService.Metrics: %w", err)
	}
	return s.compute(docs)
}

func (s *reportService) compute(docs []domain.ExtractedDocument) (*domain.SustainabilityMetrics, error) {
	summary, err := s.calculator.Calculate(docs)
	if err != nil {
		return nil, err
	}
	energy, water, fuel, waste := emissions.RawTotals(docs)

	metrics := &domain.SustainabilityMetrics{
		TotalEmissions:   summary.TotalEmissions,
		Breakdown:        summary.Breakdown,
		Unit:             summary.Unit,
		EnergyUsage:      energy,
		WaterConsumption: water,
		FuelConsumption:  fuel,
		WasteGeneration:  waste,
		DocumentCount:    len(docs),
	}
	metrics.ESGScore = s.scorer.Score(emissions.ESGInputs{
		EnergyEfficiency: efficiencyScore(s.cfg.EnergyBaselineKWh, energy),
		WaterEfficiency:  efficiencyScore(s.cfg.WaterBaselineL, water),
		WasteReduction:   efficiencyScore(s.cfg.WasteBaselineKg, waste),
		CarbonScore:      efficiencyScore(s.cfg.CarbonBaselineKg, summary.TotalEmissions*1000),
	})
	return metrics, nil
}

// efficiencyScore maps a consumption total against its monthly baseline
// onto a 0-100 better-is-higher scale. The curve 100*b/(b+usage) is
// strictly decreasing in usage, so lower consumption always scores
// higher, and it never leaves (0,100].
func efficiencyScore(baseline, usage float64) float64 {
	if baseline <= 0 {
		return 0
	}
	if usage < 0 {
		usage = 0
	}
	return 100 * baseline / (baseline + usage)
}

// ExportCSV streams all stored documents as CSV.
func (s *reportService) ExportCSV(ctx context.Context, w io.Writer) error {
	docs, err := s.docRepo.ListAll(ctx)
	if err != nil {
		return fmt.Errorf("reportService.ExportCSV: %w", err)
	}

	cw := export.NewWriter(w)
	if err := cw.WriteHeader(); err != nil {
		return fmt.Errorf("reportService.ExportCSV header: %w", err)
	}
	if err := cw.WriteDocuments(docs); err != nil {
		return fmt.Errorf("reportService.ExportCSV rows: %w", err)
	}
	cw.Flush()
	return cw.Error()
}

// ExportXLSX builds a two-sheet workbook: the document list and the
// metrics summary.
func (s *reportService) ExportXLSX(ctx context.Context) ([]byte, error) {
	docs, err := s.docRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("reportService.ExportXLSX: %w", err)
	}
	metrics, err := s.compute(docs)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	const docSheet = "Documents"
	if err := f.SetSheetName("Sheet1", docSheet); err != nil {
		return nil, fmt.Errorf("renaming sheet: %w", err)
	}
	header := []interface{}{"Source File", "Bill Type", "Vendor", "Bill Date",
		"Energy (kWh)", "Water (L)", "Fuel (L)", "Waste (kg)", "Amount", "Confidence"}
	if err := f.SetSheetRow(docSheet, "A1", &header); err != nil {
		return nil, fmt.Errorf("writing header: %w", err)
	}
	for i := range docs {
		doc := &docs[i]
		row := []interface{}{
			doc.SourceFile, string(doc.BillType), doc.Vendor, doc.BillDate,
			optional(doc.EnergyUsage), optional(doc.WaterConsumption),
			optional(doc.FuelConsumption), optional(doc.WasteGeneration),
			optional(doc.Amount), doc.Confidence,
		}
		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(docSheet, cell, &row); err != nil {
			return nil, fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}

	const sumSheet = "Summary"
	if _, err := f.NewSheet(sumSheet); err != nil {
		return nil, fmt.Errorf("creating summary sheet: %w", err)
	}
	rows := [][]interface{}{
		{"Total Emissions (" + metrics.Unit + ")", metrics.TotalEmissions},
		{"Energy Usage (kWh)", metrics.EnergyUsage},
		{"Water Consumption (L)", metrics.WaterConsumption},
		{"Fuel Consumption (L)", metrics.FuelConsumption},
		{"Waste Generation (kg)", metrics.WasteGeneration},
		{"ESG Score", metrics.ESGScore},
		{"Documents", metrics.DocumentCount},
	}
	for category, v := range metrics.Breakdown {
		rows = append(rows, []interface{}{fmt.Sprintf("Emissions: %s (%s)", category, metrics.Unit), v})
	}
	for i, row := range rows {
		cell := fmt.Sprintf("A%d", i+1)
		if err := f.SetSheetRow(sumSheet, cell, &row); err != nil {
			return nil, fmt.Errorf("writing summary row %d: %w", i+1, err)
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("writing workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// EmailReport computes the current metrics and sends them to the given
// recipient.
func (s *reportService) EmailReport(ctx context.Context, toEmail, toName string) error {
	metrics, err := s.Metrics(ctx)
	if err != nil {
		return err
	}
	if err := s.sender.SendReportEmail(ctx, toEmail, toName, metrics); err != nil {
		return fmt.Errorf("reportService.EmailReport: %w", err)
	}
	log.Printf("reportService.EmailReport: report sent to %s (%d documents)", toEmail, metrics.DocumentCount)
	return nil
}

func optional(v *float64) interface{} {
	if v == nil {
		return ""
	}
	return *v
}
