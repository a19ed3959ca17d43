package export

import (
	"encoding/csv"
	"io"
	"strconv"

	"greenlens/internal/domain"
)

// columns defines the CSV header row.
var columns = []string{
	"Source File",
	"Bill Type",
	"Vendor",
	"Bill Date",
	"Energy Usage (kWh)",
	"Water Consumption (L)",
	"Fuel Consumption (L)",
	"Waste Generation (kg)",
	"Fuel Type",
	"Amount",
	"Confidence",
	"Created At",
}

// Writer wraps csv.Writer for exporting extracted documents as CSV.
type Writer struct {
	csv *csv.Writer
}

// NewWriter creates a Writer that writes CSV to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{csv: csv.NewWriter(w)}
}

// WriteHeader writes the header row.
func (w *Writer) WriteHeader() error {
	return w.csv.Write(columns)
}

// WriteDocuments converts a batch of documents to CSV rows and writes them.
func (w *Writer) WriteDocuments(docs []domain.ExtractedDocument) error {
	for i := range docs {
		if err := w.csv.Write(documentToRow(&docs[i])); err != nil {
			return err
		}
	}
	return nil
}

// Flush flushes the underlying csv.Writer buffer.
func (w *Writer) Flush() {
	w.csv.Flush()
}

// Error returns any error from the underlying csv.Writer.
func (w *Writer) Error() error {
	return w.csv.Error()
}

func documentToRow(doc *domain.ExtractedDocument) []string {
	createdAt := ""
	if !doc.CreatedAt.IsZero() {
		createdAt = doc.CreatedAt.Format("2006-01-02 15:04:05")
	}
	return []string{
		doc.SourceFile,
		string(doc.BillType),
		doc.Vendor,
		doc.BillDate,
		formatOptional(doc.EnergyUsage),
		formatOptional(doc.WaterConsumption),
		formatOptional(doc.FuelConsumption),
		formatOptional(doc.WasteGeneration),
		string(doc.FuelType),
		formatOptional(doc.Amount),
		strconv.FormatFloat(doc.Confidence, 'f', 2, 64),
		createdAt,
	}
}

// formatOptional renders an absent quantity as an empty cell, never "0".
func formatOptional(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}
