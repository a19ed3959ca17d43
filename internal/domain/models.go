package domain

import (
	"time"

	"github.com/google/uuid"
)

// User represents an authenticated user of the analyzer.
type User struct {
	ID           uuid.UUID `db:"id" json:"id"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	FullName     string    `db:"full_name" json:"full_name"`
	Role         UserRole  `db:"role" json:"role"`
	IsActive     bool      `db:"is_active" json:"is_active"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

// ExtractedDocument is the structured result of processing one utility
// document. Pointer fields are optional: nil means the field was not found
// in the source text, never zero. The JSON field names are the wire contract
// consumed by the upload and reporting UIs.
type ExtractedDocument struct {
	ID               uuid.UUID  `db:"id" json:"id"`
	FileID           *uuid.UUID `db:"file_id" json:"fileId,omitempty"`
	BillType         BillType   `db:"bill_type" json:"billType"`
	EnergyUsage      *float64   `db:"energy_usage" json:"energyUsage,omitempty"`
	WaterConsumption *float64   `db:"water_consumption" json:"waterConsumption,omitempty"`
	FuelConsumption  *float64   `db:"fuel_consumption" json:"fuelConsumption,omitempty"`
	WasteGeneration  *float64   `db:"waste_generation" json:"wasteGeneration,omitempty"`
	FuelType         FuelType   `db:"fuel_type" json:"fuelType,omitempty"`
	Amount           *float64   `db:"amount" json:"amount,omitempty"`
	BillDate         string     `db:"bill_date" json:"billDate,omitempty"`
	Vendor           string     `db:"vendor" json:"vendor,omitempty"`
	Confidence       float64    `db:"confidence" json:"confidence"`
	SourceFile       string     `db:"source_file" json:"sourceFile,omitempty"`
	CreatedBy        *uuid.UUID `db:"created_by" json:"createdBy,omitempty"`
	CreatedAt        time.Time  `db:"created_at" json:"createdAt"`
}

// Quantity returns the populated consumption quantity for the document's
// category, or nil if none was extracted.
func (d *ExtractedDocument) Quantity() *float64 {
	switch d.BillType {
	case BillTypeElectricity:
		return d.EnergyUsage
	case BillTypeWater:
		return d.WaterConsumption
	case BillTypeFuel:
		return d.FuelConsumption
	case BillTypeWaste:
		return d.WasteGeneration
	default:
		return nil
	}
}

// EmissionSummary is the aggregate emission result for a document batch.
// Both TotalEmissions and every Breakdown entry are tonnes CO2-equivalent.
type EmissionSummary struct {
	TotalEmissions float64              `json:"totalEmissions"`
	Breakdown      map[BillType]float64 `json:"breakdown"`
	Unit           string               `json:"unit"`
}

// SustainabilityMetrics is the full sustainability picture over a batch:
// emissions, raw consumption sums, and the composite ESG score.
// It is recomputed fresh on every request, never stored.
type SustainabilityMetrics struct {
	TotalEmissions   float64              `json:"totalEmissions"`
	Breakdown        map[BillType]float64 `json:"breakdown"`
	Unit             string               `json:"unit"`
	EnergyUsage      float64              `json:"energyUsage"`
	WaterConsumption float64              `json:"waterConsumption"`
	FuelConsumption  float64              `json:"fuelConsumption"`
	WasteGeneration  float64              `json:"wasteGeneration"`
	ESGScore         float64              `json:"esgScore"`
	DocumentCount    int                  `json:"documentCount"`
}

// FileMeta stores metadata about an uploaded source document file.
type FileMeta struct {
	ID           uuid.UUID  `db:"id" json:"id"`
	UploadedBy   uuid.UUID  `db:"uploaded_by" json:"uploaded_by"`
	FileName     string     `db:"file_name" json:"file_name"`
	OriginalName string     `db:"original_name" json:"original_name"`
	FileType     FileType   `db:"file_type" json:"file_type"`
	FileSize     int64      `db:"file_size" json:"file_size"`
	S3Bucket     string     `db:"s3_bucket" json:"s3_bucket"`
	S3Key        string     `db:"s3_key" json:"s3_key"`
	ContentType  string     `db:"content_type" json:"content_type"`
	Status       FileStatus `db:"status" json:"status"`
	CreatedAt    time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time  `db:"updated_at" json:"updated_at"`
}
