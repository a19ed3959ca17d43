package emissions

import (
	"fmt"

	"greenlens/internal/domain"
)

// kgPerTonne converts accumulated kilogram totals into the tCO2e wire
// unit. Totals and breakdown entries use the same unit.
const kgPerTonne = 1000.0

// Unit is the wire unit for all emission outputs.
const Unit = "tCO2e"

// Calculator aggregates extracted documents into emission totals. It is
// stateless apart from its factor table and safe for concurrent use.
type Calculator struct {
	factors FactorTable
}

// NewCalculator creates a Calculator over the given factor table.
func NewCalculator(factors FactorTable) *Calculator {
	return &Calculator{factors: factors}
}

// Calculate produces the per-category breakdown and total for a batch.
// The accumulation is a plain sum, so the result is invariant under any
// reordering of docs. Documents with BillTypeOther, or without a
// populated quantity, contribute nothing and are omitted from the
// breakdown. A negative quantity or amount anywhere rejects the whole
// batch: silently dropping it could understate emissions.
func (c *Calculator) Calculate(docs []domain.ExtractedDocument) (*domain.EmissionSummary, error) {
	if err := Validate(docs); err != nil {
		return nil, err
	}

	kg := make(map[domain.BillType]float64)
	for i := range docs {
		doc := &docs[i]
		q := doc.Quantity()
		if q == nil {
			continue
		}
		kg[doc.BillType] += *q * c.factor(doc)
	}

	summary := &domain.EmissionSummary{
		Breakdown: make(map[domain.BillType]float64, len(kg)),
		Unit:      Unit,
	}
	for category, v := range kg {
		t := v / kgPerTonne
		summary.Breakdown[category] = t
		summary.TotalEmissions += t
	}
	return summary, nil
}

// Validate checks a batch for inputs the calculator must reject: unknown
// or missing bill types and negative quantities or amounts. Every
// document carries exactly one bill type, so an empty value is invalid
// rather than skippable.
func Validate(docs []domain.ExtractedDocument) error {
	for i := range docs {
		doc := &docs[i]
		if !domain.ValidBillTypes[doc.BillType] {
			return fmt.Errorf("document %d: %q: %w", i, doc.BillType, domain.ErrInvalidBillType)
		}
		for _, v := range []*float64{doc.EnergyUsage, doc.WaterConsumption, doc.FuelConsumption, doc.WasteGeneration, doc.Amount} {
			if v != nil && *v < 0 {
				return fmt.Errorf("document %d: %w", i, domain.ErrNegativeQuantity)
			}
		}
	}
	return nil
}

// RawTotals sums the raw consumption quantities across a batch, used for
// the sustainability metrics view. It assumes the batch already passed
// Validate.
func RawTotals(docs []domain.ExtractedDocument) (energy, water, fuel, waste float64) {
	for i := range docs {
		doc := &docs[i]
		switch doc.BillType {
		case domain.BillTypeElectricity:
			if doc.EnergyUsage != nil {
				energy += *doc.EnergyUsage
			}
		case domain.BillTypeWater:
			if doc.WaterConsumption != nil {
				water += *doc.WaterConsumption
			}
		case domain.BillTypeFuel:
			if doc.FuelConsumption != nil {
				fuel += *doc.FuelConsumption
			}
		case domain.BillTypeWaste:
			if doc.WasteGeneration != nil {
				waste += *doc.WasteGeneration
			}
		}
	}
	return energy, water, fuel, waste
}

// factor selects the kg CO2e multiplier for a document. Fuel bills use
// the petrol factor only when the fuel type was detected as petrol;
// unspecified fuel is assumed diesel.
func (c *Calculator) factor(doc *domain.ExtractedDocument) float64 {
	switch doc.BillType {
	case domain.BillTypeElectricity:
		return c.factors.Electricity
	case domain.BillTypeWater:
		return c.factors.Water
	case domain.BillTypeFuel:
		if doc.FuelType == domain.FuelTypePetrol {
			return c.factors.Petrol
		}
		return c.factors.Diesel
	case domain.BillTypeWaste:
		return c.factors.Waste
	default:
		return 0
	}
}
