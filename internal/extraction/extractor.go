package extraction

import (
	"greenlens/internal/domain"
)

// DefaultBaseline is the confidence assigned for a successful
// classification before any field credit is added.
const DefaultBaseline = 0.5

// ScoreFunc computes a confidence in [0,1] from the number of expected
// fields for the bill type and the number actually extracted. It is a
// plain deterministic heuristic; a stronger model can be swapped in
// without touching the Extractor interface.
type ScoreFunc func(expected, extracted int) float64

// DefaultScorer returns the increment-per-field scoring scheme: baseline
// plus an equal share of the remaining headroom per extracted field,
// clamped to [0,1]. With a 0.5 baseline and four expected fields each
// field is worth 0.125.
func DefaultScorer(baseline float64) ScoreFunc {
	return func(expected, extracted int) float64 {
		if expected <= 0 {
			return 0
		}
		score := baseline + (1-baseline)*float64(extracted)/float64(expected)
		if score > 1 {
			score = 1
		}
		if score < 0 {
			score = 0
		}
		return score
	}
}

// Config carries the injected tables and scoring function for an
// Extractor. All fields are optional; zero values fall back to the
// built-in defaults.
type Config struct {
	Rules    []Rule
	Vendors  map[domain.BillType][]VendorAlias
	Patterns *Patterns
	Score    ScoreFunc
}

// Extractor orchestrates classification and field extraction for one
// document. It holds only immutable configuration and is safe for
// concurrent use.
type Extractor struct {
	classifier *Classifier
	patterns   *Patterns
	score      ScoreFunc
}

// New creates an Extractor from cfg, filling unset fields with defaults.
func New(cfg Config) *Extractor {
	if cfg.Rules == nil {
		cfg.Rules = DefaultRules()
	}
	if cfg.Vendors == nil {
		cfg.Vendors = DefaultVendorAliases()
	}
	if cfg.Patterns == nil {
		cfg.Patterns = DefaultPatterns()
	}
	if cfg.Score == nil {
		cfg.Score = DefaultScorer(DefaultBaseline)
	}
	return &Extractor{
		classifier: NewClassifier(cfg.Rules, cfg.Vendors),
		patterns:   cfg.Patterns,
		score:      cfg.Score,
	}
}

// Extract produces one ExtractedDocument from a document's recognized
// text and filename hint. It never fails: empty text yields the
// degenerate document, unclassifiable text yields BillTypeOther with
// floor confidence.
func (e *Extractor) Extract(filename, text string) domain.ExtractedDocument {
	if text == "" {
		return Degenerate(filename)
	}

	doc := domain.ExtractedDocument{
		BillType:   e.classifier.Classify(filename, text),
		SourceFile: filename,
	}
	doc.BillDate = date(e.patterns.Date, text)

	// Expected fields per bill type: one quantity, amount, date, vendor.
	const expected = 4
	extracted := 0

	switch doc.BillType {
	case domain.BillTypeElectricity:
		doc.EnergyUsage = number(e.patterns.Energy, text)
	case domain.BillTypeWater:
		doc.WaterConsumption = number(e.patterns.Water, text)
	case domain.BillTypeFuel:
		doc.FuelConsumption = number(e.patterns.Fuel, text)
		doc.FuelType = e.classifier.DetectFuelType(filename, text)
	case domain.BillTypeWaste:
		doc.WasteGeneration = number(e.patterns.Waste, text)
	default:
		// Unrecognized documents carry the floor confidence; the date, if
		// any, is still reported for display.
		return doc
	}

	doc.Amount = number(e.patterns.Amount, text)
	doc.Vendor = e.classifier.ResolveVendor(doc.BillType, filename, text)

	if doc.Quantity() != nil {
		extracted++
	}
	if doc.Amount != nil {
		extracted++
	}
	if doc.BillDate != "" {
		extracted++
	}
	if doc.Vendor != "" {
		extracted++
	}
	doc.Confidence = e.score(expected, extracted)
	return doc
}

// Degenerate returns the minimum-confidence document produced when text
// recognition fails or yields nothing usable. This degrades rather than
// aborts: the document joins the batch with zero emission contribution.
func Degenerate(filename string) domain.ExtractedDocument {
	return domain.ExtractedDocument{
		BillType:   domain.BillTypeOther,
		SourceFile: filename,
	}
}
