package extraction

import (
	"strings"

	"greenlens/internal/domain"
)

// Rule maps a keyword set to a bill type. Rules are evaluated in slice
// order and the first rule with any keyword present in the lower-cased
// input wins, so declaration order is part of the classification contract:
// reordering rules changes outcomes for inputs matching several sets.
type Rule struct {
	Type     domain.BillType
	Keywords []string
}

// VendorAlias maps a known lower-case substring to one canonical provider
// name. Aliases are scoped per category so a fuel brand can never be
// resolved for a water bill.
type VendorAlias struct {
	Match     string
	Canonical string
}

// DefaultRules returns the built-in classification rules, in contract
// order: electricity, water, fuel, waste.
func DefaultRules() []Rule {
	return []Rule{
		{Type: domain.BillTypeElectricity, Keywords: []string{"electricity", "power", "kwh", "units", "mseb", "bescom", "tneb"}},
		{Type: domain.BillTypeWater, Keywords: []string{"water", "municipal", "jal", "litres", "kilolitres"}},
		{Type: domain.BillTypeFuel, Keywords: []string{"petrol", "diesel", "fuel", "indian oil", "bpcl", "hpcl"}},
		{Type: domain.BillTypeWaste, Keywords: []string{"waste", "garbage", "disposal", "recycling"}},
	}
}

// DefaultVendorAliases returns the built-in provider alias table for
// Indian utilities.
func DefaultVendorAliases() map[domain.BillType][]VendorAlias {
	return map[domain.BillType][]VendorAlias{
		domain.BillTypeElectricity: {
			{Match: "mseb", Canonical: "Maharashtra State Electricity Board"},
			{Match: "maharashtra state electricity board", Canonical: "Maharashtra State Electricity Board"},
			{Match: "tata power", Canonical: "Tata Power"},
			{Match: "adani electricity", Canonical: "Adani Electricity"},
			{Match: "bescom", Canonical: "BESCOM"},
			{Match: "bangalore electricity", Canonical: "BESCOM"},
			{Match: "tneb", Canonical: "TNEB"},
			{Match: "tamil nadu electricity", Canonical: "TNEB"},
		},
		domain.BillTypeWater: {
			{Match: "municipal corporation", Canonical: "Municipal Corporation"},
			{Match: "nagar nigam", Canonical: "Municipal Corporation"},
			{Match: "jal board", Canonical: "Jal Board"},
			{Match: "water department", Canonical: "Water Department"},
			{Match: "bangalore water supply", Canonical: "BWSSB"},
			{Match: "bwssb", Canonical: "BWSSB"},
		},
		domain.BillTypeFuel: {
			{Match: "indian oil", Canonical: "Indian Oil"},
			{Match: "ioc", Canonical: "Indian Oil"},
			{Match: "bharat petroleum", Canonical: "Bharat Petroleum"},
			{Match: "bpcl", Canonical: "Bharat Petroleum"},
			{Match: "hindustan petroleum", Canonical: "Hindustan Petroleum"},
			{Match: "hpcl", Canonical: "Hindustan Petroleum"},
			{Match: "reliance", Canonical: "Reliance Petroleum"},
			{Match: "shell", Canonical: "Shell"},
		},
	}
}

// Classifier resolves a document's bill type and canonical vendor from
// filename hints and recognized text. It is pure configuration plus
// lookups; identical input always yields identical output.
type Classifier struct {
	rules   []Rule
	vendors map[domain.BillType][]VendorAlias
}

// NewClassifier creates a Classifier over the given ordered rules and
// vendor alias table.
func NewClassifier(rules []Rule, vendors map[domain.BillType][]VendorAlias) *Classifier {
	return &Classifier{rules: rules, vendors: vendors}
}

// Classify returns the bill type for the given filename hint and text.
// No matching rule means BillTypeOther, which is a valid outcome, not an
// error.
func (c *Classifier) Classify(hint, text string) domain.BillType {
	input := strings.ToLower(hint + " " + text)
	for _, r := range c.rules {
		for _, kw := range r.Keywords {
			if strings.Contains(input, kw) {
				return r.Type
			}
		}
	}
	return domain.BillTypeOther
}

// ResolveVendor returns the canonical provider name for the category, or
// "" when no alias matches. Vendors are never guessed outside the alias
// table.
func (c *Classifier) ResolveVendor(billType domain.BillType, hint, text string) string {
	input := strings.ToLower(hint + " " + text)
	for _, a := range c.vendors[billType] {
		if strings.Contains(input, a.Match) {
			return a.Canonical
		}
	}
	return ""
}

// DetectFuelType reports whether a fuel bill is for petrol or diesel.
// Absent both keywords it returns "" and the calculator falls back to the
// diesel factor.
func (c *Classifier) DetectFuelType(hint, text string) domain.FuelType {
	input := strings.ToLower(hint + " " + text)
	switch {
	case strings.Contains(input, "petrol"):
		return domain.FuelTypePetrol
	case strings.Contains(input, "diesel"):
		return domain.FuelTypeDiesel
	default:
		return ""
	}
}
