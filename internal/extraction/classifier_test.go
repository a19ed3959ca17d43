package extraction_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"greenlens/internal/domain"
	"greenlens/internal/extraction"
)

func newClassifier() *extraction.Classifier {
	return extraction.NewClassifier(extraction.DefaultRules(), extraction.DefaultVendorAliases())
}

func TestClassify_ByKeyword(t *testing.T) {
	c := newClassifier()

	tests := []struct {
		name string
		hint string
		text string
		want domain.BillType
	}{
		{"electricity text", "", "electricity bill for november", domain.BillTypeElectricity},
		{"electricity board acronym", "", "MSEB invoice", domain.BillTypeElectricity},
		{"water", "", "municipal water supply charges", domain.BillTypeWater},
		{"fuel", "", "diesel purchase receipt", domain.BillTypeFuel},
		{"fuel brand", "", "Indian Oil fuel station", domain.BillTypeFuel},
		{"waste", "", "garbage disposal charges", domain.BillTypeWaste},
		{"hint only", "bescom_invoice.pdf", "illegible scan", domain.BillTypeElectricity},
		{"no match", "scan001.png", "lorem ipsum", domain.BillTypeOther},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, c.Classify(tt.hint, tt.text))
		})
	}
}

func TestClassify_RuleOrder(t *testing.T) {
	c := newClassifier()

	// Both electricity and water keywords present: electricity is
	// declared first and wins.
	got := c.Classify("", "electricity charges included in water bill")
	assert.Equal(t, domain.BillTypeElectricity, got)
}

func TestClassify_CaseInsensitive(t *testing.T) {
	c := newClassifier()

	assert.Equal(t, domain.BillTypeElectricity, c.Classify("", "ELECTRICITY BILL"))
	assert.Equal(t, domain.BillTypeFuel, c.Classify("PETROL_receipt.JPG", ""))
}

func TestResolveVendor_Canonicalizes(t *testing.T) {
	c := newClassifier()

	tests := []struct {
		name     string
		billType domain.BillType
		text     string
		want     string
	}{
		{"mseb acronym", domain.BillTypeElectricity, "bill from MSEB for november", "Maharashtra State Electricity Board"},
		{"tata power", domain.BillTypeElectricity, "Tata Power monthly invoice", "Tata Power"},
		{"bwssb long form", domain.BillTypeWater, "Bangalore Water Supply and Sewerage", "BWSSB"},
		{"bpcl", domain.BillTypeFuel, "BPCL outlet 42", "Bharat Petroleum"},
		{"unknown vendor", domain.BillTypeElectricity, "some local provider", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, c.ResolveVendor(tt.billType, "", tt.text))
		})
	}
}

func TestResolveVendor_ScopedToCategory(t *testing.T) {
	c := newClassifier()

	// A fuel brand in the text must not resolve for a water bill.
	assert.Equal(t, "", c.ResolveVendor(domain.BillTypeWater, "", "paid at Indian Oil counter"))
}

func TestDetectFuelType(t *testing.T) {
	c := newClassifier()

	assert.Equal(t, domain.FuelTypePetrol, c.DetectFuelType("", "petrol 10 ltrs"))
	assert.Equal(t, domain.FuelTypeDiesel, c.DetectFuelType("", "diesel 10 ltrs"))
	assert.Equal(t, domain.FuelTypePetrol, c.DetectFuelType("petrol_pump.jpg", "diesel also sold here"))
	assert.Equal(t, domain.FuelType(""), c.DetectFuelType("", "fuel receipt"))
}
