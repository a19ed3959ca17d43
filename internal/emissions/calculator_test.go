package emissions_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"greenlens/internal/domain"
	"greenlens/internal/emissions"
)

func f(v float64) *float64 { return &v }

func TestCalculate_ElectricityFactor(t *testing.T) {
	calc := emissions.NewCalculator(emissions.DefaultFactors())

	summary, err := calc.Calculate([]domain.ExtractedDocument{
		{BillType: domain.BillTypeElectricity, EnergyUsage: f(245.5)},
	})
	require.NoError(t, err)

	// 245.5 kWh * 0.82 kg/kWh = 201.31 kg = 0.20131 t
	assert.InDelta(t, 0.20131, summary.TotalEmissions, 1e-9)
	assert.InDelta(t, 0.20131, summary.Breakdown[domain.BillTypeElectricity], 1e-9)
	assert.Equal(t, "tCO2e", summary.Unit)
}

func TestCalculate_AllCategories(t *testing.T) {
	calc := emissions.NewCalculator(emissions.DefaultFactors())

	summary, err := calc.Calculate([]domain.ExtractedDocument{
		{BillType: domain.BillTypeElectricity, EnergyUsage: f(1000)},
		{BillType: domain.BillTypeWater, WaterConsumption: f(10000)},
		{BillType: domain.BillTypeFuel, FuelConsumption: f(100), FuelType: domain.FuelTypeDiesel},
		{BillType: domain.BillTypeWaste, WasteGeneration: f(200)},
	})
	require.NoError(t, err)

	assert.InDelta(t, 0.82, summary.Breakdown[domain.BillTypeElectricity], 1e-9)
	assert.InDelta(t, 0.003, summary.Breakdown[domain.BillTypeWater], 1e-9)
	assert.InDelta(t, 0.268, summary.Breakdown[domain.BillTypeFuel], 1e-9)
	assert.InDelta(t, 0.1, summary.Breakdown[domain.BillTypeWaste], 1e-9)
	assert.InDelta(t, 0.82+0.003+0.268+0.1, summary.TotalEmissions, 1e-9)
}

func TestCalculate_PetrolVersusDiesel(t *testing.T) {
	calc := emissions.NewCalculator(emissions.DefaultFactors())

	petrol, err := calc.Calculate([]domain.ExtractedDocument{
		{BillType: domain.BillTypeFuel, FuelConsumption: f(100), FuelType: domain.FuelTypePetrol},
	})
	require.NoError(t, err)
	assert.InDelta(t, 0.231, petrol.TotalEmissions, 1e-9)

	// Unspecified fuel falls back to the diesel factor.
	unknown, err := calc.Calculate([]domain.ExtractedDocument{
		{BillType: domain.BillTypeFuel, FuelConsumption: f(100)},
	})
	require.NoError(t, err)
	assert.InDelta(t, 0.268, unknown.TotalEmissions, 1e-9)
}

func TestCalculate_Linearity(t *testing.T) {
	calc := emissions.NewCalculator(emissions.DefaultFactors())

	single, err := calc.Calculate([]domain.ExtractedDocument{
		{BillType: domain.BillTypeElectricity, EnergyUsage: f(100)},
	})
	require.NoError(t, err)

	double, err := calc.Calculate([]domain.ExtractedDocument{
		{BillType: domain.BillTypeElectricity, EnergyUsage: f(100)},
		{BillType: domain.BillTypeElectricity, EnergyUsage: f(100)},
	})
	require.NoError(t, err)

	assert.InDelta(t, 2*single.TotalEmissions, double.TotalEmissions, 1e-9)
}

func TestCalculate_PermutationInvariance(t *testing.T) {
	calc := emissions.NewCalculator(emissions.DefaultFactors())

	docs := []domain.ExtractedDocument{
		{BillType: domain.BillTypeElectricity, EnergyUsage: f(123.4)},
		{BillType: domain.BillTypeWater, WaterConsumption: f(5000)},
		{BillType: domain.BillTypeFuel, FuelConsumption: f(42), FuelType: domain.FuelTypePetrol},
		{BillType: domain.BillTypeWaste, WasteGeneration: f(18)},
		{BillType: domain.BillTypeElectricity, EnergyUsage: f(321)},
	}

	base, err := calc.Calculate(docs)
	require.NoError(t, err)

	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 20; i++ {
		shuffled := make([]domain.ExtractedDocument, len(docs))
		copy(shuffled, docs)
		rng.Shuffle(len(shuffled), func(a, b int) {
			shuffled[a], shuffled[b] = shuffled[b], shuffled[a]
		})

		got, err := calc.Calculate(shuffled)
		require.NoError(t, err)
		assert.InDelta(t, base.TotalEmissions, got.TotalEmissions, 1e-9)
		for k, v := range base.Breakdown {
			assert.InDelta(t, v, got.Breakdown[k], 1e-9)
		}
	}
}

func TestCalculate_SkipsOtherAndMissingQuantities(t *testing.T) {
	calc := emissions.NewCalculator(emissions.DefaultFactors())

	summary, err := calc.Calculate([]domain.ExtractedDocument{
		{BillType: domain.BillTypeOther},
		{BillType: domain.BillTypeElectricity}, // no quantity extracted
		{BillType: domain.BillTypeWater, WaterConsumption: f(1000)},
	})
	require.NoError(t, err)

	assert.Len(t, summary.Breakdown, 1)
	assert.InDelta(t, 0.0003, summary.TotalEmissions, 1e-9)
}

func TestCalculate_EmptyBatch(t *testing.T) {
	calc := emissions.NewCalculator(emissions.DefaultFactors())

	summary, err := calc.Calculate(nil)
	require.NoError(t, err)
	assert.Equal(t, 0.0, summary.TotalEmissions)
	assert.Empty(t, summary.Breakdown)
}

func TestCalculate_RejectsNegativeQuantity(t *testing.T) {
	calc := emissions.NewCalculator(emissions.DefaultFactors())

	_, err := calc.Calculate([]domain.ExtractedDocument{
		{BillType: domain.BillTypeElectricity, EnergyUsage: f(100)},
		{BillType: domain.BillTypeWater, WaterConsumption: f(-5)},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNegativeQuantity)
}

func TestCalculate_RejectsNegativeAmount(t *testing.T) {
	calc := emissions.NewCalculator(emissions.DefaultFactors())

	_, err := calc.Calculate([]domain.ExtractedDocument{
		{BillType: domain.BillTypeElectricity, EnergyUsage: f(100), Amount: f(-1)},
	})
	assert.ErrorIs(t, err, domain.ErrNegativeQuantity)
}

func TestCalculate_RejectsUnknownBillType(t *testing.T) {
	calc := emissions.NewCalculator(emissions.DefaultFactors())

	_, err := calc.Calculate([]domain.ExtractedDocument{
		{BillType: domain.BillType("gas")},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidBillType)
}

func TestCalculate_RejectsMissingBillType(t *testing.T) {
	calc := emissions.NewCalculator(emissions.DefaultFactors())

	_, err := calc.Calculate([]domain.ExtractedDocument{
		{BillType: domain.BillTypeElectricity, EnergyUsage: f(100)},
		{Amount: f(500)},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidBillType)
}

func TestRawTotals(t *testing.T) {
	energy, water, fuel, waste := emissions.RawTotals([]domain.ExtractedDocument{
		{BillType: domain.BillTypeElectricity, EnergyUsage: f(100)},
		{BillType: domain.BillTypeElectricity, EnergyUsage: f(50)},
		{BillType: domain.BillTypeWater, WaterConsumption: f(2000)},
		{BillType: domain.BillTypeFuel, FuelConsumption: f(30)},
		{BillType: domain.BillTypeWaste, WasteGeneration: f(12)},
		{BillType: domain.BillTypeOther},
	})

	assert.Equal(t, 150.0, energy)
	assert.Equal(t, 2000.0, water)
	assert.Equal(t, 30.0, fuel)
	assert.Equal(t, 12.0, waste)
}
