package emissions

// FactorTable maps each consumption category to its CO2-equivalent factor
// in kg CO2e per native unit (kWh for electricity, litre for water and
// fuel, kg for waste). A table is immutable after construction and is
// injected into the Calculator so regional tables can be swapped without
// touching the engine.
type FactorTable struct {
	Electricity float64 // kg CO2e / kWh
	Water       float64 // kg CO2e / L
	Petrol      float64 // kg CO2e / L
	Diesel      float64 // kg CO2e / L
	Waste       float64 // kg CO2e / kg
}

// DefaultFactors returns the India grid reference factors.
func DefaultFactors() FactorTable {
	return FactorTable{
		Electricity: 0.82,
		Water:       0.0003,
		Petrol:      2.31,
		Diesel:      2.68,
		Waste:       0.5,
	}
}
