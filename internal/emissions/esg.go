package emissions

// Weights are the fixed dimension weights of the composite ESG score.
// They must sum to 1.0 so the composite stays in [0,100].
type Weights struct {
	Energy float64
	Water  float64
	Waste  float64
	Carbon float64
}

// DefaultWeights returns the documented scoring weights: energy 0.30,
// water 0.20, waste 0.20, carbon 0.30.
func DefaultWeights() Weights {
	return Weights{Energy: 0.30, Water: 0.20, Waste: 0.20, Carbon: 0.30}
}

// ESGInputs are the derived efficiency dimensions feeding the composite
// score, each on a 0-100 better-is-higher scale.
type ESGInputs struct {
	EnergyEfficiency float64
	WaterEfficiency  float64
	WasteReduction   float64
	CarbonScore      float64
}

// ESGScorer combines efficiency dimensions into one 0-100 composite.
type ESGScorer struct {
	weights Weights
}

// NewESGScorer creates an ESGScorer with the given weights.
func NewESGScorer(w Weights) *ESGScorer {
	return &ESGScorer{weights: w}
}

// Score returns the weighted average of the four inputs. Each input is
// clamped to [0,100] before weighting so one extreme dimension cannot
// push the composite out of range; with non-negative weights the result
// is monotonic non-decreasing in every input.
func (s *ESGScorer) Score(in ESGInputs) float64 {
	return clamp100(in.EnergyEfficiency)*s.weights.Energy +
		clamp100(in.WaterEfficiency)*s.weights.Water +
		clamp100(in.WasteReduction)*s.weights.Waste +
		clamp100(in.CarbonScore)*s.weights.Carbon
}

func clamp100(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
