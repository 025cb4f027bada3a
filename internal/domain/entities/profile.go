package entities

import "time"

// WeightVector is the (innovation, price) weight pair steering a profile's
// ranking. Both components stay inside the configured clamp bounds and the
// pair always sums to 1 after an adjustment.
type WeightVector struct {
	Innovation float64 `json:"w1_innovation" db:"w_innovation"`
	Price      float64 `json:"w2_price" db:"w_price"`
}

// DefaultWeights is the vector assigned to a profile the first time it is
// referenced.
func DefaultWeights() WeightVector {
	return WeightVector{Innovation: 0.5, Price: 0.5}
}

// Clamp bounds each component to [min, max].
func (w WeightVector) Clamp(min, max float64) WeightVector {
	return WeightVector{
		Innovation: clamp(w.Innovation, min, max),
		Price:      clamp(w.Price, min, max),
	}
}

// Renormalize scales the pair so it sums to 1.
func (w WeightVector) Renormalize() WeightVector {
	total := w.Innovation + w.Price
	if total == 0 {
		return DefaultWeights()
	}
	return WeightVector{
		Innovation: w.Innovation / total,
		Price:      w.Price / total,
	}
}

func clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

// Profile is a named ranking persona owning exactly one weight vector.
// Profiles are never deleted; unknown names default-initialize on first
// access.
type Profile struct {
	Name      string       `json:"name" db:"name"`
	Weights   WeightVector `json:"weights"`
	UpdatedAt time.Time    `json:"updated_at" db:"updated_at"`
}
