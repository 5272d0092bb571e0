package engine

import (
	"math"

	"mealhub/pkg/models"
)

// WeightKey identifies one learned preference of a profile.
type WeightKey struct {
	Type  models.FeatureType
	Value string
}

// Weight is the stored state behind one key.
type Weight struct {
	Weight      float64
	SampleCount int
}

// Score sums the profile's weights over every feature pair present in
// the recipe. Pairs the profile has never seen contribute 0; the total
// is not normalized by feature count. A nil or empty weight map yields
// 0, so profiles without history score every recipe neutrally.
func Score(fs models.FeatureSet, weights map[WeightKey]Weight) float64 {
	if len(weights) == 0 {
		return 0
	}

	total := 0.0
	for _, pair := range fs.Pairs() {
		if w, ok := weights[WeightKey{Type: pair.Type, Value: pair.Value}]; ok {
			total += w.Weight
		}
	}
	return total
}

// Round2 rounds a score to two decimals for display. Sorting and
// comparison always use the full-precision value.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func clampWeight(w float64) float64 {
	if w > 1.0 {
		return 1.0
	}
	if w < -1.0 {
		return -1.0
	}
	return w
}
