package engine

import (
	"sort"
	"strings"

	"mealhub/pkg/models"
)

const (
	// likeThreshold is the minimum weight that counts as a confident
	// like when building explanations.
	likeThreshold = 0.3
	// maxExplainFragments caps the explanation length.
	maxExplainFragments = 3
	// fallbackExplanation is returned when no confident weight matches
	// the recipe.
	fallbackExplanation = "matches general preferences"
)

// Explain builds a short human-readable justification for suggesting
// a recipe to a profile: the strongest confidently-liked features that
// the recipe actually has, strongest first.
func Explain(fs models.FeatureSet, weights map[WeightKey]Weight) string {
	type liked struct {
		key    WeightKey
		weight float64
	}

	var candidates []liked
	for key, w := range weights {
		if w.Weight <= likeThreshold {
			continue
		}
		if !fs.Has(key.Type, key.Value) {
			continue
		}
		candidates = append(candidates, liked{key: key, weight: w.Weight})
	}
	if len(candidates) == 0 {
		return fallbackExplanation
	}

	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].weight != candidates[j].weight {
			return candidates[i].weight > candidates[j].weight
		}
		// deterministic order among equal weights
		if candidates[i].key.Type != candidates[j].key.Type {
			return candidates[i].key.Type < candidates[j].key.Type
		}
		return candidates[i].key.Value < candidates[j].key.Value
	})

	fragments := make([]string, 0, maxExplainFragments)
	for _, c := range candidates {
		fragments = append(fragments, fragment(c.key))
		if len(fragments) >= maxExplainFragments {
			break
		}
	}
	return "likes " + strings.Join(fragments, ", ")
}

func fragment(key WeightKey) string {
	value := strings.ReplaceAll(key.Value, "_", " ")
	switch key.Type {
	case models.FeatureCuisine:
		return value + " food"
	case models.FeaturePrepTime:
		return value + " meals"
	case models.FeatureCarb:
		return value + " dishes"
	case models.FeatureCookingMethod:
		return value + " cooking"
	case models.FeatureSpiceLevel:
		return value + " spice"
	case models.FeatureMealType:
		return value
	default:
		// protein and ingredient read fine as bare values
		return value
	}
}
