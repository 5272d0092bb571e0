package engine

import (
	"fmt"
	"strings"

	"mealhub/pkg/models"
)

// ExclusionPenalty is the delta applied to an ingredient a profile
// asked to leave out, independent of how the recipe itself was rated.
const ExclusionPenalty = -0.2

// WeightDelta is one pending change to a profile's preference weight.
// The store applies it as clamp(weight+Delta, -1, 1) with a
// sample-count increment, creating the row on first touch.
type WeightDelta struct {
	Key   WeightKey
	Delta float64
}

// Deltas computes every weight change one rating event causes: one
// delta per feature pair of the rated recipe, plus the exclusion
// penalty per excluded ingredient. Neutral ratings produce zero-valued
// deltas on purpose, so exposure is still counted.
func Deltas(fs models.FeatureSet, value models.RatingValue, excludedIngredients []string) ([]WeightDelta, error) {
	delta, ok := value.Delta()
	if !ok {
		return nil, fmt.Errorf("unknown rating value %q", value)
	}

	pairs := fs.Pairs()
	out := make([]WeightDelta, 0, len(pairs)+len(excludedIngredients))
	for _, pair := range pairs {
		out = append(out, WeightDelta{
			Key:   WeightKey{Type: pair.Type, Value: pair.Value},
			Delta: delta,
		})
	}

	// Excluded ingredients are penalized in addition to the ordinary
	// updates above, even when the recipe was loved.
	for _, name := range excludedIngredients {
		name = strings.ToLower(strings.TrimSpace(name))
		if name == "" {
			continue
		}
		out = append(out, WeightDelta{
			Key:   WeightKey{Type: models.FeatureIngredient, Value: name},
			Delta: ExclusionPenalty,
		})
	}
	return out, nil
}
