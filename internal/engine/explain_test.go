package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"mealhub/pkg/models"
)

func TestExplainPicksStrongestMatchingWeights(t *testing.T) {
	fs := models.FeatureSet{
		Cuisine:        "italian",
		Protein:        []string{"chicken"},
		PrepTimeBucket: "quick",
	}
	weights := map[WeightKey]Weight{
		{models.FeatureCuisine, "italian"}: {Weight: 0.9},
		{models.FeatureProtein, "chicken"}: {Weight: 0.5},
		{models.FeaturePrepTime, "quick"}:  {Weight: 0.4},
	}

	assert.Equal(t, "likes italian food, chicken, quick meals", Explain(fs, weights))
}

func TestExplainCapsAtThreeFragments(t *testing.T) {
	fs := models.FeatureSet{
		Cuisine:        "italian",
		Protein:        []string{"chicken"},
		Carb:           "pasta",
		PrepTimeBucket: "quick",
	}
	weights := map[WeightKey]Weight{
		{models.FeatureCuisine, "italian"}: {Weight: 0.9},
		{models.FeatureProtein, "chicken"}: {Weight: 0.8},
		{models.FeatureCarb, "pasta"}:      {Weight: 0.7},
		{models.FeaturePrepTime, "quick"}:  {Weight: 0.6},
	}

	assert.Equal(t, "likes italian food, chicken, pasta dishes", Explain(fs, weights))
}

func TestExplainIgnoresWeakAndNonMatchingWeights(t *testing.T) {
	fs := models.FeatureSet{Cuisine: "swedish"}
	weights := map[WeightKey]Weight{
		{models.FeatureCuisine, "swedish"}: {Weight: 0.3},  // not strictly above threshold
		{models.FeatureCuisine, "thai"}:    {Weight: 0.95}, // not in recipe
	}

	assert.Equal(t, "matches general preferences", Explain(fs, weights))
}

func TestExplainFallbackOnEmptyWeights(t *testing.T) {
	assert.Equal(t, "matches general preferences", Explain(models.FeatureSet{Cuisine: "thai"}, nil))
}
