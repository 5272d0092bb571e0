package engine

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mealhub/pkg/models"
)

func TestDeltasExpandSetValuedFeatures(t *testing.T) {
	fs := models.FeatureSet{
		Cuisine: "swedish",
		Protein: []string{"salmon", "shrimp"},
	}

	deltas, err := Deltas(fs, models.RatingLiked, nil)
	require.NoError(t, err)
	require.Len(t, deltas, 3)
	for _, d := range deltas {
		assert.InDelta(t, 0.08, d.Delta, 1e-9)
	}
}

func TestDeltasUnknownRating(t *testing.T) {
	_, err := Deltas(models.FeatureSet{Cuisine: "thai"}, models.RatingValue("meh"), nil)
	assert.Error(t, err)
}

func TestDeltasExclusionPenaltyIsAdditional(t *testing.T) {
	// Liking a salmon recipe while excluding the salmon: the ordinary
	// +0.08 updates still happen, and the excluded ingredient gets an
	// extra -0.2.
	fs := models.FeatureSet{
		Cuisine:     "swedish",
		Protein:     []string{"salmon"},
		Ingredients: []string{"lax", "dill"},
	}

	deltas, err := Deltas(fs, models.RatingLiked, []string{"Lax"})
	require.NoError(t, err)

	byKey := make(map[WeightKey][]float64)
	for _, d := range deltas {
		byKey[d.Key] = append(byKey[d.Key], d.Delta)
	}

	laxKey := WeightKey{models.FeatureIngredient, "lax"}
	assert.ElementsMatch(t, []float64{0.08, -0.2}, byKey[laxKey])
	assert.Equal(t, []float64{0.08}, byKey[WeightKey{models.FeatureCuisine, "swedish"}])
}

func TestApplyClampingInvariant(t *testing.T) {
	store := newMemStore()
	fs := models.FeatureSet{Cuisine: "indian"}
	key := WeightKey{models.FeatureCuisine, "indian"}

	for i := 0; i < 12; i++ {
		deltas, err := Deltas(fs, models.RatingHated, nil)
		require.NoError(t, err)
		require.NoError(t, store.ApplyRating(context.Background(), models.Rating{
			ProfileID: "p1", RecipeID: "r", Value: models.RatingHated,
		}, deltas))

		w := store.weights["p1"][key]
		assert.GreaterOrEqual(t, w.Weight, -1.0)
		assert.LessOrEqual(t, w.Weight, 1.0)
	}

	// 12 * -0.15 saturates at the bound and stays there.
	assert.Equal(t, -1.0, store.weights["p1"][key].Weight)
	assert.Equal(t, 12, store.weights["p1"][key].SampleCount)
}

func TestNeutralRatingStillCountsExposure(t *testing.T) {
	store := newMemStore()
	fs := models.FeatureSet{Cuisine: "swedish", Carb: "potato"}

	deltas, err := Deltas(fs, models.RatingNeutral, nil)
	require.NoError(t, err)
	require.NoError(t, store.ApplyRating(context.Background(), models.Rating{
		ProfileID: "p1", RecipeID: "r", Value: models.RatingNeutral,
	}, deltas))

	w := store.weights["p1"][WeightKey{models.FeatureCuisine, "swedish"}]
	assert.Zero(t, w.Weight)
	assert.Equal(t, 1, w.SampleCount)
}
