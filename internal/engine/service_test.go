package engine

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mealhub/pkg/models"
)

func f64(v float64) *float64 { return &v }

// seedCatalog adds n recipes with descending popularity: recipe-00 is
// the most popular.
func seedCatalog(store *memStore, n int, fs models.FeatureSet) {
	for i := 0; i < n; i++ {
		store.addRecipe(models.Recipe{
			ID:             fmt.Sprintf("recipe-%02d", i),
			Name:           fmt.Sprintf("Recept %d", i),
			Features:       fs,
			ExternalRating: f64(5.0 - float64(i)*0.01),
		})
	}
}

func TestRateRejectsInvalidValue(t *testing.T) {
	store := newMemStore()
	svc := NewService(store, Config{})

	_, err := svc.Rate(context.Background(), "p1", "recipe-00", "amazing", nil)
	assert.ErrorIs(t, err, ErrInvalidRating)
	assert.Empty(t, store.ratings["p1"])
}

func TestRateUnknownRecipe(t *testing.T) {
	store := newMemStore()
	svc := NewService(store, Config{})

	_, err := svc.Rate(context.Background(), "p1", "nope", models.RatingLiked, nil)
	assert.ErrorIs(t, err, ErrRecipeNotFound)
}

func TestNextToRateColdStartIsDeterministic(t *testing.T) {
	store := newMemStore()
	seedCatalog(store, 30, models.FeatureSet{Cuisine: "swedish"})
	svc := NewService(store, Config{})

	// Two fresh profiles with identical (empty) histories get the same
	// most-popular recipe.
	a, err := svc.NextToRate(context.Background(), "p1", "")
	require.NoError(t, err)
	b, err := svc.NextToRate(context.Background(), "p2", "")
	require.NoError(t, err)

	require.NotNil(t, a)
	require.NotNil(t, b)
	assert.Equal(t, "recipe-00", a.ID)
	assert.Equal(t, a.ID, b.ID)
}

func TestNextToRateHonorsExclusion(t *testing.T) {
	store := newMemStore()
	seedCatalog(store, 5, models.FeatureSet{})
	svc := NewService(store, Config{})

	next, err := svc.NextToRate(context.Background(), "p1", "recipe-00")
	require.NoError(t, err)
	require.NotNil(t, next)
	assert.Equal(t, "recipe-01", next.ID)
}

func TestNextToRateExploresAfterThreshold(t *testing.T) {
	store := newMemStore()
	seedCatalog(store, 60, models.FeatureSet{})
	svc := NewService(store, Config{ColdStartThreshold: 20, ExploreWindow: 20})

	ctx := context.Background()
	for i := 0; i < 20; i++ {
		_, err := svc.Rate(ctx, "p1", fmt.Sprintf("recipe-%02d", i+40), models.RatingNeutral, nil)
		require.NoError(t, err)
	}

	// Force the random pick to the end of the window: the selector now
	// draws from the top 20 unrated, not just the top recipe.
	svc.pick = func(n int) int { return n - 1 }
	next, err := svc.NextToRate(ctx, "p1", "")
	require.NoError(t, err)
	require.NotNil(t, next)
	assert.Equal(t, "recipe-19", next.ID)
}

func TestNextToRateCaughtUp(t *testing.T) {
	store := newMemStore()
	seedCatalog(store, 2, models.FeatureSet{})
	svc := NewService(store, Config{})

	ctx := context.Background()
	for _, id := range []string{"recipe-00", "recipe-01"} {
		_, err := svc.Rate(ctx, "p1", id, models.RatingLiked, nil)
		require.NoError(t, err)
	}

	next, err := svc.NextToRate(ctx, "p1", "")
	require.NoError(t, err)
	assert.Nil(t, next)
}

func TestRejectionDriftScenario(t *testing.T) {
	store := newMemStore()
	indian := models.FeatureSet{Cuisine: "indian"}
	swedish := models.FeatureSet{Cuisine: "swedish"}

	for i := 0; i < 10; i++ {
		store.addRecipe(models.Recipe{
			ID:             fmt.Sprintf("indian-%02d", i),
			Features:       indian,
			ExternalRating: f64(4.9),
		})
	}
	store.addRecipe(models.Recipe{ID: "indian-rest", Features: indian, ExternalRating: f64(4.8)})
	store.addRecipe(models.Recipe{ID: "swedish-00", Features: swedish, ExternalRating: f64(3.0)})

	svc := NewService(store, Config{})
	ctx := context.Background()

	for i := 0; i < 10; i++ {
		_, err := svc.Rate(ctx, "p1", fmt.Sprintf("indian-%02d", i), models.RatingHated, nil)
		require.NoError(t, err)
	}

	// 10 applications of -0.15 saturate at the clamp bound.
	key := WeightKey{models.FeatureCuisine, "indian"}
	assert.Equal(t, -1.0, store.weights["p1"][key].Weight)
	assert.Equal(t, 10, store.weights["p1"][key].SampleCount)

	// The remaining Indian recipe ranks at the bottom despite being
	// the more popular candidate.
	suggestions, err := svc.SuggestForProfile(ctx, "p1", 10)
	require.NoError(t, err)
	require.Len(t, suggestions, 2)
	assert.Equal(t, "swedish-00", suggestions[0].Recipe.ID)
	assert.Equal(t, "indian-rest", suggestions[1].Recipe.ID)
	assert.InDelta(t, -1.0, suggestions[1].Score, 1e-9)
}

func TestIngredientExclusionScenario(t *testing.T) {
	store := newMemStore()
	store.addRecipe(models.Recipe{
		ID: "laxpudding",
		Features: models.FeatureSet{
			Cuisine:     "swedish",
			Protein:     []string{"salmon"},
			Ingredients: []string{"lax", "potatis", "dill"},
		},
		ExternalRating: f64(4.5),
	})

	svc := NewService(store, Config{})
	_, err := svc.Rate(context.Background(), "p1", "laxpudding", models.RatingLiked, []string{"lax"})
	require.NoError(t, err)

	weights := store.weights["p1"]
	// lax got the ordinary +0.08 and the -0.2 penalty on top.
	assert.InDelta(t, -0.12, weights[WeightKey{models.FeatureIngredient, "lax"}].Weight, 1e-9)
	assert.InDelta(t, 0.08, weights[WeightKey{models.FeatureCuisine, "swedish"}].Weight, 1e-9)
	assert.InDelta(t, 0.08, weights[WeightKey{models.FeatureProtein, "salmon"}].Weight, 1e-9)
}

func TestFamilyVetoScenario(t *testing.T) {
	store := newMemStore()
	fish := models.FeatureSet{Protein: []string{"fish"}}
	store.addRecipe(models.Recipe{ID: "fiskgratang", Features: fish, ExternalRating: f64(4.9)})
	store.addRecipe(models.Recipe{ID: "kottbullar", Features: models.FeatureSet{Protein: []string{"beef"}}, ExternalRating: f64(4.5)})

	store.profiles["h1"] = []models.Profile{
		{ID: "a", HouseholdID: "h1"},
		{ID: "b", HouseholdID: "h1"},
		{ID: "c", HouseholdID: "h1"},
	}
	fishKey := WeightKey{models.FeatureProtein, "fish"}
	store.weights["a"] = map[WeightKey]Weight{fishKey: {Weight: -0.6}}
	store.weights["b"] = map[WeightKey]Weight{fishKey: {Weight: 0.5}}
	store.weights["c"] = map[WeightKey]Weight{}

	svc := NewService(store, Config{})
	out, err := svc.SuggestForHousehold(context.Background(), "h1", 10, "")
	require.NoError(t, err)

	// The vetoed fish recipe is filtered out entirely.
	require.Len(t, out, 1)
	assert.Equal(t, "kottbullar", out[0].Recipe.ID)
	assert.Zero(t, out[0].GroupScore)
}

func TestFamilyColdStartFallsBackToPopularity(t *testing.T) {
	store := newMemStore()
	seedCatalog(store, 5, models.FeatureSet{Cuisine: "swedish"})
	store.profiles["h1"] = []models.Profile{
		{ID: "a", HouseholdID: "h1"},
		{ID: "b", HouseholdID: "h1"},
	}

	svc := NewService(store, Config{})
	out, err := svc.SuggestForHousehold(context.Background(), "h1", 10, "")
	require.NoError(t, err)

	require.Len(t, out, 5)
	for i, fs := range out {
		assert.Zero(t, fs.GroupScore)
		assert.Equal(t, fmt.Sprintf("recipe-%02d", i), fs.Recipe.ID)
	}
}

func TestFamilyEmptyHousehold(t *testing.T) {
	store := newMemStore()
	seedCatalog(store, 3, models.FeatureSet{})

	svc := NewService(store, Config{})
	out, err := svc.SuggestForHousehold(context.Background(), "empty", 10, "")
	require.NoError(t, err)
	assert.Empty(t, out)
}
