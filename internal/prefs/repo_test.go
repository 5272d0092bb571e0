package prefs

import (
	"context"
	"database/sql"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mealhub/internal/engine"
	"mealhub/internal/household"
	"mealhub/internal/recipes"
	"mealhub/pkg/database"
	"mealhub/pkg/models"
)

func newTestRepo(t *testing.T) (*Repo, *sql.DB) {
	t.Helper()

	cfg := database.Config{Path: filepath.Join(t.TempDir(), "test.db")}
	db, err := database.Open(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, database.Migrate(db))
	return NewRepo(db, recipes.NewRepo(db), household.NewRepo(db)), db
}

func seedProfile(t *testing.T, db *sql.DB, householdID, profileID string) {
	t.Helper()
	_, err := db.Exec(`INSERT INTO households (id, name, invite_code) VALUES (?, ?, ?)`,
		householdID, "test family", householdID+"-code")
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO profiles (id, household_id, name) VALUES (?, ?, ?)`,
		profileID, householdID, "tester")
	require.NoError(t, err)
}

func seedRecipe(t *testing.T, db *sql.DB, id string, fs models.FeatureSet, rating *float64) {
	t.Helper()
	featuresJSON, err := json.Marshal(fs)
	require.NoError(t, err)
	_, err = db.Exec(`
		INSERT INTO recipes (id, name, features, external_rating)
		VALUES (?, ?, ?, ?)
	`, id, id, string(featuresJSON), rating)
	require.NoError(t, err)
}

func f64(v float64) *float64 { return &v }

func TestApplyRatingClampsAndCounts(t *testing.T) {
	repo, db := newTestRepo(t)
	ctx := context.Background()

	seedProfile(t, db, "h1", "p1")
	fs := models.FeatureSet{Cuisine: "indian"}
	seedRecipe(t, db, "r1", fs, f64(4.5))

	deltas, err := engine.Deltas(fs, models.RatingHated, nil)
	require.NoError(t, err)

	for i := 0; i < 10; i++ {
		require.NoError(t, repo.ApplyRating(ctx, models.Rating{
			ProfileID: "p1", RecipeID: "r1", Value: models.RatingHated,
		}, deltas))
	}

	weights, err := repo.LoadWeights(ctx, "p1")
	require.NoError(t, err)

	w := weights[engine.WeightKey{Type: models.FeatureCuisine, Value: "indian"}]
	assert.Equal(t, -1.0, w.Weight)
	assert.Equal(t, 10, w.SampleCount)

	// re-rating kept a single row
	n, err := repo.CountRatings(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestApplyRatingStoresExclusions(t *testing.T) {
	repo, db := newTestRepo(t)
	ctx := context.Background()

	seedProfile(t, db, "h1", "p1")
	fs := models.FeatureSet{Protein: []string{"salmon"}, Ingredients: []string{"lax"}}
	seedRecipe(t, db, "laxpudding", fs, nil)

	deltas, err := engine.Deltas(fs, models.RatingLiked, []string{"lax"})
	require.NoError(t, err)
	require.NoError(t, repo.ApplyRating(ctx, models.Rating{
		ProfileID: "p1", RecipeID: "laxpudding", Value: models.RatingLiked,
		ExcludedIngredients: []string{"lax"},
	}, deltas))

	weights, err := repo.LoadWeights(ctx, "p1")
	require.NoError(t, err)
	assert.InDelta(t, -0.12, weights[engine.WeightKey{Type: models.FeatureIngredient, Value: "lax"}].Weight, 1e-9)

	list, total, err := repo.ListRatings(ctx, "p1", 10, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, list, 1)
	assert.Equal(t, []string{"lax"}, list[0].ExcludedIngredients)
}

func TestListUnratedOrdersByPopularityNullsLast(t *testing.T) {
	repo, db := newTestRepo(t)
	ctx := context.Background()

	seedProfile(t, db, "h1", "p1")
	seedRecipe(t, db, "unranked", models.FeatureSet{}, nil)
	seedRecipe(t, db, "good", models.FeatureSet{}, f64(4.0))
	seedRecipe(t, db, "best", models.FeatureSet{}, f64(4.8))
	seedRecipe(t, db, "rated", models.FeatureSet{Cuisine: "swedish"}, f64(5.0))

	deltas, err := engine.Deltas(models.FeatureSet{Cuisine: "swedish"}, models.RatingLoved, nil)
	require.NoError(t, err)
	require.NoError(t, repo.ApplyRating(ctx, models.Rating{
		ProfileID: "p1", RecipeID: "rated", Value: models.RatingLoved,
	}, deltas))

	out, err := repo.ListUnrated(ctx, "p1", 10)
	require.NoError(t, err)
	require.Len(t, out, 3)
	assert.Equal(t, "best", out[0].ID)
	assert.Equal(t, "good", out[1].ID)
	assert.Equal(t, "unranked", out[2].ID)
}

func TestDeleteRating(t *testing.T) {
	repo, db := newTestRepo(t)
	ctx := context.Background()

	seedProfile(t, db, "h1", "p1")
	fs := models.FeatureSet{Carb: "pasta"}
	seedRecipe(t, db, "r1", fs, nil)

	deltas, err := engine.Deltas(fs, models.RatingLiked, nil)
	require.NoError(t, err)
	require.NoError(t, repo.ApplyRating(ctx, models.Rating{
		ProfileID: "p1", RecipeID: "r1", Value: models.RatingLiked,
	}, deltas))

	ok, err := repo.DeleteRating(ctx, "p1", "r1")
	require.NoError(t, err)
	assert.True(t, ok)

	// weights survive the deletion
	weights, err := repo.LoadWeights(ctx, "p1")
	require.NoError(t, err)
	assert.InDelta(t, 0.08, weights[engine.WeightKey{Type: models.FeatureCarb, Value: "pasta"}].Weight, 1e-9)

	ok, err = repo.DeleteRating(ctx, "p1", "r1")
	require.NoError(t, err)
	assert.False(t, ok)
}
