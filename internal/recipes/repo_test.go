package recipes

import (
	"context"
	"database/sql"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

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
	return NewRepo(db), db
}

func seed(t *testing.T, db *sql.DB, rec models.Recipe) {
	t.Helper()

	ingredientsJSON, err := json.Marshal(rec.Ingredients)
	require.NoError(t, err)
	featuresJSON, err := json.Marshal(rec.Features)
	require.NoError(t, err)

	var totalMinutes any
	if rec.TotalMinutes > 0 {
		totalMinutes = rec.TotalMinutes
	}

	_, err = db.Exec(`
		INSERT INTO recipes (id, name, description, ingredients, features, total_minutes, external_rating)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, rec.ID, rec.Name, rec.Description, string(ingredientsJSON), string(featuresJSON),
		totalMinutes, rec.ExternalRating)
	require.NoError(t, err)
}

func TestGetByIDDecodesStoredJSON(t *testing.T) {
	repo, db := newTestRepo(t)
	ctx := context.Background()

	seed(t, db, models.Recipe{
		ID:   "kottbullar",
		Name: "Köttbullar",
		Ingredients: []models.Ingredient{
			{Amount: "500 g", Name: "nötfärs"},
			{Amount: "2 dl", Name: "grädde"},
		},
		Features: models.FeatureSet{
			Cuisine: "swedish",
			Protein: []string{"beef"},
		},
		TotalMinutes: 45,
	})

	rec, err := repo.GetByID(ctx, "kottbullar")
	require.NoError(t, err)
	require.NotNil(t, rec)

	assert.Equal(t, "Köttbullar", rec.Name)
	require.Len(t, rec.Ingredients, 2)
	assert.Equal(t, "nötfärs", rec.Ingredients[0].Name)
	assert.Equal(t, "swedish", rec.Features.Cuisine)
	assert.Equal(t, []string{"beef"}, rec.Features.Protein)
	assert.Equal(t, 45, rec.TotalMinutes)
	assert.Nil(t, rec.ExternalRating)

	missing, err := repo.GetByID(ctx, "nope")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestListFilters(t *testing.T) {
	repo, db := newTestRepo(t)
	ctx := context.Background()

	seed(t, db, models.Recipe{
		ID: "kottbullar", Name: "Köttbullar", Description: "klassisk husmanskost",
		Features:     models.FeatureSet{Cuisine: "swedish", Protein: []string{"beef"}},
		TotalMinutes: 45,
	})
	seed(t, db, models.Recipe{
		ID: "kyckling-curry", Name: "Kyckling i röd curry",
		Features:     models.FeatureSet{Cuisine: "asian", Protein: []string{"chicken"}},
		TotalMinutes: 30,
	})
	seed(t, db, models.Recipe{
		ID: "laxpudding", Name: "Laxpudding",
		Features:     models.FeatureSet{Cuisine: "swedish", Protein: []string{"salmon"}},
		TotalMinutes: 75,
	})

	out, err := repo.List(ctx, ListQuery{Cuisine: "swedish"})
	require.NoError(t, err)
	require.Len(t, out, 2)

	out, err = repo.List(ctx, ListQuery{Cuisine: "swedish", MaxMinutes: 60})
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "kottbullar", out[0].ID)

	out, err = repo.List(ctx, ListQuery{Q: "husmanskost"})
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "kottbullar", out[0].ID)

	out, err = repo.List(ctx, ListQuery{Protein: "chicken"})
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "kyckling-curry", out[0].ID)

	total, err := repo.Count(ctx, ListQuery{Cuisine: "swedish"})
	require.NoError(t, err)
	assert.Equal(t, 2, total)
}

func TestListTopOrdersByPopularity(t *testing.T) {
	repo, db := newTestRepo(t)
	ctx := context.Background()

	best := 4.8
	good := 4.0
	seed(t, db, models.Recipe{ID: "unranked", Name: "Ogillad"})
	seed(t, db, models.Recipe{ID: "good", Name: "Bra", ExternalRating: &good})
	seed(t, db, models.Recipe{ID: "best", Name: "Bäst", ExternalRating: &best})

	out, err := repo.ListTop(ctx, 10)
	require.NoError(t, err)
	require.Len(t, out, 3)
	assert.Equal(t, "best", out[0].ID)
	assert.Equal(t, "good", out[1].ID)
	assert.Equal(t, "unranked", out[2].ID)
}
