package prefs

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"mealhub/internal/engine"
	"mealhub/internal/household"
	"mealhub/internal/recipes"
	"mealhub/pkg/models"
)

// Repo implements engine.Store on sqlite. Catalog and household reads
// are delegated to their own repos; this package owns the ratings and
// preference_weights tables.
type Repo struct {
	DB         *sql.DB
	Recipes    *recipes.Repo
	Households *household.Repo
}

func NewRepo(db *sql.DB, recipeRepo *recipes.Repo, householdRepo *household.Repo) *Repo {
	return &Repo{DB: db, Recipes: recipeRepo, Households: householdRepo}
}

var _ engine.Store = (*Repo)(nil)

func (r *Repo) LoadFeatures(ctx context.Context, recipeID string) (models.FeatureSet, bool, error) {
	return r.Recipes.LoadFeatures(ctx, recipeID)
}

func (r *Repo) LoadWeights(ctx context.Context, profileID string) (map[engine.WeightKey]engine.Weight, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT feature_type, feature_value, weight, sample_count
		FROM preference_weights
		WHERE profile_id = ?
	`, profileID)
	if err != nil {
		return nil, fmt.Errorf("load weights: %w", err)
	}
	defer rows.Close()

	out := make(map[engine.WeightKey]engine.Weight)
	for rows.Next() {
		var (
			featureType  string
			featureValue string
			w            engine.Weight
		)
		if err := rows.Scan(&featureType, &featureValue, &w.Weight, &w.SampleCount); err != nil {
			return nil, fmt.Errorf("scan weight row: %w", err)
		}
		key := engine.WeightKey{Type: models.FeatureType(featureType), Value: featureValue}
		out[key] = w
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows err: %w", err)
	}
	return out, nil
}

// ApplyRating stores the rating row and applies every weight delta in
// one transaction. Each delta is a single conditional upsert that
// clamps the weight and bumps the sample count in SQL, so two
// concurrent ratings touching the same key both land.
func (r *Repo) ApplyRating(ctx context.Context, rating models.Rating, deltas []engine.WeightDelta) error {
	excludedJSON, err := json.Marshal(rating.ExcludedIngredients)
	if err != nil {
		return fmt.Errorf("marshal excluded ingredients: %w", err)
	}

	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin rating tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO ratings (profile_id, recipe_id, value, excluded_ingredients, updated_at)
		VALUES (?, ?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(profile_id, recipe_id) DO UPDATE SET
			value = excluded.value,
			excluded_ingredients = excluded.excluded_ingredients,
			updated_at = CURRENT_TIMESTAMP
	`, rating.ProfileID, rating.RecipeID, string(rating.Value), string(excludedJSON)); err != nil {
		return fmt.Errorf("upsert rating: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO preference_weights (profile_id, feature_type, feature_value, weight, sample_count, updated_at)
		VALUES (?, ?, ?, MAX(-1.0, MIN(1.0, ?)), 1, CURRENT_TIMESTAMP)
		ON CONFLICT(profile_id, feature_type, feature_value) DO UPDATE SET
			weight = MAX(-1.0, MIN(1.0, preference_weights.weight + ?)),
			sample_count = preference_weights.sample_count + 1,
			updated_at = CURRENT_TIMESTAMP
	`)
	if err != nil {
		return fmt.Errorf("prepare weight upsert: %w", err)
	}
	defer stmt.Close()

	for _, d := range deltas {
		if _, err := stmt.ExecContext(ctx,
			rating.ProfileID, string(d.Key.Type), d.Key.Value, d.Delta, d.Delta,
		); err != nil {
			return fmt.Errorf("upsert weight %s/%s: %w", d.Key.Type, d.Key.Value, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit rating tx: %w", err)
	}
	return nil
}

func (r *Repo) CountRatings(ctx context.Context, profileID string) (int, error) {
	var n int
	err := r.DB.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM ratings WHERE profile_id = ?
	`, profileID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count ratings: %w", err)
	}
	return n, nil
}

func (r *Repo) ListUnrated(ctx context.Context, profileID string, limit int) ([]models.Recipe, error) {
	return r.Recipes.ListUnrated(ctx, profileID, limit)
}

func (r *Repo) ListTopRecipes(ctx context.Context, limit int) ([]models.Recipe, error) {
	return r.Recipes.ListTop(ctx, limit)
}

func (r *Repo) ListHouseholdProfiles(ctx context.Context, householdID string) ([]models.Profile, error) {
	return r.Households.ListProfiles(ctx, householdID)
}

// ListRatings returns a profile's current ratings, newest first.
func (r *Repo) ListRatings(ctx context.Context, profileID string, limit, offset int) ([]models.Rating, int, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	var total int
	if err := r.DB.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM ratings WHERE profile_id = ?
	`, profileID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count ratings: %w", err)
	}

	rows, err := r.DB.QueryContext(ctx, `
		SELECT profile_id, recipe_id, value, excluded_ingredients, updated_at
		FROM ratings
		WHERE profile_id = ?
		ORDER BY updated_at DESC
		LIMIT ? OFFSET ?
	`, profileID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list ratings: %w", err)
	}
	defer rows.Close()

	out := make([]models.Rating, 0, limit)
	for rows.Next() {
		var (
			rating       models.Rating
			value        string
			excludedJSON string
		)
		if err := rows.Scan(&rating.ProfileID, &rating.RecipeID, &value, &excludedJSON, &rating.UpdatedAt); err != nil {
			return nil, 0, fmt.Errorf("scan rating row: %w", err)
		}
		rating.Value = models.RatingValue(value)
		_ = json.Unmarshal([]byte(excludedJSON), &rating.ExcludedIngredients)
		out = append(out, rating)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("rows err: %w", err)
	}
	return out, total, nil
}

// DeleteRating removes a rating row. Learned weights are deliberately
// left untouched: the exposure already happened.
func (r *Repo) DeleteRating(ctx context.Context, profileID, recipeID string) (bool, error) {
	res, err := r.DB.ExecContext(ctx, `
		DELETE FROM ratings
		WHERE profile_id = ? AND recipe_id = ?
	`, profileID, recipeID)
	if err != nil {
		return false, fmt.Errorf("delete rating: %w", err)
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}
