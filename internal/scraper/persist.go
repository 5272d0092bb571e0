package scraper

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"mealhub/internal/engine"
	"mealhub/pkg/models"
)

// SaveToDatabase upserts canonical recipes into the recipes table.
// Features are computed here, at ingestion time, so every stored row
// always carries a feature set consistent with its ingredient list.
// Returns the recipes that were newly inserted (not updates), so the
// caller can announce them.
func SaveToDatabase(ctx context.Context, db *sql.DB, recipes []models.RecipeCanonical) ([]models.Recipe, error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	existsStmt, err := tx.PrepareContext(ctx, `SELECT 1 FROM recipes WHERE id = ?`)
	if err != nil {
		return nil, fmt.Errorf("prepare exists stmt: %w", err)
	}
	defer existsStmt.Close()

	upsertStmt, err := tx.PrepareContext(ctx, `
		INSERT INTO recipes (
			id, name, source, url, image_url, description,
			ingredients, instructions, features,
			prep_minutes, cook_minutes, total_minutes, servings,
			external_rating, external_rating_count
		)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			source = excluded.source,
			url = excluded.url,
			image_url = excluded.image_url,
			description = excluded.description,
			ingredients = excluded.ingredients,
			instructions = excluded.instructions,
			features = excluded.features,
			prep_minutes = excluded.prep_minutes,
			cook_minutes = excluded.cook_minutes,
			total_minutes = excluded.total_minutes,
			servings = excluded.servings,
			external_rating = excluded.external_rating,
			external_rating_count = excluded.external_rating_count
	`)
	if err != nil {
		return nil, fmt.Errorf("prepare upsert stmt: %w", err)
	}
	defer upsertStmt.Close()

	var inserted []models.Recipe
	for _, r := range recipes {
		var one int
		isNew := false
		err := existsStmt.QueryRowContext(ctx, r.ID).Scan(&one)
		switch {
		case err == sql.ErrNoRows:
			isNew = true
		case err != nil:
			return nil, fmt.Errorf("check existing %s: %w", r.ID, err)
		}

		features := engine.Extract(r.Ingredients, r.Name, r.PrepMinutes, r.CookMinutes)

		ingredientsJSON, err := json.Marshal(r.Ingredients)
		if err != nil {
			return nil, fmt.Errorf("marshal ingredients for %s: %w", r.ID, err)
		}
		instructionsJSON, err := json.Marshal(r.Instructions)
		if err != nil {
			return nil, fmt.Errorf("marshal instructions for %s: %w", r.ID, err)
		}
		featuresJSON, err := json.Marshal(features)
		if err != nil {
			return nil, fmt.Errorf("marshal features for %s: %w", r.ID, err)
		}

		totalMinutes := r.PrepMinutes + r.CookMinutes

		if _, err := upsertStmt.ExecContext(ctx,
			r.ID, r.Name, r.Source, r.URL, r.ImageURL, r.Description,
			string(ingredientsJSON), string(instructionsJSON), string(featuresJSON),
			nullableInt(r.PrepMinutes), nullableInt(r.CookMinutes), nullableInt(totalMinutes), r.Servings,
			r.ExternalRating, r.ExternalRatingCount,
		); err != nil {
			return nil, fmt.Errorf("exec upsert for %s: %w", r.ID, err)
		}

		if isNew {
			inserted = append(inserted, models.Recipe{
				ID:       r.ID,
				Name:     r.Name,
				Features: features,
			})
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit tx: %w", err)
	}
	return inserted, nil
}

func nullableInt(n int) any {
	if n <= 0 {
		return nil
	}
	return n
}
