package recipes

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"mealhub/pkg/models"
)

type Repo struct {
	DB *sql.DB
}

type ListQuery struct {
	Q          string // keyword search in name/description
	Cuisine    string
	Protein    string
	MaxMinutes int
	Limit      int
	Offset     int
}

func NewRepo(db *sql.DB) *Repo {
	return &Repo{DB: db}
}

const recipeColumns = `
	id, name, source, url, image_url, description,
	ingredients, instructions, features,
	prep_minutes, cook_minutes, total_minutes, servings,
	external_rating, external_rating_count
`

// popularityOrder sorts by the external rating signal, recipes without
// one last, rating count and id as deterministic tie breaks.
const popularityOrder = `
	ORDER BY external_rating IS NULL, external_rating DESC,
	         external_rating_count DESC, id ASC
`

func (r *Repo) GetByID(ctx context.Context, id string) (*models.Recipe, error) {
	row := r.DB.QueryRowContext(ctx, `
		SELECT `+recipeColumns+`
		FROM recipes
		WHERE id = ?
	`, id)

	rec, err := scanRecipe(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("scan getByID: %w", err)
	}
	return rec, nil
}

func (r *Repo) Count(ctx context.Context, q ListQuery) (int, error) {
	sqlStr, args := buildListSQL(q, true)
	row := r.DB.QueryRowContext(ctx, sqlStr, args...)
	var total int
	if err := row.Scan(&total); err != nil {
		return 0, fmt.Errorf("count scan: %w", err)
	}
	return total, nil
}

func (r *Repo) List(ctx context.Context, q ListQuery) ([]models.Recipe, error) {
	sqlStr, args := buildListSQL(q, false)

	rows, err := r.DB.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, fmt.Errorf("list query: %w", err)
	}
	defer rows.Close()

	return collectRecipes(rows, q.Limit)
}

// ListUnrated returns up to limit recipes the profile has not rated,
// most popular first.
func (r *Repo) ListUnrated(ctx context.Context, profileID string, limit int) ([]models.Recipe, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := r.DB.QueryContext(ctx, `
		SELECT `+recipeColumns+`
		FROM recipes
		WHERE id NOT IN (SELECT recipe_id FROM ratings WHERE profile_id = ?)
		`+popularityOrder+`
		LIMIT ?
	`, profileID, limit)
	if err != nil {
		return nil, fmt.Errorf("list unrated: %w", err)
	}
	defer rows.Close()

	return collectRecipes(rows, limit)
}

// ListTop returns up to limit recipes by popularity regardless of
// rating state.
func (r *Repo) ListTop(ctx context.Context, limit int) ([]models.Recipe, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := r.DB.QueryContext(ctx, `
		SELECT `+recipeColumns+`
		FROM recipes
		`+popularityOrder+`
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("list top: %w", err)
	}
	defer rows.Close()

	return collectRecipes(rows, limit)
}

// LoadFeatures returns only the stored feature set of one recipe.
func (r *Repo) LoadFeatures(ctx context.Context, recipeID string) (models.FeatureSet, bool, error) {
	row := r.DB.QueryRowContext(ctx, `
		SELECT features FROM recipes WHERE id = ?
	`, recipeID)

	var raw string
	if err := row.Scan(&raw); err != nil {
		if err == sql.ErrNoRows {
			return models.FeatureSet{}, false, nil
		}
		return models.FeatureSet{}, false, fmt.Errorf("load features: %w", err)
	}

	var fs models.FeatureSet
	if err := json.Unmarshal([]byte(raw), &fs); err != nil {
		return models.FeatureSet{}, false, fmt.Errorf("decode features: %w", err)
	}
	return fs, true, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecipe(row rowScanner) (*models.Recipe, error) {
	var (
		rec              models.Recipe
		source           sql.NullString
		url              sql.NullString
		imageURL         sql.NullString
		description      sql.NullString
		ingredientsJSON  string
		instructionsJSON string
		featuresJSON     string
		prepMin          sql.NullInt64
		cookMin          sql.NullInt64
		totalMin         sql.NullInt64
		servings         sql.NullString
		extRating        sql.NullFloat64
		extRatingCount   sql.NullInt64
	)

	if err := row.Scan(
		&rec.ID, &rec.Name, &source, &url, &imageURL, &description,
		&ingredientsJSON, &instructionsJSON, &featuresJSON,
		&prepMin, &cookMin, &totalMin, &servings,
		&extRating, &extRatingCount,
	); err != nil {
		return nil, err
	}

	rec.Source = source.String
	rec.URL = url.String
	rec.ImageURL = imageURL.String
	rec.Description = description.String
	rec.Servings = servings.String
	if prepMin.Valid {
		rec.PrepMinutes = int(prepMin.Int64)
	}
	if cookMin.Valid {
		rec.CookMinutes = int(cookMin.Int64)
	}
	if totalMin.Valid {
		rec.TotalMinutes = int(totalMin.Int64)
	}
	if extRating.Valid {
		v := extRating.Float64
		rec.ExternalRating = &v
	}
	if extRatingCount.Valid {
		v := int(extRatingCount.Int64)
		rec.ExternalRatingCount = &v
	}

	_ = json.Unmarshal([]byte(ingredientsJSON), &rec.Ingredients)
	_ = json.Unmarshal([]byte(instructionsJSON), &rec.Instructions)
	_ = json.Unmarshal([]byte(featuresJSON), &rec.Features)
	return &rec, nil
}

func collectRecipes(rows *sql.Rows, capHint int) ([]models.Recipe, error) {
	if capHint <= 0 {
		capHint = 20
	}
	out := make([]models.Recipe, 0, capHint)
	for rows.Next() {
		rec, err := scanRecipe(rows)
		if err != nil {
			return nil, fmt.Errorf("scan recipe row: %w", err)
		}
		out = append(out, *rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows err: %w", err)
	}
	return out, nil
}

// buildListSQL builds either COUNT(*) or the SELECT list. Cuisine and
// protein filters match against the stored features JSON text.
func buildListSQL(q ListQuery, countOnly bool) (string, []any) {
	baseSelect := `SELECT ` + recipeColumns + ` FROM recipes`
	if countOnly {
		baseSelect = `SELECT COUNT(*) FROM recipes`
	}

	var where []string
	var args []any

	if strings.TrimSpace(q.Q) != "" {
		where = append(where, "(LOWER(name) LIKE ? OR LOWER(description) LIKE ?)")
		kw := "%" + strings.ToLower(strings.TrimSpace(q.Q)) + "%"
		args = append(args, kw, kw)
	}

	if c := strings.TrimSpace(q.Cuisine); c != "" {
		where = append(where, "features LIKE ?")
		args = append(args, `%"cuisine":"`+strings.ToLower(c)+`"%`)
	}

	if p := strings.TrimSpace(q.Protein); p != "" {
		where = append(where, "features LIKE ?")
		args = append(args, `%"`+strings.ToLower(p)+`"%`)
	}

	if q.MaxMinutes > 0 {
		where = append(where, "total_minutes IS NOT NULL AND total_minutes <= ?")
		args = append(args, q.MaxMinutes)
	}

	sqlStr := baseSelect
	if len(where) > 0 {
		sqlStr += " WHERE " + strings.Join(where, " AND ")
	}

	if !countOnly {
		sqlStr += popularityOrder
		sqlStr += " LIMIT ? OFFSET ?"
		limit := q.Limit
		if limit <= 0 || limit > 100 {
			limit = 20
		}
		offset := q.Offset
		if offset < 0 {
			offset = 0
		}
		args = append(args, limit, offset)
	}

	return sqlStr, args
}
