package main

import (
	"context"
	"database/sql"
	"encoding/csv"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"mealhub/internal/engine"
	"mealhub/pkg/database"
	"mealhub/pkg/models"
)

// Seeds the recipe catalog from a CSV export. Ingredients are a
// pipe-separated list in one column ("2 dl grädde|500 g nötfärs|...");
// features are computed at import time, the same way the scraper does it.
func main() {
	recipesIn := flag.String("recipes", "data/recipes.csv", "input CSV path for recipes")
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db := database.MustOpen(database.DefaultConfig())
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatalf("db migrate failed: %v", err)
	}

	n, err := importRecipes(ctx, db, *recipesIn)
	if err != nil {
		log.Fatalf("import recipes failed: %v", err)
	}

	log.Printf("✅ imported %d recipes from %s", n, *recipesIn)
}

func importRecipes(ctx context.Context, db *sql.DB, path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	header, err := readHeader(r)
	if err != nil {
		return 0, err
	}

	stmt, err := db.PrepareContext(ctx, `
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
		return 0, err
	}
	defer stmt.Close()

	count := 0
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return count, err
		}
		if len(row) == 0 {
			continue
		}

		id := valueAt(header, row, "id")
		name := valueAt(header, row, "name")
		if id == "" || name == "" {
			continue
		}

		ingredients := parseIngredients(valueAt(header, row, "ingredients"))
		instructions := splitList(valueAt(header, row, "instructions"))

		prepMinutes, err := parseNullInt(valueAt(header, row, "prep_minutes"))
		if err != nil {
			return count, fmt.Errorf("parse prep_minutes for %s: %w", id, err)
		}
		cookMinutes, err := parseNullInt(valueAt(header, row, "cook_minutes"))
		if err != nil {
			return count, fmt.Errorf("parse cook_minutes for %s: %w", id, err)
		}
		rating, err := parseNullFloat(valueAt(header, row, "external_rating"))
		if err != nil {
			return count, fmt.Errorf("parse external_rating for %s: %w", id, err)
		}
		ratingCount, err := parseNullInt(valueAt(header, row, "external_rating_count"))
		if err != nil {
			return count, fmt.Errorf("parse external_rating_count for %s: %w", id, err)
		}

		features := engine.Extract(ingredients, name, int(prepMinutes.Int64), int(cookMinutes.Int64))

		ingredientsJSON, _ := json.Marshal(ingredients)
		instructionsJSON, _ := json.Marshal(instructions)
		featuresJSON, _ := json.Marshal(features)

		var totalMinutes sql.NullInt64
		if prepMinutes.Valid || cookMinutes.Valid {
			totalMinutes = sql.NullInt64{Int64: prepMinutes.Int64 + cookMinutes.Int64, Valid: true}
		}

		if _, err := stmt.ExecContext(
			ctx,
			id,
			name,
			nullString(valueAt(header, row, "source")),
			nullString(valueAt(header, row, "url")),
			nullString(valueAt(header, row, "image_url")),
			nullString(valueAt(header, row, "description")),
			string(ingredientsJSON),
			string(instructionsJSON),
			string(featuresJSON),
			prepMinutes,
			cookMinutes,
			totalMinutes,
			nullString(valueAt(header, row, "servings")),
			rating,
			ratingCount,
		); err != nil {
			return count, err
		}
		count++
	}

	return count, nil
}

// parseIngredients reads a pipe-separated ingredient column. A leading
// quantity is split off when it starts with a digit ("2 dl grädde").
func parseIngredients(raw string) []models.Ingredient {
	var out []models.Ingredient
	for _, item := range splitList(raw) {
		amount := ""
		name := item
		if len(item) > 0 && item[0] >= '0' && item[0] <= '9' {
			fields := strings.Fields(item)
			if len(fields) >= 3 {
				amount = fields[0] + " " + fields[1]
				name = strings.Join(fields[2:], " ")
			}
		}
		out = append(out, models.Ingredient{Amount: amount, Name: name})
	}
	return out
}

func splitList(raw string) []string {
	if raw == "" {
		return nil
	}
	var out []string
	for _, item := range strings.Split(raw, "|") {
		if v := strings.TrimSpace(item); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func readHeader(r *csv.Reader) (map[string]int, error) {
	row, err := r.Read()
	if err != nil {
		return nil, err
	}
	header := make(map[string]int, len(row))
	for idx, name := range row {
		header[strings.TrimSpace(strings.ToLower(name))] = idx
	}
	return header, nil
}

func valueAt(header map[string]int, row []string, key string) string {
	idx, ok := header[key]
	if !ok || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func nullString(raw string) sql.NullString {
	if raw == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: raw, Valid: true}
}

func parseNullInt(raw string) (sql.NullInt64, error) {
	if raw == "" {
		return sql.NullInt64{}, nil
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return sql.NullInt64{}, err
	}
	return sql.NullInt64{Int64: n, Valid: true}, nil
}

func parseNullFloat(raw string) (sql.NullFloat64, error) {
	if raw == "" {
		return sql.NullFloat64{}, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return sql.NullFloat64{}, err
	}
	return sql.NullFloat64{Float64: v, Valid: true}, nil
}
