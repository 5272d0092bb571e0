package models

// Ingredient is one entry of a recipe's ingredient list as scraped,
// e.g. {Amount: "2 dl", Name: "grädde"}.
type Ingredient struct {
	Amount string `json:"amount,omitempty"`
	Name   string `json:"name"`
	Unit   string `json:"unit,omitempty"`
}

// Recipe is the stored form of a recipe. Identity and ingredient list
// are fixed after ingestion; Features may be recomputed from them.
type Recipe struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	Source       string       `json:"source,omitempty"`
	URL          string       `json:"url,omitempty"`
	ImageURL     string       `json:"image_url,omitempty"`
	Description  string       `json:"description,omitempty"`
	Ingredients  []Ingredient `json:"ingredients"`
	Instructions []string     `json:"instructions,omitempty"`
	Features     FeatureSet   `json:"features"`
	PrepMinutes  int          `json:"prep_minutes,omitempty"`
	CookMinutes  int          `json:"cook_minutes,omitempty"`
	TotalMinutes int          `json:"total_minutes,omitempty"`
	Servings     string       `json:"servings,omitempty"`

	// Popularity signal from the source site, used for cold-start
	// ordering. Nil when the site exposes no rating.
	ExternalRating      *float64 `json:"external_rating,omitempty"`
	ExternalRatingCount *int     `json:"external_rating_count,omitempty"`
}

// RecipeCanonical is the normalized, internal form of a recipe used by
// the scraper and persistence layer. All external sources are mapped
// into this structure first, then we write to the DB from it.
type RecipeCanonical struct {
	ID                  string       `json:"id"` // slug derived from the source URL
	Name                string       `json:"name"`
	Source              string       `json:"source"`
	URL                 string       `json:"url"`
	ImageURL            string       `json:"image_url,omitempty"`
	Description         string       `json:"description,omitempty"`
	Ingredients         []Ingredient `json:"ingredients"`
	Instructions        []string     `json:"instructions,omitempty"`
	PrepMinutes         int          `json:"prep_minutes,omitempty"`
	CookMinutes         int          `json:"cook_minutes,omitempty"`
	Servings            string       `json:"servings,omitempty"`
	ExternalRating      *float64     `json:"external_rating,omitempty"`
	ExternalRatingCount *int         `json:"external_rating_count,omitempty"`
}
