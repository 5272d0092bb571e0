package models

import "time"

// RatingValue is the five-point scale a profile can give a recipe.
type RatingValue string

const (
	RatingHated    RatingValue = "hated"
	RatingDisliked RatingValue = "disliked"
	RatingNeutral  RatingValue = "neutral"
	RatingLiked    RatingValue = "liked"
	RatingLoved    RatingValue = "loved"
)

// Delta returns the weight delta a rating value contributes to every
// feature of the rated recipe, and whether the value is known.
func (v RatingValue) Delta() (float64, bool) {
	switch v {
	case RatingLoved:
		return 0.15, true
	case RatingLiked:
		return 0.08, true
	case RatingNeutral:
		return 0, true
	case RatingDisliked:
		return -0.08, true
	case RatingHated:
		return -0.15, true
	default:
		return 0, false
	}
}

// Valid reports whether v is one of the five known rating values.
func (v RatingValue) Valid() bool {
	_, ok := v.Delta()
	return ok
}

// Rating is a profile's current opinion of one recipe. One row per
// (profile, recipe); re-rating replaces the previous row.
type Rating struct {
	ProfileID           string      `json:"profile_id"`
	RecipeID            string      `json:"recipe_id"`
	Value               RatingValue `json:"value"`
	ExcludedIngredients []string    `json:"excluded_ingredients,omitempty"`
	UpdatedAt           time.Time   `json:"updated_at"`
}
