package sync

import "time"

// RatingEvent is broadcast to connected clients whenever a household
// member rates or un-rates a recipe, so other members' suggestion
// views can refresh.
type RatingEvent struct {
	Type        string    `json:"type"` // "rating.update" or "rating.delete"
	HouseholdID string    `json:"household_id"`
	ProfileID   string    `json:"profile_id"`
	RecipeID    string    `json:"recipe_id"`
	Value       string    `json:"value,omitempty"`
	At          time.Time `json:"at"`
}
