package engine

import (
	"context"

	"mealhub/pkg/models"
)

// Store is the narrow storage port the engine depends on. The sqlite
// implementation lives in internal/prefs; tests inject an in-memory
// fake.
type Store interface {
	// LoadFeatures returns the stored feature set of a recipe, and
	// false when the recipe does not exist.
	LoadFeatures(ctx context.Context, recipeID string) (models.FeatureSet, bool, error)

	// LoadWeights returns every preference weight of a profile. A
	// profile with no history yields an empty map, not an error.
	LoadWeights(ctx context.Context, profileID string) (map[WeightKey]Weight, error)

	// ApplyRating stores the rating row and applies all weight deltas
	// atomically: either everything lands or the rating is not
	// considered applied. Each delta must be applied as a single
	// conditional upsert so concurrent ratings touching the same key
	// both land.
	ApplyRating(ctx context.Context, rating models.Rating, deltas []WeightDelta) error

	// CountRatings returns how many recipes the profile has rated.
	CountRatings(ctx context.Context, profileID string) (int, error)

	// ListUnrated returns up to limit recipes the profile has not
	// rated, ordered by external popularity (unrated recipes without a
	// popularity signal sort last).
	ListUnrated(ctx context.Context, profileID string, limit int) ([]models.Recipe, error)

	// ListTopRecipes returns up to limit recipes ordered by external
	// popularity, regardless of rating state.
	ListTopRecipes(ctx context.Context, limit int) ([]models.Recipe, error)

	// ListHouseholdProfiles returns every profile in a household.
	ListHouseholdProfiles(ctx context.Context, householdID string) ([]models.Profile, error)
}
