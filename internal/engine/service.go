package engine

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sort"
	"time"

	"mealhub/pkg/models"
)

var (
	// ErrInvalidRating is returned for a rating value outside the
	// five-point scale, before any state is touched.
	ErrInvalidRating = errors.New("invalid rating value")
	// ErrRecipeNotFound is returned when rating a recipe that does not
	// exist.
	ErrRecipeNotFound = errors.New("recipe not found")
)

// Suggestion is one ranked entry of a profile's suggestion list.
type Suggestion struct {
	Recipe models.Recipe `json:"recipe"`
	Score  float64       `json:"score"`
}

// FamilySuggestion is one ranked entry of the household view.
type FamilySuggestion struct {
	Recipe       models.Recipe      `json:"recipe"`
	GroupScore   float64            `json:"group_score"`
	MemberScores map[string]float64 `json:"member_scores"`
	Explanation  string             `json:"explanation,omitempty"`
}

// Service wires the pure engine functions to a Store and implements
// the four operations the API layer calls.
type Service struct {
	store Store
	cfg   Config

	// pick returns a uniform index in [0, n); replaced in tests.
	pick func(n int) int
}

func NewService(store Store, cfg Config) *Service {
	return &Service{
		store: store,
		cfg:   cfg.withDefaults(),
		pick:  rand.Intn,
	}
}

// Rate validates and applies one rating event: the rating row and
// every weight delta land in a single storage transaction.
func (s *Service) Rate(ctx context.Context, profileID, recipeID string, value models.RatingValue, excludedIngredients []string) (*models.Rating, error) {
	if !value.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidRating, value)
	}

	fs, ok, err := s.store.LoadFeatures(ctx, recipeID)
	if err != nil {
		return nil, fmt.Errorf("load features: %w", err)
	}
	if !ok {
		return nil, ErrRecipeNotFound
	}

	deltas, err := Deltas(fs, value, excludedIngredients)
	if err != nil {
		return nil, err
	}

	rating := models.Rating{
		ProfileID:           profileID,
		RecipeID:            recipeID,
		Value:               value,
		ExcludedIngredients: excludedIngredients,
		UpdatedAt:           time.Now().UTC(),
	}
	if err := s.store.ApplyRating(ctx, rating, deltas); err != nil {
		return nil, fmt.Errorf("apply rating: %w", err)
	}
	return &rating, nil
}

// NextToRate picks the next unrated recipe to present. Below the
// cold-start threshold the choice is deterministic (most popular
// first); after that it is uniform over the top exploration window.
// Returns nil when the profile has rated everything.
func (s *Service) NextToRate(ctx context.Context, profileID, excludeRecipeID string) (*models.Recipe, error) {
	n, err := s.store.CountRatings(ctx, profileID)
	if err != nil {
		return nil, fmt.Errorf("count ratings: %w", err)
	}

	// One extra so the excluded recipe does not shrink the window.
	pool, err := s.store.ListUnrated(ctx, profileID, s.cfg.ExploreWindow+1)
	if err != nil {
		return nil, fmt.Errorf("list unrated: %w", err)
	}
	if excludeRecipeID != "" {
		filtered := pool[:0]
		for _, r := range pool {
			if r.ID != excludeRecipeID {
				filtered = append(filtered, r)
			}
		}
		pool = filtered
	}
	if len(pool) == 0 {
		return nil, nil
	}

	if n < s.cfg.ColdStartThreshold {
		return &pool[0], nil
	}

	window := s.cfg.ExploreWindow
	if window > len(pool) {
		window = len(pool)
	}
	return &pool[s.pick(window)], nil
}

// SuggestForProfile ranks the most popular unrated recipes by the
// profile's learned score, best first. Ties keep popularity order.
func (s *Service) SuggestForProfile(ctx context.Context, profileID string, limit int) ([]Suggestion, error) {
	if limit <= 0 {
		limit = 10
	}

	weights, err := s.store.LoadWeights(ctx, profileID)
	if err != nil {
		return nil, fmt.Errorf("load weights: %w", err)
	}

	pool, err := s.store.ListUnrated(ctx, profileID, s.cfg.SuggestPool)
	if err != nil {
		return nil, fmt.Errorf("list unrated: %w", err)
	}

	out := make([]Suggestion, 0, len(pool))
	for _, r := range pool {
		out = append(out, Suggestion{Recipe: r, Score: Score(r.Features, weights)})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Score > out[j].Score
	})

	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// SuggestForHousehold ranks popular recipes by group score, filtered
// to recipes nobody vetoes (group score >= 0). A household with no
// profiles yields an empty list. Explanations are rendered against
// the requesting member's own weights when viewerProfileID is set.
func (s *Service) SuggestForHousehold(ctx context.Context, householdID string, limit int, viewerProfileID string) ([]FamilySuggestion, error) {
	if limit <= 0 {
		limit = 10
	}

	profiles, err := s.store.ListHouseholdProfiles(ctx, householdID)
	if err != nil {
		return nil, fmt.Errorf("list profiles: %w", err)
	}
	if len(profiles) == 0 {
		return []FamilySuggestion{}, nil
	}

	memberWeights := make(map[string]map[WeightKey]Weight, len(profiles))
	for _, p := range profiles {
		w, err := s.store.LoadWeights(ctx, p.ID)
		if err != nil {
			return nil, fmt.Errorf("load weights for %s: %w", p.ID, err)
		}
		memberWeights[p.ID] = w
	}

	pool, err := s.store.ListTopRecipes(ctx, s.cfg.FamilyPool)
	if err != nil {
		return nil, fmt.Errorf("list recipes: %w", err)
	}

	viewerWeights := memberWeights[viewerProfileID]

	out := make([]FamilySuggestion, 0, len(pool))
	for _, r := range pool {
		fam := FamilyScores(r.Features, memberWeights)
		if !fam.OK || fam.Group < 0 {
			continue
		}
		fs := FamilySuggestion{
			Recipe:       r,
			GroupScore:   fam.Group,
			MemberScores: fam.PerProfile,
		}
		if viewerWeights != nil {
			fs.Explanation = Explain(r.Features, viewerWeights)
		}
		out = append(out, fs)
	}

	// Stable sort: households with no learned weights tie at 0 and
	// fall back to popularity order.
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].GroupScore > out[j].GroupScore
	})

	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
