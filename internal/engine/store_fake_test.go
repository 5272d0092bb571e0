package engine

import (
	"context"
	"sort"

	"mealhub/pkg/models"
)

// memStore is an in-memory Store used by the engine tests.
type memStore struct {
	recipes  []models.Recipe
	ratings  map[string]map[string]models.Rating
	weights  map[string]map[WeightKey]Weight
	profiles map[string][]models.Profile
}

func newMemStore() *memStore {
	return &memStore{
		ratings:  make(map[string]map[string]models.Rating),
		weights:  make(map[string]map[WeightKey]Weight),
		profiles: make(map[string][]models.Profile),
	}
}

func (m *memStore) addRecipe(r models.Recipe) {
	m.recipes = append(m.recipes, r)
}

func (m *memStore) LoadFeatures(_ context.Context, recipeID string) (models.FeatureSet, bool, error) {
	for _, r := range m.recipes {
		if r.ID == recipeID {
			return r.Features, true, nil
		}
	}
	return models.FeatureSet{}, false, nil
}

func (m *memStore) LoadWeights(_ context.Context, profileID string) (map[WeightKey]Weight, error) {
	out := make(map[WeightKey]Weight, len(m.weights[profileID]))
	for k, v := range m.weights[profileID] {
		out[k] = v
	}
	return out, nil
}

func (m *memStore) ApplyRating(_ context.Context, rating models.Rating, deltas []WeightDelta) error {
	if m.ratings[rating.ProfileID] == nil {
		m.ratings[rating.ProfileID] = make(map[string]models.Rating)
	}
	m.ratings[rating.ProfileID][rating.RecipeID] = rating

	if m.weights[rating.ProfileID] == nil {
		m.weights[rating.ProfileID] = make(map[WeightKey]Weight)
	}
	for _, d := range deltas {
		w := m.weights[rating.ProfileID][d.Key]
		w.Weight = clampWeight(w.Weight + d.Delta)
		w.SampleCount++
		m.weights[rating.ProfileID][d.Key] = w
	}
	return nil
}

func (m *memStore) CountRatings(_ context.Context, profileID string) (int, error) {
	return len(m.ratings[profileID]), nil
}

func (m *memStore) ListUnrated(_ context.Context, profileID string, limit int) ([]models.Recipe, error) {
	var out []models.Recipe
	for _, r := range m.sorted() {
		if _, rated := m.ratings[profileID][r.ID]; rated {
			continue
		}
		out = append(out, r)
		if len(out) >= limit {
			break
		}
	}
	return out, nil
}

func (m *memStore) ListTopRecipes(_ context.Context, limit int) ([]models.Recipe, error) {
	out := m.sorted()
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *memStore) ListHouseholdProfiles(_ context.Context, householdID string) ([]models.Profile, error) {
	return m.profiles[householdID], nil
}

// sorted orders recipes by external popularity, nil ratings last,
// recipe ID as the final tie break — mirroring the sqlite ORDER BY.
func (m *memStore) sorted() []models.Recipe {
	out := append([]models.Recipe(nil), m.recipes...)
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i].ExternalRating, out[j].ExternalRating
		switch {
		case a == nil && b == nil:
			return out[i].ID < out[j].ID
		case a == nil:
			return false
		case b == nil:
			return true
		case *a != *b:
			return *a > *b
		default:
			return out[i].ID < out[j].ID
		}
	})
	return out
}
