package scraper

import (
	"context"
	"log"
	"strings"
	"unicode"

	"mealhub/pkg/models"
)

// Source is implemented by each external recipe site. Each source is
// responsible for fetching its own data format and mapping it into
// RecipeCanonical.
type Source interface {
	Name() string
	FetchAll(ctx context.Context) ([]models.RecipeCanonical, error)
}

// Aggregator coordinates calls to multiple sources and merges them into
// a single canonical set of recipes.
type Aggregator struct {
	Sources []Source
}

func NewAggregator(sources ...Source) *Aggregator {
	return &Aggregator{Sources: sources}
}

// FetchAndMerge fetches every recipe from every source and merges them
// using deterministic conflict resolution rules. The same dish on two
// sites (kottbullar on both arla and koket) collapses into one entry.
func (a *Aggregator) FetchAndMerge(ctx context.Context) ([]models.RecipeCanonical, error) {
	byKey := make(map[string]models.RecipeCanonical)
	var order []string

	for _, src := range a.Sources {
		log.Printf("[scraper] fetching from %s", src.Name())
		recipes, err := src.FetchAll(ctx)
		if err != nil {
			log.Printf("[scraper] source %s error: %v", src.Name(), err)
			// keep going: one broken source should not kill all scraping
			continue
		}

		for _, r := range recipes {
			key := canonicalKey(r)
			if existing, ok := byKey[key]; ok {
				byKey[key] = mergeRecipe(existing, r)
			} else {
				byKey[key] = r
				order = append(order, key)
			}
		}
	}

	result := make([]models.RecipeCanonical, 0, len(byKey))
	for _, key := range order {
		result = append(result, byKey[key])
	}
	return result, nil
}

// canonicalKey defines how we group entries that represent the same
// dish coming from different sources: a normalized name key.
func canonicalKey(r models.RecipeCanonical) string {
	return normalizeKey(r.Name)
}

// normalizeKey converts a string to a canonical form: lowercase,
// remove non-letter/digit characters and compress spaces.
func normalizeKey(s string) string {
	s = strings.ToLower(s)
	var b strings.Builder
	b.Grow(len(s))

	prevSpace := false
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			prevSpace = false
			continue
		}
		if !prevSpace {
			b.WriteRune(' ')
			prevSpace = true
		}
	}
	return strings.TrimSpace(b.String())
}

// mergeRecipe resolves conflicts when two sources describe the same
// dish:
//
//   - The first-seen entry stays canonical (ID, name, URL, source).
//   - Missing fields are filled from the incoming entry.
//   - The richer ingredient list wins.
//   - The longer description wins.
//   - The rating with more votes behind it wins.
func mergeRecipe(base, incoming models.RecipeCanonical) models.RecipeCanonical {
	if len(incoming.Ingredients) > len(base.Ingredients) {
		base.Ingredients = incoming.Ingredients
	}
	if len(incoming.Instructions) > len(base.Instructions) {
		base.Instructions = incoming.Instructions
	}
	if len(incoming.Description) > len(base.Description) {
		base.Description = incoming.Description
	}
	if base.ImageURL == "" {
		base.ImageURL = incoming.ImageURL
	}
	if base.PrepMinutes == 0 {
		base.PrepMinutes = incoming.PrepMinutes
	}
	if base.CookMinutes == 0 {
		base.CookMinutes = incoming.CookMinutes
	}
	if base.Servings == "" {
		base.Servings = incoming.Servings
	}
	if moreVotes(incoming, base) {
		base.ExternalRating = incoming.ExternalRating
		base.ExternalRatingCount = incoming.ExternalRatingCount
	}
	return base
}

func moreVotes(a, b models.RecipeCanonical) bool {
	if a.ExternalRating == nil {
		return false
	}
	if b.ExternalRating == nil {
		return true
	}
	av, bv := 0, 0
	if a.ExternalRatingCount != nil {
		av = *a.ExternalRatingCount
	}
	if b.ExternalRatingCount != nil {
		bv = *b.ExternalRatingCount
	}
	return av > bv
}
