package engine

import (
	"strings"

	"mealhub/pkg/models"
)

const maxIngredientFeatures = 10

// Extract derives a FeatureSet from raw recipe data. It is pure and
// deterministic: the same inputs always produce the same features, and
// categories with no match are simply absent.
func Extract(ingredients []models.Ingredient, name string, prepMinutes, cookMinutes int) models.FeatureSet {
	names := make([]string, 0, len(ingredients))
	for _, ing := range ingredients {
		names = append(names, ing.Name)
	}

	blob := buildBlob(name, names)

	fs := models.FeatureSet{
		Protein:        extractProteins(blob),
		Carb:           firstMatch(blob, carbKeywords),
		Cuisine:        extractCuisine(blob),
		CookingMethod:  firstMatch(blob, cookingMethodKeywords),
		MealType:       firstMatch(blob, mealTypeKeywords),
		SpiceLevel:     extractSpiceLevel(blob),
		PrepTimeBucket: prepTimeBucket(prepMinutes + cookMinutes),
		Ingredients:    keyIngredients(names),
	}
	return fs
}

func buildBlob(name string, ingredientNames []string) string {
	parts := make([]string, 0, len(ingredientNames)+1)
	parts = append(parts, strings.ToLower(name))
	for _, n := range ingredientNames {
		parts = append(parts, strings.ToLower(n))
	}
	return strings.Join(parts, " ")
}

// extractProteins collects every canonical protein whose keyword
// occurs in the blob. Multiple proteins may co-occur.
func extractProteins(blob string) []string {
	var out []string
	for _, rule := range proteinKeywords {
		if !strings.Contains(blob, rule.keyword) {
			continue
		}
		if !containsString(out, rule.canonical) {
			out = append(out, rule.canonical)
		}
	}
	return out
}

// firstMatch scans the table in order and returns the canonical value
// of the first keyword found in the blob.
func firstMatch(blob string, table []keywordRule) string {
	for _, rule := range table {
		if strings.Contains(blob, rule.keyword) {
			return rule.canonical
		}
	}
	return ""
}

// extractCuisine counts one hit per matching keyword and picks the
// cuisine with the most hits. Ties keep the cuisine encountered first.
func extractCuisine(blob string) string {
	counts := make(map[string]int)
	var order []string

	for _, rule := range cuisineKeywords {
		if !strings.Contains(blob, rule.keyword) {
			continue
		}
		if counts[rule.canonical] == 0 {
			order = append(order, rule.canonical)
		}
		counts[rule.canonical]++
	}

	best := ""
	bestCount := 0
	for _, cuisine := range order {
		if counts[cuisine] > bestCount {
			best = cuisine
			bestCount = counts[cuisine]
		}
	}
	return best
}

// extractSpiceLevel defaults to mild, escalates to medium on any
// medium keyword, and to hot (terminal) on the first hot keyword.
func extractSpiceLevel(blob string) string {
	level := "mild"
	for _, kw := range spiceMediumKeywords {
		if strings.Contains(blob, kw) {
			level = "medium"
			break
		}
	}
	for _, kw := range spiceHotKeywords {
		if strings.Contains(blob, kw) {
			return "hot"
		}
	}
	return level
}

func prepTimeBucket(totalMinutes int) string {
	switch {
	case totalMinutes <= 0:
		return ""
	case totalMinutes <= 30:
		return "quick"
	case totalMinutes <= 60:
		return "medium"
	default:
		return "long"
	}
}

// keyIngredients normalizes ingredient names and keeps at most the
// first ten in original order.
func keyIngredients(names []string) []string {
	var out []string
	for _, name := range names {
		if len(out) >= maxIngredientFeatures {
			break
		}
		n := normalizeIngredient(name)
		if len([]rune(n)) <= 2 {
			continue
		}
		out = append(out, n)
	}
	return out
}

// normalizeIngredient lowercases, drops parenthetical notes and strips
// descriptor words from both ends ("färsk hackad dill (ca 1 kruka)"
// → "dill").
func normalizeIngredient(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))

	if i := strings.Index(s, "("); i >= 0 {
		if j := strings.Index(s[i:], ")"); j >= 0 {
			s = s[:i] + s[i+j+1:]
		} else {
			s = s[:i]
		}
	}

	fields := strings.Fields(s)
	for len(fields) > 1 {
		if _, ok := ingredientDescriptors[fields[0]]; ok {
			fields = fields[1:]
			continue
		}
		if _, ok := ingredientDescriptors[fields[len(fields)-1]]; ok {
			fields = fields[:len(fields)-1]
			continue
		}
		break
	}
	return strings.Join(fields, " ")
}

func containsString(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
