package scraper

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"mealhub/pkg/models"
)

// Swedish recipe sites embed schema.org Recipe data as JSON-LD in the
// page head. Both sources parse that instead of the HTML body, so a
// site redesign rarely breaks them.

var ldScriptRe = regexp.MustCompile(`(?s)<script[^>]*type="application/ld\+json"[^>]*>(.*?)</script>`)

type ldRecipe struct {
	Type             any      `json:"@type"`
	Name             string   `json:"name"`
	Description      string   `json:"description"`
	Image            any      `json:"image"`
	RecipeIngredient []string `json:"recipeIngredient"`
	Instructions     any      `json:"recipeInstructions"`
	PrepTime         string   `json:"prepTime"`
	CookTime         string   `json:"cookTime"`
	TotalTime        string   `json:"totalTime"`
	RecipeYield      any      `json:"recipeYield"`
	AggregateRating  *struct {
		RatingValue any `json:"ratingValue"`
		RatingCount any `json:"ratingCount"`
		ReviewCount any `json:"reviewCount"`
	} `json:"aggregateRating"`
}

// extractRecipeLD pulls the first schema.org Recipe object out of an
// HTML document. Handles both bare objects and @graph wrappers.
func extractRecipeLD(html []byte) (*ldRecipe, error) {
	for _, m := range ldScriptRe.FindAllSubmatch(html, -1) {
		raw := m[1]

		var direct ldRecipe
		if err := json.Unmarshal(raw, &direct); err == nil && isRecipeType(direct.Type) {
			return &direct, nil
		}

		var graph struct {
			Graph []json.RawMessage `json:"@graph"`
		}
		if err := json.Unmarshal(raw, &graph); err == nil {
			for _, node := range graph.Graph {
				var r ldRecipe
				if err := json.Unmarshal(node, &r); err == nil && isRecipeType(r.Type) {
					return &r, nil
				}
			}
		}

		var list []ldRecipe
		if err := json.Unmarshal(raw, &list); err == nil {
			for i := range list {
				if isRecipeType(list[i].Type) {
					return &list[i], nil
				}
			}
		}
	}
	return nil, fmt.Errorf("no recipe json-ld found")
}

func isRecipeType(t any) bool {
	switch v := t.(type) {
	case string:
		return v == "Recipe"
	case []any:
		for _, item := range v {
			if s, ok := item.(string); ok && s == "Recipe" {
				return true
			}
		}
	}
	return false
}

// toCanonical maps a parsed JSON-LD recipe into our internal form. The
// recipe ID is a slug derived from the source URL, so re-scraping the
// same page updates the same row.
func (r *ldRecipe) toCanonical(source, pageURL string) models.RecipeCanonical {
	out := models.RecipeCanonical{
		ID:          slugFromURL(pageURL),
		Name:        strings.TrimSpace(r.Name),
		Source:      source,
		URL:         pageURL,
		ImageURL:    firstImage(r.Image),
		Description: strings.TrimSpace(r.Description),
		PrepMinutes: parseISODurationMinutes(r.PrepTime),
		CookMinutes: parseISODurationMinutes(r.CookTime),
		Servings:    anyToString(r.RecipeYield),
	}

	// Sites disagree on whether prep/cook or only total is set; spread
	// a bare total over cook time so our prep bucket still works.
	if out.PrepMinutes == 0 && out.CookMinutes == 0 {
		out.CookMinutes = parseISODurationMinutes(r.TotalTime)
	}

	for _, ing := range r.RecipeIngredient {
		ing = strings.TrimSpace(ing)
		if ing == "" {
			continue
		}
		out.Ingredients = append(out.Ingredients, models.Ingredient{Name: ing})
	}

	out.Instructions = flattenInstructions(r.Instructions)

	if r.AggregateRating != nil {
		if v, ok := anyToFloat(r.AggregateRating.RatingValue); ok {
			out.ExternalRating = &v
		}
		count := r.AggregateRating.RatingCount
		if count == nil {
			count = r.AggregateRating.ReviewCount
		}
		if v, ok := anyToFloat(count); ok {
			n := int(v)
			out.ExternalRatingCount = &n
		}
	}

	return out
}

// flattenInstructions handles the three shapes schema.org allows:
// a plain string, a list of strings, or a list of HowToStep objects.
func flattenInstructions(v any) []string {
	switch steps := v.(type) {
	case string:
		return splitLines(steps)
	case []any:
		var out []string
		for _, step := range steps {
			switch s := step.(type) {
			case string:
				if t := strings.TrimSpace(s); t != "" {
					out = append(out, t)
				}
			case map[string]any:
				if text, ok := s["text"].(string); ok {
					if t := strings.TrimSpace(text); t != "" {
						out = append(out, t)
					}
				}
			}
		}
		return out
	}
	return nil
}

func splitLines(s string) []string {
	var out []string
	for _, line := range strings.Split(s, "\n") {
		if t := strings.TrimSpace(line); t != "" {
			out = append(out, t)
		}
	}
	return out
}

func firstImage(v any) string {
	switch img := v.(type) {
	case string:
		return img
	case []any:
		for _, item := range img {
			if s, ok := item.(string); ok && s != "" {
				return s
			}
		}
	case map[string]any:
		if s, ok := img["url"].(string); ok {
			return s
		}
	}
	return ""
}

func anyToString(v any) string {
	switch s := v.(type) {
	case string:
		return strings.TrimSpace(s)
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	case []any:
		if len(s) > 0 {
			return anyToString(s[0])
		}
	}
	return ""
}

func anyToFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(strings.ReplaceAll(n, ",", ".")), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	}
	return 0, false
}

var isoDurationRe = regexp.MustCompile(`^P(?:(\d+)D)?(?:T(?:(\d+)H)?(?:(\d+)M)?(?:(\d+)S)?)?$`)

// parseISODurationMinutes parses schema.org durations like "PT25M" or
// "PT1H30M". Returns 0 for anything it cannot read.
func parseISODurationMinutes(s string) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	m := isoDurationRe.FindStringSubmatch(s)
	if m == nil {
		return 0
	}
	days := atoiZero(m[1])
	hours := atoiZero(m[2])
	minutes := atoiZero(m[3])
	return days*24*60 + hours*60 + minutes
}

func atoiZero(s string) int {
	if s == "" {
		return 0
	}
	n, _ := strconv.Atoi(s)
	return n
}

// slugFromURL takes the last meaningful path segment of a recipe URL.
func slugFromURL(pageURL string) string {
	s := strings.TrimSuffix(pageURL, "/")
	if i := strings.LastIndex(s, "/"); i >= 0 {
		s = s[i+1:]
	}
	if i := strings.IndexAny(s, "?#"); i >= 0 {
		s = s[:i]
	}
	return strings.ToLower(s)
}
