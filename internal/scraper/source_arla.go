package scraper

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"mealhub/pkg/models"
)

const arlaBase = "https://www.arla.se"

// ArlaSource scrapes recipe pages from arla.se. Arla has no public
// listing API, so we walk a fixed set of everyday-dinner pages and read
// the schema.org JSON-LD each page embeds.
type ArlaSource struct {
	Client *http.Client
	URLs   []string
}

func NewArlaSource() *ArlaSource {
	return &ArlaSource{
		Client: &http.Client{Timeout: 12 * time.Second},
		URLs: []string{
			arlaBase + "/recept/kottbullar/",
			arlaBase + "/recept/lasagne/",
			arlaBase + "/recept/pannkakor/",
			arlaBase + "/recept/pasta-carbonara/",
			arlaBase + "/recept/tacos/",
			arlaBase + "/recept/kycklinggryta/",
			arlaBase + "/recept/fiskgratang/",
			arlaBase + "/recept/kottfarssas/",
			arlaBase + "/recept/falukorv-stroganoff/",
			arlaBase + "/recept/raggmunk/",
		},
	}
}

func (s *ArlaSource) Name() string { return "arla" }

func (s *ArlaSource) FetchAll(ctx context.Context) ([]models.RecipeCanonical, error) {
	return fetchPages(ctx, s.Client, s.Name(), s.URLs)
}

// fetchPages is shared by the page-walking sources: GET each URL, pull
// the JSON-LD recipe, skip pages that fail rather than aborting the run.
func fetchPages(ctx context.Context, client *http.Client, source string, urls []string) ([]models.RecipeCanonical, error) {
	var out []models.RecipeCanonical
	var lastErr error

	for _, pageURL := range urls {
		recipe, err := fetchPage(ctx, client, source, pageURL)
		if err != nil {
			lastErr = err
			continue
		}
		out = append(out, recipe)
	}

	if len(out) == 0 && lastErr != nil {
		return nil, fmt.Errorf("%s: all pages failed, last error: %w", source, lastErr)
	}
	return out, nil
}

func fetchPage(ctx context.Context, client *http.Client, source, pageURL string) (models.RecipeCanonical, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return models.RecipeCanonical{}, fmt.Errorf("%s: build request: %w", source, err)
	}
	req.Header.Set("User-Agent", "mealhub-scraper/1.0")

	resp, err := client.Do(req)
	if err != nil {
		return models.RecipeCanonical{}, fmt.Errorf("%s: request %s: %w", source, pageURL, err)
	}
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return models.RecipeCanonical{}, fmt.Errorf("%s: status %d for %s", source, resp.StatusCode, pageURL)
	}

	ld, err := extractRecipeLD(body)
	if err != nil {
		return models.RecipeCanonical{}, fmt.Errorf("%s: %s: %w", source, pageURL, err)
	}

	recipe := ld.toCanonical(source, pageURL)
	if recipe.Name == "" || len(recipe.Ingredients) == 0 {
		return models.RecipeCanonical{}, fmt.Errorf("%s: %s: incomplete recipe data", source, pageURL)
	}
	return recipe, nil
}
