package scraper

import (
	"context"
	"net/http"
	"time"

	"mealhub/pkg/models"
)

const koketBase = "https://www.koket.se"

// KoketSource scrapes recipe pages from koket.se the same way as the
// arla source: fixed URL list, schema.org JSON-LD per page.
type KoketSource struct {
	Client *http.Client
	URLs   []string
}

func NewKoketSource() *KoketSource {
	return &KoketSource{
		Client: &http.Client{Timeout: 12 * time.Second},
		URLs: []string{
			koketBase + "/krammig-kycklingpasta",
			koketBase + "/klassisk-lasagne",
			koketBase + "/korvstroganoff",
			koketBase + "/kyckling-i-rod-curry",
			koketBase + "/laxpudding",
			koketBase + "/biff-lindstrom",
			koketBase + "/vegetarisk-chili",
			koketBase + "/pyttipanna",
			koketBase + "/flygande-jakob",
			koketBase + "/dillkott",
		},
	}
}

func (s *KoketSource) Name() string { return "koket" }

func (s *KoketSource) FetchAll(ctx context.Context) ([]models.RecipeCanonical, error) {
	return fetchPages(ctx, s.Client, s.Name(), s.URLs)
}
