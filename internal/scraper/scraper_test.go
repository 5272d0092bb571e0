package scraper

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mealhub/pkg/models"
)

func TestNormalizeKey(t *testing.T) {
	assert.Equal(t, "kottbullar med gradde", normalizeKey("Köttbullar   med grädde!"))
	assert.Equal(t, "pasta carbonara", normalizeKey("Pasta-Carbonara"))
	assert.Equal(t, "", normalizeKey("---"))
}

func TestMergeRecipePrefersRicherData(t *testing.T) {
	count5 := 5
	count80 := 80
	r3 := 3.0
	r45 := 4.5

	base := models.RecipeCanonical{
		ID:                  "kottbullar",
		Name:                "Köttbullar",
		Source:              "arla",
		Ingredients:         []models.Ingredient{{Name: "nötfärs"}},
		Description:         "short",
		ExternalRating:      &r3,
		ExternalRatingCount: &count5,
	}
	incoming := models.RecipeCanonical{
		ID:     "kottbullar-klassiska",
		Name:   "Köttbullar",
		Source: "koket",
		Ingredients: []models.Ingredient{
			{Name: "nötfärs"}, {Name: "ströbröd"}, {Name: "grädde"},
		},
		Description:         "a much longer description of the dish",
		PrepMinutes:         15,
		ExternalRating:      &r45,
		ExternalRatingCount: &count80,
	}

	merged := mergeRecipe(base, incoming)

	// first-seen entry stays canonical
	assert.Equal(t, "kottbullar", merged.ID)
	assert.Equal(t, "arla", merged.Source)

	assert.Len(t, merged.Ingredients, 3)
	assert.Equal(t, incoming.Description, merged.Description)
	assert.Equal(t, 15, merged.PrepMinutes)
	assert.Equal(t, 4.5, *merged.ExternalRating)
	assert.Equal(t, 80, *merged.ExternalRatingCount)
}

func TestParseISODurationMinutes(t *testing.T) {
	assert.Equal(t, 25, parseISODurationMinutes("PT25M"))
	assert.Equal(t, 90, parseISODurationMinutes("PT1H30M"))
	assert.Equal(t, 120, parseISODurationMinutes("PT2H"))
	assert.Equal(t, 0, parseISODurationMinutes(""))
	assert.Equal(t, 0, parseISODurationMinutes("not a duration"))
}

func TestSlugFromURL(t *testing.T) {
	assert.Equal(t, "kottbullar", slugFromURL("https://www.arla.se/recept/kottbullar/"))
	assert.Equal(t, "laxpudding", slugFromURL("https://www.koket.se/laxpudding"))
	assert.Equal(t, "tacos", slugFromURL("https://www.arla.se/recept/Tacos?utm=x"))
}

func TestExtractRecipeLD(t *testing.T) {
	page := []byte(`<html><head>
<script type="application/ld+json">
{"@context":"https://schema.org","@type":"Recipe",
 "name":"Korvstroganoff",
 "description":"Snabb vardagsfavorit.",
 "recipeIngredient":["400 g falukorv","2 dl grädde","1 msk tomatpuré"],
 "recipeInstructions":[{"@type":"HowToStep","text":"Strimla korven."},{"@type":"HowToStep","text":"Fräs och sjud."}],
 "prepTime":"PT10M","cookTime":"PT20M","recipeYield":"4 portioner",
 "aggregateRating":{"ratingValue":"4,3","ratingCount":412}}
</script>
</head><body></body></html>`)

	ld, err := extractRecipeLD(page)
	require.NoError(t, err)

	r := ld.toCanonical("koket", "https://www.koket.se/korvstroganoff")
	assert.Equal(t, "korvstroganoff", r.ID)
	assert.Equal(t, "Korvstroganoff", r.Name)
	assert.Len(t, r.Ingredients, 3)
	assert.Equal(t, []string{"Strimla korven.", "Fräs och sjud."}, r.Instructions)
	assert.Equal(t, 10, r.PrepMinutes)
	assert.Equal(t, 20, r.CookMinutes)
	assert.Equal(t, "4 portioner", r.Servings)
	require.NotNil(t, r.ExternalRating)
	assert.InDelta(t, 4.3, *r.ExternalRating, 1e-9)
	require.NotNil(t, r.ExternalRatingCount)
	assert.Equal(t, 412, *r.ExternalRatingCount)
}

func TestExtractRecipeLDGraph(t *testing.T) {
	page := []byte(`<script type="application/ld+json">
{"@context":"https://schema.org","@graph":[
 {"@type":"WebSite","name":"Arla"},
 {"@type":"Recipe","name":"Pannkakor","recipeIngredient":["3 ägg","6 dl mjölk"],"totalTime":"PT35M"}
]}
</script>`)

	ld, err := extractRecipeLD(page)
	require.NoError(t, err)

	r := ld.toCanonical("arla", "https://www.arla.se/recept/pannkakor/")
	assert.Equal(t, "Pannkakor", r.Name)
	// bare total lands on cook time
	assert.Equal(t, 0, r.PrepMinutes)
	assert.Equal(t, 35, r.CookMinutes)
}

func TestExtractRecipeLDMissing(t *testing.T) {
	_, err := extractRecipeLD([]byte(`<html><body>no structured data</body></html>`))
	assert.Error(t, err)
}
