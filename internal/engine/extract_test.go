package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mealhub/pkg/models"
)

func ing(names ...string) []models.Ingredient {
	out := make([]models.Ingredient, 0, len(names))
	for _, n := range names {
		out = append(out, models.Ingredient{Name: n})
	}
	return out
}

func TestExtractProteins(t *testing.T) {
	fs := Extract(ing("kycklingfilé", "bacon", "grädde"), "Kycklinggryta", 10, 20)

	// kyckling and kycklingfilé both map to chicken; only one entry.
	assert.Equal(t, []string{"chicken", "pork"}, fs.Protein)
}

func TestExtractCarbFirstMatchWins(t *testing.T) {
	// Both pasta and rice keywords occur; pasta is earlier in the table.
	fs := Extract(ing("spaghetti", "ris"), "Middagsrester", 0, 0)
	assert.Equal(t, "pasta", fs.Carb)
}

func TestExtractCuisineHighestCount(t *testing.T) {
	// Two italian hits against one swedish hit.
	fs := Extract(ing("parmesan", "basilika", "dill"), "Pastasås", 0, 0)
	assert.Equal(t, "italian", fs.Cuisine)
}

func TestExtractCuisineTieKeepsFirstEncountered(t *testing.T) {
	// One indian hit (curry) and one mexican hit (taco): curry comes
	// first in the table, so indian wins the tie.
	fs := Extract(ing("curry"), "Tacokväll", 0, 0)
	assert.Equal(t, "indian", fs.Cuisine)
}

func TestExtractCuisineAbsentWhenNoMatch(t *testing.T) {
	fs := Extract(ing("mjölk", "vetemjöl"), "Pannkakor", 0, 0)
	assert.Empty(t, fs.Cuisine)
}

func TestExtractSpiceLevel(t *testing.T) {
	mild := Extract(ing("grädde"), "Fiskgratäng", 0, 0)
	assert.Equal(t, "mild", mild.SpiceLevel)

	medium := Extract(ing("chili"), "Gryta", 0, 0)
	assert.Equal(t, "medium", medium.SpiceLevel)

	// hot is terminal even when medium keywords are present too
	hot := Extract(ing("chili", "habanero"), "Het gryta", 0, 0)
	assert.Equal(t, "hot", hot.SpiceLevel)
}

func TestExtractPrepTimeBuckets(t *testing.T) {
	cases := []struct {
		prep, cook int
		want       string
	}{
		{0, 0, ""},
		{10, 20, "quick"},
		{30, 30, "medium"},
		{30, 45, "long"},
	}
	for _, tc := range cases {
		fs := Extract(nil, "Recept", tc.prep, tc.cook)
		assert.Equal(t, tc.want, fs.PrepTimeBucket, "prep=%d cook=%d", tc.prep, tc.cook)
	}
}

func TestExtractKeyIngredients(t *testing.T) {
	fs := Extract(ing(
		"Färsk hackad dill (ca 1 kruka)",
		"riven parmesan",
		"ål", // two runes, dropped
		"Strimlad kyckling",
	), "Recept", 0, 0)

	assert.Equal(t, []string{"dill", "parmesan", "kyckling"}, fs.Ingredients)
}

func TestExtractKeepsAtMostTenIngredients(t *testing.T) {
	names := []string{
		"morot", "lök", "vitlök", "tomat", "gurka", "paprika",
		"zucchini", "aubergine", "selleri", "purjolök", "spenat", "kål",
	}
	fs := Extract(ing(names...), "Grönsaksgryta", 0, 0)
	require.Len(t, fs.Ingredients, 10)
	assert.Equal(t, "morot", fs.Ingredients[0])
	assert.NotContains(t, fs.Ingredients, "spenat")
}

func TestExtractIsDeterministic(t *testing.T) {
	ingredients := ing("lax", "grädde", "dill", "potatis")
	a := Extract(ingredients, "Laxpudding", 20, 40)
	b := Extract(ingredients, "Laxpudding", 20, 40)
	assert.Equal(t, a, b)
}
