package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"mealhub/pkg/models"
)

func TestScoreSumsOnlyOverlappingPairs(t *testing.T) {
	fs := models.FeatureSet{
		Cuisine: "italian",
		Protein: []string{"chicken", "pork"},
		Carb:    "pasta",
	}
	weights := map[WeightKey]Weight{
		{models.FeatureCuisine, "italian"}:  {Weight: 0.4},
		{models.FeatureProtein, "chicken"}:  {Weight: 0.15},
		{models.FeatureProtein, "salmon"}:   {Weight: 0.9},  // not in recipe
		{models.FeatureCarb, "rice"}:        {Weight: -0.5}, // not in recipe
		{models.FeatureMealType, "italian"}: {Weight: 0.7},  // wrong type
	}

	assert.InDelta(t, 0.55, Score(fs, weights), 1e-9)
}

func TestScoreEmptyWeightsIsZero(t *testing.T) {
	fs := models.FeatureSet{Cuisine: "swedish"}
	assert.Zero(t, Score(fs, nil))
	assert.Zero(t, Score(fs, map[WeightKey]Weight{}))
}

func TestScoreUnknownPairsContributeNothing(t *testing.T) {
	// A feature-rich recipe scores the same as a sparse one when only
	// one pair overlaps the profile's weights.
	rich := models.FeatureSet{
		Cuisine:     "indian",
		Protein:     []string{"chicken"},
		Carb:        "rice",
		SpiceLevel:  "hot",
		Ingredients: []string{"vitlök", "ingefära"},
	}
	sparse := models.FeatureSet{Cuisine: "indian"}
	weights := map[WeightKey]Weight{
		{models.FeatureCuisine, "indian"}: {Weight: 0.6},
	}

	assert.Equal(t, Score(sparse, weights), Score(rich, weights))
}

func TestRound2(t *testing.T) {
	assert.Equal(t, 0.57, Round2(0.567))
	assert.Equal(t, 0.33, Round2(1.0/3.0))
	assert.Equal(t, -0.6, Round2(-0.6000000001))
}

func TestFamilyScoresGroupIsMinimum(t *testing.T) {
	fs := models.FeatureSet{Protein: []string{"fish"}}
	members := map[string]map[WeightKey]Weight{
		"a": {WeightKey{models.FeatureProtein, "fish"}: {Weight: -0.6}},
		"b": {WeightKey{models.FeatureProtein, "fish"}: {Weight: 0.5}},
		"c": {},
	}

	fam := FamilyScores(fs, members)
	assert.True(t, fam.OK)
	assert.InDelta(t, -0.6, fam.Group, 1e-9)
	assert.InDelta(t, -0.6, fam.PerProfile["a"], 1e-9)
	assert.InDelta(t, 0.5, fam.PerProfile["b"], 1e-9)
	assert.Zero(t, fam.PerProfile["c"])
}

func TestFamilyScoresEmptyHousehold(t *testing.T) {
	fam := FamilyScores(models.FeatureSet{Cuisine: "thai"}, nil)
	assert.False(t, fam.OK)
}

func TestFamilyScoresColdStartAllZero(t *testing.T) {
	members := map[string]map[WeightKey]Weight{"a": {}, "b": {}}
	fam := FamilyScores(models.FeatureSet{Cuisine: "swedish"}, members)
	assert.True(t, fam.OK)
	assert.Zero(t, fam.Group)
}
