package models

// FeatureType enumerates every kind of recipe feature the engine can
// learn a preference for. The set is closed: extraction, scoring and
// weight updates all iterate features through Pairs, so a new type
// only needs to be added there and here.
type FeatureType string

const (
	FeatureCuisine       FeatureType = "cuisine"
	FeatureProtein       FeatureType = "protein"
	FeatureCarb          FeatureType = "carb"
	FeatureCookingMethod FeatureType = "cooking_method"
	FeaturePrepTime      FeatureType = "prep_time_bucket"
	FeatureSpiceLevel    FeatureType = "spice_level"
	FeatureIngredient    FeatureType = "ingredient"
	FeatureMealType      FeatureType = "meal_type"
)

// FeaturePair is one (type, value) unit of preference learning.
type FeaturePair struct {
	Type  FeatureType `json:"type"`
	Value string      `json:"value"`
}

// FeatureSet is the structured form of a recipe's extracted features.
// Scalar fields are absent when empty; slice fields are either nil or
// non-empty, never empty-but-present.
type FeatureSet struct {
	Cuisine        string   `json:"cuisine,omitempty"`
	Protein        []string `json:"protein,omitempty"`
	Carb           string   `json:"carb,omitempty"`
	CookingMethod  string   `json:"cooking_method,omitempty"`
	PrepTimeBucket string   `json:"prep_time_bucket,omitempty"`
	SpiceLevel     string   `json:"spice_level,omitempty"`
	Ingredients    []string `json:"ingredients,omitempty"`
	MealType       string   `json:"meal_type,omitempty"`
}

// Pairs expands the feature set into individual (type, value) pairs,
// one per member for the set-valued features.
func (fs FeatureSet) Pairs() []FeaturePair {
	var out []FeaturePair
	add := func(t FeatureType, v string) {
		if v != "" {
			out = append(out, FeaturePair{Type: t, Value: v})
		}
	}

	add(FeatureCuisine, fs.Cuisine)
	for _, p := range fs.Protein {
		add(FeatureProtein, p)
	}
	add(FeatureCarb, fs.Carb)
	add(FeatureCookingMethod, fs.CookingMethod)
	add(FeaturePrepTime, fs.PrepTimeBucket)
	add(FeatureSpiceLevel, fs.SpiceLevel)
	for _, ing := range fs.Ingredients {
		add(FeatureIngredient, ing)
	}
	add(FeatureMealType, fs.MealType)
	return out
}

// Has reports whether the given (type, value) pair is present:
// membership for set-valued features, equality for scalar ones.
func (fs FeatureSet) Has(t FeatureType, value string) bool {
	switch t {
	case FeatureCuisine:
		return fs.Cuisine == value && value != ""
	case FeatureProtein:
		return containsString(fs.Protein, value)
	case FeatureCarb:
		return fs.Carb == value && value != ""
	case FeatureCookingMethod:
		return fs.CookingMethod == value && value != ""
	case FeaturePrepTime:
		return fs.PrepTimeBucket == value && value != ""
	case FeatureSpiceLevel:
		return fs.SpiceLevel == value && value != ""
	case FeatureIngredient:
		return containsString(fs.Ingredients, value)
	case FeatureMealType:
		return fs.MealType == value && value != ""
	default:
		return false
	}
}

// IsZero reports whether no feature was extracted at all.
func (fs FeatureSet) IsZero() bool {
	return len(fs.Pairs()) == 0
}

func containsString(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
