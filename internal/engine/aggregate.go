package engine

import "mealhub/pkg/models"

// FamilyScore is the result of scoring one recipe for a whole
// household.
type FamilyScore struct {
	// PerProfile maps profile ID to that member's individual score.
	PerProfile map[string]float64
	// Group is the minimum of the individual scores: a recipe is only
	// a good family suggestion if nobody vetoes it.
	Group float64
	// OK is false for a household with no profiles, which yields no
	// scores at all rather than an error.
	OK bool
}

// FamilyScores scores the recipe independently for every profile and
// reduces to the weakest-link group score. A household where nobody
// has weights yet comes out as an all-zero vector with group 0, which
// is a valid (if uninformative) result.
func FamilyScores(fs models.FeatureSet, memberWeights map[string]map[WeightKey]Weight) FamilyScore {
	if len(memberWeights) == 0 {
		return FamilyScore{OK: false}
	}

	out := FamilyScore{
		PerProfile: make(map[string]float64, len(memberWeights)),
		OK:         true,
	}

	first := true
	for profileID, weights := range memberWeights {
		s := Score(fs, weights)
		out.PerProfile[profileID] = s
		if first || s < out.Group {
			out.Group = s
			first = false
		}
	}
	return out
}
