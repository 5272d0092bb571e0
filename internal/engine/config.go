package engine

// Config holds the engine's tunable bounds. The defaults match the
// behavior of the production system; tests and deployments can shrink
// the pools.
type Config struct {
	// ColdStartThreshold is the number of ratings below which the next
	// recipe to rate is picked deterministically by popularity.
	ColdStartThreshold int
	// ExploreWindow is the size of the randomized top-K window once a
	// profile has left the cold-start regime.
	ExploreWindow int
	// SuggestPool bounds how many popular unrated recipes are scored
	// for a single profile's suggestion list.
	SuggestPool int
	// FamilyPool bounds how many popular recipes are scored for the
	// household view.
	FamilyPool int
}

func DefaultConfig() Config {
	return Config{
		ColdStartThreshold: 20,
		ExploreWindow:      20,
		SuggestPool:        100,
		FamilyPool:         200,
	}
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.ColdStartThreshold <= 0 {
		c.ColdStartThreshold = d.ColdStartThreshold
	}
	if c.ExploreWindow <= 0 {
		c.ExploreWindow = d.ExploreWindow
	}
	if c.SuggestPool <= 0 {
		c.SuggestPool = d.SuggestPool
	}
	if c.FamilyPool <= 0 {
		c.FamilyPool = d.FamilyPool
	}
	return c
}
