package models

import "time"

// PreferenceWeight is one learned affinity of a profile for a single
// feature value. Weight is clamped to [-1, 1]; SampleCount is the
// number of rating events that have touched the key and never
// decreases.
type PreferenceWeight struct {
	ProfileID    string      `json:"profile_id"`
	FeatureType  FeatureType `json:"feature_type"`
	FeatureValue string      `json:"feature_value"`
	Weight       float64     `json:"weight"`
	SampleCount  int         `json:"sample_count"`
	UpdatedAt    time.Time   `json:"updated_at"`
}
