package model

import (
	"encoding/json"
	"fmt"
)

// Compatibility level constants for a pair of species.
const (
	LevelCompatible   = "compatible"
	LevelSemi         = "semi-compatible"
	LevelIncompatible = "incompatible"
	LevelSelf         = "self"
)

// Range is an inclusive [low, high] water parameter interval. It marshals as
// a two-element JSON array to match the catalog file format.
type Range struct {
	Low  float64
	High float64
}

// MarshalJSON encodes the range as [low, high].
func (r Range) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]float64{r.Low, r.High})
}

// UnmarshalJSON decodes a [low, high] array.
func (r *Range) UnmarshalJSON(data []byte) error {
	var pair [2]float64
	if err := json.Unmarshal(data, &pair); err != nil {
		return fmt.Errorf("range must be a [low, high] array: %w", err)
	}
	r.Low, r.High = pair[0], pair[1]
	return nil
}

// Species describes one catalog entry after normalization.
type Species struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Compatibility []string `json:"compatibility"`
	MinTankLitres *float64 `json:"min_tank_size"`
	AdultSizeCM   *float64 `json:"adult_size"`
	Temperature   Range    `json:"temperature"`
	PH            Range    `json:"ph"`
	Hardness      Range    `json:"hardness"`
	Temperament   string   `json:"temperament"`
	Diet          string   `json:"diet"`
	Schooling     bool     `json:"schooling"`
	MinGroupSize  int      `json:"min_group_size"`
	Image         string   `json:"image"`
}
