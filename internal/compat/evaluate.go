package compat

import (
	"errors"

	"github.com/shoalhq/shoal/internal/model"
)

// ErrNoSpecies is returned when none of the selected IDs resolve to a known
// species.
var ErrNoSpecies = errors.New("no known species selected")

// Resolver looks a species up by catalog ID.
type Resolver interface {
	ByID(id string) (model.Species, bool)
}

// Result is a full stocking evaluation.
type Result struct {
	Species     []Selected `json:"fishes"`
	Matrix      [][]string `json:"matrix"`
	Overlaps    Overlaps   `json:"overlaps"`
	TankLitres  int        `json:"tank_l"`
	TankGallons float64    `json:"tank_gal"`
	Warnings    []string   `json:"warnings"`
	Score       int        `json:"score"`
}

// Evaluate resolves the selections against the catalog and runs the full
// evaluation. Unknown species IDs are skipped; counts below one are raised
// to one. The matrix, overlaps, score, and group-size warnings operate at
// species level, while the tank estimate expands each species by its count.
func Evaluate(catalog Resolver, selections []model.Selection) (*Result, error) {
	var selected []Selected
	var expanded []model.Species

	for _, sel := range selections {
		sp, ok := catalog.ByID(sel.SpeciesID)
		if !ok {
			continue
		}
		count := sel.Count
		if count < 1 {
			count = 1
		}
		selected = append(selected, Selected{Species: sp, Count: count})
		for i := 0; i < count; i++ {
			expanded = append(expanded, sp)
		}
	}

	if len(selected) == 0 {
		return nil, ErrNoSpecies
	}

	speciesOnly := make([]model.Species, len(selected))
	tempRanges := make([]model.Range, len(selected))
	phRanges := make([]model.Range, len(selected))
	hardRanges := make([]model.Range, len(selected))
	for i, f := range selected {
		speciesOnly[i] = f.Species
		tempRanges[i] = f.Temperature
		phRanges[i] = f.PH
		hardRanges[i] = f.Hardness
	}

	matrix := Matrix(speciesOnly)
	overlaps := Overlaps{
		Temperature: OverlapAll(tempRanges),
		PH:          OverlapAll(phRanges),
		Hardness:    OverlapAll(hardRanges),
	}
	litres := EstimateTankLitres(expanded)

	return &Result{
		Species:     selected,
		Matrix:      matrix,
		Overlaps:    overlaps,
		TankLitres:  litres,
		TankGallons: Gallons(litres),
		Warnings:    Warnings(selected, matrix, overlaps),
		Score:       Score(matrix),
	}, nil
}
