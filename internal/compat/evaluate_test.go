package compat

import (
	"errors"
	"testing"

	"github.com/shoalhq/shoal/internal/model"
)

type mapResolver map[string]model.Species

func (m mapResolver) ByID(id string) (model.Species, bool) {
	s, ok := m[id]
	return s, ok
}

func testResolver() mapResolver {
	min := 40.0
	size := 3.5
	tetra := sp("neon-tetra", "guppy")
	tetra.Name = "Neon Tetra"
	tetra.Schooling = true
	tetra.MinGroupSize = 6
	tetra.MinTankLitres = &min
	tetra.AdultSizeCM = &size

	guppySize := 5.0
	guppy := sp("guppy", "neon-tetra")
	guppy.Name = "Guppy"
	guppy.AdultSizeCM = &guppySize

	return mapResolver{"neon-tetra": tetra, "guppy": guppy}
}

func TestEvaluate(t *testing.T) {
	result, err := Evaluate(testResolver(), []model.Selection{
		{SpeciesID: "neon-tetra", Count: 6},
		{SpeciesID: "guppy", Count: 2},
	})
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}

	if len(result.Species) != 2 {
		t.Fatalf("len(Species) = %d, want 2", len(result.Species))
	}
	if result.Species[0].Count != 6 {
		t.Errorf("Count = %d, want 6", result.Species[0].Count)
	}
	if result.Score != 100 {
		t.Errorf("Score = %d, want 100 for a mutual pair", result.Score)
	}
	if result.Matrix[0][1] != model.LevelCompatible {
		t.Errorf("Matrix[0][1] = %q, want compatible", result.Matrix[0][1])
	}
	if !result.Overlaps.Temperature.OK {
		t.Error("Temperature overlap not OK for identical ranges")
	}
	if result.TankLitres < 40 {
		t.Errorf("TankLitres = %d, want at least the declared minimum 40", result.TankLitres)
	}
	if result.TankGallons != Gallons(result.TankLitres) {
		t.Errorf("TankGallons = %v, want %v", result.TankGallons, Gallons(result.TankLitres))
	}
	if len(result.Warnings) != 0 {
		t.Errorf("Warnings = %v, want none", result.Warnings)
	}
}

func TestEvaluateClampsCount(t *testing.T) {
	result, err := Evaluate(testResolver(), []model.Selection{
		{SpeciesID: "guppy", Count: 0},
	})
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	if result.Species[0].Count != 1 {
		t.Errorf("Count = %d, want 1 after clamping", result.Species[0].Count)
	}
}

func TestEvaluateSkipsUnknownIDs(t *testing.T) {
	result, err := Evaluate(testResolver(), []model.Selection{
		{SpeciesID: "guppy", Count: 1},
		{SpeciesID: "kraken", Count: 1},
	})
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	if len(result.Species) != 1 {
		t.Errorf("len(Species) = %d, want 1", len(result.Species))
	}
}

func TestEvaluateAllUnknown(t *testing.T) {
	_, err := Evaluate(testResolver(), []model.Selection{
		{SpeciesID: "kraken", Count: 1},
	})
	if !errors.Is(err, ErrNoSpecies) {
		t.Errorf("err = %v, want ErrNoSpecies", err)
	}
}

func TestEvaluateSchoolingWarning(t *testing.T) {
	result, err := Evaluate(testResolver(), []model.Selection{
		{SpeciesID: "neon-tetra", Count: 2},
	})
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	if len(result.Warnings) != 1 {
		t.Fatalf("Warnings = %v, want exactly the group-size warning", result.Warnings)
	}
}
