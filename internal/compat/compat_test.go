package compat

import (
	"strings"
	"testing"

	"github.com/shoalhq/shoal/internal/model"
)

func sp(id string, compat ...string) model.Species {
	return model.Species{
		ID:            id,
		Name:          strings.ToUpper(id[:1]) + id[1:],
		Compatibility: compat,
		Temperature:   model.Range{Low: 22, High: 26},
		PH:            model.Range{Low: 6.5, High: 7.5},
		Hardness:      model.Range{Low: 1, High: 12},
		Temperament:   "Peaceful",
		MinGroupSize:  1,
	}
}

func TestMatrixLevels(t *testing.T) {
	mutual := []model.Species{sp("a", "b"), sp("b", "a")}
	m := Matrix(mutual)
	if m[0][1] != model.LevelCompatible || m[1][0] != model.LevelCompatible {
		t.Errorf("mutual listing = %q/%q, want compatible", m[0][1], m[1][0])
	}
	if m[0][0] != model.LevelSelf || m[1][1] != model.LevelSelf {
		t.Errorf("diagonal = %q/%q, want self", m[0][0], m[1][1])
	}

	oneWay := []model.Species{sp("a", "b"), sp("b")}
	m = Matrix(oneWay)
	if m[0][1] != model.LevelSemi {
		t.Errorf("one-way listing = %q, want semi-compatible", m[0][1])
	}
	if m[1][0] != model.LevelSemi {
		t.Errorf("one-way listing (reverse) = %q, want semi-compatible", m[1][0])
	}

	neither := []model.Species{sp("a"), sp("b")}
	m = Matrix(neither)
	if m[0][1] != model.LevelIncompatible {
		t.Errorf("no listing = %q, want incompatible", m[0][1])
	}
}

func TestOverlapAll(t *testing.T) {
	o := OverlapAll([]model.Range{{Low: 20, High: 26}, {Low: 22, High: 28}})
	if o.Low != 22 || o.High != 26 || !o.OK {
		t.Errorf("Overlap = %+v, want {22 26 true}", o)
	}

	disjoint := OverlapAll([]model.Range{{Low: 18, High: 22}, {Low: 24, High: 28}})
	if disjoint.OK {
		t.Errorf("Overlap = %+v, want OK=false for disjoint ranges", disjoint)
	}
	if disjoint.Low != 24 || disjoint.High != 22 {
		t.Errorf("Overlap bounds = %+v, want {24 22}", disjoint)
	}

	empty := OverlapAll(nil)
	if empty.OK {
		t.Error("Overlap of no ranges reported OK")
	}
}

func TestEstimateTankLitresBaseDominates(t *testing.T) {
	min := 40.0
	size := 3.5
	tetra := sp("neon-tetra")
	tetra.MinTankLitres = &min
	tetra.AdultSizeCM = &size

	// Two small fish: base 40, extra 3.5, buffer 6 → stays at 40.
	got := EstimateTankLitres([]model.Species{tetra, tetra})
	if got != 40 {
		t.Errorf("EstimateTankLitres = %d, want 40", got)
	}
}

func TestEstimateTankLitresSmallDeclaredMinimum(t *testing.T) {
	min := 5.0
	size := 2.0
	shrimp := sp("cherry-shrimp")
	shrimp.MinTankLitres = &min
	shrimp.AdultSizeCM = &size

	// A declared minimum below 10 L is honored: base 5, extra 1,
	// max(5, 1+0.75) = 5.
	got := EstimateTankLitres([]model.Species{shrimp})
	if got != 5 {
		t.Errorf("EstimateTankLitres = %d, want 5", got)
	}
}

func TestEstimateTankLitresWasteFactors(t *testing.T) {
	size := 20.0
	goldfish := sp("goldfish")
	goldfish.Name = "Goldfish"
	goldfish.AdultSizeCM = &size

	// No declared min tank: base 10. One goldfish: 0.5*20*1.6 = 16 extra,
	// max(10, 16+1.5) = 17.5 → rounds up to 20.
	got := EstimateTankLitres([]model.Species{goldfish})
	if got != 20 {
		t.Errorf("EstimateTankLitres = %d, want 20", got)
	}

	aggressive := sp("oscar")
	aggressive.Name = "Oscar"
	aggressive.Temperament = "Aggressive"
	size2 := 30.0
	aggressive.AdultSizeCM = &size2

	// Oscar matches both the aggressive and heavy-waste factors:
	// 0.5*30*1.85 = 27.75, max(10, 27.75+1.5) = 29.25 → 30.
	got = EstimateTankLitres([]model.Species{aggressive})
	if got != 30 {
		t.Errorf("EstimateTankLitres = %d, want 30", got)
	}
}

func TestEstimateTankLitresDefaultAdultSize(t *testing.T) {
	unknown := sp("mystery")
	// base 10, extra 0.5*5 = 2.5, max(10, 2.5+1.5) = 10.
	got := EstimateTankLitres([]model.Species{unknown})
	if got != 10 {
		t.Errorf("EstimateTankLitres = %d, want 10", got)
	}
}

func TestGallons(t *testing.T) {
	if got := Gallons(40); got != 10.6 {
		t.Errorf("Gallons(40) = %v, want 10.6", got)
	}
	if got := Gallons(75); got != 19.8 {
		t.Errorf("Gallons(75) = %v, want 19.8", got)
	}
}

func TestWarningsSchoolingGroup(t *testing.T) {
	tetra := sp("neon-tetra")
	tetra.Name = "Neon Tetra"
	tetra.Schooling = true
	tetra.MinGroupSize = 6

	selected := []Selected{{Species: tetra, Count: 2}}
	matrix := Matrix([]model.Species{tetra})
	overlaps := Overlaps{
		Temperature: Overlap{OK: true},
		PH:          Overlap{OK: true},
		Hardness:    Overlap{OK: true},
	}

	warnings := Warnings(selected, matrix, overlaps)
	if len(warnings) != 1 {
		t.Fatalf("len(warnings) = %d, want 1: %v", len(warnings), warnings)
	}
	want := "Neon Tetra typically needs a group of 6. You selected 2."
	if warnings[0] != want {
		t.Errorf("warning = %q, want %q", warnings[0], want)
	}
}

func TestWarningsParameterOverlapAndPairs(t *testing.T) {
	betta := sp("betta")
	betta.Name = "Betta"
	betta.Temperament = "Aggressive/territorial"
	betta.Temperature = model.Range{Low: 24, High: 28}

	goldfish := sp("goldfish")
	goldfish.Name = "Goldfish"
	goldfish.Temperature = model.Range{Low: 18, High: 22}

	species := []model.Species{betta, goldfish}
	selected := []Selected{{Species: betta, Count: 1}, {Species: goldfish, Count: 1}}
	matrix := Matrix(species)
	overlaps := Overlaps{
		Temperature: OverlapAll([]model.Range{betta.Temperature, goldfish.Temperature}),
		PH:          Overlap{OK: true},
		Hardness:    Overlap{OK: true},
	}

	warnings := Warnings(selected, matrix, overlaps)

	if !containsWarning(warnings, "Selected fishes do not share a common temperature range.") {
		t.Errorf("missing temperature warning in %v", warnings)
	}
	if !containsWarning(warnings, "Incompatible pairs: Betta × Goldfish") {
		t.Errorf("missing incompatible pairs warning in %v", warnings)
	}
}

func TestWarningsMultipleAggressive(t *testing.T) {
	a := sp("a", "b")
	a.Name = "A"
	a.Temperament = "Aggressive"
	b := sp("b", "a")
	b.Name = "B"
	b.Temperament = "Semi-aggressive"

	selected := []Selected{{Species: a, Count: 1}, {Species: b, Count: 1}}
	matrix := Matrix([]model.Species{a, b})
	okOverlaps := Overlaps{
		Temperature: Overlap{OK: true},
		PH:          Overlap{OK: true},
		Hardness:    Overlap{OK: true},
	}

	warnings := Warnings(selected, matrix, okOverlaps)
	want := "Multiple aggressive/territorial species selected: A, B"
	if !containsWarning(warnings, want) {
		t.Errorf("missing aggressive warning in %v", warnings)
	}
}

func containsWarning(warnings []string, want string) bool {
	for _, w := range warnings {
		if w == want {
			return true
		}
	}
	return false
}

func TestScore(t *testing.T) {
	mutual := Matrix([]model.Species{sp("a", "b"), sp("b", "a")})
	if got := Score(mutual); got != 100 {
		t.Errorf("Score(mutual) = %d, want 100", got)
	}

	semi := Matrix([]model.Species{sp("a", "b"), sp("b")})
	if got := Score(semi); got != 50 {
		t.Errorf("Score(semi) = %d, want 50", got)
	}

	none := Matrix([]model.Species{sp("a"), sp("b")})
	if got := Score(none); got != 0 {
		t.Errorf("Score(none) = %d, want 0", got)
	}

	single := Matrix([]model.Species{sp("a")})
	if got := Score(single); got != 0 {
		t.Errorf("Score(single) = %d, want 0", got)
	}

	// Three species: one mutual pair, one semi pair, one incompatible pair:
	// 100 * (1 + 0.5) / 3 = 50.
	three := Matrix([]model.Species{sp("a", "b"), sp("b", "a", "c"), sp("c")})
	if got := Score(three); got != 50 {
		t.Errorf("Score(three) = %d, want 50", got)
	}
}
