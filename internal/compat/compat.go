// Package compat implements the stocking evaluation engine: pairwise species
// compatibility, water parameter overlap, tank size estimation, warnings,
// and the overall 0-100 compatibility score.
package compat

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/shoalhq/shoal/internal/model"
)

const (
	// baseTankLitres is assumed when no species declares a minimum tank size.
	baseTankLitres = 10.0

	// defaultAdultSizeCM stands in for species with no recorded adult size.
	defaultAdultSizeCM = 5.0

	// litresToGallons converts the litre recommendation for display.
	litresToGallons = 0.264172
)

// heavyWasteNames marks species whose bioload warrants extra volume.
var heavyWasteNames = []string{"goldfish", "oscar", "koi", "pleco"}

// Matrix computes the n×n pairwise compatibility levels for the given
// species. A pair is compatible when each lists the other, semi-compatible
// when only one does, and incompatible otherwise. The diagonal is self.
func Matrix(species []model.Species) [][]string {
	n := len(species)
	m := make([][]string, n)
	for i := range m {
		m[i] = make([]string, n)
	}

	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if i == j {
				m[i][j] = model.LevelSelf
				continue
			}
			iListsJ := contains(species[i].Compatibility, species[j].ID)
			jListsI := contains(species[j].Compatibility, species[i].ID)
			switch {
			case iListsJ && jListsI:
				m[i][j] = model.LevelCompatible
			case iListsJ || jListsI:
				m[i][j] = model.LevelSemi
			default:
				m[i][j] = model.LevelIncompatible
			}
		}
	}
	return m
}

// Overlap is the shared interval across every species' range for one water
// parameter. OK is false when the ranges do not intersect.
type Overlap struct {
	Low  float64 `json:"low"`
	High float64 `json:"high"`
	OK   bool    `json:"ok"`
}

// OverlapAll intersects the given ranges: the highest low against the lowest
// high.
func OverlapAll(ranges []model.Range) Overlap {
	if len(ranges) == 0 {
		return Overlap{}
	}
	low := ranges[0].Low
	high := ranges[0].High
	for _, r := range ranges[1:] {
		low = math.Max(low, r.Low)
		high = math.Min(high, r.High)
	}
	return Overlap{Low: low, High: high, OK: low <= high}
}

// Overlaps groups the three tracked water parameters.
type Overlaps struct {
	Temperature Overlap `json:"temperature"`
	PH          Overlap `json:"ph"`
	Hardness    Overlap `json:"hardness"`
}

// EstimateTankLitres recommends a tank volume for the expanded fish list
// (one entry per individual). The base is the largest declared minimum tank
// size, or 10 L when no species declares one; each fish then adds half its
// adult length in litres, inflated for
// aggressive temperament and heavy-waste species, plus a 15% buffer over the
// base. The result rounds up to the nearest 5 litres.
func EstimateTankLitres(expanded []model.Species) int {
	base := 0.0
	for _, f := range expanded {
		if f.MinTankLitres != nil && *f.MinTankLitres > base {
			base = *f.MinTankLitres
		}
	}
	if base == 0 {
		base = baseTankLitres
	}

	extra := 0.0
	for _, f := range expanded {
		adultCM := defaultAdultSizeCM
		if f.AdultSizeCM != nil {
			adultCM = *f.AdultSizeCM
		}
		perFish := 0.5 * adultCM

		wasteFactor := 1.0
		if strings.Contains(strings.ToLower(f.Temperament), "aggressive") {
			wasteFactor += 0.25
		}
		nameLower := strings.ToLower(f.Name)
		for _, heavy := range heavyWasteNames {
			if strings.Contains(nameLower, heavy) {
				wasteFactor += 0.6
				break
			}
		}
		extra += perFish * wasteFactor
	}

	recommended := math.Max(base, extra+base*0.15)
	return int(math.Ceil(recommended/5.0) * 5)
}

// Gallons converts a litre recommendation for display, rounded to one
// decimal place.
func Gallons(litres int) float64 {
	return math.Round(float64(litres)*litresToGallons*10) / 10
}

// Selected pairs a species with the planned head count.
type Selected struct {
	model.Species
	Count int `json:"count"`
}

// Warnings summarizes stocking problems: schooling species kept under their
// minimum group size, non-overlapping water parameters, incompatible pairs,
// and multiple aggressive species in one tank.
func Warnings(selected []Selected, matrix [][]string, overlaps Overlaps) []string {
	var warnings []string

	for _, f := range selected {
		if f.Schooling && f.Count < f.MinGroupSize {
			warnings = append(warnings, fmt.Sprintf(
				"%s typically needs a group of %d. You selected %d.",
				f.Name, f.MinGroupSize, f.Count))
		}
	}

	if !overlaps.Temperature.OK {
		warnings = append(warnings, "Selected fishes do not share a common temperature range.")
	}
	if !overlaps.PH.OK {
		warnings = append(warnings, "Selected fishes do not share a common pH range.")
	}
	if !overlaps.Hardness.OK {
		warnings = append(warnings, "Selected fishes do not share a common hardness (dGH) range.")
	}

	pairSet := make(map[string]bool)
	var pairs []string
	for i := 0; i < len(selected); i++ {
		for j := i + 1; j < len(selected); j++ {
			if matrix[i][j] != model.LevelIncompatible {
				continue
			}
			a, b := selected[i].Name, selected[j].Name
			if b < a {
				a, b = b, a
			}
			pair := a + " × " + b
			if !pairSet[pair] {
				pairSet[pair] = true
				pairs = append(pairs, pair)
			}
		}
	}
	if len(pairs) > 0 {
		sort.Strings(pairs)
		warnings = append(warnings, "Incompatible pairs: "+strings.Join(pairs, "; "))
	}

	var aggressive []string
	for _, f := range selected {
		if strings.Contains(strings.ToLower(f.Temperament), "aggressive") {
			aggressive = append(aggressive, f.Name)
		}
	}
	if len(aggressive) > 1 {
		warnings = append(warnings, "Multiple aggressive/territorial species selected: "+strings.Join(aggressive, ", "))
	}

	return warnings
}

// Score grades the selection from 0 to 100: each mutually compatible pair
// counts fully, each semi-compatible pair counts half, against the total
// number of pairs. Selections with fewer than two species have no pairs to
// credit and score 0.
func Score(matrix [][]string) int {
	n := len(matrix)
	totalPairs := 1.0
	if n > 1 {
		totalPairs = float64(n*(n-1)) / 2
	}

	compatible := 0
	semi := 0
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			switch matrix[i][j] {
			case model.LevelCompatible:
				compatible++
			case model.LevelSemi:
				semi++
			}
		}
	}

	return int(100 * (float64(compatible) + 0.5*float64(semi)) / totalPairs)
}

func contains(list []string, v string) bool {
	for _, e := range list {
		if e == v {
			return true
		}
	}
	return false
}
