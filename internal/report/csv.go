package report

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"github.com/shoalhq/shoal/internal/compat"
)

// CSVRenderer renders an evaluation as a CSV document: a species table
// followed by the tank recommendation, parameter overlaps, and warnings.
type CSVRenderer struct{}

// ContentType implements Renderer.
func (*CSVRenderer) ContentType() string { return "text/csv" }

// Filename implements Renderer.
func (*CSVRenderer) Filename(generatedAt time.Time) string {
	return "fish_report_" + timestampSuffix(generatedAt) + ".csv"
}

// Render implements Renderer.
func (*CSVRenderer) Render(result *compat.Result, generatedAt time.Time) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	rows := [][]string{
		{"Fish Compatibility Report"},
		{fmt.Sprintf("Generated: %s UTC", generatedAt.UTC().Format(time.RFC3339))},
		{},
		{"id", "name", "count", "adult_size_cm", "min_tank_size_L",
			"temp_min", "temp_max", "ph_min", "ph_max", "hardness_min", "hardness_max",
			"temperament", "diet", "schooling", "min_group_size"},
	}

	for _, f := range result.Species {
		rows = append(rows, []string{
			f.ID,
			f.Name,
			strconv.Itoa(f.Count),
			floatOrEmpty(f.AdultSizeCM),
			floatOrEmpty(f.MinTankLitres),
			formatFloat(f.Temperature.Low), formatFloat(f.Temperature.High),
			formatFloat(f.PH.Low), formatFloat(f.PH.High),
			formatFloat(f.Hardness.Low), formatFloat(f.Hardness.High),
			f.Temperament,
			f.Diet,
			strconv.FormatBool(f.Schooling),
			strconv.Itoa(f.MinGroupSize),
		})
	}

	rows = append(rows,
		[]string{},
		[]string{"Tank recommendation (L)", strconv.Itoa(result.TankLitres)},
		[]string{"Tank recommendation (gal)", formatFloat(result.TankGallons)},
		[]string{},
		overlapRow("Temperature overlap", result.Overlaps.Temperature),
		overlapRow("pH overlap", result.Overlaps.PH),
		overlapRow("Hardness overlap", result.Overlaps.Hardness),
		[]string{},
		[]string{"Warnings"},
	)
	for _, warning := range result.Warnings {
		rows = append(rows, []string{warning})
	}

	if err := w.WriteAll(rows); err != nil {
		return nil, fmt.Errorf("write csv: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("flush csv: %w", err)
	}
	return buf.Bytes(), nil
}

func overlapRow(label string, o compat.Overlap) []string {
	return []string{label, formatFloat(o.Low), formatFloat(o.High), strconv.FormatBool(o.OK)}
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func floatOrEmpty(f *float64) string {
	if f == nil {
		return ""
	}
	return formatFloat(*f)
}
