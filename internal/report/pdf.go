package report

import (
	"bytes"
	"fmt"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/shoalhq/shoal/internal/compat"
)

// PDFRenderer renders an evaluation as a single-column PDF document.
type PDFRenderer struct{}

// ContentType implements Renderer.
func (*PDFRenderer) ContentType() string { return "application/pdf" }

// Filename implements Renderer.
func (*PDFRenderer) Filename(generatedAt time.Time) string {
	return "fish_report_" + timestampSuffix(generatedAt) + ".pdf"
}

// Render implements Renderer.
func (*PDFRenderer) Render(result *compat.Result, generatedAt time.Time) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "Letter", "")
	pdf.SetAutoPageBreak(true, 20)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, "Fish Compatibility Report", "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(0, 6, fmt.Sprintf("Generated: %s UTC", generatedAt.UTC().Format(time.RFC3339)), "", 1, "L", false, 0, "")
	pdf.Ln(2)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 8, fmt.Sprintf("Recommended tank: %d L (%.1f gal)", result.TankLitres, result.TankGallons), "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(0, 7, "Selected fishes:", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	for _, f := range result.Species {
		size := "?"
		if f.AdultSizeCM != nil {
			size = fmt.Sprintf("%.1f", *f.AdultSizeCM)
		}
		line := fmt.Sprintf("%s x %d - %s cm", f.Name, f.Count, size)
		pdf.CellFormat(0, 6, line, "", 1, "L", false, 0, "")
	}
	pdf.Ln(2)

	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(0, 7, "Overlaps:", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	writeOverlap(pdf, "Temperature", result.Overlaps.Temperature)
	writeOverlap(pdf, "pH", result.Overlaps.PH)
	writeOverlap(pdf, "Hardness", result.Overlaps.Hardness)
	pdf.Ln(2)

	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(0, 7, "Warnings:", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	if len(result.Warnings) == 0 {
		pdf.CellFormat(0, 6, "- none", "", 1, "L", false, 0, "")
	}
	for _, warning := range result.Warnings {
		pdf.MultiCell(0, 6, "- "+warning, "", "L", false)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func writeOverlap(pdf *fpdf.Fpdf, label string, o compat.Overlap) {
	pdf.CellFormat(0, 6, fmt.Sprintf("%s: %.1f - %.1f (ok=%t)", label, o.Low, o.High, o.OK), "", 1, "L", false, 0, "")
}
