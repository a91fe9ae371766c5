package export

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"

	"portfolio-projection/internal/projection"
)

// BuildPDF renders a one-table PDF with a yearly breakdown of the series.
// Amounts use plain numbers because the core fonts lack currency glyphs.
func BuildPDF(r Report) ([]byte, error) {
	ev, err := projection.ExpectedValuesOf(r.Series)
	if err != nil {
		return nil, err
	}
	c := r.Config

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetFont("Arial", "", 12)
	pdf.AddPage()

	pdf.Cell(0, 8, r.title())
	pdf.Ln(10)
	pdf.SetFont("Arial", "", 10)
	if r.ProfileID != "" {
		pdf.Cell(0, 6, fmt.Sprintf("Profile: %s", r.ProfileID))
		pdf.Ln(5)
	}
	pdf.Cell(0, 6, fmt.Sprintf("Initial amount (%s): %.2f", r.currency(), c.InitialAmount))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Monthly contribution (%s): %.2f", r.currency(), c.MonthlyContribution))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Horizon: %d months", c.HorizonMonths))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Return / volatility: %.2f%% / %.2f%% per year", c.AnnualExpectedReturn, c.AnnualVolatility))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Scenarios: %d (seed %d)", c.ScenarioCount, r.Seed))
	pdf.Ln(8)

	pdf.Cell(0, 6, fmt.Sprintf("Pessimistic: %.2f   Expected: %.2f   Optimistic: %.2f   Invested: %.2f",
		ev.Pessimistic, ev.Expected, ev.Optimistic, ev.Invested))
	pdf.Ln(10)

	pdf.SetFont("Arial", "B", 10)
	for _, h := range []string{"Year", "P10", "Median", "P90", "Invested"} {
		pdf.CellFormat(36, 6, h, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)
	pdf.SetFont("Arial", "", 10)
	for _, s := range r.yearly() {
		pdf.CellFormat(36, 6, s.Year, "1", 0, "C", false, 0, "")
		pdf.CellFormat(36, 6, fmt.Sprintf("%.2f", s.P10), "1", 0, "R", false, 0, "")
		pdf.CellFormat(36, 6, fmt.Sprintf("%.2f", s.Median), "1", 0, "R", false, 0, "")
		pdf.CellFormat(36, 6, fmt.Sprintf("%.2f", s.P90), "1", 0, "R", false, 0, "")
		pdf.CellFormat(36, 6, fmt.Sprintf("%.2f", s.Invested), "1", 0, "R", false, 0, "")
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
