// Package export renders a projection series as CSV, XLSX, PDF or a
// markdown report.
package export

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"portfolio-projection/internal/model"
	"portfolio-projection/internal/projection"
)

// ErrUnsupportedFormat is returned for an unknown export format.
var ErrUnsupportedFormat = errors.New("unsupported format")

type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
	FormatPDF  Format = "pdf"
)

// ParseFormat accepts a format name or a file extension (".xlsx").
func ParseFormat(s string) (Format, error) {
	f := Format(strings.TrimPrefix(strings.ToLower(strings.TrimSpace(s)), "."))
	switch f {
	case FormatCSV, FormatXLSX, FormatPDF:
		return f, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
}

func (f Format) ContentType() string {
	switch f {
	case FormatXLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case FormatPDF:
		return "application/pdf"
	default:
		return "text/csv"
	}
}

// Filename is the download name for a run with the given seed.
func (f Format) Filename(seed uint64) string {
	return fmt.Sprintf("projection-%d.%s", seed, f)
}

// Report is everything an export needs to describe one run.
type Report struct {
	Title     string
	ProfileID string
	Currency  string
	Config    model.SimulationConfig
	Seed      uint64
	Series    []model.MonthlySummary
}

func (r Report) title() string {
	if r.Title != "" {
		return r.Title
	}
	return "Portfolio Projection"
}

func (r Report) currency() string {
	if r.Currency != "" {
		return r.Currency
	}
	return DefaultCurrency
}

// yearly keeps month 0, every twelfth month and the final month.
func (r Report) yearly() []model.MonthlySummary {
	var out []model.MonthlySummary
	for i, s := range r.Series {
		if s.Month%12 == 0 || i == len(r.Series)-1 {
			out = append(out, s)
		}
	}
	return out
}

// Write renders r in format f.
func Write(w io.Writer, f Format, r Report) error {
	switch f {
	case FormatCSV:
		return projection.WriteSummaryCSV(w, r.Series)
	case FormatXLSX:
		b, err := BuildXLSX(r)
		if err != nil {
			return err
		}
		_, err = w.Write(b)
		return err
	case FormatPDF:
		b, err := BuildPDF(r)
		if err != nil {
			return err
		}
		_, err = w.Write(b)
		return err
	}
	return fmt.Errorf("%w: %q", ErrUnsupportedFormat, f)
}
