package projection

import (
	"encoding/csv"
	"io"
	"strconv"

	"portfolio-projection/internal/model"
)

// WriteSummaryCSV writes one row per month.
func WriteSummaryCSV(w io.Writer, series []model.MonthlySummary) error {
	cw := csv.NewWriter(w)

	header := []string{
		"month",
		"year",
		"p10",
		"median",
		"p90",
		"invested",
	}
	if err := cw.Write(header); err != nil {
		return err
	}

	for _, s := range series {
		row := []string{
			strconv.Itoa(s.Month),
			s.Year,
			fmtFloat(s.P10),
			fmtFloat(s.Median),
			fmtFloat(s.P90),
			fmtFloat(s.Invested),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

func fmtFloat(x float64) string {
	return strconv.FormatFloat(x, 'f', 2, 64)
}
