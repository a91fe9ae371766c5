package export

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"portfolio-projection/internal/projection"
)

// BuildXLSX renders a workbook with a summary sheet and the full monthly series.
func BuildXLSX(r Report) ([]byte, error) {
	ev, err := projection.ExpectedValuesOf(r.Series)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()
	summarySheet := "summary"
	seriesSheet := "series"
	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		return nil, err
	}
	if _, err := f.NewSheet(seriesSheet); err != nil {
		return nil, err
	}

	c := r.Config
	rows := [][2]interface{}{
		{"Profile", r.ProfileID},
		{"Initial amount", c.InitialAmount},
		{"Monthly contribution", c.MonthlyContribution},
		{"Horizon (months)", c.HorizonMonths},
		{"Expected return (%/yr)", c.AnnualExpectedReturn},
		{"Volatility (%/yr)", c.AnnualVolatility},
		{"Scenarios", c.ScenarioCount},
		{"Seed", fmt.Sprintf("%d", r.Seed)},
		{"Currency", r.currency()},
		{"Pessimistic (P10)", ev.Pessimistic},
		{"Expected (median)", ev.Expected},
		{"Optimistic (P90)", ev.Optimistic},
		{"Invested", ev.Invested},
	}
	_ = f.SetCellValue(summarySheet, "A1", r.title())
	for i, row := range rows {
		n := i + 3
		_ = f.SetCellValue(summarySheet, fmt.Sprintf("A%d", n), row[0])
		_ = f.SetCellValue(summarySheet, fmt.Sprintf("B%d", n), row[1])
	}

	for i, h := range []string{"Month", "Year", "P10", "Median", "P90", "Invested"} {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(seriesSheet, cell, h)
	}
	for i, s := range r.Series {
		row := i + 2
		_ = f.SetCellValue(seriesSheet, fmt.Sprintf("A%d", row), s.Month)
		_ = f.SetCellValue(seriesSheet, fmt.Sprintf("B%d", row), s.Year)
		_ = f.SetCellValue(seriesSheet, fmt.Sprintf("C%d", row), s.P10)
		_ = f.SetCellValue(seriesSheet, fmt.Sprintf("D%d", row), s.Median)
		_ = f.SetCellValue(seriesSheet, fmt.Sprintf("E%d", row), s.P90)
		_ = f.SetCellValue(seriesSheet, fmt.Sprintf("F%d", row), s.Invested)
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
