package export

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"

	"portfolio-projection/internal/projection"
)

// Markdown renders the report as a markdown document.
func Markdown(r Report) (string, error) {
	ev, err := projection.ExpectedValuesOf(r.Series)
	if err != nil {
		return "", err
	}
	cur := r.currency()
	c := r.Config

	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", r.title())
	if r.ProfileID != "" {
		fmt.Fprintf(&b, "**Profile:** %s  \n", r.ProfileID)
	}
	fmt.Fprintf(&b, "**Start:** %s, then %s per month  \n",
		FormatMoney(c.InitialAmount, cur), FormatMoney(c.MonthlyContribution, cur))
	fmt.Fprintf(&b, "**Assumption:** %.2f%% return, %.2f%% volatility per year  \n",
		c.AnnualExpectedReturn, c.AnnualVolatility)
	fmt.Fprintf(&b, "**Horizon:** %d months, %d scenarios, seed `%d`\n\n",
		c.HorizonMonths, c.ScenarioCount, r.Seed)

	b.WriteString("## Outcome\n\n")
	b.WriteString("| | Value |\n|---|---:|\n")
	fmt.Fprintf(&b, "| Pessimistic (P10) | %s |\n", FormatMoney(ev.Pessimistic, cur))
	fmt.Fprintf(&b, "| Expected (median) | %s |\n", FormatMoney(ev.Expected, cur))
	fmt.Fprintf(&b, "| Optimistic (P90) | %s |\n", FormatMoney(ev.Optimistic, cur))
	fmt.Fprintf(&b, "| Invested | %s |\n\n", FormatMoney(ev.Invested, cur))

	b.WriteString("## By year\n\n")
	b.WriteString("| Year | P10 | Median | P90 | Invested |\n|---|---:|---:|---:|---:|\n")
	for _, s := range r.yearly() {
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %s |\n", s.Year,
			FormatMoney(s.P10, cur), FormatMoney(s.Median, cur),
			FormatMoney(s.P90, cur), FormatMoney(s.Invested, cur))
	}
	return b.String(), nil
}

// RenderTerminal renders markdown for a terminal of the given width.
func RenderTerminal(md string, width int) (string, error) {
	if width <= 0 {
		width = 100
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dark"),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", fmt.Errorf("create renderer: %w", err)
	}
	return r.Render(md)
}
