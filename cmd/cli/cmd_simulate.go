package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"text/tabwriter"

	"portfolio-projection/internal/config"
	"portfolio-projection/internal/export"
	"portfolio-projection/internal/model"
	"portfolio-projection/internal/service"

	"github.com/spf13/cobra"
)

// addRunFlags registers the flags shared by every command that runs a projection.
func addRunFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.Float64("initial", 0, "Initial amount")
	f.Float64("monthly", 0, "Monthly contribution")
	f.Int("years", model.DefaultHorizonYears, "Horizon in years")
	f.Int("months", 0, "Horizon in months (overrides --years)")
	f.String("profile", "", "Risk profile id (defensive, neutral, offensive)")
	f.Float64("return", 0, "Annual expected return in percent (overrides the profile)")
	f.Float64("volatility", 0, "Annual volatility in percent (overrides the profile)")
	f.Int("scenarios", model.DefaultScenarioCount, "Number of simulated scenarios")
	f.Uint64("seed", 0, "Seed for a reproducible run")
	f.String("method", "", "Percentile method: nearest_rank or linear")
	f.Int("workers", 0, "Worker goroutines (0 = GOMAXPROCS)")
	f.String("currency", export.DefaultCurrency, "ISO 4217 currency for display")
}

// buildRequest starts from the --config file, if any, and applies every
// flag the user set explicitly on top.
func buildRequest(cmd *cobra.Command) (service.Request, config.EngineConfig, error) {
	var req service.Request
	var engineCfg config.EngineConfig

	if path, _ := cmd.Flags().GetString("config"); path != "" {
		cfg, err := config.Load(path)
		if err != nil {
			return req, engineCfg, fmt.Errorf("load config: %w", err)
		}
		req = service.RequestFromConfig(cfg)
		engineCfg = cfg.Engine
	}

	f := cmd.Flags()
	if f.Changed("initial") {
		req.InitialAmount, _ = f.GetFloat64("initial")
	}
	if f.Changed("monthly") {
		req.MonthlyContribution, _ = f.GetFloat64("monthly")
	}
	if f.Changed("years") {
		v, _ := f.GetInt("years")
		req.HorizonYears = &v
		req.HorizonMonths = nil
	}
	if f.Changed("months") {
		v, _ := f.GetInt("months")
		req.HorizonMonths = &v
	}
	if f.Changed("profile") {
		req.Profile, _ = f.GetString("profile")
		// A named profile replaces the config file's assumption unless
		// overridden again below.
		req.ExpectedReturn, req.Volatility = nil, nil
	}
	if f.Changed("return") {
		v, _ := f.GetFloat64("return")
		req.ExpectedReturn = &v
	}
	if f.Changed("volatility") {
		v, _ := f.GetFloat64("volatility")
		req.Volatility = &v
	}
	if f.Changed("scenarios") {
		v, _ := f.GetInt("scenarios")
		req.Scenarios = &v
	}
	if f.Changed("seed") {
		v, _ := f.GetUint64("seed")
		req.Seed = &v
	}
	if f.Changed("method") {
		req.PercentileMethod, _ = f.GetString("method")
	}
	return req, engineCfg, nil
}

func runProjection(cmd *cobra.Command) (*service.Outcome, error) {
	req, engineCfg, err := buildRequest(cmd)
	if err != nil {
		return nil, err
	}
	svc := newService(cmd, engineCfg, service.Limits{})
	return svc.Simulate(cmd.Context(), req)
}

func reportOf(cmd *cobra.Command, out *service.Outcome) export.Report {
	currency, _ := cmd.Flags().GetString("currency")
	return export.Report{
		ProfileID: out.Profile.ID,
		Currency:  currency,
		Config:    out.Config,
		Seed:      out.Result.Seed,
		Series:    out.Result.Series,
	}
}

func newSimulateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Run a projection and print the monthly percentile bands",
		Example: `  projection simulate --initial 10000 --monthly 250 --years 20 --profile offensive
  projection simulate --config examples/config.yaml --out results/projection.xlsx`,
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := runProjection(cmd)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()

			if path, _ := cmd.Flags().GetString("out"); path != "" {
				if err := writeExport(path, reportOf(cmd, out)); err != nil {
					return err
				}
				fmt.Fprintf(cmd.ErrOrStderr(), "Wrote %d rows to %s\n", len(out.Result.Series), path)
			}

			if jsonOut, _ := cmd.Flags().GetBool("json"); jsonOut {
				enc := json.NewEncoder(w)
				enc.SetIndent("", "  ")
				return enc.Encode(map[string]interface{}{
					"seed":           out.Result.Seed,
					"scenarios":      out.Result.Scenarios,
					"horizon_months": out.Config.HorizonMonths,
					"profile":        out.Profile.ID,
					"series":         out.Result.Series,
					"expected":       out.Result.Expected(),
				})
			}

			tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
			fmt.Fprintln(tw, "month\tyear\tp10\tmedian\tp90\tinvested\t")
			for _, s := range out.Result.Series {
				fmt.Fprintf(tw, "%d\t%s\t%.2f\t%.2f\t%.2f\t%.2f\t\n", s.Month, s.Year, s.P10, s.Median, s.P90, s.Invested)
			}
			if err := tw.Flush(); err != nil {
				return err
			}
			fmt.Fprintf(w, "seed=%d scenarios=%d profile=%s elapsed=%s\n",
				out.Result.Seed, out.Result.Scenarios, out.Profile.ID, out.Result.Elapsed)
			return nil
		},
	}
	addRunFlags(cmd)
	cmd.Flags().String("out", "", "Also write the series to a .csv, .xlsx or .pdf file")
	return cmd
}

func writeExport(path string, r export.Report) error {
	format, err := export.ParseFormat(filepath.Ext(path))
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := export.Write(f, format, r); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}

func newExpectedCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "expected",
		Short: "Print the pessimistic, expected and optimistic final values",
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := runProjection(cmd)
			if err != nil {
				return err
			}
			ev := out.Result.Expected()
			w := cmd.OutOrStdout()

			if jsonOut, _ := cmd.Flags().GetBool("json"); jsonOut {
				return json.NewEncoder(w).Encode(map[string]interface{}{
					"seed":     out.Result.Seed,
					"profile":  out.Profile.ID,
					"expected": ev,
				})
			}

			currency, _ := cmd.Flags().GetString("currency")
			fmt.Fprintf(w, "After %s years (%s profile, %d scenarios):\n",
				model.YearLabel(out.Config.HorizonMonths), out.Profile.ID, out.Result.Scenarios)
			fmt.Fprintf(w, "  Pessimistic  %s\n", export.FormatMoney(ev.Pessimistic, currency))
			fmt.Fprintf(w, "  Expected     %s\n", export.FormatMoney(ev.Expected, currency))
			fmt.Fprintf(w, "  Optimistic   %s\n", export.FormatMoney(ev.Optimistic, currency))
			fmt.Fprintf(w, "  Invested     %s\n", export.FormatMoney(ev.Invested, currency))
			fmt.Fprintf(w, "seed=%d\n", out.Result.Seed)
			return nil
		},
	}
	addRunFlags(cmd)
	return cmd
}

func newReportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Render a markdown report of a projection in the terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := runProjection(cmd)
			if err != nil {
				return err
			}
			md, err := export.Markdown(reportOf(cmd, out))
			if err != nil {
				return err
			}
			if raw, _ := cmd.Flags().GetBool("raw"); raw {
				_, err = fmt.Fprint(cmd.OutOrStdout(), md)
				return err
			}
			width, _ := cmd.Flags().GetInt("width")
			rendered, err := export.RenderTerminal(md, width)
			if err != nil {
				return err
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), rendered)
			return err
		},
	}
	addRunFlags(cmd)
	cmd.Flags().Bool("raw", false, "Print markdown without terminal styling")
	cmd.Flags().Int("width", 100, "Word wrap width")
	return cmd
}
