package main

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"portfolio-projection/internal/analysis"
	"portfolio-projection/internal/export"
	"portfolio-projection/internal/service"

	"github.com/spf13/cobra"
)

func newCompareCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Rank every risk profile for the same plan",
		RunE: func(cmd *cobra.Command, args []string) error {
			req, engineCfg, err := buildRequest(cmd)
			if err != nil {
				return err
			}
			svc := newService(cmd, engineCfg, service.Limits{})
			outcomes, err := analysis.CompareProfiles(cmd.Context(), svc, req)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()

			if jsonOut, _ := cmd.Flags().GetBool("json"); jsonOut {
				return json.NewEncoder(w).Encode(map[string]interface{}{"comparison": outcomes})
			}

			currency, _ := cmd.Flags().GetString("currency")
			tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "RANK\tPROFILE\tPESSIMISTIC\tEXPECTED\tOPTIMISTIC\tGAIN")
			for _, o := range outcomes {
				fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\n", o.Rank, o.Profile.ID,
					export.FormatMoney(o.Pessimistic, currency),
					export.FormatMoney(o.Expected, currency),
					export.FormatMoney(o.Optimistic, currency),
					export.FormatMoney(o.Gain, currency))
			}
			return tw.Flush()
		},
	}
	addRunFlags(cmd)
	return cmd
}
