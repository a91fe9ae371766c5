package main

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"portfolio-projection/internal/config"
	"portfolio-projection/internal/model"
	"portfolio-projection/internal/service"

	"github.com/spf13/cobra"
)

func newProfilesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "profiles",
		Short: "List risk profile presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			profiles := newService(cmd, config.EngineConfig{}, service.Limits{}).Profiles()
			w := cmd.OutOrStdout()

			if jsonOut, _ := cmd.Flags().GetBool("json"); jsonOut {
				return json.NewEncoder(w).Encode(map[string]interface{}{
					"profiles": profiles,
					"default":  model.DefaultProfileID,
				})
			}

			tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tNAME\tRETURN\tVOLATILITY\tDESCRIPTION")
			for _, p := range profiles {
				id := p.ID
				if id == model.DefaultProfileID {
					id += " *"
				}
				fmt.Fprintf(tw, "%s\t%s\t%.2f%%\t%.2f%%\t%s\n", id, p.Name, p.ExpectedReturn, p.Volatility, p.Description)
			}
			return tw.Flush()
		},
	}
}
