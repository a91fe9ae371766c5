package main

import (
	"portfolio-projection/internal/config"
	"portfolio-projection/internal/logging"
	"portfolio-projection/internal/mcp"
	"portfolio-projection/internal/model"
	"portfolio-projection/internal/service"

	"github.com/spf13/cobra"
)

func newMCPCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Serve projections as MCP tools over stdio",
		Long: `Start an MCP (Model Context Protocol) server on stdin/stdout that exposes
the simulate_portfolio, expected_values and list_profiles tools.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			maxScenarios, _ := cmd.Flags().GetInt("max-scenarios")
			maxYears, _ := cmd.Flags().GetInt("max-horizon-years")
			level, _ := cmd.Flags().GetString("log-level")

			svc := newService(cmd, config.EngineConfig{}, service.Limits{
				MaxScenarios:     maxScenarios,
				MaxHorizonMonths: model.HorizonMonthsFromYears(maxYears),
			})
			server := mcp.NewServer(&mcp.Config{
				Name:    "portfolio-projection",
				Version: version,
				// stdout carries the protocol
				Logger: logging.NewLogger(level, cmd.ErrOrStderr()),
			}, svc)
			return server.Run(cmd.Context())
		},
	}
	cmd.Flags().Int("max-scenarios", 100000, "Largest scenario count a tool call may request")
	cmd.Flags().Int("max-horizon-years", 100, "Longest horizon a tool call may request")
	return cmd
}
