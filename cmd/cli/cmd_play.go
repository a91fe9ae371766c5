package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"portfolio-projection/internal/export"
	"portfolio-projection/internal/playback"

	"github.com/spf13/cobra"
)

func newPlayCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "play",
		Short: "Replay a projection month by month",
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := runProjection(cmd)
			if err != nil {
				return err
			}
			interval, _ := cmd.Flags().GetDuration("interval")
			player, err := playback.New(out.Result.Series, interval)
			if err != nil {
				return err
			}
			jsonOut, _ := cmd.Flags().GetBool("json")
			currency, _ := cmd.Flags().GetString("currency")
			w := cmd.OutOrStdout()
			enc := json.NewEncoder(w)

			// Scale the bar to the final optimistic value.
			peak := out.Result.Expected().Optimistic
			for frame := range player.Frames(cmd.Context()) {
				if jsonOut {
					if err := enc.Encode(frame); err != nil {
						return err
					}
					continue
				}
				fmt.Fprintf(w, "month %3d/%d  %-40s %s\n", frame.Month, frame.Total,
					bar(frame.Current.Median, peak, 40), export.FormatMoney(frame.Current.Median, currency))
			}
			return cmd.Context().Err()
		},
	}
	addRunFlags(cmd)
	cmd.Flags().Duration("interval", playback.DefaultInterval, "Pause between months")
	return cmd
}

func bar(v, max float64, width int) string {
	if max <= 0 {
		return ""
	}
	n := int(v / max * float64(width))
	if n < 0 {
		n = 0
	}
	if n > width {
		n = width
	}
	return strings.Repeat("#", n)
}
