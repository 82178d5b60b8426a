package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"ambientpi/internal/logging"
	"ambientpi/internal/modes"
)

// CreateStatusCmd creates the status command: fetch every configured mode
// once and print the result without touching any hardware.
func CreateStatusCmd() *cobra.Command {
	var latitude float64
	var longitude float64
	var timezone string
	var timeout time.Duration

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Fetch all modes once and print their status",
		Long: `Fetches every configured mode a single time and prints the label, ` +
			`description, LED color, and tone to stdout. Useful for checking data ` +
			`sources before wiring up hardware.`,
		Run: func(_ *cobra.Command, _ []string) {
			logging.Initialize(logging.Config{Level: "warn", Format: "text"})
			logger := logging.GetLogger("status")

			list := modes.Build(modes.BuildConfig{
				SystemInterval:  time.Minute,
				Latitude:        latitude,
				Longitude:       longitude,
				Timezone:        timezone,
				WeatherInterval: time.Minute,
			}, logger)

			failed := false
			for _, mode := range list {
				ctx, cancel := context.WithTimeout(context.Background(), timeout)
				st, err := mode.Source.Fetch(ctx)
				cancel()

				if err != nil {
					failed = true
					fmt.Printf("%-14s FAILED: %v\n", mode.Name, err)
					continue
				}
				fmt.Printf("%-14s %s\n", mode.Name, st.Description)
				fmt.Printf("%-14s color r=%.2f g=%.2f b=%.2f tone=%s\n", "", st.Color.R, st.Color.G, st.Color.B, st.Tone)
			}
			if failed {
				os.Exit(1)
			}
		},
	}

	cmd.Flags().Float64Var(&latitude, "latitude", 0, "Latitude for the weather mode")
	cmd.Flags().Float64Var(&longitude, "longitude", 0, "Longitude for the weather mode")
	cmd.Flags().StringVar(&timezone, "timezone", "auto", "Timezone for the weather forecast")
	cmd.Flags().DurationVar(&timeout, "timeout", 15*time.Second, "Per-mode fetch timeout")

	return cmd
}
