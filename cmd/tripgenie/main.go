package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tripgenie/tripgenie/cmd/tripgenie/commands"
	"github.com/tripgenie/tripgenie/logger"
)

var rootCmd = &cobra.Command{
	Use:   "tripgenie",
	Short: "TripGenie - itinerary planning pipeline",
	Long: `TripGenie builds day-by-day travel itineraries from a traveler's
preferences by running a sequential pipeline: validation, place discovery,
distance filtering, weather, ranking, scheduling, and cost estimation.

Available commands:
  serve   - Start the TripGenie HTTP server
  plan    - Generate an itinerary from the command line
  config  - Inspect resolved configuration
  version - Show version information

Examples:
  tripgenie serve
  tripgenie plan --destination "Paris, France" --days 3 --interests art,food
  tripgenie config show`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := logger.Initialize(false); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().CountP("verbose", "v", "Increase output verbosity (repeat for more detail: -v, -vv)")

	rootCmd.AddCommand(commands.ServeCmd)
	rootCmd.AddCommand(commands.PlanCmd)
	rootCmd.AddCommand(commands.ConfigCmd)
	rootCmd.AddCommand(commands.VersionCmd)
}

func main() {
	defer logger.Cleanup()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
