package commands

import (
	"context"
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/tripgenie/tripgenie/config"
	"github.com/tripgenie/tripgenie/errors"
	"github.com/tripgenie/tripgenie/logger"
	"github.com/tripgenie/tripgenie/trip"
)

// PlanCmd generates one itinerary from the command line
var PlanCmd = &cobra.Command{
	Use:   "plan",
	Short: "Generate a travel itinerary",
	Long: `Run the full itinerary pipeline once and render the result.

Examples:
  tripgenie plan --destination "Paris, France" --days 3
  tripgenie plan --destination "Kyoto, Japan" --days 5 --interests temples,food --budget high --style relaxed`,
	RunE: runPlan,
}

var (
	planDestination string
	planOrigin      string
	planDays        int
	planInterests   []string
	planBudget      string
	planStyle       string
	planStartDate   string
)

func init() {
	PlanCmd.Flags().StringVar(&planDestination, "destination", "", "Trip destination (required)")
	PlanCmd.Flags().StringVar(&planOrigin, "origin", "", "Trip origin")
	PlanCmd.Flags().IntVar(&planDays, "days", 3, "Trip duration in days (1-30)")
	PlanCmd.Flags().StringSliceVar(&planInterests, "interests", nil, "Comma-separated interests (default: sightseeing,culture,food)")
	PlanCmd.Flags().StringVar(&planBudget, "budget", "", "Budget tier: low, medium, high")
	PlanCmd.Flags().StringVar(&planStyle, "style", "", "Travel style: relaxed, moderate, packed")
	PlanCmd.Flags().StringVar(&planStartDate, "start-date", "", "Start date (YYYY-MM-DD, default: a week from today)")
	PlanCmd.MarkFlagRequired("destination")
}

func runPlan(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return errors.Wrap(err, "failed to load configuration")
	}

	p, _ := buildPlanner(cfg, logger.Logger)

	input := trip.PreferencesInput{
		Destination:  planDestination,
		Origin:       planOrigin,
		DurationDays: planDays,
		Interests:    planInterests,
		Budget:       planBudget,
		TravelStyle:  planStyle,
		StartDate:    planStartDate,
	}

	spinner, _ := pterm.DefaultSpinner.Start("Generating itinerary for " + planDestination)
	itinerary, meta, err := p.GenerateItinerary(context.Background(), input)
	if err != nil {
		spinner.Fail("Itinerary generation failed")
		return err
	}
	spinner.Success("Itinerary ready")

	renderItinerary(itinerary)

	if count, ok := meta["places_count"]; ok {
		pterm.Debug.Printfln("Considered %v candidate places", count)
	}
	return nil
}

func renderItinerary(it *trip.Itinerary) {
	header := fmt.Sprintf("%s (%s — %s)",
		it.Destination,
		it.StartDate.Format(trip.DateLayout),
		it.EndDate.Format(trip.DateLayout))
	pterm.DefaultSection.Println(header)

	for _, day := range it.Days {
		title := fmt.Sprintf("Day %d — %s", day.DayNumber, day.Date.Format("Mon Jan 2"))
		if day.Weather != nil {
			title += fmt.Sprintf("  (%s, %.0f%% rain)", day.Weather.Condition, day.Weather.PrecipitationChance)
		}
		pterm.DefaultSection.WithLevel(2).Println(title)

		if len(day.Activities) == 0 {
			pterm.Println(pterm.Gray("  free day"))
			continue
		}

		rows := pterm.TableData{{"Time", "Place", "Type", "Cost"}}
		for _, act := range day.Activities {
			cost := "-"
			if act.EstimatedCost != nil {
				cost = fmt.Sprintf("%.2f", *act.EstimatedCost)
			}
			rows = append(rows, []string{act.Time, act.Place.Name, act.ActivityType, cost})
		}
		pterm.DefaultTable.WithHasHeader().WithData(rows).Render()
	}

	if it.EstimatedTotalCost != nil {
		pterm.Info.Printfln("Estimated total cost: %.2f", *it.EstimatedTotalCost)
	}
}
