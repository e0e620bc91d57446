package stages

import (
	"context"
	"math"
	"strings"

	"go.uber.org/zap"

	"github.com/tripgenie/tripgenie/errors"
	"github.com/tripgenie/tripgenie/pipeline"
	"github.com/tripgenie/tripgenie/trip"
)

// DefaultActivityCost applies when no keyword matches a category
const DefaultActivityCost = 10

// categoryCost is one keyword → base cost entry. Order matters: the first
// matching keyword wins.
type categoryCost struct {
	keyword string
	cost    float64
}

var baseCosts = []categoryCost{
	{"museum", 20},
	{"park", 0},
	{"gallery", 15},
	{"historic", 25},
	{"restaurant", 30},
	{"sightseeing", 10},
	{"outdoor", 5},
}

// Cost attaches per-activity, per-day, and total cost estimates to the
// itinerary: an ordered keyword lookup on the category text, scaled by the
// budget tier.
type Cost struct {
	logger *zap.SugaredLogger
}

// NewCost creates the cost estimation stage
func NewCost(logger *zap.SugaredLogger) *Cost {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &Cost{logger: logger}
}

func (s *Cost) Name() string { return "cost" }

func (s *Cost) Process(_ context.Context, st *pipeline.State, meta pipeline.Metadata) (*pipeline.State, error) {
	if st.Itinerary == nil {
		return nil, errors.New("no itinerary to estimate costs for")
	}

	next := st.Clone()
	itinerary := *st.Itinerary
	itinerary.Days = append([]trip.DayItinerary(nil), st.Itinerary.Days...)

	multiplier := itinerary.Preferences.Budget.CostMultiplier()

	total := 0.0
	for d := range itinerary.Days {
		day := &itinerary.Days[d]
		day.Activities = append([]trip.Activity(nil), day.Activities...)

		dayCost := 0.0
		for a := range day.Activities {
			cost := round2(BaseCost(day.Activities[a].Place.Category) * multiplier)
			day.Activities[a].EstimatedCost = &cost
			dayCost += cost
		}
		dayCost = round2(dayCost)
		day.EstimatedCost = &dayCost
		total += dayCost
	}
	total = round2(total)
	itinerary.EstimatedTotalCost = &total

	s.logger.Infow("Estimated trip cost", "total", total, "budget", itinerary.Preferences.Budget)

	next.Itinerary = &itinerary
	meta["cost_estimated"] = true
	meta["total_cost"] = total
	return next, nil
}

// BaseCost maps a category text to its base activity cost via ordered
// keyword lookup
func BaseCost(category string) float64 {
	lower := strings.ToLower(category)
	for _, entry := range baseCosts {
		if strings.Contains(lower, entry.keyword) {
			return entry.cost
		}
	}
	return DefaultActivityCost
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
