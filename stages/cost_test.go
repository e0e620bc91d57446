package stages

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tripgenie/tripgenie/pipeline"
	"github.com/tripgenie/tripgenie/trip"
)

func TestBaseCost(t *testing.T) {
	cases := []struct {
		category string
		want     float64
	}{
		{"museum, tourist_attraction", 20},
		{"city park", 0},
		{"art gallery", 15},
		{"historic site", 25},
		{"restaurant, food", 30},
		{"sightseeing", 10},
		{"outdoor recreation", 5},
		{"bowling alley", 10}, // no keyword matches, default
		// museum listed before gallery: first match wins
		{"museum gallery", 20},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, BaseCost(tc.category), "category %q", tc.category)
	}
}

func costState(budget trip.Budget, categories ...string) *pipeline.State {
	st := validatedState(1, trip.StyleModerate)
	st.Preferences.Budget = budget

	activities := make([]trip.Activity, 0, len(categories))
	for i, cat := range categories {
		activities = append(activities, trip.Activity{
			Time:  "09:00",
			Place: trip.Place{Name: string(rune('a' + i)), Category: cat},
		})
	}
	st.Itinerary = &trip.Itinerary{
		Destination: "Paris, France",
		StartDate:   st.Preferences.StartDate,
		EndDate:     st.Preferences.StartDate,
		Days: []trip.DayItinerary{
			{DayNumber: 1, Date: st.Preferences.StartDate, Activities: activities},
		},
		Preferences: *st.Preferences,
	}
	return st
}

func TestCostEstimatesActivities(t *testing.T) {
	st := costState(trip.BudgetMedium, "museum", "city park", "restaurant")
	stage := NewCost(nil)

	meta := pipeline.Metadata{}
	next, err := stage.Process(context.Background(), st, meta)
	require.NoError(t, err)

	it := next.Itinerary
	day := it.Days[0]
	require.NotNil(t, day.Activities[0].EstimatedCost)
	assert.InDelta(t, 20, *day.Activities[0].EstimatedCost, 0.001)
	assert.InDelta(t, 0, *day.Activities[1].EstimatedCost, 0.001)
	assert.InDelta(t, 30, *day.Activities[2].EstimatedCost, 0.001)

	require.NotNil(t, day.EstimatedCost)
	assert.InDelta(t, 50, *day.EstimatedCost, 0.001)
	require.NotNil(t, it.EstimatedTotalCost)
	assert.InDelta(t, 50, *it.EstimatedTotalCost, 0.001)

	assert.Equal(t, true, meta["cost_estimated"])
	assert.InDelta(t, 50.0, meta["total_cost"].(float64), 0.001)
}

func TestCostBudgetMultipliers(t *testing.T) {
	cases := []struct {
		budget trip.Budget
		want   float64 // museum base 20 × multiplier
	}{
		{trip.BudgetLow, 16},
		{trip.BudgetMedium, 20},
		{trip.BudgetHigh, 28},
	}
	for _, tc := range cases {
		t.Run(string(tc.budget), func(t *testing.T) {
			stage := NewCost(nil)
			next, err := stage.Process(context.Background(), costState(tc.budget, "museum"), pipeline.Metadata{})
			require.NoError(t, err)
			assert.InDelta(t, tc.want, *next.Itinerary.Days[0].Activities[0].EstimatedCost, 0.001)
		})
	}
}

func TestCostFailsWithoutItinerary(t *testing.T) {
	stage := NewCost(nil)
	_, err := stage.Process(context.Background(), validatedState(1, trip.StyleModerate), pipeline.Metadata{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no itinerary")
}

func TestCostDoesNotMutateInput(t *testing.T) {
	st := costState(trip.BudgetMedium, "museum")
	stage := NewCost(nil)

	_, err := stage.Process(context.Background(), st, pipeline.Metadata{})
	require.NoError(t, err)

	assert.Nil(t, st.Itinerary.EstimatedTotalCost)
	assert.Nil(t, st.Itinerary.Days[0].Activities[0].EstimatedCost)
}
