package stages

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tripgenie/tripgenie/errors"
	"github.com/tripgenie/tripgenie/pipeline"
	"github.com/tripgenie/tripgenie/trip"
)

func TestValidate(t *testing.T) {
	london := trip.Location{Name: "London, United Kingdom", Latitude: 51.5074, Longitude: -0.1278}
	geocoder := &fakeGeocoder{locations: map[string]trip.Location{
		"Paris, France":          parisLocation,
		"London, United Kingdom": london,
	}}
	stage := NewValidate(geocoder, nil)

	st := pipeline.NewState(trip.PreferencesInput{
		Destination:  "Paris, France",
		Origin:       "London, United Kingdom",
		DurationDays: 3,
		Interests:    []string{" Museums ", "FOOD"},
		StartDate:    "2026-09-07",
	})
	meta := pipeline.Metadata{}

	next, err := stage.Process(context.Background(), st, meta)
	require.NoError(t, err)

	// Raw replaced by validated preferences
	assert.Nil(t, next.Raw)
	require.NotNil(t, next.Preferences)
	assert.Equal(t, []string{"museums", "food"}, next.Preferences.Interests)
	assert.Equal(t, trip.BudgetMedium, next.Preferences.Budget)
	assert.Equal(t, trip.StyleModerate, next.Preferences.TravelStyle)

	require.NotNil(t, next.Destination)
	assert.InDelta(t, 48.8566, next.Destination.Latitude, 0.0001)
	require.NotNil(t, next.Origin)
	assert.InDelta(t, 51.5074, next.Origin.Latitude, 0.0001)

	assert.Equal(t, true, meta["validated"])
	assert.Equal(t, true, meta["geocoded"])
}

func TestValidateInvalidPreferences(t *testing.T) {
	stage := NewValidate(&fakeGeocoder{}, nil)

	cases := []struct {
		name  string
		input trip.PreferencesInput
	}{
		{"missing destination", trip.PreferencesInput{DurationDays: 3}},
		{"duration too short", trip.PreferencesInput{Destination: "Paris", DurationDays: 0}},
		{"duration too long", trip.PreferencesInput{Destination: "Paris", DurationDays: 31}},
		{"bad budget", trip.PreferencesInput{Destination: "Paris", DurationDays: 3, Budget: "extravagant"}},
		{"bad date", trip.PreferencesInput{Destination: "Paris", DurationDays: 3, StartDate: "next tuesday"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := stage.Process(context.Background(), pipeline.NewState(tc.input), pipeline.Metadata{})
			require.Error(t, err)
			assert.True(t, errors.IsInvalidRequest(err), "want invalid-request kind, got %v", err)
		})
	}
}

func TestValidateUnknownDestination(t *testing.T) {
	stage := NewValidate(&fakeGeocoder{}, nil)

	st := pipeline.NewState(trip.PreferencesInput{Destination: "Xyzzyville", DurationDays: 3})
	_, err := stage.Process(context.Background(), st, pipeline.Metadata{})
	require.Error(t, err)
	assert.True(t, errors.IsNotFound(err))
}

func TestValidateOriginFailureIsNotFatal(t *testing.T) {
	geocoder := &fakeGeocoder{locations: map[string]trip.Location{"Paris, France": parisLocation}}
	stage := NewValidate(geocoder, nil)

	st := pipeline.NewState(trip.PreferencesInput{
		Destination:  "Paris, France",
		Origin:       "Atlantis",
		DurationDays: 3,
	})
	next, err := stage.Process(context.Background(), st, pipeline.Metadata{})
	require.NoError(t, err)
	assert.Nil(t, next.Origin)
	assert.NotNil(t, next.Destination)
}

func TestValidateDefaultStartDate(t *testing.T) {
	geocoder := &fakeGeocoder{locations: map[string]trip.Location{"Paris, France": parisLocation}}
	stage := NewValidate(geocoder, nil)
	now := time.Date(2026, 8, 31, 15, 30, 0, 0, time.UTC)
	stage.now = func() time.Time { return now }

	st := pipeline.NewState(trip.PreferencesInput{Destination: "Paris, France", DurationDays: 2})
	next, err := stage.Process(context.Background(), st, pipeline.Metadata{})
	require.NoError(t, err)

	// A week out from "today", at day granularity
	assert.Equal(t, time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC), next.Preferences.StartDate)
}

func TestValidateIdempotent(t *testing.T) {
	geocoder := &fakeGeocoder{locations: map[string]trip.Location{"Paris, France": parisLocation}}
	stage := NewValidate(geocoder, nil)

	st := pipeline.NewState(trip.PreferencesInput{
		Destination:  "Paris, France",
		DurationDays: 3,
		StartDate:    "2026-09-07",
	})
	first, err := stage.Process(context.Background(), st, pipeline.Metadata{})
	require.NoError(t, err)

	second, err := stage.Process(context.Background(), first, pipeline.Metadata{})
	require.NoError(t, err)

	assert.Equal(t, first.Preferences, second.Preferences)
	assert.Equal(t, first.Destination, second.Destination)

	// The second pass reused the already-geocoded destination
	assert.Len(t, geocoder.calls, 1)
}
