package stages

import (
	"context"
	"time"

	"github.com/tripgenie/tripgenie/ai"
	"github.com/tripgenie/tripgenie/errors"
	"github.com/tripgenie/tripgenie/pipeline"
	"github.com/tripgenie/tripgenie/trip"
)

// fakeGeocoder resolves from a fixed table, not-found otherwise
type fakeGeocoder struct {
	locations map[string]trip.Location
	calls     []string
}

func (g *fakeGeocoder) Geocode(_ context.Context, address string) (*trip.Location, error) {
	g.calls = append(g.calls, address)
	loc, ok := g.locations[address]
	if !ok {
		return nil, errors.Wrapf(errors.ErrNotFound, "location %q not found", address)
	}
	return &loc, nil
}

// fakeSearcher returns canned hits per query
type fakeSearcher struct {
	hits    map[string][]trip.PlaceHit
	err     error
	queries []string
}

func (s *fakeSearcher) SearchPlaces(_ context.Context, query string, _ trip.Location) ([]trip.PlaceHit, error) {
	s.queries = append(s.queries, query)
	if s.err != nil {
		return nil, s.err
	}
	return s.hits[query], nil
}

// fakeForecaster returns canned forecasts or an error
type fakeForecaster struct {
	forecasts []trip.Forecast
	err       error
}

func (f *fakeForecaster) Forecast(_ context.Context, _, _ float64, days int) ([]trip.Forecast, error) {
	if f.err != nil {
		return nil, f.err
	}
	if len(f.forecasts) > days {
		return f.forecasts[:days], nil
	}
	return f.forecasts, nil
}

// fakeChat returns a canned LLM response or an error
type fakeChat struct {
	content string
	err     error
}

func (c *fakeChat) Chat(_ context.Context, _ ai.ChatRequest) (*ai.ChatResponse, error) {
	if c.err != nil {
		return nil, c.err
	}
	return &ai.ChatResponse{Content: c.content, Model: "fake"}, nil
}

var parisLocation = trip.Location{
	Name:      "Paris, France",
	Address:   "Paris, France",
	Latitude:  48.8566,
	Longitude: 2.3522,
	PlaceID:   "paris-1",
}

// validatedState builds a state as the validate stage would leave it
func validatedState(days int, style trip.TravelStyle) *pipeline.State {
	return &pipeline.State{
		Preferences: &trip.Preferences{
			Destination:  "Paris, France",
			DurationDays: days,
			Interests:    []string{"museums", "food"},
			Budget:       trip.BudgetMedium,
			TravelStyle:  style,
			StartDate:    time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC),
		},
		Destination: &parisLocation,
	}
}

func rated(v float64) *float64 { return &v }

// placeAt builds a candidate at an offset (in degrees latitude) from Paris
func placeAt(name, category string, latOffset float64, rating *float64) trip.Place {
	return trip.Place{
		Name: name,
		Location: trip.Location{
			Name:      name,
			Latitude:  parisLocation.Latitude + latOffset,
			Longitude: parisLocation.Longitude,
			PlaceID:   name,
		},
		Category: category,
		Rating:   rating,
	}
}
