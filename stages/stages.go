// Package stages implements the seven transformation steps of the itinerary
// pipeline: validate, discover, distance, weather, rank, schedule, cost.
//
// Each stage depends only on the narrow collaborator interfaces declared
// here, so tests drive the pipeline with fakes and production wires in the
// maps, weather, and ai clients.
package stages

import (
	"context"

	"github.com/tripgenie/tripgenie/trip"
)

// Geocoder resolves a free-text location name to coordinates.
// Implementations return errors.ErrNotFound when there is no match.
type Geocoder interface {
	Geocode(ctx context.Context, address string) (*trip.Location, error)
}

// PlaceSearcher finds candidate places for a text query, biased toward a
// location
type PlaceSearcher interface {
	SearchPlaces(ctx context.Context, query string, near trip.Location) ([]trip.PlaceHit, error)
}

// Forecaster returns up to days daily forecast records for a coordinate
// pair. Returning fewer days than requested is not an error.
type Forecaster interface {
	Forecast(ctx context.Context, lat, lng float64, days int) ([]trip.Forecast, error)
}
