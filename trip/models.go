// Package trip defines the TripGenie domain model: traveler preferences,
// geocoded locations, candidate places, forecasts, and the assembled
// itinerary, plus the response shapes of the external collaborators.
package trip

import (
	"time"
)

// Location is a geographic location with coordinates
type Location struct {
	Name      string  `json:"name"`
	Address   string  `json:"address"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	PlaceID   string  `json:"place_id,omitempty"`
}

// Place is a tourist place or attraction
type Place struct {
	Name     string   `json:"name"`
	Location Location `json:"location"`
	Category string   `json:"category"`
	Rating   *float64 `json:"rating,omitempty"`

	Description     string  `json:"description,omitempty"`
	PopularityScore float64 `json:"popularity_score"`
	RelevanceScore  float64 `json:"relevance_score"`

	// Great-circle distance to the trip destination, in kilometers.
	// Set by the distance stage; nil before it runs.
	DistanceFromDestination *float64 `json:"distance_from_destination,omitempty"`
}

// Weather holds forecast information for a specific day
type Weather struct {
	Date                time.Time `json:"date"`
	Condition           string    `json:"condition"`
	TemperatureMax      float64   `json:"temperature_max"`
	TemperatureMin      float64   `json:"temperature_min"`
	PrecipitationChance float64   `json:"precipitation_chance"` // percent, 0-100
	Description         string    `json:"description"`
}

// Activity is a single scheduled activity in the itinerary
type Activity struct {
	Time          string   `json:"time"` // time of day, "HH:MM"
	Place         Place    `json:"place"`
	DurationHours float64  `json:"duration_hours"`
	ActivityType  string   `json:"activity_type"`
	Notes         string   `json:"notes,omitempty"`
	EstimatedCost *float64 `json:"estimated_cost,omitempty"`
}

// DayItinerary is the plan for a single day
type DayItinerary struct {
	DayNumber       int        `json:"day_number"` // 1-based
	Date            time.Time  `json:"date"`
	Weather         *Weather   `json:"weather,omitempty"`
	Activities      []Activity `json:"activities"`
	TotalDistanceKm float64    `json:"total_distance_km"`
	EstimatedCost   *float64   `json:"estimated_cost,omitempty"`
}

// Itinerary is the complete trip plan
type Itinerary struct {
	Destination        string         `json:"destination"`
	Origin             string         `json:"origin,omitempty"`
	StartDate          time.Time      `json:"start_date"`
	EndDate            time.Time      `json:"end_date"`
	Days               []DayItinerary `json:"days"`
	TotalDistanceKm    float64        `json:"total_distance_km"`
	EstimatedTotalCost *float64       `json:"estimated_total_cost,omitempty"`
	Preferences        Preferences    `json:"preferences"`
}

// PlaceHit is one result from the places-search collaborator
type PlaceHit struct {
	PlaceID   string   `json:"place_id"`
	Name      string   `json:"name"`
	Address   string   `json:"address"`
	Latitude  float64  `json:"latitude"`
	Longitude float64  `json:"longitude"`
	Types     []string `json:"types"`
	Rating    *float64 `json:"rating,omitempty"`
	Vicinity  string   `json:"vicinity,omitempty"`
}

// Forecast is one per-day record from the forecast collaborator,
// before the weather stage attaches calendar dates.
type Forecast struct {
	Condition           string  `json:"condition"`
	Description         string  `json:"description"`
	TemperatureMax      float64 `json:"temperature_max"`
	TemperatureMin      float64 `json:"temperature_min"`
	PrecipitationChance float64 `json:"precipitation_chance"` // percent, 0-100
}

// Suggestion is one location autocomplete prediction
type Suggestion struct {
	Description   string `json:"description"`
	PlaceID       string `json:"place_id"`
	MainText      string `json:"main_text,omitempty"`
	SecondaryText string `json:"secondary_text,omitempty"`
}
