package stages

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/tripgenie/tripgenie/errors"
	"github.com/tripgenie/tripgenie/pipeline"
	"github.com/tripgenie/tripgenie/trip"
)

// Scheduling tuning
const (
	// ActivitiesPerDay sizes the candidate pool relative to trip length
	ActivitiesPerDay = 4

	// FirstActivityHour is the start of each day's first activity
	FirstActivityHour = 9

	// ActivitySpacingHours separates consecutive activity start times
	ActivitySpacingHours = 3

	// ActivityDurationHours is the nominal length of one activity
	ActivityDurationHours = 2.0

	// DefaultPrecipitationAvoidThreshold is the rain chance (percent) at
	// which a forecast day counts as wet for the outdoor-first bias
	DefaultPrecipitationAvoidThreshold = 60.0
)

// outdoorKeywords tags a candidate as an outdoor activity when any keyword
// appears in its category text
var outdoorKeywords = []string{"park", "trail", "outdoor", "beach", "garden", "mountain"}

// Schedule assembles the day-by-day itinerary from the ranked candidates.
// When the forecast holds a wet day (rain chance at or above the threshold)
// and any candidate is outdoor-tagged, candidates are reordered outdoor-first
// so outdoor visits land on the earlier, typically drier, days. This is a
// soft bias, not a per-day assignment.
type Schedule struct {
	precipThreshold float64
	logger          *zap.SugaredLogger
}

// NewSchedule creates the itinerary scheduling stage. A threshold of zero
// selects DefaultPrecipitationAvoidThreshold.
func NewSchedule(precipThreshold float64, logger *zap.SugaredLogger) *Schedule {
	if precipThreshold <= 0 {
		precipThreshold = DefaultPrecipitationAvoidThreshold
	}
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &Schedule{precipThreshold: precipThreshold, logger: logger}
}

func (s *Schedule) Name() string { return "schedule" }

func (s *Schedule) Process(_ context.Context, st *pipeline.State, meta pipeline.Metadata) (*pipeline.State, error) {
	if st.Preferences == nil || st.Destination == nil {
		return nil, errors.New("scheduling requires validated preferences and a geocoded destination")
	}

	prefs := st.Preferences
	days := prefs.DurationDays

	top := append([]trip.Place(nil), st.Places...)
	if maxPlaces := days * ActivitiesPerDay; len(top) > maxPlaces {
		top = top[:maxPlaces]
	}

	outdoor := make(map[string]bool, len(top))
	for _, p := range top {
		if IsOutdoor(p.Category) {
			outdoor[p.Name] = true
		}
	}

	if len(outdoor) > 0 && s.wetDayAhead(st.Forecast) {
		sort.SliceStable(top, func(i, j int) bool {
			oi, oj := outdoor[top[i].Name], outdoor[top[j].Name]
			if oi != oj {
				return oi
			}
			return top[i].RelevanceScore > top[j].RelevanceScore
		})
	}

	perDay := len(top) / days

	dayPlans := make([]trip.DayItinerary, 0, days)
	for dayNum := 0; dayNum < days; dayNum++ {
		date := prefs.StartDate.AddDate(0, 0, dayNum)

		var dayPlaces []trip.Place
		if perDay > 0 {
			dayPlaces = top[dayNum*perDay : dayNum*perDay+perDay]
		}

		var dayWeather *trip.Weather
		for i := range st.Forecast {
			if sameDay(st.Forecast[i].Date, date) {
				w := st.Forecast[i]
				dayWeather = &w
				break
			}
		}

		activities := make([]trip.Activity, 0, len(dayPlaces))
		hour := FirstActivityHour
		for _, place := range dayPlaces {
			activityType := "sightseeing"
			if outdoor[place.Name] {
				activityType = "outdoor"
			}
			activities = append(activities, trip.Activity{
				Time:          fmt.Sprintf("%02d:00", hour),
				Place:         place,
				DurationHours: ActivityDurationHours,
				ActivityType:  activityType,
				Notes:         fmt.Sprintf("Visit %s", place.Name),
			})
			hour += ActivitySpacingHours
		}

		dayPlans = append(dayPlans, trip.DayItinerary{
			DayNumber:       dayNum + 1,
			Date:            date,
			Weather:         dayWeather,
			Activities:      activities,
			TotalDistanceKm: dayDistanceKm(dayPlaces),
		})
	}

	totalDistance := 0.0
	for _, day := range dayPlans {
		totalDistance += day.TotalDistanceKm
	}

	itinerary := &trip.Itinerary{
		Destination:     st.Destination.Name,
		StartDate:       prefs.StartDate,
		EndDate:         prefs.StartDate.AddDate(0, 0, days-1),
		Days:            dayPlans,
		TotalDistanceKm: totalDistance,
		Preferences:     *prefs,
	}
	if st.Origin != nil {
		itinerary.Origin = st.Origin.Name
	}

	s.logger.Infow("Assembled itinerary", "days", days, "scheduled_places", perDay*days)

	next := st.Clone()
	next.Itinerary = itinerary
	meta["itinerary_generated"] = true
	return next, nil
}

// wetDayAhead reports whether any forecast day crosses the avoid threshold
func (s *Schedule) wetDayAhead(forecast []trip.Weather) bool {
	for _, w := range forecast {
		if w.PrecipitationChance >= s.precipThreshold {
			return true
		}
	}
	return false
}

// dayDistanceKm is the walking/driving distance along the day's activity
// sequence
func dayDistanceKm(places []trip.Place) float64 {
	waypoints := make([][2]float64, 0, len(places))
	for _, p := range places {
		waypoints = append(waypoints, [2]float64{p.Location.Latitude, p.Location.Longitude})
	}
	return trip.RouteDistanceKm(waypoints)
}

// IsOutdoor reports whether a category text describes an outdoor place
func IsOutdoor(category string) bool {
	lower := strings.ToLower(category)
	for _, keyword := range outdoorKeywords {
		if strings.Contains(lower, keyword) {
			return true
		}
	}
	return false
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
