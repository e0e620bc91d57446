package stages

import (
	"context"
	"sort"

	"go.uber.org/zap"

	"github.com/tripgenie/tripgenie/errors"
	"github.com/tripgenie/tripgenie/pipeline"
	"github.com/tripgenie/tripgenie/trip"
)

// Distance-cap tuning
const (
	// BaseDistancePerDayKm scales the reachable radius with trip length
	BaseDistancePerDayKm = 40

	// AbsoluteMaxDistanceKm caps the radius regardless of trip length
	AbsoluteMaxDistanceKm = 200
)

// Distance computes each candidate's great-circle distance to the
// destination, drops candidates beyond the duration-scaled cap, and sorts
// survivors nearest first.
type Distance struct {
	logger *zap.SugaredLogger
}

// NewDistance creates the distance filtering stage
func NewDistance(logger *zap.SugaredLogger) *Distance {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &Distance{logger: logger}
}

func (s *Distance) Name() string { return "distance" }

func (s *Distance) Process(_ context.Context, st *pipeline.State, meta pipeline.Metadata) (*pipeline.State, error) {
	if st.Preferences == nil || st.Destination == nil {
		return nil, errors.New("distance filtering requires validated preferences and a geocoded destination")
	}

	maxDistance := MaxDistanceKm(st.Preferences.DurationDays, st.Preferences.TravelStyle)

	filtered := make([]trip.Place, 0, len(st.Places))
	for _, place := range st.Places {
		d := trip.HaversineKm(
			st.Destination.Latitude, st.Destination.Longitude,
			place.Location.Latitude, place.Location.Longitude,
		)
		place.DistanceFromDestination = &d
		if d <= float64(maxDistance) {
			filtered = append(filtered, place)
		}
	}

	sort.SliceStable(filtered, func(i, j int) bool {
		return *filtered[i].DistanceFromDestination < *filtered[j].DistanceFromDestination
	})

	s.logger.Infow("Filtered places by distance",
		"kept", len(filtered), "dropped", len(st.Places)-len(filtered), "max_distance_km", maxDistance)

	next := st.Clone()
	next.Places = filtered
	meta["filtered_count"] = len(filtered)
	meta["max_distance_km"] = maxDistance
	return next, nil
}

// MaxDistanceKm is the reachable radius for a trip: duration-scaled,
// pace-adjusted, clamped to the absolute ceiling
func MaxDistanceKm(durationDays int, style trip.TravelStyle) int {
	base := float64(durationDays * BaseDistancePerDayKm)
	capped := int(base * style.StyleMultiplier())
	if capped > AbsoluteMaxDistanceKm {
		return AbsoluteMaxDistanceKm
	}
	return capped
}
