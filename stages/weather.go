package stages

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/tripgenie/tripgenie/errors"
	"github.com/tripgenie/tripgenie/pipeline"
	"github.com/tripgenie/tripgenie/trip"
)

// Weather attaches a per-day forecast for the destination. The forecast is
// best-effort: collaborator failures or partial coverage degrade to fewer
// (or zero) weather days but never fail the stage.
type Weather struct {
	forecaster Forecaster
	logger     *zap.SugaredLogger
}

// NewWeather creates the forecast stage
func NewWeather(forecaster Forecaster, logger *zap.SugaredLogger) *Weather {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &Weather{forecaster: forecaster, logger: logger}
}

func (s *Weather) Name() string { return "weather" }

func (s *Weather) Process(ctx context.Context, st *pipeline.State, meta pipeline.Metadata) (*pipeline.State, error) {
	if st.Preferences == nil || st.Destination == nil {
		return nil, errors.New("weather requires validated preferences and a geocoded destination")
	}

	start := st.Preferences.StartDate
	if start.IsZero() {
		start = time.Now().Truncate(24 * time.Hour)
	}

	var daily []trip.Weather
	forecasts, err := s.forecaster.Forecast(ctx,
		st.Destination.Latitude, st.Destination.Longitude,
		st.Preferences.DurationDays)
	if err != nil {
		s.logger.Warnw("Forecast unavailable, continuing without weather",
			"destination", st.Destination.Name, "error", err)
	} else {
		daily = make([]trip.Weather, 0, len(forecasts))
		for i, f := range forecasts {
			daily = append(daily, trip.Weather{
				Date:                start.AddDate(0, 0, i),
				Condition:           f.Condition,
				TemperatureMax:      f.TemperatureMax,
				TemperatureMin:      f.TemperatureMin,
				PrecipitationChance: f.PrecipitationChance,
				Description:         f.Description,
			})
		}
	}

	next := st.Clone()
	next.Forecast = daily
	meta["weather_days"] = len(daily)
	return next, nil
}
