// Package planner is the entry point for itinerary generation: it owns the
// fixed stage order and wraps the pipeline runner behind a single call.
package planner

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/tripgenie/tripgenie/ai"
	"github.com/tripgenie/tripgenie/config"
	"github.com/tripgenie/tripgenie/errors"
	"github.com/tripgenie/tripgenie/pipeline"
	"github.com/tripgenie/tripgenie/stages"
	"github.com/tripgenie/tripgenie/trip"
)

// Collaborators are the external services the pipeline consumes
type Collaborators struct {
	Geocoder   stages.Geocoder
	Searcher   stages.PlaceSearcher
	Forecaster stages.Forecaster
	Chat       ai.Client
}

// Planner generates itineraries by running the fixed seven-stage pipeline:
// validate → discover → distance → weather → rank → schedule → cost
type Planner struct {
	runner *pipeline.Runner
	logger *zap.SugaredLogger
}

// New assembles the pipeline from collaborators and tuning config
func New(collab Collaborators, cfg config.PipelineConfig, logger *zap.SugaredLogger) *Planner {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}

	stageList := []pipeline.Stage{
		stages.NewValidate(collab.Geocoder, logger),
		stages.NewDiscover(collab.Searcher, stages.DiscoverLimits{
			MaxQueries:  cfg.MaxSearchQueries,
			MaxPerQuery: cfg.MaxResultsPerQuery,
			MaxTotal:    cfg.MaxTotalPlaces,
		}, logger),
		stages.NewDistance(logger),
		stages.NewWeather(collab.Forecaster, logger),
		stages.NewRank(collab.Chat, stages.RankWeights{
			Relevance:  cfg.RelevanceWeight,
			Popularity: cfg.PopularityWeight,
		}, logger),
		stages.NewSchedule(cfg.PrecipitationAvoidThreshold, logger),
		stages.NewCost(logger),
	}

	timeout := time.Duration(cfg.StageTimeoutSeconds) * time.Second
	return &Planner{
		runner: pipeline.NewRunner("itinerary", stageList, timeout, logger),
		logger: logger,
	}
}

// GenerateItinerary runs the full pipeline for one trip request. On success
// it returns the completed itinerary and the run's metadata; on failure the
// first stage error, unmodified.
func (p *Planner) GenerateItinerary(ctx context.Context, input trip.PreferencesInput) (*trip.Itinerary, pipeline.Metadata, error) {
	result := p.runner.Run(ctx, pipeline.NewState(input))
	if !result.Success() {
		return nil, result.Meta, result.Err
	}
	if result.State.Itinerary == nil {
		return nil, result.Meta, errors.New("no itinerary generated")
	}
	return result.State.Itinerary, result.Meta, nil
}
