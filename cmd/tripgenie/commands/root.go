// Package commands implements the tripgenie CLI subcommands.
package commands

import (
	"go.uber.org/zap"

	"github.com/tripgenie/tripgenie/ai"
	"github.com/tripgenie/tripgenie/config"
	"github.com/tripgenie/tripgenie/logger"
	"github.com/tripgenie/tripgenie/maps"
	"github.com/tripgenie/tripgenie/planner"
	"github.com/tripgenie/tripgenie/weather"
)

// buildPlanner wires the production collaborators from config. The maps
// client is returned separately because the server also uses it directly
// for the location helper endpoints.
func buildPlanner(cfg *config.Config, log *zap.SugaredLogger) (*planner.Planner, *maps.Client) {
	if log == nil {
		log = logger.Logger
	}

	mapsClient := maps.NewClient(maps.Config{
		APIKey:            cfg.Google.APIKey,
		RequestsPerSecond: cfg.Google.RequestsPerSecond,
		Logger:            log.Named("maps"),
	})
	weatherClient := weather.NewClient(weather.Config{
		BaseURL:        cfg.Weather.BaseURL,
		TimeoutSeconds: cfg.Weather.TimeoutSeconds,
		Logger:         log.Named("weather"),
	})
	chat := ai.NewClientFromConfig(cfg, log.Named("ai"))

	p := planner.New(planner.Collaborators{
		Geocoder:   mapsClient,
		Searcher:   mapsClient,
		Forecaster: weatherClient,
		Chat:       chat,
	}, cfg.Pipeline, log)

	return p, mapsClient
}
