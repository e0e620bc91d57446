package commands

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/tripgenie/tripgenie/config"
	"github.com/tripgenie/tripgenie/errors"
	"github.com/tripgenie/tripgenie/logger"
	"github.com/tripgenie/tripgenie/server"
)

// ServeCmd starts the TripGenie HTTP server
var ServeCmd = &cobra.Command{
	Use:     "serve",
	Aliases: []string{"server"},
	Short:   "Start the TripGenie HTTP server",
	Long:    `Launch the HTTP server exposing itinerary generation and location helper endpoints.`,
	RunE:    runServe,
}

var servePort int

func init() {
	ServeCmd.Flags().IntVar(&servePort, "port", 0, "Listen port (overrides config)")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return errors.Wrap(err, "failed to load configuration")
	}
	if servePort > 0 {
		cfg.Server.Port = &servePort
	}

	log := logger.Logger
	p, mapsClient := buildPlanner(cfg, log)

	if !mapsClient.IsConfigured() {
		log.Warn("Google API key not configured; geocoding and place search will fail")
	}

	pterm.DefaultSection.Println("TripGenie")
	pterm.Info.Printfln("Listening on port %d", cfg.GetServerPort())
	pterm.Info.Printfln("Local inference: %v", cfg.LocalInference.Enabled)

	srv := server.New(cfg, p, mapsClient, log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return srv.Start(ctx)
}
