// Package server exposes the itinerary pipeline over HTTP: a thin JSON
// transport around the planner plus a few location helper endpoints for
// frontends.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/tripgenie/tripgenie/config"
	"github.com/tripgenie/tripgenie/pipeline"
	"github.com/tripgenie/tripgenie/trip"
)

// ShutdownTimeout bounds graceful shutdown on stop
const ShutdownTimeout = 10 * time.Second

// ItineraryGenerator is the planner surface the server consumes
type ItineraryGenerator interface {
	GenerateItinerary(ctx context.Context, input trip.PreferencesInput) (*trip.Itinerary, pipeline.Metadata, error)
}

// LocationService backs the location helper endpoints
type LocationService interface {
	Geocode(ctx context.Context, address string) (*trip.Location, error)
	Autocomplete(ctx context.Context, input string) ([]trip.Suggestion, error)
}

// Server is the TripGenie HTTP server
type Server struct {
	cfg       *config.Config
	generator ItineraryGenerator
	locations LocationService
	logger    *zap.SugaredLogger

	httpServer *http.Server
}

// New creates the HTTP server around a generator and location service
func New(cfg *config.Config, generator ItineraryGenerator, locations LocationService, logger *zap.SugaredLogger) *Server {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &Server{
		cfg:       cfg,
		generator: generator,
		locations: locations,
		logger:    logger,
	}
}

// Handler builds the route table
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", s.corsMiddleware(s.HandleHealth))
	mux.HandleFunc("/api/generate-itinerary", s.corsMiddleware(s.HandleGenerateItinerary))
	mux.HandleFunc("/api/autocomplete-location", s.corsMiddleware(s.HandleAutocompleteLocation))
	mux.HandleFunc("/api/validate-location", s.corsMiddleware(s.HandleValidateLocation))
	mux.HandleFunc("/api/interests", s.corsMiddleware(s.HandleInterests))
	return mux
}

// Start runs the server until ctx is cancelled, then shuts down gracefully
func (s *Server) Start(ctx context.Context) error {
	addr := fmt.Sprintf(":%d", s.cfg.GetServerPort())
	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		// Write timeout must outlast a full pipeline run (seven stages at
		// the per-stage guard each).
		WriteTimeout: 2 * time.Minute,
		IdleTimeout:  120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Infow("HTTP server listening", "addr", addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		return s.Shutdown()
	}
}

// Shutdown drains in-flight requests before closing
func (s *Server) Shutdown() error {
	if s.httpServer == nil {
		return nil
	}
	s.logger.Infow("Shutting down HTTP server")
	ctx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()
	return s.httpServer.Shutdown(ctx)
}

// corsMiddleware adds CORS headers using the configured allowed origins
func (s *Server) corsMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if origin != "" && s.originAllowed(origin) {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Credentials", "true")
		}
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next(w, r)
	}
}

func (s *Server) originAllowed(origin string) bool {
	for _, allowed := range s.cfg.Server.AllowedOrigins {
		if allowed == "*" || allowed == origin {
			return true
		}
	}
	return false
}
