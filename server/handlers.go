package server

import (
	"net/http"
	"strings"

	"github.com/tripgenie/tripgenie/errors"
	"github.com/tripgenie/tripgenie/pipeline"
	"github.com/tripgenie/tripgenie/trip"
	"github.com/tripgenie/tripgenie/version"
)

// AvailableInterests is the curated interest list offered to frontends
var AvailableInterests = []string{
	"nature", "culture", "food", "art", "history", "adventure",
	"nightlife", "shopping", "beaches", "mountains", "museums",
	"architecture", "photography", "wildlife", "sports",
}

// itineraryResponse is the generation envelope
type itineraryResponse struct {
	Success   bool              `json:"success"`
	Itinerary *trip.Itinerary   `json:"itinerary,omitempty"`
	Error     string            `json:"error,omitempty"`
	Metadata  pipeline.Metadata `json:"metadata,omitempty"`
}

// HandleHealth reports service status and collaborator configuration
func (s *Server) HandleHealth(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":            "healthy",
		"version":           version.Get().Version,
		"google_configured": s.cfg.Google.APIKey != "",
		"local_inference":   s.cfg.LocalInference.Enabled,
	})
}

// HandleGenerateItinerary runs the full pipeline for a preferences payload
func (s *Server) HandleGenerateItinerary(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}

	var input trip.PreferencesInput
	if err := readJSON(w, r, &input); err != nil {
		return
	}

	s.logger.Infow("Received itinerary request", "destination", input.Destination)

	itinerary, meta, err := s.generator.GenerateItinerary(r.Context(), input)
	if err != nil {
		s.logger.Errorw("Itinerary generation failed", "destination", input.Destination, "error", err)
		writeError(w, statusForError(err), err.Error())
		return
	}

	writeJSON(w, http.StatusOK, itineraryResponse{
		Success:   true,
		Itinerary: itinerary,
		Metadata:  meta,
	})
}

// HandleAutocompleteLocation suggests locations for a partial query
func (s *Server) HandleAutocompleteLocation(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}

	query := strings.TrimSpace(r.URL.Query().Get("query"))
	if len(query) < 2 {
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"success":     true,
			"suggestions": []trip.Suggestion{},
		})
		return
	}

	suggestions, err := s.locations.Autocomplete(r.Context(), query)
	if err != nil {
		s.logger.Errorw("Autocomplete failed", "query", query, "error", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if suggestions == nil {
		suggestions = []trip.Suggestion{}
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":     true,
		"suggestions": suggestions,
	})
}

// validateLocationRequest is the validate-location payload
type validateLocationRequest struct {
	Location string `json:"location"`
}

// HandleValidateLocation geocodes a location so frontends can verify input
// before submitting a full request
func (s *Server) HandleValidateLocation(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}

	var req validateLocationRequest
	if err := readJSON(w, r, &req); err != nil {
		return
	}
	if strings.TrimSpace(req.Location) == "" {
		writeError(w, http.StatusBadRequest, "location is required")
		return
	}

	location, err := s.locations.Geocode(r.Context(), req.Location)
	if err != nil {
		if errors.IsNotFound(err) {
			writeError(w, http.StatusNotFound, "Location not found")
			return
		}
		s.logger.Errorw("Location validation failed", "location", req.Location, "error", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":  true,
		"location": location,
	})
}

// HandleInterests lists the available interest categories
func (s *Server) HandleInterests(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"interests": AvailableInterests,
	})
}

// statusForError maps the pipeline's failure taxonomy onto HTTP statuses
func statusForError(err error) int {
	switch {
	case errors.IsInvalidRequest(err):
		return http.StatusBadRequest
	case errors.IsNotFound(err):
		return http.StatusBadRequest // unresolvable destination is a caller problem
	case errors.IsTimeout(err):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}
