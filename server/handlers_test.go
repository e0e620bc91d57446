package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tripgenie/tripgenie/config"
	"github.com/tripgenie/tripgenie/errors"
	"github.com/tripgenie/tripgenie/pipeline"
	"github.com/tripgenie/tripgenie/trip"
)

type fakeGenerator struct {
	itinerary *trip.Itinerary
	meta      pipeline.Metadata
	err       error
	gotInput  trip.PreferencesInput
}

func (g *fakeGenerator) GenerateItinerary(_ context.Context, input trip.PreferencesInput) (*trip.Itinerary, pipeline.Metadata, error) {
	g.gotInput = input
	if g.err != nil {
		return nil, nil, g.err
	}
	return g.itinerary, g.meta, nil
}

type fakeLocations struct {
	location    *trip.Location
	geocodeErr  error
	suggestions []trip.Suggestion
}

func (l *fakeLocations) Geocode(_ context.Context, _ string) (*trip.Location, error) {
	if l.geocodeErr != nil {
		return nil, l.geocodeErr
	}
	return l.location, nil
}

func (l *fakeLocations) Autocomplete(_ context.Context, _ string) ([]trip.Suggestion, error) {
	return l.suggestions, nil
}

func newTestServer(gen *fakeGenerator, loc *fakeLocations) *Server {
	cfg := &config.Config{}
	cfg.Server.AllowedOrigins = []string{"http://localhost:3000"}
	return New(cfg, gen, loc, nil)
}

func doRequest(s *Server, method, path string, body []byte) *httptest.ResponseRecorder {
	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, path, bytes.NewReader(body))
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func TestHandleHealth(t *testing.T) {
	rec := doRequest(newTestServer(&fakeGenerator{}, &fakeLocations{}), http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "healthy", resp["status"])
}

func TestHandleGenerateItinerary(t *testing.T) {
	start := time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)
	gen := &fakeGenerator{
		itinerary: &trip.Itinerary{
			Destination: "Paris, France",
			StartDate:   start,
			EndDate:     start.AddDate(0, 0, 2),
			Days:        make([]trip.DayItinerary, 3),
		},
		meta: pipeline.Metadata{"places_count": 10},
	}
	s := newTestServer(gen, &fakeLocations{})

	body, _ := json.Marshal(trip.PreferencesInput{
		Destination:  "Paris, France",
		DurationDays: 3,
	})
	rec := doRequest(s, http.MethodPost, "/api/generate-itinerary", body)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp itineraryResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	require.NotNil(t, resp.Itinerary)
	assert.Equal(t, "Paris, France", resp.Itinerary.Destination)
	assert.Len(t, resp.Itinerary.Days, 3)
	assert.EqualValues(t, 10, resp.Metadata["places_count"])

	assert.Equal(t, "Paris, France", gen.gotInput.Destination)
}

func TestHandleGenerateItineraryErrorMapping(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"invalid input", errors.Mark(errors.New("duration out of range"), errors.ErrInvalidRequest), http.StatusBadRequest},
		{"unknown destination", errors.Wrap(errors.ErrNotFound, "could not geocode destination"), http.StatusBadRequest},
		{"stage timeout", errors.Wrap(errors.ErrTimeout, "stage \"rank\" exceeded 12s"), http.StatusGatewayTimeout},
		{"internal failure", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := newTestServer(&fakeGenerator{err: tc.err}, &fakeLocations{})
			body, _ := json.Marshal(trip.PreferencesInput{Destination: "X", DurationDays: 3})
			rec := doRequest(s, http.MethodPost, "/api/generate-itinerary", body)
			assert.Equal(t, tc.wantStatus, rec.Code)

			var resp itineraryResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.False(t, resp.Success)
			assert.NotEmpty(t, resp.Error)
		})
	}
}

func TestHandleGenerateItineraryBadBody(t *testing.T) {
	s := newTestServer(&fakeGenerator{}, &fakeLocations{})
	rec := doRequest(s, http.MethodPost, "/api/generate-itinerary", []byte("{not json"))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleGenerateItineraryMethodNotAllowed(t *testing.T) {
	s := newTestServer(&fakeGenerator{}, &fakeLocations{})
	rec := doRequest(s, http.MethodGet, "/api/generate-itinerary", nil)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestHandleAutocompleteLocation(t *testing.T) {
	s := newTestServer(&fakeGenerator{}, &fakeLocations{suggestions: []trip.Suggestion{
		{Description: "Paris, France", PlaceID: "paris-1"},
	}})

	rec := doRequest(s, http.MethodGet, "/api/autocomplete-location?query=Par", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Success     bool              `json:"success"`
		Suggestions []trip.Suggestion `json:"suggestions"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	require.Len(t, resp.Suggestions, 1)
	assert.Equal(t, "Paris, France", resp.Suggestions[0].Description)
}

func TestHandleAutocompleteLocationShortQuery(t *testing.T) {
	s := newTestServer(&fakeGenerator{}, &fakeLocations{suggestions: []trip.Suggestion{
		{Description: "should not be returned"},
	}})

	rec := doRequest(s, http.MethodGet, "/api/autocomplete-location?query=P", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Suggestions []trip.Suggestion `json:"suggestions"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Empty(t, resp.Suggestions)
}

func TestHandleValidateLocation(t *testing.T) {
	s := newTestServer(&fakeGenerator{}, &fakeLocations{
		location: &trip.Location{Name: "Paris, France", Latitude: 48.8566, Longitude: 2.3522},
	})

	body, _ := json.Marshal(validateLocationRequest{Location: "Paris"})
	rec := doRequest(s, http.MethodPost, "/api/validate-location", body)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Success  bool          `json:"success"`
		Location trip.Location `json:"location"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.InDelta(t, 48.8566, resp.Location.Latitude, 0.0001)
}

func TestHandleValidateLocationNotFound(t *testing.T) {
	s := newTestServer(&fakeGenerator{}, &fakeLocations{
		geocodeErr: errors.Wrap(errors.ErrNotFound, "no match"),
	})

	body, _ := json.Marshal(validateLocationRequest{Location: "Atlantis"})
	rec := doRequest(s, http.MethodPost, "/api/validate-location", body)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandleValidateLocationEmpty(t *testing.T) {
	s := newTestServer(&fakeGenerator{}, &fakeLocations{})
	body, _ := json.Marshal(validateLocationRequest{})
	rec := doRequest(s, http.MethodPost, "/api/validate-location", body)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleInterests(t *testing.T) {
	rec := doRequest(newTestServer(&fakeGenerator{}, &fakeLocations{}), http.MethodGet, "/api/interests", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Interests []string `json:"interests"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Contains(t, resp.Interests, "museums")
	assert.Len(t, resp.Interests, len(AvailableInterests))
}

func TestCORSHeaders(t *testing.T) {
	s := newTestServer(&fakeGenerator{}, &fakeLocations{})

	req := httptest.NewRequest(http.MethodOptions, "/api/interests", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))

	// Unlisted origins get no CORS grant
	req = httptest.NewRequest(http.MethodGet, "/api/interests", nil)
	req.Header.Set("Origin", "http://evil.example.com")
	rec = httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}
