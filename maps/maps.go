// Package maps provides the Google Maps collaborator client used for
// geocoding destinations, discovering candidate places, and location
// autocomplete.
package maps

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/tripgenie/tripgenie/errors"
	"github.com/tripgenie/tripgenie/internal/httpclient"
	"github.com/tripgenie/tripgenie/trip"
)

const (
	googleBaseURL = "https://maps.googleapis.com"

	// SearchBiasRadiusMeters biases text search toward the trip destination
	SearchBiasRadiusMeters = 50000
)

// Client talks to the Google Maps web service APIs
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *httpclient.SaferClient
	limiter    *rate.Limiter
	logger     *zap.SugaredLogger
}

// Config configures a maps Client
type Config struct {
	APIKey            string
	RequestsPerSecond float64 // outbound rate limit, 0 = default 10
	Logger            *zap.SugaredLogger
}

// NewClient creates a Google Maps client
func NewClient(cfg Config) *Client {
	rps := cfg.RequestsPerSecond
	if rps <= 0 {
		rps = 10
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &Client{
		apiKey:     cfg.APIKey,
		baseURL:    googleBaseURL,
		httpClient: httpclient.New(10 * time.Second),
		limiter:    rate.NewLimiter(rate.Limit(rps), 1),
		logger:     logger,
	}
}

// IsConfigured reports whether an API key is present
func (c *Client) IsConfigured() bool {
	return c.apiKey != ""
}

// geocodeResponse is the Geocoding API response shape
type geocodeResponse struct {
	Status  string `json:"status"`
	Results []struct {
		FormattedAddress string `json:"formatted_address"`
		PlaceID          string `json:"place_id"`
		Geometry         struct {
			Location struct {
				Lat float64 `json:"lat"`
				Lng float64 `json:"lng"`
			} `json:"location"`
		} `json:"geometry"`
	} `json:"results"`
	ErrorMessage string `json:"error_message"`
}

// Geocode resolves a free-text location name to coordinates.
// Returns errors.ErrNotFound when the service has no match.
func (c *Client) Geocode(ctx context.Context, address string) (*trip.Location, error) {
	if address == "" {
		return nil, errors.Wrap(errors.ErrInvalidRequest, "address is empty")
	}

	params := url.Values{}
	params.Set("address", address)
	params.Set("key", c.apiKey)

	var resp geocodeResponse
	if err := c.getJSON(ctx, "/maps/api/geocode/json", params, &resp); err != nil {
		return nil, errors.Wrapf(err, "geocoding %q failed", address)
	}

	if resp.Status == "ZERO_RESULTS" || len(resp.Results) == 0 {
		return nil, errors.Wrapf(errors.ErrNotFound, "location %q not found", address)
	}
	if resp.Status != "OK" {
		return nil, errors.Newf("geocoding %q failed: %s %s", address, resp.Status, resp.ErrorMessage)
	}

	best := resp.Results[0]
	return &trip.Location{
		Name:      address,
		Address:   best.FormattedAddress,
		Latitude:  best.Geometry.Location.Lat,
		Longitude: best.Geometry.Location.Lng,
		PlaceID:   best.PlaceID,
	}, nil
}

// textSearchResponse is the Places Text Search API response shape
type textSearchResponse struct {
	Status  string `json:"status"`
	Results []struct {
		PlaceID  string `json:"place_id"`
		Name     string `json:"name"`
		Address  string `json:"formatted_address"`
		Vicinity string `json:"vicinity"`
		Geometry struct {
			Location struct {
				Lat float64 `json:"lat"`
				Lng float64 `json:"lng"`
			} `json:"location"`
		} `json:"geometry"`
		Types  []string `json:"types"`
		Rating *float64 `json:"rating"`
	} `json:"results"`
	ErrorMessage string `json:"error_message"`
}

// SearchPlaces runs a text search biased toward the given location
func (c *Client) SearchPlaces(ctx context.Context, query string, near trip.Location) ([]trip.PlaceHit, error) {
	params := url.Values{}
	params.Set("query", query)
	params.Set("location", formatLatLng(near.Latitude, near.Longitude))
	params.Set("radius", strconv.Itoa(SearchBiasRadiusMeters))
	params.Set("key", c.apiKey)

	var resp textSearchResponse
	if err := c.getJSON(ctx, "/maps/api/place/textsearch/json", params, &resp); err != nil {
		return nil, errors.Wrapf(err, "place search %q failed", query)
	}

	if resp.Status == "ZERO_RESULTS" {
		return nil, nil
	}
	if resp.Status != "OK" {
		return nil, errors.Newf("place search %q failed: %s %s", query, resp.Status, resp.ErrorMessage)
	}

	hits := make([]trip.PlaceHit, 0, len(resp.Results))
	for _, r := range resp.Results {
		hits = append(hits, trip.PlaceHit{
			PlaceID:   r.PlaceID,
			Name:      r.Name,
			Address:   r.Address,
			Latitude:  r.Geometry.Location.Lat,
			Longitude: r.Geometry.Location.Lng,
			Types:     r.Types,
			Rating:    r.Rating,
			Vicinity:  r.Vicinity,
		})
	}
	return hits, nil
}

// autocompleteResponse is the Places Autocomplete API response shape
type autocompleteResponse struct {
	Status      string `json:"status"`
	Predictions []struct {
		Description          string `json:"description"`
		PlaceID              string `json:"place_id"`
		StructuredFormatting struct {
			MainText      string `json:"main_text"`
			SecondaryText string `json:"secondary_text"`
		} `json:"structured_formatting"`
	} `json:"predictions"`
	ErrorMessage string `json:"error_message"`
}

// Autocomplete returns city-level location predictions for a partial input
func (c *Client) Autocomplete(ctx context.Context, input string) ([]trip.Suggestion, error) {
	if input == "" {
		return nil, nil
	}

	params := url.Values{}
	params.Set("input", input)
	params.Set("types", "(cities)")
	params.Set("key", c.apiKey)

	var resp autocompleteResponse
	if err := c.getJSON(ctx, "/maps/api/place/autocomplete/json", params, &resp); err != nil {
		return nil, errors.Wrapf(err, "autocomplete %q failed", input)
	}

	if resp.Status == "ZERO_RESULTS" {
		return nil, nil
	}
	if resp.Status != "OK" {
		return nil, errors.Newf("autocomplete %q failed: %s %s", input, resp.Status, resp.ErrorMessage)
	}

	suggestions := make([]trip.Suggestion, 0, len(resp.Predictions))
	for _, p := range resp.Predictions {
		suggestions = append(suggestions, trip.Suggestion{
			Description:   p.Description,
			PlaceID:       p.PlaceID,
			MainText:      p.StructuredFormatting.MainText,
			SecondaryText: p.StructuredFormatting.SecondaryText,
		})
	}
	return suggestions, nil
}

// getJSON issues a rate-limited GET and decodes the JSON response
func (c *Client) getJSON(ctx context.Context, path string, params url.Values, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return errors.Wrap(err, "rate limiter wait interrupted")
	}

	endpoint := c.baseURL + path + "?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return errors.Wrap(err, "failed to create request")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errors.Wrap(err, "request failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return errors.Newf("unexpected status %d: %s", resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errors.Wrap(err, "failed to decode response")
	}
	return nil
}

func formatLatLng(lat, lng float64) string {
	return strconv.FormatFloat(lat, 'f', -1, 64) + "," + strconv.FormatFloat(lng, 'f', -1, 64)
}
