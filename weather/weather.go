// Package weather provides the forecast collaborator client backed by the
// wttr.in JSON endpoint.
package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/tripgenie/tripgenie/errors"
	"github.com/tripgenie/tripgenie/internal/httpclient"
	"github.com/tripgenie/tripgenie/trip"
)

const defaultBaseURL = "https://wttr.in"

// Client fetches multi-day forecasts for a coordinate pair
type Client struct {
	baseURL    string
	httpClient *httpclient.SaferClient
	logger     *zap.SugaredLogger
}

// Config configures a weather Client
type Config struct {
	BaseURL        string // default: https://wttr.in
	TimeoutSeconds int
	Logger         *zap.SugaredLogger
}

// NewClient creates a forecast client
func NewClient(cfg Config) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: httpclient.New(timeout),
		logger:     logger,
	}
}

// wttrResponse is the wttr.in ?format=j1 response, reduced to the fields we
// consume. Numeric values arrive as strings.
type wttrResponse struct {
	Weather []wttrDay `json:"weather"`
}

type wttrDay struct {
	Date     string `json:"date"`
	MaxTempC string `json:"maxtempC"`
	MinTempC string `json:"mintempC"`
	AvgTempC string `json:"avgtempC"`
	Hourly   []struct {
		WeatherDesc []struct {
			Value string `json:"value"`
		} `json:"weatherDesc"`
		ChanceOfRain string `json:"chanceofrain"`
	} `json:"hourly"`
}

// Forecast returns up to days daily records for the coordinates. The service
// typically covers three days, so fewer records than requested is normal.
func (c *Client) Forecast(ctx context.Context, lat, lng float64, days int) ([]trip.Forecast, error) {
	endpoint := fmt.Sprintf("%s/%s,%s?format=j1",
		c.baseURL,
		strconv.FormatFloat(lat, 'f', -1, 64),
		strconv.FormatFloat(lng, 'f', -1, 64))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create request")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "forecast request failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, errors.Newf("forecast service returned status %d: %s", resp.StatusCode, string(body))
	}

	var wire wttrResponse
	if err := json.NewDecoder(resp.Body).Decode(&wire); err != nil {
		return nil, errors.Wrap(err, "failed to decode forecast response")
	}

	forecasts := make([]trip.Forecast, 0, days)
	for i, day := range wire.Weather {
		if i >= days {
			break
		}
		forecasts = append(forecasts, normalizeDay(day))
	}
	return forecasts, nil
}

// normalizeDay flattens one wttr.in day to a Forecast, sampling the mid-day
// hourly record for condition and rain chance
func normalizeDay(day wttrDay) trip.Forecast {
	f := trip.Forecast{
		Condition:           "Clear",
		Description:         "Clear sky",
		TemperatureMax:      parseFloat(day.MaxTempC, 25),
		TemperatureMin:      parseFloat(day.MinTempC, 15),
		PrecipitationChance: 0,
	}

	if len(day.Hourly) == 0 {
		return f
	}
	midDay := day.Hourly[len(day.Hourly)/2]
	if len(midDay.WeatherDesc) > 0 && midDay.WeatherDesc[0].Value != "" {
		f.Condition = midDay.WeatherDesc[0].Value
		f.Description = midDay.WeatherDesc[0].Value
	}
	f.PrecipitationChance = parseFloat(midDay.ChanceOfRain, 0)
	return f
}

func parseFloat(s string, fallback float64) float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fallback
	}
	return v
}
