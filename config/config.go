// Package config manages TripGenie configuration via Viper.
//
// Configuration sources are merged in precedence order (lowest to highest):
// system file < user file (~/.tripgenie) < project file (upward search for
// tripgenie.toml) < environment variables (TRIPGENIE_*).
//
// Configuration is read once at startup and treated as read-only afterwards;
// concurrent pipeline runs share it without locking.
package config

// Config represents the core TripGenie configuration
type Config struct {
	Server         ServerConfig         `mapstructure:"server"`
	Google         GoogleConfig         `mapstructure:"google"`
	Weather        WeatherConfig        `mapstructure:"weather"`
	LocalInference LocalInferenceConfig `mapstructure:"local_inference"`
	OpenRouter     OpenRouterConfig     `mapstructure:"openrouter"`
	Pipeline       PipelineConfig       `mapstructure:"pipeline"`
}

// ServerConfig configures the TripGenie HTTP server
type ServerConfig struct {
	Port           *int     `mapstructure:"port"` // nil = default 8000
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// DefaultServerPort is used when server.port is not configured
const DefaultServerPort = 8000

// GoogleConfig configures Google Maps API access (geocoding, places, autocomplete)
type GoogleConfig struct {
	APIKey            string  `mapstructure:"api_key"`
	RequestsPerSecond float64 `mapstructure:"requests_per_second"` // outbound rate limit (default: 10)
}

// WeatherConfig configures the forecast collaborator
type WeatherConfig struct {
	BaseURL        string `mapstructure:"base_url"` // default: https://wttr.in
	TimeoutSeconds int    `mapstructure:"timeout_seconds"`
}

// LocalInferenceConfig configures local model inference (Ollama, LocalAI, etc.)
type LocalInferenceConfig struct {
	Enabled        bool   `mapstructure:"enabled"`         // Use local inference instead of cloud APIs
	BaseURL        string `mapstructure:"base_url"`        // e.g., "http://localhost:11434" for Ollama
	Model          string `mapstructure:"model"`           // e.g., "llama3"
	TimeoutSeconds int    `mapstructure:"timeout_seconds"` // Request timeout in seconds
}

// OpenRouterConfig configures OpenRouter.ai API access
type OpenRouterConfig struct {
	APIKey      string   `mapstructure:"api_key"`     // OpenRouter API key
	Model       string   `mapstructure:"model"`       // Default model (e.g., "openai/gpt-4o-mini")
	Temperature *float64 `mapstructure:"temperature"` // Sampling temperature (nil = default 0.2)
	MaxTokens   *int     `mapstructure:"max_tokens"`  // Maximum tokens per request (nil = default 1000)
}

// PipelineConfig tunes the itinerary pipeline
type PipelineConfig struct {
	StageTimeoutSeconds int `mapstructure:"stage_timeout_seconds"` // per-stage execution guard (default: 12)

	// Place discovery limits
	MaxSearchQueries   int `mapstructure:"max_search_queries"`    // queries issued per run (default: 5)
	MaxResultsPerQuery int `mapstructure:"max_results_per_query"` // hits kept per query (default: 10)
	MaxTotalPlaces     int `mapstructure:"max_total_places"`      // accumulated candidate cap (default: 60)

	// Ranking weights for the composite score
	RelevanceWeight  float64 `mapstructure:"relevance_weight"`  // default: 0.6
	PopularityWeight float64 `mapstructure:"popularity_weight"` // default: 0.4

	// Weather-aware scheduling
	PrecipitationAvoidThreshold float64 `mapstructure:"precipitation_avoid_threshold"` // percent (default: 60)
}

// GetServerPort returns the configured server port, applying the default
func (c *Config) GetServerPort() int {
	if c.Server.Port != nil && *c.Server.Port > 0 {
		return *c.Server.Port
	}
	return DefaultServerPort
}
