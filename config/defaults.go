package config

import (
	"github.com/spf13/viper"
)

// SetDefaults configures default values for all configuration options
func SetDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.port", DefaultServerPort)
	v.SetDefault("server.allowed_origins", []string{
		"http://localhost",
		"https://localhost",
		"http://127.0.0.1",
		"https://127.0.0.1",
	})

	// Google Maps defaults
	v.SetDefault("google.requests_per_second", 10.0)

	// Weather (wttr.in) defaults
	v.SetDefault("weather.base_url", "https://wttr.in")
	v.SetDefault("weather.timeout_seconds", 10)

	// Local inference (Ollama) defaults
	v.SetDefault("local_inference.enabled", true)
	v.SetDefault("local_inference.base_url", "http://localhost:11434")
	v.SetDefault("local_inference.model", "llama3")
	v.SetDefault("local_inference.timeout_seconds", 120)

	// OpenRouter defaults
	v.SetDefault("openrouter.model", "openai/gpt-4o-mini") // Cost-effective default
	v.SetDefault("openrouter.temperature", 0.2)            // Deterministic
	v.SetDefault("openrouter.max_tokens", 1000)

	// Pipeline defaults
	v.SetDefault("pipeline.stage_timeout_seconds", 12)
	v.SetDefault("pipeline.max_search_queries", 5)
	v.SetDefault("pipeline.max_results_per_query", 10)
	v.SetDefault("pipeline.max_total_places", 60)
	v.SetDefault("pipeline.relevance_weight", 0.6)
	v.SetDefault("pipeline.popularity_weight", 0.4)
	v.SetDefault("pipeline.precipitation_avoid_threshold", 60.0)
}

// BindSensitiveEnvVars explicitly binds sensitive configuration to environment variables
func BindSensitiveEnvVars(v *viper.Viper) {
	v.BindEnv("google.api_key", "TRIPGENIE_GOOGLE_API_KEY")
	v.BindEnv("openrouter.api_key", "TRIPGENIE_OPENROUTER_API_KEY")
}
