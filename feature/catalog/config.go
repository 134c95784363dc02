package catalog

// Config holds configuration for the BGG API client.
type Config struct {
	// BaseURL is the root of the XML API.
	BaseURL string `mapstructure:"base_url" default:"https://boardgamegeek.com/xmlapi2/"`
	// RateLimitSleepSeconds is how long to wait after a 429 before retrying.
	RateLimitSleepSeconds int `mapstructure:"rate_limit_sleep_seconds" default:"30"`
	// MaxRetries caps the number of rate-limit retries. 0 means retry forever.
	MaxRetries int `mapstructure:"max_retries" default:"0"`
	// TimeoutSeconds is the per-request HTTP timeout.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"60"`
}
