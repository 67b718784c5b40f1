package pdga

import "time"

// Config holds configuration for the PDGA registry client.
type Config struct {
	// APIURL is the base of the JSON API.
	APIURL string `mapstructure:"api_url" default:"https://api.pdga.com/services/json"`
	// SiteURL is the public website, scraped for tournament rosters.
	SiteURL string `mapstructure:"site_url" default:"https://www.pdga.com"`
	// User and Password authenticate against the API.
	User     string `mapstructure:"user" default:""`
	Password string `mapstructure:"password" default:""`
	// SessionTTLMinutes is how long an API session is reused before logging in again.
	SessionTTLMinutes int `mapstructure:"session_ttl_minutes" default:"60"`
	// TimeoutSeconds bounds every HTTP request.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"15"`
}

// SessionTTL returns SessionTTLMinutes as a duration.
func (c Config) SessionTTL() time.Duration {
	return time.Duration(c.SessionTTLMinutes) * time.Minute
}

// Timeout returns TimeoutSeconds as a duration, 15s when unset.
func (c Config) Timeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return 15 * time.Second
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}
