package cache

import "time"

// Config holds Redis connection and behavior settings.
type Config struct {
	// URL is the Redis connection URL (e.g., redis://localhost:6379/0).
	// Empty disables caching.
	URL string `mapstructure:"url" default:""`
	// KeyPrefix namespaces every key written by this service.
	KeyPrefix string `mapstructure:"key_prefix" default:"bcds:"`

	// Pool settings
	PoolSize     int `mapstructure:"pool_size" default:"10"`
	MinIdleConns int `mapstructure:"min_idle_conns" default:"2"`

	// ReloadLatencySeconds is the minimum time between two sheet imports.
	ReloadLatencySeconds int `mapstructure:"reload_latency_seconds" default:"60"`
	// TournamentTTLMinutes is how long tournament data is cached.
	TournamentTTLMinutes int `mapstructure:"tournament_ttl_minutes" default:"60"`
}

// DefaultConfig returns sensible defaults for a local Redis.
func DefaultConfig() Config {
	return Config{
		URL:                  "redis://localhost:6379/0",
		KeyPrefix:            "bcds:",
		PoolSize:             10,
		MinIdleConns:         2,
		ReloadLatencySeconds: 60,
		TournamentTTLMinutes: 60,
	}
}

// ReloadLatency returns ReloadLatencySeconds as a duration.
func (c Config) ReloadLatency() time.Duration {
	return time.Duration(c.ReloadLatencySeconds) * time.Second
}

// TournamentTTL returns TournamentTTLMinutes as a duration.
func (c Config) TournamentTTL() time.Duration {
	return time.Duration(c.TournamentTTLMinutes) * time.Minute
}
