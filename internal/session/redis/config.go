package redis

import "time"

// Config holds Redis connection and behavior settings
type Config struct {
	// URL is the Redis connection URL (e.g., redis://localhost:6379)
	URL string

	// Pool settings
	PoolSize     int
	MinIdleConns int

	// Conversation state expiry; an abandoned flow disappears on its
	// own once the TTL lapses
	EditSessionTTL  time.Duration
	DraftSessionTTL time.Duration
}

// DefaultConfig returns sensible defaults for Redis configuration
func DefaultConfig() Config {
	return Config{
		URL:             "redis://localhost:6379",
		PoolSize:        10,
		MinIdleConns:    2,
		EditSessionTTL:  30 * time.Minute,
		DraftSessionTTL: 30 * time.Minute,
	}
}
