// internal/workers/lead/check-priority-routing/config.go
package checkpriorityrouting

import "time"

type Config struct {
	Timeout            time.Duration
	CacheTTL           time.Duration
	HighScoreThreshold int
}

func LoadConfig() *Config {
	return &Config{
		Timeout:            10 * time.Second,
		CacheTTL:           1 * time.Hour,
		HighScoreThreshold: 115,
	}
}
