// internal/workers/matching/score-partners/config.go
package scorepartners

import "time"

type Config struct {
	TopPartnersLimit int
	Timeout          time.Duration
}

func LoadConfig() *Config {
	return &Config{
		TopPartnersLimit: 3,
		Timeout:          30 * time.Second,
	}
}
