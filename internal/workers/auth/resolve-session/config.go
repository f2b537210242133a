// internal/workers/auth/resolve-session/config.go
package resolvesession

import "time"

type Config struct {
	BaseURL  string
	Timeout  time.Duration
	TokenTTL time.Duration
}

func LoadConfig() *Config {
	return &Config{
		Timeout:  30 * time.Second,
		TokenTTL: 24 * time.Hour,
	}
}
