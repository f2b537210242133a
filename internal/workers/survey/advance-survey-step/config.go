// internal/workers/survey/advance-survey-step/config.go
package advancesurveystep

import "time"

type Config struct {
	SessionTTL time.Duration
	Timeout    time.Duration
}

func LoadConfig() *Config {
	return &Config{
		SessionTTL: 30 * time.Minute,
		Timeout:    10 * time.Second,
	}
}
