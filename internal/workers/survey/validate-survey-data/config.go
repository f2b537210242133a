// internal/workers/survey/validate-survey-data/config.go
package validatesurveydata

import "time"

type Config struct {
	Timeout time.Duration
}

func LoadConfig() *Config {
	return &Config{
		Timeout: 10 * time.Second,
	}
}
