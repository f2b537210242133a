// internal/workers/lead/index-lead-record/config.go
package indexleadrecord

import "time"

type Config struct {
	IndexName string
	Timeout   time.Duration
}

func LoadConfig() *Config {
	return &Config{
		IndexName: "heloc-leads",
		Timeout:   15 * time.Second,
	}
}
