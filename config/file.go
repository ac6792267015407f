package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// FileConfig is the optional YAML overlay named by CONFIG_FILE. Only list-valued
// and rarely changed settings live here; everything else stays in the environment.
type FileConfig struct {
	AllowedOrigins  []string `yaml:"allowed_origins"`
	AggregatorHosts []string `yaml:"aggregator_hosts"`
	Search          struct {
		MaxItems     int   `yaml:"max_items"`
		ResolveLinks *bool `yaml:"resolve_links"`
	} `yaml:"search"`
	Weather struct {
		Attempts     int `yaml:"attempts"`
		TimeoutMs    int `yaml:"timeout_ms"`
		RetryPauseMs int `yaml:"retry_pause_ms"`
	} `yaml:"weather"`
}

// LoadFile reads a YAML overlay. A missing file is not an error and yields nil.
func LoadFile(path string) (*FileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var fc FileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	return &fc, nil
}

func (c *Config) applyFile(fc *FileConfig) {
	if fc == nil {
		return
	}
	if len(fc.AllowedOrigins) > 0 {
		c.AllowedOrigins = fc.AllowedOrigins
	}
	if len(fc.AggregatorHosts) > 0 {
		c.AggregatorHosts = fc.AggregatorHosts
	}
	if fc.Search.MaxItems > 0 {
		c.SearchMaxItems = fc.Search.MaxItems
	}
	if fc.Search.ResolveLinks != nil {
		c.ResolveLinks = *fc.Search.ResolveLinks
	}
	if fc.Weather.Attempts > 0 {
		c.WeatherAttempts = fc.Weather.Attempts
	}
	if fc.Weather.TimeoutMs > 0 {
		c.WeatherTimeout = time.Duration(fc.Weather.TimeoutMs) * time.Millisecond
	}
	if fc.Weather.RetryPauseMs > 0 {
		c.WeatherRetryPause = time.Duration(fc.Weather.RetryPauseMs) * time.Millisecond
	}
}
