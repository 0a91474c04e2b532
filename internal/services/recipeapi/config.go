// File: internal/services/recipeapi/config.go
package recipeapi

import (
	"fmt"
	"time"
)

type Config struct {
	BaseURL string
	Timeout time.Duration
}

func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return fmt.Errorf("BACKEND_BASE_URL is required")
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("backend timeout must be positive")
	}
	return nil
}

func DefaultConfig(baseURL string) *Config {
	return &Config{
		BaseURL: baseURL,
		Timeout: 120 * time.Second,
	}
}
