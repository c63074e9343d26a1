package config

import (
	"fmt"
	"strings"
	"time"
)

// APIConfig points the client at the remote product API.
type APIConfig struct {
	BaseURL string        `koanf:"baseUrl"`
	Timeout time.Duration `koanf:"timeout"`
}

func (c *APIConfig) Validate() error {
	if c.BaseURL == "" {
		return fmt.Errorf("api base URL is not configured")
	}
	if !strings.HasPrefix(c.BaseURL, "http://") && !strings.HasPrefix(c.BaseURL, "https://") {
		return fmt.Errorf("api base URL must start with http:// or https://: %s", c.BaseURL)
	}
	return nil
}
