// Package config defines the configuration of the two catalog binaries.
package config

import (
	"fmt"
	"strings"

	"github.com/bpsoft/catalog/pkg/config"
	"github.com/bpsoft/catalog/pkg/config/configloader"
)

var (
	_ configloader.Validator = (*ServerConfig)(nil)
	_ configloader.Validator = (*ClientConfig)(nil)
)

// ServerConfig configures catalogd, the reference backend.
type ServerConfig struct {
	HTTPServer config.HTTPConfig     `koanf:"server"`
	Database   config.DatabaseConfig `koanf:"database"`
	Log        config.LogConfig      `koanf:"log"`
	Shutdown   config.ShutdownConfig `koanf:"shutdown"`
}

func (c *ServerConfig) String() string {
	var b strings.Builder

	b.WriteString("\n--- Server Configuration ---\n")
	b.WriteString(fmt.Sprintf("  server.port: %d\n", c.HTTPServer.Port))
	b.WriteString(fmt.Sprintf("  server.maxHeaderBytes: %d\n", c.HTTPServer.MaxHeaderBytes))
	b.WriteString(fmt.Sprintf("  server.timeout.read: %v\n", c.HTTPServer.Timeout.Read))
	b.WriteString(fmt.Sprintf("  server.timeout.write: %v\n", c.HTTPServer.Timeout.Write))
	b.WriteString(fmt.Sprintf("  server.timeout.idle: %v\n", c.HTTPServer.Timeout.Idle))
	b.WriteString(fmt.Sprintf("  server.timeout.readHeader: %v\n", c.HTTPServer.Timeout.ReadHeader))

	b.WriteString("\n--- Database Configuration ---\n")
	b.WriteString(fmt.Sprintf("  database.url: %s\n", maskURL(c.Database.URL)))
	b.WriteString(fmt.Sprintf("  database.connect.timeout: %s\n", c.Database.Timeout))

	b.WriteString("\n--- Observability & Logging ---\n")
	b.WriteString(fmt.Sprintf("  log.level: %s\n", c.Log.Level))

	b.WriteString("\n--- Application Behavior ---\n")
	b.WriteString(fmt.Sprintf("  shutdown.timeout: %s\n", c.Shutdown.Timeout))

	return b.String()
}

// Validate checks if the configuration values are valid
func (c *ServerConfig) Validate() error {
	if err := c.HTTPServer.Validate(); err != nil {
		return err
	}
	if err := c.Database.Validate(); err != nil {
		return err
	}
	if err := c.Log.Validate(); err != nil {
		return err
	}
	return c.Shutdown.Validate()
}

// ClientConfig configures catalogctl, the admin client.
type ClientConfig struct {
	API  config.APIConfig  `koanf:"api"`
	Log  config.LogConfig  `koanf:"log"`
	Page config.PageConfig `koanf:"page"`
}

func (c *ClientConfig) String() string {
	var b strings.Builder

	b.WriteString("\n--- Client Configuration ---\n")
	b.WriteString(fmt.Sprintf("  api.baseUrl: %s\n", c.API.BaseURL))
	b.WriteString(fmt.Sprintf("  api.timeout: %s\n", c.API.Timeout))
	b.WriteString(fmt.Sprintf("  log.level: %s\n", c.Log.Level))
	b.WriteString(fmt.Sprintf("  page.size: %d\n", c.Page.Size))

	return b.String()
}

// Validate checks if the configuration values are valid
func (c *ClientConfig) Validate() error {
	if err := c.API.Validate(); err != nil {
		return err
	}
	if err := c.Log.Validate(); err != nil {
		return err
	}
	return c.Page.Validate()
}

func maskURL(url string) string {
	if url == "" {
		return "<not configured>"
	}
	// Mask the URL by replacing the username and password with "****"
	parts := strings.Split(url, "@")
	if len(parts) == 2 {
		return "****@" + parts[1]
	}
	return "****"
}
