package config

import "fmt"

// PageConfig sets the default page size for the product table.
type PageConfig struct {
	Size int `koanf:"size"`
}

func (c *PageConfig) Validate() error {
	if c.Size < 0 {
		return fmt.Errorf("invalid page size: %d", c.Size)
	}
	return nil
}
