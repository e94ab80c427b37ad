package config

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate runs structural validation on the root config and every named
// adapter instance, returning a descriptive error on the first section
// that fails. Configuration errors are fatal at startup (spec §7: "surfaced
// at startup; fatal; exit 1").
func (c *Config) Validate() error {
	if err := validate.Struct(c.HTTP); err != nil {
		return fmt.Errorf("invalid http config: %w", err)
	}
	if err := validate.Struct(c.Scrape); err != nil {
		return fmt.Errorf("invalid scrape config: %w", err)
	}
	if c.Tautulli != nil {
		if err := validate.Struct(c.Tautulli); err != nil {
			return fmt.Errorf("invalid tautulli config: %w", err)
		}
	}
	if c.Overseerr != nil {
		if err := validate.Struct(c.Overseerr); err != nil {
			return fmt.Errorf("invalid overseerr config: %w", err)
		}
	}
	if c.Jellyseerr != nil {
		if err := validate.Struct(c.Jellyseerr); err != nil {
			return fmt.Errorf("invalid jellyseerr config: %w", err)
		}
	}
	if err := validateInstances("sonarr", c.Sonarr); err != nil {
		return err
	}
	if err := validateInstances("radarr", c.Radarr); err != nil {
		return err
	}
	if err := validateInstances("lidarr", c.Lidarr); err != nil {
		return err
	}
	if err := validateInstances("readarr", c.Readarr); err != nil {
		return err
	}
	if err := validateInstances("jellyfin", c.Jellyfin); err != nil {
		return err
	}
	for name, p := range c.Plex {
		if err := validate.Struct(p); err != nil {
			return fmt.Errorf("invalid plex.%s config: %w", name, err)
		}
	}
	return nil
}

func validateInstances(family string, instances map[string]SecretConfig) error {
	for name, s := range instances {
		if err := validate.Struct(s); err != nil {
			return fmt.Errorf("invalid %s.%s config: %w", family, name, err)
		}
	}
	return nil
}
