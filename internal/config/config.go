// Package config loads and validates the exporter's configuration: a TOML
// file layered with environment-variable overrides under the koanf
// provider model.
package config

import "strings"

// HTTPConfig controls the exporter's own listening address and log level.
type HTTPConfig struct {
	Address  string `koanf:"address" validate:"required"`
	Port     int    `koanf:"port" validate:"required,min=1,max=65535"`
	LogLevel string `koanf:"log_level" validate:"required,oneof=trace debug info warn error"`
}

// SecretConfig is the shape shared by every adapter instance: an address
// and a bearer secret (API key or token). The secret is never logged.
type SecretConfig struct {
	Address string `koanf:"address" validate:"required"`
	APIKey  string `koanf:"apikey" validate:"required"`
}

// PlexConfig uses a token rather than an apikey field, matching Plex's own
// vocabulary, but is otherwise identical in shape to SecretConfig.
type PlexConfig struct {
	Address string `koanf:"address" validate:"required"`
	Token   string `koanf:"token" validate:"required"`
}

// OverseerrConfig is shared by the `overseerr` and `jellyseerr` sections.
type OverseerrConfig struct {
	Address  string `koanf:"address" validate:"required"`
	APIKey   string `koanf:"apikey" validate:"required"`
	Requests int    `koanf:"requests" validate:"min=0"`
}

// GeoConfig configures the local MaxMind-format City database used by the
// geo resolver. An empty DatabasePath is valid: the resolver runs in
// always-sentinel mode.
type GeoConfig struct {
	DatabasePath string `koanf:"database_path"`
}

// ScrapeConfig bounds the executor's per-scrape deadline and optional
// concurrency cap.
type ScrapeConfig struct {
	DeadlineSeconds int `koanf:"deadline_seconds" validate:"min=1"`
	MaxConcurrency  int `koanf:"max_concurrency" validate:"min=0"`
}

// Config is the root configuration tree. Named instance maps (Sonarr,
// Radarr, Lidarr, Readarr, Plex, Jellyfin) are keyed by instance name;
// that name is also threaded through as the `name` metric label.
type Config struct {
	HTTP       HTTPConfig                 `koanf:"http"`
	Geo        GeoConfig                  `koanf:"geo"`
	Scrape     ScrapeConfig               `koanf:"scrape"`
	Tautulli   *SecretConfig              `koanf:"tautulli"`
	Overseerr  *OverseerrConfig           `koanf:"overseerr"`
	Jellyseerr *OverseerrConfig           `koanf:"jellyseerr"`
	Sonarr     map[string]SecretConfig    `koanf:"sonarr"`
	Radarr     map[string]SecretConfig    `koanf:"radarr"`
	Lidarr     map[string]SecretConfig    `koanf:"lidarr"`
	Readarr    map[string]SecretConfig    `koanf:"readarr"`
	Plex       map[string]PlexConfig      `koanf:"plex"`
	Jellyfin   map[string]SecretConfig    `koanf:"jellyfin"`
}

// defaultConfig returns the configuration defaults applied before the file
// and environment layers are merged in, mirroring the teacher's layered
// defaultConfig → file → env construction.
func defaultConfig() Config {
	return Config{
		HTTP: HTTPConfig{
			Address:  "localhost",
			Port:     8000,
			LogLevel: "info",
		},
		Scrape: ScrapeConfig{
			DeadlineSeconds: 30,
			MaxConcurrency:  0,
		},
	}
}

// normalizeAddress strips exactly one trailing slash, per spec: "address is
// normalised by stripping exactly one trailing /".
func normalizeAddress(addr string) string {
	return strings.TrimSuffix(addr, "/")
}

// normalizeAddresses applies normalizeAddress to every configured adapter
// address in place.
func (c *Config) normalizeAddresses() {
	c.HTTP.Address = normalizeAddress(c.HTTP.Address)
	if c.Tautulli != nil {
		c.Tautulli.Address = normalizeAddress(c.Tautulli.Address)
	}
	if c.Overseerr != nil {
		c.Overseerr.Address = normalizeAddress(c.Overseerr.Address)
	}
	if c.Jellyseerr != nil {
		c.Jellyseerr.Address = normalizeAddress(c.Jellyseerr.Address)
	}
	normalizeSecretMap(c.Sonarr)
	normalizeSecretMap(c.Radarr)
	normalizeSecretMap(c.Lidarr)
	normalizeSecretMap(c.Readarr)
	normalizeSecretMap(c.Jellyfin)
	for name, p := range c.Plex {
		p.Address = normalizeAddress(p.Address)
		c.Plex[name] = p
	}
}

func normalizeSecretMap(m map[string]SecretConfig) {
	for name, s := range m {
		s.Address = normalizeAddress(s.Address)
		m[name] = s
	}
}
