package config

import (
	"fmt"
	"strings"

	"github.com/knadh/koanf/parsers/toml/v2"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// envPrefix and envSeparator implement spec's environment-override rule:
// "HOMERS_" prefix, "_" as a key separator (e.g. HOMERS_HTTP_PORT).
const (
	envPrefix    = "HOMERS_"
	envSeparator = "_"
)

// Load builds a Config by layering, in order: Go-literal defaults, the
// TOML file at path, then environment variable overrides. Each layer may
// be partially absent; later layers win.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("loading config defaults: %w", err)
	}

	if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
		return nil, fmt.Errorf("loading config file %q: %w", path, err)
	}

	envProvider := env.ProviderWithValue(envPrefix, envSeparator, func(rawKey, value string) (string, string) {
		key := strings.TrimPrefix(rawKey, envPrefix)
		key = strings.ToLower(strings.ReplaceAll(key, envSeparator, "."))
		return key, value
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("loading config environment overrides: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	cfg.normalizeAddresses()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}
