package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempConfig(t *testing.T, contents string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "homers.toml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o600))
	return path
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := writeTempConfig(t, `
[tautulli]
address = "http://tautulli.local:8181"
apikey = "secret"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "localhost", cfg.HTTP.Address)
	assert.Equal(t, 8000, cfg.HTTP.Port)
	assert.Equal(t, "info", cfg.HTTP.LogLevel)
	assert.Equal(t, 30, cfg.Scrape.DeadlineSeconds)
	require.NotNil(t, cfg.Tautulli)
	assert.Equal(t, "http://tautulli.local:8181", cfg.Tautulli.Address)
}

func TestLoadNormalizesTrailingSlash(t *testing.T) {
	path := writeTempConfig(t, `
[tautulli]
address = "http://tautulli.local:8181/"
apikey = "secret"

[sonarr.main]
address = "http://sonarr.local:8989/"
apikey = "sonarr-key"

[plex.livingroom]
address = "http://plex.local:32400/"
token = "plex-token"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "http://tautulli.local:8181", cfg.Tautulli.Address)
	assert.Equal(t, "http://sonarr.local:8989", cfg.Sonarr["main"].Address)
	assert.Equal(t, "http://plex.local:32400", cfg.Plex["livingroom"].Address)
}

func TestLoadNamedInstanceMaps(t *testing.T) {
	path := writeTempConfig(t, `
[sonarr.main]
address = "http://sonarr.local:8989"
apikey = "sonarr-key"

[sonarr.anime]
address = "http://sonarr-anime.local:8989"
apikey = "anime-key"

[radarr.main]
address = "http://radarr.local:7878"
apikey = "radarr-key"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Len(t, cfg.Sonarr, 2)
	assert.Equal(t, "anime-key", cfg.Sonarr["anime"].APIKey)
	assert.Len(t, cfg.Radarr, 1)
}

func TestLoadRejectsMissingSecretField(t *testing.T) {
	path := writeTempConfig(t, `
[tautulli]
address = "http://tautulli.local:8181"
`)

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadRejectsBadLogLevel(t *testing.T) {
	path := writeTempConfig(t, `
[http]
address = "0.0.0.0"
port = 9000
log_level = "verbose"
`)

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadRejectsMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "does-not-exist.toml"))
	assert.Error(t, err)
}

func TestLoadEnvironmentOverride(t *testing.T) {
	path := writeTempConfig(t, `
[http]
address = "localhost"
port = 8000
log_level = "info"

[tautulli]
address = "http://tautulli.local:8181"
apikey = "secret"
`)

	t.Setenv("HOMERS_HTTP_PORT", "9100")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 9100, cfg.HTTP.Port)
}
