package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitJSONFormat(t *testing.T) {
	var buf bytes.Buffer
	Init(Config{Level: "info", Format: "json", Output: &buf})

	Info().Str("component", "test").Msg("hello")

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "hello", decoded["message"])
	assert.Equal(t, "test", decoded["component"])
	assert.Equal(t, "info", decoded["level"])
}

func TestSetLevelStringFiltersBelowThreshold(t *testing.T) {
	var buf bytes.Buffer
	Init(Config{Level: "info", Format: "json", Output: &buf})
	SetLevelString("warn")
	defer SetLevelString("info")

	Info().Msg("should be suppressed")
	assert.Empty(t, buf.Bytes())

	Warn().Msg("should appear")
	assert.NotEmpty(t, buf.Bytes())
}

func TestParseLevelDefaultsToInfo(t *testing.T) {
	assert.Equal(t, zerolog.InfoLevel, parseLevel("nonsense"))
	assert.Equal(t, zerolog.DebugLevel, parseLevel("DEBUG"))
	assert.Equal(t, zerolog.WarnLevel, parseLevel("warning"))
}
