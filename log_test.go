package blog

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
)

func restoreLogger(t *testing.T) {
	t.Helper()
	prevLevel, prevLogger := zerolog.GlobalLevel(), log.Logger
	t.Cleanup(func() {
		zerolog.SetGlobalLevel(prevLevel)
		log.Logger = prevLogger
	})
}

func TestSetupLogger(t *testing.T) {
	restoreLogger(t)

	var buf bytes.Buffer
	logger := SetupLogger("warn", &buf)
	assert.Equal(t, zerolog.WarnLevel, zerolog.GlobalLevel())

	logger.Info().Msg("hidden")
	logger.Warn().Str("k", "v").Msg("shown")
	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, `"k":"v"`)
	assert.Contains(t, out, `"message":"shown"`)
}

func TestSetupLoggerUnknownLevel(t *testing.T) {
	restoreLogger(t)

	var buf bytes.Buffer
	SetupLogger("loud", &buf)
	assert.Equal(t, zerolog.InfoLevel, zerolog.GlobalLevel())
	assert.Contains(t, buf.String(), "Unknown log level")
}
