package logger_test

import (
	"bytes"
	"dinebook/config"
	"dinebook/shared/constant"
	"dinebook/shared/logger"
	"encoding/json"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
)

func restore(t *testing.T) {
	t.Helper()

	originalLogger := log.Logger
	originalLevel := zerolog.GlobalLevel()
	originalTimeFormat := zerolog.TimeFieldFormat

	t.Cleanup(func() {
		log.Logger = originalLogger
		zerolog.SetGlobalLevel(originalLevel)
		zerolog.TimeFieldFormat = originalTimeFormat
	})
}

func TestInitLogger(t *testing.T) {
	restore(t)

	logger.InitLogger("api")

	assert.Equal(t, zerolog.TimeFormatUnix, zerolog.TimeFieldFormat)
	assert.Equal(t, zerolog.TraceLevel, zerolog.GlobalLevel())
}

func TestInitLogger_TagsProcess(t *testing.T) {
	restore(t)

	logger.InitLogger("worker")

	var buf bytes.Buffer
	log.Logger = log.Output(&buf)

	log.Info().Msg("consuming reservation emails")

	entry := map[string]any{}
	assert.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "worker", entry["process"])
	assert.Equal(t, "consuming reservation emails", entry["message"])
}

func TestErrorWithStack(t *testing.T) {
	restore(t)

	var buf bytes.Buffer
	log.Logger = zerolog.New(&buf)

	logger.ErrorWithStack(errors.New("slot lock timeout"))

	entry := map[string]any{}
	assert.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "error", entry["level"])
	assert.Equal(t, "slot lock timeout", entry["error"])
	assert.Contains(t, entry["message"], "logger_test.go")
}

func TestSetLogLevel(t *testing.T) {
	tests := []struct {
		logLevel      string
		expectedLevel zerolog.Level
	}{
		{"trace", zerolog.TraceLevel},
		{"debug", zerolog.DebugLevel},
		{"info", zerolog.InfoLevel},
		{"warn", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"disabled", zerolog.Disabled},
		{"invalid_level", zerolog.TraceLevel},
		// ParseLevel("") is NoLevel without an error.
		{"", zerolog.NoLevel},
	}

	for _, tt := range tests {
		t.Run("level "+tt.logLevel, func(t *testing.T) {
			restore(t)

			cfg := &config.Config{}
			cfg.Server.LogLevel = tt.logLevel

			logger.SetLogLevel(cfg)

			assert.Equal(t, tt.expectedLevel, zerolog.GlobalLevel())
		})
	}
}

func TestSetLogLevel_ProductionWritesJSON(t *testing.T) {
	restore(t)

	logger.InitLogger("api")

	cfg := &config.Config{}
	cfg.Server.Env = constant.ServerEnvProduction
	cfg.Server.LogLevel = "info"

	logger.SetLogLevel(cfg)

	var buf bytes.Buffer
	log.Logger = log.Output(&buf)

	log.Debug().Msg("filtered out")
	log.Info().Str("reservation_id", "res-1").Msg("reservation confirmed")

	entry := map[string]any{}
	assert.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "res-1", entry["reservation_id"])
	assert.Equal(t, "api", entry["process"])
}
