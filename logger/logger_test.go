package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestZerologLogger_WritesComponentAndFields(t *testing.T) {
	var buf bytes.Buffer
	l := &ZerologLogger{log: zerolog.New(&buf).With().Str("component", "test").Logger()}

	l.With("vehicle_id", "v1").Infof("advanced to %d", 1200)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "test", entry["component"])
	assert.Equal(t, "v1", entry["vehicle_id"])
	assert.Equal(t, "advanced to 1200", entry["message"])
	assert.Equal(t, "info", entry["level"])
}

func TestSetup_UnknownLevelFallsBackToInfo(t *testing.T) {
	defer zerolog.SetGlobalLevel(zerolog.TraceLevel)

	Setup("verbose", "")
	assert.Equal(t, zerolog.InfoLevel, zerolog.GlobalLevel())

	Setup("warn", "")
	assert.Equal(t, zerolog.WarnLevel, zerolog.GlobalLevel())
}

func TestNopLogger(t *testing.T) {
	var l Logger = NopLogger{}
	l.With("k", "v").Errorf("ignored %s", "message")
}
