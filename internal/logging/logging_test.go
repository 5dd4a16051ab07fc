package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  log.Level
	}{
		{"debug", log.DebugLevel},
		{"DEBUG", log.DebugLevel},
		{"info", log.InfoLevel},
		{"warn", log.WarnLevel},
		{"warning", log.WarnLevel},
		{"error", log.ErrorLevel},
		{"", log.InfoLevel},
		{"verbose", log.InfoLevel},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, parseLevel(tt.input))
		})
	}
}

func TestConfigureJSON(t *testing.T) {
	var buf bytes.Buffer
	l := Configure(log.New(), &buf, "info", "json")

	l.WithField("instrument", "phq9").Info("scored")
	l.Debug("hidden")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "scored", entry["msg"])
	assert.Equal(t, "phq9", entry["instrument"])
	assert.NotContains(t, buf.String(), "hidden")
}

func TestConfigureText(t *testing.T) {
	var buf bytes.Buffer
	l := Configure(log.New(), &buf, "debug", "text")

	l.Debug("visible")
	assert.Contains(t, buf.String(), "visible")
}
