package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogger_JSONFields(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithOptions(&buf, "debug", true)

	log.Info("team created", "team_id", "t-1", "error", errors.New("boom"))

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "team created", entry["msg"])
	assert.Equal(t, "t-1", entry["team_id"])
	assert.Equal(t, "boom", entry["error"])
}

func TestLogger_LevelFilter(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithOptions(&buf, "info", false)

	log.Debug("hidden")
	assert.Empty(t, buf.String())

	log.Error("shown", "odd")
	assert.Contains(t, buf.String(), "shown")
	assert.Contains(t, buf.String(), "(missing)")
}
