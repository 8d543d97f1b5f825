package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/bnema/element-filter/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWithWriterJSON(t *testing.T) {
	var buf bytes.Buffer
	logger, err := NewWithWriter(models.LogConfig{Level: "debug", Format: "json"}, &buf)
	require.NoError(t, err)

	logger.Debug("selector matched")
	require.NoError(t, logger.Sync())

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "DEBUG", entry["level"])
	assert.Equal(t, "selector matched", entry["msg"])
	assert.Contains(t, entry, "caller")
}

func TestNewWithWriterLevel(t *testing.T) {
	var buf bytes.Buffer
	logger, err := NewWithWriter(models.LogConfig{Level: "warn"}, &buf)
	require.NoError(t, err)

	logger.Info("hidden")
	assert.Empty(t, buf.String())
}

func TestNewWithWriterErrors(t *testing.T) {
	_, err := NewWithWriter(models.LogConfig{Level: "loud"}, &bytes.Buffer{})
	assert.Error(t, err)

	_, err = NewWithWriter(models.LogConfig{Format: "xml"}, &bytes.Buffer{})
	assert.Error(t, err)
}

func TestDefaultLumberjackLogger(t *testing.T) {
	l := DefaultLumberjackLogger("/tmp/x.log")
	assert.Equal(t, "/tmp/x.log", l.Filename)
	assert.Equal(t, 200, l.MaxSize)
	assert.True(t, l.Compress)
}
