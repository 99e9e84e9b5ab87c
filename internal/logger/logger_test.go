package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_JSONFieldMap(t *testing.T) {
	var buf bytes.Buffer
	log := New("debug", &buf)

	log.WithField("product_id", 3).Info("item added")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "item added", entry["message"])
	assert.Equal(t, "info", entry["severity"])
	assert.Contains(t, entry, "timestamp")
	assert.EqualValues(t, 3, entry["product_id"])
}

func TestNew_Level(t *testing.T) {
	var buf bytes.Buffer
	log := New("warn", &buf)

	assert.Equal(t, logrus.WarnLevel, log.Level)
	log.Info("hidden")
	assert.Empty(t, buf.String())
}

func TestNew_UnknownLevel(t *testing.T) {
	var buf bytes.Buffer
	log := New("chatty", &buf)

	assert.Equal(t, logrus.InfoLevel, log.Level)
	assert.Contains(t, buf.String(), "unknown log level")
}
