package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogger_WritesJSONRecord(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithOptions("menu-service", Options{Level: "debug", Output: &buf})

	log.Info("catalog_loaded", "Menu catalog loaded", "req-1", map[string]interface{}{
		"categories": 2,
	})

	var record map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "INFO", record["level"])
	assert.Equal(t, "Menu catalog loaded", record["msg"])
	assert.Equal(t, "menu-service", record["service"])
	assert.Equal(t, "catalog_loaded", record["action"])
	assert.Equal(t, "req-1", record["request_id"])
	assert.NotEmpty(t, record["timestamp"])

	details, ok := record["details"].(map[string]interface{})
	require.True(t, ok)
	assert.EqualValues(t, 2, details["categories"])
}

func TestLogger_ErrorGroup(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithOptions("menu-service", Options{Level: "info", Output: &buf})

	log.Error("catalog_save_failed", "Failed to save", "", errors.New("disk full"), nil)

	var record map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	errGroup, ok := record["error"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "disk full", errGroup["msg"])
	assert.NotContains(t, record, "details")
}

func TestLogger_LevelFilters(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithOptions("menu-service", Options{Level: "warn", Output: &buf})

	log.Debug("noise", "dropped", "", nil)
	log.Info("noise", "dropped", "", nil)
	assert.Empty(t, buf.String())

	log.Error("failure", "kept", "", nil, nil)
	assert.Equal(t, 1, strings.Count(buf.String(), "\n"))
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, "DEBUG", parseLevel("DEBUG").String())
	assert.Equal(t, "WARN", parseLevel("warning").String())
	assert.Equal(t, "ERROR", parseLevel("error").String())
	assert.Equal(t, "INFO", parseLevel("").String())
}

func TestGenerateRequestID(t *testing.T) {
	a, b := GenerateRequestID(), GenerateRequestID()
	assert.Len(t, a, 36)
	assert.NotEqual(t, a, b)
}
