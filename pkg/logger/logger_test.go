package logger

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_UnknownLevel(t *testing.T) {
	_, err := New("", "verbose")
	assert.Error(t, err)
}

func TestLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	log, err := New("", "warn", WithOutput(&buf))
	require.NoError(t, err)

	log.Info("hidden %d", 1)
	log.Warn("shown %d", 2)

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown 2")
}

func TestLogger_JSON(t *testing.T) {
	var buf bytes.Buffer
	log, err := New("", "info", WithJSON(), WithOutput(&buf))
	require.NoError(t, err)

	log.With("request_id", "abc").Error("booking %s failed", "42")

	var record map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "booking 42 failed", record["msg"])
	assert.Equal(t, "ERROR", record["level"])
	assert.Equal(t, "abc", record["request_id"])
}

func TestLogger_Fatal(t *testing.T) {
	var buf bytes.Buffer
	log, err := New("", "info", WithOutput(&buf))
	require.NoError(t, err)

	code := 0
	log.exit = func(c int) { code = c }
	log.Fatal("cannot start: %v", "port busy")

	assert.Equal(t, 1, code)
	assert.Contains(t, buf.String(), "cannot start: port busy")
}

func TestLogger_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "studio.log")
	log, err := New(path, "info", WithOutput(&bytes.Buffer{}))
	require.NoError(t, err)

	log.Info("written to file")
	require.NoError(t, log.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "written to file")
}
