package logging

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRejectsBadLevel(t *testing.T) {
	_, err := New(Options{Level: "loud"})
	assert.Error(t, err)
}

func TestNewWritesJSONToConsole(t *testing.T) {
	var buf bytes.Buffer
	log, err := New(Options{Level: "info", JSON: true, Console: &buf})
	require.NoError(t, err)

	log.Debug("hidden")
	log.Info("consultant ready")
	require.NoError(t, log.Sync())

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 1)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(lines[0], &entry))
	assert.Equal(t, "consultant ready", entry["msg"])
	assert.Equal(t, "INFO", entry["level"])
}

func TestNewWritesRotatingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "elvproposal.log")
	var console bytes.Buffer

	log, err := New(Options{Level: "debug", File: path, Console: &console})
	require.NoError(t, err)
	log.Warn("gemini call failed")
	_ = log.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"gemini call failed"`)
	assert.Contains(t, console.String(), "gemini call failed")
}

func TestOrNop(t *testing.T) {
	assert.NotNil(t, OrNop(nil))
}
