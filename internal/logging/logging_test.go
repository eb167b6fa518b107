package logging

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpLoggerWritesJSONL(t *testing.T) {
	var buf bytes.Buffer
	logger := NewOpLogger(&buf)

	op := Op{
		Timestamp:  time.Date(2026, 2, 3, 10, 0, 0, 0, time.UTC),
		RequestID:  "req-1",
		Op:         "normalize",
		Style:      "unix",
		Inputs:     []string{strings.Repeat("a/", 200), "/short"},
		Result:     "/short",
		Length:     6,
		StatusCode: 200,
	}
	require.NoError(t, logger.Write(op))
	require.NoError(t, logger.Write(op))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)

	var parsed Op
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &parsed))
	require.Len(t, parsed.Inputs, 2)
	assert.Len(t, parsed.Inputs[0], maxInput)
	assert.Equal(t, "/short", parsed.Inputs[1])
	assert.Equal(t, "normalize", parsed.Op)
	assert.Equal(t, 6, parsed.Length)

	// the caller's slice is left alone
	assert.Len(t, op.Inputs[0], 400)
}

func TestOpenOpLogCreatesDirectories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "nested", "ops.jsonl")

	logger, closeFn, err := OpenOpLog(path)
	require.NoError(t, err)
	require.NoError(t, logger.Write(Op{Op: "root", StatusCode: 200}))
	require.NoError(t, closeFn())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"op":"root"`)
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	log, err := New(&buf, "warn", FormatJSON)
	require.NoError(t, err)

	log.Info().Msg("hidden")
	log.Warn().Str("op", "join").Msg("shown")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, `"op":"join"`)
	assert.Contains(t, out, `"level":"warn"`)
}

func TestNewLoggerConsole(t *testing.T) {
	var buf bytes.Buffer
	log, err := New(&buf, "", "")
	require.NoError(t, err)
	assert.Equal(t, zerolog.InfoLevel, log.GetLevel())

	log.Info().Msg("listening")
	assert.Contains(t, buf.String(), "listening")
	assert.NotContains(t, buf.String(), "{")
}

func TestNewLoggerRejectsUnknownSettings(t *testing.T) {
	_, err := New(&bytes.Buffer{}, "verbose", FormatJSON)
	assert.Error(t, err)

	_, err = New(&bytes.Buffer{}, "info", "xml")
	assert.Error(t, err)
}
