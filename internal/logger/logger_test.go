package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeEntry(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	return entry
}

// TestNew_RoleField verifies that every log entry contains the expected
// "role" field.
func TestNew_RoleField(t *testing.T) {
	var buf bytes.Buffer
	l := New("test-role", Settings{Output: &buf, Format: FormatJSON})

	l.Info().Msg("hello")

	entry := decodeEntry(t, &buf)
	assert.Equal(t, "test-role", entry["role"])
	assert.Equal(t, "hello", entry["message"])
}

// TestNew_ContainsTimestamp verifies that log entries contain a timestamp field.
func TestNew_ContainsTimestamp(t *testing.T) {
	var buf bytes.Buffer
	l := New("ts-role", Settings{Output: &buf, Format: FormatJSON})

	l.Info().Msg("ts check")

	entry := decodeEntry(t, &buf)
	_, hasTime := entry["time"]
	assert.True(t, hasTime, "expected 'time' field in log entry")
}

// TestNew_CallerFieldName verifies that the caller field is named "func".
func TestNew_CallerFieldName(t *testing.T) {
	New("caller-role", Settings{Output: &bytes.Buffer{}})
	assert.Equal(t, "func", zerolog.CallerFieldName)
}

// TestNew_LevelFiltersDebug verifies that the default level drops debug
// messages while an explicit debug level keeps them.
func TestNew_LevelFiltersDebug(t *testing.T) {
	var buf bytes.Buffer
	New("lvl", Settings{Output: &buf, Format: FormatJSON}).Debug().Msg("dropped")
	assert.Empty(t, buf.String())

	New("lvl", Settings{Output: &buf, Format: FormatJSON, Level: "debug"}).Debug().Msg("kept")
	assert.Contains(t, buf.String(), "kept")
}

// TestNew_ConsoleFormat verifies that the console writer produces non-JSON
// human readable output.
func TestNew_ConsoleFormat(t *testing.T) {
	var buf bytes.Buffer
	New("console", Settings{Output: &buf, Format: FormatConsole}).Info().Msg("pretty")

	assert.Contains(t, buf.String(), "pretty")
	assert.False(t, json.Valid(buf.Bytes()))
}

// TestNew_AutoFormatNonTerminal verifies that auto format writes JSON when
// the output is not a terminal.
func TestNew_AutoFormatNonTerminal(t *testing.T) {
	var buf bytes.Buffer
	New("auto", Settings{Output: &buf}).Info().Msg("json")

	assert.True(t, json.Valid(bytes.TrimSpace(buf.Bytes())))
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want zerolog.Level
	}{
		{"", zerolog.InfoLevel},
		{"debug", zerolog.DebugLevel},
		{" WARN ", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"chatty", zerolog.InfoLevel},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLevel(tt.in))
		})
	}
}

// TestNop_DiscardsOutput verifies that a Nop logger produces no output.
func TestNop_DiscardsOutput(t *testing.T) {
	var buf bytes.Buffer
	l := Nop()
	l.Logger = l.Output(&buf)

	l.Info().Msg("should be discarded")

	assert.Empty(t, buf.String(), "Nop logger should produce no output")
}

// TestGetChildLogger_ComponentField verifies that the child logger carries
// the parent's fields plus the component.
func TestGetChildLogger_ComponentField(t *testing.T) {
	var buf bytes.Buffer
	parent := New("parent", Settings{Output: &buf, Format: FormatJSON})
	child := parent.GetChildLogger("importer")
	require.NotNil(t, child)

	child.Info().Msg("from child")

	entry := decodeEntry(t, &buf)
	assert.Equal(t, "parent", entry["role"])
	assert.Equal(t, "importer", entry["component"])
}
