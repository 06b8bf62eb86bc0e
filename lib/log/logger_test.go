package log

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandlerPrintsModuleAndAttrs(t *testing.T) {
	var out bytes.Buffer
	logger := slog.New(NewHandler(&out, nil)).With("module", "shaders")

	logger.Info("pipeline linked", "program", 3)

	line := out.String()
	assert.Contains(t, line, "INFO ")
	assert.Contains(t, line, "[shaders] pipeline linked")
	assert.Contains(t, line, "program=3")
	assert.NotContains(t, line, "\033[")
}

func TestHandlerRespectsLevel(t *testing.T) {
	var out bytes.Buffer
	logger := slog.New(NewHandler(&out, &slog.HandlerOptions{Level: slog.LevelWarn}))

	logger.Info("dropped")
	assert.Empty(t, out.String())

	logger.Error("kept")
	assert.Contains(t, out.String(), "ERROR kept")
}

func TestHandlerMultilineMessage(t *testing.T) {
	var out bytes.Buffer
	logger := slog.New(NewHandler(&out, nil))

	logger.Error("ERROR::SHADER::VERTEX::COMPILATION_FAILED\n0:1(1): syntax error")
	assert.Contains(t, out.String(), "ERROR::SHADER::VERTEX::COMPILATION_FAILED\n0:1(1): syntax error\n")
}

func TestParseLevel(t *testing.T) {
	l, err := ParseLevel("")
	require.NoError(t, err)
	assert.Equal(t, slog.LevelInfo, l)

	l, err = ParseLevel("debug")
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, l)

	_, err = ParseLevel("loud")
	assert.Error(t, err)
}
