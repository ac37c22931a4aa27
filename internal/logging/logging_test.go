package logging

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew_HasComponent(t *testing.T) {
	var buf bytes.Buffer
	Init(slog.LevelDebug, "text", &buf)

	New("generator").Debug("slot filled", "slot", 0)

	out := buf.String()
	assert.Contains(t, out, "component=generator")
	assert.Contains(t, out, "slot filled")
}

func TestInit_Formats(t *testing.T) {
	var text, js bytes.Buffer

	Init(slog.LevelInfo, "text", &text)
	New("cli").Info("text check")
	assert.Contains(t, text.String(), "level=INFO")

	Init(slog.LevelInfo, "json", &js)
	New("cli").Info("json check")
	assert.Contains(t, js.String(), `"component":"cli"`)
}

func TestInit_LevelFilters(t *testing.T) {
	var buf bytes.Buffer
	Init(slog.LevelWarn, "text", &buf)

	New("store").Info("hidden")
	assert.Empty(t, buf.String())
}
