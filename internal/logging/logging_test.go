package logging

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	for in, want := range map[string]slog.Level{
		"debug": slog.LevelDebug, "INFO": slog.LevelInfo, "": slog.LevelInfo,
		"warn": slog.LevelWarn, "warning": slog.LevelWarn, "error": slog.LevelError,
	} {
		got, err := ParseLevel(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseLevel("loud")
	assert.Error(t, err)
}

func TestNewFiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	l, err := New("warn", &buf)
	require.NoError(t, err)
	l.Info("hidden")
	l.Warn("shown", "k", "v")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
	assert.Contains(t, buf.String(), "k=v")
}

func TestOpenFile(t *testing.T) {
	l, closeFn, err := OpenFile("info", "")
	require.NoError(t, err)
	l.Info("dropped")
	require.NoError(t, closeFn())

	p := filepath.Join(t.TempDir(), "todo.log")
	l, closeFn, err = OpenFile("debug", p)
	require.NoError(t, err)
	l.Debug("written")
	require.NoError(t, closeFn())
	b, err := os.ReadFile(p)
	require.NoError(t, err)
	assert.Contains(t, string(b), "written")
}
