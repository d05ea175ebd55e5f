package logger

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	require.Equal(t, DEBUG, ParseLevel("debug"))
	require.Equal(t, WARN, ParseLevel("WARNING"))
	require.Equal(t, ERROR, ParseLevel("ERROR"))
	require.Equal(t, INFO, ParseLevel("bogus"))
}

func TestLogger_FiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	l := NewWriter(&buf, WARN)

	l.Debug("dbg")
	l.Info("inf")
	l.Warn("wrn", F("collection", "ideas"))
	l.Error("err", Err(errors.New("boom")))

	out := buf.String()
	require.NotContains(t, out, "dbg")
	require.NotContains(t, out, "inf")
	require.Contains(t, out, "WARN")
	require.Contains(t, out, "collection=ideas")
	require.Contains(t, out, "error=boom")
}

func TestLogger_WithFieldsDoesNotLeakIntoParent(t *testing.T) {
	var buf bytes.Buffer
	parent := NewWriter(&buf, DEBUG)
	child := parent.WithFields(F("user", "u1"))

	child.Info("child")
	parent.Info("parent")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	require.Contains(t, lines[0], "user=u1")
	require.NotContains(t, lines[1], "user=u1")
}

func TestLogger_CallerIsReported(t *testing.T) {
	var buf bytes.Buffer
	NewWriter(&buf, DEBUG).Info("here")
	require.Contains(t, buf.String(), "logger_test.go:")
}

func TestNew_RotatesOversizedFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "app.log")
	require.NoError(t, os.WriteFile(path, bytes.Repeat([]byte("x"), 64), 0644))

	l, err := New(Config{Level: INFO, FilePath: path, MaxSize: 32, MaxAge: 7, MaxBackups: 2})
	require.NoError(t, err)
	l.Info("fresh")
	require.NoError(t, l.Close())

	_, err = os.Stat(path + ".1")
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), "fresh")
}

func TestNop_Discards(t *testing.T) {
	l := Nop()
	l.Error("nothing")
	require.NoError(t, l.Close())
}
