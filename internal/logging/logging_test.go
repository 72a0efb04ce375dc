package logging

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]Level{
		"debug":   LevelDebug,
		"INFO":    LevelInfo,
		"warning": LevelWarn,
		"error":   LevelError,
		"bogus":   LevelInfo,
	}
	for in, want := range tests {
		assert.Equal(t, want, ParseLevel(in), in)
	}
}

func TestLoggerFormatAndLevel(t *testing.T) {
	var buf bytes.Buffer
	l := NewWriter(&buf, LevelInfo)
	l.now = func() time.Time { return time.Date(2014, 1, 2, 3, 4, 5, 0, time.UTC) }

	l.Debug("bucket", "hidden")
	l.Info("bucket", "Generated year bucket", F("label", "1910-19"))
	l.Error("config", "load failed", errors.New("boom"))

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "2014-01-02T03:04:05Z [INFO] [bucket] Generated year bucket | label=1910-19\n")
	assert.Contains(t, out, "[ERROR] [config] load failed | error=boom")
}

func TestNopDiscards(t *testing.T) {
	l := Nop()
	l.Error("x", "y", errors.New("z"))
	assert.NoError(t, l.Close())
}

func TestRotation(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "jellybucket.log")

	l, err := New(Config{Level: "debug", File: path, MaxSizeMB: 1, MaxBackups: 2})
	require.NoError(t, err)
	l.out = &bytes.Buffer{}
	l.file.maxSize = 64
	defer l.Close()

	for i := 0; i < 10; i++ {
		l.Info("test", strings.Repeat("x", 40))
	}

	_, err = os.Stat(filepath.Join(dir, "jellybucket.1.log"))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(dir, "jellybucket.2.log"))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(dir, "jellybucket.3.log"))
	assert.True(t, os.IsNotExist(err))
	assert.Equal(t, path, l.FilePath())
}

func TestRotation_DropsStaleBackups(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "jellybucket.log")
	require.NoError(t, os.WriteFile(path, []byte("live\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "jellybucket.1.log"), []byte("one\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "jellybucket.7.log"), []byte("old\n"), 0644))

	require.NoError(t, shiftBackups(path, 2))

	got, err := os.ReadFile(filepath.Join(dir, "jellybucket.1.log"))
	require.NoError(t, err)
	assert.Equal(t, "live\n", string(got))
	got, err = os.ReadFile(filepath.Join(dir, "jellybucket.2.log"))
	require.NoError(t, err)
	assert.Equal(t, "one\n", string(got))
	_, err = os.Stat(filepath.Join(dir, "jellybucket.7.log"))
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestSetLevel(t *testing.T) {
	var buf bytes.Buffer
	l := NewWriter(&buf, LevelWarn)
	l.Info("api", "quiet")
	l.SetLevel(LevelDebug)
	l.Debug("api", "loud")

	assert.NotContains(t, buf.String(), "quiet")
	assert.Contains(t, buf.String(), "[DEBUG] [api] loud")
	assert.Empty(t, NewWriter(&buf, LevelInfo).FilePath())
}
