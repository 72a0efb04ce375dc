package main

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Nomadcxx/jellybucket/internal/ui"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testConfig = `
[bucket]
bucket_year = ["1950-59", "1960-69"]
bucket_alpha = ["ABCD", "FGH", "IJKL"]
current_year = 2014
`

// run executes the CLI with args and returns what it printed to stdout.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	ui.DisableColors()

	cfgFile, verbose, noColor, extrapolate = "", false, false, false

	old := os.Stdout
	r, w, err := os.Pipe()
	require.NoError(t, err)
	os.Stdout = w

	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetErr(io.Discard)
	runErr := cmd.Execute()

	w.Close()
	os.Stdout = old
	var buf bytes.Buffer
	_, err = io.Copy(&buf, r)
	require.NoError(t, err)
	return buf.String(), runErr
}

func writeTestConfig(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(testConfig), 0644))
	return path
}

func TestYearCommand(t *testing.T) {
	path := writeTestConfig(t)

	out, err := run(t, "--config", path, "year", "1959", "1974", "1966-04-01")
	require.NoError(t, err)
	assert.Equal(t, "1950-59\n1974\n1960-69\n", out)

	out, err = run(t, "--config", path, "year", "--extrapolate", "1914")
	require.NoError(t, err)
	assert.Equal(t, "1910-19\n", out)

	_, err = run(t, "--config", path, "year", "soon")
	assert.Error(t, err)
}

func TestAlphaCommand(t *testing.T) {
	path := writeTestConfig(t)

	out, err := run(t, "--config", path, "alpha", "garry", "errol")
	require.NoError(t, err)
	assert.Equal(t, "FGH\nE\n", out)
}

func TestBucketCommand(t *testing.T) {
	path := writeTestConfig(t)

	out, err := run(t, "--config", path, "bucket", "1955")
	require.NoError(t, err)
	assert.Equal(t, "1950-59\n", out)

	out, err = run(t, "--config", path, "bucket", "--field", "alpha", "1955")
	require.NoError(t, err)
	assert.Equal(t, "1\n", out)
}

func TestFormatCommand(t *testing.T) {
	path := writeTestConfig(t)

	out, err := run(t, "--config", path, "format", "%bucket{$year}/%bucket{$artist}/$artist",
		"--field", "year=1963", "--field", "artist=Cilla Black")
	require.NoError(t, err)
	assert.Equal(t, "1960-69/ABCD/Cilla Black\n", out)

	_, err = run(t, "--config", path, "format", "$x", "--field", "novalue")
	assert.Error(t, err)
}

func TestConfigInitAndCheck(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")

	_, err := run(t, "--config", path, "config", "init")
	require.NoError(t, err)

	_, err = run(t, "--config", path, "config", "init")
	assert.Error(t, err, "second init without --force")

	out, err := run(t, "--config", path, "config", "check")
	require.NoError(t, err)
	assert.Contains(t, out, "6 year and 7 alpha buckets OK")

	out, err = run(t, "--config", path, "year", "1975")
	require.NoError(t, err)
	assert.Equal(t, "1970s\n", out)
}

func TestConfigCheckRejectsBadLabels(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[bucket]\nbucket_year = [\"1950s\", \"nineties\"]\n"), 0644))

	_, err := run(t, "--config", path, "config", "check")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nineties")
}

func TestListCommand(t *testing.T) {
	path := writeTestConfig(t)

	out, err := run(t, "--config", path, "list")
	require.NoError(t, err)
	assert.Contains(t, out, "YEAR BUCKETS")
	assert.Contains(t, out, "1950-59")
	assert.Contains(t, out, "FGH")
	assert.True(t, strings.Index(out, "1950-59") < strings.Index(out, "FGH"))
}
