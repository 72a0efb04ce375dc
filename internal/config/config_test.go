package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Nomadcxx/jellybucket/internal/bucket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `
[bucket]
bucket_year = ["1950-59", "1960-69"]
bucket_alpha = ["A-D", "E-L", "M-Z"]
extrapolate = true
current_year = 2014

[[bucket.alpha_regex]]
label = "A-D"
pattern = "^[a-dA-D0-9]"

[server]
addr = ":9999"

[logging]
level = "debug"
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, sample)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, path, cfg.Path())
	assert.True(t, cfg.Exists())
	assert.Equal(t, []string{"1950-59", "1960-69"}, cfg.Bucket.Year)
	assert.Equal(t, []string{"A-D", "E-L", "M-Z"}, cfg.Bucket.Alpha)
	assert.True(t, cfg.Bucket.Extrapolate)
	assert.Equal(t, 2014, cfg.Bucket.CurrentYear)
	require.Len(t, cfg.Bucket.AlphaRegex, 1)
	assert.Equal(t, "A-D", cfg.Bucket.AlphaRegex[0].Label)
	assert.Equal(t, ":9999", cfg.Server.Addr)
	assert.True(t, cfg.Server.WatchConfig, "unset keys keep defaults")
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, 10, cfg.Logging.MaxSizeMB)
}

func TestLoad_MissingFileGivesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "absent.toml")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.False(t, cfg.Exists())
	assert.Empty(t, cfg.Bucket.Year)
	assert.Equal(t, "127.0.0.1:8687", cfg.Server.Addr)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoad_Malformed(t *testing.T) {
	path := writeConfig(t, "[bucket\nbucket_year = ")
	_, err := Load(path)
	assert.Error(t, err)
}

func TestBuckets(t *testing.T) {
	cfg, err := Load(writeConfig(t, sample))
	require.NoError(t, err)

	set, err := cfg.Buckets(nil)
	require.NoError(t, err)
	assert.Equal(t, "1910-19", set.Year.Lookup(1914))
	assert.Equal(t, "A-D", set.Alpha.Lookup("2Pac"))
	assert.Equal(t, "E-L", set.Alpha.Lookup("garry"))
}

func TestValidate(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Bucket.Year = []string{"1950s", "later"}

	err := cfg.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, bucket.ErrInvalidBucket)
	assert.Contains(t, err.Error(), "later")
}

func TestSaveRoundTrip(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Bucket.Year = []string{"1950s", "1960s", "1970-79"}
	cfg.Bucket.Alpha = []string{"ABCD", "E-Z"}
	cfg.Bucket.Extrapolate = true
	cfg.Bucket.AlphaRegex = []AlphaRegex{{Label: "ABCD", Pattern: "^[a-d]"}}
	cfg.Server.Addr = ":8000"

	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	require.NoError(t, cfg.Save(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "# jellybucket configuration")

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg.Bucket, loaded.Bucket)
	assert.Equal(t, cfg.Server, loaded.Server)
	assert.Equal(t, cfg.Logging, loaded.Logging)
}
