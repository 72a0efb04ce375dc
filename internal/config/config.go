package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Nomadcxx/jellybucket/internal/bucket"
	"github.com/Nomadcxx/jellybucket/internal/logging"
	"github.com/Nomadcxx/jellybucket/internal/paths"
	toml "github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"
)

// AlphaRegex overrides how one alphabetic bucket matches.
type AlphaRegex struct {
	Label   string `mapstructure:"label" toml:"label"`
	Pattern string `mapstructure:"pattern" toml:"pattern"`
}

// BucketConfig is the [bucket] section.
type BucketConfig struct {
	Year        []string `mapstructure:"bucket_year" toml:"bucket_year"`
	Alpha       []string `mapstructure:"bucket_alpha" toml:"bucket_alpha"`
	Extrapolate bool     `mapstructure:"extrapolate" toml:"extrapolate"`
	// CurrentYear pins the year that closes the last open year bucket.
	// Zero uses the system clock.
	CurrentYear int          `mapstructure:"current_year" toml:"current_year"`
	AlphaRegex  []AlphaRegex `mapstructure:"alpha_regex" toml:"alpha_regex"`
}

// ServerConfig is the [server] section used by `jellybucket serve`.
type ServerConfig struct {
	Addr        string `mapstructure:"addr" toml:"addr"`
	WatchConfig bool   `mapstructure:"watch_config" toml:"watch_config"`
}

type Config struct {
	Bucket  BucketConfig   `mapstructure:"bucket" toml:"bucket"`
	Server  ServerConfig   `mapstructure:"server" toml:"server"`
	Logging logging.Config `mapstructure:"logging" toml:"logging"`

	path string
}

// DefaultConfig returns default configuration
func DefaultConfig() *Config {
	return &Config{
		Bucket: BucketConfig{
			Year:  []string{},
			Alpha: []string{},
		},
		Server: ServerConfig{
			Addr:        "127.0.0.1:8687",
			WatchConfig: true,
		},
		Logging: logging.DefaultConfig(),
	}
}

// Load reads the config at path, or at the default location when path is
// empty. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		p, err := paths.ConfigPath()
		if err != nil {
			return nil, fmt.Errorf("unable to get config path: %w", err)
		}
		path = p
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("toml")

	if _, err := os.Stat(path); err == nil {
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("unable to read config file: %w", err)
		}
	}

	cfg := DefaultConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unable to unmarshal config: %w", err)
	}
	cfg.path = path
	return cfg, nil
}

// Path is the file the config was loaded from.
func (c *Config) Path() string {
	return c.path
}

// Exists reports whether the config file is present on disk.
func (c *Config) Exists() bool {
	if c.path == "" {
		return false
	}
	_, err := os.Stat(c.path)
	return err == nil
}

// Validate parses every bucket label so configuration errors surface before
// any lookup.
func (c *Config) Validate() error {
	_, err := c.Buckets(nil)
	return err
}

// BucketOptions converts the [bucket] section for bucket.NewSet.
func (c *Config) BucketOptions() bucket.Options {
	var regex map[string]string
	if len(c.Bucket.AlphaRegex) > 0 {
		regex = make(map[string]string, len(c.Bucket.AlphaRegex))
		for _, r := range c.Bucket.AlphaRegex {
			regex[r.Label] = r.Pattern
		}
	}
	return bucket.Options{
		Year:        c.Bucket.Year,
		Alpha:       c.Bucket.Alpha,
		AlphaRegex:  regex,
		Extrapolate: c.Bucket.Extrapolate,
	}
}

// Buckets builds the classifiers described by the configuration.
func (c *Config) Buckets(logger *logging.Logger, opts ...bucket.Option) (*bucket.Set, error) {
	base := []bucket.Option{bucket.WithLogger(logger)}
	if c.Bucket.CurrentYear > 0 {
		base = append(base, bucket.WithFixedYear(c.Bucket.CurrentYear))
	}
	set, err := bucket.NewSet(c.BucketOptions(), append(base, opts...)...)
	if err != nil {
		return nil, fmt.Errorf("invalid bucket configuration: %w", err)
	}
	return set, nil
}

const header = `# jellybucket configuration
#
# bucket_year entries: "1950", "1950s", "1950,51,52,53", "1950-59", "1960-1969"
# bucket_alpha entries: "A-D" or a list of initials such as "ABCD"
# extrapolate: generate buckets in the same style for uncovered years
# current_year: 0 uses the system clock
#
# To match an alpha bucket with a regex instead of its initials:
#
#   [[bucket.alpha_regex]]
#   label = "A-D"
#   pattern = "^[a-dA-D0-9]"

`

// Save writes the configuration as TOML to path, or to the path it was
// loaded from when path is empty.
func (c *Config) Save(path string) error {
	if path == "" {
		path = c.path
	}
	if path == "" {
		p, err := paths.ConfigPath()
		if err != nil {
			return fmt.Errorf("unable to get config path: %w", err)
		}
		path = p
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("unable to create config dir: %w", err)
	}

	content, err := c.ToTOML()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return fmt.Errorf("unable to write config: %w", err)
	}
	c.path = path
	return nil
}

// ToTOML renders the configuration with a short explanatory header.
func (c *Config) ToTOML() (string, error) {
	var buf bytes.Buffer
	enc := toml.NewEncoder(&buf)
	enc.SetIndentTables(true)
	if err := enc.Encode(c); err != nil {
		return "", fmt.Errorf("unable to encode config: %w", err)
	}
	return header + strings.TrimLeft(buf.String(), "\n"), nil
}
