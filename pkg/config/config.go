package config

import (
	"errors"
	"io/fs"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"
)

type Config struct {
	DSN     string        `toml:"dsn"`
	Source  SourceConfig  `toml:"source"`
	Checker CheckerConfig `toml:"checker"`
	Logging LoggingConfig `toml:"logging"`
}

type SourceConfig struct {
	ListingURL    string `toml:"listing_url"`
	RawPrefix     string `toml:"raw_prefix"`
	CanonicalHost string `toml:"canonical_host"`
}

type CheckerConfig struct {
	UserAgent    string `toml:"user_agent"`
	CheckTimeout string `toml:"check_timeout"`
}

type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// Default returns the built-in configuration, pointed at the public legalcode
// corpus. The checker must be runnable with no config file present.
func Default() *Config {
	var cfg Config
	cfg.Source.ListingURL = "https://github.com/creativecommons/creativecommons.org/tree/master/docroot/legalcode"
	cfg.Source.RawPrefix = "https://raw.githubusercontent.com/creativecommons/creativecommons.org/master/docroot/legalcode/"
	cfg.Source.CanonicalHost = "https://creativecommons.org"
	cfg.Checker.UserAgent = "Mozilla/5.0 (X11; Linux i686 on x86_64; rv:10.0) Gecko/20100101 Firefox/10.0"
	cfg.Checker.CheckTimeout = "10s"
	cfg.Logging.Format = "text"
	cfg.Logging.Level = "info"
	return &cfg
}

func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, err
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *CheckerConfig) GetTimeout() time.Duration {
	d, err := time.ParseDuration(c.CheckTimeout)
	if err != nil {
		return 10 * time.Second // Fallback
	}
	return d
}
