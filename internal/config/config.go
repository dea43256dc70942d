package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server struct {
		Port string `yaml:"port"`
	} `yaml:"server"`
	Redis struct {
		Addr     string `yaml:"addr"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
		TTL      string `yaml:"ttl"`
	} `yaml:"redis"`
	Postgres struct {
		URL string `yaml:"url"`
	} `yaml:"postgres"`
	// Pool.TTL bounds how long a loaded pool is cached; "0s" turns caching off.
	Pool struct {
		ID   string `yaml:"id"`
		Path string `yaml:"path"`
		TTL  string `yaml:"ttl"`
	} `yaml:"pool"`
	Game struct {
		AnchorDate     string `yaml:"anchor_date"`
		Timezone       string `yaml:"timezone"`
		PlayURL        string `yaml:"play_url"`
		NextQuoteDelay string `yaml:"next_quote_delay"`
		TypoTolerance  int    `yaml:"typo_tolerance"`
	} `yaml:"game"`
}

// Load reads YAML config from path. A missing file yields defaults.
func Load(path string) (Config, error) {
	cfg := Config{}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		cfg.applyDefaults()
		return cfg, nil
	}
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Pool.ID == "" {
		c.Pool.ID = "default"
	}
	if c.Game.AnchorDate == "" {
		c.Game.AnchorDate = "2025-01-01"
	}
}

// Location resolves the configured timezone, falling back to time.Local.
func (c Config) Location() (*time.Location, error) {
	if c.Game.Timezone == "" {
		return time.Local, nil
	}
	return time.LoadLocation(c.Game.Timezone)
}

// TTLDuration parses a duration string or returns the fallback if empty.
func TTLDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}
	if d, err := time.ParseDuration(raw); err == nil {
		return d
	}
	return fallback
}
