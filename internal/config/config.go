package config

import (
	"errors"
	"io/fs"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Provider kinds.
const (
	ProviderOpenTDB  = "opentdb"
	ProviderPostgres = "postgres"
	ProviderStatic   = "static"
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
	Provider struct {
		Kind    string `yaml:"kind"`
		BaseURL string `yaml:"base_url"`
		Timeout string `yaml:"timeout"`
	} `yaml:"provider"`
	Quiz struct {
		QuestionCount int    `yaml:"question_count"`
		CategoryTTL   string `yaml:"category_ttl"`
	} `yaml:"quiz"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	cfg := Config{}
	cfg.Server.Port = "8080"
	cfg.Provider.Kind = ProviderOpenTDB
	cfg.Provider.BaseURL = "https://opentdb.com"
	cfg.Provider.Timeout = "10s"
	cfg.Quiz.QuestionCount = 10
	cfg.Quiz.CategoryTTL = "1h"
	return cfg
}

// Load reads YAML config from path on top of Default. A missing file is not an
// error so the CLI works without any setup.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
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
