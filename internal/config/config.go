// Package config holds the radar's runtime configuration: locality
// identity, default view parameters, and digest delivery settings.
// Components take the loaded value as an argument; nothing here is read
// from ambient state after Load returns.
package config

import (
	"embed"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed radar.yaml
var defaultYAML embed.FS

// SMTP carries mail delivery settings, filled from environment only.
type SMTP struct {
	Host string
	Port int
	User string
	Pass string
}

type Config struct {
	Council             string   `yaml:"council"`
	LGA                 string   `yaml:"lga"`
	AudienceDefaults    []string `yaml:"audience_defaults"`
	Jurisdictions       []string `yaml:"jurisdictions"`
	ClosingWindowDays   int      `yaml:"closing_window_days"`
	DigestLimit         int      `yaml:"digest_limit"`
	DigestSubjectPrefix string   `yaml:"digest_subject_prefix"`

	// Delivery settings, environment-only (DIGEST_*/SMTP_* variables).
	DigestTo      []string `yaml:"-"`
	DigestFrom    string   `yaml:"-"`
	DigestLGAOnly bool     `yaml:"-"`
	SMTP          SMTP     `yaml:"-"`
}

// Load reads the embedded defaults, overlays the YAML file at path when it
// exists, then applies environment overrides. A missing file is not an
// error; a malformed one is.
func Load(path string) (*Config, error) {
	data, err := defaultYAML.ReadFile("radar.yaml")
	if err != nil {
		return nil, fmt.Errorf("embedded defaults: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("embedded defaults: %w", err)
	}

	if path != "" {
		fileData, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(fileData, &cfg); err != nil {
				return nil, fmt.Errorf("parsing %s: %w", path, err)
			}
		case !os.IsNotExist(err):
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
	}

	cfg.applyEnv()
	return &cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("DIGEST_LGA"); v != "" {
		c.LGA = v
	}
	if v := os.Getenv("DIGEST_CLOSING_DAYS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.ClosingWindowDays = n
		}
	}
	if v := os.Getenv("DIGEST_LIMIT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.DigestLimit = n
		}
	}
	if v := os.Getenv("DIGEST_SUBJECT_PREFIX"); v != "" {
		c.DigestSubjectPrefix = v
	}
	if v := os.Getenv("DIGEST_TO"); v != "" {
		c.DigestTo = splitCSV(v)
	}
	if v := os.Getenv("DIGEST_FROM"); v != "" {
		c.DigestFrom = v
	}
	// DIGEST_ONLY_WYNDHAM is the historical name for the strict-locality
	// toggle; DIGEST_LGA_ONLY is the locality-neutral one.
	c.DigestLGAOnly = os.Getenv("DIGEST_LGA_ONLY") == "1" ||
		os.Getenv("DIGEST_ONLY_WYNDHAM") == "1"

	c.SMTP.Host = os.Getenv("SMTP_HOST")
	c.SMTP.Port = 587
	if v := os.Getenv("SMTP_PORT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.SMTP.Port = n
		}
	}
	c.SMTP.User = os.Getenv("SMTP_USER")
	c.SMTP.Pass = os.Getenv("SMTP_PASS")
}

func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}
