// Package config loads orderform settings from an optional YAML (or JSON)
// file, a .env file and ORDERFORM_* environment variables, in that order of
// increasing precedence.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	theme "github.com/goliatone/go-theme"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-orderform/pkg/render"
)

// Environment variables that override file settings.
const (
	EnvAddr         = "ORDERFORM_ADDR"
	EnvThemeVariant = "ORDERFORM_THEME_VARIANT"
	EnvSessionTTL   = "ORDERFORM_SESSION_TTL"
)

type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Session SessionConfig `yaml:"session"`
	Theme   ThemeConfig   `yaml:"theme"`
	Home    HomeConfig    `yaml:"home"`
}

type ServerConfig struct {
	Addr              string        `yaml:"addr"`
	BasePath          string        `yaml:"base_path"`
	ReadTimeout       time.Duration `yaml:"read_timeout"`
	ReadHeaderTimeout time.Duration `yaml:"read_header_timeout"`
	WriteTimeout      time.Duration `yaml:"write_timeout"`
	IdleTimeout       time.Duration `yaml:"idle_timeout"`
	ShutdownTimeout   time.Duration `yaml:"shutdown_timeout"`
}

type SessionConfig struct {
	TTL        time.Duration `yaml:"ttl"`
	CookieName string        `yaml:"cookie_name"`
}

// ThemeConfig selects a variant of the built-in theme and overrides tokens.
type ThemeConfig struct {
	Variant string            `yaml:"variant"`
	Tokens  map[string]string `yaml:"tokens"`
}

// Manifest returns the built-in theme manifest with the configured token
// overrides applied to its base tokens.
func (t ThemeConfig) Manifest() *theme.Manifest {
	manifest := render.DefaultManifest()
	for name, value := range t.Tokens {
		manifest.Tokens[name] = value
	}
	return manifest
}

// Resolve merges the configured variant into the manifest.
func (t ThemeConfig) Resolve() (*render.ThemeConfig, error) {
	return render.ResolveTheme(t.Manifest(), t.Variant)
}

type HomeConfig struct {
	IntroHTML string `yaml:"intro_html"`
}

// Default returns the settings used when nothing is configured.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Addr:              ":8080",
			ReadTimeout:       10 * time.Second,
			ReadHeaderTimeout: 3 * time.Second,
			WriteTimeout:      10 * time.Second,
			IdleTimeout:       60 * time.Second,
			ShutdownTimeout:   5 * time.Second,
		},
		Session: SessionConfig{
			TTL:        30 * time.Minute,
			CookieName: "orderform_session",
		},
		Home: HomeConfig{
			IntroHTML: "<p>Fresh pizza, made to order. Pick a size and your favourite toppings.</p>",
		},
	}
}

// Load reads path (when non-empty) over the defaults, then applies the .env
// files and environment overrides. Missing .env files are ignored; a missing
// config file is an error.
func Load(path string, envFiles ...string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("config: read %s: %w", path, err)
		}
		if err := Parse(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("config: %s: %w", path, err)
		}
	}

	if err := loadDotEnv(envFiles...); err != nil {
		return Config{}, err
	}
	if err := ApplyEnv(&cfg, os.LookupEnv); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Parse decodes YAML or JSON into cfg, keeping fields that data leaves out.
func Parse(data []byte, cfg *Config) error {
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("invalid YAML or JSON: %w", err)
	}
	return nil
}

func loadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	existing := make([]string, 0, len(files))
	for _, file := range files {
		if _, err := os.Stat(file); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("config: stat %s: %w", file, err)
		}
		existing = append(existing, file)
	}
	if len(existing) == 0 {
		return nil
	}
	// godotenv.Load never overrides variables already set in the process.
	if err := godotenv.Load(existing...); err != nil {
		return fmt.Errorf("config: load env files: %w", err)
	}
	return nil
}

// ApplyEnv overrides cfg with ORDERFORM_* values returned by lookup.
func ApplyEnv(cfg *Config, lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvAddr); ok && strings.TrimSpace(v) != "" {
		cfg.Server.Addr = strings.TrimSpace(v)
	}
	if v, ok := lookup(EnvThemeVariant); ok {
		cfg.Theme.Variant = strings.TrimSpace(v)
	}
	if v, ok := lookup(EnvSessionTTL); ok && strings.TrimSpace(v) != "" {
		ttl, err := time.ParseDuration(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("config: %s: %w", EnvSessionTTL, err)
		}
		cfg.Session.TTL = ttl
	}
	return nil
}

// Validate rejects settings the server cannot run with.
func (c Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.Server.Addr) == "" {
		errs = append(errs, errors.New("server.addr is required"))
	}
	if c.Session.TTL <= 0 {
		errs = append(errs, errors.New("session.ttl must be positive"))
	}
	for _, t := range []struct {
		name string
		d    time.Duration
	}{
		{"server.read_timeout", c.Server.ReadTimeout},
		{"server.read_header_timeout", c.Server.ReadHeaderTimeout},
		{"server.write_timeout", c.Server.WriteTimeout},
		{"server.idle_timeout", c.Server.IdleTimeout},
		{"server.shutdown_timeout", c.Server.ShutdownTimeout},
	} {
		if t.d < 0 {
			errs = append(errs, fmt.Errorf("%s must not be negative", t.name))
		}
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}
