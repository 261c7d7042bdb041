package config

import (
	"embed"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/MarcinSonic/TheNewsApp/internal/feed"
	"github.com/adrg/xdg"
	"github.com/samber/lo"
	"gopkg.in/yaml.v3"
)

//go:embed default_config.yaml
var defaultConfigFS embed.FS

// APIKeyEnv supplies the key when api_key is empty.
const APIKeyEnv = "NEWSAPP_API_KEY"

// FallbackAPIKey is the Guardian's shared developer key.
const FallbackAPIKey = "test"

type Config struct {
	Endpoint       string          `yaml:"endpoint"`
	APIKey         string          `yaml:"api_key"`
	Sections       map[string]bool `yaml:"sections"`
	ConnectTimeout string          `yaml:"connect_timeout,omitempty"`
	ReadTimeout    string          `yaml:"read_timeout,omitempty"`
	LoadTimeout    string          `yaml:"load_timeout,omitempty"`
	RateLimit      float64         `yaml:"rate_limit"`
	LogLevel       string          `yaml:"log_level,omitempty"`
}

// Key resolves the API key: config file, then NEWSAPP_API_KEY, then FallbackAPIKey.
func (c *Config) Key() string {
	if c.APIKey != "" {
		return c.APIKey
	}
	if key := os.Getenv(APIKeyEnv); key != "" {
		return key
	}
	return FallbackAPIKey
}

func (c *Config) ConnectTimeoutDuration() time.Duration {
	return parseDuration(c.ConnectTimeout, feed.DefaultConnectTimeout)
}

func (c *Config) ReadTimeoutDuration() time.Duration {
	return parseDuration(c.ReadTimeout, feed.DefaultReadTimeout)
}

func (c *Config) LoadTimeoutDuration() time.Duration {
	return parseDuration(c.LoadTimeout, 30*time.Second)
}

func parseDuration(s string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}

// EnabledSections returns the enabled sections in canonical order.
func (c *Config) EnabledSections() []feed.Section {
	return lo.Filter(feed.AllSections(), func(s feed.Section, _ int) bool {
		return c.Sections[string(s)]
	})
}

// SetSection enables or disables a section.
func (c *Config) SetSection(s feed.Section, enabled bool) {
	if c.Sections == nil {
		c.Sections = make(map[string]bool)
	}
	c.Sections[string(s)] = enabled
}

// QuerySpec builds the query for the current settings.
func (c *Config) QuerySpec() feed.QuerySpec {
	return feed.QuerySpec{
		Sections: c.EnabledSections(),
		APIKey:   c.Key(),
	}
}

func DefaultConfigPath() string {
	return filepath.Join(xdg.ConfigHome, "newsapp", "config.yaml")
}

func loadDefaults() (*Config, error) {
	data, err := defaultConfigFS.ReadFile("default_config.yaml")
	if err != nil {
		return nil, fmt.Errorf("reading embedded config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded config: %w", err)
	}
	return &cfg, nil
}

func Load(path string) (*Config, error) {
	defaults, err := loadDefaults()
	if err != nil {
		return nil, err
	}

	if path == "" {
		path = DefaultConfigPath()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			// Non-fatal: embedded defaults still apply
			_ = writeDefaults(path)
			return defaults, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	mergeDefaults(&cfg, defaults)

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}

	return &cfg, nil
}

// Save writes the config to path, creating parent directories.
func (c *Config) Save(path string) error {
	if path == "" {
		path = DefaultConfigPath()
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

func writeDefaults(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, _ := defaultConfigFS.ReadFile("default_config.yaml")
	return os.WriteFile(path, data, 0o600)
}

// mergeDefaults fills fields the user file left empty. An api_key left
// empty stays empty so NEWSAPP_API_KEY can supply it.
func mergeDefaults(cfg, defaults *Config) {
	if cfg.Endpoint == "" {
		cfg.Endpoint = defaults.Endpoint
	}
	if cfg.ConnectTimeout == "" {
		cfg.ConnectTimeout = defaults.ConnectTimeout
	}
	if cfg.ReadTimeout == "" {
		cfg.ReadTimeout = defaults.ReadTimeout
	}
	if cfg.LoadTimeout == "" {
		cfg.LoadTimeout = defaults.LoadTimeout
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = defaults.LogLevel
	}
	if cfg.Sections == nil {
		cfg.Sections = make(map[string]bool)
	}
	for name, enabled := range defaults.Sections {
		if _, ok := cfg.Sections[name]; !ok {
			cfg.Sections[name] = enabled
		}
	}
}

func validate(cfg *Config) error {
	u, err := url.Parse(cfg.Endpoint)
	if err != nil {
		return fmt.Errorf("endpoint: invalid url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("endpoint: url scheme must be http or https, got %q", u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("endpoint: url has no host")
	}
	for name := range cfg.Sections {
		if _, err := feed.ParseSection(name); err != nil {
			return fmt.Errorf("sections: %w", err)
		}
	}
	for field, v := range map[string]string{
		"connect_timeout": cfg.ConnectTimeout,
		"read_timeout":    cfg.ReadTimeout,
		"load_timeout":    cfg.LoadTimeout,
	} {
		if v == "" {
			continue
		}
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%s: %w", field, err)
		}
		if d <= 0 {
			return fmt.Errorf("%s: must be positive, got %s", field, v)
		}
	}
	if cfg.RateLimit < 0 {
		return fmt.Errorf("rate_limit: must not be negative, got %v", cfg.RateLimit)
	}
	return nil
}
