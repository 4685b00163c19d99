package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"

	"querydeck/internal/eventbus"
)

// FileName is the config file looked up in the user config directory
const FileName = "querydeck.toml"

// EnvPrefix prefixes environment overrides, e.g. QUERYDECK_API_TOKEN
const EnvPrefix = "QUERYDECK"

// Config represents the application configuration
type Config struct {
	API     APIConfig     `mapstructure:"api"`
	Search  SearchConfig  `mapstructure:"search"`
	Log     LogConfig     `mapstructure:"log"`
	Metrics MetricsConfig `mapstructure:"metrics"`
}

// APIConfig describes the REST backend
type APIConfig struct {
	BaseURL           string        `mapstructure:"base_url"`
	Token             string        `mapstructure:"token"`
	Timeout           time.Duration `mapstructure:"timeout"`
	RequestsPerSecond float64       `mapstructure:"requests_per_second"`
	Retries           int           `mapstructure:"retries"`
}

// SearchConfig tunes the list screens. A zero PageSize and an empty
// DefaultSort keep each screen's own defaults.
type SearchConfig struct {
	Debounce          time.Duration `mapstructure:"debounce"`
	PageSize          int           `mapstructure:"page_size"`
	PageRadius        int           `mapstructure:"page_radius"`
	DefaultSort       string        `mapstructure:"default_sort"`
	DefaultDescending bool          `mapstructure:"default_descending"`
}

// LogConfig mirrors logger.Config
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}

// MetricsConfig controls the prometheus endpoint; an empty Addr disables it
type MetricsConfig struct {
	Addr string `mapstructure:"addr"`
}

// ConfigService handles configuration management
type ConfigService interface {
	Load() (*Config, error)
	Save(config *Config) error
	LoadFromPath(path string) (*Config, error)
	SaveToPath(config *Config, path string) error
	Path() string
}

type configService struct {
	bus      eventbus.EventBus
	filePath string
}

// NewConfigService creates a config service reading path, or the default
// location under the user config directory when path is empty
func NewConfigService(path string) ConfigService {
	if path == "" {
		path = DefaultPath()
	}
	return &configService{filePath: path}
}

// NewConfigServiceWithBus creates a config service with event bus support
func NewConfigServiceWithBus(path string, bus eventbus.EventBus) ConfigService {
	cs := NewConfigService(path).(*configService)
	cs.bus = bus
	return cs
}

// DefaultPath returns the default config file location
func DefaultPath() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		configDir, err = os.UserHomeDir()
		if err != nil {
			configDir = "."
		}
		configDir = filepath.Join(configDir, ".config")
	}
	return filepath.Join(configDir, "querydeck", FileName)
}

func (cs *configService) Path() string {
	return cs.filePath
}

// Load loads the configuration file, falling back to defaults (plus
// environment overrides) when it does not exist
func (cs *configService) Load() (*Config, error) {
	path := cs.filePath
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		path = ""
	}

	cfg, err := load(path)
	if err != nil {
		return nil, err
	}

	if cs.bus != nil {
		cs.bus.Publish(eventbus.ConfigLoadedEvent{Path: path, BaseURL: cfg.API.BaseURL})
	}
	return cfg, nil
}

// Save saves the configuration to the service's file
func (cs *configService) Save(config *Config) error {
	if err := cs.SaveToPath(config, cs.filePath); err != nil {
		return err
	}
	if cs.bus != nil {
		cs.bus.Publish(eventbus.ConfigSavedEvent{Path: cs.filePath})
	}
	return nil
}

// LoadFromPath loads configuration from a specific path, which must exist
func (cs *configService) LoadFromPath(path string) (*Config, error) {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("config file not found: %s", path)
	}
	return load(path)
}

// SaveToPath writes configuration as TOML to a specific path
func (cs *configService) SaveToPath(config *Config, path string) error {
	if err := config.Validate(); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(document(config))
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// load reads path (skipped when empty) on top of the defaults and applies
// QUERYDECK_* environment overrides
func load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v, DefaultConfig())

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("toml")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper, d *Config) {
	v.SetDefault("api.base_url", d.API.BaseURL)
	v.SetDefault("api.token", d.API.Token)
	v.SetDefault("api.timeout", d.API.Timeout)
	v.SetDefault("api.requests_per_second", d.API.RequestsPerSecond)
	v.SetDefault("api.retries", d.API.Retries)

	v.SetDefault("search.debounce", d.Search.Debounce)
	v.SetDefault("search.page_size", d.Search.PageSize)
	v.SetDefault("search.page_radius", d.Search.PageRadius)
	v.SetDefault("search.default_sort", d.Search.DefaultSort)
	v.SetDefault("search.default_descending", d.Search.DefaultDescending)

	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.format", d.Log.Format)
	v.SetDefault("log.output", d.Log.Output)

	v.SetDefault("metrics.addr", d.Metrics.Addr)
}

// document is the on-disk shape; durations are written as "350ms" strings
// so the file stays readable and viper decodes them back.
func document(c *Config) map[string]any {
	return map[string]any{
		"api": map[string]any{
			"base_url":            c.API.BaseURL,
			"token":               c.API.Token,
			"timeout":             c.API.Timeout.String(),
			"requests_per_second": c.API.RequestsPerSecond,
			"retries":             c.API.Retries,
		},
		"search": map[string]any{
			"debounce":           c.Search.Debounce.String(),
			"page_size":          c.Search.PageSize,
			"page_radius":        c.Search.PageRadius,
			"default_sort":       c.Search.DefaultSort,
			"default_descending": c.Search.DefaultDescending,
		},
		"log": map[string]any{
			"level":  c.Log.Level,
			"format": c.Log.Format,
			"output": c.Log.Output,
		},
		"metrics": map[string]any{
			"addr": c.Metrics.Addr,
		},
	}
}

// Validate rejects values the list screens cannot work with
func (c *Config) Validate() error {
	switch {
	case c.API.Timeout < 0:
		return fmt.Errorf("api.timeout must not be negative")
	case c.API.RequestsPerSecond < 0:
		return fmt.Errorf("api.requests_per_second must not be negative")
	case c.API.Retries < 0:
		return fmt.Errorf("api.retries must not be negative")
	case c.Search.Debounce < 0:
		return fmt.Errorf("search.debounce must not be negative")
	case c.Search.PageSize < 0:
		return fmt.Errorf("search.page_size must not be negative")
	case c.Search.PageRadius < 0:
		return fmt.Errorf("search.page_radius must not be negative")
	}
	return nil
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		API: APIConfig{
			BaseURL:           "http://localhost:5239",
			Timeout:           10 * time.Second,
			RequestsPerSecond: 10,
			Retries:           2,
		},
		Search: SearchConfig{
			Debounce:   350 * time.Millisecond,
			PageRadius: 2,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "console",
			Output: "querydeck.log",
		},
	}
}
