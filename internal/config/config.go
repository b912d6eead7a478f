package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/Laisky/errors/v2"
	"github.com/pelletier/go-toml/v2"

	"booksearch/internal/eventbus"
)

const (
	// DefaultPageSize is how many cards one window step reveals
	DefaultPageSize = 12
	// DefaultLoadMoreDelayMs is the simulated latency of "Load More"
	DefaultLoadMoreDelayMs = 1000

	DefaultSearchURL = "https://openlibrary.org/search.json"
	DefaultCoversURL = "https://covers.openlibrary.org"
	DefaultLinkURL   = "https://www.goodreads.com/search"
)

// Config represents the application configuration
type Config struct {
	Version    int             `toml:"version"`
	API        APISettings     `toml:"api"`
	UISettings UISettings      `toml:"ui"`
	Log        LogSettings     `toml:"log"`
	Metrics    MetricsSettings `toml:"metrics"`
}

// APISettings describes the outbound endpoints
type APISettings struct {
	SearchURL         string  `toml:"search_url"`
	CoversURL         string  `toml:"covers_url"`
	LinkURL           string  `toml:"link_url"`
	UserAgent         string  `toml:"user_agent"`
	RequestsPerSecond float64 `toml:"requests_per_second"` // <= 0 disables limiting
	TimeoutSeconds    int     `toml:"timeout_seconds"`     // 0 leaves the transport default
}

// UISettings represents UI-related configuration
type UISettings struct {
	PageSize        int  `toml:"page_size"`
	LoadMoreDelayMs int  `toml:"load_more_delay_ms"`
	ShowCoverURLs   bool `toml:"show_cover_urls"`
}

// LogSettings controls the diagnostic log file
type LogSettings struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

// MetricsSettings controls the optional Prometheus endpoint
type MetricsSettings struct {
	Addr string `toml:"addr"`
}

// LoadMoreDelay returns the window extension delay as a duration
func (u UISettings) LoadMoreDelay() time.Duration {
	return time.Duration(u.LoadMoreDelayMs) * time.Millisecond
}

// Timeout returns the request timeout, zero meaning none
func (a APISettings) Timeout() time.Duration {
	return time.Duration(a.TimeoutSeconds) * time.Second
}

// ConfigService handles configuration management
type ConfigService interface {
	Load() (*Config, error)
	Save(config *Config) error
	LoadFromPath(path string) (*Config, error)
	SaveToPath(config *Config, path string) error
	Path() string
}

// configService is the concrete implementation
type configService struct {
	bus      eventbus.EventBus
	filePath string
}

// DefaultPath returns $XDG_CONFIG_HOME/booksearch/config.toml or a home fallback
func DefaultPath() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		configDir, err = os.UserHomeDir()
		if err != nil {
			configDir = "."
		}
		configDir = filepath.Join(configDir, ".config")
	}
	return filepath.Join(configDir, "booksearch", "config.toml")
}

// NewConfigService creates a config service rooted at path ("" for DefaultPath)
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

func (cs *configService) Path() string {
	return cs.filePath
}

// Load loads the configuration file, returning defaults when it does not exist
func (cs *configService) Load() (*Config, error) {
	if _, err := os.Stat(cs.filePath); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}

	cfg, err := cs.LoadFromPath(cs.filePath)
	if err != nil {
		return nil, err
	}

	if cs.bus != nil {
		cs.bus.Publish(eventbus.ConfigLoadedEvent{Path: cs.filePath})
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

// LoadFromPath loads configuration from a specific path
func (cs *configService) LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read config file %s", path)
	}

	// Start from defaults so missing keys keep sane values
	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrapf(err, "parse config file %s", path)
	}

	cfg.Normalize()
	return cfg, nil
}

// SaveToPath saves configuration to a specific path
func (cs *configService) SaveToPath(config *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.Wrap(err, "create config directory")
	}

	data, err := toml.Marshal(config)
	if err != nil {
		return errors.Wrap(err, "marshal config")
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.Wrap(err, "write config file")
	}
	return nil
}

// Normalize replaces out-of-range values with defaults
func (c *Config) Normalize() {
	def := DefaultConfig()
	if c.API.SearchURL == "" {
		c.API.SearchURL = def.API.SearchURL
	}
	if c.API.CoversURL == "" {
		c.API.CoversURL = def.API.CoversURL
	}
	if c.API.LinkURL == "" {
		c.API.LinkURL = def.API.LinkURL
	}
	if c.API.UserAgent == "" {
		c.API.UserAgent = def.API.UserAgent
	}
	if c.API.TimeoutSeconds < 0 {
		c.API.TimeoutSeconds = 0
	}
	if c.UISettings.PageSize <= 0 {
		c.UISettings.PageSize = DefaultPageSize
	}
	if c.UISettings.LoadMoreDelayMs < 0 {
		c.UISettings.LoadMoreDelayMs = DefaultLoadMoreDelayMs
	}
	if c.Log.Level == "" {
		c.Log.Level = def.Log.Level
	}
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Version: 1,
		API: APISettings{
			SearchURL:         DefaultSearchURL,
			CoversURL:         DefaultCoversURL,
			LinkURL:           DefaultLinkURL,
			UserAgent:         "booksearch/dev",
			RequestsPerSecond: 1,
		},
		UISettings: UISettings{
			PageSize:        DefaultPageSize,
			LoadMoreDelayMs: DefaultLoadMoreDelayMs,
			ShowCoverURLs:   true,
		},
		Log: LogSettings{
			File:  "booksearch.log",
			Level: "info",
		},
	}
}
