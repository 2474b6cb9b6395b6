package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"

	"richedit/internal/eventbus"
)

// Pattern modes
const (
	PatternRegex   = "regex"
	PatternLiteral = "literal"
)

// Highlight modes
const (
	HighlightQuery = "query"
	HighlightMatch = "match"
)

// Config represents the application configuration
type Config struct {
	Version         int            `toml:"version"`
	DefaultFilename string         `toml:"default_filename"`
	Search          SearchSettings `toml:"search"`
	Files           FileSettings   `toml:"files"`
	UISettings      UISettings     `toml:"ui"`
}

// SearchSettings controls how the match navigator treats user input
type SearchSettings struct {
	PatternMode    string `toml:"pattern_mode"`   // regex | literal
	HighlightMode  string `toml:"highlight_mode"` // query | match
	HighlightClass string `toml:"highlight_class"`
	SkipMarkup     bool   `toml:"skip_markup"`
	MatchTimeoutMS int    `toml:"match_timeout_ms"`
}

// FileSettings controls file handling
type FileSettings struct {
	Watch bool `toml:"watch"`
}

// UISettings represents UI-related configuration
type UISettings struct {
	ShowTabs bool `toml:"show_tabs"`
}

// MatchTimeout returns the regex timeout as a duration
func (s SearchSettings) MatchTimeout() time.Duration {
	return time.Duration(s.MatchTimeoutMS) * time.Millisecond
}

// Validate checks enumerated settings
func (c *Config) Validate() error {
	switch c.Search.PatternMode {
	case PatternRegex, PatternLiteral:
	default:
		return fmt.Errorf("invalid search.pattern_mode %q (want %q or %q)", c.Search.PatternMode, PatternRegex, PatternLiteral)
	}
	switch c.Search.HighlightMode {
	case HighlightQuery, HighlightMatch:
	default:
		return fmt.Errorf("invalid search.highlight_mode %q (want %q or %q)", c.Search.HighlightMode, HighlightQuery, HighlightMatch)
	}
	if c.Search.HighlightClass == "" {
		return errors.New("search.highlight_class must not be empty")
	}
	if c.Search.MatchTimeoutMS < 0 {
		return errors.New("search.match_timeout_ms must not be negative")
	}
	return nil
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

// DefaultPath returns the per-user config file location
func DefaultPath() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		configDir, err = os.UserHomeDir()
		if err != nil {
			configDir = "."
		}
		configDir = filepath.Join(configDir, ".config")
	}
	return filepath.Join(configDir, "richedit", "config.toml")
}

// NewConfigService creates a config service for the given path.
// An empty path selects DefaultPath.
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

// Load loads the configuration from file, falling back to defaults when
// the file does not exist
func (cs *configService) Load() (*Config, error) {
	var cfg *Config
	if _, err := os.Stat(cs.filePath); errors.Is(err, os.ErrNotExist) {
		cfg = DefaultConfig()
	} else {
		cfg, err = cs.LoadFromPath(cs.filePath)
		if err != nil {
			return nil, err
		}
	}

	if cs.bus != nil {
		cs.bus.Publish(eventbus.ConfigLoadedEvent{Path: cs.filePath})
	}
	return cfg, nil
}

// Save saves the configuration to file
func (cs *configService) Save(config *Config) error {
	if err := cs.SaveToPath(config, cs.filePath); err != nil {
		return err
	}
	if cs.bus != nil {
		cs.bus.Publish(eventbus.ConfigSavedEvent{Path: cs.filePath})
	}
	return nil
}

// LoadFromPath loads configuration from a specific path. Keys missing from
// the file keep their default values.
func (cs *configService) LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("config file not found: %s", path)
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// SaveToPath saves configuration to a specific path
func (cs *configService) SaveToPath(config *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Version:         1,
		DefaultFilename: "untitled",
		Search: SearchSettings{
			PatternMode:    PatternRegex,
			HighlightMode:  HighlightQuery,
			HighlightClass: "highlight",
			MatchTimeoutMS: 500,
		},
		Files: FileSettings{
			Watch: true,
		},
		UISettings: UISettings{
			ShowTabs: true,
		},
	}
}
