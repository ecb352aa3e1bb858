package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// GlobalConfig represents configuration stored in ~/.config/pubsync/config.yml.
type GlobalConfig struct {
	StorePath    string `yaml:"store_path,omitempty"` // Repository used outside any repository
	SearchAPIKey string `yaml:"search_api_key,omitempty"`
}

const (
	// GlobalConfigDir is the directory name under XDG_CONFIG_HOME.
	GlobalConfigDir = "pubsync"
	// GlobalConfigFile is the config file name.
	GlobalConfigFile = "config.yml"

	// EnvSearchAPIKey overrides search_api_key.
	EnvSearchAPIKey = "PUBSYNC_SEARCH_API_KEY"
)

// globalConfigCache caches the loaded global config.
var globalConfigCache *GlobalConfig

// GlobalConfigPath returns the path to the global config file.
// Respects XDG_CONFIG_HOME, defaults to ~/.config/pubsync/config.yml.
func GlobalConfigPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, GlobalConfigDir, GlobalConfigFile)
}

// LoadGlobalConfig loads the global configuration file.
// Returns an empty config (not an error) if the file doesn't exist.
func LoadGlobalConfig() (*GlobalConfig, error) {
	if globalConfigCache != nil {
		return globalConfigCache, nil
	}

	path := GlobalConfigPath()
	if path == "" {
		return &GlobalConfig{}, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &GlobalConfig{}, nil
		}
		return nil, fmt.Errorf("reading global config: %w", err)
	}

	var cfg GlobalConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing global config: %w", err)
	}

	if cfg.StorePath != "" {
		cfg.StorePath = ExpandPath(cfg.StorePath)
	}

	globalConfigCache = &cfg
	return &cfg, nil
}

// ResetGlobalConfigCache clears the cached global config.
// Useful for testing.
func ResetGlobalConfigCache() {
	globalConfigCache = nil
}

// GetSearchAPIKey returns the search API key. The environment wins over
// the global config file.
func GetSearchAPIKey() string {
	if key := os.Getenv(EnvSearchAPIKey); key != "" {
		return key
	}
	cfg, err := LoadGlobalConfig()
	if err != nil {
		return ""
	}
	return cfg.SearchAPIKey
}

// ErrStorePathNotConfigured is returned when store_path is not set in config.
var ErrStorePathNotConfigured = errors.New("store_path not configured")

// ErrStorePathNotRepository is returned when store_path is not a repository.
var ErrStorePathNotRepository = errors.New("store_path is not a pubsync repository")

// ValidateStorePath returns the store path from global config after validation.
func ValidateStorePath() (string, error) {
	cfg, err := LoadGlobalConfig()
	if err != nil {
		return "", err
	}
	if cfg.StorePath == "" {
		return "", ErrStorePathNotConfigured
	}
	if !IsRepository(cfg.StorePath) {
		return "", fmt.Errorf("%w: %s", ErrStorePathNotRepository, cfg.StorePath)
	}
	return cfg.StorePath, nil
}

// HelpfulConfigMessage returns a helpful message when no repository is found.
func HelpfulConfigMessage() string {
	configPath := GlobalConfigPath()
	return fmt.Sprintf(`No pubsync repository found.

Run 'pubsync init' in the directory that should hold the store, or create
%s to set a default:
  mkdir -p %s
  echo 'store_path: /path/to/your/store' > %s`,
		configPath,
		filepath.Dir(configPath),
		configPath)
}
