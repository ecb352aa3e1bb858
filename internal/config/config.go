// Package config handles repository and global configuration.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

// Config represents repository configuration stored in .pubsync/config.json.
type Config struct {
	SearchURL     string  `json:"search_url,omitempty"`     // Remote search API base URL
	RateLimit     float64 `json:"rate_limit,omitempty"`     // Remote requests per second
	Workers       int     `json:"workers,omitempty"`        // Concurrent ingest workers
	TypeTable     string  `json:"type_table,omitempty"`     // YAML type table layered over the built-in one
	PDFRoot       string  `json:"pdf_root,omitempty"`       // Root for file artifact paths
	DefaultSource string  `json:"default_source,omitempty"` // Source for records that name none
}

const (
	RepoDir          = ".pubsync"
	ConfigFile       = "config.json"
	PublicationsFile = "publications.jsonl"
	CacheDir         = "cache"
	DBFile           = "publications.db"
)

// Default returns the configuration written by init.
func Default() *Config {
	return &Config{RateLimit: 5, Workers: 1}
}

// RepoPath returns the path to the .pubsync directory from a root path.
func RepoPath(root string) string {
	return filepath.Join(root, RepoDir)
}

// ConfigPath returns the path to config.json from a root path.
func ConfigPath(root string) string {
	return filepath.Join(root, RepoDir, ConfigFile)
}

// PublicationsPath returns the path to publications.jsonl from a root path.
func PublicationsPath(root string) string {
	return filepath.Join(root, RepoDir, PublicationsFile)
}

// CachePath returns the path to the cache directory from a root path.
func CachePath(root string) string {
	return filepath.Join(root, RepoDir, CacheDir)
}

// DBPath returns the path to publications.db from a root path.
func DBPath(root string) string {
	return filepath.Join(root, RepoDir, CacheDir, DBFile)
}

// IsRepository checks if the given path contains a pubsync repository.
func IsRepository(root string) bool {
	info, err := os.Stat(RepoPath(root))
	return err == nil && info.IsDir()
}

// FindRepository walks up from the given path to find a pubsync repository.
// Returns the repository root path or an error if not found.
func FindRepository(start string) (string, error) {
	abs, err := filepath.Abs(start)
	if err != nil {
		return "", fmt.Errorf("resolving path: %w", err)
	}

	for {
		if IsRepository(abs) {
			return abs, nil
		}

		parent := filepath.Dir(abs)
		if parent == abs {
			return "", fmt.Errorf("not in a pubsync repository (no %s directory found)", RepoDir)
		}
		abs = parent
	}
}

// Load reads configuration from the repository at the given root.
func Load(root string) (*Config, error) {
	data, err := os.ReadFile(ConfigPath(root))
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	return &cfg, nil
}

// Save writes configuration to the repository at the given root.
func (c *Config) Save(root string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	if err := os.WriteFile(ConfigPath(root), data, 0644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	return nil
}

// Keys lists the settable configuration keys.
func Keys() []string {
	keys := []string{"search_url", "rate_limit", "workers", "type_table", "pdf_root", "default_source"}
	sort.Strings(keys)
	return keys
}

// Get returns the string form of a configuration value.
func (c *Config) Get(key string) (string, error) {
	switch key {
	case "search_url":
		return c.SearchURL, nil
	case "rate_limit":
		return strconv.FormatFloat(c.RateLimit, 'f', -1, 64), nil
	case "workers":
		return strconv.Itoa(c.Workers), nil
	case "type_table":
		return c.TypeTable, nil
	case "pdf_root":
		return c.PDFRoot, nil
	case "default_source":
		return c.DefaultSource, nil
	}
	return "", fmt.Errorf("unknown config key: %s (valid: %s)", key, strings.Join(Keys(), ", "))
}

// Set validates and sets a configuration value.
func (c *Config) Set(key, value string) error {
	switch key {
	case "search_url":
		if value != "" && !strings.HasPrefix(value, "http://") && !strings.HasPrefix(value, "https://") {
			return fmt.Errorf("invalid search_url: %s (must be http or https)", value)
		}
		c.SearchURL = strings.TrimRight(value, "/")
	case "rate_limit":
		f, err := strconv.ParseFloat(value, 64)
		if err != nil || f < 0 {
			return fmt.Errorf("invalid rate_limit: %s (must be a non-negative number)", value)
		}
		c.RateLimit = f
	case "workers":
		n, err := strconv.Atoi(value)
		if err != nil || n < 1 {
			return fmt.Errorf("invalid workers: %s (must be a positive integer)", value)
		}
		c.Workers = n
	case "type_table":
		if err := ValidateFile(value); err != nil {
			return err
		}
		c.TypeTable = value
	case "pdf_root":
		if err := ValidatePDFRoot(value); err != nil {
			return err
		}
		c.PDFRoot = value
	case "default_source":
		c.DefaultSource = value
	default:
		return fmt.Errorf("unknown config key: %s (valid: %s)", key, strings.Join(Keys(), ", "))
	}
	return nil
}

// ValidatePDFRoot checks that the PDF root path exists and is a directory.
func ValidatePDFRoot(path string) error {
	if path == "" {
		return nil // Empty is allowed (not yet configured)
	}

	expandedPath := ExpandPath(path)

	info, err := os.Stat(expandedPath)
	if err != nil {
		return fmt.Errorf("path does not exist: %s", expandedPath)
	}
	if !info.IsDir() {
		return fmt.Errorf("path is not a directory: %s", expandedPath)
	}

	return nil
}

// ValidateFile checks that path names an existing regular file.
func ValidateFile(path string) error {
	if path == "" {
		return nil
	}

	expandedPath := ExpandPath(path)

	info, err := os.Stat(expandedPath)
	if err != nil {
		return fmt.Errorf("file does not exist: %s", expandedPath)
	}
	if info.IsDir() {
		return fmt.Errorf("path is a directory: %s", expandedPath)
	}
	return nil
}

// ExpandPath expands ~ to the user's home directory.
// Returns the original path unchanged if it doesn't start with ~.
func ExpandPath(path string) string {
	if len(path) == 0 || path[0] != '~' {
		return path
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return path // Return original if we can't get home directory
	}

	return filepath.Join(home, path[1:])
}
