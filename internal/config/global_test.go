package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeGlobalConfig(t *testing.T, content string) {
	t.Helper()
	ResetGlobalConfigCache()
	t.Cleanup(ResetGlobalConfigCache)

	configHome := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", configHome)
	if content == "" {
		return
	}
	dir := filepath.Join(configHome, GlobalConfigDir)
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, GlobalConfigFile), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestGlobalConfigPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/custom/config")
	if got, want := GlobalConfigPath(), "/custom/config/pubsync/config.yml"; got != want {
		t.Errorf("GlobalConfigPath() = %q, want %q", got, want)
	}

	t.Setenv("XDG_CONFIG_HOME", "")
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("Cannot get home directory")
	}
	if got, want := GlobalConfigPath(), filepath.Join(home, ".config", "pubsync", "config.yml"); got != want {
		t.Errorf("GlobalConfigPath() = %q, want %q", got, want)
	}
}

func TestLoadGlobalConfig_NotFound(t *testing.T) {
	writeGlobalConfig(t, "")

	cfg, err := LoadGlobalConfig()
	if err != nil {
		t.Fatalf("LoadGlobalConfig() error = %v", err)
	}
	if cfg == nil || cfg.StorePath != "" || cfg.SearchAPIKey != "" {
		t.Errorf("LoadGlobalConfig() = %+v, want empty config", cfg)
	}
}

func TestLoadGlobalConfig_Valid(t *testing.T) {
	writeGlobalConfig(t, "store_path: /data/store\nsearch_api_key: from-file\n")

	cfg, err := LoadGlobalConfig()
	if err != nil {
		t.Fatalf("LoadGlobalConfig() error = %v", err)
	}
	if cfg.StorePath != "/data/store" || cfg.SearchAPIKey != "from-file" {
		t.Errorf("LoadGlobalConfig() = %+v", cfg)
	}
}

func TestLoadGlobalConfig_Invalid(t *testing.T) {
	writeGlobalConfig(t, "store_path: [unterminated\n")

	if _, err := LoadGlobalConfig(); err == nil {
		t.Error("LoadGlobalConfig() expected error for invalid YAML")
	}
}

func TestGetSearchAPIKey_EnvWins(t *testing.T) {
	writeGlobalConfig(t, "search_api_key: from-file\n")

	t.Setenv(EnvSearchAPIKey, "")
	if got := GetSearchAPIKey(); got != "from-file" {
		t.Errorf("GetSearchAPIKey() = %q, want from-file", got)
	}

	t.Setenv(EnvSearchAPIKey, "from-env")
	if got := GetSearchAPIKey(); got != "from-env" {
		t.Errorf("GetSearchAPIKey() = %q, want from-env", got)
	}
}

func TestValidateStorePath(t *testing.T) {
	writeGlobalConfig(t, "")
	if _, err := ValidateStorePath(); !errors.Is(err, ErrStorePathNotConfigured) {
		t.Errorf("ValidateStorePath() error = %v, want ErrStorePathNotConfigured", err)
	}

	store := t.TempDir()
	writeGlobalConfig(t, "store_path: "+store+"\n")
	if _, err := ValidateStorePath(); !errors.Is(err, ErrStorePathNotRepository) {
		t.Errorf("ValidateStorePath() error = %v, want ErrStorePathNotRepository", err)
	}

	if err := os.Mkdir(RepoPath(store), 0755); err != nil {
		t.Fatal(err)
	}
	ResetGlobalConfigCache()
	got, err := ValidateStorePath()
	if err != nil {
		t.Fatalf("ValidateStorePath() error = %v", err)
	}
	if got != store {
		t.Errorf("ValidateStorePath() = %q, want %q", got, store)
	}
}
