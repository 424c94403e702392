package shared

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestConfig(t *testing.T) {
	t.Run("DefaultConfig", func(t *testing.T) {
		config := DefaultConfig()

		if config.Database.Path != "./spotlite.db" {
			t.Errorf("expected database path ./spotlite.db, got %s", config.Database.Path)
		}

		if config.Server.Port != 3000 {
			t.Errorf("expected server port 3000, got %d", config.Server.Port)
		}

		if config.API.BaseURL != "http://127.0.0.1:8000/api/v1/" {
			t.Errorf("expected default base URL, got %s", config.API.BaseURL)
		}

		if config.API.Timeout() != 60*time.Second {
			t.Errorf("expected 60s timeout, got %v", config.API.Timeout())
		}

		if len(config.Catalog.Genres) != 5 || config.Catalog.Genres[0] != "Music" {
			t.Errorf("unexpected default genres: %v", config.Catalog.Genres)
		}

		if len(config.Catalog.Locations) != 3 {
			t.Errorf("unexpected default locations: %v", config.Catalog.Locations)
		}
	})

	t.Run("CreateConfigFile", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "config.toml")

		if err := CreateConfigFile(configPath); err != nil {
			t.Fatalf("failed to create config file: %v", err)
		}

		if _, err := os.Stat(configPath); err != nil {
			t.Fatalf("config file should exist: %v", err)
		}

		config, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to load created config: %v", err)
		}

		defaultConfig := DefaultConfig()
		if config.Database.Path != defaultConfig.Database.Path {
			t.Errorf("created config database path doesn't match default")
		}

		if err := CreateConfigFile(configPath); err == nil {
			t.Error("creating config file again should fail")
		}
	})

	t.Run("LoadConfig", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "config.toml")

		testConfig := `[api]
base_url = "https://events.example.com/api"
web_url = "https://events.example.com"
timeout_seconds = 5

[database]
path = "/custom/path.db"

[server]
host = "0.0.0.0"
port = 8080

[catalog]
locations = ["Mohali"]
`
		if err := os.WriteFile(configPath, []byte(testConfig), 0644); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		config, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to load config: %v", err)
		}

		if config.API.BaseURL != "https://events.example.com/api/" {
			t.Errorf("expected normalized base URL, got %s", config.API.BaseURL)
		}

		if config.API.WebURL != "https://events.example.com/" {
			t.Errorf("expected normalized web URL, got %s", config.API.WebURL)
		}

		if config.Database.Path != "/custom/path.db" {
			t.Errorf("expected database path /custom/path.db, got %s", config.Database.Path)
		}

		if config.Database.MaxOpenConns != 1 {
			t.Errorf("expected unset values to keep defaults, got %d", config.Database.MaxOpenConns)
		}

		if config.Server.Addr() != "0.0.0.0:8080" {
			t.Errorf("expected addr 0.0.0.0:8080, got %s", config.Server.Addr())
		}

		if len(config.Catalog.Locations) != 1 || config.Catalog.Locations[0] != "Mohali" {
			t.Errorf("expected overridden locations, got %v", config.Catalog.Locations)
		}
	})

	t.Run("LoadConfig With Invalid TOML", func(t *testing.T) {
		configPath := filepath.Join(t.TempDir(), "config.toml")
		if err := os.WriteFile(configPath, []byte("[api\nbase_url ="), 0644); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		_, err := LoadConfig(configPath)
		if !errors.Is(err, ErrInvalidConfig) {
			t.Errorf("expected ErrInvalidConfig, got %v", err)
		}
	})

	t.Run("ApplyEnv", func(t *testing.T) {
		t.Setenv(EnvAPIURL, "https://override.example.com")
		t.Setenv(EnvDBPath, "/tmp/override.db")

		config := DefaultConfig()
		config.ApplyEnv()

		if config.API.BaseURL != "https://override.example.com/" {
			t.Errorf("expected env base URL, got %s", config.API.BaseURL)
		}
		if config.Database.Path != "/tmp/override.db" {
			t.Errorf("expected env db path, got %s", config.Database.Path)
		}
		if config.API.WebURL != DefaultConfig().API.WebURL {
			t.Errorf("expected web URL untouched, got %s", config.API.WebURL)
		}
	})
}
