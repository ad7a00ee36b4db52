// ABOUTME: Tests for configuration management
// ABOUTME: Verifies config load, save, and base URL resolution

package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestGetConfigPath(t *testing.T) {
	path := GetConfigPath()
	if path == "" {
		t.Error("GetConfigPath returned empty string")
	}
	if !filepath.IsAbs(path) {
		t.Errorf("GetConfigPath returned non-absolute path: %s", path)
	}
}

func TestGetDataPath(t *testing.T) {
	path := GetDataPath()
	if path == "" {
		t.Error("GetDataPath returned empty string")
	}
}

func TestLoadNonExistent(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tmpDir)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed on non-existent config: %v", err)
	}
	if cfg == nil {
		t.Fatal("Load returned nil config")
	}
	if cfg.AccessToken != "" {
		t.Error("fresh config should have no token")
	}
}

func TestSaveAndLoad(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tmpDir)

	cfg := &Config{
		BaseURL:     "https://test.example.com",
		AccessToken: "tok-123",
	}

	if err := cfg.Save(); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if loaded.BaseURL != cfg.BaseURL {
		t.Errorf("BaseURL mismatch: got %s, want %s", loaded.BaseURL, cfg.BaseURL)
	}
	if loaded.AccessToken != cfg.AccessToken {
		t.Errorf("AccessToken mismatch: got %s, want %s", loaded.AccessToken, cfg.AccessToken)
	}
}

func TestSaveFilePermissions(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tmpDir)

	cfg := &Config{AccessToken: "secret"}
	if err := cfg.Save(); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	info, err := os.Stat(GetConfigPath())
	if err != nil {
		t.Fatalf("Stat failed: %v", err)
	}
	if info.Mode().Perm() != 0600 {
		t.Errorf("config file mode = %o, want 600", info.Mode().Perm())
	}
}

func TestGetBaseURL(t *testing.T) {
	tests := []struct {
		name string
		env  string
		cfg  Config
		want string
	}{
		{"default", "", Config{}, DefaultBaseURL},
		{"from config", "", Config{BaseURL: "https://cfg.example.com"}, "https://cfg.example.com"},
		{"env wins", "https://env.example.com", Config{BaseURL: "https://cfg.example.com"}, "https://env.example.com"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("STUDYHUB_API_URL", tt.env)
			if got := tt.cfg.GetBaseURL(); got != tt.want {
				t.Errorf("GetBaseURL = %s, want %s", got, tt.want)
			}
		})
	}
}
