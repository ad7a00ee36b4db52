// ABOUTME: Studyhub configuration management
// ABOUTME: Handles API base URL and persisted session token

package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// DefaultBaseURL is the campus API used when nothing else is configured.
const DefaultBaseURL = "http://localhost:8000"

// Config stores studyhub configuration
type Config struct {
	// BaseURL is the campus API base URL
	BaseURL string `json:"base_url,omitempty"`
	// AccessToken is the session token issued at login, replayed as the
	// access_token cookie on every request
	AccessToken string `json:"access_token,omitempty"`
}

func init() {
	// Best effort; a missing .env is the normal case
	_ = godotenv.Load()
}

// GetConfigPath returns the config file path
func GetConfigPath() string {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		homeDir, _ := os.UserHomeDir()
		configDir = filepath.Join(homeDir, ".config")
	}
	return filepath.Join(configDir, "studyhub", "config.json")
}

// GetDataPath returns the mirror database path following XDG standards.
func GetDataPath() string {
	dataDir := os.Getenv("XDG_DATA_HOME")
	if dataDir == "" {
		homeDir, _ := os.UserHomeDir()
		dataDir = filepath.Join(homeDir, ".local", "share")
	}
	return filepath.Join(dataDir, "studyhub", "mirror.db")
}

// Load reads config from disk
func Load() (*Config, error) {
	path := GetConfigPath()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, err
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Save writes config to disk
func (c *Config) Save() error {
	path := GetConfigPath()
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}

// GetBaseURL returns the API base URL, preferring environment variable.
func (c *Config) GetBaseURL() string {
	if url := os.Getenv("STUDYHUB_API_URL"); url != "" {
		return url
	}
	if c.BaseURL != "" {
		return c.BaseURL
	}
	return DefaultBaseURL
}
