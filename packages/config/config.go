// Package config loads fetchkit CLI defaults from a JSON config file.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// Config holds defaults applied to every CLI invocation.
type Config struct {
	Timeout     int               `json:"timeout,omitempty"` // milliseconds
	ValidateSSL *bool             `json:"validateSSL,omitempty"`
	Proxy       string            `json:"proxy,omitempty"`
	Headers     map[string]string `json:"headers,omitempty"` // Default headers for all requests
	NoColor     *bool             `json:"noColor,omitempty"`
}

// getBool returns the value of a bool pointer, or the default if nil
func getBool(b *bool, defaultVal bool) bool {
	if b == nil {
		return defaultVal
	}
	return *b
}

// GetValidateSSL returns the validate SSL setting, defaulting to true
func (c *Config) GetValidateSSL() bool {
	return getBool(c.ValidateSSL, true)
}

// GetNoColor returns the no color setting, defaulting to false
func (c *Config) GetNoColor() bool {
	return getBool(c.NoColor, false)
}

// DefaultConfig returns a configuration with default values
func DefaultConfig() *Config {
	return &Config{
		Timeout: 30000, // 30 seconds
	}
}

// ConfigFilenames contains the possible config file names
var ConfigFilenames = []string{
	".fetchkit.config.json",
	"fetchkit.config.json",
	".fetchkitrc",
	".fetchkitrc.json",
}

// LoadConfig loads configuration from the specified path or searches for
// config files in the current directory.
func LoadConfig(path string) (*Config, error) {
	if path != "" {
		return loadConfigFromFile(path)
	}

	return FindAndLoadConfig(".")
}

// FindAndLoadConfig searches for a config file in the given directory
func FindAndLoadConfig(dir string) (*Config, error) {
	for _, filename := range ConfigFilenames {
		configPath := filepath.Join(dir, filename)
		if _, err := os.Stat(configPath); err == nil {
			return loadConfigFromFile(configPath)
		}
	}

	// Return defaults if no config file found
	return DefaultConfig(), nil
}

func loadConfigFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	config := DefaultConfig()
	if err := json.Unmarshal(data, config); err != nil {
		return nil, err
	}

	return config, nil
}
