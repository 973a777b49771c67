package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
)

// FileName is the config file created in the user's home directory
const FileName = ".charm-wallet-config.json"

// LocalProviderURL is the endpoint desktop wallets such as Frame expose to local apps
const LocalProviderURL = "ws://127.0.0.1:1248"

// Config represents the application configuration.
// Connection state is never stored here.
type Config struct {
	Providers []ProviderURL `json:"providers"`
	Logger    bool          `json:"logger"`
}

// ProviderURL represents a wallet provider endpoint
type ProviderURL struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// DefaultPath returns the config location inside the user's home directory
func DefaultPath() string {
	homeDir, _ := os.UserHomeDir()
	return filepath.Join(homeDir, FileName)
}

// Load reads the config from the specified path
func Load(path string) Config {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}
	}

	return cfg
}

// Save writes the config to the specified path
func Save(path string, cfg Config) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// DefaultConfig returns a new configuration with sensible defaults
func DefaultConfig() Config {
	return Config{
		Providers: []ProviderURL{
			{Name: "Local wallet", URL: LocalProviderURL},
		},
		Logger: false,
	}
}

// LoadOrCreate loads config from path, or creates a default one if not found
func LoadOrCreate(path string) Config {
	data, err := os.ReadFile(path)
	if err != nil {
		cfg := DefaultConfig()
		_ = Save(path, cfg)
		return cfg
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		// Invalid config, return default
		return DefaultConfig()
	}

	return cfg
}

// AddProvider appends an endpoint unless its URL is already listed.
// It reports whether the list changed.
func (c *Config) AddProvider(name, url string) bool {
	url = strings.TrimSpace(url)
	if url == "" {
		return false
	}
	for _, p := range c.Providers {
		if strings.EqualFold(p.URL, url) {
			return false
		}
	}
	name = strings.TrimSpace(name)
	if name == "" {
		name = url
	}
	c.Providers = append(c.Providers, ProviderURL{Name: name, URL: url})
	return true
}

// Candidates returns the endpoints to probe, in order: the explicit override
// first, then the configured providers, then the well-known local endpoint.
// Duplicates are dropped.
func (c Config) Candidates(override string) []string {
	var out []string
	seen := map[string]bool{}
	add := func(u string) {
		u = strings.TrimSpace(u)
		if u == "" || seen[strings.ToLower(u)] {
			return
		}
		seen[strings.ToLower(u)] = true
		out = append(out, u)
	}

	add(override)
	for _, p := range c.Providers {
		add(p.URL)
	}
	add(LocalProviderURL)
	return out
}
