package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"jelly/internal/models"

	"gopkg.in/yaml.v3"
)

const (
	DefaultHost = "0.0.0.0"
	DefaultPort = 4242
)

// Config is the persisted dashboard settings file
type Config struct {
	Host            string  `json:"host" yaml:"host"`
	Port            int     `json:"port" yaml:"port"`
	Display         string  `json:"display" yaml:"display"`
	Theme           string  `json:"theme" yaml:"theme"`
	TimeFormat      string  `json:"time_format" yaml:"time_format"`
	ShowUpdateTime  bool    `json:"show_update_time" yaml:"show_update_time"`
	NetInterface    *string `json:"net_interface" yaml:"net_interface"`
	NetBaselineMbps int     `json:"net_baseline_mbps" yaml:"net_baseline_mbps"`
}

// Default returns the settings used when no file exists yet
func Default() *Config {
	return &Config{
		Host:            DefaultHost,
		Port:            DefaultPort,
		Display:         "gauges",
		Theme:           "light",
		TimeFormat:      "24",
		ShowUpdateTime:  true,
		NetBaselineMbps: models.DefaultBaselineMbps,
	}
}

func (c *Config) applyDefaults() {
	d := Default()
	if c.Host == "" {
		c.Host = d.Host
	}
	if c.Port <= 0 {
		c.Port = d.Port
	}
	if c.Display == "" {
		c.Display = d.Display
	}
	if c.Theme == "" {
		c.Theme = d.Theme
	}
	if c.TimeFormat == "" {
		c.TimeFormat = d.TimeFormat
	}
	if c.NetInterface != nil && *c.NetInterface == "" {
		c.NetInterface = nil
	}
	if c.NetBaselineMbps <= 0 {
		c.NetBaselineMbps = d.NetBaselineMbps
	}
}

func (c *Config) validate() error {
	if c.Port > 65535 {
		return fmt.Errorf("port %d out of range", c.Port)
	}
	return nil
}

// Addr is the listen address for the HTTP server
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// Selection extracts the network selection the sampler follows
func (c *Config) Selection() models.Selection {
	sel := models.Selection{BaselineMbps: c.NetBaselineMbps}
	if c.NetInterface != nil {
		name := *c.NetInterface
		sel.Interface = &name
	}
	return sel
}

// Store reads and writes the settings file. The file is re-read on every Load so
// edits made by other writers are picked up without restarting.
type Store struct {
	path string
	mu   sync.Mutex
}

// NewStore returns a store backed by path. Files ending in .yaml or .yml are
// encoded as YAML, everything else as JSON.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path returns the backing file path
func (s *Store) Path() string {
	return s.path
}

// Load reads the settings file, falling back to defaults when it does not exist
func (s *Store) Load() (*Config, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

// Save writes cfg to the settings file
func (s *Store) Save(cfg *Config) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save(cfg)
}

// Update applies fn to the current settings and persists the result as one step
func (s *Store) Update(fn func(cfg *Config)) (*Config, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cfg, err := s.load()
	if err != nil {
		return nil, err
	}
	fn(cfg)
	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if err := s.save(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Selection loads the settings and returns the current network selection
func (s *Store) Selection() (models.Selection, error) {
	cfg, err := s.Load()
	if err != nil {
		return models.DefaultSelection(), err
	}
	return cfg.Selection(), nil
}

func (s *Store) isYAML() bool {
	ext := strings.ToLower(filepath.Ext(s.path))
	return ext == ".yaml" || ext == ".yml"
}

func (s *Store) load() (*Config, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	// Keys missing from the file keep their defaults.
	cfg := Default()
	if s.isYAML() {
		err = yaml.Unmarshal(data, cfg)
	} else {
		err = json.Unmarshal(data, cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func (s *Store) save(cfg *Config) error {
	var (
		data []byte
		err  error
	)
	if s.isYAML() {
		data, err = yaml.Marshal(cfg)
	} else {
		data, err = json.MarshalIndent(cfg, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	if dir := filepath.Dir(s.path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create config dir: %w", err)
		}
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("failed to replace config: %w", err)
	}
	return nil
}
