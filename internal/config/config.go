// Package config handles layered YAML configuration with environment overrides.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds all rolodex configuration.
type Config struct {
	Storage  Storage  `yaml:"storage"`
	Export   Export   `yaml:"export"`
	Contacts Contacts `yaml:"contacts"`
}

// Storage holds the contact file paths.
type Storage struct {
	Path       string `yaml:"path"`        // Primary contacts file.
	BackupPath string `yaml:"backup_path"` // Single-generation backup, overwritten each save.
}

// Export holds export artifact settings.
type Export struct {
	Path string `yaml:"path"` // CSV export destination.
}

// Contacts holds contact field defaults.
type Contacts struct {
	DefaultGroup string `yaml:"default_group"` // Group assigned when none is given.
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Storage: Storage{
			Path:       "contacts_data.json",
			BackupPath: "contacts_backup.json",
		},
		Export: Export{
			Path: "contacts_export.csv",
		},
		Contacts: Contacts{
			DefaultGroup: "Other",
		},
	}
}

// Load reads a single YAML config file at path and returns a Config.
// For merging multiple config sources, use LoadLayered instead.
// If the file does not exist, defaults are returned without error.
// If the file contains invalid YAML or unknown fields, an error is returned.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &cfg, nil
		}
		return nil, fmt.Errorf("config: reading %s: %w", path, err)
	}

	if len(data) == 0 {
		return &cfg, nil
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		// Comment-only YAML files produce EOF with no decoded content.
		if errors.Is(err, io.EOF) {
			return &cfg, nil
		}
		return nil, fmt.Errorf("config: parsing %s: %w", path, err)
	}

	return &cfg, nil
}

// LoadLayered loads config from multiple paths with increasing priority.
// Later paths override earlier ones. Missing files are skipped.
func LoadLayered(paths ...string) (*Config, error) {
	cfg := DefaultConfig()

	for _, path := range paths {
		layer, err := loadLayer(path)
		if err != nil {
			return nil, err
		}
		if layer == nil {
			continue
		}
		cfg.merge(layer)
	}

	return &cfg, nil
}

// Validate checks that config values are usable.
func (c *Config) Validate() error {
	if c.Storage.Path == "" {
		return errors.New("config: storage.path cannot be empty")
	}
	if c.Storage.BackupPath == "" {
		return errors.New("config: storage.backup_path cannot be empty")
	}
	if c.Storage.BackupPath == c.Storage.Path {
		return fmt.Errorf("config: storage.backup_path must differ from storage.path, both are %q", c.Storage.Path)
	}
	if c.Export.Path == "" {
		return errors.New("config: export.path cannot be empty")
	}
	if c.Contacts.DefaultGroup == "" {
		return errors.New("config: contacts.default_group cannot be empty")
	}
	return nil
}

// ApplyEnv applies environment variable overrides to the config.
// Supported variables: ROLODEX_CONTACTS_PATH, ROLODEX_BACKUP_PATH,
// ROLODEX_EXPORT_PATH, ROLODEX_DEFAULT_GROUP.
func (c *Config) ApplyEnv() {
	if v := os.Getenv("ROLODEX_CONTACTS_PATH"); v != "" {
		c.Storage.Path = v
	}
	if v := os.Getenv("ROLODEX_BACKUP_PATH"); v != "" {
		c.Storage.BackupPath = v
	}
	if v := os.Getenv("ROLODEX_EXPORT_PATH"); v != "" {
		c.Export.Path = v
	}
	if v := os.Getenv("ROLODEX_DEFAULT_GROUP"); v != "" {
		c.Contacts.DefaultGroup = v
	}
}

// rawConfig mirrors Config but uses pointers to distinguish set vs unset fields.
type rawConfig struct {
	Storage  *rawStorage  `yaml:"storage"`
	Export   *rawExport   `yaml:"export"`
	Contacts *rawContacts `yaml:"contacts"`
}

type rawStorage struct {
	Path       *string `yaml:"path"`
	BackupPath *string `yaml:"backup_path"`
}

type rawExport struct {
	Path *string `yaml:"path"`
}

type rawContacts struct {
	DefaultGroup *string `yaml:"default_group"`
}

// loadLayer reads a single config file into a rawConfig for selective merging.
// Returns nil if the file does not exist. Rejects unknown fields.
func loadLayer(path string) (*rawConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("config: reading %s: %w", path, err)
	}

	if len(data) == 0 {
		return nil, nil
	}

	var raw rawConfig
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("config: parsing %s: %w", path, err)
	}

	return &raw, nil
}

// merge applies non-nil fields from a rawConfig layer onto this Config.
func (c *Config) merge(layer *rawConfig) {
	if layer.Storage != nil {
		if layer.Storage.Path != nil {
			c.Storage.Path = *layer.Storage.Path
		}
		if layer.Storage.BackupPath != nil {
			c.Storage.BackupPath = *layer.Storage.BackupPath
		}
	}
	if layer.Export != nil {
		if layer.Export.Path != nil {
			c.Export.Path = *layer.Export.Path
		}
	}
	if layer.Contacts != nil {
		if layer.Contacts.DefaultGroup != nil {
			c.Contacts.DefaultGroup = *layer.Contacts.DefaultGroup
		}
	}
}
