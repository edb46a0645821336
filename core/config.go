package core

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/url"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultIDPrefix prefixes every finding and recommendation id
const DefaultIDPrefix = "a13"

// ConfigMetadata contains information about the configuration file
type ConfigMetadata struct {
	// Version of the configuration
	Version string `yaml:"version"`

	// Description of the configuration
	Description string `yaml:"description,omitempty"`

	// Author of the configuration
	Author string `yaml:"author,omitempty"`

	// Hash of the file content for integrity verification
	Hash string `yaml:"hash,omitempty"`
}

// Config controls the product descriptor, id prefix, redaction list and
// label tables used by an Exporter
type Config struct {
	// Metadata about the configuration
	Metadata ConfigMetadata `yaml:"metadata"`

	// Product descriptor embedded in every finding
	Product Product `yaml:"product"`

	// Prefix for generated ids
	IDPrefix string `yaml:"id_prefix,omitempty"`

	// Additional answer keys removed before answers are embedded
	RedactFields []string `yaml:"redact_fields,omitempty"`

	// Label table overrides, merged over DefaultLabels
	Labels *LabelTables `yaml:"labels,omitempty"`
}

// DefaultProduct is the product descriptor used when none is configured
func DefaultProduct() Product {
	return Product{
		Name:       "Amendment 13 Self-Assessment",
		VendorName: "Privacy Compliance Toolkit",
		Version:    "1.0.0",
	}
}

// DefaultConfig returns the built-in configuration
func DefaultConfig() *Config {
	return &Config{
		Metadata: ConfigMetadata{
			Version:     "1.0.0",
			Description: "Default OCSF export configuration",
		},
		Product:  DefaultProduct(),
		IDPrefix: DefaultIDPrefix,
		Labels:   DefaultLabels(),
	}
}

// LoadConfig reads a YAML configuration file and merges it over the defaults
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	return ParseConfig(data)
}

// ParseConfig parses YAML configuration bytes and merges them over the defaults
func ParseConfig(data []byte) (*Config, error) {
	var parsed Config
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := validateConfig(&parsed); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	cfg := DefaultConfig()
	cfg.Metadata = parsed.Metadata
	cfg.Metadata.Hash = calculateConfigHash(data)
	if parsed.Product.Name != "" {
		cfg.Product = parsed.Product
	}
	if parsed.IDPrefix != "" {
		cfg.IDPrefix = parsed.IDPrefix
	}
	cfg.RedactFields = parsed.RedactFields
	cfg.Labels.Merge(parsed.Labels)

	return cfg, nil
}

// SaveConfig validates a configuration and writes it to a YAML file
func SaveConfig(cfg *Config, path string) error {
	if err := validateConfig(cfg); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// validateConfig checks if a parsed configuration is usable
func validateConfig(cfg *Config) error {
	if cfg.Product.Name == "" && (cfg.Product.VendorName != "" || cfg.Product.Version != "") {
		return fmt.Errorf("product has no name")
	}

	if cfg.Labels == nil {
		return nil
	}

	for label, id := range cfg.Labels.RiskLevels {
		if id < 0 || id > 4 {
			return fmt.Errorf("risk label %q has id %d outside 0-4", label, id)
		}
	}

	for category, raw := range cfg.Labels.KBArticles {
		u, err := url.Parse(raw)
		if err != nil || !u.IsAbs() {
			return fmt.Errorf("kb article for %q is not an absolute URL: %q", category, raw)
		}
	}

	return nil
}

// calculateConfigHash generates a hash of the config content for integrity checking
func calculateConfigHash(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}
