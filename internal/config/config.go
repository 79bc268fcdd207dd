package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// ServiceConfig is the versioned service configuration loaded from YAML.
// Credentials never live here; they come from the environment via
// ResolveSecret.
type ServiceConfig struct {
	Version  int `yaml:"version"`
	Platform struct {
		BaseURL   string `yaml:"base_url"`
		AccountID string `yaml:"account_id"`
		Username  string `yaml:"username"`
	} `yaml:"platform"`
	Server struct {
		Port        int    `yaml:"port"`
		TLSCertPath string `yaml:"tls_cert_path"`
		TLSKeyPath  string `yaml:"tls_key_path"`
	} `yaml:"server"`
	Orchestrator struct {
		RecoveryWindowSeconds int `yaml:"recovery_window_seconds"`
	} `yaml:"orchestrator"`
	Notify struct {
		BrokerURL   string `yaml:"broker_url"`
		TopicPrefix string `yaml:"topic_prefix"`
	} `yaml:"notify"`
	Storage struct {
		PostgresURL string `yaml:"postgres_url"`
	} `yaml:"storage"`
}

// ServerPort returns the configured API port, defaulting to 8080 if not set.
func (c *ServiceConfig) ServerPort() int {
	if c.Server.Port == 0 {
		return 8080
	}
	return c.Server.Port
}

// RecoveryWindow returns the configured recovery lookback, or zero when
// unset (the orchestrator applies its own default).
func (c *ServiceConfig) RecoveryWindow() time.Duration {
	return time.Duration(c.Orchestrator.RecoveryWindowSeconds) * time.Second
}

// LoadServiceConfig loads and validates the service configuration file.
func LoadServiceConfig(path string) (*ServiceConfig, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg ServiceConfig
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return nil, err
	}

	if cfg.Version != 1 {
		return nil, fmt.Errorf("unsupported config version: %d", cfg.Version)
	}

	if cfg.Platform.AccountID == "" {
		return nil, fmt.Errorf("platform.account_id is required")
	}
	if cfg.Platform.Username == "" {
		return nil, fmt.Errorf("platform.username is required")
	}

	return &cfg, nil
}
