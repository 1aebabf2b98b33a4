package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const (
	defaultProbeTimeout    = 30
	defaultStrategyTimeout = 600
	defaultEntrypoint      = "server.py"
	defaultConstraint      = ">= 3.8"
	defaultTaskName        = "AgentfrontNFCBridge"
	defaultSmartCardSvc    = "SCardSvr"
)

// Load reads, defaults, and validates a bridge configuration file.
func Load(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	applyDefaults(&cfg)

	if err := Validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}

	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Settings.StateDir == "" {
		cfg.Settings.StateDir = defaultStateDir()
	}
	if cfg.Settings.ProbeTimeout <= 0 {
		cfg.Settings.ProbeTimeout = defaultProbeTimeout
	}
	if cfg.Settings.StrategyTimeout <= 0 {
		cfg.Settings.StrategyTimeout = defaultStrategyTimeout
	}
	if cfg.Bridge.Entrypoint == "" {
		cfg.Bridge.Entrypoint = defaultEntrypoint
	}
	if cfg.Bridge.SmartCardService == "" {
		cfg.Bridge.SmartCardService = defaultSmartCardSvc
	}
	if cfg.Runtime.Interpreter == "" {
		cfg.Runtime.Interpreter = defaultInterpreter()
	}
	if cfg.Runtime.Constraint == "" {
		cfg.Runtime.Constraint = defaultConstraint
	}
	if cfg.Autostart.TaskName == "" {
		cfg.Autostart.TaskName = defaultTaskName
	}
}

func defaultStateDir() string {
	base, err := os.UserConfigDir()
	if err != nil {
		base = os.TempDir()
	}
	return filepath.Join(base, "agentfront-nfc")
}
