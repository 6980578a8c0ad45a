package config

import (
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
)

// Config is the full host configuration.
type Config struct {
	Host   HostSettings  `hcl:"host,block"`
	Tables []TableConfig `hcl:"table,block"`
}

// HostSettings contains host-level configuration.
type HostSettings struct {
	LogLevel           string `hcl:"log_level,optional"`
	TurnTimeoutSeconds int    `hcl:"turn_timeout_seconds,optional"`
}

// TableConfig defines one table.
type TableConfig struct {
	Name       string `hcl:"name,label"`
	SmallBlind int    `hcl:"small_blind"`
	BigBlind   int    `hcl:"big_blind"`
	BuyIn      int    `hcl:"buy_in,optional"`
	MinPlayers int    `hcl:"min_players,optional"`
	MaxPlayers int    `hcl:"max_players,optional"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Host: HostSettings{
			LogLevel:           "info",
			TurnTimeoutSeconds: 30,
		},
		Tables: []TableConfig{
			{
				Name:       "main",
				SmallBlind: 5,
				BigBlind:   10,
				BuyIn:      1000,
				MinPlayers: 2,
				MaxPlayers: 9,
			},
		},
	}
}

// Load reads configuration from an HCL file, falling back to Default
// when the file does not exist.
func Load(filename string) (*Config, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return Default(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var cfg Config
	diags = gohcl.DecodeBody(file.Body, nil, &cfg)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	cfg.applyDefaults()
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Host.LogLevel == "" {
		c.Host.LogLevel = "info"
	}
	if c.Host.TurnTimeoutSeconds == 0 {
		c.Host.TurnTimeoutSeconds = 30
	}
	for i := range c.Tables {
		t := &c.Tables[i]
		if t.BuyIn == 0 {
			t.BuyIn = t.BigBlind * 100
		}
		if t.MinPlayers == 0 {
			t.MinPlayers = 2
		}
		if t.MaxPlayers == 0 {
			t.MaxPlayers = 9
		}
	}
}

// Validate checks the configuration for consistency.
func (c *Config) Validate() error {
	if c.Host.TurnTimeoutSeconds < 1 {
		return fmt.Errorf("turn timeout must be at least one second")
	}
	if len(c.Tables) == 0 {
		return fmt.Errorf("at least one table must be configured")
	}
	for _, t := range c.Tables {
		if t.SmallBlind <= 0 {
			return fmt.Errorf("table %s: small blind must be positive", t.Name)
		}
		if t.BigBlind < t.SmallBlind {
			return fmt.Errorf("table %s: big blind must be at least the small blind", t.Name)
		}
		if t.BuyIn < t.BigBlind {
			return fmt.Errorf("table %s: buy-in must cover the big blind", t.Name)
		}
		if t.MinPlayers < 2 {
			return fmt.Errorf("table %s: min players must be at least 2", t.Name)
		}
		if t.MaxPlayers < t.MinPlayers || t.MaxPlayers > 10 {
			return fmt.Errorf("table %s: max players must be between min players and 10", t.Name)
		}
	}
	return nil
}

// Table returns the table configuration by name, or nil.
func (c *Config) Table(name string) *TableConfig {
	for i := range c.Tables {
		if c.Tables[i].Name == name {
			return &c.Tables[i]
		}
	}
	return nil
}
