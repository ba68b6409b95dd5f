/*
github.com/tcrain/consmsg - Binary wire messages for consensus nodes.
Copyright (C) 2020 The project authors - tcrain

This program is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

This program is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with this program.  If not, see <https://www.gnu.org/licenses/>.

*/
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ValidatorConfig is a consensus participant known to this node.
type ValidatorConfig struct {
	ID        uint32 `yaml:"id"`
	PublicKey string `yaml:"public_key"` // hex encoded
}

// NodeConfig holds the settings a node needs to decode and verify peer messages.
type NodeConfig struct {
	NetworkID      uint8             `yaml:"network_id"`
	MaxMessageSize int               `yaml:"max_message_size"`
	ProcessThreads int               `yaml:"process_threads"`
	LogLevel       string            `yaml:"log_level"`
	Validators     []ValidatorConfig `yaml:"validators"`
}

// DefaultNodeConfig returns the compiled in defaults.
func DefaultNodeConfig() *NodeConfig {
	return &NodeConfig{
		NetworkID:      DefaultNetworkID,
		MaxMessageSize: MaxMsgSize,
		ProcessThreads: DefaultMsgProcesThreads,
	}
}

// LoadNodeConfig reads and parses the YAML config file at path.
// Fields missing from the file keep their default values.
func LoadNodeConfig(path string) (*NodeConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseNodeConfig(data)
}

// ParseNodeConfig parses a YAML encoded node config.
func ParseNodeConfig(data []byte) (*NodeConfig, error) {
	cfg := DefaultNodeConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse node config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the config values are usable.
func (cfg *NodeConfig) Validate() error {
	if cfg.MaxMessageSize <= 0 || cfg.MaxMessageSize > MaxMsgSize {
		return fmt.Errorf("max_message_size must be in [1, %d], got %d", MaxMsgSize, cfg.MaxMessageSize)
	}
	if cfg.ProcessThreads <= 0 {
		return fmt.Errorf("process_threads must be positive, got %d", cfg.ProcessThreads)
	}
	seen := make(map[uint32]bool, len(cfg.Validators))
	for _, v := range cfg.Validators {
		if seen[v.ID] {
			return fmt.Errorf("duplicate validator id %d", v.ID)
		}
		seen[v.ID] = true
	}
	return nil
}
