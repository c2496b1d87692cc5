// Copyright 2026 Blink Labs Software
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package config holds the tx-submit-api configuration
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/blinklabs-io/txreject/internal/logging"
	"github.com/blinklabs-io/txreject/ledger"
	"github.com/blinklabs-io/txreject/node"
)

const (
	EnvConfigFile   = "TXREJECT_CONFIG"
	EnvSocketPath   = "TXREJECT_SOCKET_PATH"
	EnvNetwork      = "TXREJECT_NETWORK"
	EnvNetworkMagic = "TXREJECT_NETWORK_MAGIC"
	EnvLogLevel     = "TXREJECT_LOG_LEVEL"
)

type Config struct {
	Api     ApiConfig
	Node    NodeConfig
	Logging logging.Config
	Metrics MetricsConfig
}

type ApiConfig struct {
	ListenAddress   string
	ListenPort      uint
	MaxBodyBytes    int64
	ShutdownTimeout time.Duration
}

// Listen returns the address the HTTP server binds to
func (a ApiConfig) Listen() string {
	return fmt.Sprintf("%s:%d", a.ListenAddress, a.ListenPort)
}

type NodeConfig struct {
	SocketPath string
	Address    string
	Network    string
	// NetworkMagic overrides Network when set
	NetworkMagic uint32
	Timeout      time.Duration
	EraId        uint16
}

type MetricsConfig struct {
	Enabled bool
	Path    string
}

func Default() Config {
	return Config{
		Api: ApiConfig{
			ListenAddress:   "0.0.0.0",
			ListenPort:      8090,
			MaxBodyBytes:    1 << 20,
			ShutdownTimeout: 10 * time.Second,
		},
		Node: NodeConfig{
			Network: node.NetworkMainnet.Name,
			Timeout: 30 * time.Second,
			EraId:   uint16(ledger.ShelleyBasedEraConway),
		},
		Logging: logging.DefaultConfig(),
		Metrics: MetricsConfig{
			Enabled: true,
			Path:    "/metrics",
		},
	}
}

type fileConfig struct {
	Api struct {
		ListenAddress   string `toml:"listen_address"`
		ListenPort      uint   `toml:"listen_port"`
		MaxBodyBytes    int64  `toml:"max_body_bytes"`
		ShutdownTimeout string `toml:"shutdown_timeout"`
	} `toml:"api"`
	Node struct {
		SocketPath   string `toml:"socket_path"`
		Address      string `toml:"address"`
		Network      string `toml:"network"`
		NetworkMagic uint32 `toml:"network_magic"`
		Timeout      string `toml:"timeout"`
		EraId        uint16 `toml:"era_id"`
	} `toml:"node"`
	Logging struct {
		Level  string `toml:"level"`
		Format string `toml:"format"`
	} `toml:"logging"`
	Metrics struct {
		Enabled bool   `toml:"enabled"`
		Path    string `toml:"path"`
	} `toml:"metrics"`
}

// LoadFile reads a TOML file over the defaults. Keys missing from the file
// keep their default values
func LoadFile(path string) (Config, error) {
	cfg := Default()
	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return Config{}, fmt.Errorf("load config: unknown key %q", undecoded[0].String())
	}

	if meta.IsDefined("api", "listen_address") {
		cfg.Api.ListenAddress = strings.TrimSpace(raw.Api.ListenAddress)
	}
	if meta.IsDefined("api", "listen_port") {
		cfg.Api.ListenPort = raw.Api.ListenPort
	}
	if meta.IsDefined("api", "max_body_bytes") {
		cfg.Api.MaxBodyBytes = raw.Api.MaxBodyBytes
	}
	if meta.IsDefined("api", "shutdown_timeout") {
		d, err := time.ParseDuration(strings.TrimSpace(raw.Api.ShutdownTimeout))
		if err != nil {
			return Config{}, fmt.Errorf("parse api.shutdown_timeout: %w", err)
		}
		cfg.Api.ShutdownTimeout = d
	}

	if meta.IsDefined("node", "socket_path") {
		cfg.Node.SocketPath = strings.TrimSpace(raw.Node.SocketPath)
	}
	if meta.IsDefined("node", "address") {
		cfg.Node.Address = strings.TrimSpace(raw.Node.Address)
	}
	if meta.IsDefined("node", "network") {
		cfg.Node.Network = strings.TrimSpace(raw.Node.Network)
	}
	if meta.IsDefined("node", "network_magic") {
		cfg.Node.NetworkMagic = raw.Node.NetworkMagic
	}
	if meta.IsDefined("node", "timeout") {
		d, err := time.ParseDuration(strings.TrimSpace(raw.Node.Timeout))
		if err != nil {
			return Config{}, fmt.Errorf("parse node.timeout: %w", err)
		}
		cfg.Node.Timeout = d
	}
	if meta.IsDefined("node", "era_id") {
		cfg.Node.EraId = raw.Node.EraId
	}

	if meta.IsDefined("logging", "level") {
		cfg.Logging.Level = raw.Logging.Level
	}
	if meta.IsDefined("logging", "format") {
		cfg.Logging.Format = raw.Logging.Format
	}

	if meta.IsDefined("metrics", "enabled") {
		cfg.Metrics.Enabled = raw.Metrics.Enabled
	}
	if meta.IsDefined("metrics", "path") {
		cfg.Metrics.Path = strings.TrimSpace(raw.Metrics.Path)
	}

	return cfg, nil
}

// ApplyEnv overrides the node and logging settings from the environment
func (c *Config) ApplyEnv(getenv func(string) string) error {
	if getenv == nil {
		getenv = os.Getenv
	}
	if v := strings.TrimSpace(getenv(EnvSocketPath)); v != "" {
		c.Node.SocketPath = v
	}
	if v := strings.TrimSpace(getenv(EnvNetwork)); v != "" {
		c.Node.Network = v
		c.Node.NetworkMagic = 0
	}
	if v := strings.TrimSpace(getenv(EnvNetworkMagic)); v != "" {
		magic, err := strconv.ParseUint(v, 10, 32)
		if err != nil {
			return fmt.Errorf("parse %s: %w", EnvNetworkMagic, err)
		}
		c.Node.NetworkMagic = uint32(magic)
	}
	if v := strings.TrimSpace(getenv(EnvLogLevel)); v != "" {
		c.Logging.Level = v
	}
	return nil
}

// Validate checks the configuration and resolves the network magic from the
// network name when no magic is set
func (c *Config) Validate() error {
	if c.Node.SocketPath == "" && c.Node.Address == "" {
		return errors.New("one of node socket path or address must be set")
	}
	if c.Node.NetworkMagic == 0 {
		network := node.NetworkByName(c.Node.Network)
		if network == node.NetworkInvalid {
			return fmt.Errorf("invalid network specified: %s", c.Node.Network)
		}
		c.Node.NetworkMagic = network.NetworkMagic
	}
	if c.Node.Timeout <= 0 {
		return fmt.Errorf("node timeout must be positive: %s", c.Node.Timeout)
	}
	if _, err := ledger.GetEraById(uint64(c.Node.EraId)); err != nil {
		return err
	}
	if c.Api.ListenPort == 0 || c.Api.ListenPort > 65535 {
		return fmt.Errorf("invalid listen port: %d", c.Api.ListenPort)
	}
	if c.Api.MaxBodyBytes <= 0 {
		return fmt.Errorf("max body bytes must be positive: %d", c.Api.MaxBodyBytes)
	}
	if c.Metrics.Enabled && !strings.HasPrefix(c.Metrics.Path, "/") {
		return fmt.Errorf("invalid metrics path: %q", c.Metrics.Path)
	}
	return c.Logging.Validate()
}
