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

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/blinklabs-io/txreject/node"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noEnv(string) string {
	return ""
}

func TestLoadFileDefaultsAndOverrides(t *testing.T) {
	cfg, err := LoadFile(filepath.Join("testdata", "example.toml"))
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:8091", cfg.Api.Listen())
	assert.Equal(t, 5*time.Second, cfg.Api.ShutdownTimeout)
	// Not in the file
	assert.Equal(t, int64(1<<20), cfg.Api.MaxBodyBytes)
	assert.Equal(t, uint16(6), cfg.Node.EraId)
	assert.Equal(t, "/metrics", cfg.Metrics.Path)

	assert.Equal(t, "/run/cardano-node/node.socket", cfg.Node.SocketPath)
	assert.Equal(t, "preprod", cfg.Node.Network)
	assert.Equal(t, 15*time.Second, cfg.Node.Timeout)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.False(t, cfg.Metrics.Enabled)

	require.NoError(t, cfg.Validate())
	assert.Equal(t, node.NetworkPreprod.NetworkMagic, cfg.Node.NetworkMagic)
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadFileErrors(t *testing.T) {
	testDefs := []string{
		"[node]\ntimeout = \"soon\"\n",
		"[api]\nshutdown_timeout = 5\n",
		"[node]\nsocket = \"/tmp/x\"\n",
		"not toml",
	}
	for _, testDef := range testDefs {
		_, err := LoadFile(writeConfig(t, testDef))
		assert.Error(t, err, testDef)
	}
	_, err := LoadFile(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	testDefs := []struct {
		name   string
		modify func(*Config)
	}{
		{name: "no endpoint", modify: func(c *Config) { c.Node.SocketPath = "" }},
		{name: "bad network", modify: func(c *Config) { c.Node.Network = "nope" }},
		{name: "no timeout", modify: func(c *Config) { c.Node.Timeout = 0 }},
		{name: "unknown era", modify: func(c *Config) { c.Node.EraId = 9 }},
		{name: "no port", modify: func(c *Config) { c.Api.ListenPort = 0 }},
		{name: "no body", modify: func(c *Config) { c.Api.MaxBodyBytes = 0 }},
		{name: "metrics path", modify: func(c *Config) { c.Metrics.Path = "metrics" }},
		{name: "log level", modify: func(c *Config) { c.Logging.Level = "loud" }},
	}
	for _, testDef := range testDefs {
		cfg := Default()
		cfg.Node.SocketPath = "/tmp/node.socket"
		testDef.modify(&cfg)
		assert.Error(t, cfg.Validate(), testDef.name)
	}
}

func TestValidateNetworkMagicOverridesNetwork(t *testing.T) {
	cfg := Default()
	cfg.Node.Address = "localhost:3001"
	cfg.Node.Network = "nope"
	cfg.Node.NetworkMagic = 42
	require.NoError(t, cfg.Validate())
	assert.Equal(t, uint32(42), cfg.Node.NetworkMagic)
}

func TestLoadPrecedence(t *testing.T) {
	path := filepath.Join("testdata", "example.toml")
	env := map[string]string{
		EnvConfigFile: path,
		EnvNetwork:    "preview",
		EnvLogLevel:   "warn",
	}
	cfg, err := Load(
		[]string{"-log-level", "error", "-port", "9000"},
		func(key string) string { return env[key] },
	)
	require.NoError(t, err)
	// File
	assert.Equal(t, "/run/cardano-node/node.socket", cfg.Node.SocketPath)
	// Environment over file
	assert.Equal(t, node.NetworkPreview.NetworkMagic, cfg.Node.NetworkMagic)
	// Flags over environment
	assert.Equal(t, "error", cfg.Logging.Level)
	assert.Equal(t, uint(9000), cfg.Api.ListenPort)
}

func TestLoadWithoutFile(t *testing.T) {
	cfg, err := Load([]string{"-address", "localhost:3001", "-network-magic", "4"}, noEnv)
	require.NoError(t, err)
	assert.Equal(t, "localhost:3001", cfg.Node.Address)
	assert.Equal(t, uint32(4), cfg.Node.NetworkMagic)
	assert.Equal(t, uint(8090), cfg.Api.ListenPort)

	_, err = Load(nil, noEnv)
	assert.Error(t, err)
	_, err = Load([]string{"-bogus"}, noEnv)
	assert.Error(t, err)
}

func TestApplyEnvInvalidMagic(t *testing.T) {
	cfg := Default()
	err := cfg.ApplyEnv(func(key string) string {
		if key == EnvNetworkMagic {
			return "many"
		}
		return ""
	})
	assert.Error(t, err)
}
