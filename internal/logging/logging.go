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

// Package logging builds the service logger
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

const (
	FormatText = "text"
	FormatJSON = "json"
)

type Config struct {
	Level  string
	Format string
}

func DefaultConfig() Config {
	return Config{
		Level:  "info",
		Format: FormatText,
	}
}

// Validate checks that the level and format are known
func (c Config) Validate() error {
	if _, ok := ParseLevel(c.Level); !ok {
		return fmt.Errorf("invalid log level: %q", c.Level)
	}
	switch normalize(c.Format) {
	case "", FormatText, FormatJSON:
	default:
		return fmt.Errorf("invalid log format: %q", c.Format)
	}
	return nil
}

// New returns a logger writing to stderr
func New(cfg Config) (*slog.Logger, error) {
	return NewWithWriter(cfg, os.Stderr)
}

func NewWithWriter(cfg Config, w io.Writer) (*slog.Logger, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	level, _ := ParseLevel(cfg.Level)
	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if normalize(cfg.Format) == FormatJSON {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	return slog.New(handler).With("component", "tx-submit-api"), nil
}

// ParseLevel maps a level name to a slog level. An empty name is info
func ParseLevel(raw string) (slog.Level, bool) {
	switch normalize(raw) {
	case "", "info":
		return slog.LevelInfo, true
	case "debug", "trace":
		return slog.LevelDebug, true
	case "warn", "warning":
		return slog.LevelWarn, true
	case "error":
		return slog.LevelError, true
	default:
		return slog.LevelInfo, false
	}
}

func normalize(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}
