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

// Package oracle runs the reference decoder, an external program that
// generates rejection payloads together with their reference rendering
package oracle

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strconv"
)

// EnvOracle names the environment variable holding the reference decoder path
const EnvOracle = "TXREJECT_ORACLE"

// ErrNotConfigured is returned when no reference decoder is available
var ErrNotConfigured = errors.New("reference decoder not configured")

type CaseType string

const (
	CaseApplyTxErrConway CaseType = "ApplyTxErr_Conway"
	CaseGHCInteger       CaseType = "GHCInteger"
	CaseDataText         CaseType = "DataText"
)

type TestCases struct {
	Seed      uint64     `json:"seed"`
	TestCases []TestCase `json:"testCases"`
}

type TestCase struct {
	// Cbor is the hex payload
	Cbor        string          `json:"cbor"`
	HaskellRepr string          `json:"haskellRepr"`
	JSON        json.RawMessage `json:"json"`
}

type GenerateOptions struct {
	CaseType      CaseType
	Number        uint
	GeneratorSize uint
	// Seed makes the output reproducible when set
	Seed *uint64
}

type Oracle struct {
	path string
}

func New(path string) *Oracle {
	return &Oracle{path: path}
}

// FromEnv returns the reference decoder named by EnvOracle
func FromEnv() (*Oracle, error) {
	path := os.Getenv(EnvOracle)
	if path == "" {
		return nil, fmt.Errorf("%w: %s is not set", ErrNotConfigured, EnvOracle)
	}
	return New(path), nil
}

// Generate asks the reference decoder for random test cases
func (o *Oracle) Generate(ctx context.Context, opts GenerateOptions) (*TestCases, error) {
	args := []string{
		"generate",
		"--number", strconv.FormatUint(uint64(opts.Number), 10),
		"--generator-size", strconv.FormatUint(uint64(opts.GeneratorSize), 10),
	}
	if opts.Seed != nil {
		args = append(args, "--seed", strconv.FormatUint(*opts.Seed, 10))
	}
	args = append(args, string(opts.CaseType))
	// #nosec G204
	cmd := exec.CommandContext(ctx, o.path, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("%s: %w", o.path, err)
	}
	if stderr.Len() > 0 {
		return nil, fmt.Errorf("%s: stderr non-empty: %s", o.path, stderr.String())
	}
	var ret TestCases
	if err := json.Unmarshal(stdout.Bytes(), &ret); err != nil {
		return nil, fmt.Errorf("%s: decode output: %w", o.path, err)
	}
	return &ret, nil
}
