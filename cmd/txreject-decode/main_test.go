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

package main

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeAll(t *testing.T) {
	input := strings.Join([]string{
		"# captured from preview",
		"8182068183051a000de7561a00080fd6",
		"",
		"8182068182186300",
		"81820680",
	}, "\n")
	var out bytes.Buffer
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	err := decodeAll(context.Background(), logger, strings.NewReader(input), &out, 2, true)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSuffix(out.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(
		t,
		"ShelleyTxValidationError ShelleyBasedEraConway (ApplyTxError [ConwayTreasuryValueMismatch (Coin 911190) (Coin 528342)])",
		lines[0],
	)
	assert.True(t, strings.HasPrefix(lines[1], "Failed to decode error reason: "))
	assert.Equal(t, "ShelleyTxValidationError ShelleyBasedEraConway (ApplyTxError [])", lines[2])
}

func TestDecodeAllJSON(t *testing.T) {
	var out bytes.Buffer
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	err := decodeAll(
		context.Background(),
		logger,
		strings.NewReader("8182068182076162\n8182068182186300\n"),
		&out,
		0,
		false,
	)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSuffix(out.String(), "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], `"error":["ConwayMempoolFailure \"b\""]`)
	assert.Contains(t, lines[1], `"kind":"DecodeFailure"`)
	assert.Contains(t, lines[1], `"reason":"8182068182186300"`)
}

func TestDecodeAllBadHex(t *testing.T) {
	var out bytes.Buffer
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	err := decodeAll(
		context.Background(),
		logger,
		strings.NewReader("81820680\nnot-hex\n"),
		&out,
		1,
		true,
	)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 2")
}

func TestRunFlags(t *testing.T) {
	var out bytes.Buffer
	err := run([]string{"-text", "-log-level", "error"}, strings.NewReader("81820680\n"), &out)
	require.NoError(t, err)
	assert.Equal(t, "ShelleyTxValidationError ShelleyBasedEraConway (ApplyTxError [])\n", out.String())
	assert.Error(t, run([]string{"-log-level", "loud"}, strings.NewReader(""), &out))
	assert.Error(t, run([]string{"-input", t.TempDir() + "/missing"}, strings.NewReader(""), &out))
}
