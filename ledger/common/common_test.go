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

package common

import (
	"errors"
	"strings"
	"testing"

	"github.com/blinklabs-io/txreject/cbor"
	"github.com/blinklabs-io/txreject/haskell"
	"github.com/blinklabs-io/txreject/internal/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testHash224 = "22782faa6bd0c54048b6176eb0cc2f4aa6c56818b3b9075e480e4cbf"
	testHash256 = "0e13ed14ab5f6d9bd5cc4f3ba22e4cb67f2bbf2fb0ad76e2b0d0ab7a3e5c0b6f"
)

func TestHashRoles(t *testing.T) {
	hash224 := NewBlake2b224(test.DecodeHexString(testHash224))
	hash256 := NewBlake2b256(test.DecodeHexString(testHash256))
	testDefs := []struct {
		value    haskell.Shower
		expected string
	}{
		{
			value:    KeyHash{hash224},
			expected: `KeyHash {unKeyHash = "` + testHash224 + `"}`,
		},
		{
			value:    ScriptHash{hash224},
			expected: `ScriptHash "` + testHash224 + `"`,
		},
		{
			value:    SafeHash{hash256},
			expected: `SafeHash "` + testHash256 + `"`,
		},
		{
			value:    TxId{hash256},
			expected: `TxId {unTxId = SafeHash "` + testHash256 + `"}`,
		},
		{
			value:    AuxiliaryDataHash{hash256},
			expected: `AuxiliaryDataHash {unsafeAuxiliaryDataHash = SafeHash "` + testHash256 + `"}`,
		},
		{
			value:    VrfKeyHash{hash256},
			expected: `VRFVerKeyHash {unVRFVerKeyHash = "` + testHash256 + `"}`,
		},
		{
			value:    VKey(hash256),
			expected: `VKey (VerKeyEd25519DSIGN "` + testHash256 + `")`,
		},
	}
	for _, testDef := range testDefs {
		assert.Equal(t, testDef.expected, haskell.Show(testDef.value))
	}
}

func TestHashDecodeSize(t *testing.T) {
	var keyHash KeyHash
	_, err := cbor.Decode(
		test.EncodeCbor(test.DecodeHexString(testHash224)),
		&keyHash,
	)
	require.NoError(t, err)
	assert.Equal(t, testHash224, keyHash.String())
	// A 32 byte string is not a key hash
	_, err = cbor.Decode(
		test.EncodeCbor(test.DecodeHexString(testHash256)),
		&keyHash,
	)
	assert.ErrorIs(t, err, ErrMalformed)
	var txId TxId
	_, err = cbor.Decode(
		test.EncodeCbor(test.DecodeHexString(testHash224)),
		&txId,
	)
	assert.ErrorIs(t, err, ErrMalformed)
}

func TestHashDoesNotAliasInput(t *testing.T) {
	data := test.EncodeCbor(test.DecodeHexString(testHash224))
	var keyHash KeyHash
	_, err := cbor.Decode(data, &keyHash)
	require.NoError(t, err)
	for i := range data {
		data[i] = 0
	}
	assert.Equal(t, testHash224, keyHash.String())
}

func TestVKeyHash(t *testing.T) {
	var vkey VKey
	assert.Equal(t, Blake2b224Hash(vkey[:]), vkey.Hash().Blake2b224)
}

func TestDecodeError(t *testing.T) {
	err := NewUnknownDiscriminantError("ConwayUtxoPredFailure", 99, []byte{0x81, 0x18, 0x63})
	err = NewDecodeError("ConwayUtxowPredFailure", nil, err)
	var decErr *DecodeError
	require.True(t, errors.As(err, &decErr))
	assert.Equal(t, "ConwayUtxoPredFailure", decErr.Context)
	assert.Equal(t, 99, decErr.Discriminant)
	assert.Equal(t, []string{"ConwayUtxowPredFailure"}, decErr.Path)
	assert.ErrorIs(t, err, ErrUnknownDiscriminant)
	assert.Equal(
		t,
		"failed to decode ConwayUtxowPredFailure/ConwayUtxoPredFailure (discriminant 99): unknown discriminant [cbor: 811863]",
		err.Error(),
	)
}

func TestDecodeErrorClassifiesMalformed(t *testing.T) {
	err := NewDecodeError("Coin", []byte{0x61, 0x61}, errors.New("cbor: cannot unmarshal"))
	assert.ErrorIs(t, err, ErrMalformed)
	err = NewDecodeError("Set", nil, cbor.ErrUnexpectedTag)
	assert.ErrorIs(t, err, ErrUnexpectedTag)
	assert.NotErrorIs(t, err, ErrMalformed)
	assert.NoError(t, NewDecodeError("Coin", nil, nil))
}

func TestDecodeErrorTruncatesPayload(t *testing.T) {
	err := NewDecodeError("Big", test.Bytes(200, 0xab), ErrMalformed)
	assert.True(t, strings.HasSuffix(err.Error(), "...]"))
	var decErr *DecodeError
	require.ErrorAs(t, err, &decErr)
	assert.Len(t, decErr.Cbor, 200)
}
