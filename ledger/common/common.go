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
	"encoding/hex"
	"fmt"

	"github.com/blinklabs-io/txreject/cbor"
	"github.com/blinklabs-io/txreject/haskell"
	"github.com/btcsuite/btcd/btcutil/bech32"
	"golang.org/x/crypto/blake2b"
)

const (
	Blake2b256Size = 32
	Blake2b224Size = 28
	VKeySize       = 32
)

type Blake2b256 [Blake2b256Size]byte

func NewBlake2b256(data []byte) Blake2b256 {
	b := Blake2b256{}
	copy(b[:], data)
	return b
}

func (b Blake2b256) String() string {
	return hex.EncodeToString(b[:])
}

func (b Blake2b256) Bytes() []byte {
	return b[:]
}

func (b *Blake2b256) UnmarshalCBOR(data []byte) error {
	return decodeFixedBytes(data, b[:])
}

// Blake2b256Hash generates a Blake2b-256 hash from the provided data
func Blake2b256Hash(data []byte) Blake2b256 {
	return Blake2b256(blake2b.Sum256(data))
}

type Blake2b224 [Blake2b224Size]byte

func NewBlake2b224(data []byte) Blake2b224 {
	b := Blake2b224{}
	copy(b[:], data)
	return b
}

func (b Blake2b224) String() string {
	return hex.EncodeToString(b[:])
}

func (b Blake2b224) Bytes() []byte {
	return b[:]
}

func (b *Blake2b224) UnmarshalCBOR(data []byte) error {
	return decodeFixedBytes(data, b[:])
}

func (b Blake2b224) Bech32(prefix string) string {
	return encodeBech32(prefix, b[:])
}

// Blake2b224Hash generates a Blake2b-224 hash from the provided data
func Blake2b224Hash(data []byte) Blake2b224 {
	tmpHash, err := blake2b.New(Blake2b224Size, nil)
	if err != nil {
		panic(
			fmt.Sprintf(
				"unexpected error generating empty blake2b hash: %s",
				err,
			),
		)
	}
	tmpHash.Write(data)
	return Blake2b224(tmpHash.Sum(nil))
}

// decodeFixedBytes decodes a byte string that must be exactly len(dest) bytes
func decodeFixedBytes(data []byte, dest []byte) error {
	var tmp []byte
	if _, err := cbor.Decode(data, &tmp); err != nil {
		return err
	}
	if len(tmp) != len(dest) {
		return fmt.Errorf(
			"%w: expected %d byte hash, found %d bytes",
			ErrMalformed,
			len(dest),
			len(tmp),
		)
	}
	copy(dest, tmp)
	return nil
}

func encodeBech32(prefix string, data []byte) string {
	convData, err := bech32.ConvertBits(data, 8, 5, true)
	if err != nil {
		panic(
			fmt.Sprintf("unexpected error converting data to base32: %s", err),
		)
	}
	encoded, err := bech32.Encode(prefix, convData)
	if err != nil {
		panic(fmt.Sprintf("unexpected error encoding data as bech32: %s", err))
	}
	return encoded
}

// The types below give each hash its role. The role decides the label the
// hash is rendered with

// KeyHash is the hash of a verification key
type KeyHash struct {
	Blake2b224
}

func (h KeyHash) ShowsPrec(w *haskell.Writer, d int) {
	haskell.Record(
		"KeyHash",
		haskell.F("unKeyHash", haskell.String(h.String())),
	).ShowsPrec(w, d)
}

// ScriptHash is the hash of a native or Plutus script
type ScriptHash struct {
	Blake2b224
}

func (h ScriptHash) ShowsPrec(w *haskell.Writer, d int) {
	haskell.Con("ScriptHash", haskell.String(h.String())).ShowsPrec(w, d)
}

// SafeHash is a Blake2b-256 hash of some serialized ledger value
type SafeHash struct {
	Blake2b256
}

func (h SafeHash) ShowsPrec(w *haskell.Writer, d int) {
	haskell.Con("SafeHash", haskell.String(h.String())).ShowsPrec(w, d)
}

// DataHash is the hash of a Plutus datum
type DataHash = SafeHash

// TxId is the hash of a transaction body
type TxId struct {
	Blake2b256
}

func (h TxId) ShowsPrec(w *haskell.Writer, d int) {
	haskell.Record(
		"TxId",
		haskell.F("unTxId", SafeHash(h)),
	).ShowsPrec(w, d)
}

// AuxiliaryDataHash is the hash of transaction metadata
type AuxiliaryDataHash struct {
	Blake2b256
}

func (h AuxiliaryDataHash) ShowsPrec(w *haskell.Writer, d int) {
	haskell.Record(
		"AuxiliaryDataHash",
		haskell.F("unsafeAuxiliaryDataHash", SafeHash(h)),
	).ShowsPrec(w, d)
}

// VrfKeyHash is the hash of a stake pool VRF verification key
type VrfKeyHash struct {
	Blake2b256
}

func (h VrfKeyHash) ShowsPrec(w *haskell.Writer, d int) {
	haskell.Record(
		"VRFVerKeyHash",
		haskell.F("unVRFVerKeyHash", haskell.String(h.String())),
	).ShowsPrec(w, d)
}

// VKey is an Ed25519 verification key
type VKey [VKeySize]byte

func (k *VKey) UnmarshalCBOR(data []byte) error {
	return decodeFixedBytes(data, k[:])
}

func (k VKey) String() string {
	return hex.EncodeToString(k[:])
}

// Hash returns the key hash of the verification key
func (k VKey) Hash() KeyHash {
	return KeyHash{Blake2b224Hash(k[:])}
}

func (k VKey) ShowsPrec(w *haskell.Writer, d int) {
	haskell.Con(
		"VKey",
		haskell.Con("VerKeyEd25519DSIGN", haskell.String(k.String())),
	).ShowsPrec(w, d)
}
