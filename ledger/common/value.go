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
)

// PolicyId is the script hash of a minting policy
type PolicyId struct {
	ScriptHash
}

func (p PolicyId) ShowsPrec(w *haskell.Writer, d int) {
	haskell.Record("PolicyID", haskell.F("policyID", p.ScriptHash)).ShowsPrec(w, d)
}

const maxAssetNameSize = 32

// AssetName renders as the hex encoding of its bytes
type AssetName []byte

func (a *AssetName) UnmarshalCBOR(data []byte) error {
	var tmp []byte
	if _, err := cbor.Decode(data, &tmp); err != nil {
		return err
	}
	if len(tmp) > maxAssetNameSize {
		return fmt.Errorf("%w: asset name is %d bytes", ErrMalformed, len(tmp))
	}
	*a = tmp
	return nil
}

func (a AssetName) ShowsPrec(w *haskell.Writer, d int) {
	haskell.String(hex.EncodeToString(a)).ShowsPrec(w, d)
}

// MultiAsset maps policy IDs to quantities of their assets. Output values
// only carry positive quantities, but mint fields may be negative
type MultiAsset = Map[PolicyId, Map[AssetName, haskell.Int]]

// Value is a lovelace amount plus native assets
type Value struct {
	Coin   Coin
	Assets MultiAsset
}

func (v *Value) UnmarshalCBOR(data []byte) error {
	typ, err := cbor.MajorType(data)
	if err != nil {
		return err
	}
	// A bare unsigned integer is an ADA-only value
	if typ == cbor.CborTypeUint {
		var tmpCoin uint64
		if _, err := cbor.Decode(data, &tmpCoin); err != nil {
			return err
		}
		*v = Value{Coin: Coin(tmpCoin)}
		return nil
	}
	var tmp struct {
		cbor.StructAsArray
		Coin   Coin
		Assets MultiAsset
	}
	if _, err := cbor.Decode(data, &tmp); err != nil {
		return err
	}
	*v = Value{Coin: tmp.Coin, Assets: tmp.Assets}
	return nil
}

func (v Value) ShowsPrec(w *haskell.Writer, d int) {
	haskell.Con(
		"MaryValue",
		v.Coin,
		haskell.Con("MultiAsset", v.Assets),
	).ShowsPrec(w, d)
}
