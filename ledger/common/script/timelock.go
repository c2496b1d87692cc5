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

package script

import (
	"slices"

	"github.com/blinklabs-io/txreject/cbor"
	"github.com/blinklabs-io/txreject/haskell"
	"github.com/blinklabs-io/txreject/ledger/common"
)

const (
	TimelockTypeSignature     = 0
	TimelockTypeAllOf         = 1
	TimelockTypeAnyOf         = 2
	TimelockTypeMOf           = 3
	TimelockTypeInvalidBefore = 4
	TimelockTypeInvalidAfter  = 5
)

// Timelock is a native script. The CBOR it was decoded from is kept, since
// the script hash covers the original bytes rather than a re-encoding
type Timelock struct {
	cbor.DecodeStoreCbor
	Type     uint
	KeyHash  common.KeyHash
	Scripts  []Timelock
	Required uint64
	Slot     common.SlotNo
}

func (t *Timelock) UnmarshalCBOR(data []byte) error {
	id, err := cbor.DecodeIdFromList(data)
	if err != nil {
		return err
	}
	switch id {
	case TimelockTypeSignature:
		var tmp struct {
			cbor.StructAsArray
			Type    uint
			KeyHash common.KeyHash
		}
		if _, err := cbor.Decode(data, &tmp); err != nil {
			return err
		}
		t.KeyHash = tmp.KeyHash
	case TimelockTypeAllOf, TimelockTypeAnyOf:
		var tmp struct {
			cbor.StructAsArray
			Type    uint
			Scripts []Timelock
		}
		if _, err := cbor.Decode(data, &tmp); err != nil {
			return err
		}
		t.Scripts = tmp.Scripts
	case TimelockTypeMOf:
		var tmp struct {
			cbor.StructAsArray
			Type     uint
			Required uint64
			Scripts  []Timelock
		}
		if _, err := cbor.Decode(data, &tmp); err != nil {
			return err
		}
		t.Required = tmp.Required
		t.Scripts = tmp.Scripts
	case TimelockTypeInvalidBefore, TimelockTypeInvalidAfter:
		var tmp struct {
			cbor.StructAsArray
			Type uint
			Slot common.SlotNo
		}
		if _, err := cbor.Decode(data, &tmp); err != nil {
			return err
		}
		t.Slot = tmp.Slot
	default:
		return common.NewUnknownDiscriminantError("Timelock", id, data)
	}
	t.Type = uint(id) // #nosec G115
	t.SetCbor(data)
	return nil
}

// Hash returns the script hash, computed over the original CBOR
func (t *Timelock) Hash() common.ScriptHash {
	return common.ScriptHash{
		Blake2b224: common.Blake2b224Hash(
			slices.Concat([]byte{ScriptTypeTimelock}, t.Cbor()),
		),
	}
}

func (t Timelock) ShowsPrec(w *haskell.Writer, d int) {
	switch t.Type {
	case TimelockTypeSignature:
		haskell.Con("RequireSignature", t.KeyHash).ShowsPrec(w, d)
	case TimelockTypeAllOf:
		haskell.Con("RequireAllOf", haskell.List(haskell.Showers(t.Scripts)...)).ShowsPrec(w, d)
	case TimelockTypeAnyOf:
		haskell.Con("RequireAnyOf", haskell.List(haskell.Showers(t.Scripts)...)).ShowsPrec(w, d)
	case TimelockTypeMOf:
		haskell.Con(
			"RequireMOf",
			haskell.Uint(t.Required),
			haskell.List(haskell.Showers(t.Scripts)...),
		).ShowsPrec(w, d)
	case TimelockTypeInvalidBefore:
		haskell.Con("RequireTimeStart", t.Slot).ShowsPrec(w, d)
	case TimelockTypeInvalidAfter:
		haskell.Con("RequireTimeExpire", t.Slot).ShowsPrec(w, d)
	}
}

// String describes the script structure for logs
func (t Timelock) String() string {
	return haskell.Show(t)
}
