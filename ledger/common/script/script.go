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
	"fmt"
	"slices"

	"github.com/blinklabs-io/txreject/cbor"
	"github.com/blinklabs-io/txreject/haskell"
	"github.com/blinklabs-io/txreject/ledger/common"
)

const (
	ScriptTypeTimelock = 0
	ScriptTypePlutusV1 = 1
	ScriptTypePlutusV2 = 2
	ScriptTypePlutusV3 = 3
)

// Language identifies a Plutus ledger language
type Language uint8

const (
	LanguagePlutusV1 Language = 0
	LanguagePlutusV2 Language = 1
	LanguagePlutusV3 Language = 2
)

func (l *Language) UnmarshalCBOR(data []byte) error {
	var tmp uint64
	if _, err := cbor.Decode(data, &tmp); err != nil {
		return err
	}
	if tmp > uint64(LanguagePlutusV3) {
		return common.NewUnknownDiscriminantError("Language", int(min(tmp, 1<<16)), data)
	}
	*l = Language(tmp)
	return nil
}

func (l Language) String() string {
	return fmt.Sprintf("PlutusV%d", l+1)
}

func (l Language) ShowsPrec(w *haskell.Writer, _ int) {
	w.WriteString(l.String())
}

// PlutusScript is a flat-encoded Plutus program
type PlutusScript struct {
	Language Language
	Bytes    []byte
}

func (s PlutusScript) Hash() common.ScriptHash {
	return common.ScriptHash{
		Blake2b224: common.Blake2b224Hash(
			slices.Concat([]byte{byte(s.Language) + 1}, s.Bytes),
		),
	}
}

// Script is a native or Plutus script, as carried in a reference script
// field or a witness set
type Script struct {
	Type     uint
	Timelock *Timelock
	Plutus   *PlutusScript
}

func (s *Script) UnmarshalCBOR(data []byte) error {
	id, err := cbor.DecodeIdFromList(data)
	if err != nil {
		return err
	}
	switch id {
	case ScriptTypeTimelock:
		var tmp struct {
			cbor.StructAsArray
			Type     uint
			Timelock Timelock
		}
		if _, err := cbor.Decode(data, &tmp); err != nil {
			return err
		}
		s.Timelock = &tmp.Timelock
		s.Plutus = nil
	case ScriptTypePlutusV1, ScriptTypePlutusV2, ScriptTypePlutusV3:
		var tmp struct {
			cbor.StructAsArray
			Type  uint
			Bytes []byte
		}
		if _, err := cbor.Decode(data, &tmp); err != nil {
			return err
		}
		s.Timelock = nil
		s.Plutus = &PlutusScript{
			Language: Language(id - 1), // #nosec G115
			Bytes:    tmp.Bytes,
		}
	default:
		return common.NewUnknownDiscriminantError("Script", id, data)
	}
	s.Type = uint(id) // #nosec G115
	return nil
}

func (s Script) Hash() common.ScriptHash {
	if s.Timelock != nil {
		return s.Timelock.Hash()
	}
	if s.Plutus != nil {
		return s.Plutus.Hash()
	}
	return common.ScriptHash{}
}

// ShowsPrec follows the hand-written node instance, which ignores the
// surrounding precedence and never adds parentheses
func (s Script) ShowsPrec(w *haskell.Writer, _ int) {
	switch {
	case s.Plutus != nil:
		w.WriteString("PlutusScript ")
		s.Plutus.Language.ShowsPrec(w, 0)
		w.WriteString(" ")
		s.Hash().ShowsPrec(w, 0)
	case s.Timelock != nil:
		w.WriteString("TimelockScript ")
		haskell.Unimplemented("Timelock " + s.Hash().String()).ShowsPrec(w, 0)
	default:
		haskell.Unimplemented("Script").ShowsPrec(w, 0)
	}
}
