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

package conway

import (
	"fmt"

	"github.com/blinklabs-io/txreject/cbor"
	"github.com/blinklabs-io/txreject/haskell"
	"github.com/blinklabs-io/txreject/ledger/common"
	"github.com/blinklabs-io/txreject/ledger/common/script"
)

const (
	DatumOptionTypeHash   = 0
	DatumOptionTypeInline = 1
)

// Datum is the datum attached to an output: nothing, a datum hash or an
// inline datum
type Datum struct {
	Hash *common.DataHash
	// Inline holds the CBOR of an inline datum
	Inline []byte
}

func (o *Datum) UnmarshalCBOR(data []byte) error {
	datumType, err := cbor.DecodeIdFromList(data)
	if err != nil {
		return err
	}
	switch datumType {
	case DatumOptionTypeHash:
		var tmpDatumHash struct {
			cbor.StructAsArray
			Type uint
			Hash common.DataHash
		}
		if _, err := cbor.Decode(data, &tmpDatumHash); err != nil {
			return err
		}
		o.Hash = &tmpDatumHash.Hash
	case DatumOptionTypeInline:
		var tmpDatum struct {
			cbor.StructAsArray
			Type  uint
			Datum cbor.RawMessage
		}
		if _, err := cbor.Decode(data, &tmpDatum); err != nil {
			return err
		}
		content, err := cbor.DecodeTagged(tmpDatum.Datum, cbor.CborTagCbor)
		if err != nil {
			return err
		}
		var inner []byte
		if _, err := cbor.Decode(content, &inner); err != nil {
			return err
		}
		o.Inline = inner
	default:
		return common.NewUnknownDiscriminantError("Datum", datumType, data)
	}
	return nil
}

func (o Datum) ShowsPrec(w *haskell.Writer, d int) {
	switch {
	case o.Hash != nil:
		haskell.Con("DatumHash", *o.Hash).ShowsPrec(w, d)
	case o.Inline != nil:
		// BinaryData shows as its raw bytes
		haskell.Con("Datum", haskell.Bytes(o.Inline)).ShowsPrec(w, d)
	default:
		w.WriteString("NoDatum")
	}
}

const (
	txOutKeyAddress   = 0
	txOutKeyAmount    = 1
	txOutKeyDatum     = 2
	txOutKeyScriptRef = 3
)

// TxOut is a transaction output in either the legacy array format or the
// post-Alonzo map format
type TxOut struct {
	Address   common.Address
	Amount    common.Value
	Datum     Datum
	ScriptRef common.StrictMaybe[common.EmbeddedDocument[script.Script]]
}

func (o *TxOut) UnmarshalCBOR(data []byte) error {
	typ, err := cbor.MajorType(data)
	if err != nil {
		return err
	}
	switch typ {
	case cbor.CborTypeArray:
		return o.unmarshalLegacy(data)
	case cbor.CborTypeMap:
		return o.unmarshalMap(data)
	default:
		return fmt.Errorf("%w: transaction output has major type 0x%02x", common.ErrMalformed, typ)
	}
}

func (o *TxOut) unmarshalLegacy(data []byte) error {
	items, err := cbor.DecodeList(data)
	if err != nil {
		return err
	}
	if len(items) != 2 && len(items) != 3 {
		return fmt.Errorf("%w: legacy transaction output has %d items", common.ErrMalformed, len(items))
	}
	if _, err := cbor.Decode(items[0], &o.Address); err != nil {
		return err
	}
	if _, err := cbor.Decode(items[1], &o.Amount); err != nil {
		return err
	}
	if len(items) == 3 {
		var datumHash common.DataHash
		if _, err := cbor.Decode(items[2], &datumHash); err != nil {
			return err
		}
		o.Datum.Hash = &datumHash
	}
	return nil
}

func (o *TxOut) unmarshalMap(data []byte) error {
	pairs, err := cbor.DecodeMapPairs(data)
	if err != nil {
		return err
	}
	var haveAddress, haveAmount bool
	for _, pair := range pairs {
		var key uint64
		if _, err := cbor.Decode(pair.Key, &key); err != nil {
			return err
		}
		switch key {
		case txOutKeyAddress:
			_, err = cbor.Decode(pair.Value, &o.Address)
			haveAddress = true
		case txOutKeyAmount:
			_, err = cbor.Decode(pair.Value, &o.Amount)
			haveAmount = true
		case txOutKeyDatum:
			_, err = cbor.Decode(pair.Value, &o.Datum)
		case txOutKeyScriptRef:
			var ref common.EmbeddedDocument[script.Script]
			_, err = cbor.Decode(pair.Value, &ref)
			o.ScriptRef = common.SJust(ref)
		default:
			err = fmt.Errorf("%w: unknown transaction output key %d", common.ErrMalformed, key)
		}
		if err != nil {
			return err
		}
	}
	if !haveAddress || !haveAmount {
		return fmt.Errorf("%w: transaction output without address or amount", common.ErrMalformed)
	}
	return nil
}

func (o TxOut) ShowsPrec(w *haskell.Writer, d int) {
	haskell.Tuple(o.Address, o.Amount, o.Datum, o.ScriptRef).ShowsPrec(w, d)
}

// UTxO is a set of outputs keyed by the input that spends them
type UTxO struct {
	Outputs common.Map[common.TxIn, TxOut]
}

func (u *UTxO) UnmarshalCBOR(data []byte) error {
	_, err := cbor.Decode(data, &u.Outputs)
	return err
}

func (u UTxO) ShowsPrec(w *haskell.Writer, d int) {
	haskell.Con("UTxO", u.Outputs).ShowsPrec(w, d)
}
