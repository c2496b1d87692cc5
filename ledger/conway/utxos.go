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
	"github.com/blinklabs-io/txreject/cbor"
	"github.com/blinklabs-io/txreject/haskell"
	"github.com/blinklabs-io/txreject/ledger/common"
)

const utxosPredFailureContext = "ConwayUtxosPredFailure"

const (
	UtxosFailureValidationTagMismatch = 0
	UtxosFailureCollectErrors         = 1
)

// UtxosPredFailure is a failure of the UTXOS rule, which runs Plutus scripts
type UtxosPredFailure interface {
	haskell.Shower
	isUtxosPredFailure()
}

func NewUtxosPredFailureFromCbor(data []byte) (UtxosPredFailure, error) {
	id, err := cbor.DecodeIdFromList(data)
	if err != nil {
		return nil, common.NewDecodeError(utxosPredFailureContext, data, err)
	}
	var ret UtxosPredFailure
	switch id {
	case UtxosFailureValidationTagMismatch:
		ret = &ValidationTagMismatch{}
	case UtxosFailureCollectErrors:
		ret = &CollectErrors{}
	default:
		return nil, common.NewUnknownDiscriminantError(utxosPredFailureContext, id, data)
	}
	if _, err := cbor.Decode(data, ret); err != nil {
		return nil, common.NewDecodeError(utxosPredFailureContext, data, err)
	}
	return ret, nil
}

type UtxosPredFailureWrapper struct {
	Failure UtxosPredFailure
}

func (w *UtxosPredFailureWrapper) UnmarshalCBOR(data []byte) error {
	failure, err := NewUtxosPredFailureFromCbor(data)
	if err != nil {
		return err
	}
	w.Failure = failure
	return nil
}

func (w UtxosPredFailureWrapper) ShowsPrec(out *haskell.Writer, d int) {
	showFailure(out, d, w.Failure)
}

type UtxosPredFailureBase struct {
	cbor.StructAsArray
	Type uint16
}

func (UtxosPredFailureBase) isUtxosPredFailure() {}

type ValidationTagMismatch struct {
	UtxosPredFailureBase
	IsValid     IsValid
	Description TagMismatchDescription
}

func (f ValidationTagMismatch) ShowsPrec(w *haskell.Writer, d int) {
	haskell.Con("ValidationTagMismatch", f.IsValid, f.Description).ShowsPrec(w, d)
}

type CollectErrors struct {
	UtxosPredFailureBase
	Errors common.List[CollectError]
}

func (f CollectErrors) ShowsPrec(w *haskell.Writer, d int) {
	haskell.Con("CollectErrors", f.Errors).ShowsPrec(w, d)
}
