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

const utxowPredFailureContext = "ConwayUtxowPredFailure"

const (
	UtxowFailureUtxoFailure                  = 0
	UtxowFailureInvalidWitnesses             = 1
	UtxowFailureMissingVKeyWitnesses         = 2
	UtxowFailureMissingScriptWitnesses       = 3
	UtxowFailureScriptWitnessNotValidating   = 4
	UtxowFailureMissingTxBodyMetadataHash    = 5
	UtxowFailureMissingTxMetadata            = 6
	UtxowFailureConflictingMetadataHash      = 7
	UtxowFailureInvalidMetadata              = 8
	UtxowFailureExtraneousScriptWitnesses    = 9
	UtxowFailureMissingRedeemers             = 10
	UtxowFailureMissingRequiredDatums        = 11
	UtxowFailureNotAllowedSupplementalDatums = 12
	UtxowFailurePPViewHashesDontMatch        = 13
	UtxowFailureUnspendableUTxONoDatumHash   = 14
	UtxowFailureExtraRedeemers               = 15
	UtxowFailureMalformedScriptWitnesses     = 16
	UtxowFailureMalformedReferenceScripts    = 17
)

// UtxowPredFailure is a failure of the UTXOW rule, which checks witnesses
type UtxowPredFailure interface {
	haskell.Shower
	isUtxowPredFailure()
}

func NewUtxowPredFailureFromCbor(data []byte) (UtxowPredFailure, error) {
	id, err := cbor.DecodeIdFromList(data)
	if err != nil {
		return nil, common.NewDecodeError(utxowPredFailureContext, data, err)
	}
	var ret UtxowPredFailure
	switch id {
	case UtxowFailureUtxoFailure:
		ret = &UtxoFailure{}
	case UtxowFailureInvalidWitnesses:
		ret = &InvalidWitnessesUtxow{}
	case UtxowFailureMissingVKeyWitnesses:
		ret = &MissingVKeyWitnessesUtxow{}
	case UtxowFailureMissingScriptWitnesses:
		ret = &MissingScriptWitnessesUtxow{}
	case UtxowFailureScriptWitnessNotValidating:
		ret = &ScriptWitnessNotValidatingUtxow{}
	case UtxowFailureMissingTxBodyMetadataHash:
		ret = &MissingTxBodyMetadataHash{}
	case UtxowFailureMissingTxMetadata:
		ret = &MissingTxMetadata{}
	case UtxowFailureConflictingMetadataHash:
		ret = &ConflictingMetadataHash{}
	case UtxowFailureInvalidMetadata:
		ret = &InvalidMetadata{}
	case UtxowFailureExtraneousScriptWitnesses:
		ret = &ExtraneousScriptWitnessesUtxow{}
	case UtxowFailureMissingRedeemers:
		ret = &MissingRedeemers{}
	case UtxowFailureMissingRequiredDatums:
		ret = &MissingRequiredDatums{}
	case UtxowFailureNotAllowedSupplementalDatums:
		ret = &NotAllowedSupplementalDatums{}
	case UtxowFailurePPViewHashesDontMatch:
		ret = &PPViewHashesDontMatch{}
	case UtxowFailureUnspendableUTxONoDatumHash:
		ret = &UnspendableUtxoNoDatumHash{}
	case UtxowFailureExtraRedeemers:
		ret = &ExtraRedeemers{}
	case UtxowFailureMalformedScriptWitnesses:
		ret = &MalformedScriptWitnesses{}
	case UtxowFailureMalformedReferenceScripts:
		ret = &MalformedReferenceScripts{}
	default:
		return nil, common.NewUnknownDiscriminantError(utxowPredFailureContext, id, data)
	}
	if _, err := cbor.Decode(data, ret); err != nil {
		return nil, common.NewDecodeError(utxowPredFailureContext, data, err)
	}
	return ret, nil
}

type UtxowPredFailureWrapper struct {
	Failure UtxowPredFailure
}

func (w *UtxowPredFailureWrapper) UnmarshalCBOR(data []byte) error {
	failure, err := NewUtxowPredFailureFromCbor(data)
	if err != nil {
		return err
	}
	w.Failure = failure
	return nil
}

func (w UtxowPredFailureWrapper) ShowsPrec(out *haskell.Writer, d int) {
	showFailure(out, d, w.Failure)
}

type UtxowPredFailureBase struct {
	cbor.StructAsArray
	Type uint16
}

func (UtxowPredFailureBase) isUtxowPredFailure() {}

type UtxoFailure struct {
	UtxowPredFailureBase
	Failure UtxoPredFailureWrapper
}

func (f UtxoFailure) ShowsPrec(w *haskell.Writer, d int) {
	haskell.Con("UtxoFailure", f.Failure).ShowsPrec(w, d)
}

type InvalidWitnessesUtxow struct {
	UtxowPredFailureBase
	VKeys common.List[common.VKey]
}

func (f InvalidWitnessesUtxow) ShowsPrec(w *haskell.Writer, d int) {
	haskell.Con("InvalidWitnessesUTXOW", f.VKeys).ShowsPrec(w, d)
}

type MissingVKeyWitnessesUtxow struct {
	UtxowPredFailureBase
	KeyHashes common.Set[common.KeyHash]
}

func (f MissingVKeyWitnessesUtxow) ShowsPrec(w *haskell.Writer, d int) {
	haskell.Con("MissingVKeyWitnessesUTXOW", f.KeyHashes).ShowsPrec(w, d)
}

type MissingScriptWitnessesUtxow struct {
	UtxowPredFailureBase
	ScriptHashes common.Set[common.ScriptHash]
}

func (f MissingScriptWitnessesUtxow) ShowsPrec(w *haskell.Writer, d int) {
	haskell.Con("MissingScriptWitnessesUTXOW", f.ScriptHashes).ShowsPrec(w, d)
}

type ScriptWitnessNotValidatingUtxow struct {
	UtxowPredFailureBase
	ScriptHashes common.Set[common.ScriptHash]
}

func (f ScriptWitnessNotValidatingUtxow) ShowsPrec(w *haskell.Writer, d int) {
	haskell.Con("ScriptWitnessNotValidatingUTXOW", f.ScriptHashes).ShowsPrec(w, d)
}

type MissingTxBodyMetadataHash struct {
	UtxowPredFailureBase
	Hash common.AuxiliaryDataHash
}

func (f MissingTxBodyMetadataHash) ShowsPrec(w *haskell.Writer, d int) {
	haskell.Con("MissingTxBodyMetadataHash", f.Hash).ShowsPrec(w, d)
}

type MissingTxMetadata struct {
	UtxowPredFailureBase
	Hash common.AuxiliaryDataHash
}

func (f MissingTxMetadata) ShowsPrec(w *haskell.Writer, d int) {
	haskell.Con("MissingTxMetadata", f.Hash).ShowsPrec(w, d)
}

type ConflictingMetadataHash struct {
	UtxowPredFailureBase
	BodyHash     common.AuxiliaryDataHash
	ComputedHash common.AuxiliaryDataHash
}

func (f ConflictingMetadataHash) ShowsPrec(w *haskell.Writer, d int) {
	haskell.Con("ConflictingMetadataHash", f.BodyHash, f.ComputedHash).ShowsPrec(w, d)
}

type InvalidMetadata struct {
	UtxowPredFailureBase
}

func (InvalidMetadata) ShowsPrec(w *haskell.Writer, _ int) {
	w.WriteString("InvalidMetadata")
}

type ExtraneousScriptWitnessesUtxow struct {
	UtxowPredFailureBase
	ScriptHashes common.Set[common.ScriptHash]
}

func (f ExtraneousScriptWitnessesUtxow) ShowsPrec(w *haskell.Writer, d int) {
	haskell.Con("ExtraneousScriptWitnessesUTXOW", f.ScriptHashes).ShowsPrec(w, d)
}

type MissingRedeemers struct {
	UtxowPredFailureBase
	Redeemers common.List[common.Pair[PlutusPurpose, common.ScriptHash]]
}

func (f MissingRedeemers) ShowsPrec(w *haskell.Writer, d int) {
	haskell.Con("MissingRedeemers", f.Redeemers).ShowsPrec(w, d)
}

type MissingRequiredDatums struct {
	UtxowPredFailureBase
	Missing  common.Set[common.DataHash]
	Received common.Set[common.DataHash]
}

func (f MissingRequiredDatums) ShowsPrec(w *haskell.Writer, d int) {
	haskell.Con("MissingRequiredDatums", f.Missing, f.Received).ShowsPrec(w, d)
}

type NotAllowedSupplementalDatums struct {
	UtxowPredFailureBase
	Unallowed  common.Set[common.DataHash]
	Acceptable common.Set[common.DataHash]
}

func (f NotAllowedSupplementalDatums) ShowsPrec(w *haskell.Writer, d int) {
	haskell.Con("NotAllowedSupplementalDatums", f.Unallowed, f.Acceptable).ShowsPrec(w, d)
}

// PPViewHashesDontMatch carries the script integrity hash from the body and
// the one the ledger computed
type PPViewHashesDontMatch struct {
	UtxowPredFailureBase
	Supplied common.StrictMaybe[common.SafeHash]
	Expected common.StrictMaybe[common.SafeHash]
}

func (f PPViewHashesDontMatch) ShowsPrec(w *haskell.Writer, d int) {
	haskell.Con("PPViewHashesDontMatch", f.Supplied, f.Expected).ShowsPrec(w, d)
}

type UnspendableUtxoNoDatumHash struct {
	UtxowPredFailureBase
	Inputs common.Set[common.TxIn]
}

func (f UnspendableUtxoNoDatumHash) ShowsPrec(w *haskell.Writer, d int) {
	haskell.Con("UnspendableUTxONoDatumHash", f.Inputs).ShowsPrec(w, d)
}

type ExtraRedeemers struct {
	UtxowPredFailureBase
	Purposes common.List[PlutusPurpose]
}

func (f ExtraRedeemers) ShowsPrec(w *haskell.Writer, d int) {
	haskell.Con("ExtraRedeemers", f.Purposes).ShowsPrec(w, d)
}

type MalformedScriptWitnesses struct {
	UtxowPredFailureBase
	ScriptHashes common.Set[common.ScriptHash]
}

func (f MalformedScriptWitnesses) ShowsPrec(w *haskell.Writer, d int) {
	haskell.Con("MalformedScriptWitnesses", f.ScriptHashes).ShowsPrec(w, d)
}

type MalformedReferenceScripts struct {
	UtxowPredFailureBase
	ScriptHashes common.Set[common.ScriptHash]
}

func (f MalformedReferenceScripts) ShowsPrec(w *haskell.Writer, d int) {
	haskell.Con("MalformedReferenceScripts", f.ScriptHashes).ShowsPrec(w, d)
}
