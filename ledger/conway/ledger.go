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

// Package conway decodes the Conway era ledger rule failures a node reports
// when it rejects a transaction, and renders them the way the node does
package conway

import (
	"github.com/blinklabs-io/txreject/cbor"
	"github.com/blinklabs-io/txreject/haskell"
	"github.com/blinklabs-io/txreject/ledger/common"
)

const ledgerPredFailureContext = "ConwayLedgerPredFailure"

const (
	LedgerFailureUtxowFailure           = 1
	LedgerFailureCertsFailure           = 2
	LedgerFailureGovFailure             = 3
	LedgerFailureWdrlNotDelegatedToDRep = 4
	LedgerFailureTreasuryValueMismatch  = 5
	LedgerFailureTxRefScriptsSizeTooBig = 6
	LedgerFailureMempoolFailure         = 7
)

// LedgerPredFailure is a failure of the LEDGER rule, the root of the
// Conway failure tree
type LedgerPredFailure interface {
	haskell.Shower
	isLedgerPredFailure()
}

// NewLedgerPredFailureFromCbor decodes a single LEDGER rule failure
func NewLedgerPredFailureFromCbor(data []byte) (LedgerPredFailure, error) {
	id, err := cbor.DecodeIdFromList(data)
	if err != nil {
		return nil, common.NewDecodeError(ledgerPredFailureContext, data, err)
	}
	var ret LedgerPredFailure
	switch id {
	case LedgerFailureUtxowFailure:
		ret = &ConwayUtxowFailure{}
	case LedgerFailureCertsFailure:
		ret = &ConwayCertsFailure{}
	case LedgerFailureGovFailure:
		ret = &ConwayGovFailure{}
	case LedgerFailureWdrlNotDelegatedToDRep:
		ret = &ConwayWdrlNotDelegatedToDRep{}
	case LedgerFailureTreasuryValueMismatch:
		ret = &ConwayTreasuryValueMismatch{}
	case LedgerFailureTxRefScriptsSizeTooBig:
		ret = &ConwayTxRefScriptsSizeTooBig{}
	case LedgerFailureMempoolFailure:
		ret = &ConwayMempoolFailure{}
	default:
		return nil, common.NewUnknownDiscriminantError(ledgerPredFailureContext, id, data)
	}
	if _, err := cbor.Decode(data, ret); err != nil {
		return nil, common.NewDecodeError(ledgerPredFailureContext, data, err)
	}
	return ret, nil
}

type LedgerPredFailureWrapper struct {
	Failure LedgerPredFailure
}

func (w *LedgerPredFailureWrapper) UnmarshalCBOR(data []byte) error {
	failure, err := NewLedgerPredFailureFromCbor(data)
	if err != nil {
		return err
	}
	w.Failure = failure
	return nil
}

func (w LedgerPredFailureWrapper) ShowsPrec(out *haskell.Writer, d int) {
	showFailure(out, d, w.Failure)
}

// showFailure renders a decoded failure, or a placeholder for a wrapper
// that was never populated
func showFailure[T haskell.Shower](w *haskell.Writer, d int, failure T) {
	var s haskell.Shower = failure
	if s == nil {
		haskell.Unimplemented("empty failure").ShowsPrec(w, d)
		return
	}
	failure.ShowsPrec(w, d)
}

type LedgerPredFailureBase struct {
	cbor.StructAsArray
	Type uint16
}

func (LedgerPredFailureBase) isLedgerPredFailure() {}

type ConwayUtxowFailure struct {
	LedgerPredFailureBase
	Failure UtxowPredFailureWrapper
}

func (f ConwayUtxowFailure) ShowsPrec(w *haskell.Writer, d int) {
	haskell.Con("ConwayUtxowFailure", f.Failure).ShowsPrec(w, d)
}

type ConwayCertsFailure struct {
	LedgerPredFailureBase
	Failure CertsPredFailureWrapper
}

func (f ConwayCertsFailure) ShowsPrec(w *haskell.Writer, d int) {
	haskell.Con("ConwayCertsFailure", f.Failure).ShowsPrec(w, d)
}

type ConwayGovFailure struct {
	LedgerPredFailureBase
	Failure GovPredFailureWrapper
}

func (f ConwayGovFailure) ShowsPrec(w *haskell.Writer, d int) {
	haskell.Con("ConwayGovFailure", f.Failure).ShowsPrec(w, d)
}

// ConwayWdrlNotDelegatedToDRep lists the key hashes of reward accounts that
// withdraw without delegating to a DRep
type ConwayWdrlNotDelegatedToDRep struct {
	LedgerPredFailureBase
	KeyHashes common.NonEmpty[common.KeyHash]
}

func (f ConwayWdrlNotDelegatedToDRep) ShowsPrec(w *haskell.Writer, d int) {
	haskell.Con("ConwayWdrlNotDelegatedToDRep", f.KeyHashes).ShowsPrec(w, d)
}

type ConwayTreasuryValueMismatch struct {
	LedgerPredFailureBase
	Actual    common.Coin
	Submitted common.Coin
}

func (f ConwayTreasuryValueMismatch) ShowsPrec(w *haskell.Writer, d int) {
	haskell.Con("ConwayTreasuryValueMismatch", f.Actual, f.Submitted).ShowsPrec(w, d)
}

type ConwayTxRefScriptsSizeTooBig struct {
	LedgerPredFailureBase
	Actual haskell.Int
	Max    haskell.Int
}

func (f ConwayTxRefScriptsSizeTooBig) ShowsPrec(w *haskell.Writer, d int) {
	haskell.Con("ConwayTxRefScriptsSizeTooBig", f.Actual, f.Max).ShowsPrec(w, d)
}

type ConwayMempoolFailure struct {
	LedgerPredFailureBase
	Message haskell.String
}

func (f ConwayMempoolFailure) ShowsPrec(w *haskell.Writer, d int) {
	haskell.Con("ConwayMempoolFailure", f.Message).ShowsPrec(w, d)
}
