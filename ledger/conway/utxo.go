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

const utxoPredFailureContext = "ConwayUtxoPredFailure"

const (
	UtxoFailureUtxosFailure                  = 0
	UtxoFailureBadInputs                     = 1
	UtxoFailureOutsideValidityInterval       = 2
	UtxoFailureMaxTxSize                     = 3
	UtxoFailureInputSetEmpty                 = 4
	UtxoFailureFeeTooSmall                   = 5
	UtxoFailureValueNotConserved             = 6
	UtxoFailureWrongNetwork                  = 7
	UtxoFailureWrongNetworkWithdrawal        = 8
	UtxoFailureOutputTooSmall                = 9
	UtxoFailureOutputBootAddrAttrsTooBig     = 10
	UtxoFailureOutputTooBig                  = 11
	UtxoFailureInsufficientCollateral        = 12
	UtxoFailureScriptsNotPaid                = 13
	UtxoFailureExUnitsTooBig                 = 14
	UtxoFailureCollateralContainsNonADA      = 15
	UtxoFailureWrongNetworkInTxBody          = 16
	UtxoFailureOutsideForecast               = 17
	UtxoFailureTooManyCollateralInputs       = 18
	UtxoFailureNoCollateralInputs            = 19
	UtxoFailureIncorrectTotalCollateralField = 20
	UtxoFailureBabbageOutputTooSmall         = 21
	UtxoFailureBabbageNonDisjointRefInputs   = 22
)

// UtxoPredFailure is a failure of the UTXO rule, which checks the inputs,
// outputs, fees and collateral of a transaction
type UtxoPredFailure interface {
	haskell.Shower
	isUtxoPredFailure()
}

func NewUtxoPredFailureFromCbor(data []byte) (UtxoPredFailure, error) {
	id, err := cbor.DecodeIdFromList(data)
	if err != nil {
		return nil, common.NewDecodeError(utxoPredFailureContext, data, err)
	}
	var ret UtxoPredFailure
	switch id {
	case UtxoFailureUtxosFailure:
		ret = &UtxosFailure{}
	case UtxoFailureBadInputs:
		ret = &BadInputsUtxo{}
	case UtxoFailureOutsideValidityInterval:
		ret = &OutsideValidityIntervalUtxo{}
	case UtxoFailureMaxTxSize:
		ret = &MaxTxSizeUtxo{}
	case UtxoFailureInputSetEmpty:
		ret = &InputSetEmptyUtxo{}
	case UtxoFailureFeeTooSmall:
		ret = &FeeTooSmallUtxo{}
	case UtxoFailureValueNotConserved:
		ret = &ValueNotConservedUtxo{}
	case UtxoFailureWrongNetwork:
		ret = &WrongNetwork{}
	case UtxoFailureWrongNetworkWithdrawal:
		ret = &WrongNetworkWithdrawal{}
	case UtxoFailureOutputTooSmall:
		ret = &OutputTooSmallUtxo{}
	case UtxoFailureOutputBootAddrAttrsTooBig:
		ret = &OutputBootAddrAttrsTooBig{}
	case UtxoFailureOutputTooBig:
		ret = &OutputTooBigUtxo{}
	case UtxoFailureInsufficientCollateral:
		ret = &InsufficientCollateral{}
	case UtxoFailureScriptsNotPaid:
		ret = &ScriptsNotPaidUtxo{}
	case UtxoFailureExUnitsTooBig:
		ret = &ExUnitsTooBigUtxo{}
	case UtxoFailureCollateralContainsNonADA:
		ret = &CollateralContainsNonADA{}
	case UtxoFailureWrongNetworkInTxBody:
		ret = &WrongNetworkInTxBody{}
	case UtxoFailureOutsideForecast:
		ret = &OutsideForecast{}
	case UtxoFailureTooManyCollateralInputs:
		ret = &TooManyCollateralInputs{}
	case UtxoFailureNoCollateralInputs:
		ret = &NoCollateralInputs{}
	case UtxoFailureIncorrectTotalCollateralField:
		ret = &IncorrectTotalCollateralField{}
	case UtxoFailureBabbageOutputTooSmall:
		ret = &BabbageOutputTooSmallUtxo{}
	case UtxoFailureBabbageNonDisjointRefInputs:
		ret = &BabbageNonDisjointRefInputs{}
	default:
		return nil, common.NewUnknownDiscriminantError(utxoPredFailureContext, id, data)
	}
	if _, err := cbor.Decode(data, ret); err != nil {
		return nil, common.NewDecodeError(utxoPredFailureContext, data, err)
	}
	return ret, nil
}

type UtxoPredFailureWrapper struct {
	Failure UtxoPredFailure
}

func (w *UtxoPredFailureWrapper) UnmarshalCBOR(data []byte) error {
	failure, err := NewUtxoPredFailureFromCbor(data)
	if err != nil {
		return err
	}
	w.Failure = failure
	return nil
}

func (w UtxoPredFailureWrapper) ShowsPrec(out *haskell.Writer, d int) {
	showFailure(out, d, w.Failure)
}

type UtxoPredFailureBase struct {
	cbor.StructAsArray
	Type uint16
}

func (UtxoPredFailureBase) isUtxoPredFailure() {}

type UtxosFailure struct {
	UtxoPredFailureBase
	Failure UtxosPredFailureWrapper
}

func (f UtxosFailure) ShowsPrec(w *haskell.Writer, d int) {
	haskell.Con("UtxosFailure", f.Failure).ShowsPrec(w, d)
}

type BadInputsUtxo struct {
	UtxoPredFailureBase
	Inputs common.Set[common.TxIn]
}

func (f BadInputsUtxo) ShowsPrec(w *haskell.Writer, d int) {
	haskell.Con("BadInputsUTxO", f.Inputs).ShowsPrec(w, d)
}

type OutsideValidityIntervalUtxo struct {
	UtxoPredFailureBase
	ValidityInterval common.ValidityInterval
	Slot             common.SlotNo
}

func (f OutsideValidityIntervalUtxo) ShowsPrec(w *haskell.Writer, d int) {
	haskell.Con("OutsideValidityIntervalUTxO", f.ValidityInterval, f.Slot).ShowsPrec(w, d)
}

type MaxTxSizeUtxo struct {
	UtxoPredFailureBase
	Actual haskell.Int
	Max    haskell.Int
}

func (f MaxTxSizeUtxo) ShowsPrec(w *haskell.Writer, d int) {
	haskell.Con("MaxTxSizeUTxO", f.Actual, f.Max).ShowsPrec(w, d)
}

type InputSetEmptyUtxo struct {
	UtxoPredFailureBase
}

func (InputSetEmptyUtxo) ShowsPrec(w *haskell.Writer, _ int) {
	w.WriteString("InputSetEmptyUTxO")
}

type FeeTooSmallUtxo struct {
	UtxoPredFailureBase
	MinFee   common.Coin
	Supplied common.Coin
}

func (f FeeTooSmallUtxo) ShowsPrec(w *haskell.Writer, d int) {
	haskell.Con("FeeTooSmallUTxO", f.MinFee, f.Supplied).ShowsPrec(w, d)
}

type ValueNotConservedUtxo struct {
	UtxoPredFailureBase
	Consumed common.Value
	Produced common.Value
}

func (f ValueNotConservedUtxo) ShowsPrec(w *haskell.Writer, d int) {
	haskell.Con("ValueNotConservedUTxO", f.Consumed, f.Produced).ShowsPrec(w, d)
}

type WrongNetwork struct {
	UtxoPredFailureBase
	Expected  common.Network
	Addresses common.Set[common.Address]
}

func (f WrongNetwork) ShowsPrec(w *haskell.Writer, d int) {
	haskell.Con("WrongNetwork", f.Expected, f.Addresses).ShowsPrec(w, d)
}

type WrongNetworkWithdrawal struct {
	UtxoPredFailureBase
	Expected common.Network
	Accounts common.Set[common.RewardAccount]
}

func (f WrongNetworkWithdrawal) ShowsPrec(w *haskell.Writer, d int) {
	haskell.Con("WrongNetworkWithdrawal", f.Expected, f.Accounts).ShowsPrec(w, d)
}

type OutputTooSmallUtxo struct {
	UtxoPredFailureBase
	Outputs common.List[TxOut]
}

func (f OutputTooSmallUtxo) ShowsPrec(w *haskell.Writer, d int) {
	haskell.Con("OutputTooSmallUTxO", f.Outputs).ShowsPrec(w, d)
}

type OutputBootAddrAttrsTooBig struct {
	UtxoPredFailureBase
	Outputs common.List[TxOut]
}

func (f OutputBootAddrAttrsTooBig) ShowsPrec(w *haskell.Writer, d int) {
	haskell.Con("OutputBootAddrAttrsTooBig", f.Outputs).ShowsPrec(w, d)
}

// OutputSize is an oversized output with its actual and maximum value size
type OutputSize struct {
	cbor.StructAsArray
	Actual haskell.Int
	Max    haskell.Int
	Output TxOut
}

func (o OutputSize) ShowsPrec(w *haskell.Writer, d int) {
	haskell.Tuple(o.Actual, o.Max, o.Output).ShowsPrec(w, d)
}

type OutputTooBigUtxo struct {
	UtxoPredFailureBase
	Outputs common.List[OutputSize]
}

func (f OutputTooBigUtxo) ShowsPrec(w *haskell.Writer, d int) {
	haskell.Con("OutputTooBigUTxO", f.Outputs).ShowsPrec(w, d)
}

type InsufficientCollateral struct {
	UtxoPredFailureBase
	Balance  common.DeltaCoin
	Required common.Coin
}

func (f InsufficientCollateral) ShowsPrec(w *haskell.Writer, d int) {
	haskell.Con("InsufficientCollateral", f.Balance, f.Required).ShowsPrec(w, d)
}

type ScriptsNotPaidUtxo struct {
	UtxoPredFailureBase
	Utxo UTxO
}

func (f ScriptsNotPaidUtxo) ShowsPrec(w *haskell.Writer, d int) {
	haskell.Con("ScriptsNotPaidUTxO", f.Utxo).ShowsPrec(w, d)
}

type ExUnitsTooBigUtxo struct {
	UtxoPredFailureBase
	Max      common.ExUnits
	Supplied common.ExUnits
}

func (f ExUnitsTooBigUtxo) ShowsPrec(w *haskell.Writer, d int) {
	haskell.Con("ExUnitsTooBigUTxO", f.Max, f.Supplied).ShowsPrec(w, d)
}

type CollateralContainsNonADA struct {
	UtxoPredFailureBase
	Value common.Value
}

func (f CollateralContainsNonADA) ShowsPrec(w *haskell.Writer, d int) {
	haskell.Con("CollateralContainsNonADA", f.Value).ShowsPrec(w, d)
}

type WrongNetworkInTxBody struct {
	UtxoPredFailureBase
	Expected common.Network
	Supplied common.Network
}

func (f WrongNetworkInTxBody) ShowsPrec(w *haskell.Writer, d int) {
	haskell.Con("WrongNetworkInTxBody", f.Expected, f.Supplied).ShowsPrec(w, d)
}

type OutsideForecast struct {
	UtxoPredFailureBase
	Slot common.SlotNo
}

func (f OutsideForecast) ShowsPrec(w *haskell.Writer, d int) {
	haskell.Con("OutsideForecast", f.Slot).ShowsPrec(w, d)
}

type TooManyCollateralInputs struct {
	UtxoPredFailureBase
	Max      haskell.Uint
	Supplied haskell.Uint
}

func (f TooManyCollateralInputs) ShowsPrec(w *haskell.Writer, d int) {
	haskell.Con("TooManyCollateralInputs", f.Max, f.Supplied).ShowsPrec(w, d)
}

type NoCollateralInputs struct {
	UtxoPredFailureBase
}

func (NoCollateralInputs) ShowsPrec(w *haskell.Writer, _ int) {
	w.WriteString("NoCollateralInputs")
}

type IncorrectTotalCollateralField struct {
	UtxoPredFailureBase
	Balance  common.DeltaCoin
	Declared common.Coin
}

func (f IncorrectTotalCollateralField) ShowsPrec(w *haskell.Writer, d int) {
	haskell.Con("IncorrectTotalCollateralField", f.Balance, f.Declared).ShowsPrec(w, d)
}

type BabbageOutputTooSmallUtxo struct {
	UtxoPredFailureBase
	Outputs common.List[common.Pair[TxOut, common.Coin]]
}

func (f BabbageOutputTooSmallUtxo) ShowsPrec(w *haskell.Writer, d int) {
	haskell.Con("BabbageOutputTooSmallUTxO", f.Outputs).ShowsPrec(w, d)
}

type BabbageNonDisjointRefInputs struct {
	UtxoPredFailureBase
	Inputs common.NonEmpty[common.TxIn]
}

func (f BabbageNonDisjointRefInputs) ShowsPrec(w *haskell.Writer, d int) {
	haskell.Con("BabbageNonDisjointRefInputs", f.Inputs).ShowsPrec(w, d)
}
