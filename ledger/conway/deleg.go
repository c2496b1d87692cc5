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

const delegPredFailureContext = "ConwayDelegPredFailure"

const (
	DelegFailureIncorrectDeposit                       = 1
	DelegFailureStakeKeyRegistered                     = 2
	DelegFailureStakeKeyNotRegistered                  = 3
	DelegFailureStakeKeyHasNonZeroRewardAccountBalance = 4
	DelegFailureDelegateeDRepNotRegistered             = 5
	DelegFailureDelegateeStakePoolNotRegistered        = 6
)

// DelegPredFailure is a failure of the DELEG rule, which handles stake
// registration and delegation certificates
type DelegPredFailure interface {
	haskell.Shower
	isDelegPredFailure()
}

func NewDelegPredFailureFromCbor(data []byte) (DelegPredFailure, error) {
	id, err := cbor.DecodeIdFromList(data)
	if err != nil {
		return nil, common.NewDecodeError(delegPredFailureContext, data, err)
	}
	var ret DelegPredFailure
	switch id {
	case DelegFailureIncorrectDeposit:
		ret = &IncorrectDepositDeleg{}
	case DelegFailureStakeKeyRegistered:
		ret = &StakeKeyRegisteredDeleg{}
	case DelegFailureStakeKeyNotRegistered:
		ret = &StakeKeyNotRegisteredDeleg{}
	case DelegFailureStakeKeyHasNonZeroRewardAccountBalance:
		ret = &StakeKeyHasNonZeroRewardAccountBalanceDeleg{}
	case DelegFailureDelegateeDRepNotRegistered:
		ret = &DelegateeDRepNotRegisteredDeleg{}
	case DelegFailureDelegateeStakePoolNotRegistered:
		ret = &DelegateeStakePoolNotRegisteredDeleg{}
	default:
		return nil, common.NewUnknownDiscriminantError(delegPredFailureContext, id, data)
	}
	if _, err := cbor.Decode(data, ret); err != nil {
		return nil, common.NewDecodeError(delegPredFailureContext, data, err)
	}
	return ret, nil
}

type DelegPredFailureWrapper struct {
	Failure DelegPredFailure
}

func (w *DelegPredFailureWrapper) UnmarshalCBOR(data []byte) error {
	failure, err := NewDelegPredFailureFromCbor(data)
	if err != nil {
		return err
	}
	w.Failure = failure
	return nil
}

func (w DelegPredFailureWrapper) ShowsPrec(out *haskell.Writer, d int) {
	showFailure(out, d, w.Failure)
}

type DelegPredFailureBase struct {
	cbor.StructAsArray
	Type uint16
}

func (DelegPredFailureBase) isDelegPredFailure() {}

type IncorrectDepositDeleg struct {
	DelegPredFailureBase
	Deposit common.Coin
}

func (f IncorrectDepositDeleg) ShowsPrec(w *haskell.Writer, d int) {
	haskell.Con("IncorrectDepositDELEG", f.Deposit).ShowsPrec(w, d)
}

type StakeKeyRegisteredDeleg struct {
	DelegPredFailureBase
	Credential common.Credential
}

func (f StakeKeyRegisteredDeleg) ShowsPrec(w *haskell.Writer, d int) {
	haskell.Con("StakeKeyRegisteredDELEG", f.Credential).ShowsPrec(w, d)
}

type StakeKeyNotRegisteredDeleg struct {
	DelegPredFailureBase
	Credential common.Credential
}

func (f StakeKeyNotRegisteredDeleg) ShowsPrec(w *haskell.Writer, d int) {
	haskell.Con("StakeKeyNotRegisteredDELEG", f.Credential).ShowsPrec(w, d)
}

type StakeKeyHasNonZeroRewardAccountBalanceDeleg struct {
	DelegPredFailureBase
	Balance common.Coin
}

func (f StakeKeyHasNonZeroRewardAccountBalanceDeleg) ShowsPrec(w *haskell.Writer, d int) {
	haskell.Con("StakeKeyHasNonZeroRewardAccountBalanceDELEG", f.Balance).ShowsPrec(w, d)
}

type DelegateeDRepNotRegisteredDeleg struct {
	DelegPredFailureBase
	Credential common.Credential
}

func (f DelegateeDRepNotRegisteredDeleg) ShowsPrec(w *haskell.Writer, d int) {
	haskell.Con("DelegateeDRepNotRegisteredDELEG", f.Credential).ShowsPrec(w, d)
}

type DelegateeStakePoolNotRegisteredDeleg struct {
	DelegPredFailureBase
	PoolId common.KeyHash
}

func (f DelegateeStakePoolNotRegisteredDeleg) ShowsPrec(w *haskell.Writer, d int) {
	haskell.Con("DelegateeStakePoolNotRegisteredDELEG", f.PoolId).ShowsPrec(w, d)
}
