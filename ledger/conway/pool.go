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

const poolPredFailureContext = "ShelleyPoolPredFailure"

const (
	PoolFailureStakePoolNotRegisteredOnKey   = 0
	PoolFailureStakePoolRetirementWrongEpoch = 1
	PoolFailureStakePoolCostTooLow           = 3
	PoolFailureWrongNetwork                  = 4
	PoolFailurePoolMedataHashTooBig          = 5
	PoolFailureVRFKeyHashAlreadyRegistered   = 6
)

// PoolPredFailure is a failure of the POOL rule, which Conway inherits from
// Shelley unchanged
type PoolPredFailure interface {
	haskell.Shower
	isPoolPredFailure()
}

func NewPoolPredFailureFromCbor(data []byte) (PoolPredFailure, error) {
	id, err := cbor.DecodeIdFromList(data)
	if err != nil {
		return nil, common.NewDecodeError(poolPredFailureContext, data, err)
	}
	var ret PoolPredFailure
	switch id {
	case PoolFailureStakePoolNotRegisteredOnKey:
		ret = &StakePoolNotRegisteredOnKeyPool{}
	case PoolFailureStakePoolRetirementWrongEpoch:
		ret = &StakePoolRetirementWrongEpochPool{}
	case PoolFailureStakePoolCostTooLow:
		ret = &StakePoolCostTooLowPool{}
	case PoolFailureWrongNetwork:
		ret = &WrongNetworkPool{}
	case PoolFailurePoolMedataHashTooBig:
		ret = &PoolMedataHashTooBig{}
	case PoolFailureVRFKeyHashAlreadyRegistered:
		ret = &VRFKeyHashAlreadyRegistered{}
	default:
		// Discriminant 2 was retired along with the maximum epoch check
		return nil, common.NewUnknownDiscriminantError(poolPredFailureContext, id, data)
	}
	if _, err := cbor.Decode(data, ret); err != nil {
		return nil, common.NewDecodeError(poolPredFailureContext, data, err)
	}
	return ret, nil
}

type PoolPredFailureWrapper struct {
	Failure PoolPredFailure
}

func (w *PoolPredFailureWrapper) UnmarshalCBOR(data []byte) error {
	failure, err := NewPoolPredFailureFromCbor(data)
	if err != nil {
		return err
	}
	w.Failure = failure
	return nil
}

func (w PoolPredFailureWrapper) ShowsPrec(out *haskell.Writer, d int) {
	showFailure(out, d, w.Failure)
}

type PoolPredFailureBase struct {
	cbor.StructAsArray
	Type uint16
}

func (PoolPredFailureBase) isPoolPredFailure() {}

type StakePoolNotRegisteredOnKeyPool struct {
	PoolPredFailureBase
	PoolId common.KeyHash
}

func (f StakePoolNotRegisteredOnKeyPool) ShowsPrec(w *haskell.Writer, d int) {
	haskell.Con("StakePoolNotRegisteredOnKeyPOOL", f.PoolId).ShowsPrec(w, d)
}

// StakePoolRetirementWrongEpochPool carries the current epoch, the requested
// retirement epoch and the last epoch retirement may be scheduled for. The
// retirement epoch is the supplied side of both mismatches
type StakePoolRetirementWrongEpochPool struct {
	PoolPredFailureBase
	CurrentEpoch common.EpochNo
	RetireEpoch  common.EpochNo
	MaxEpoch     common.EpochNo
}

func (f StakePoolRetirementWrongEpochPool) ShowsPrec(w *haskell.Writer, d int) {
	haskell.Con(
		"StakePoolRetirementWrongEpochPOOL",
		common.Mismatch[common.EpochNo]{Supplied: f.RetireEpoch, Expected: f.CurrentEpoch},
		common.Mismatch[common.EpochNo]{Supplied: f.RetireEpoch, Expected: f.MaxEpoch},
	).ShowsPrec(w, d)
}

type StakePoolCostTooLowPool struct {
	PoolPredFailureBase
	Cost common.SuppliedExpected[common.Coin]
}

func (f *StakePoolCostTooLowPool) UnmarshalCBOR(data []byte) error {
	var tmp struct {
		cbor.StructAsArray
		Type     uint16
		Supplied common.Coin
		Expected common.Coin
	}
	if _, err := cbor.Decode(data, &tmp); err != nil {
		return err
	}
	f.Type = tmp.Type
	f.Cost.Supplied = tmp.Supplied
	f.Cost.Expected = tmp.Expected
	return nil
}

func (f StakePoolCostTooLowPool) ShowsPrec(w *haskell.Writer, d int) {
	haskell.Con("StakePoolCostTooLowPOOL", f.Cost.Mismatch()).ShowsPrec(w, d)
}

// WrongNetworkPool sends the expected network ahead of the supplied one
type WrongNetworkPool struct {
	PoolPredFailureBase
	Expected common.Network
	Supplied common.Network
	PoolId   common.KeyHash
}

func (f WrongNetworkPool) ShowsPrec(w *haskell.Writer, d int) {
	haskell.Con(
		"WrongNetworkPOOL",
		common.Mismatch[common.Network]{Supplied: f.Supplied, Expected: f.Expected},
		f.PoolId,
	).ShowsPrec(w, d)
}

type PoolMedataHashTooBig struct {
	PoolPredFailureBase
	PoolId common.KeyHash
	Size   haskell.Int
}

func (f PoolMedataHashTooBig) ShowsPrec(w *haskell.Writer, d int) {
	haskell.Con("PoolMedataHashTooBig", f.PoolId, f.Size).ShowsPrec(w, d)
}

type VRFKeyHashAlreadyRegistered struct {
	PoolPredFailureBase
	PoolId     common.KeyHash
	VrfKeyHash common.VrfKeyHash
}

func (f VRFKeyHashAlreadyRegistered) ShowsPrec(w *haskell.Writer, d int) {
	haskell.Con("VRFKeyHashAlreadyRegistered", f.PoolId, f.VrfKeyHash).ShowsPrec(w, d)
}
