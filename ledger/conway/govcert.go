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

const govCertPredFailureContext = "ConwayGovCertPredFailure"

const (
	GovCertFailureDRepAlreadyRegistered          = 0
	GovCertFailureDRepNotRegistered              = 1
	GovCertFailureDRepIncorrectDeposit           = 2
	GovCertFailureCommitteeHasPreviouslyResigned = 3
	GovCertFailureDRepIncorrectRefund            = 4
	GovCertFailureCommitteeIsUnknown             = 5
)

// GovCertPredFailure is a failure of the GOVCERT rule, which handles DRep
// and constitutional committee certificates
type GovCertPredFailure interface {
	haskell.Shower
	isGovCertPredFailure()
}

func NewGovCertPredFailureFromCbor(data []byte) (GovCertPredFailure, error) {
	id, err := cbor.DecodeIdFromList(data)
	if err != nil {
		return nil, common.NewDecodeError(govCertPredFailureContext, data, err)
	}
	var ret GovCertPredFailure
	switch id {
	case GovCertFailureDRepAlreadyRegistered:
		ret = &DRepAlreadyRegistered{}
	case GovCertFailureDRepNotRegistered:
		ret = &DRepNotRegistered{}
	case GovCertFailureDRepIncorrectDeposit:
		ret = &DRepIncorrectDeposit{}
	case GovCertFailureCommitteeHasPreviouslyResigned:
		ret = &CommitteeHasPreviouslyResigned{}
	case GovCertFailureDRepIncorrectRefund:
		ret = &DRepIncorrectRefund{}
	case GovCertFailureCommitteeIsUnknown:
		ret = &CommitteeIsUnknown{}
	default:
		return nil, common.NewUnknownDiscriminantError(govCertPredFailureContext, id, data)
	}
	if _, err := cbor.Decode(data, ret); err != nil {
		return nil, common.NewDecodeError(govCertPredFailureContext, data, err)
	}
	return ret, nil
}

type GovCertPredFailureWrapper struct {
	Failure GovCertPredFailure
}

func (w *GovCertPredFailureWrapper) UnmarshalCBOR(data []byte) error {
	failure, err := NewGovCertPredFailureFromCbor(data)
	if err != nil {
		return err
	}
	w.Failure = failure
	return nil
}

func (w GovCertPredFailureWrapper) ShowsPrec(out *haskell.Writer, d int) {
	showFailure(out, d, w.Failure)
}

type GovCertPredFailureBase struct {
	cbor.StructAsArray
	Type uint16
}

func (GovCertPredFailureBase) isGovCertPredFailure() {}

type DRepAlreadyRegistered struct {
	GovCertPredFailureBase
	Credential common.Credential
}

func (f DRepAlreadyRegistered) ShowsPrec(w *haskell.Writer, d int) {
	haskell.Con("ConwayDRepAlreadyRegistered", f.Credential).ShowsPrec(w, d)
}

type DRepNotRegistered struct {
	GovCertPredFailureBase
	Credential common.Credential
}

func (f DRepNotRegistered) ShowsPrec(w *haskell.Writer, d int) {
	haskell.Con("ConwayDRepNotRegistered", f.Credential).ShowsPrec(w, d)
}

type DRepIncorrectDeposit struct {
	GovCertPredFailureBase
	Supplied common.Coin
	Expected common.Coin
}

func (f DRepIncorrectDeposit) ShowsPrec(w *haskell.Writer, d int) {
	haskell.Con("ConwayDRepIncorrectDeposit", f.Supplied, f.Expected).ShowsPrec(w, d)
}

type CommitteeHasPreviouslyResigned struct {
	GovCertPredFailureBase
	Credential common.Credential
}

func (f CommitteeHasPreviouslyResigned) ShowsPrec(w *haskell.Writer, d int) {
	haskell.Con("ConwayCommitteeHasPreviouslyResigned", f.Credential).ShowsPrec(w, d)
}

type DRepIncorrectRefund struct {
	GovCertPredFailureBase
	Supplied common.Coin
	Expected common.Coin
}

func (f DRepIncorrectRefund) ShowsPrec(w *haskell.Writer, d int) {
	haskell.Con("ConwayDRepIncorrectRefund", f.Supplied, f.Expected).ShowsPrec(w, d)
}

type CommitteeIsUnknown struct {
	GovCertPredFailureBase
	Credential common.Credential
}

func (f CommitteeIsUnknown) ShowsPrec(w *haskell.Writer, d int) {
	haskell.Con("ConwayCommitteeIsUnknown", f.Credential).ShowsPrec(w, d)
}
