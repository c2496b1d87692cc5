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

const (
	certsPredFailureContext = "ConwayCertsPredFailure"
	certPredFailureContext  = "ConwayCertPredFailure"
)

const (
	CertsFailureWithdrawalsNotInRewards = 0
	CertsFailureCertFailure             = 1
)

// CertsPredFailure is a failure of the CERTS rule, which processes the
// certificates and withdrawals of a transaction
type CertsPredFailure interface {
	haskell.Shower
	isCertsPredFailure()
}

func NewCertsPredFailureFromCbor(data []byte) (CertsPredFailure, error) {
	id, err := cbor.DecodeIdFromList(data)
	if err != nil {
		return nil, common.NewDecodeError(certsPredFailureContext, data, err)
	}
	var ret CertsPredFailure
	switch id {
	case CertsFailureWithdrawalsNotInRewards:
		ret = &WithdrawalsNotInRewardsCerts{}
	case CertsFailureCertFailure:
		ret = &CertFailure{}
	default:
		return nil, common.NewUnknownDiscriminantError(certsPredFailureContext, id, data)
	}
	if _, err := cbor.Decode(data, ret); err != nil {
		return nil, common.NewDecodeError(certsPredFailureContext, data, err)
	}
	return ret, nil
}

type CertsPredFailureWrapper struct {
	Failure CertsPredFailure
}

func (w *CertsPredFailureWrapper) UnmarshalCBOR(data []byte) error {
	failure, err := NewCertsPredFailureFromCbor(data)
	if err != nil {
		return err
	}
	w.Failure = failure
	return nil
}

func (w CertsPredFailureWrapper) ShowsPrec(out *haskell.Writer, d int) {
	showFailure(out, d, w.Failure)
}

type CertsPredFailureBase struct {
	cbor.StructAsArray
	Type uint16
}

func (CertsPredFailureBase) isCertsPredFailure() {}

type WithdrawalsNotInRewardsCerts struct {
	CertsPredFailureBase
	Withdrawals common.Map[common.RewardAccount, common.Coin]
}

func (f WithdrawalsNotInRewardsCerts) ShowsPrec(w *haskell.Writer, d int) {
	haskell.Con("WithdrawalsNotInRewardsCERTS", f.Withdrawals).ShowsPrec(w, d)
}

type CertFailure struct {
	CertsPredFailureBase
	Failure CertPredFailureWrapper
}

func (f CertFailure) ShowsPrec(w *haskell.Writer, d int) {
	haskell.Con("CertFailure", f.Failure).ShowsPrec(w, d)
}

const (
	CertFailureDelegFailure   = 1
	CertFailurePoolFailure    = 2
	CertFailureGovCertFailure = 3
)

// CertPredFailure is a failure of the CERT rule, dispatching to the rule of
// the certificate's kind
type CertPredFailure interface {
	haskell.Shower
	isCertPredFailure()
}

func NewCertPredFailureFromCbor(data []byte) (CertPredFailure, error) {
	id, err := cbor.DecodeIdFromList(data)
	if err != nil {
		return nil, common.NewDecodeError(certPredFailureContext, data, err)
	}
	var ret CertPredFailure
	switch id {
	case CertFailureDelegFailure:
		ret = &DelegFailure{}
	case CertFailurePoolFailure:
		ret = &PoolFailure{}
	case CertFailureGovCertFailure:
		ret = &GovCertFailure{}
	default:
		return nil, common.NewUnknownDiscriminantError(certPredFailureContext, id, data)
	}
	if _, err := cbor.Decode(data, ret); err != nil {
		return nil, common.NewDecodeError(certPredFailureContext, data, err)
	}
	return ret, nil
}

type CertPredFailureWrapper struct {
	Failure CertPredFailure
}

func (w *CertPredFailureWrapper) UnmarshalCBOR(data []byte) error {
	failure, err := NewCertPredFailureFromCbor(data)
	if err != nil {
		return err
	}
	w.Failure = failure
	return nil
}

func (w CertPredFailureWrapper) ShowsPrec(out *haskell.Writer, d int) {
	showFailure(out, d, w.Failure)
}

type CertPredFailureBase struct {
	cbor.StructAsArray
	Type uint16
}

func (CertPredFailureBase) isCertPredFailure() {}

type DelegFailure struct {
	CertPredFailureBase
	Failure DelegPredFailureWrapper
}

func (f DelegFailure) ShowsPrec(w *haskell.Writer, d int) {
	haskell.Con("DelegFailure", f.Failure).ShowsPrec(w, d)
}

type PoolFailure struct {
	CertPredFailureBase
	Failure PoolPredFailureWrapper
}

func (f PoolFailure) ShowsPrec(w *haskell.Writer, d int) {
	haskell.Con("PoolFailure", f.Failure).ShowsPrec(w, d)
}

type GovCertFailure struct {
	CertPredFailureBase
	Failure GovCertPredFailureWrapper
}

func (f GovCertFailure) ShowsPrec(w *haskell.Writer, d int) {
	haskell.Con("GovCertFailure", f.Failure).ShowsPrec(w, d)
}
