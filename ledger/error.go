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

package ledger

import (
	"fmt"
	"strings"

	"github.com/blinklabs-io/txreject/cbor"
	"github.com/blinklabs-io/txreject/haskell"
	"github.com/blinklabs-io/txreject/ledger/common"
	"github.com/blinklabs-io/txreject/ledger/conway"
)

const (
	txValidationErrorContext = "TxValidationError"
	applyTxErrorContext      = "ApplyTxError"
)

// TxValidationError is the reason a node gives for rejecting a transaction
// submitted over LocalTxSubmission
type TxValidationError struct {
	Era    ShelleyBasedEra
	Errors ApplyTxError
}

// NewTxValidationErrorFromCbor decodes a rejection reason. The reason is a
// single item array holding the era index and the list of ledger failures
func NewTxValidationErrorFromCbor(data []byte) (*TxValidationError, error) {
	ret := &TxValidationError{}
	n, err := cbor.Decode(data, ret)
	if err != nil {
		return nil, common.NewDecodeError(txValidationErrorContext, data, err)
	}
	if n != len(data) {
		return nil, common.NewDecodeError(
			txValidationErrorContext,
			data,
			fmt.Errorf(
				"%w: %d trailing bytes after rejection reason",
				common.ErrMalformed,
				len(data)-n,
			),
		)
	}
	return ret, nil
}

func (e *TxValidationError) UnmarshalCBOR(data []byte) error {
	outer, err := cbor.DecodeList(data)
	if err != nil {
		return err
	}
	if len(outer) != 1 {
		return fmt.Errorf(
			"%w: rejection reason has %d items, expected 1",
			common.ErrMalformed,
			len(outer),
		)
	}
	inner, err := cbor.DecodeList(outer[0])
	if err != nil {
		return err
	}
	if len(inner) != 2 {
		return fmt.Errorf(
			"%w: era wrapper has %d items, expected 2",
			common.ErrMalformed,
			len(inner),
		)
	}
	var eraId uint64
	if _, err := cbor.Decode(inner[0], &eraId); err != nil {
		return err
	}
	era, err := GetEraById(eraId)
	// Only the Conway failure taxonomy is decoded
	if err == nil && era != ShelleyBasedEraConway {
		err = fmt.Errorf("%w: %s", ErrUnsupportedEra, era)
	}
	if err != nil {
		return &common.DecodeError{
			Context:      "ShelleyBasedEra",
			Discriminant: int(min(eraId, 1<<16)),
			Cbor:         append([]byte(nil), inner[0]...),
			Err:          err,
		}
	}
	var failures ApplyTxError
	if _, err := cbor.Decode(inner[1], &failures); err != nil {
		return common.NewDecodeError(applyTxErrorContext, inner[1], err)
	}
	e.Era = era
	e.Errors = failures
	return nil
}

func (e *TxValidationError) Error() string {
	return fmt.Sprintf(
		"ShelleyTxValidationError %s (%s)",
		e.Era.String(),
		haskell.Show(e.Errors),
	)
}

// ApplyTxError holds the ledger failures of a rejected transaction, in the
// order the node reported them
type ApplyTxError []conway.LedgerPredFailureWrapper

// Strings renders each failure on its own
func (a ApplyTxError) Strings() []string {
	ret := make([]string, 0, len(a))
	for _, failure := range a {
		ret = append(ret, haskell.Show(failure))
	}
	return ret
}

// Constructors returns the outermost constructor name of each failure,
// for use as a metrics label
func (a ApplyTxError) Constructors() []string {
	ret := make([]string, 0, len(a))
	for _, failure := range a {
		name, _, _ := strings.Cut(haskell.Show(failure), " ")
		ret = append(ret, name)
	}
	return ret
}

func (a ApplyTxError) ShowsPrec(w *haskell.Writer, d int) {
	haskell.Con("ApplyTxError", haskell.List(haskell.Showers(a)...)).ShowsPrec(w, d)
}
