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

package localtxsubmission

import (
	"fmt"

	"github.com/blinklabs-io/txreject/ledger"
)

// TransactionRejectedError represents an explicit transaction rejection
type TransactionRejectedError struct {
	ReasonCbor []byte
	// Reason is the decoded rejection, or nil when decoding failed
	Reason *ledger.TxValidationError
	// DecodeErr is set when the reason uses a layout that is not decoded
	DecodeErr error
}

// NewTransactionRejectedError decodes a rejection reason. A reason that
// fails to decode is still a rejection, with DecodeErr set
func NewTransactionRejectedError(reasonCbor []byte) *TransactionRejectedError {
	ret := &TransactionRejectedError{
		ReasonCbor: append([]byte(nil), reasonCbor...),
	}
	reason, err := ledger.NewTxValidationErrorFromCbor(reasonCbor)
	if err != nil {
		ret.DecodeErr = err
	} else {
		ret.Reason = reason
	}
	return ret
}

func (e *TransactionRejectedError) Error() string {
	if e.Reason != nil {
		return e.Reason.Error()
	}
	return fmt.Sprintf("transaction rejected: CBOR reason hex: %x", e.ReasonCbor)
}

func (e *TransactionRejectedError) Unwrap() error {
	if e.Reason != nil {
		return e.Reason
	}
	return e.DecodeErr
}
