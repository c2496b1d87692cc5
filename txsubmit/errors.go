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

package txsubmit

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/blinklabs-io/txreject/ledger"
)

// RejectionError is a transaction the node rejected, with the decoded
// reason and its submit API envelope
type RejectionError struct {
	TxId       string
	ReasonCbor []byte
	Validation *ledger.TxValidationError
	Envelope   ledger.TxSubmitFail
	// JSON is the encoded envelope
	JSON []byte
}

func (e *RejectionError) Error() string {
	return string(e.JSON)
}

func (e *RejectionError) Unwrap() error {
	return e.Validation
}

// DecodeFailureError is a rejection whose reason could not be decoded
type DecodeFailureError struct {
	TxId       string
	ReasonCbor []byte
	Err        error
}

func (e *DecodeFailureError) Error() string {
	return fmt.Sprintf("Failed to decode error reason: %s", e.Err)
}

func (e *DecodeFailureError) Unwrap() error {
	return e.Err
}

// JSON returns a diagnostic body for the failure, holding the hex reason so
// the payload can be reported
func (e *DecodeFailureError) JSON() ([]byte, error) {
	body := struct {
		Error  string `json:"error"`
		Kind   string `json:"kind"`
		Reason string `json:"reason"`
		TxId   string `json:"txId,omitempty"`
	}{
		Error:  e.Error(),
		Kind:   "DecodeFailure",
		Reason: hex.EncodeToString(e.ReasonCbor),
		TxId:   e.TxId,
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(body); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}
