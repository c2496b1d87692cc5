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
	"bytes"
	"encoding/json"
)

// JSON envelope in the layout cardano-submit-api returns for a rejected
// transaction. Fields are declared in sorted key order to match its output
const (
	TagTxSubmitFail                   = "TxSubmitFail"
	TagTxCmdTxSubmitValidationError   = "TxCmdTxSubmitValidationError"
	TagTxValidationErrorInCardanoMode = "TxValidationErrorInCardanoMode"
	KindShelleyTxValidationError      = "ShelleyTxValidationError"
)

type TxSubmitFail struct {
	Contents TxCmdError `json:"contents"`
	Tag      string     `json:"tag"`
}

type TxCmdError struct {
	Contents TxValidationErrorInCardanoMode `json:"contents"`
	Tag      string                         `json:"tag"`
}

type TxValidationErrorInCardanoMode struct {
	Contents ShelleyTxValidationError `json:"contents"`
	Tag      string                   `json:"tag"`
}

type ShelleyTxValidationError struct {
	Era   ShelleyBasedEra `json:"era"`
	Error []string        `json:"error"`
	Kind  string          `json:"kind"`
}

// NewTxSubmitFail wraps a decoded rejection in the submit API envelope
func NewTxSubmitFail(e *TxValidationError) TxSubmitFail {
	return TxSubmitFail{
		Tag: TagTxSubmitFail,
		Contents: TxCmdError{
			Tag: TagTxCmdTxSubmitValidationError,
			Contents: TxValidationErrorInCardanoMode{
				Tag: TagTxValidationErrorInCardanoMode,
				Contents: ShelleyTxValidationError{
					Kind:  KindShelleyTxValidationError,
					Era:   e.Era,
					Error: e.Errors.Strings(),
				},
			},
		},
	}
}

// JSON returns the compact encoding of the envelope. HTML escaping is off so
// rendered strings keep characters such as '&' and '<' as they are
func (t TxSubmitFail) JSON() ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(t); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// JSON returns the submit API envelope for the rejection
func (e *TxValidationError) JSON() ([]byte, error) {
	return NewTxSubmitFail(e).JSON()
}
