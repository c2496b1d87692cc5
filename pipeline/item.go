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

package pipeline

import (
	"sync"
	"time"

	"github.com/blinklabs-io/txreject/ledger"
)

// RejectionItem is a rejection payload as it moves through the pipeline
type RejectionItem struct {
	sequenceNumber uint64
	reasonCbor     []byte
	receivedAt     time.Time

	mu             sync.RWMutex
	result         *ledger.TxValidationError
	json           []byte
	decodeError    error
	decodeDuration time.Duration
}

// NewRejectionItem copies reasonCbor so the caller may reuse its buffer
func NewRejectionItem(reasonCbor []byte, seq uint64) *RejectionItem {
	data := make([]byte, len(reasonCbor))
	copy(data, reasonCbor)
	return &RejectionItem{
		sequenceNumber: seq,
		reasonCbor:     data,
		receivedAt:     time.Now(),
	}
}

func (r *RejectionItem) SequenceNumber() uint64 {
	return r.sequenceNumber
}

// ReasonCbor returns the payload. The returned slice should not be modified
func (r *RejectionItem) ReasonCbor() []byte {
	return r.reasonCbor
}

func (r *RejectionItem) ReceivedAt() time.Time {
	return r.receivedAt
}

// SetDecoded records the decode stage result
func (r *RejectionItem) SetDecoded(
	result *ledger.TxValidationError,
	json []byte,
	err error,
	duration time.Duration,
) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.result = result
	r.json = json
	r.decodeError = err
	r.decodeDuration = duration
}

func (r *RejectionItem) Result() *ledger.TxValidationError {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.result
}

// JSON returns the submit API envelope of a decoded item
func (r *RejectionItem) JSON() []byte {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.json
}

func (r *RejectionItem) DecodeError() error {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.decodeError
}

func (r *RejectionItem) DecodeDuration() time.Duration {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.decodeDuration
}

// IsDecoded reports whether the decode stage succeeded
func (r *RejectionItem) IsDecoded() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.result != nil && r.decodeError == nil
}
