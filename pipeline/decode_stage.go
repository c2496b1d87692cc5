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
	"context"
	"time"

	"github.com/blinklabs-io/txreject/ledger"
)

// DecodeStage decodes a payload and renders its envelope
type DecodeStage struct{}

func NewDecodeStage() *DecodeStage {
	return &DecodeStage{}
}

func (s *DecodeStage) Name() string {
	return "decode"
}

// Process records the decode result on the item. The returned error is the
// decode error, if any
func (s *DecodeStage) Process(ctx context.Context, item *RejectionItem) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	start := time.Now()
	result, err := ledger.NewTxValidationErrorFromCbor(item.ReasonCbor())
	var envelope []byte
	if err == nil {
		envelope, err = result.JSON()
		if err != nil {
			result = nil
		}
	}
	item.SetDecoded(result, envelope, err, time.Since(start))
	return err
}
