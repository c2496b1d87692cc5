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

// Package pipeline decodes batches of rejection payloads concurrently while
// keeping their submission order
package pipeline

import (
	"context"
	"time"
)

// Stage is a processing step applied to each item
type Stage interface {
	Name() string
	Process(ctx context.Context, item *RejectionItem) error
}

// StageFunc adapts an ordinary function to the Stage interface
type StageFunc struct {
	name string
	fn   func(ctx context.Context, item *RejectionItem) error
}

func NewStageFunc(name string, fn func(ctx context.Context, item *RejectionItem) error) *StageFunc {
	return &StageFunc{
		name: name,
		fn:   fn,
	}
}

func (s *StageFunc) Name() string {
	return s.name
}

func (s *StageFunc) Process(ctx context.Context, item *RejectionItem) error {
	return s.fn(ctx, item)
}

// PipelineStats is a snapshot of the pipeline counters
type PipelineStats struct {
	ItemsSubmitted uint64
	ItemsDecoded   uint64
	DecodeErrors   uint64
	ItemsEmitted   uint64

	CurrentQueueDepth int
	PeakQueueDepth    int

	StartTime time.Time
}
