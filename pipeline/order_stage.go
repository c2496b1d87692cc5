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
	"sync"
)

// OrderStage releases items in sequence order, holding back items that
// finish ahead of an earlier one
type OrderStage struct {
	mu           sync.Mutex
	pending      map[uint64]*RejectionItem
	nextSequence uint64
}

func NewOrderStage() *OrderStage {
	return &OrderStage{
		pending: make(map[uint64]*RejectionItem),
	}
}

func (s *OrderStage) Name() string {
	return "order"
}

// Release accepts an item and returns the items that are now in order,
// which may be none
func (s *OrderStage) Release(item *RejectionItem) []*RejectionItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	if item.SequenceNumber() != s.nextSequence {
		s.pending[item.SequenceNumber()] = item
		return nil
	}
	released := []*RejectionItem{item}
	s.nextSequence++
	for {
		next, ok := s.pending[s.nextSequence]
		if !ok {
			return released
		}
		delete(s.pending, s.nextSequence)
		s.nextSequence++
		released = append(released, next)
	}
}

func (s *OrderStage) PendingCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending)
}

// OrderStageRunner feeds an OrderStage from a channel
type OrderStageRunner struct {
	stage   *OrderStage
	input   <-chan *RejectionItem
	output  chan<- *RejectionItem
	metrics *PipelineMetrics
	done    chan struct{}
}

func NewOrderStageRunner(
	stage *OrderStage,
	input <-chan *RejectionItem,
	output chan<- *RejectionItem,
	metrics *PipelineMetrics,
) *OrderStageRunner {
	return &OrderStageRunner{
		stage:   stage,
		input:   input,
		output:  output,
		metrics: metrics,
		done:    make(chan struct{}),
	}
}

func (r *OrderStageRunner) Start(ctx context.Context) {
	go r.run(ctx)
}

// Stop waits for the runner to finish
func (r *OrderStageRunner) Stop() {
	<-r.done
}

func (r *OrderStageRunner) run(ctx context.Context) {
	defer close(r.done)

	for {
		select {
		case <-ctx.Done():
			return
		case item, ok := <-r.input:
			if !ok {
				return
			}
			for _, released := range r.stage.Release(item) {
				select {
				case r.output <- released:
					if r.metrics != nil {
						r.metrics.RecordEmit()
					}
				case <-ctx.Done():
					return
				}
			}
		}
	}
}
