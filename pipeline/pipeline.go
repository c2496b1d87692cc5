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
	"errors"
	"sync"
	"sync/atomic"
	"time"
)

// ErrPipelineStopped is returned when submitting to a stopped pipeline
var ErrPipelineStopped = errors.New("pipeline is stopped")

// ErrPipelineNotStarted is returned when using a pipeline before Start
var ErrPipelineNotStarted = errors.New("pipeline not started")

// closedResultsChan is returned by Results before Start so callers do not
// block on a nil channel
var closedResultsChan = func() <-chan *RejectionItem {
	ch := make(chan *RejectionItem)
	close(ch)
	return ch
}()

// DecodePipeline decodes rejection payloads on several workers and emits
// them in submission order
type DecodePipeline struct {
	config PipelineConfig

	decodePool  *StageWorkerPool
	orderStage  *OrderStage
	orderRunner *OrderStageRunner

	submitChan  chan *RejectionItem
	decodedChan chan *RejectionItem
	resultsChan chan *RejectionItem

	metrics *PipelineMetrics

	nextSequence uint64
	ctx          context.Context
	cancel       context.CancelFunc
	started      atomic.Bool
	stopped      atomic.Bool
	wg           sync.WaitGroup
	mu           sync.Mutex // protects Start/Stop
	submitMu     sync.Mutex // serializes Submit and guards submitChan against Stop
}

// NewDecodePipeline creates a pipeline using functional options
func NewDecodePipeline(opts ...PipelineOption) *DecodePipeline {
	config := DefaultPipelineConfig()
	for _, opt := range opts {
		opt(&config)
	}
	return &DecodePipeline{
		config:  config,
		metrics: NewPipelineMetrics(),
	}
}

func (p *DecodePipeline) Start(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.stopped.Load() {
		return ErrPipelineStopped
	}
	if p.started.Load() {
		return nil
	}

	p.ctx, p.cancel = context.WithCancel(ctx)

	bufSize := p.config.BufferSize
	p.submitChan = make(chan *RejectionItem, bufSize)
	p.decodedChan = make(chan *RejectionItem, bufSize)
	p.resultsChan = make(chan *RejectionItem, bufSize)

	decodePool, err := NewStageWorkerPool(StageWorkerPoolConfig{
		Stage:         NewDecodeStage(),
		NumWorkers:    p.config.DecodeWorkers,
		Input:         p.submitChan,
		Output:        p.decodedChan,
		RecordMetrics: DecodeMetricsRecorder(p.metrics),
	})
	if err != nil {
		p.cancel()
		return err
	}
	p.decodePool = decodePool
	p.orderStage = NewOrderStage()
	p.orderRunner = NewOrderStageRunner(
		p.orderStage,
		p.decodedChan,
		p.resultsChan,
		p.metrics,
	)

	p.decodePool.Start(p.ctx)  //nolint:contextcheck
	p.orderRunner.Start(p.ctx) //nolint:contextcheck

	p.wg.Add(1)
	go p.metricsCollector()

	p.started.Store(true)
	return nil
}

// Submit queues a payload for decoding. It blocks while the pipeline is
// full, until ctx is done
func (p *DecodePipeline) Submit(ctx context.Context, reasonCbor []byte) error {
	if !p.started.Load() {
		return ErrPipelineNotStarted
	}

	p.submitMu.Lock()
	defer p.submitMu.Unlock()

	if p.stopped.Load() {
		return ErrPipelineStopped
	}

	// The sequence number is only consumed by a successful send, so the
	// order stage never waits for an item that was not queued
	item := NewRejectionItem(reasonCbor, p.nextSequence)
	select {
	case p.submitChan <- item:
		p.nextSequence++
		p.metrics.RecordSubmit()
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-p.ctx.Done():
		return ErrPipelineStopped
	}
}

// Results returns the decoded items in submission order. The channel is
// closed by Stop
func (p *DecodePipeline) Results() <-chan *RejectionItem {
	if !p.started.Load() {
		return closedResultsChan
	}
	return p.resultsChan
}

// Stop stops accepting payloads, waits for queued payloads to be emitted and
// closes the results channel. Results must be read concurrently
func (p *DecodePipeline) Stop() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.started.Load() || p.stopped.Load() {
		return nil
	}

	p.submitMu.Lock()
	p.stopped.Store(true)
	close(p.submitChan)
	p.submitMu.Unlock()

	p.decodePool.Stop()
	close(p.decodedChan)
	p.orderRunner.Stop()
	close(p.resultsChan)

	p.cancel()
	p.wg.Wait()
	return nil
}

func (p *DecodePipeline) Stats() PipelineStats {
	return p.metrics.Stats()
}

// PendingCount is the approximate number of items not yet emitted
func (p *DecodePipeline) PendingCount() int {
	if !p.started.Load() {
		return 0
	}
	return len(p.submitChan) + len(p.decodedChan) + p.orderStage.PendingCount()
}

func (p *DecodePipeline) metricsCollector() {
	defer p.wg.Done()

	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-p.ctx.Done():
			return
		case <-ticker.C:
			p.metrics.UpdateQueueDepth(p.PendingCount())
		}
	}
}
