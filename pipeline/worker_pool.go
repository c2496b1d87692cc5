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
)

// ErrNilStage is returned when a worker pool is created without a stage
var ErrNilStage = errors.New("pipeline: nil stage")

// MetricsRecorder records the outcome of processing an item
type MetricsRecorder func(item *RejectionItem, err error)

// StageWorkerPool runs a stage on several workers. Items leave the pool in
// completion order, with the stage error recorded on the item
type StageWorkerPool struct {
	stage         Stage
	numWorkers    int
	input         <-chan *RejectionItem
	output        chan<- *RejectionItem
	recordMetrics MetricsRecorder
	wg            sync.WaitGroup
	started       atomic.Bool
}

type StageWorkerPoolConfig struct {
	Stage Stage
	// NumWorkers defaults to 1
	NumWorkers    int
	Input         <-chan *RejectionItem
	Output        chan<- *RejectionItem
	RecordMetrics MetricsRecorder
}

func NewStageWorkerPool(config StageWorkerPoolConfig) (*StageWorkerPool, error) {
	if config.Stage == nil {
		return nil, ErrNilStage
	}
	numWorkers := config.NumWorkers
	if numWorkers <= 0 {
		numWorkers = 1
	}
	return &StageWorkerPool{
		stage:         config.Stage,
		numWorkers:    numWorkers,
		input:         config.Input,
		output:        config.Output,
		recordMetrics: config.RecordMetrics,
	}, nil
}

// Start launches the workers. Later calls have no effect
func (p *StageWorkerPool) Start(ctx context.Context) {
	if p.started.Swap(true) {
		return
	}
	for range p.numWorkers {
		p.wg.Add(1)
		go p.worker(ctx)
	}
}

// Stop waits for the workers to finish. Workers finish when the input
// channel is closed or the context is done
func (p *StageWorkerPool) Stop() {
	p.wg.Wait()
}

func (p *StageWorkerPool) worker(ctx context.Context) {
	defer p.wg.Done()

	for {
		select {
		case <-ctx.Done():
			return
		case item, ok := <-p.input:
			if !ok {
				return
			}

			err := p.stage.Process(ctx, item)
			if p.recordMetrics != nil &&
				!errors.Is(err, context.Canceled) &&
				!errors.Is(err, context.DeadlineExceeded) {
				p.recordMetrics(item, err)
			}

			select {
			case p.output <- item:
			case <-ctx.Done():
				return
			}
		}
	}
}

// DecodeMetricsRecorder returns a MetricsRecorder for the decode stage
func DecodeMetricsRecorder(metrics *PipelineMetrics) MetricsRecorder {
	if metrics == nil {
		return nil
	}
	return func(item *RejectionItem, err error) {
		metrics.RecordDecode(item.DecodeDuration(), err)
	}
}
