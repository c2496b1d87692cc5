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
	"sync/atomic"
	"time"
)

// PipelineMetrics tracks the pipeline counters
type PipelineMetrics struct {
	itemsSubmitted atomic.Uint64
	itemsDecoded   atomic.Uint64
	decodeErrors   atomic.Uint64
	itemsEmitted   atomic.Uint64
	decodeNanos    atomic.Int64

	mu                sync.RWMutex
	currentQueueDepth int
	peakQueueDepth    int
	startTime         time.Time
}

func NewPipelineMetrics() *PipelineMetrics {
	return &PipelineMetrics{
		startTime: time.Now(),
	}
}

func (m *PipelineMetrics) RecordSubmit() {
	m.itemsSubmitted.Add(1)
}

func (m *PipelineMetrics) RecordDecode(duration time.Duration, err error) {
	m.decodeNanos.Add(int64(duration))
	if err != nil {
		m.decodeErrors.Add(1)
	} else {
		m.itemsDecoded.Add(1)
	}
}

func (m *PipelineMetrics) RecordEmit() {
	m.itemsEmitted.Add(1)
}

// TotalDecodeTime is the time spent in the decode stage across all workers
func (m *PipelineMetrics) TotalDecodeTime() time.Duration {
	return time.Duration(m.decodeNanos.Load())
}

func (m *PipelineMetrics) UpdateQueueDepth(depth int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.currentQueueDepth = depth
	if depth > m.peakQueueDepth {
		m.peakQueueDepth = depth
	}
}

func (m *PipelineMetrics) Stats() PipelineStats {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return PipelineStats{
		ItemsSubmitted:    m.itemsSubmitted.Load(),
		ItemsDecoded:      m.itemsDecoded.Load(),
		DecodeErrors:      m.decodeErrors.Load(),
		ItemsEmitted:      m.itemsEmitted.Load(),
		CurrentQueueDepth: m.currentQueueDepth,
		PeakQueueDepth:    m.peakQueueDepth,
		StartTime:         m.startTime,
	}
}
