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

import "runtime"

// PipelineConfig holds configuration for a DecodePipeline
type PipelineConfig struct {
	// DecodeWorkers is the number of parallel decode workers
	DecodeWorkers int
	// BufferSize is the capacity of the channels between stages
	BufferSize int
}

// DefaultPipelineConfig scales the decode workers with the CPU count
func DefaultPipelineConfig() PipelineConfig {
	return PipelineConfig{
		DecodeWorkers: max(runtime.NumCPU(), 2),
		BufferSize:    256,
	}
}

// PipelineOption is a functional option for configuring a DecodePipeline
type PipelineOption func(*PipelineConfig)

// WithDecodeWorkers sets the number of decode workers. Values below one
// are ignored
func WithDecodeWorkers(n int) PipelineOption {
	return func(c *PipelineConfig) {
		if n > 0 {
			c.DecodeWorkers = n
		}
	}
}

// WithBufferSize sets the inter-stage channel capacity. Negative values are
// ignored
func WithBufferSize(n int) PipelineOption {
	return func(c *PipelineConfig) {
		if n >= 0 {
			c.BufferSize = n
		}
	}
}
