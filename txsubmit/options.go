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

import "log/slog"

// ServiceOptionFunc is a type that represents functions that modify the Service config
type ServiceOptionFunc func(*Service)

// WithLogger specifies the logger to use. slog.Default() is used otherwise
func WithLogger(logger *slog.Logger) ServiceOptionFunc {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithEraId specifies the era index sent along with each transaction
func WithEraId(eraId uint16) ServiceOptionFunc {
	return func(s *Service) {
		s.eraId = eraId
	}
}
