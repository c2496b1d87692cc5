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
	"errors"
	"fmt"
)

// ShelleyBasedEra identifies the era of a transaction validation error, using
// the era index the node puts in front of the failure list
type ShelleyBasedEra uint8

const (
	ShelleyBasedEraShelley ShelleyBasedEra = 1
	ShelleyBasedEraAllegra ShelleyBasedEra = 2
	ShelleyBasedEraMary    ShelleyBasedEra = 3
	ShelleyBasedEraAlonzo  ShelleyBasedEra = 4
	ShelleyBasedEraBabbage ShelleyBasedEra = 5
	ShelleyBasedEraConway  ShelleyBasedEra = 6
)

// ErrUnsupportedEra is returned for an era index outside 1..6, and for eras
// whose failure taxonomy is not decoded
var ErrUnsupportedEra = errors.New("unsupported era")

var eraNames = map[ShelleyBasedEra]string{
	ShelleyBasedEraShelley: "ShelleyBasedEraShelley",
	ShelleyBasedEraAllegra: "ShelleyBasedEraAllegra",
	ShelleyBasedEraMary:    "ShelleyBasedEraMary",
	ShelleyBasedEraAlonzo:  "ShelleyBasedEraAlonzo",
	ShelleyBasedEraBabbage: "ShelleyBasedEraBabbage",
	ShelleyBasedEraConway:  "ShelleyBasedEraConway",
}

// GetEraById returns the era for a wire era index
func GetEraById(eraId uint64) (ShelleyBasedEra, error) {
	era := ShelleyBasedEra(eraId)
	if eraId > 255 {
		return 0, fmt.Errorf("%w: era index %d", ErrUnsupportedEra, eraId)
	}
	if _, ok := eraNames[era]; !ok {
		return 0, fmt.Errorf("%w: era index %d", ErrUnsupportedEra, eraId)
	}
	return era, nil
}

func (e ShelleyBasedEra) String() string {
	if name, ok := eraNames[e]; ok {
		return name
	}
	return fmt.Sprintf("ShelleyBasedEra(%d)", uint8(e))
}

// MarshalText makes the era usable as a JSON string
func (e ShelleyBasedEra) MarshalText() ([]byte, error) {
	if _, ok := eraNames[e]; !ok {
		return nil, fmt.Errorf("%w: era index %d", ErrUnsupportedEra, uint8(e))
	}
	return []byte(e.String()), nil
}

func (e *ShelleyBasedEra) UnmarshalText(text []byte) error {
	for era, name := range eraNames {
		if name == string(text) {
			*e = era
			return nil
		}
	}
	return fmt.Errorf("%w: %q", ErrUnsupportedEra, string(text))
}
