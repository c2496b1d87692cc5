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

package ledger_test

import (
	"testing"

	"github.com/blinklabs-io/txreject/ledger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetEraById(t *testing.T) {
	testDefs := []struct {
		id   uint64
		name string
	}{
		{id: 1, name: "ShelleyBasedEraShelley"},
		{id: 2, name: "ShelleyBasedEraAllegra"},
		{id: 3, name: "ShelleyBasedEraMary"},
		{id: 4, name: "ShelleyBasedEraAlonzo"},
		{id: 5, name: "ShelleyBasedEraBabbage"},
		{id: 6, name: "ShelleyBasedEraConway"},
	}
	for _, testDef := range testDefs {
		era, err := ledger.GetEraById(testDef.id)
		require.NoError(t, err)
		assert.Equal(t, testDef.name, era.String())
		text, err := era.MarshalText()
		require.NoError(t, err)
		assert.Equal(t, testDef.name, string(text))
	}
}

func TestGetEraByIdUnknown(t *testing.T) {
	for _, id := range []uint64{0, 7, 99, 256 + 6} {
		_, err := ledger.GetEraById(id)
		assert.ErrorIs(t, err, ledger.ErrUnsupportedEra, "era index %d", id)
	}
	_, err := ledger.ShelleyBasedEra(0).MarshalText()
	assert.ErrorIs(t, err, ledger.ErrUnsupportedEra)
	assert.Equal(t, "ShelleyBasedEra(0)", ledger.ShelleyBasedEra(0).String())
}
