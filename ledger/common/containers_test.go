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

package common

import (
	"testing"

	"github.com/blinklabs-io/txreject/cbor"
	"github.com/blinklabs-io/txreject/haskell"
	"github.com/blinklabs-io/txreject/internal/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSet(t *testing.T) {
	var set Set[Coin]
	_, err := cbor.Decode(test.DecodeHexString("d9010283030102"), &set)
	require.NoError(t, err)
	// Wire order is kept
	assert.Equal(t, Set[Coin]{3, 1, 2}, set)
	assert.Equal(t, "fromList [Coin 3,Coin 1,Coin 2]", haskell.Show(set))
	assert.Equal(t, "SJust (fromList [Coin 3,Coin 1,Coin 2])", haskell.Show(SJust(set)))
}

func TestSetEmpty(t *testing.T) {
	var set Set[ScriptHash]
	_, err := cbor.Decode(test.DecodeHexString("d9010280"), &set)
	require.NoError(t, err)
	assert.Empty(t, set)
	assert.Equal(t, "fromList []", haskell.Show(set))
}

func TestSetRequiresTag(t *testing.T) {
	var set Set[Coin]
	// Untagged array
	_, err := cbor.Decode(test.DecodeHexString("83030102"), &set)
	assert.ErrorIs(t, err, ErrUnexpectedTag)
	// Tag 24 instead of 258
	_, err = cbor.Decode(test.DecodeHexString("d81883030102"), &set)
	assert.ErrorIs(t, err, ErrUnexpectedTag)
}

func TestNonEmpty(t *testing.T) {
	testDefs := []struct {
		cborHex  string
		expected string
	}{
		{cborHex: "8101", expected: "Coin 1 :| []"},
		{cborHex: "83010203", expected: "Coin 1 :| [Coin 2,Coin 3]"},
		{cborHex: "d901028101", expected: "Coin 1 :| []"},
	}
	for _, testDef := range testDefs {
		var nonEmpty NonEmpty[Coin]
		_, err := cbor.Decode(test.DecodeHexString(testDef.cborHex), &nonEmpty)
		require.NoError(t, err)
		assert.Equal(t, testDef.expected, haskell.Show(nonEmpty))
	}
	var nonEmpty NonEmpty[Coin]
	_, err := cbor.Decode(test.DecodeHexString("80"), &nonEmpty)
	assert.ErrorIs(t, err, ErrMalformed)
}

func TestStrictMaybe(t *testing.T) {
	var absent StrictMaybe[Coin]
	_, err := cbor.Decode(test.DecodeHexString("80"), &absent)
	require.NoError(t, err)
	assert.False(t, absent.Present)
	assert.Equal(t, "SNothing", haskell.Show(absent))
	assert.Equal(t, "Con SNothing", haskell.Show(haskell.Con("Con", absent)))

	var present StrictMaybe[Coin]
	_, err = cbor.Decode(test.DecodeHexString("811a000de756"), &present)
	require.NoError(t, err)
	assert.True(t, present.Present)
	assert.Equal(t, Coin(911190), present.Value)
	assert.Equal(t, "SJust (Coin 911190)", haskell.Show(present))
	assert.Equal(t, "Con (SJust (Coin 911190))", haskell.Show(haskell.Con("Con", present)))

	var atomic StrictMaybe[haskell.Int]
	_, err = cbor.Decode(test.DecodeHexString("8105"), &atomic)
	require.NoError(t, err)
	assert.Equal(t, "SJust 5", haskell.Show(atomic))

	var tooMany StrictMaybe[Coin]
	_, err = cbor.Decode(test.DecodeHexString("820102"), &tooMany)
	assert.ErrorIs(t, err, ErrMalformed)
}

func TestMaybe(t *testing.T) {
	var tmp struct {
		cbor.StructAsArray
		Present *Coin
		Absent  *Coin
	}
	_, err := cbor.Decode(test.DecodeHexString("8207f6"), &tmp)
	require.NoError(t, err)
	assert.Equal(t, "SJust (Coin 7)", haskell.Show(Maybe(tmp.Present)))
	assert.Equal(t, "SNothing", haskell.Show(Maybe(tmp.Absent)))
}

func TestMapKeepsWireOrder(t *testing.T) {
	// {2: 20, 1: 10}, which is not canonical order
	var m Map[haskell.Uint, Coin]
	_, err := cbor.Decode(test.DecodeHexString("a20214010a"), &m)
	require.NoError(t, err)
	require.Len(t, m, 2)
	assert.Equal(t, haskell.Uint(2), m[0].Key)
	assert.Equal(t, "fromList [(2,Coin 20),(1,Coin 10)]", haskell.Show(m))
	assert.Equal(t, "X (fromList [])", haskell.Show(haskell.Con("X", Map[haskell.Uint, Coin]{})))
}

func TestMapRejectsNonMap(t *testing.T) {
	var m Map[haskell.Uint, Coin]
	_, err := cbor.Decode(test.DecodeHexString("8101"), &m)
	assert.Error(t, err)
}

func TestListAndPair(t *testing.T) {
	var list List[Pair[haskell.Int, Coin]]
	_, err := cbor.Decode(test.DecodeHexString("81822002"), &list)
	require.NoError(t, err)
	assert.Equal(t, "[(-1,Coin 2)]", haskell.Show(list))
}
