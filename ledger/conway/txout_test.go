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

package conway

import (
	"testing"

	"github.com/blinklabs-io/txreject/cbor"
	"github.com/blinklabs-io/txreject/haskell"
	"github.com/blinklabs-io/txreject/internal/test"
	"github.com/blinklabs-io/txreject/ledger/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Hash of the PlutusV3 script deadbeef
const testScriptHash = "2c492f3f2c90a40274051772c1008e60d9cde2ef84a8a37dbbddf8a9"

func testAddressBytes() []byte {
	// Enterprise address on testnet
	return append([]byte{0x60}, test.DecodeHexString(testHash224)...)
}

const (
	testAddressShow = "Addr Testnet (" + testKeyCredShow + ") StakeRefNull"
	testValueShow   = "MaryValue (Coin 5) (MultiAsset (fromList []))"
)

func TestTxOut(t *testing.T) {
	testDefs := []struct {
		name     string
		txOut    any
		expected string
	}{
		{
			name:     "LegacyWithoutDatum",
			txOut:    []any{testAddressBytes(), 5},
			expected: "(" + testAddressShow + "," + testValueShow + ",NoDatum,SNothing)",
		},
		{
			name:     "LegacyWithDatumHash",
			txOut:    []any{testAddressBytes(), 5, test.DecodeHexString(testHash256)},
			expected: "(" + testAddressShow + "," + testValueShow + `,DatumHash (SafeHash "` + testHash256 + `"),SNothing)`,
		},
		{
			name: "MapWithDatumHash",
			txOut: map[int]any{
				0: testAddressBytes(),
				1: 5,
				2: []any{0, test.DecodeHexString(testHash256)},
			},
			expected: "(" + testAddressShow + "," + testValueShow + `,DatumHash (SafeHash "` + testHash256 + `"),SNothing)`,
		},
		{
			name: "MapWithInlineDatumAndScriptRef",
			txOut: map[int]any{
				0: testAddressBytes(),
				1: 5,
				2: []any{1, cbor.Tag{Number: cbor.CborTagCbor, Content: test.DecodeHexString("d87980")}},
				3: cbor.Tag{Number: cbor.CborTagCbor, Content: test.DecodeHexString("820344deadbeef")},
			},
			expected: "(" + testAddressShow + "," + testValueShow + `,Datum "\216y\128",SJust PlutusScript PlutusV3 ScriptHash "` + testScriptHash + `")`,
		},
	}
	for _, testDef := range testDefs {
		t.Run(testDef.name, func(t *testing.T) {
			var txOut TxOut
			_, err := cbor.Decode(test.EncodeCbor(testDef.txOut), &txOut)
			require.NoError(t, err)
			assert.Equal(t, testDef.expected, haskell.Show(txOut))
		})
	}
}

func TestTxOutMalformed(t *testing.T) {
	testDefs := []struct {
		name  string
		txOut any
	}{
		{name: "LegacyTooShort", txOut: []any{testAddressBytes()}},
		{name: "MapWithoutAmount", txOut: map[int]any{0: testAddressBytes()}},
		{name: "MapUnknownKey", txOut: map[int]any{0: testAddressBytes(), 1: 5, 4: 0}},
		{name: "NotArrayOrMap", txOut: 5},
		{
			name:  "ScriptRefTrailingBytes",
			txOut: map[int]any{0: testAddressBytes(), 1: 5, 3: cbor.Tag{Number: cbor.CborTagCbor, Content: test.DecodeHexString("820344deadbeef00")}},
		},
	}
	for _, testDef := range testDefs {
		t.Run(testDef.name, func(t *testing.T) {
			var txOut TxOut
			_, err := cbor.Decode(test.EncodeCbor(testDef.txOut), &txOut)
			assert.ErrorIs(t, err, common.ErrMalformed)
		})
	}
}

func TestDatumUnknownType(t *testing.T) {
	var datum Datum
	_, err := cbor.Decode(test.EncodeCbor([]any{2, 0}), &datum)
	assert.ErrorIs(t, err, common.ErrUnknownDiscriminant)
	// Inline datum without the embedded CBOR tag
	_, err = cbor.Decode(test.EncodeCbor([]any{1, test.DecodeHexString("d87980")}), &datum)
	assert.ErrorIs(t, err, common.ErrUnexpectedTag)
}

func TestOutputTooSmall(t *testing.T) {
	data := test.EncodeCbor([]any{1, []any{0, []any{9, []any{
		[]any{testAddressBytes(), 5},
	}}}})
	failure, err := NewLedgerPredFailureFromCbor(data)
	require.NoError(t, err)
	assert.Equal(
		t,
		"ConwayUtxowFailure (UtxoFailure (OutputTooSmallUTxO [("+testAddressShow+","+testValueShow+",NoDatum,SNothing)]))",
		haskell.Show(failure),
	)
}

func TestScriptsNotPaid(t *testing.T) {
	utxo := test.DecodeHexString(
		"a1" + "825820" + testHash256 + "00" + "82" + "581d" + "60" + testHash224 + "05",
	)
	data := append(test.DecodeHexString("82018200820d"), utxo...)
	failure, err := NewLedgerPredFailureFromCbor(data)
	require.NoError(t, err)
	assert.Equal(
		t,
		`ConwayUtxowFailure (UtxoFailure (ScriptsNotPaidUTxO (UTxO (fromList [(TxIn (TxId {unTxId = SafeHash "`+testHash256+`"}) (TxIx {unTxIx = 0}),(`+testAddressShow+","+testValueShow+",NoDatum,SNothing))]))))",
		haskell.Show(failure),
	)
}
