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

func TestPlutusPurpose(t *testing.T) {
	txId := test.DecodeHexString(testHash256)
	hash := test.DecodeHexString(testHash224)
	testDefs := []struct {
		name     string
		purpose  []any
		expected string
	}{
		{
			name:     "SpendingAsIx",
			purpose:  []any{0, 3},
			expected: "ConwaySpending (AsIx {unAsIx = 3})",
		},
		{
			name:     "SpendingAsItem",
			purpose:  []any{0, []any{txId, 1}},
			expected: `ConwaySpending (AsItem {unAsItem = TxIn (TxId {unTxId = SafeHash "` + testHash256 + `"}) (TxIx {unTxIx = 1})})`,
		},
		{
			name:     "MintingAsItem",
			purpose:  []any{1, hash},
			expected: `ConwayMinting (AsItem {unAsItem = PolicyID {policyID = ScriptHash "` + testHash224 + `"}})`,
		},
		{
			name:     "CertifyingAsIx",
			purpose:  []any{2, 0},
			expected: "ConwayCertifying (AsIx {unAsIx = 0})",
		},
		{
			name:     "CertifyingAsItem",
			purpose:  []any{2, []any{0, testCred()}},
			expected: "ConwayCertifying (AsItem {unAsItem = ConwayTxCertDeleg (ConwayRegCert (" + testKeyCredShow + ") SNothing)})",
		},
		{
			name:     "RewardingAsItem",
			purpose:  []any{3, testRewardAccountBytes()},
			expected: "ConwayRewarding (AsItem {unAsItem = RewardAccount {raNetwork = Testnet, raCredential = " + testKeyCredShow + "}})",
		},
		{
			name:     "VotingAsItem",
			purpose:  []any{4, []any{4, hash}},
			expected: "ConwayVoting (AsItem {unAsItem = StakePoolVoter (" + testKeyHashShow + ")})",
		},
		{
			name:     "ProposingAsIx",
			purpose:  []any{5, 7},
			expected: "ConwayProposing (AsIx {unAsIx = 7})",
		},
	}
	for _, testDef := range testDefs {
		t.Run(testDef.name, func(t *testing.T) {
			var purpose PlutusPurpose
			_, err := cbor.Decode(test.EncodeCbor(testDef.purpose), &purpose)
			require.NoError(t, err)
			assert.Equal(t, testDef.expected, haskell.Show(purpose))
		})
	}
}

func TestPlutusPurposeMalformed(t *testing.T) {
	var purpose PlutusPurpose
	_, err := cbor.Decode(test.EncodeCbor([]any{6, 0}), &purpose)
	assert.ErrorIs(t, err, common.ErrUnknownDiscriminant)
	_, err = cbor.Decode(test.EncodeCbor([]any{0, 1, 2}), &purpose)
	assert.ErrorIs(t, err, common.ErrMalformed)
	// Minting with a hash of the wrong size
	_, err = cbor.Decode(test.EncodeCbor([]any{1, []byte{1, 2, 3}}), &purpose)
	assert.ErrorIs(t, err, common.ErrMalformed)
}

func TestMissingRedeemers(t *testing.T) {
	hash := test.DecodeHexString(testHash224)
	data := test.EncodeCbor([]any{1, []any{10, []any{
		[]any{[]any{1, 0}, hash},
	}}})
	failure, err := NewLedgerPredFailureFromCbor(data)
	require.NoError(t, err)
	assert.Equal(
		t,
		`ConwayUtxowFailure (MissingRedeemers [(ConwayMinting (AsIx {unAsIx = 0}),ScriptHash "`+testHash224+`")])`,
		haskell.Show(failure),
	)
}

func TestValidationTagMismatch(t *testing.T) {
	testDefs := []struct {
		name     string
		mismatch []any
		expected string
	}{
		{
			name:     "PassedUnexpectedly",
			mismatch: []any{0, false, []any{0}},
			expected: "ConwayUtxowFailure (UtxoFailure (UtxosFailure (ValidationTagMismatch (IsValid False) PassedUnexpectedly)))",
		},
		{
			name: "FailedUnexpectedly",
			mismatch: []any{
				0,
				true,
				[]any{1, []any{
					[]any{1, "boom", []byte("ab")},
					[]any{1, "", []byte{}},
				}},
			},
			expected: `ConwayUtxowFailure (UtxoFailure (UtxosFailure (ValidationTagMismatch (IsValid True) (FailedUnexpectedly (PlutusFailure "boom" "ab" :| [PlutusFailure "" ""])))))`,
		},
	}
	for _, testDef := range testDefs {
		t.Run(testDef.name, func(t *testing.T) {
			data := test.EncodeCbor([]any{1, []any{0, []any{0, testDef.mismatch}}})
			failure, err := NewLedgerPredFailureFromCbor(data)
			require.NoError(t, err)
			assert.Equal(t, testDef.expected, haskell.Show(failure))
		})
	}
}

func TestValidationTagMismatchUnknownDescription(t *testing.T) {
	data := test.EncodeCbor([]any{0, true, []any{2}})
	_, err := NewUtxosPredFailureFromCbor(data)
	assert.ErrorIs(t, err, common.ErrUnknownDiscriminant)
	// Only PlutusFailure descriptions exist
	data = test.EncodeCbor([]any{0, true, []any{1, []any{[]any{0, "x", []byte{}}}}})
	_, err = NewUtxosPredFailureFromCbor(data)
	assert.ErrorIs(t, err, common.ErrUnknownDiscriminant)
}

func TestCollectErrors(t *testing.T) {
	hash := test.DecodeHexString(testHash224)
	data := test.EncodeCbor([]any{1, []any{
		[]any{0, []any{0, 2}},
		[]any{1, hash},
		[]any{2, 1},
		[]any{3, []any{0, "translation detail"}},
	}})
	failure, err := NewUtxosPredFailureFromCbor(data)
	require.NoError(t, err)
	assert.Equal(
		t,
		`CollectErrors [NoRedeemer (ConwaySpending (AsIx {unAsIx = 2})),NoWitness (ScriptHash "`+testHash224+`"),NoCostModel PlutusV2,BadTranslation <unimplemented: ContextError>]`,
		haskell.Show(failure),
	)
	collect, ok := failure.(*CollectErrors)
	require.True(t, ok)
	assert.Equal(t, test.EncodeCbor([]any{0, "translation detail"}), []byte(collect.Errors[3].Context))
}

func TestCollectErrorUnknown(t *testing.T) {
	_, err := NewUtxosPredFailureFromCbor(test.EncodeCbor([]any{1, []any{[]any{4}}}))
	assert.ErrorIs(t, err, common.ErrUnknownDiscriminant)
	// Plutus V4 does not exist
	_, err = NewUtxosPredFailureFromCbor(test.EncodeCbor([]any{1, []any{[]any{2, 3}}}))
	assert.ErrorIs(t, err, common.ErrUnknownDiscriminant)
}
