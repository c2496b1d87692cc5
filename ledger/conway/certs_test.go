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

	"github.com/blinklabs-io/txreject/haskell"
	"github.com/blinklabs-io/txreject/internal/test"
	"github.com/blinklabs-io/txreject/ledger/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// certFailure wraps a CERT rule failure the way the ledger reports it
func certFailure(certType int, inner []any) []byte {
	return test.EncodeCbor([]any{2, []any{1, []any{certType, inner}}})
}

func TestPoolPredFailures(t *testing.T) {
	hash := test.DecodeHexString(testHash224)
	testDefs := []struct {
		name     string
		failure  []any
		expected string
	}{
		{
			name:     "StakePoolNotRegisteredOnKey",
			failure:  []any{0, hash},
			expected: "StakePoolNotRegisteredOnKeyPOOL (" + testKeyHashShow + ")",
		},
		{
			name:     "StakePoolRetirementWrongEpoch",
			failure:  []any{1, 10, 20, 15},
			expected: "StakePoolRetirementWrongEpochPOOL (Mismatch {mismatchSupplied = EpochNo 20, mismatchExpected = EpochNo 10}) (Mismatch {mismatchSupplied = EpochNo 20, mismatchExpected = EpochNo 15})",
		},
		{
			name:     "StakePoolCostTooLow",
			failure:  []any{3, 100, 340},
			expected: "StakePoolCostTooLowPOOL (Mismatch {mismatchSupplied = Coin 100, mismatchExpected = Coin 340})",
		},
		{
			name:     "WrongNetwork",
			failure:  []any{4, 1, 0, hash},
			expected: "WrongNetworkPOOL (Mismatch {mismatchSupplied = Testnet, mismatchExpected = Mainnet}) (" + testKeyHashShow + ")",
		},
		{
			name:     "PoolMedataHashTooBig",
			failure:  []any{5, hash, 40},
			expected: "PoolMedataHashTooBig (" + testKeyHashShow + ") 40",
		},
		{
			name:     "VRFKeyHashAlreadyRegistered",
			failure:  []any{6, hash, test.DecodeHexString(testHash256)},
			expected: "VRFKeyHashAlreadyRegistered (" + testKeyHashShow + `) (VRFVerKeyHash {unVRFVerKeyHash = "` + testHash256 + `"})`,
		},
	}
	for _, testDef := range testDefs {
		t.Run(testDef.name, func(t *testing.T) {
			failure, err := NewLedgerPredFailureFromCbor(certFailure(2, testDef.failure))
			require.NoError(t, err)
			assert.Equal(
				t,
				"ConwayCertsFailure (CertFailure (PoolFailure ("+testDef.expected+")))",
				haskell.Show(failure),
			)
		})
	}
}

func TestPoolRetiredDiscriminant(t *testing.T) {
	_, err := NewPoolPredFailureFromCbor(test.EncodeCbor([]any{2, 10, 20}))
	assert.ErrorIs(t, err, common.ErrUnknownDiscriminant)
}

func TestDelegPredFailures(t *testing.T) {
	hash := test.DecodeHexString(testHash224)
	testDefs := []struct {
		failure  []any
		expected string
	}{
		{failure: []any{1, 2000000}, expected: "IncorrectDepositDELEG (Coin 2000000)"},
		{failure: []any{2, testCred()}, expected: "StakeKeyRegisteredDELEG (" + testKeyCredShow + ")"},
		{failure: []any{3, testCred()}, expected: "StakeKeyNotRegisteredDELEG (" + testKeyCredShow + ")"},
		{failure: []any{4, 12}, expected: "StakeKeyHasNonZeroRewardAccountBalanceDELEG (Coin 12)"},
		{failure: []any{5, testCred()}, expected: "DelegateeDRepNotRegisteredDELEG (" + testKeyCredShow + ")"},
		{failure: []any{6, hash}, expected: "DelegateeStakePoolNotRegisteredDELEG (" + testKeyHashShow + ")"},
	}
	for _, testDef := range testDefs {
		failure, err := NewLedgerPredFailureFromCbor(certFailure(1, testDef.failure))
		require.NoError(t, err)
		assert.Equal(
			t,
			"ConwayCertsFailure (CertFailure (DelegFailure ("+testDef.expected+")))",
			haskell.Show(failure),
		)
	}
}

func TestGovCertPredFailures(t *testing.T) {
	testDefs := []struct {
		failure  []any
		expected string
	}{
		{failure: []any{0, testCred()}, expected: "ConwayDRepAlreadyRegistered (" + testKeyCredShow + ")"},
		{failure: []any{1, testCred()}, expected: "ConwayDRepNotRegistered (" + testKeyCredShow + ")"},
		{failure: []any{2, 1, 2}, expected: "ConwayDRepIncorrectDeposit (Coin 1) (Coin 2)"},
		{failure: []any{3, testCred()}, expected: "ConwayCommitteeHasPreviouslyResigned (" + testKeyCredShow + ")"},
		{failure: []any{4, 3, 4}, expected: "ConwayDRepIncorrectRefund (Coin 3) (Coin 4)"},
		{failure: []any{5, testCred()}, expected: "ConwayCommitteeIsUnknown (" + testKeyCredShow + ")"},
	}
	for _, testDef := range testDefs {
		failure, err := NewLedgerPredFailureFromCbor(certFailure(3, testDef.failure))
		require.NoError(t, err)
		assert.Equal(
			t,
			"ConwayCertsFailure (CertFailure (GovCertFailure ("+testDef.expected+")))",
			haskell.Show(failure),
		)
	}
}
