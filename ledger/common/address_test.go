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

	"github.com/blinklabs-io/txreject/haskell"
	"github.com/blinklabs-io/txreject/internal/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddressFromBytes(t *testing.T) {
	testDefs := []struct {
		addressBytesHex string
		expectedAddress string
	}{
		{
			addressBytesHex: "11e1317b152faac13426e6a83e06ff88a4d62cce3c1634ab0a5ec1330952563c5410bff6a0d43ccebb7c37e1f69f5eb260552521adff33b9c2",
			expectedAddress: "addr1z8snz7c4974vzdpxu65ruphl3zjdvtxw8strf2c2tmqnxz2j2c79gy9l76sdg0xwhd7r0c0kna0tycz4y5s6mlenh8pq0xmsha",
		},
		{
			addressBytesHex: "013f35615835258addded1c2e169f3a2ab4ae94d606bde030e7947f5184ff5f8e3d43ce6b19ec4197e331e86d0f5e58b02d7a75b5e74cff95d",
			expectedAddress: "addr1qyln2c2cx5jc4hw768pwz60n5245462dvp4auqcw09rl2xz07huw84puu6cea3qe0ce3apks7hjckqkh5ad4uax0l9ws0q9xty",
		},
		{
			addressBytesHex: "7121bd8c2e0df2fbe92137f78dbaba48f62308e52303049f0d628b6c4c",
			expectedAddress: "addr1wysmmrpwphe0h6fpxlmcmw46frmzxz89yvpsf8cdv29kcnqsw3vw6",
		},
		{
			addressBytesHex: "61cfe224295a282d69edda5fa8de4f131e2b9cd21a6c9235597fa4ff6b",
			expectedAddress: "addr1v887yfpftg5z660dmf063hj0zv0zh8xjrfkfyd2e07j076cecha5k",
		},
		// Long (but apparently valid) address from:
		// https://github.com/IntersectMBO/cardano-ledger/issues/2729
		{
			addressBytesHex: "015bad085057ac10ecc7060f7ac41edd6f63068d8963ef7d86ca58669e5ecf2d283418a60be5a848a2380eb721000da1e0bbf39733134beca4cb57afb0b35fc89c63061c9914e055001a518c7516",
			expectedAddress: "addr1q9d66zzs27kppmx8qc8h43q7m4hkxp5d39377lvxefvxd8j7eukjsdqc5c97t2zg5guqadepqqx6rc9m7wtnxy6tajjvk4a0kze4ljyuvvrpexg5up2sqxj33363v35gtew",
		},
		// Another long (but apparently valid) address seen in the wild
		{
			addressBytesHex: "61549b5a20e449a3e394b762705f64b9a26b99013003a2bfdba239967c00",
			expectedAddress: "addr1v92fkk3qu3y68cu5ka38qhmyhx3xhxgpxqp6907m5guevlqqjd7xgj",
		},
		// Byron address, mainnet with derivation
		{
			addressBytesHex: "82d818584283581caf56de241bcca83d72c51e74d18487aa5bc68b45e2caa170fa329d3aa101581e581cea1425ccdd649b25af5deb7e6335da2eb8167353a55e77925122e95f001a3a858621",
			expectedAddress: "DdzFFzCqrht2ii4Vc7KRchSkVvQtCqdGkQt4nF4Yxg1NpsubFBity2Tpt2eSEGrxBH1eva8qCFKM2Y5QkwM1SFBizRwZgz1N452WYvgG",
		},
		// Byron address, preview
		{
			addressBytesHex: "82d818582483581c5d5e698eba3dd9452add99a1af9461beb0ba61b8bece26e7399878dda1024102001a36d41aba",
			expectedAddress: "FHnt4NL7yPXvDWHa8bVs73UEUdJd64VxWXSFNqetECtYfTd9TtJguJ14Lu3feth",
		},
	}
	for _, testDef := range testDefs {
		addr, err := NewAddressFromBytes(
			test.DecodeHexString(testDef.addressBytesHex),
		)
		if err != nil {
			t.Fatalf(
				"failure populating address from bytes: %s",
				err,
			)
		}
		if addr.String() != testDef.expectedAddress {
			t.Fatalf(
				"address did not match expected value, got: %s, wanted: %s",
				addr.String(),
				testDef.expectedAddress,
			)
		}
	}
}

func TestAddressShow(t *testing.T) {
	testDefs := []struct {
		addressBytesHex string
		expected        string
	}{
		{
			addressBytesHex: "013f35615835258addded1c2e169f3a2ab4ae94d606bde030e7947f5184ff5f8e3d43ce6b19ec4197e331e86d0f5e58b02d7a75b5e74cff95d",
			expected:        `Addr Mainnet (KeyHashObj (KeyHash {unKeyHash = "3f35615835258addded1c2e169f3a2ab4ae94d606bde030e7947f518"})) (StakeRefBase (KeyHashObj (KeyHash {unKeyHash = "4ff5f8e3d43ce6b19ec4197e331e86d0f5e58b02d7a75b5e74cff95d"})))`,
		},
		{
			addressBytesHex: "7121bd8c2e0df2fbe92137f78dbaba48f62308e52303049f0d628b6c4c",
			expected:        `Addr Mainnet (ScriptHashObj (ScriptHash "21bd8c2e0df2fbe92137f78dbaba48f62308e52303049f0d628b6c4c")) StakeRefNull`,
		},
		{
			// Pointer address with slot 2498243, tx index 27, cert index 3
			addressBytesHex: "40cfe224295a282d69edda5fa8de4f131e2b9cd21a6c9235597fa4ff6b8198bd431b03",
			expected:        `Addr Testnet (KeyHashObj (KeyHash {unKeyHash = "cfe224295a282d69edda5fa8de4f131e2b9cd21a6c9235597fa4ff6b"})) (StakeRefPtr (Ptr (SlotNo 2498243) (TxIx {unTxIx = 27}) (CertIx {unCertIx = 3})))`,
		},
	}
	for _, testDef := range testDefs {
		addr, err := NewAddressFromBytes(test.DecodeHexString(testDef.addressBytesHex))
		require.NoError(t, err)
		assert.Equal(t, testDef.expected, haskell.Show(addr))
	}
}

func TestAddressByronPlaceholder(t *testing.T) {
	addr, err := NewAddressFromBytes(
		test.DecodeHexString("82d818582483581c5d5e698eba3dd9452add99a1af9461beb0ba61b8bece26e7399878dda1024102001a36d41aba"),
	)
	require.NoError(t, err)
	assert.True(t, addr.IsByron())
	assert.Equal(
		t,
		"AddrBootstrap <unimplemented: BootstrapAddress FHnt4NL7yPXvDWHa8bVs73UEUdJd64VxWXSFNqetECtYfTd9TtJguJ14Lu3feth>",
		haskell.Show(addr),
	)
}

func TestAddressMalformed(t *testing.T) {
	testDefs := []string{
		"",
		// Payment hash cut short
		"61cfe224295a282d69edda5fa8de4f131e2b9cd21a",
		// Stake address in an output position
		"e1cfe224295a282d69edda5fa8de4f131e2b9cd21a6c9235597fa4ff6b",
		// Pointer missing its certificate index
		"40cfe224295a282d69edda5fa8de4f131e2b9cd21a6c9235597fa4ff6b8198bd431b",
	}
	for _, testDef := range testDefs {
		_, err := NewAddressFromBytes(test.DecodeHexString(testDef))
		assert.ErrorIs(t, err, ErrMalformed, "address %s", testDef)
	}
}
