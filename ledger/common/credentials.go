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
	"fmt"

	"github.com/blinklabs-io/txreject/cbor"
	"github.com/blinklabs-io/txreject/haskell"
)

const (
	CredentialTypeKeyHash    = 0
	CredentialTypeScriptHash = 1
)

// Credential is either a key hash or a script hash
type Credential struct {
	cbor.StructAsArray
	CredType uint
	Hash     Blake2b224
}

func NewKeyHashCredential(hash KeyHash) Credential {
	return Credential{CredType: CredentialTypeKeyHash, Hash: hash.Blake2b224}
}

func NewScriptHashCredential(hash ScriptHash) Credential {
	return Credential{CredType: CredentialTypeScriptHash, Hash: hash.Blake2b224}
}

func (c *Credential) UnmarshalCBOR(cborData []byte) error {
	credType, err := cbor.DecodeIdFromList(cborData)
	if err != nil {
		return err
	}
	if credType != CredentialTypeKeyHash && credType != CredentialTypeScriptHash {
		return NewUnknownDiscriminantError("Credential", credType, cborData)
	}
	type tCredential Credential
	var tmp tCredential
	if _, err := cbor.Decode(cborData, &tmp); err != nil {
		return err
	}
	*c = Credential(tmp)
	return nil
}

func (c Credential) IsScript() bool {
	return c.CredType == CredentialTypeScriptHash
}

func (c Credential) String() string {
	if c.IsScript() {
		return "script:" + c.Hash.String()
	}
	return "key:" + c.Hash.String()
}

func (c Credential) ShowsPrec(w *haskell.Writer, d int) {
	if c.IsScript() {
		haskell.Con("ScriptHashObj", ScriptHash{c.Hash}).ShowsPrec(w, d)
		return
	}
	haskell.Con("KeyHashObj", KeyHash{c.Hash}).ShowsPrec(w, d)
}

const (
	rewardAccountSize       = 1 + Blake2b224Size
	rewardAccountHeaderType = 0xe0
	rewardAccountScriptBit  = 0x10
)

// RewardAccount is a stake address as it appears in withdrawals and
// proposal return addresses
type RewardAccount struct {
	Network    Network
	Credential Credential
}

func (r *RewardAccount) UnmarshalCBOR(cborData []byte) error {
	var tmp []byte
	if _, err := cbor.Decode(cborData, &tmp); err != nil {
		return err
	}
	ret, err := NewRewardAccountFromBytes(tmp)
	if err != nil {
		return err
	}
	*r = ret
	return nil
}

// NewRewardAccountFromBytes parses a 29 byte reward account
func NewRewardAccountFromBytes(data []byte) (RewardAccount, error) {
	if len(data) != rewardAccountSize {
		return RewardAccount{}, fmt.Errorf(
			"%w: reward account must be %d bytes, found %d",
			ErrMalformed,
			rewardAccountSize,
			len(data),
		)
	}
	header := data[0]
	if header&rewardAccountHeaderType != rewardAccountHeaderType {
		return RewardAccount{}, fmt.Errorf(
			"%w: invalid reward account header 0x%02x",
			ErrMalformed,
			header,
		)
	}
	network := Network(header & 0x0f)
	if network != NetworkTestnet && network != NetworkMainnet {
		return RewardAccount{}, fmt.Errorf(
			"%w: invalid reward account network %d",
			ErrMalformed,
			network,
		)
	}
	ret := RewardAccount{
		Network: network,
		Credential: Credential{
			CredType: CredentialTypeKeyHash,
			Hash:     NewBlake2b224(data[1:]),
		},
	}
	if header&rewardAccountScriptBit != 0 {
		ret.Credential.CredType = CredentialTypeScriptHash
	}
	return ret, nil
}

func (r RewardAccount) Bytes() []byte {
	header := byte(rewardAccountHeaderType) | byte(r.Network&0x01)
	if r.Credential.IsScript() {
		header |= rewardAccountScriptBit
	}
	return append([]byte{header}, r.Credential.Hash[:]...)
}

// String returns the bech32 stake address
func (r RewardAccount) String() string {
	prefix := "stake_test"
	if r.Network == NetworkMainnet {
		prefix = "stake"
	}
	return encodeBech32(prefix, r.Bytes())
}

func (r RewardAccount) ShowsPrec(w *haskell.Writer, d int) {
	haskell.Record(
		"RewardAccount",
		haskell.F("raNetwork", r.Network),
		haskell.F("raCredential", r.Credential),
	).ShowsPrec(w, d)
}
