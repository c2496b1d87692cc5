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
	"errors"
	"fmt"

	"github.com/blinklabs-io/txreject/cbor"
	"github.com/blinklabs-io/txreject/haskell"
	"github.com/btcsuite/btcd/btcutil/base58"
)

const (
	AddressHeaderTypeMask    = 0xF0
	AddressHeaderNetworkMask = 0x0F
	AddressHashSize          = 28

	AddressTypeKeyKey        = 0b0000
	AddressTypeScriptKey     = 0b0001
	AddressTypeKeyScript     = 0b0010
	AddressTypeScriptScript  = 0b0011
	AddressTypeKeyPointer    = 0b0100
	AddressTypeScriptPointer = 0b0101
	AddressTypeKeyNone       = 0b0110
	AddressTypeScriptNone    = 0b0111
	AddressTypeByron         = 0b1000
	AddressTypeNoneKey       = 0b1110
	AddressTypeNoneScript    = 0b1111
)

const (
	StakeRefTypeNull = iota
	StakeRefTypeBase
	StakeRefTypePtr
)

var errAddressTooShort = errors.New("address payload too short")

// Ptr locates a stake registration certificate on chain
type Ptr struct {
	Slot   SlotNo
	TxIx   uint64
	CertIx uint64
}

func (p Ptr) ShowsPrec(w *haskell.Writer, d int) {
	haskell.Con(
		"Ptr",
		p.Slot,
		haskell.Record("TxIx", haskell.F("unTxIx", haskell.Uint(p.TxIx))),
		haskell.Record("CertIx", haskell.F("unCertIx", haskell.Uint(p.CertIx))),
	).ShowsPrec(w, d)
}

// StakeReference is the delegation part of a Shelley address
type StakeReference struct {
	Type       int
	Credential Credential
	Pointer    Ptr
}

func (s StakeReference) ShowsPrec(w *haskell.Writer, d int) {
	switch s.Type {
	case StakeRefTypeBase:
		haskell.Con("StakeRefBase", s.Credential).ShowsPrec(w, d)
	case StakeRefTypePtr:
		haskell.Con("StakeRefPtr", s.Pointer).ShowsPrec(w, d)
	default:
		haskell.Con("StakeRefNull").ShowsPrec(w, d)
	}
}

// Address is a payment address found in a transaction output
type Address struct {
	addressType uint8
	networkId   uint8
	payment     Credential
	stake       StakeReference
	extraData   []byte
	raw         []byte
}

// NewAddressFromBytes returns an Address based on the raw bytes provided
func NewAddressFromBytes(addrBytes []byte) (Address, error) {
	var ret Address
	if err := ret.populateFromBytes(addrBytes); err != nil {
		return Address{}, err
	}
	return ret, nil
}

func (a *Address) populateFromBytes(data []byte) error {
	if len(data) == 0 {
		return fmt.Errorf("%w: empty address", ErrMalformed)
	}
	a.raw = copyBytes(data)
	header := data[0]
	a.addressType = (header & AddressHeaderTypeMask) >> 4
	a.networkId = header & AddressHeaderNetworkMask
	// Byron addresses are kept opaque
	if a.addressType == AddressTypeByron {
		return nil
	}
	// Payment part
	payload := data[1:]
	if len(payload) < AddressHashSize {
		return fmt.Errorf("%w: %w", ErrMalformed, errAddressTooShort)
	}
	switch a.addressType {
	case AddressTypeKeyKey, AddressTypeKeyScript, AddressTypeKeyPointer, AddressTypeKeyNone:
		a.payment = Credential{
			CredType: CredentialTypeKeyHash,
			Hash:     NewBlake2b224(payload[:AddressHashSize]),
		}
	case AddressTypeScriptKey, AddressTypeScriptScript, AddressTypeScriptPointer, AddressTypeScriptNone:
		a.payment = Credential{
			CredType: CredentialTypeScriptHash,
			Hash:     NewBlake2b224(payload[:AddressHashSize]),
		}
	default:
		return fmt.Errorf(
			"%w: address type %d cannot appear in an output",
			ErrMalformed,
			a.addressType,
		)
	}
	payload = payload[AddressHashSize:]
	// Staking part
	switch a.addressType {
	case AddressTypeKeyKey, AddressTypeScriptKey, AddressTypeKeyScript, AddressTypeScriptScript:
		if len(payload) < AddressHashSize {
			return fmt.Errorf("%w: %w", ErrMalformed, errAddressTooShort)
		}
		credType := uint(CredentialTypeKeyHash)
		if a.addressType == AddressTypeKeyScript ||
			a.addressType == AddressTypeScriptScript {
			credType = CredentialTypeScriptHash
		}
		a.stake = StakeReference{
			Type: StakeRefTypeBase,
			Credential: Credential{
				CredType: credType,
				Hash:     NewBlake2b224(payload[:AddressHashSize]),
			},
		}
		payload = payload[AddressHashSize:]
	case AddressTypeKeyPointer, AddressTypeScriptPointer:
		ptr, n, err := decodePointer(payload)
		if err != nil {
			return err
		}
		a.stake = StakeReference{Type: StakeRefTypePtr, Pointer: ptr}
		payload = payload[n:]
	}
	// Trailing bytes are tolerated by the ledger for some historical
	// addresses. See https://github.com/IntersectMBO/cardano-ledger/issues/2729
	if len(payload) > 0 {
		a.extraData = copyBytes(payload)
	}
	return nil
}

// decodePointer reads the three variable length naturals of a pointer
// address and returns the number of bytes consumed
func decodePointer(data []byte) (Ptr, int, error) {
	var values [3]uint64
	pos := 0
	for i := range values {
		var value uint64
		for {
			if pos >= len(data) {
				return Ptr{}, 0, fmt.Errorf("%w: truncated pointer", ErrMalformed)
			}
			if value > (1<<63-1)>>7 {
				return Ptr{}, 0, fmt.Errorf("%w: pointer value overflow", ErrMalformed)
			}
			b := data[pos]
			pos++
			value = (value << 7) | uint64(b&0x7f)
			if b&0x80 == 0 {
				break
			}
		}
		values[i] = value
	}
	return Ptr{
		Slot:   SlotNo(values[0]),
		TxIx:   values[1],
		CertIx: values[2],
	}, pos, nil
}

func (a *Address) UnmarshalCBOR(data []byte) error {
	var tmp []byte
	if _, err := cbor.Decode(data, &tmp); err != nil {
		return err
	}
	return a.populateFromBytes(tmp)
}

func (a Address) Type() uint8 {
	return a.addressType
}

func (a Address) Network() Network {
	return Network(a.networkId)
}

func (a Address) IsByron() bool {
	return a.addressType == AddressTypeByron
}

// PaymentCredential returns the payment credential of a Shelley address
func (a Address) PaymentCredential() Credential {
	return a.payment
}

func (a Address) StakeReference() StakeReference {
	return a.stake
}

// Bytes returns the raw address bytes
func (a Address) Bytes() []byte {
	return a.raw
}

// String returns the bech32 form of a Shelley address or the base58 form of
// a Byron address
func (a Address) String() string {
	if a.IsByron() {
		return base58.Encode(a.raw)
	}
	prefix := "addr_test"
	if a.networkId == uint8(NetworkMainnet) {
		prefix = "addr"
	}
	return encodeBech32(prefix, a.raw)
}

func (a Address) ShowsPrec(w *haskell.Writer, d int) {
	if a.IsByron() {
		haskell.Con(
			"AddrBootstrap",
			haskell.Unimplemented("BootstrapAddress "+a.String()),
		).ShowsPrec(w, d)
		return
	}
	haskell.Con("Addr", a.Network(), a.payment, a.stake).ShowsPrec(w, d)
}
