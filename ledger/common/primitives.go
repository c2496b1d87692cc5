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
	"math/big"

	"github.com/blinklabs-io/txreject/cbor"
	"github.com/blinklabs-io/txreject/haskell"
)

// Coin is an amount of lovelace
type Coin uint64

func (c Coin) ShowsPrec(w *haskell.Writer, d int) {
	haskell.Con("Coin", haskell.Uint(c)).ShowsPrec(w, d)
}

// DeltaCoin is a signed difference of lovelace
type DeltaCoin int64

func (c DeltaCoin) ShowsPrec(w *haskell.Writer, d int) {
	haskell.Con("DeltaCoin", haskell.Int(c)).ShowsPrec(w, d)
}

type EpochNo uint64

func (e EpochNo) ShowsPrec(w *haskell.Writer, d int) {
	haskell.Con("EpochNo", haskell.Uint(e)).ShowsPrec(w, d)
}

type SlotNo uint64

func (s SlotNo) ShowsPrec(w *haskell.Writer, d int) {
	haskell.Con("SlotNo", haskell.Uint(s)).ShowsPrec(w, d)
}

// TxIx is the index of an output within a transaction
type TxIx uint16

func (i TxIx) ShowsPrec(w *haskell.Writer, d int) {
	haskell.Record("TxIx", haskell.F("unTxIx", haskell.Uint(i))).ShowsPrec(w, d)
}

// CertIx is the index of a certificate within a transaction
type CertIx uint16

func (i CertIx) ShowsPrec(w *haskell.Writer, d int) {
	haskell.Record("CertIx", haskell.F("unCertIx", haskell.Uint(i))).ShowsPrec(w, d)
}

const (
	NetworkTestnet Network = 0
	NetworkMainnet Network = 1
)

type Network uint8

func (n *Network) UnmarshalCBOR(data []byte) error {
	var tmp uint64
	if _, err := cbor.Decode(data, &tmp); err != nil {
		return err
	}
	switch Network(tmp) {
	case NetworkTestnet, NetworkMainnet:
		*n = Network(tmp)
		return nil
	}
	return NewUnknownDiscriminantError("Network", int(min(tmp, 1<<16)), data)
}

func (n Network) String() string {
	if n == NetworkMainnet {
		return "Mainnet"
	}
	return "Testnet"
}

func (n Network) ShowsPrec(w *haskell.Writer, _ int) {
	w.WriteString(n.String())
}

// Mismatch pairs the value found in a transaction with the value the ledger
// expected
type Mismatch[T haskell.Shower] struct {
	Supplied T
	Expected T
}

func (m Mismatch[T]) ShowsPrec(w *haskell.Writer, d int) {
	haskell.Record(
		"Mismatch",
		haskell.F("mismatchSupplied", m.Supplied),
		haskell.F("mismatchExpected", m.Expected),
	).ShowsPrec(w, d)
}

// SuppliedExpected is the usual wire order of a mismatch
type SuppliedExpected[T haskell.Shower] struct {
	cbor.StructAsArray
	Supplied T
	Expected T
}

func (s SuppliedExpected[T]) Mismatch() Mismatch[T] {
	return Mismatch[T]{Supplied: s.Supplied, Expected: s.Expected}
}

type ProtVer struct {
	cbor.StructAsArray
	Major uint64
	Minor uint64
}

func (p ProtVer) ShowsPrec(w *haskell.Writer, d int) {
	haskell.Record(
		"ProtVer",
		haskell.F("pvMajor", haskell.Con("Version", haskell.Uint(p.Major))),
		haskell.F("pvMinor", haskell.Uint(p.Minor)),
	).ShowsPrec(w, d)
}

type ExUnits struct {
	cbor.StructAsArray
	Memory uint64
	Steps  uint64
}

func (e ExUnits) ShowsPrec(w *haskell.Writer, d int) {
	haskell.Record(
		"ExUnits",
		haskell.F("exUnitsMem", haskell.Uint(e.Memory)),
		haskell.F("exUnitsSteps", haskell.Uint(e.Steps)),
	).ShowsPrec(w, d)
}

// UnitInterval is a tag 30 rational between 0 and 1
type UnitInterval struct {
	cbor.Rat
}

func (u *UnitInterval) UnmarshalCBOR(data []byte) error {
	content, err := cbor.DecodeTagged(data, cbor.CborTagRational)
	if err != nil {
		return err
	}
	if err := u.Rat.UnmarshalCBOR(content); err != nil {
		return err
	}
	if u.Sign() < 0 || u.Cmp(big.NewRat(1, 1)) > 0 {
		return fmt.Errorf("%w: unit interval out of range: %s", ErrMalformed, u.String())
	}
	return nil
}

func (u UnitInterval) ShowsPrec(w *haskell.Writer, d int) {
	haskell.NewRatio(u.Rat.Rat).ShowsPrec(w, d)
}

type Url string

func (u Url) ShowsPrec(w *haskell.Writer, d int) {
	haskell.Record("Url", haskell.F("urlToText", haskell.String(u))).ShowsPrec(w, d)
}

type Anchor struct {
	cbor.StructAsArray
	Url      Url
	DataHash SafeHash
}

func (a Anchor) ShowsPrec(w *haskell.Writer, d int) {
	haskell.Record(
		"Anchor",
		haskell.F("anchorUrl", a.Url),
		haskell.F("anchorDataHash", a.DataHash),
	).ShowsPrec(w, d)
}

// ValidityInterval is the slot range a transaction is valid in
type ValidityInterval struct {
	cbor.StructAsArray
	InvalidBefore    StrictMaybe[SlotNo]
	InvalidHereafter StrictMaybe[SlotNo]
}

func (v ValidityInterval) ShowsPrec(w *haskell.Writer, d int) {
	haskell.Record(
		"ValidityInterval",
		haskell.F("invalidBefore", v.InvalidBefore),
		haskell.F("invalidHereafter", v.InvalidHereafter),
	).ShowsPrec(w, d)
}
