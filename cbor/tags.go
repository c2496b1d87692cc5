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

package cbor

import (
	"errors"
	"fmt"
	"math/big"
	"reflect"

	_cbor "github.com/fxamacker/cbor/v2"
)

const (
	// Useful tag numbers
	CborTagCbor     = 24
	CborTagRational = 30
	CborTagSet      = 258
)

// ErrUnexpectedTag is returned when a tagged value carries the wrong tag number
var ErrUnexpectedTag = errors.New("unexpected CBOR tag")

var customTagSet _cbor.TagSet

func init() {
	// Build custom tagset
	customTagSet = _cbor.NewTagSet()
	tagOpts := _cbor.TagOptions{EncTag: _cbor.EncTagRequired, DecTag: _cbor.DecTagRequired}
	// Wrapped CBOR
	if err := customTagSet.Add(
		tagOpts,
		reflect.TypeOf(WrappedCbor{}),
		CborTagCbor,
	); err != nil {
		panic(err)
	}
	// Rational numbers
	if err := customTagSet.Add(
		tagOpts,
		reflect.TypeOf(Rat{}),
		CborTagRational,
	); err != nil {
		panic(err)
	}
}

// WrappedCbor corresponds to CBOR tag 24 and is used to encode nested CBOR data
type WrappedCbor []byte

func (w WrappedCbor) Bytes() []byte {
	return w[:]
}

// Rat corresponds to CBOR tag 30 and is used to represent a rational number
type Rat struct {
	*big.Rat
}

func (r *Rat) UnmarshalCBOR(cborData []byte) error {
	tmpRat := []*big.Int{}
	if _, err := Decode(cborData, &tmpRat); err != nil {
		return err
	}
	if len(tmpRat) != 2 {
		return fmt.Errorf("rational must have 2 elements, found %d", len(tmpRat))
	}
	if tmpRat[1].Sign() == 0 {
		return errors.New("rational has zero denominator")
	}
	r.Rat = new(big.Rat).SetFrac(tmpRat[0], tmpRat[1])
	return nil
}

// DecodeTagged checks that the next CBOR item carries the expected tag number
// and returns the tag content
func DecodeTagged(cborData []byte, tagNumber uint64) (RawMessage, error) {
	var tmpTag RawTag
	if _, err := Decode(cborData, &tmpTag); err != nil {
		if typ, _ := MajorType(cborData); typ != CborTypeTag {
			return nil, fmt.Errorf(
				"%w: expected tag %d, found major type 0x%02x",
				ErrUnexpectedTag,
				tagNumber,
				typ,
			)
		}
		return nil, err
	}
	if tmpTag.Number != tagNumber {
		return nil, fmt.Errorf(
			"%w: expected tag %d, found %d",
			ErrUnexpectedTag,
			tagNumber,
			tmpTag.Number,
		)
	}
	return tmpTag.Content, nil
}
