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
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/blinklabs-io/txreject/cbor"
)

// Maximum number of payload bytes included in an error message
const decodeErrorMaxHexBytes = 64

var (
	// ErrUnknownDiscriminant is returned when a variant tag is not part of the
	// published table for its enum
	ErrUnknownDiscriminant = errors.New("unknown discriminant")
	// ErrMalformed covers wrong array lengths, wrong field types and truncated input
	ErrMalformed = errors.New("malformed CBOR")
	// ErrUnexpectedTag is returned when a tag 24 or tag 258 wrapper is missing or wrong
	ErrUnexpectedTag = cbor.ErrUnexpectedTag
	// ErrDepthExceeded is returned when the payload nests deeper than cbor.MaxNestedLevels
	ErrDepthExceeded = cbor.ErrDepthExceeded
)

// DecodeError identifies where decoding a rejection payload failed
type DecodeError struct {
	// Context is the name of the type being decoded when the failure happened
	Context string
	// Path lists the enclosing types, outermost first
	Path []string
	// Discriminant is the offending variant tag, or -1 when not applicable
	Discriminant int
	// Cbor is a copy of the bytes of the item that failed to decode
	Cbor []byte
	Err  error
}

// NewDecodeError wraps err with the decoding context. When err already
// carries a DecodeError, the innermost context is kept and context is
// added to its path
func NewDecodeError(context string, cborData []byte, err error) error {
	if err == nil {
		return nil
	}
	var decErr *DecodeError
	if errors.As(err, &decErr) {
		decErr.Path = append([]string{context}, decErr.Path...)
		return err
	}
	if !errors.Is(err, ErrUnknownDiscriminant) &&
		!errors.Is(err, ErrUnexpectedTag) &&
		!errors.Is(err, ErrDepthExceeded) &&
		!errors.Is(err, ErrMalformed) {
		err = fmt.Errorf("%w: %w", ErrMalformed, err)
	}
	return &DecodeError{
		Context:      context,
		Discriminant: -1,
		Cbor:         copyBytes(cborData),
		Err:          err,
	}
}

// NewUnknownDiscriminantError reports a variant tag outside the published table
func NewUnknownDiscriminantError(
	context string,
	discriminant int,
	cborData []byte,
) error {
	return &DecodeError{
		Context:      context,
		Discriminant: discriminant,
		Cbor:         copyBytes(cborData),
		Err:          ErrUnknownDiscriminant,
	}
}

func (e *DecodeError) Error() string {
	var sb strings.Builder
	sb.WriteString("failed to decode ")
	if len(e.Path) > 0 {
		sb.WriteString(strings.Join(e.Path, "/"))
		sb.WriteString("/")
	}
	sb.WriteString(e.Context)
	if e.Discriminant >= 0 {
		fmt.Fprintf(&sb, " (discriminant %d)", e.Discriminant)
	}
	sb.WriteString(": ")
	sb.WriteString(e.Err.Error())
	if len(e.Cbor) > 0 {
		sb.WriteString(" [cbor: ")
		if len(e.Cbor) > decodeErrorMaxHexBytes {
			sb.WriteString(hex.EncodeToString(e.Cbor[:decodeErrorMaxHexBytes]))
			sb.WriteString("...")
		} else {
			sb.WriteString(hex.EncodeToString(e.Cbor))
		}
		sb.WriteString("]")
	}
	return sb.String()
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

func copyBytes(data []byte) []byte {
	if data == nil {
		return nil
	}
	ret := make([]byte, len(data))
	copy(ret, data)
	return ret
}
