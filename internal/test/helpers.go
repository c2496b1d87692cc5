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

package test

import (
	"encoding/hex"
	"fmt"
	"os"
	"strings"

	"github.com/blinklabs-io/txreject/cbor"
)

// DecodeHexString is a helper function for tests that decodes hex strings. It doesn't return
// an error value, which makes it usable inline.
func DecodeHexString(hexData string) []byte {
	// Strip off any leading/trailing whitespace in hex string
	hexData = strings.TrimSpace(hexData)
	decoded, err := hex.DecodeString(hexData)
	if err != nil {
		panic(fmt.Sprintf("error decoding hex: %s", err))
	}
	return decoded
}

// EncodeCbor encodes a value built from Go slices, maps and cbor.Tag values.
// It panics on error, which makes it usable inline
func EncodeCbor(v any) []byte {
	data, err := cbor.Encode(v)
	if err != nil {
		panic(fmt.Sprintf("error encoding CBOR: %s", err))
	}
	return data
}

// Set wraps items in the tag 258 set marker
func Set(items ...any) cbor.Tag {
	if items == nil {
		items = []any{}
	}
	return cbor.Tag{Number: cbor.CborTagSet, Content: items}
}

// NestedArrays returns depth nested single item arrays around inner
func NestedArrays(depth int, inner []byte) []byte {
	ret := make([]byte, 0, depth+len(inner))
	for range depth {
		ret = append(ret, 0x81)
	}
	return append(ret, inner...)
}

// Bytes returns a byte string of the given size filled with b
func Bytes(size int, b byte) []byte {
	ret := make([]byte, size)
	for i := range ret {
		ret[i] = b
	}
	return ret
}

// HexLines reads a file holding one hex payload per line. Blank lines are
// skipped. It panics on error
func HexLines(path string) [][]byte {
	data, err := os.ReadFile(path)
	if err != nil {
		panic(fmt.Sprintf("error reading %s: %s", path, err))
	}
	var ret [][]byte
	for _, line := range strings.Split(string(data), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			ret = append(ret, DecodeHexString(line))
		}
	}
	return ret
}
