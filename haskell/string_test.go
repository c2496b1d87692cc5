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

package haskell_test

import (
	"testing"

	"github.com/blinklabs-io/txreject/haskell"
	"github.com/stretchr/testify/assert"
)

func TestShowString(t *testing.T) {
	testDefs := []struct {
		input    string
		expected string
	}{
		{input: "", expected: `""`},
		{input: "b", expected: `"b"`},
		{input: "hello world ~!", expected: `"hello world ~!"`},
		{input: `a"b\c`, expected: `"a\"b\\c"`},
		{input: "\a\b\f\n\r\t\v", expected: `"\a\b\f\n\r\t\v"`},
		{input: "\x00", expected: `"\NUL"`},
		{input: "\x01\x02", expected: `"\SOH\STX"`},
		{input: "\x1b[0m", expected: `"\ESC[0m"`},
		{input: "\x7f", expected: `"\DEL"`},
		{input: "\x0e", expected: `"\SO"`},
		{input: "\x0eH", expected: `"\SO\&H"`},
		{input: "\x0eh", expected: `"\SOh"`},
		{input: "\x00" + "1", expected: `"\NUL1"`},
		{input: "é", expected: `"\233"`},
		{input: "é1", expected: `"\233\&1"`},
		{input: "éa", expected: `"\233a"`},
		{input: "Ӓ5", expected: `"\1234\&5"`},
		{input: "\U0001F600", expected: `"\128512"`},
		{input: "\u00a0", expected: `"\160"`},
	}
	for _, testDef := range testDefs {
		assert.Equal(t, testDef.expected, haskell.ShowString(testDef.input), "input %q", testDef.input)
	}
}

func TestShowMempoolText(t *testing.T) {
	// Text taken from a real rejection payload: non-ASCII code points
	// interleaved with printable ASCII
	input := "\U000f0fef" + "a" + "\U0002cd64" + "\U00024d68" + "MZ"
	assert.Equal(
		t,
		`"\987119a\183652\150888MZ"`,
		haskell.ShowString(input),
	)
}

func TestShowBytes(t *testing.T) {
	testDefs := []struct {
		input    []byte
		expected string
	}{
		{input: []byte{}, expected: `""`},
		{input: []byte("abc"), expected: `"abc"`},
		{input: []byte{0xd8, 0x79, 0x9f}, expected: `"\216y\159"`},
		{input: []byte{0x80, '0'}, expected: `"\128\&0"`},
		{input: []byte{0x00, 0x0e, 'H'}, expected: `"\NUL\SO\&H"`},
	}
	for _, testDef := range testDefs {
		assert.Equal(t, testDef.expected, haskell.ShowBytes(testDef.input))
	}
}
