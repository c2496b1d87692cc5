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

package haskell

import (
	"strconv"
	"strings"
)

// Escapes for C0 control codes and DEL that have a name
var controlNames = map[rune]string{
	0x00: "NUL",
	0x01: "SOH",
	0x02: "STX",
	0x03: "ETX",
	0x04: "EOT",
	0x05: "ENQ",
	0x06: "ACK",
	0x0e: "SO",
	0x0f: "SI",
	0x10: "DLE",
	0x11: "DC1",
	0x12: "DC2",
	0x13: "DC3",
	0x14: "DC4",
	0x15: "NAK",
	0x16: "SYN",
	0x17: "ETB",
	0x18: "CAN",
	0x19: "EM",
	0x1a: "SUB",
	0x1b: "ESC",
	0x1c: "FS",
	0x1d: "GS",
	0x1e: "RS",
	0x1f: "US",
	0x7f: "DEL",
}

// ShowString renders a string literal the way Show does for String and Text
func ShowString(s string) string {
	return showRunes([]rune(s))
}

// ShowBytes renders a ByteString literal. Each byte is treated as the
// character with the same code point
func ShowBytes(b []byte) string {
	runes := make([]rune, len(b))
	for i, c := range b {
		runes[i] = rune(c)
	}
	return showRunes(runes)
}

func showRunes(runes []rune) string {
	var sb strings.Builder
	sb.Grow(len(runes) + 2)
	sb.WriteByte('"')
	for i, c := range runes {
		var next rune = -1
		if i+1 < len(runes) {
			next = runes[i+1]
		}
		switch {
		case c == '\\':
			sb.WriteString(`\\`)
		case c == '"':
			sb.WriteString(`\"`)
		case c == '\a':
			sb.WriteString(`\a`)
		case c == '\b':
			sb.WriteString(`\b`)
		case c == '\f':
			sb.WriteString(`\f`)
		case c == '\n':
			sb.WriteString(`\n`)
		case c == '\r':
			sb.WriteString(`\r`)
		case c == '\t':
			sb.WriteString(`\t`)
		case c == '\v':
			sb.WriteString(`\v`)
		case c >= ' ' && c <= '~':
			sb.WriteRune(c)
		default:
			if name, ok := controlNames[c]; ok {
				sb.WriteByte('\\')
				sb.WriteString(name)
				// "\SOH" would be read back as a single escape
				if c == 0x0e && next == 'H' {
					sb.WriteString(`\&`)
				}
			} else if c <= 0x7f {
				sb.WriteByte('\\')
				sb.WriteString(strconv.FormatInt(int64(c), 8))
				if next >= '0' && next <= '7' {
					sb.WriteString(`\&`)
				}
			} else {
				sb.WriteByte('\\')
				sb.WriteString(strconv.FormatInt(int64(c), 10))
				if next >= '0' && next <= '9' {
					sb.WriteString(`\&`)
				}
			}
		}
	}
	sb.WriteByte('"')
	return sb.String()
}
