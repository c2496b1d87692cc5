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
	"math/big"
	"strconv"
)

// Int renders a signed integer, parenthesizing negative values above
// precedence 6
type Int int64

func (i Int) ShowsPrec(w *Writer, d int) {
	w.Paren(d > 6 && i < 0, func() {
		w.WriteString(strconv.FormatInt(int64(i), 10))
	})
}

// Uint renders an unsigned integer
type Uint uint64

func (u Uint) ShowsPrec(w *Writer, _ int) {
	w.WriteString(strconv.FormatUint(uint64(u), 10))
}

// Integer renders an arbitrary precision integer
type Integer struct {
	*big.Int
}

func NewInteger(v *big.Int) Integer {
	return Integer{Int: v}
}

func (i Integer) ShowsPrec(w *Writer, d int) {
	if i.Int == nil {
		w.WriteString("0")
		return
	}
	w.Paren(d > 6 && i.Sign() < 0, func() {
		w.WriteString(i.String())
	})
}

// Ratio renders a rational number as n % d
type Ratio struct {
	*big.Rat
}

func NewRatio(v *big.Rat) Ratio {
	return Ratio{Rat: v}
}

func (r Ratio) ShowsPrec(w *Writer, d int) {
	if r.Rat == nil {
		Unimplemented("nil ratio").ShowsPrec(w, d)
		return
	}
	w.Paren(d > 7, func() {
		Integer{r.Num()}.ShowsPrec(w, 8)
		w.WriteString(" % ")
		Integer{r.Denom()}.ShowsPrec(w, 8)
	})
}

// Bool renders as True or False
type Bool bool

func (b Bool) ShowsPrec(w *Writer, _ int) {
	if b {
		w.WriteString("True")
	} else {
		w.WriteString("False")
	}
}

// String renders a Text or String value as a quoted, escaped literal
type String string

func (s String) ShowsPrec(w *Writer, _ int) {
	w.WriteString(ShowString(string(s)))
}

// Bytes renders a ByteString value, each byte shown as a character
type Bytes []byte

func (b Bytes) ShowsPrec(w *Writer, _ int) {
	w.WriteString(ShowBytes([]byte(b)))
}

// Raw writes its contents verbatim. It is atomic and never parenthesized
type Raw string

func (r Raw) ShowsPrec(w *Writer, _ int) {
	w.WriteString(string(r))
}
