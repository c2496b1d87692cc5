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

// Package haskell renders values the way GHC's derived Show instances do.
//
// Values implement Shower, which writes the value at a given operator
// precedence. The precedence decides whether the output is wrapped in
// parentheses, exactly like showsPrec:
//
//	Con("Coin", Uint(5))                 -> Coin 5
//	Con("SJust", Con("Coin", Uint(5)))   -> SJust (Coin 5)
//	Record("KeyHash", F("unKeyHash", String("ab")))
//	                                     -> KeyHash {unKeyHash = "ab"}
//
// Rendering never fails. Values without a known rendering use Unimplemented,
// which produces a clearly marked placeholder.
package haskell

import (
	"strings"
)

const (
	// PrecApp is the precedence of function (constructor) application
	PrecApp = 10
	// PrecArg is the precedence constructor arguments are shown at
	PrecArg = PrecApp + 1
)

// Shower is implemented by every value that can be rendered
type Shower interface {
	ShowsPrec(w *Writer, d int)
}

// ShowFunc adapts a function to the Shower interface
type ShowFunc func(w *Writer, d int)

func (f ShowFunc) ShowsPrec(w *Writer, d int) {
	f(w, d)
}

// Writer accumulates rendered output
type Writer struct {
	sb strings.Builder
}

func (w *Writer) WriteString(s string) {
	w.sb.WriteString(s)
}

func (w *Writer) String() string {
	return w.sb.String()
}

// Paren wraps the output of fn in parentheses when cond is true
func (w *Writer) Paren(cond bool, fn func()) {
	if cond {
		w.sb.WriteByte('(')
	}
	fn()
	if cond {
		w.sb.WriteByte(')')
	}
}

// Show renders a value at precedence 0
func Show(v Shower) string {
	return ShowPrec(v, 0)
}

// ShowPrec renders a value at the given precedence
func ShowPrec(v Shower, d int) string {
	var w Writer
	v.ShowsPrec(&w, d)
	return w.String()
}

// Showers converts a slice of values to a slice of Shower
func Showers[T Shower](items []T) []Shower {
	ret := make([]Shower, 0, len(items))
	for _, item := range items {
		ret = append(ret, item)
	}
	return ret
}

// Constructor is a constructor applied to positional arguments
type Constructor struct {
	Name string
	Args []Shower
}

// Con builds a constructor application
func Con(name string, args ...Shower) Constructor {
	return Constructor{Name: name, Args: args}
}

func (c Constructor) ShowsPrec(w *Writer, d int) {
	if len(c.Args) == 0 {
		w.WriteString(c.Name)
		return
	}
	w.Paren(d > PrecApp, func() {
		w.WriteString(c.Name)
		for _, arg := range c.Args {
			w.WriteString(" ")
			arg.ShowsPrec(w, PrecArg)
		}
	})
}

// Field is a labeled record field
type Field struct {
	Label string
	Value Shower
}

// F builds a record field
func F(label string, value Shower) Field {
	return Field{Label: label, Value: value}
}

// RecordValue is a constructor using record syntax
type RecordValue struct {
	Name   string
	Fields []Field
}

// Record builds a record constructor
func Record(name string, fields ...Field) RecordValue {
	return RecordValue{Name: name, Fields: fields}
}

func (r RecordValue) ShowsPrec(w *Writer, d int) {
	w.Paren(d >= PrecArg, func() {
		w.WriteString(r.Name)
		w.WriteString(" {")
		for i, field := range r.Fields {
			if i > 0 {
				w.WriteString(", ")
			}
			w.WriteString(field.Label)
			w.WriteString(" = ")
			field.Value.ShowsPrec(w, 0)
		}
		w.WriteString("}")
	})
}

// ListValue renders as [a,b,c]
type ListValue []Shower

// List builds a list
func List(items ...Shower) ListValue {
	return ListValue(items)
}

func (l ListValue) ShowsPrec(w *Writer, _ int) {
	w.WriteString("[")
	for i, item := range l {
		if i > 0 {
			w.WriteString(",")
		}
		item.ShowsPrec(w, 0)
	}
	w.WriteString("]")
}

// FromListValue renders sets and maps as fromList [a,b,c]
type FromListValue []Shower

// FromList builds the rendering used by Data.Set and Data.Map
func FromList(items ...Shower) FromListValue {
	return FromListValue(items)
}

func (f FromListValue) ShowsPrec(w *Writer, d int) {
	w.Paren(d > PrecApp, func() {
		w.WriteString("fromList ")
		ListValue(f).ShowsPrec(w, PrecArg)
	})
}

// NonEmptyValue renders a non-empty list as a :| [b,c]
type NonEmptyValue struct {
	Head Shower
	Tail []Shower
}

// NonEmpty builds a non-empty list from its head and tail
func NonEmpty(head Shower, tail ...Shower) NonEmptyValue {
	return NonEmptyValue{Head: head, Tail: tail}
}

func (n NonEmptyValue) ShowsPrec(w *Writer, d int) {
	w.Paren(d > 5, func() {
		n.Head.ShowsPrec(w, 6)
		w.WriteString(" :| ")
		ListValue(n.Tail).ShowsPrec(w, 6)
	})
}

// TupleValue renders as (a,b)
type TupleValue []Shower

// Tuple builds a tuple
func Tuple(items ...Shower) TupleValue {
	return TupleValue(items)
}

func (t TupleValue) ShowsPrec(w *Writer, _ int) {
	w.WriteString("(")
	for i, item := range t {
		if i > 0 {
			w.WriteString(",")
		}
		item.ShowsPrec(w, 0)
	}
	w.WriteString(")")
}

// Unimplemented marks a value whose rendering is not known. It renders as a
// placeholder instead of guessing
type Unimplemented string

func (u Unimplemented) ShowsPrec(w *Writer, _ int) {
	w.WriteString("<unimplemented: ")
	w.WriteString(string(u))
	w.WriteString(">")
}
