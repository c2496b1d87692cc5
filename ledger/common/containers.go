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
)

func decodeItems[T any](cborData []byte) ([]T, error) {
	rawItems, err := cbor.DecodeList(cborData)
	if err != nil {
		return nil, err
	}
	ret := make([]T, len(rawItems))
	for i, rawItem := range rawItems {
		if _, err := cbor.Decode(rawItem, &ret[i]); err != nil {
			return nil, err
		}
	}
	return ret, nil
}

// List is a plain CBOR array, rendered as a list
type List[T haskell.Shower] []T

func (l *List[T]) UnmarshalCBOR(cborData []byte) error {
	items, err := decodeItems[T](cborData)
	if err != nil {
		return err
	}
	*l = items
	return nil
}

func (l List[T]) ShowsPrec(w *haskell.Writer, d int) {
	haskell.List(haskell.Showers(l)...).ShowsPrec(w, d)
}

// Set is a tag 258 array. Items keep their wire order
type Set[T haskell.Shower] []T

func (s *Set[T]) UnmarshalCBOR(cborData []byte) error {
	content, err := cbor.DecodeTagged(cborData, cbor.CborTagSet)
	if err != nil {
		return err
	}
	items, err := decodeItems[T](content)
	if err != nil {
		return err
	}
	*s = items
	return nil
}

func (s Set[T]) ShowsPrec(w *haskell.Writer, d int) {
	haskell.FromList(haskell.Showers(s)...).ShowsPrec(w, d)
}

var errEmptyNonEmpty = errors.New("non-empty list has no items")

// NonEmpty is an array with at least one item. The tag 258 set marker is
// accepted but not required
type NonEmpty[T haskell.Shower] []T

func (n *NonEmpty[T]) UnmarshalCBOR(cborData []byte) error {
	if typ, err := cbor.MajorType(cborData); err == nil && typ == cbor.CborTypeTag {
		content, err := cbor.DecodeTagged(cborData, cbor.CborTagSet)
		if err != nil {
			return err
		}
		cborData = content
	}
	items, err := decodeItems[T](cborData)
	if err != nil {
		return err
	}
	if len(items) == 0 {
		return fmt.Errorf("%w: %w", ErrMalformed, errEmptyNonEmpty)
	}
	*n = items
	return nil
}

func (n NonEmpty[T]) ShowsPrec(w *haskell.Writer, d int) {
	if len(n) == 0 {
		haskell.Unimplemented("empty NonEmpty").ShowsPrec(w, d)
		return
	}
	items := haskell.Showers(n)
	haskell.NonEmpty(items[0], items[1:]...).ShowsPrec(w, d)
}

// StrictMaybe is an optional value encoded as an array of zero or one items
type StrictMaybe[T haskell.Shower] struct {
	Value   T
	Present bool
}

// SJust returns a present StrictMaybe
func SJust[T haskell.Shower](v T) StrictMaybe[T] {
	return StrictMaybe[T]{Value: v, Present: true}
}

func (m *StrictMaybe[T]) UnmarshalCBOR(cborData []byte) error {
	items, err := decodeItems[T](cborData)
	if err != nil {
		return err
	}
	switch len(items) {
	case 0:
		*m = StrictMaybe[T]{}
	case 1:
		*m = SJust(items[0])
	default:
		return fmt.Errorf(
			"%w: optional value has %d items",
			ErrMalformed,
			len(items),
		)
	}
	return nil
}

func (m StrictMaybe[T]) ShowsPrec(w *haskell.Writer, d int) {
	if !m.Present {
		haskell.Con("SNothing").ShowsPrec(w, d)
		return
	}
	haskell.Con("SJust", m.Value).ShowsPrec(w, d)
}

// Maybe renders a nullable field, where CBOR null decodes to a nil pointer,
// with the same syntax as StrictMaybe
func Maybe[T haskell.Shower](v *T) haskell.Shower {
	if v == nil {
		return haskell.Con("SNothing")
	}
	return haskell.Con("SJust", *v)
}

// MapEntry is a single key/value pair of a Map
type MapEntry[K haskell.Shower, V haskell.Shower] struct {
	Key   K
	Value V
}

func (e MapEntry[K, V]) ShowsPrec(w *haskell.Writer, d int) {
	haskell.Tuple(e.Key, e.Value).ShowsPrec(w, d)
}

// Map is a CBOR map. Entries keep their wire order, and keys are not
// required to be comparable
type Map[K haskell.Shower, V haskell.Shower] []MapEntry[K, V]

func (m *Map[K, V]) UnmarshalCBOR(cborData []byte) error {
	pairs, err := cbor.DecodeMapPairs(cborData)
	if err != nil {
		return err
	}
	ret := make(Map[K, V], len(pairs))
	for i, pair := range pairs {
		if _, err := cbor.Decode(pair.Key, &ret[i].Key); err != nil {
			return err
		}
		if _, err := cbor.Decode(pair.Value, &ret[i].Value); err != nil {
			return err
		}
	}
	*m = ret
	return nil
}

func (m Map[K, V]) ShowsPrec(w *haskell.Writer, d int) {
	haskell.FromList(haskell.Showers(m)...).ShowsPrec(w, d)
}

// Pair is a two item array, rendered as a tuple
type Pair[A haskell.Shower, B haskell.Shower] struct {
	cbor.StructAsArray
	First  A
	Second B
}

func (p Pair[A, B]) ShowsPrec(w *haskell.Writer, d int) {
	haskell.Tuple(p.First, p.Second).ShowsPrec(w, d)
}

// EmbeddedDocument is a tag 24 byte string holding a complete CBOR document.
// The document is decoded on its own, so its nesting depth is checked
// independently of the enclosing payload
type EmbeddedDocument[T haskell.Shower] struct {
	Value T
}

func (e *EmbeddedDocument[T]) UnmarshalCBOR(cborData []byte) error {
	content, err := cbor.DecodeTagged(cborData, cbor.CborTagCbor)
	if err != nil {
		return err
	}
	var inner []byte
	if _, err := cbor.Decode(content, &inner); err != nil {
		return err
	}
	n, err := cbor.Decode(inner, &e.Value)
	if err != nil {
		return err
	}
	if n != len(inner) {
		return fmt.Errorf(
			"%w: %d trailing bytes after embedded document",
			ErrMalformed,
			len(inner)-n,
		)
	}
	return nil
}

func (e EmbeddedDocument[T]) ShowsPrec(w *haskell.Writer, d int) {
	e.Value.ShowsPrec(w, d)
}
