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
	"bytes"
	"errors"
	"fmt"
	"math"
	"reflect"
	"sync"

	_cbor "github.com/fxamacker/cbor/v2"
	"github.com/jinzhu/copier"
)

// MaxNestedLevels bounds how deeply nested a single CBOR document may be.
// Every nested decode operates on a sub-slice of an already checked document,
// so this also bounds recursion in the decoders built on this package.
const MaxNestedLevels = 256

var (
	ErrDepthExceeded = errors.New("maximum CBOR nesting depth exceeded")
	ErrEmptyList     = errors.New("cannot return first item from empty list")
	ErrNotArray      = errors.New("CBOR data is not an array")
	ErrNotMap        = errors.New("CBOR data is not a map")
	ErrIndefinite    = errors.New("indefinite length CBOR items are not supported")
)

var (
	cachedDecMode     _cbor.DecMode
	cachedDecModeErr  error
	cachedDecModeOnce sync.Once
)

// getDecMode returns a cached DecMode, initializing it on first use.
// Returns the cached error if initialization failed.
func getDecMode() (_cbor.DecMode, error) {
	cachedDecModeOnce.Do(func() {
		decOptions := _cbor.DecOptions{
			ExtraReturnErrors: _cbor.ExtraDecErrorUnknownField,
			MaxNestedLevels:   MaxNestedLevels,
		}
		cachedDecMode, cachedDecModeErr = decOptions.DecModeWithTags(customTagSet)
	})
	return cachedDecMode, cachedDecModeErr
}

// Decode decodes the first CBOR item in dataBytes into dest and returns the
// number of bytes read
func Decode(dataBytes []byte, dest any) (int, error) {
	data := bytes.NewReader(dataBytes)
	decMode, err := getDecMode()
	if err != nil {
		return 0, err
	}
	if decMode == nil {
		return 0, errors.New("CBOR decoder mode not initialized")
	}
	dec := decMode.NewDecoder(data)
	err = dec.Decode(dest)
	return dec.NumBytesRead(), wrapDecodeError(err)
}

func wrapDecodeError(err error) error {
	if err == nil {
		return nil
	}
	var nestedErr *_cbor.MaxNestedLevelError
	if errors.As(err, &nestedErr) {
		return fmt.Errorf("%w: %w", ErrDepthExceeded, err)
	}
	return err
}

// MajorType returns the major type of the next CBOR item without consuming it
func MajorType(cborData []byte) (uint8, error) {
	if len(cborData) == 0 {
		return 0, errors.New("unexpected end of CBOR data")
	}
	return cborData[0] & CborTypeMask, nil
}

// DecodeIdFromList extracts the first item from a CBOR list. This will return
// the first item from the provided list if it's an unsigned integer that fits
// in 16 bits and an error otherwise
func DecodeIdFromList(cborData []byte) (int, error) {
	// If the list length is <= the max simple uint and the first list value
	// is <= the max simple uint, then we can extract the value straight from
	// the byte slice
	listLen, err := ListLength(cborData)
	if err != nil {
		return 0, err
	}
	if listLen == 0 {
		return 0, ErrEmptyList
	}
	if listLen <= int(CborMaxUintSimple) && len(cborData) > 1 {
		if cborData[1] <= CborMaxUintSimple {
			return int(cborData[1]), nil
		}
	}
	// If we couldn't use the shortcut above, actually decode the list
	var tmp []RawMessage
	if _, err := Decode(cborData, &tmp); err != nil {
		return 0, err
	}
	if len(tmp) == 0 {
		return 0, ErrEmptyList
	}
	var id uint64
	if _, err := Decode(tmp[0], &id); err != nil {
		return 0, fmt.Errorf("first list item was not numeric: %w", err)
	}
	if id > math.MaxUint16 {
		return 0, fmt.Errorf("decoded list ID too large: %d", id)
	}
	return int(id), nil
}

// ListLength determines the length of a CBOR list
func ListLength(cborData []byte) (int, error) {
	count, _, indefinite := ArrayInfo(cborData)
	if count < 0 {
		return 0, ErrNotArray
	}
	if !indefinite {
		return count, nil
	}
	// Indefinite length lists need to be decoded to be counted
	var tmp []RawMessage
	if _, err := Decode(cborData, &tmp); err != nil {
		return 0, err
	}
	return len(tmp), nil
}

// DecodeList splits a CBOR array into the raw bytes of its items
func DecodeList(cborData []byte) ([]RawMessage, error) {
	if count, _, _ := ArrayInfo(cborData); count < 0 {
		return nil, ErrNotArray
	}
	var ret []RawMessage
	if _, err := Decode(cborData, &ret); err != nil {
		return nil, err
	}
	return ret, nil
}

// MapPair is a single key/value entry of a CBOR map, as raw CBOR
type MapPair struct {
	Key   RawMessage
	Value RawMessage
}

// DecodeMapPairs splits a definite-length CBOR map into its entries, keeping
// the order in which they appear on the wire
func DecodeMapPairs(cborData []byte) ([]MapPair, error) {
	count, headerSize, indefinite := MapInfo(cborData)
	if count < 0 {
		return nil, ErrNotMap
	}
	if indefinite {
		return nil, ErrIndefinite
	}
	decMode, err := getDecMode()
	if err != nil {
		return nil, err
	}
	dec := decMode.NewDecoder(bytes.NewReader(cborData[headerSize:]))
	ret := make([]MapPair, 0, min(count, len(cborData)))
	for i := range count {
		var pair MapPair
		if err := dec.Decode(&pair.Key); err != nil {
			return nil, fmt.Errorf("decode map key %d: %w", i, wrapDecodeError(err))
		}
		if err := dec.Decode(&pair.Value); err != nil {
			return nil, fmt.Errorf("decode map value %d: %w", i, wrapDecodeError(err))
		}
		ret = append(ret, pair)
	}
	return ret, nil
}

var (
	decodeGenericTypeCache      = map[reflect.Type]reflect.Type{}
	decodeGenericTypeCacheMutex sync.RWMutex
)

// DecodeGeneric decodes the specified CBOR into the destination object without using the
// destination object's UnmarshalCBOR() function
func DecodeGeneric(cborData []byte, dest any) error {
	// Get destination type
	valueDest := reflect.ValueOf(dest)
	if valueDest.Kind() != reflect.Pointer ||
		valueDest.Elem().Kind() != reflect.Struct {
		return errors.New("destination must be a pointer to a struct")
	}
	typeDest := valueDest.Elem().Type()
	// Check type cache
	decodeGenericTypeCacheMutex.RLock()
	tmpTypeDest, ok := decodeGenericTypeCache[typeDest]
	decodeGenericTypeCacheMutex.RUnlock()
	if !ok {
		// Create a duplicate(-ish) struct from the destination
		// We do this so that we can bypass any custom UnmarshalCBOR() function on the
		// destination object
		destTypeFields := []reflect.StructField{}
		for i := range typeDest.NumField() {
			tmpField := typeDest.Field(i)
			if tmpField.IsExported() && tmpField.Name != "DecodeStoreCbor" {
				destTypeFields = append(destTypeFields, tmpField)
			}
		}
		tmpTypeDest = reflect.StructOf(destTypeFields)
		// Populate cache
		decodeGenericTypeCacheMutex.Lock()
		decodeGenericTypeCache[typeDest] = tmpTypeDest
		decodeGenericTypeCacheMutex.Unlock()
	}
	// Create temporary object with the type created above
	tmpDest := reflect.New(tmpTypeDest)
	// Decode CBOR into temporary object
	if _, err := Decode(cborData, tmpDest.Interface()); err != nil {
		return err
	}
	// Copy values from temporary object into destination object
	if err := copier.Copy(dest, tmpDest.Interface()); err != nil {
		return err
	}
	return nil
}

// ArrayInfo extracts array item count and header size from CBOR array data.
// Returns (count, headerSize, isIndefinite). Count is -1 for invalid headers.
func ArrayInfo(data []byte) (int, uint32, bool) {
	return headerInfo(data, CborTypeArray)
}

// MapInfo extracts map item count and header size from CBOR map data.
// Returns (count, headerSize, isIndefinite). Count is -1 for invalid headers.
func MapInfo(data []byte) (int, uint32, bool) {
	return headerInfo(data, CborTypeMap)
}

func headerInfo(data []byte, majorType uint8) (int, uint32, bool) {
	if len(data) == 0 {
		return -1, 0, false
	}
	firstByte := data[0]
	if firstByte&CborTypeMask != majorType {
		return -1, 0, false
	}
	additional := firstByte & 0x1f
	switch {
	case additional <= 23:
		return int(additional), 1, false
	case additional == 24 && len(data) >= 2:
		return int(data[1]), 2, false
	case additional == 25 && len(data) >= 3:
		return int(uint16(data[1])<<8 | uint16(data[2])), 3, false
	case additional == 26 && len(data) >= 5:
		// 4-byte length - check for overflow before converting to int
		len32 := uint32(data[1])<<24 | uint32(data[2])<<16 | uint32(data[3])<<8 | uint32(data[4])
		if len32 > uint32(math.MaxInt32) {
			return -1, 0, false
		}
		return int(len32), 5, false
	case additional == 27 && len(data) >= 9:
		len64 := uint64(data[1])<<56 | uint64(data[2])<<48 |
			uint64(data[3])<<40 | uint64(data[4])<<32 |
			uint64(data[5])<<24 | uint64(data[6])<<16 |
			uint64(data[7])<<8 | uint64(data[8])
		if len64 > uint64(math.MaxInt32) {
			return -1, 0, false
		}
		return int(len64), 9, false
	case additional == 31:
		return 0, 1, true // Indefinite length
	default:
		return -1, 0, false
	}
}
