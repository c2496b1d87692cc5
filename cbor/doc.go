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

// Package cbor provides the CBOR decoding helpers used by the ledger error
// decoders.
//
// It wraps github.com/fxamacker/cbor/v2 with a shared DecMode that bounds
// nesting depth, and adds the handful of operations the tagged-union decoders
// need on top of it:
//   - StructAsArray: embed to decode a positional CBOR array into a struct
//   - DecodeIdFromList: read the leading discriminant of an array
//   - MajorType: peek at the type of the next item without consuming it
//   - DecodeTagged: verify a tag number (24, 30, 258) and return its content
//   - DecodeMapPairs: split a map into entries in wire order
//   - DecodeStoreCbor: embed to keep the original bytes of a decoded value
//
// Errors from nesting beyond MaxNestedLevels are reported as ErrDepthExceeded.
package cbor
