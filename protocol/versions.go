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

package protocol

import (
	"slices"
)

// The NtC protocol versions have the 15th bit set in the handshake
const ProtocolVersionNtCOffset = 0x8000

// Node-to-client versions that can submit Conway transactions
var protocolVersionsNtC = []uint16{
	16 + ProtocolVersionNtCOffset,
	17 + ProtocolVersionNtCOffset,
	18 + ProtocolVersionNtCOffset,
	19 + ProtocolVersionNtCOffset,
	20 + ProtocolVersionNtCOffset,
}

// ProtocolVersionMap maps each proposed version to its version data
type ProtocolVersionMap map[uint16]any

// GetProtocolVersionMap returns the versions to propose in a node-to-client
// handshake
func GetProtocolVersionMap(networkMagic uint32) ProtocolVersionMap {
	ret := ProtocolVersionMap{}
	for _, version := range protocolVersionsNtC {
		ret[version] = VersionDataNtC15andUp{
			CborNetworkMagic: networkMagic,
			CborQuery:        false,
		}
	}
	return ret
}

// GetProtocolVersionsNtC returns a list of supported NtC protocol versions
func GetProtocolVersionsNtC() []uint16 {
	return slices.Clone(protocolVersionsNtC)
}

// IsProtocolVersionNtC reports whether version is one of the supported
// node-to-client versions
func IsProtocolVersionNtC(version uint16) bool {
	return slices.Contains(protocolVersionsNtC, version)
}
