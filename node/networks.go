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

package node

import "github.com/blinklabs-io/txreject/ledger/common"

// Network definitions
var (
	NetworkMainnet = Network{
		Id:           common.NetworkMainnet,
		Name:         "mainnet",
		NetworkMagic: 764824073,
	}
	NetworkPreprod = Network{
		Id:           common.NetworkTestnet,
		Name:         "preprod",
		NetworkMagic: 1,
	}
	NetworkPreview = Network{
		Id:           common.NetworkTestnet,
		Name:         "preview",
		NetworkMagic: 2,
	}
	NetworkSancho = Network{
		Id:           common.NetworkTestnet,
		Name:         "sanchonet",
		NetworkMagic: 4,
	}

	// NetworkInvalid is returned by lookups that find nothing
	NetworkInvalid = Network{
		Name: "invalid",
	}
)

// List of valid networks for use in lookup functions
var networks = []Network{
	NetworkMainnet,
	NetworkPreprod,
	NetworkPreview,
	NetworkSancho,
}

// NetworkByName returns a predefined network by name
func NetworkByName(name string) Network {
	for _, network := range networks {
		if network.Name == name {
			return network
		}
	}
	return NetworkInvalid
}

// NetworkByNetworkMagic returns a predefined network by network magic
func NetworkByNetworkMagic(networkMagic uint32) Network {
	for _, network := range networks {
		if network.NetworkMagic == networkMagic {
			return network
		}
	}
	return NetworkInvalid
}

// Network represents a Cardano network
type Network struct {
	// Id is the network of addresses and reward accounts
	Id           common.Network
	Name         string
	NetworkMagic uint32
}

func (n Network) String() string {
	return n.Name
}
