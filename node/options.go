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

import (
	"context"
	"log/slog"
	"net"
	"time"
)

// ClientOptionFunc is a type that represents functions that modify the Client config
type ClientOptionFunc func(*Client)

// WithSocketPath specifies the UNIX socket of the node
func WithSocketPath(socketPath string) ClientOptionFunc {
	return func(c *Client) {
		c.socketPath = socketPath
	}
}

// WithAddress specifies a TCP address in address:port format, for nodes
// whose socket is forwarded over the network
func WithAddress(address string) ClientOptionFunc {
	return func(c *Client) {
		c.address = address
	}
}

// WithNetwork specifies the network the node is participating in
func WithNetwork(network Network) ClientOptionFunc {
	return func(c *Client) {
		c.networkMagic = network.NetworkMagic
	}
}

// WithNetworkMagic specifies the network magic value. This overrides WithNetwork
func WithNetworkMagic(networkMagic uint32) ClientOptionFunc {
	return func(c *Client) {
		c.networkMagic = networkMagic
	}
}

// WithTimeout bounds each submission, from dialing to the node's reply
func WithTimeout(timeout time.Duration) ClientOptionFunc {
	return func(c *Client) {
		c.timeout = timeout
	}
}

// WithLogger specifies the logger to use. slog.Default() is used otherwise
func WithLogger(logger *slog.Logger) ClientOptionFunc {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithDialFunc replaces how connections to the node are made
func WithDialFunc(dialFunc func(ctx context.Context) (net.Conn, error)) ClientOptionFunc {
	return func(c *Client) {
		c.dialFunc = dialFunc
	}
}
