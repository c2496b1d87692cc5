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

// Package node talks to a Cardano node over its node-to-client socket
package node

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"time"

	"github.com/blinklabs-io/txreject/cbor"
	"github.com/blinklabs-io/txreject/muxer"
	"github.com/blinklabs-io/txreject/protocol"
	"github.com/blinklabs-io/txreject/protocol/handshake"
	"github.com/blinklabs-io/txreject/protocol/localtxsubmission"
)

var (
	// ErrNoEndpoint is returned when neither a socket path nor an address is configured
	ErrNoEndpoint = errors.New("no node socket path or address configured")
	// ErrNetworkMagicMismatch is returned when the node runs on another network
	ErrNetworkMagicMismatch = errors.New("node network magic mismatch")
)

// Client submits transactions to a node. Each submission uses its own
// connection, so a Client is safe for concurrent use
type Client struct {
	socketPath   string
	address      string
	networkMagic uint32
	timeout      time.Duration
	logger       *slog.Logger
	dialFunc     func(ctx context.Context) (net.Conn, error)
}

func NewClient(opts ...ClientOptionFunc) (*Client, error) {
	c := &Client{
		networkMagic: NetworkMainnet.NetworkMagic,
		timeout:      30 * time.Second,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}
	if c.dialFunc == nil {
		if c.socketPath == "" && c.address == "" {
			return nil, ErrNoEndpoint
		}
		c.dialFunc = c.dial
	}
	return c, nil
}

func (c *Client) dial(ctx context.Context) (net.Conn, error) {
	var dialer net.Dialer
	if c.socketPath != "" {
		return dialer.DialContext(ctx, "unix", c.socketPath)
	}
	return dialer.DialContext(ctx, "tcp", c.address)
}

// SubmitTx performs the handshake, submits the transaction over
// LocalTxSubmission and returns the node's reply message
func (c *Client) SubmitTx(ctx context.Context, eraId uint16, tx []byte) ([]byte, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}
	conn, err := c.dialFunc(ctx)
	if err != nil {
		return nil, fmt.Errorf("connect to node: %w", err)
	}
	m := muxer.New(conn)
	defer m.Close()
	// Unblock reads and writes when the caller gives up or the timeout passes
	stop := context.AfterFunc(ctx, func() {
		_ = conn.Close()
	})
	defer stop()
	reply, err := c.submit(m, eraId, tx)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, fmt.Errorf("%w: %w", ctxErr, err)
		}
		return nil, err
	}
	return reply, nil
}

func (c *Client) submit(m *muxer.Muxer, eraId uint16, tx []byte) ([]byte, error) {
	version, err := c.handshake(m)
	if err != nil {
		return nil, err
	}
	c.logger.Debug(
		"handshake complete",
		"version",
		version-protocol.ProtocolVersionNtCOffset,
	)
	msgData, err := cbor.Encode(localtxsubmission.NewMsgSubmitTx(eraId, tx))
	if err != nil {
		return nil, fmt.Errorf("%s: encode error: %w", localtxsubmission.ProtocolName, err)
	}
	if err := m.Send(localtxsubmission.ProtocolId, msgData, false); err != nil {
		return nil, err
	}
	reply, err := m.ReceiveMessage(localtxsubmission.ProtocolId)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", localtxsubmission.ProtocolName, err)
	}
	// The reply is returned even when the node does not see the Done message
	doneData, err := cbor.Encode(localtxsubmission.NewMsgDone())
	if err == nil {
		if err := m.Send(localtxsubmission.ProtocolId, doneData, false); err != nil {
			c.logger.Debug("failed to send done message", "error", err)
		}
	}
	return reply, nil
}

// handshake proposes the supported node-to-client versions and returns the
// one the node accepts
func (c *Client) handshake(m *muxer.Muxer) (uint16, error) {
	propose, err := handshake.NewMsgProposeVersions(
		protocol.GetProtocolVersionMap(c.networkMagic),
	)
	if err != nil {
		return 0, err
	}
	proposeData, err := cbor.Encode(propose)
	if err != nil {
		return 0, fmt.Errorf("%s: encode error: %w", handshake.ProtocolName, err)
	}
	if err := m.Send(handshake.ProtocolId, proposeData, false); err != nil {
		return 0, err
	}
	replyData, err := m.ReceiveMessage(handshake.ProtocolId)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", handshake.ProtocolName, err)
	}
	reply, err := handshake.DecodeMessage(replyData)
	if err != nil {
		return 0, err
	}
	if _, err := handshake.StateMap.Next(handshake.StateConfirm, reply.Type()); err != nil {
		return 0, fmt.Errorf("%s: %w", handshake.ProtocolName, err)
	}
	switch msg := reply.(type) {
	case *handshake.MsgAcceptVersion:
		if !protocol.IsProtocolVersionNtC(msg.Version) {
			return 0, fmt.Errorf(
				"%s: node accepted unsupported version %d",
				handshake.ProtocolName,
				msg.Version,
			)
		}
		versionData, err := protocol.NewVersionDataNtC15andUpFromCbor(msg.VersionData)
		if err != nil {
			return 0, fmt.Errorf("%s: decode version data: %w", handshake.ProtocolName, err)
		}
		if versionData.NetworkMagic() != c.networkMagic {
			return 0, fmt.Errorf(
				"%w: node uses %d, expected %d",
				ErrNetworkMagicMismatch,
				versionData.NetworkMagic(),
				c.networkMagic,
			)
		}
		return msg.Version, nil
	case *handshake.MsgRefuse:
		return 0, &handshake.RefuseError{Reason: msg.Reason}
	default:
		return 0, fmt.Errorf(
			"%s: %w: message type %d",
			handshake.ProtocolName,
			protocol.ErrProtocolViolationInvalidMessage,
			reply.Type(),
		)
	}
}
