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

// Package muxer frames mini-protocol messages into segments on a node
// connection
package muxer

import (
	"errors"
	"fmt"
	"io"
	"net"
	"sync"

	"github.com/blinklabs-io/txreject/cbor"
)

// ErrUnexpectedProtocol is returned when a segment arrives for a protocol
// other than the one being read
var ErrUnexpectedProtocol = errors.New("segment for unexpected protocol")

// Muxer exchanges messages on a connection. Reads are driven by the caller,
// so no goroutines are started
type Muxer struct {
	conn      net.Conn
	sendMutex sync.Mutex
	recvMutex sync.Mutex
	pending   map[uint16][]byte
}

func New(conn net.Conn) *Muxer {
	return &Muxer{
		conn:    conn,
		pending: make(map[uint16][]byte),
	}
}

// Send writes a message as one or more segments
func (m *Muxer) Send(protocolId uint16, payload []byte, isResponse bool) error {
	// We use a mutex to make sure only one protocol can send at a time
	m.sendMutex.Lock()
	defer m.sendMutex.Unlock()
	for {
		chunk := payload
		if len(chunk) > SegmentMaxPayloadLength {
			chunk = chunk[:SegmentMaxPayloadLength]
		}
		segment := NewSegment(protocolId, chunk, isResponse)
		if _, err := m.conn.Write(segment.Bytes()); err != nil {
			return fmt.Errorf("write segment: %w", err)
		}
		payload = payload[len(chunk):]
		if len(payload) == 0 {
			return nil
		}
	}
}

// ReceiveMessage returns the next complete message for protocolId. A message
// may span several segments, and a segment may hold more than one message
func (m *Muxer) ReceiveMessage(protocolId uint16) ([]byte, error) {
	m.recvMutex.Lock()
	defer m.recvMutex.Unlock()
	buf := m.pending[protocolId]
	for {
		if len(buf) > 0 {
			var raw cbor.RawMessage
			n, err := cbor.Decode(buf, &raw)
			if err == nil {
				m.pending[protocolId] = append([]byte(nil), buf[n:]...)
				return buf[:n], nil
			}
			if !errors.Is(err, io.ErrUnexpectedEOF) {
				return nil, fmt.Errorf("decode message: %w", err)
			}
		}
		segment, err := ReadSegment(m.conn)
		if err != nil {
			return nil, err
		}
		if segment.GetProtocolId() != protocolId {
			return nil, fmt.Errorf(
				"%w: got protocol %d, expected %d",
				ErrUnexpectedProtocol,
				segment.GetProtocolId(),
				protocolId,
			)
		}
		buf = append(buf, segment.Payload...)
	}
}

func (m *Muxer) Close() error {
	return m.conn.Close()
}
