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

package muxer

import (
	"encoding/binary"
	"fmt"
	"io"
	"time"
)

const (
	// The high bit of the protocol id marks segments sent by the responder
	SegmentProtocolIdResponseFlag = 0x8000
	// SegmentHeaderSize is the encoded size of SegmentHeader
	SegmentHeaderSize = 8
	// SegmentMaxPayloadLength is the largest payload sent in one segment
	SegmentMaxPayloadLength = 12288
)

// SegmentHeader is the fixed header in front of every segment
type SegmentHeader struct {
	Timestamp     uint32
	ProtocolId    uint16
	PayloadLength uint16
}

type Segment struct {
	SegmentHeader
	Payload []byte
}

func NewSegment(protocolId uint16, payload []byte, isResponse bool) *Segment {
	header := SegmentHeader{
		Timestamp:  uint32(time.Now().UnixNano() & 0xffffffff),
		ProtocolId: protocolId,
	}
	if isResponse {
		header.ProtocolId = header.ProtocolId + SegmentProtocolIdResponseFlag
	}
	header.PayloadLength = uint16(len(payload))
	segment := &Segment{
		SegmentHeader: header,
		Payload:       payload,
	}
	return segment
}

func (s *SegmentHeader) IsRequest() bool {
	return (s.ProtocolId & SegmentProtocolIdResponseFlag) == 0
}

func (s *SegmentHeader) IsResponse() bool {
	return (s.ProtocolId & SegmentProtocolIdResponseFlag) > 0
}

func (s *SegmentHeader) GetProtocolId() uint16 {
	return s.ProtocolId &^ SegmentProtocolIdResponseFlag
}

// Bytes returns the encoded segment
func (s *Segment) Bytes() []byte {
	ret := make([]byte, SegmentHeaderSize, SegmentHeaderSize+len(s.Payload))
	binary.BigEndian.PutUint32(ret[0:4], s.Timestamp)
	binary.BigEndian.PutUint16(ret[4:6], s.ProtocolId)
	binary.BigEndian.PutUint16(ret[6:8], s.PayloadLength)
	return append(ret, s.Payload...)
}

// ReadSegment reads one segment from r
func ReadSegment(r io.Reader) (*Segment, error) {
	header := SegmentHeader{}
	if err := binary.Read(r, binary.BigEndian, &header); err != nil {
		return nil, err
	}
	segment := &Segment{
		SegmentHeader: header,
		Payload:       make([]byte, header.PayloadLength),
	}
	// ReadFull guarantees the expected number of bytes or an error
	if _, err := io.ReadFull(r, segment.Payload); err != nil {
		return nil, fmt.Errorf("read segment payload: %w", err)
	}
	return segment, nil
}
