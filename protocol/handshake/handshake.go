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

// Package handshake implements the messages of the Ouroboros handshake
// mini-protocol, which agrees on a protocol version for a connection
package handshake

import (
	"errors"
	"fmt"

	"github.com/blinklabs-io/txreject/protocol"
)

// Protocol identifiers
const (
	ProtocolName = "handshake"
	ProtocolId   = 0
)

// Refusal reasons
const (
	RefuseReasonVersionMismatch = 0
	RefuseReasonDecodeError     = 1
	RefuseReasonRefused         = 2
)

var (
	StatePropose = protocol.NewState(1, "Propose")
	StateConfirm = protocol.NewState(2, "Confirm")
	StateDone    = protocol.NewState(3, "Done")
)

// Handshake protocol state machine
var StateMap = protocol.StateMap{
	StatePropose: protocol.StateMapEntry{
		Agency: protocol.AgencyClient,
		Transitions: []protocol.StateTransition{
			{
				MsgType:  MessageTypeProposeVersions,
				NewState: StateConfirm,
			},
		},
	},
	StateConfirm: protocol.StateMapEntry{
		Agency: protocol.AgencyServer,
		Transitions: []protocol.StateTransition{
			{
				MsgType:  MessageTypeAcceptVersion,
				NewState: StateDone,
			},
			{
				MsgType:  MessageTypeRefuse,
				NewState: StateDone,
			},
		},
	},
	StateDone: protocol.StateMapEntry{
		Agency: protocol.AgencyNone,
	},
}

// ErrRefused is returned when the node refuses every proposed version
var ErrRefused = errors.New("handshake refused")

// RefuseError describes why the node refused the handshake
type RefuseError struct {
	Reason []any
}

func (e *RefuseError) Error() string {
	if len(e.Reason) == 0 {
		return ErrRefused.Error()
	}
	switch reason, _ := e.Reason[0].(uint64); reason {
	case RefuseReasonVersionMismatch:
		if len(e.Reason) > 1 {
			return fmt.Sprintf("%s: version mismatch, node supports %v", ErrRefused, e.Reason[1])
		}
		return fmt.Sprintf("%s: version mismatch", ErrRefused)
	case RefuseReasonDecodeError, RefuseReasonRefused:
		if len(e.Reason) > 2 {
			return fmt.Sprintf("%s: version %v: %v", ErrRefused, e.Reason[1], e.Reason[2])
		}
	}
	return fmt.Sprintf("%s: %v", ErrRefused, e.Reason)
}

func (e *RefuseError) Unwrap() error {
	return ErrRefused
}
