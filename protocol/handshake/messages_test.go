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

package handshake

import (
	"encoding/hex"
	"testing"

	"github.com/blinklabs-io/txreject/cbor"
	"github.com/blinklabs-io/txreject/internal/test"
	"github.com/blinklabs-io/txreject/protocol"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testDefinition struct {
	CborHex     string
	Message     protocol.Message
	MessageType uint
}

func newTestProposeVersions() protocol.Message {
	msg, err := NewMsgProposeVersions(protocol.GetProtocolVersionMap(2))
	if err != nil {
		panic(err)
	}
	return msg
}

var tests = []testDefinition{
	{
		CborHex: "8200a5" +
			"1980108202f4" +
			"1980118202f4" +
			"1980128202f4" +
			"1980138202f4" +
			"1980148202f4",
		MessageType: MessageTypeProposeVersions,
		Message:     newTestProposeVersions(),
	},
	{
		CborHex:     "83011980108202f4",
		MessageType: MessageTypeAcceptVersion,
		Message:     NewMsgAcceptVersion(0x8010, test.DecodeHexString("8202f4")),
	},
	{
		CborHex:     "820282008219801019801f",
		MessageType: MessageTypeRefuse,
		Message: NewMsgRefuse(
			[]any{
				uint64(RefuseReasonVersionMismatch),
				[]any{uint64(0x8010), uint64(0x801f)},
			},
		),
	},
}

func TestDecode(t *testing.T) {
	for _, testDef := range tests {
		cborData := test.DecodeHexString(testDef.CborHex)
		msg, err := NewMsgFromCbor(testDef.MessageType, cborData)
		require.NoError(t, err)
		// Set the raw CBOR so the comparison should succeed
		testDef.Message.SetCbor(cborData)
		assert.Equal(t, testDef.Message, msg)
	}
}

func TestEncode(t *testing.T) {
	for _, testDef := range tests {
		cborData, err := cbor.Encode(testDef.Message)
		require.NoError(t, err)
		assert.Equal(t, testDef.CborHex, hex.EncodeToString(cborData))
	}
}

func TestAcceptVersionData(t *testing.T) {
	msg, err := DecodeMessage(test.DecodeHexString("83011980108202f4"))
	require.NoError(t, err)
	accept, ok := msg.(*MsgAcceptVersion)
	require.True(t, ok)
	assert.True(t, protocol.IsProtocolVersionNtC(accept.Version))
	versionData, err := protocol.NewVersionDataNtC15andUpFromCbor(accept.VersionData)
	require.NoError(t, err)
	assert.Equal(t, uint32(2), versionData.NetworkMagic())
}

func TestRefuseError(t *testing.T) {
	testDefs := []struct {
		reason   []any
		expected string
	}{
		{
			reason:   []any{uint64(RefuseReasonVersionMismatch), []any{uint64(0x8010)}},
			expected: "handshake refused: version mismatch, node supports [32784]",
		},
		{
			reason:   []any{uint64(RefuseReasonRefused), uint64(0x8010), "no"},
			expected: "handshake refused: version 32784: no",
		},
		{
			reason:   nil,
			expected: "handshake refused",
		},
	}
	for _, testDef := range testDefs {
		err := &RefuseError{Reason: testDef.reason}
		assert.Equal(t, testDef.expected, err.Error())
		assert.ErrorIs(t, err, ErrRefused)
	}
}

func TestStateMap(t *testing.T) {
	state, err := StateMap.Next(StatePropose, MessageTypeProposeVersions)
	require.NoError(t, err)
	assert.Equal(t, StateConfirm, state)
	_, err = StateMap.Next(StateConfirm, MessageTypeProposeVersions)
	assert.ErrorIs(t, err, protocol.ErrProtocolViolationInvalidMessage)
}
