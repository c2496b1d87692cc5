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

package localtxsubmission

import (
	"fmt"

	"github.com/blinklabs-io/txreject/cbor"
	"github.com/blinklabs-io/txreject/protocol"
)

// Message types
const (
	MessageTypeSubmitTx = 0
	MessageTypeAcceptTx = 1
	MessageTypeRejectTx = 2
	MessageTypeDone     = 3
)

// NewMsgFromCbor parses a LocalTxSubmission message from CBOR
func NewMsgFromCbor(msgType uint, data []byte) (protocol.Message, error) {
	var ret protocol.Message
	switch msgType {
	case MessageTypeSubmitTx:
		ret = &MsgSubmitTx{}
	case MessageTypeAcceptTx:
		ret = &MsgAcceptTx{}
	case MessageTypeRejectTx:
		ret = &MsgRejectTx{}
	case MessageTypeDone:
		ret = &MsgDone{}
	default:
		return nil, fmt.Errorf(
			"%s: %w: unknown message type %d",
			ProtocolName,
			protocol.ErrProtocolViolationInvalidMessage,
			msgType,
		)
	}
	if _, err := cbor.Decode(data, ret); err != nil {
		return nil, fmt.Errorf("%s: decode error: %w", ProtocolName, err)
	}
	// Store the raw message CBOR
	ret.SetCbor(data)
	return ret, nil
}

// DecodeMessage parses a message whose type is read from its first field
func DecodeMessage(data []byte) (protocol.Message, error) {
	msgType, err := cbor.DecodeIdFromList(data)
	if err != nil {
		return nil, fmt.Errorf("%s: decode error: %w", ProtocolName, err)
	}
	return NewMsgFromCbor(uint(msgType), data)
}

type MsgSubmitTx struct {
	protocol.MessageBase
	Transaction MsgSubmitTxTransaction
}

// MsgSubmitTxTransaction is a transaction tagged with its era. The
// transaction bytes travel as a tag 24 embedded document
type MsgSubmitTxTransaction struct {
	cbor.StructAsArray
	EraId uint16
	Raw   cbor.Tag
}

func NewMsgSubmitTx(eraId uint16, tx []byte) *MsgSubmitTx {
	m := &MsgSubmitTx{
		MessageBase: protocol.MessageBase{
			MessageType: MessageTypeSubmitTx,
		},
		Transaction: MsgSubmitTxTransaction{
			EraId: eraId,
			Raw: cbor.Tag{
				Number:  cbor.CborTagCbor,
				Content: tx,
			},
		},
	}
	return m
}

// TxBytes returns the transaction carried in the message
func (m *MsgSubmitTx) TxBytes() ([]byte, error) {
	if m.Transaction.Raw.Number != cbor.CborTagCbor {
		return nil, fmt.Errorf(
			"%s: %w: transaction has tag %d",
			ProtocolName,
			cbor.ErrUnexpectedTag,
			m.Transaction.Raw.Number,
		)
	}
	tx, ok := m.Transaction.Raw.Content.([]byte)
	if !ok {
		return nil, fmt.Errorf("%s: transaction is not a byte string", ProtocolName)
	}
	return tx, nil
}

type MsgAcceptTx struct {
	protocol.MessageBase
}

func NewMsgAcceptTx() *MsgAcceptTx {
	m := &MsgAcceptTx{
		MessageBase: protocol.MessageBase{
			MessageType: MessageTypeAcceptTx,
		},
	}
	return m
}

type MsgRejectTx struct {
	protocol.MessageBase
	// Reason keeps the rejection as raw CBOR, since decoding it depends on
	// the era of the transaction
	Reason cbor.RawMessage
}

func NewMsgRejectTx(reasonCbor []byte) *MsgRejectTx {
	m := &MsgRejectTx{
		MessageBase: protocol.MessageBase{
			MessageType: MessageTypeRejectTx,
		},
		Reason: cbor.RawMessage(reasonCbor),
	}
	return m
}

// Rejection decodes the rejection reason
func (m *MsgRejectTx) Rejection() *TransactionRejectedError {
	return NewTransactionRejectedError(m.Reason)
}

type MsgDone struct {
	protocol.MessageBase
}

func NewMsgDone() *MsgDone {
	m := &MsgDone{
		MessageBase: protocol.MessageBase{
			MessageType: MessageTypeDone,
		},
	}
	return m
}
