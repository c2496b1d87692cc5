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

// Package txsubmit submits transactions to a node and turns its rejections
// into the responses cardano-submit-api gives
package txsubmit

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"

	"github.com/blinklabs-io/txreject/ledger"
	"github.com/blinklabs-io/txreject/protocol/localtxsubmission"
)

var (
	// ErrInvalidTransaction is returned for submissions that are not a
	// CBOR encoded transaction
	ErrInvalidTransaction = errors.New("invalid transaction")
	// ErrUnexpectedReply is returned when the node answers a submission with
	// something other than an accept or reject
	ErrUnexpectedReply = errors.New("unexpected reply to transaction submission")
)

// Submitter delivers a transaction to a node over LocalTxSubmission and
// returns the node's raw reply message
type Submitter interface {
	SubmitTx(ctx context.Context, eraId uint16, tx []byte) ([]byte, error)
}

type Service struct {
	submitter Submitter
	logger    *slog.Logger
	eraId     uint16
}

// NewService returns a Service that submits through submitter. Transactions
// are tagged with the Conway era unless WithEraId says otherwise
func NewService(submitter Submitter, opts ...ServiceOptionFunc) *Service {
	s := &Service{
		submitter: submitter,
		eraId:     uint16(ledger.ShelleyBasedEraConway),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	return s
}

// Submit sends a transaction to the node and returns its id once accepted.
// A rejection is returned as *RejectionError, or as *DecodeFailureError
// when the reason could not be decoded
func (s *Service) Submit(ctx context.Context, txCbor []byte) (string, error) {
	txId, err := TxId(txCbor)
	if err != nil {
		return "", err
	}
	reply, err := s.submitter.SubmitTx(ctx, s.eraId, txCbor)
	if err != nil {
		return "", fmt.Errorf("submit transaction %s: %w", txId, err)
	}
	msg, err := localtxsubmission.DecodeMessage(reply)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrUnexpectedReply, err)
	}
	if _, err := localtxsubmission.StateMap.Next(localtxsubmission.StateBusy, msg.Type()); err != nil {
		return "", fmt.Errorf("%w: %w", ErrUnexpectedReply, err)
	}
	switch m := msg.(type) {
	case *localtxsubmission.MsgAcceptTx:
		s.logger.Info(
			"transaction accepted by the node",
			"tx_id",
			txId,
		)
		return txId, nil
	case *localtxsubmission.MsgRejectTx:
		return "", s.rejection(txId, m.Rejection())
	default:
		return "", fmt.Errorf("%w: message type %d", ErrUnexpectedReply, msg.Type())
	}
}

// DecodeRejection decodes a rejection reason on its own, without submitting
// anything. The result is always a *RejectionError or a *DecodeFailureError
func (s *Service) DecodeRejection(reason []byte) error {
	return s.rejection("", localtxsubmission.NewTransactionRejectedError(reason))
}

func (s *Service) rejection(
	txId string,
	rejected *localtxsubmission.TransactionRejectedError,
) error {
	reasonHex := hex.EncodeToString(rejected.ReasonCbor)
	if rejected.DecodeErr != nil {
		s.logger.Warn(
			"failed to decode error reason",
			"tx_id",
			txId,
			"reason_cbor",
			reasonHex,
			"error",
			rejected.DecodeErr,
		)
		return &DecodeFailureError{
			TxId:       txId,
			ReasonCbor: rejected.ReasonCbor,
			Err:        rejected.DecodeErr,
		}
	}
	envelope := ledger.NewTxSubmitFail(rejected.Reason)
	jsonData, err := envelope.JSON()
	if err != nil {
		return &DecodeFailureError{
			TxId:       txId,
			ReasonCbor: rejected.ReasonCbor,
			Err:        err,
		}
	}
	s.logger.Info(
		"transaction rejected by the node",
		"tx_id",
		txId,
		"reason_cbor",
		reasonHex,
		"error_message",
		string(jsonData),
	)
	return &RejectionError{
		TxId:       txId,
		ReasonCbor: rejected.ReasonCbor,
		Validation: rejected.Reason,
		Envelope:   envelope,
		JSON:       jsonData,
	}
}
