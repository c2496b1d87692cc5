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

package txsubmit_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"testing"

	"github.com/blinklabs-io/txreject/internal/test"
	"github.com/blinklabs-io/txreject/ledger"
	"github.com/blinklabs-io/txreject/ledger/common"
	"github.com/blinklabs-io/txreject/protocol"
	"github.com/blinklabs-io/txreject/txsubmit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

// [{}, {}, true, null]
var testTx = test.DecodeHexString("84a0a0f5f6")

const testTxId = "d36a2619a672494604e11bb447cbcf5231e9f2ba25c2169177edc941bd50ad6c"

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type fakeSubmitter struct {
	mu     sync.Mutex
	reply  []byte
	err    error
	eraIds []uint16
	txs    [][]byte
}

func (f *fakeSubmitter) SubmitTx(ctx context.Context, eraId uint16, tx []byte) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.eraIds = append(f.eraIds, eraId)
	f.txs = append(f.txs, tx)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return f.reply, f.err
}

func newTestService(submitter txsubmit.Submitter) (*txsubmit.Service, *bytes.Buffer) {
	var logBuf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&logBuf, nil))
	return txsubmit.NewService(submitter, txsubmit.WithLogger(logger)), &logBuf
}

func TestTxId(t *testing.T) {
	txId, err := txsubmit.TxId(testTx)
	require.NoError(t, err)
	assert.Equal(t, testTxId, txId)
}

func TestTxIdInvalid(t *testing.T) {
	for _, testDef := range []string{"", "01", "80", "84a0a0f5f600", "84a0a0"} {
		_, err := txsubmit.TxId(test.DecodeHexString(testDef))
		assert.ErrorIs(t, err, txsubmit.ErrInvalidTransaction, testDef)
	}
}

func TestSubmitAccepted(t *testing.T) {
	submitter := &fakeSubmitter{reply: test.DecodeHexString("8101")}
	svc, logBuf := newTestService(submitter)
	txId, err := svc.Submit(context.Background(), testTx)
	require.NoError(t, err)
	assert.Equal(t, testTxId, txId)
	assert.Equal(t, []uint16{uint16(ledger.ShelleyBasedEraConway)}, submitter.eraIds)
	assert.Equal(t, [][]byte{testTx}, submitter.txs)
	assert.Contains(t, logBuf.String(), `"tx_id":"`+testTxId+`"`)
}

func TestSubmitEraOption(t *testing.T) {
	submitter := &fakeSubmitter{reply: test.DecodeHexString("8101")}
	svc := txsubmit.NewService(submitter, txsubmit.WithEraId(5))
	_, err := svc.Submit(context.Background(), testTx)
	require.NoError(t, err)
	assert.Equal(t, []uint16{5}, submitter.eraIds)
}

func TestSubmitRejected(t *testing.T) {
	reason := "8182068183051a000de7561a00080fd6"
	submitter := &fakeSubmitter{reply: test.DecodeHexString("8202" + reason)}
	svc, logBuf := newTestService(submitter)
	_, err := svc.Submit(context.Background(), testTx)
	var rejErr *txsubmit.RejectionError
	require.ErrorAs(t, err, &rejErr)
	assert.Equal(t, testTxId, rejErr.TxId)
	assert.Equal(t, test.DecodeHexString(reason), rejErr.ReasonCbor)
	assert.Equal(
		t,
		[]string{"ConwayTreasuryValueMismatch (Coin 911190) (Coin 528342)"},
		rejErr.Validation.Errors.Strings(),
	)
	assert.Equal(
		t,
		`{"contents":{"contents":{"contents":{"era":"ShelleyBasedEraConway","error":["ConwayTreasuryValueMismatch (Coin 911190) (Coin 528342)"],"kind":"ShelleyTxValidationError"},"tag":"TxValidationErrorInCardanoMode"},"tag":"TxCmdTxSubmitValidationError"},"tag":"TxSubmitFail"}`,
		rejErr.Error(),
	)
	var txErr *ledger.TxValidationError
	assert.ErrorAs(t, err, &txErr)
	var logEntry map[string]any
	require.NoError(t, json.Unmarshal(logBuf.Bytes(), &logEntry))
	assert.Equal(t, "INFO", logEntry["level"])
	assert.Equal(t, reason, logEntry["reason_cbor"])
	assert.Equal(t, rejErr.Error(), logEntry["error_message"])
}

func TestSubmitRejectedDecodeFailure(t *testing.T) {
	// [[6, [[99, 0]]]]
	reason := "8182068182186300"
	submitter := &fakeSubmitter{reply: test.DecodeHexString("8202" + reason)}
	svc, logBuf := newTestService(submitter)
	_, err := svc.Submit(context.Background(), testTx)
	var decErr *txsubmit.DecodeFailureError
	require.ErrorAs(t, err, &decErr)
	assert.ErrorIs(t, err, common.ErrUnknownDiscriminant)
	assert.Equal(t, testTxId, decErr.TxId)
	assert.True(t, strings.HasPrefix(decErr.Error(), "Failed to decode error reason: "))
	var logEntry map[string]any
	require.NoError(t, json.Unmarshal(logBuf.Bytes(), &logEntry))
	assert.Equal(t, "WARN", logEntry["level"])
	assert.Equal(t, reason, logEntry["reason_cbor"])

	body, err := decErr.JSON()
	require.NoError(t, err)
	var parsed map[string]string
	require.NoError(t, json.Unmarshal(body, &parsed))
	assert.Equal(t, "DecodeFailure", parsed["kind"])
	assert.Equal(t, reason, parsed["reason"])
	assert.Equal(t, testTxId, parsed["txId"])
}

func TestSubmitTransportError(t *testing.T) {
	transportErr := errors.New("connection refused")
	svc, _ := newTestService(&fakeSubmitter{err: transportErr})
	_, err := svc.Submit(context.Background(), testTx)
	require.ErrorIs(t, err, transportErr)
	var rejErr *txsubmit.RejectionError
	assert.False(t, errors.As(err, &rejErr))
}

func TestSubmitCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	svc, _ := newTestService(&fakeSubmitter{reply: test.DecodeHexString("8101")})
	_, err := svc.Submit(ctx, testTx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSubmitUnexpectedReply(t *testing.T) {
	testDefs := []string{
		// MsgDone
		"8103",
		// MsgSubmitTx echoed back
		fmt.Sprintf("82008206d81845%x", testTx),
		// Unknown message type
		"8109",
		// Not a message
		"01",
	}
	for _, testDef := range testDefs {
		svc, _ := newTestService(&fakeSubmitter{reply: test.DecodeHexString(testDef)})
		_, err := svc.Submit(context.Background(), testTx)
		assert.ErrorIs(t, err, txsubmit.ErrUnexpectedReply, testDef)
	}
	svc, _ := newTestService(&fakeSubmitter{reply: test.DecodeHexString("8103")})
	_, err := svc.Submit(context.Background(), testTx)
	assert.ErrorIs(t, err, protocol.ErrProtocolViolationInvalidMessage)
}

func TestSubmitInvalidTransaction(t *testing.T) {
	submitter := &fakeSubmitter{reply: test.DecodeHexString("8101")}
	svc, _ := newTestService(submitter)
	_, err := svc.Submit(context.Background(), test.DecodeHexString("01"))
	assert.ErrorIs(t, err, txsubmit.ErrInvalidTransaction)
	assert.Empty(t, submitter.txs)
}

func TestDecodeRejection(t *testing.T) {
	svc, _ := newTestService(&fakeSubmitter{})
	err := svc.DecodeRejection(test.DecodeHexString("8182068182076162"))
	var rejErr *txsubmit.RejectionError
	require.ErrorAs(t, err, &rejErr)
	assert.Empty(t, rejErr.TxId)
	assert.Equal(t, []string{`ConwayMempoolFailure "b"`}, rejErr.Envelope.Contents.Contents.Contents.Error)

	err = svc.DecodeRejection(test.DecodeHexString("81820580"))
	var decErr *txsubmit.DecodeFailureError
	require.ErrorAs(t, err, &decErr)
	assert.ErrorIs(t, err, ledger.ErrUnsupportedEra)
}

func TestConcurrentSubmit(t *testing.T) {
	submitter := &fakeSubmitter{reply: test.DecodeHexString("8202" + "8182068182076162")}
	svc, _ := newTestService(submitter)
	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 25 {
				_, err := svc.Submit(context.Background(), testTx)
				var rejErr *txsubmit.RejectionError
				if assert.ErrorAs(t, err, &rejErr) {
					assert.Equal(t, []string{`ConwayMempoolFailure "b"`}, rejErr.Validation.Errors.Strings())
				}
			}
		}()
	}
	wg.Wait()
	assert.Len(t, submitter.txs, 200)
}
