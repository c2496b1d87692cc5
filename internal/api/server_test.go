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

package api

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/blinklabs-io/txreject/internal/test"
	"github.com/blinklabs-io/txreject/txsubmit"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

const (
	// [{}, {}, true, null]
	testTxHex = "84a0a0f5f6"
	testTxId  = "d36a2619a672494604e11bb447cbcf5231e9f2ba25c2169177edc941bd50ad6c"

	// ConwayMempoolFailure "b"
	testReasonHex = "8182068182076162"
	// Ledger failure with unknown discriminant 99
	testBadReasonHex = "8182068182186300"

	testEnvelope = `{"contents":{"contents":{"contents":{"era":"ShelleyBasedEraConway","error":["ConwayMempoolFailure \"b\""],"kind":"ShelleyTxValidationError"},"tag":"TxValidationErrorInCardanoMode"},"tag":"TxCmdTxSubmitValidationError"},"tag":"TxSubmitFail"}`
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	goleak.VerifyTestMain(m)
}

type fakeSubmitter struct {
	reply []byte
	err   error
}

func (f *fakeSubmitter) SubmitTx(ctx context.Context, eraId uint16, tx []byte) ([]byte, error) {
	return f.reply, f.err
}

func newTestServer(submitter txsubmit.Submitter, opts ...ServerOptionFunc) (*Server, *bytes.Buffer) {
	var logBuf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&logBuf, nil))
	svc := txsubmit.NewService(submitter, txsubmit.WithLogger(logger))
	opts = append([]ServerOptionFunc{WithLogger(logger)}, opts...)
	return New(svc, opts...), &logBuf
}

func doRequest(s *Server, method, path, contentType string, body []byte) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func scrapeMetrics(t *testing.T, s *Server) string {
	t.Helper()
	rec := doRequest(s, http.MethodGet, "/metrics", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	return rec.Body.String()
}

func TestHealthcheck(t *testing.T) {
	s, _ := newTestServer(&fakeSubmitter{})
	rec := doRequest(s, http.MethodGet, "/healthcheck", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"healthy":true}`, rec.Body.String())
}

func TestSubmitAccepted(t *testing.T) {
	s, _ := newTestServer(&fakeSubmitter{reply: test.DecodeHexString("8101")})
	testDefs := []struct {
		contentType string
		body        []byte
	}{
		{contentType: contentTypeCbor, body: test.DecodeHexString(testTxHex)},
		{contentType: "text/plain", body: []byte(testTxHex + "\n")},
		{body: []byte(testTxHex)},
	}
	for _, testDef := range testDefs {
		rec := doRequest(s, http.MethodPost, "/api/submit/tx", testDef.contentType, testDef.body)
		assert.Equal(t, http.StatusAccepted, rec.Code)
		assert.Equal(t, `"`+testTxId+`"`, rec.Body.String())
	}
	assert.Contains(t, scrapeMetrics(t, s), `txreject_tx_submissions_total{result="accepted"} 3`)
}

func TestSubmitRejected(t *testing.T) {
	s, logBuf := newTestServer(&fakeSubmitter{
		reply: test.DecodeHexString("8202" + testReasonHex),
	})
	rec := doRequest(
		s,
		http.MethodPost,
		"/api/submit/tx",
		contentTypeCbor,
		test.DecodeHexString(testTxHex),
	)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Equal(t, testEnvelope, rec.Body.String())
	metrics := scrapeMetrics(t, s)
	assert.Contains(t, metrics, `txreject_tx_submissions_total{result="rejected"} 1`)
	assert.Contains(
		t,
		metrics,
		`txreject_tx_rejection_failures_total{constructor="ConwayMempoolFailure"} 1`,
	)
	assert.Contains(t, logBuf.String(), `"msg":"http_request"`)
	assert.Contains(t, logBuf.String(), `"level":"WARN"`)
}

func TestSubmitDecodeFailure(t *testing.T) {
	s, _ := newTestServer(&fakeSubmitter{
		reply: test.DecodeHexString("8202" + testBadReasonHex),
	})
	rec := doRequest(s, http.MethodPost, "/api/submit/tx", "", []byte(testTxHex))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `"kind":"DecodeFailure"`)
	assert.Contains(t, body, `"reason":"`+testBadReasonHex+`"`)
	assert.Contains(t, body, `"txId":"`+testTxId+`"`)
	assert.Contains(t, body, "Failed to decode error reason: ")
	assert.Contains(
		t,
		scrapeMetrics(t, s),
		`txreject_tx_submissions_total{result="decode_failure"} 1`,
	)
}

func TestSubmitTransportError(t *testing.T) {
	s, logBuf := newTestServer(&fakeSubmitter{err: errors.New("connection refused")})
	rec := doRequest(s, http.MethodPost, "/api/submit/tx", "", []byte(testTxHex))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "connection refused")
	assert.Contains(t, logBuf.String(), `"level":"ERROR"`)
	assert.Contains(t, scrapeMetrics(t, s), `txreject_tx_submissions_total{result="error"} 1`)
}

func TestSubmitBadRequest(t *testing.T) {
	s, _ := newTestServer(&fakeSubmitter{reply: test.DecodeHexString("8101")}, WithMaxBodyBytes(16))
	testDefs := []struct {
		name        string
		contentType string
		body        []byte
		status      int
	}{
		{name: "empty", contentType: contentTypeCbor, status: http.StatusBadRequest},
		{name: "not hex", body: []byte("zz"), status: http.StatusUnsupportedMediaType},
		{name: "not a tx", body: []byte("01"), status: http.StatusBadRequest},
		{
			name:   "too large",
			body:   []byte(strings.Repeat("00", 16)),
			status: http.StatusRequestEntityTooLarge,
		},
	}
	for _, testDef := range testDefs {
		rec := doRequest(s, http.MethodPost, "/api/submit/tx", testDef.contentType, testDef.body)
		assert.Equal(t, testDef.status, rec.Code, testDef.name)
		assert.Contains(t, rec.Body.String(), `"error":`, testDef.name)
	}
}

func TestDecode(t *testing.T) {
	s, _ := newTestServer(&fakeSubmitter{})
	rec := doRequest(s, http.MethodPost, "/api/decode", "", []byte(testReasonHex))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, testEnvelope, rec.Body.String())

	rec = doRequest(s, http.MethodPost, "/api/decode?message=true", "", []byte("8202"+testReasonHex))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, testEnvelope, rec.Body.String())

	rec = doRequest(s, http.MethodPost, "/api/decode?message=true", "", []byte("8101"))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doRequest(s, http.MethodPost, "/api/decode", "", []byte(testBadReasonHex))
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), `"kind":"DecodeFailure"`)
	assert.NotContains(t, rec.Body.String(), "txId")
}

func TestMetricsPathDisabled(t *testing.T) {
	s, _ := newTestServer(&fakeSubmitter{}, WithMetricsPath(""))
	rec := doRequest(s, http.MethodGet, "/metrics", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestServeAndShutdown(t *testing.T) {
	s, _ := newTestServer(&fakeSubmitter{})
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	serveErr := make(chan error, 1)
	go func() {
		serveErr <- s.Serve(l)
	}()
	client := &http.Client{Transport: &http.Transport{DisableKeepAlives: true}}
	require.Eventually(t, func() bool {
		resp, err := client.Get("http://" + l.Addr().String() + "/healthcheck")
		if err != nil {
			return false
		}
		defer resp.Body.Close()
		_, _ = io.Copy(io.Discard, resp.Body)
		return resp.StatusCode == http.StatusOK
	}, 2*time.Second, 10*time.Millisecond)
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, s.Shutdown(ctx))
	assert.NoError(t, <-serveErr)
}
