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
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/blinklabs-io/txreject/txsubmit"
	"github.com/gin-gonic/gin"
)

const contentTypeCbor = "application/cbor"

var errEmptyBody = errors.New("request body is empty")

// [2, reason]
var rejectTxHeader = []byte{0x82, 0x02}

func (s *Server) handleHealthcheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"healthy": true})
}

// readBody returns the request body as CBOR bytes. Bodies sent as
// application/cbor are used as is, anything else is read as hex
func (s *Server) readBody(c *gin.Context) ([]byte, int, error) {
	body := http.MaxBytesReader(c.Writer, c.Request.Body, s.maxBodyBytes)
	data, err := io.ReadAll(body)
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return nil, http.StatusRequestEntityTooLarge, err
		}
		return nil, http.StatusBadRequest, fmt.Errorf("read request body: %w", err)
	}
	if c.ContentType() != contentTypeCbor {
		data, err = hex.DecodeString(string(bytes.TrimSpace(data)))
		if err != nil {
			return nil, http.StatusUnsupportedMediaType, fmt.Errorf(
				"body is neither %s nor hex: %w",
				contentTypeCbor,
				err,
			)
		}
	}
	if len(data) == 0 {
		return nil, http.StatusBadRequest, errEmptyBody
	}
	return data, 0, nil
}

func (s *Server) abortWithError(c *gin.Context, status int, err error) {
	c.AbortWithStatusJSON(status, gin.H{"error": err.Error()})
}

// writeRawJSON writes a body that is already encoded
func writeRawJSON(c *gin.Context, status int, body []byte) {
	c.Data(status, "application/json", body)
}

func (s *Server) handleSubmitTx(c *gin.Context) {
	txCbor, status, err := s.readBody(c)
	if err != nil {
		s.abortWithError(c, status, err)
		return
	}
	txId, err := s.svc.Submit(c.Request.Context(), txCbor)
	if err == nil {
		s.metrics.RecordSubmission(ResultAccepted)
		c.JSON(http.StatusAccepted, txId)
		return
	}
	if s.writeRejection(c, err) {
		return
	}
	if errors.Is(err, txsubmit.ErrInvalidTransaction) {
		s.abortWithError(c, http.StatusBadRequest, err)
		return
	}
	s.metrics.RecordSubmission(ResultError)
	s.logger.Error("failed to submit transaction", "error", err)
	s.abortWithError(c, http.StatusInternalServerError, err)
}

// writeRejection writes the 400 response for a rejected transaction and
// reports whether err was a rejection
func (s *Server) writeRejection(c *gin.Context, err error) bool {
	var rejErr *txsubmit.RejectionError
	if errors.As(err, &rejErr) {
		s.metrics.RecordRejection(rejErr.Validation.Errors.Constructors())
		writeRawJSON(c, http.StatusBadRequest, rejErr.JSON)
		return true
	}
	var decErr *txsubmit.DecodeFailureError
	if errors.As(err, &decErr) {
		s.metrics.RecordSubmission(ResultDecodeFailure)
		body, jsonErr := decErr.JSON()
		if jsonErr != nil {
			s.abortWithError(c, http.StatusBadRequest, decErr)
			return true
		}
		writeRawJSON(c, http.StatusBadRequest, body)
		return true
	}
	return false
}

// handleDecode explains a rejection reason without submitting anything.
// With message=true the body is a whole MsgRejectTx
func (s *Server) handleDecode(c *gin.Context) {
	reason, status, err := s.readBody(c)
	if err != nil {
		s.abortWithError(c, status, err)
		return
	}
	if strings.EqualFold(c.Query("message"), "true") {
		if !bytes.HasPrefix(reason, rejectTxHeader) {
			s.abortWithError(c, http.StatusBadRequest, errors.New("body is not a MsgRejectTx"))
			return
		}
		reason = reason[len(rejectTxHeader):]
	}
	err = s.svc.DecodeRejection(reason)
	var rejErr *txsubmit.RejectionError
	if errors.As(err, &rejErr) {
		writeRawJSON(c, http.StatusOK, rejErr.JSON)
		return
	}
	var decErr *txsubmit.DecodeFailureError
	if errors.As(err, &decErr) {
		body, jsonErr := decErr.JSON()
		if jsonErr != nil {
			s.abortWithError(c, http.StatusUnprocessableEntity, decErr)
			return
		}
		writeRawJSON(c, http.StatusUnprocessableEntity, body)
		return
	}
	if err != nil {
		s.abortWithError(c, http.StatusInternalServerError, err)
		return
	}
	s.abortWithError(c, http.StatusInternalServerError, errors.New("no rejection decoded"))
}
