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

// Package api is the HTTP interface of the transaction submission service
package api

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// TxService submits transactions and explains rejections
type TxService interface {
	Submit(ctx context.Context, txCbor []byte) (string, error)
	DecodeRejection(reason []byte) error
}

type Server struct {
	svc          TxService
	logger       *slog.Logger
	metrics      *Metrics
	metricsPath  string
	maxBodyBytes int64
	router       *gin.Engine
	httpServer   *http.Server
}

func New(svc TxService, opts ...ServerOptionFunc) *Server {
	s := &Server{
		svc:          svc,
		metricsPath:  "/metrics",
		maxBodyBytes: 1 << 20,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	if s.metrics == nil {
		s.metrics = NewMetrics()
	}
	s.router = gin.New()
	s.router.Use(gin.Recovery())
	s.router.Use(RequestLogger(s.logger))
	s.router.Use(RequestMetricsMiddleware(s.metrics))
	s.registerRoutes()
	s.httpServer = &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

func (s *Server) registerRoutes() {
	s.router.GET("/healthcheck", s.handleHealthcheck)
	s.router.POST("/api/submit/tx", s.handleSubmitTx)
	s.router.POST("/api/decode", s.handleDecode)
	if s.metricsPath != "" {
		s.router.GET(
			s.metricsPath,
			gin.WrapH(promhttp.HandlerFor(s.metrics.Registry(), promhttp.HandlerOpts{})),
		)
	}
}

func (s *Server) Handler() http.Handler {
	return s.router
}

// Serve accepts connections on l until Shutdown is called
func (s *Server) Serve(l net.Listener) error {
	s.logger.Info("starting API listener", "address", l.Addr().String())
	if err := s.httpServer.Serve(l); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops the listener and waits for active requests to finish
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
