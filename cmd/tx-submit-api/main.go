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

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/blinklabs-io/txreject/internal/api"
	"github.com/blinklabs-io/txreject/internal/config"
	"github.com/blinklabs-io/txreject/internal/logging"
	"github.com/blinklabs-io/txreject/node"
	"github.com/blinklabs-io/txreject/txsubmit"
	"github.com/gin-gonic/gin"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	cfg, err := config.Load(args, os.Getenv)
	if err != nil {
		return err
	}
	logger, err := logging.New(cfg.Logging)
	if err != nil {
		return err
	}
	slog.SetDefault(logger)

	nodeOpts := []node.ClientOptionFunc{
		node.WithNetworkMagic(cfg.Node.NetworkMagic),
		node.WithTimeout(cfg.Node.Timeout),
		node.WithLogger(logger),
	}
	if cfg.Node.SocketPath != "" {
		nodeOpts = append(nodeOpts, node.WithSocketPath(cfg.Node.SocketPath))
	} else {
		nodeOpts = append(nodeOpts, node.WithAddress(cfg.Node.Address))
	}
	client, err := node.NewClient(nodeOpts...)
	if err != nil {
		return err
	}
	svc := txsubmit.NewService(
		client,
		txsubmit.WithLogger(logger),
		txsubmit.WithEraId(cfg.Node.EraId),
	)

	gin.SetMode(gin.ReleaseMode)
	metricsPath := cfg.Metrics.Path
	if !cfg.Metrics.Enabled {
		metricsPath = ""
	}
	server := api.New(
		svc,
		api.WithLogger(logger),
		api.WithMaxBodyBytes(cfg.Api.MaxBodyBytes),
		api.WithMetricsPath(metricsPath),
	)

	listener, err := net.Listen("tcp", cfg.Api.Listen())
	if err != nil {
		return fmt.Errorf("listen: %w", err)
	}
	logger.Info(
		"starting tx-submit-api",
		"network_magic", cfg.Node.NetworkMagic,
		"network", node.NetworkByNetworkMagic(cfg.Node.NetworkMagic).String(),
		"socket", cfg.Node.SocketPath,
		"address", cfg.Node.Address,
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	serveErr := make(chan error, 1)
	go func() {
		serveErr <- server.Serve(listener)
	}()

	select {
	case err := <-serveErr:
		return err
	case <-ctx.Done():
	}
	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Api.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return <-serveErr
}
