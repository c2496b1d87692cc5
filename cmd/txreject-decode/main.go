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

// txreject-decode renders rejection payloads, one hex payload per input line
package main

import (
	"bufio"
	"context"
	"encoding/hex"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"github.com/blinklabs-io/txreject/internal/logging"
	"github.com/blinklabs-io/txreject/pipeline"
	"github.com/blinklabs-io/txreject/txsubmit"
)

const maxLineLength = 16 << 20

type decodeFlags struct {
	Flagset  *flag.FlagSet
	input    string
	workers  int
	text     bool
	logLevel string
}

func newDecodeFlags() *decodeFlags {
	f := &decodeFlags{
		Flagset: flag.NewFlagSet("txreject-decode", flag.ContinueOnError),
	}
	f.Flagset.StringVar(
		&f.input,
		"input",
		"",
		"file with one hex payload per line (defaults to stdin)",
	)
	f.Flagset.IntVar(&f.workers, "workers", 0, "number of decode workers")
	f.Flagset.BoolVar(
		&f.text,
		"text",
		false,
		"print the rendered error instead of the submit API JSON",
	)
	f.Flagset.StringVar(&f.logLevel, "log-level", "info", "log level")
	return f
}

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdin io.Reader, stdout io.Writer) error {
	f := newDecodeFlags()
	if err := f.Flagset.Parse(args); err != nil {
		return err
	}
	logger, err := logging.New(logging.Config{Level: f.logLevel})
	if err != nil {
		return err
	}
	input := stdin
	if f.input != "" {
		file, err := os.Open(f.input)
		if err != nil {
			return err
		}
		defer file.Close()
		input = file
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return decodeAll(ctx, logger, input, stdout, f.workers, f.text)
}

func decodeAll(
	ctx context.Context,
	logger *slog.Logger,
	input io.Reader,
	output io.Writer,
	workers int,
	text bool,
) error {
	p := pipeline.NewDecodePipeline(pipeline.WithDecodeWorkers(workers))
	if err := p.Start(ctx); err != nil {
		return err
	}
	submitErr := make(chan error, 1)
	go func() {
		submitErr <- submitLines(ctx, p, input)
	}()

	w := bufio.NewWriter(output)
	var writeErr error
	for item := range p.Results() {
		if writeErr != nil {
			continue
		}
		writeErr = writeItem(w, item, text)
	}
	if err := <-submitErr; err != nil {
		return err
	}
	if writeErr != nil {
		return writeErr
	}
	stats := p.Stats()
	logger.Info(
		"decoded rejection payloads",
		"submitted", stats.ItemsSubmitted,
		"decoded", stats.ItemsDecoded,
		"failed", stats.DecodeErrors,
	)
	return w.Flush()
}

// submitLines feeds the pipeline and stops it once the input is consumed
func submitLines(ctx context.Context, p *pipeline.DecodePipeline, input io.Reader) error {
	defer func() {
		_ = p.Stop()
	}()
	scanner := bufio.NewScanner(input)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineLength)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		payload, err := hex.DecodeString(line)
		if err != nil {
			return fmt.Errorf("line %d: %w", lineNo, err)
		}
		if err := p.Submit(ctx, payload); err != nil {
			return fmt.Errorf("line %d: %w", lineNo, err)
		}
	}
	return scanner.Err()
}

func writeItem(w io.Writer, item *pipeline.RejectionItem, text bool) error {
	var line []byte
	if err := item.DecodeError(); err != nil {
		failure := &txsubmit.DecodeFailureError{
			ReasonCbor: item.ReasonCbor(),
			Err:        err,
		}
		if text {
			line = []byte(failure.Error())
		} else {
			var jsonErr error
			line, jsonErr = failure.JSON()
			if jsonErr != nil {
				return jsonErr
			}
		}
	} else if text {
		line = []byte(item.Result().Error())
	} else {
		line = item.JSON()
	}
	if _, err := w.Write(append(line, '\n')); err != nil {
		return err
	}
	return nil
}
