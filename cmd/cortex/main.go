// This file is part of cortex - https://github.com/bodza/cortex
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
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/bodza/cortex/bootstrap"
	"github.com/bodza/cortex/cell"
	"github.com/bodza/cortex/env"
	"github.com/bodza/cortex/eval"
	"github.com/bodza/cortex/reader"
	"github.com/bodza/cortex/repl"
	"github.com/hashicorp/go-hclog"
	"github.com/mattn/go-isatty"
)

// withFiles collects repeated -with flags, in command-line order.
type withFiles []string

func (f *withFiles) String() string     { return "" }
func (f *withFiles) Set(s string) error { *f = append(*f, s); return nil }

func main() {
	var with withFiles

	imageName := flag.String("image", "", "preload definitions from `filename` before the interactive prompt")
	flag.Var(&with, "with", "add `filename` to the preload list (repeatable)")
	noRaw := flag.Bool("noraw", false, "disable raw terminal IO")
	debug := flag.Bool("debug", false, "enable trace-level dispatch logging")
	stats := flag.Bool("stats", false, "print heap growth on exit")
	heapCap := flag.Int("heapcap", 0, "bound the cell heap to this many cells (0 = unbounded)")
	flag.Parse()

	logLevel := hclog.Warn
	if *debug {
		logLevel = hclog.Trace
	}
	log := hclog.New(&hclog.LoggerOptions{
		Name:  "cortex",
		Level: logLevel,
	})

	stdout := bufio.NewWriter(os.Stdout)
	defer stdout.Flush()

	var opts []cell.Option
	if *heapCap > 0 {
		opts = append(opts, cell.WithCapacity(*heapCap))
	}

	readers := make([]io.Reader, 0, len(with)+1)
	if *imageName != "" {
		with = append([]string{*imageName}, with...)
	}
	for _, name := range with {
		f, err := os.Open(name)
		if err != nil {
			log.Error("cannot open preload file", "file", name, "error", err)
			os.Exit(1)
		}
		defer f.Close()
		readers = append(readers, f)
	}

	var tearDown func()
	if !*noRaw && isatty.IsTerminal(os.Stdin.Fd()) {
		var err error
		tearDown, err = setRawIO()
		if err != nil {
			log.Debug("raw IO unavailable, falling back to line-buffered stdin", "error", err)
		}
	}
	if tearDown != nil {
		defer tearDown()
	}

	readers = append(readers, os.Stdin)
	src := reader.NewByteSource(io.MultiReader(readers...))

	session := bootstrap.New(src, stdout, log, opts...)
	registerHostPrimitives(session, log)

	r := repl.New(session, stdout)
	r.Run()
	stdout.Flush()

	if r.Errs != nil {
		log.Warn("session ended with unresolved read errors", "count", r.Errs.Len())
	}
	if *stats {
		fmt.Fprintf(os.Stderr, "cells allocated: %d\n", session.Heap.Len())
	}
}

// registerHostPrimitives wires the one demonstration peripheral this host
// exposes beyond the core language: (clock), returning a monotonically
// increasing tick count rather than wall-clock time (Eval must stay free
// of Date/time nondeterminism the way every other primitive here is
// already pure and replayable). Real hosts embedding this package would
// register analog-input or UART-bridge primitives the same way; see
// spec.md §6 and bootstrap.Session.RegisterHost.
func registerHostPrimitives(s *bootstrap.Session, log hclog.Logger) {
	var ticks int32
	s.RegisterHost(eval.HostPrimitive{
		Name: "clock",
		Tag:  cell.HostBase,
		Eval: func(ev *eval.Evaluator, form cell.Ref, e *env.Env) cell.Ref {
			ticks++
			log.Trace("clock", "ticks", ticks)
			return ev.Heap.NewNumber(ticks)
		},
	})
}
