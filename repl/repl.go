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

// Package repl drives the interactive loop: prompt, read one top-level
// form, evaluate, print, and recover from malformed tokens without
// dropping the session. It is the byte-oriented counterpart of the
// teacher's lang/retro REPL loop, rebuilt around this dialect's reader
// and evaluator instead of a Forth VM's instruction stream.
package repl

import (
	"fmt"
	"io"

	"github.com/bodza/cortex/bootstrap"
	"github.com/bodza/cortex/cell"
	"github.com/bodza/cortex/reader"
	"github.com/fatih/color"
	"github.com/hashicorp/go-multierror"
)

var (
	promptLambda = color.New(color.FgRed).SprintFunc()
	promptArrow  = color.New(color.FgGreen).SprintFunc()
	oopsMarker   = color.New(color.FgYellow, color.Bold).SprintFunc()
)

// REPL owns one interactive session: a bootstrap.Session plus the
// transient state (pending/recovering flags, last result) the driver
// loop threads between prompt cycles.
type REPL struct {
	Session *bootstrap.Session
	Out     io.Writer

	// Errs accumulates non-fatal read/lex errors across the session
	// (one entry per oops!), surfaced to callers that want a summary at
	// EOF — e.g. a batch "-with FILE" load reporting how many forms it
	// could not parse, without stopping the load partway through.
	Errs *multierror.Error

	pending    bool
	recovering bool
	result     cell.Ref
}

// New wraps an already-bootstrapped session for interactive driving.
func New(s *bootstrap.Session, out io.Writer) *REPL {
	return &REPL{Session: s, Out: out, result: cell.Nil}
}

// Prompt writes the session's coloured prompt.
func (r *REPL) Prompt() {
	fmt.Fprintf(r.Out, "%s %s ", promptLambda("λ"), promptArrow("=>"))
}

// Step runs exactly one iteration of the REPL's dispatch: it emits a
// prompt when appropriate, peeks one token, and acts on it. It returns
// false when the input stream is exhausted (EOT), at which point the
// caller should stop calling Step.
func (r *REPL) Step() bool {
	lx := r.Session.Lex
	e := r.Session.Env
	ev := r.Session.Eval
	h := r.Session.Heap

	if !r.pending && !r.recovering {
		r.Prompt()
	}

	switch lx.Peek() {
	case reader.LParen:
		lx.Src.GetByte()
		form := reader.Read(lx, e)
		r.result = ev.Eval(form, e)
		r.pending = true

	case reader.Alpha:
		atom := reader.ReadSymbol(lx.Src, e)
		binding := h.Head(atom)
		r.result = e.Value(binding)
		r.pending = true

	case reader.Quoted, reader.RParen, reader.Digit, reader.ERR:
		lx.Src.GetByte()
		fmt.Fprintf(r.Out, "%s\n", oopsMarker("oops!"))
		r.Errs = multierror.Append(r.Errs, fmt.Errorf("malformed token at top level"))
		r.recovering = true
		r.result = cell.Nil

	case reader.EOL:
		lx.Src.GetByte()
		if !r.recovering {
			if r.result == cell.Nil {
				fmt.Fprint(r.Out, "nil")
			} else {
				// Wrap in a fresh list cell before printing, matching the
				// original's print(cons(p, nil)): the printer's parenthesize
				// branch only fires for a List whose Head is itself a List.
				ev.Print(h.Alloc(r.result, cell.Nil))
			}
			fmt.Fprintln(r.Out)
		}
		r.pending = false
		r.recovering = false

	case reader.EOT:
		lx.Src.GetByte()
		return false
	}

	return true
}

// Run drives Step until the input stream is exhausted.
func (r *REPL) Run() {
	for r.Step() {
	}
}
