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

// Package eval implements the tree-walking evaluator: the dispatch table
// for every special form and primitive, the prog sub-language executor
// (prog.go) and the canonical-text printer (printer.go).
//
// Eval never returns a Go error. Every error kind the language defines
// (lex error, unexpected EOF, unbound name, type mismatch) degrades to
// cell.Nil by design, matching the teacher's own "no exception" policy for
// VM execution errors that aren't I/O failures.
package eval

import (
	"io"

	"github.com/bodza/cortex/cell"
	"github.com/bodza/cortex/env"
	"github.com/bodza/cortex/reader"
	"github.com/hashicorp/go-hclog"
)

// HostPrimitive is a primitive contributed by the host rather than the
// core dispatch table: a peripheral operation (analog input, a UART
// bridge, ...) that wants to appear as an ordinary Lisp name. See
// bootstrap.Session.RegisterHost for how these are declared alongside the
// core set.
type HostPrimitive struct {
	Name string
	Tag  cell.Tag
	Eval func(ev *Evaluator, form cell.Ref, e *env.Env) cell.Ref
}

// Evaluator holds everything Eval needs across a session: the cell heap,
// the global environment new bindings are declared into, the reader used
// by the (read) primitive, the output stream (print) and a logger for
// dispatch tracing.
type Evaluator struct {
	Heap      *cell.Heap
	GlobalEnv *env.Env
	Lexer     *reader.Lexer
	Out       io.Writer
	Log       hclog.Logger

	// True is the singleton truth sentinel: a Symbol cell bound to "t".
	True cell.Ref

	// progActive is the ambient flag RETURN clears to unwind the
	// innermost enclosing prog. Every prog resets it to true
	// unconditionally on exit (see EvalProg), so a return never escapes
	// past the prog that contains it.
	progActive bool

	host map[cell.Tag]HostPrimitive
}

// New creates an Evaluator. Callers normally obtain one fully wired (global
// env, True sentinel, primitives declared) from bootstrap.New rather
// than constructing it directly.
func New(h *cell.Heap, global *env.Env, lx *reader.Lexer, out io.Writer, log hclog.Logger) *Evaluator {
	if log == nil {
		log = hclog.NewNullLogger()
	}
	return &Evaluator{
		Heap:      h,
		GlobalEnv: global,
		Lexer:     lx,
		Out:       out,
		Log:       log,
		True:      cell.Nil,
		host:      make(map[cell.Tag]HostPrimitive),
	}
}

// RegisterHost wires a host-supplied primitive into the dispatch table.
// The caller is responsible for also declaring hp.Name in the environment
// with tag hp.Tag (bootstrap.Session.RegisterHost does both together).
func (ev *Evaluator) RegisterHost(hp HostPrimitive) {
	ev.host[hp.Tag] = hp
}

// Eval evaluates x in environment e and returns its value. See package
// doc: malformed or ill-typed input degrades to cell.Nil rather than
// panicking or returning an error.
func (ev *Evaluator) Eval(x cell.Ref, e *env.Env) cell.Ref {
	if x == cell.Nil {
		return cell.Nil
	}
	h := ev.Heap

	switch h.Tag(x) {
	case cell.Var:
		return ev.lookupValue(h.Head(x), e)
	case cell.Number:
		return x
	case cell.Labl:
		return cell.Nil
	}

	op := h.Tag(h.Head(x))
	ev.Log.Trace("dispatch", "op", op.String())

	switch op {
	case cell.T:
		return ev.True
	case cell.Nil:
		return cell.Nil

	case cell.Quote:
		form := h.Head(h.Tail(x)) // car(cdr(x))
		ev.varToAtom(form)
		return form

	case cell.Car:
		return h.Head(ev.Eval(h.Tail(x), e))
	case cell.Cdr:
		return h.Tail(ev.Eval(h.Tail(x), e))

	case cell.Atom:
		return ev.atom(ev.Eval(h.Tail(x), e))

	case cell.Eq:
		a := ev.Eval(h.Head(h.Tail(x)), e)
		b := ev.Eval(h.Tail(h.Tail(x)), e)
		return ev.eq(a, b)
	case cell.Nullp:
		v := ev.Eval(h.Head(h.Tail(x)), e)
		return ev.eq(v, cell.Nil)

	case cell.Cons:
		a := ev.Eval(h.Head(h.Tail(x)), e)
		b := ev.Eval(h.Head(h.Tail(h.Tail(x))), e)
		return h.Alloc(a, b)

	case cell.ListFn:
		return ev.foldList(x)

	case cell.Cond:
		return ev.evalCond(h.Tail(x), e)

	case cell.Setq:
		v := ev.Eval(h.Tail(h.Tail(x)), e)
		target := h.Head(h.Head(h.Tail(x)))
		name := h.Name(target)
		b := e.Lookup(name)
		e.SetValue(b, v)
		return v

	case cell.Defun:
		nameAtom := h.Head(h.Tail(x))
		binding := h.Head(nameAtom)
		h.SetTag(binding, cell.Fuser)
		h.SetTail(binding, h.Tail(h.Tail(x))) // (params . body)
		ev.varToUser(h.Tail(h.Tail(h.Tail(x))))
		return cell.Nil

	case cell.Fuser:
		return ev.applyFuser(x, e)

	case cell.Funcall, cell.Apply:
		return ev.applyFuncall(x, e)

	case cell.Eval:
		v := ev.Eval(h.Tail(x), e)
		if h.Tag(v) == cell.Symbol {
			return ev.lookupValue(h.Head(v), e)
		}
		return ev.Eval(v, e)

	case cell.Print:
		v := ev.Eval(h.Head(h.Tail(x)), e)
		ev.Print(v)
		io.WriteString(ev.Out, "\n")
		return cell.Nil

	case cell.Read:
		return reader.Read(ev.Lexer, ev.GlobalEnv)

	case cell.And:
		return ev.and(x, e)
	case cell.Or:
		return ev.or(x, e)
	case cell.Not:
		return ev.not(x, e)

	case cell.Plus, cell.Diff, cell.Times, cell.Quot, cell.Lessp, cell.Greaterp:
		a := ev.Eval(h.Head(h.Tail(x)), e)
		b := ev.Eval(h.Tail(h.Tail(x)), e)
		return ev.arith(op, a, b)
	case cell.Add1, cell.Sub1:
		a := ev.Eval(h.Head(h.Tail(x)), e)
		return ev.arith(op, a, cell.Nil)

	case cell.Zerop:
		v := ev.Eval(h.Head(h.Tail(x)), e)
		if h.Num(v) == 0 {
			return ev.True
		}
		return cell.Nil
	case cell.Numberp:
		v := ev.Eval(h.Head(h.Tail(x)), e)
		if h.Tag(v) == cell.Number {
			return ev.True
		}
		return cell.Nil

	case cell.Prog:
		return ev.EvalProg(x, e)
	case cell.Go:
		lblAtom := h.Head(h.Tail(x))
		binding := h.Head(lblAtom)
		return h.Tail(binding)
	case cell.Return:
		ev.progActive = false
		return ev.Eval(h.Tail(x), e)

	case cell.List:
		if h.Tail(x) == cell.Nil {
			return ev.Eval(h.Head(x), e)
		}
		return h.Alloc(ev.Eval(h.Head(x), e), ev.Eval(h.Tail(x), e))
	case cell.Var:
		return ev.lookupValue(h.Head(h.Head(x)), e)
	case cell.Number:
		return h.Head(x)

	default:
		if prim, ok := ev.host[op]; ok {
			return prim.Eval(ev, x, e)
		}
		return cell.Nil
	}
}

// lookupValue resolves binding's name against e (never trusting binding's
// own stored value pointer directly) and returns the current value. This
// is deliberate: the same source-level variable reference must re-resolve
// by name every time it's evaluated so that a fresh call frame's parameter
// binding correctly shadows an outer one of the same name.
func (ev *Evaluator) lookupValue(binding cell.Ref, e *env.Env) cell.Ref {
	name := ev.Heap.Name(binding)
	b := e.Lookup(name)
	return e.Value(b)
}
