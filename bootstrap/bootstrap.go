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

// Package bootstrap populates a fresh environment with every primitive
// name and alias, and installs the truth sentinel, before a session's
// reader or evaluator ever runs. It also exposes Session, a small struct
// wiring a Heap, Env, Lexer and Evaluator together, and the seam host
// programs use to register their own primitives alongside the core set.
package bootstrap

import (
	"io"

	"github.com/bodza/cortex/cell"
	"github.com/bodza/cortex/env"
	"github.com/bodza/cortex/eval"
	"github.com/bodza/cortex/reader"
	"github.com/hashicorp/go-hclog"
)

// primitive pairs a canonical name with its operator tag. Aliases share a
// tag with their canonical spelling: declaring both just means the same
// tag reaches the environment under two names.
type primitive struct {
	name string
	tag  cell.Tag
}

// core lists every primitive and alias named in spec.md §4.9, in
// declaration order. Order only matters for Lookup's first-match
// semantics when a name is declared twice, which never happens here:
// every name below is unique.
var core = []primitive{
	{"t", cell.T},
	{"nil", cell.Nil},
	{"quote", cell.Quote},
	{"'", cell.Quote},
	{"cond", cell.Cond},
	{"defun", cell.Defun},
	{"defn", cell.Defun},
	{"setq", cell.Setq},
	{"null", cell.Nullp},
	{"nil?", cell.Nullp},
	{"funcall", cell.Funcall},
	{"apply", cell.Apply},
	{"prog", cell.Prog},
	{"go", cell.Go},
	{"return", cell.Return},
	{"list", cell.ListFn},
	{"cons", cell.Cons},
	{"car", cell.Car},
	{"first", cell.Car},
	{"cdr", cell.Cdr},
	{"next", cell.Cdr},
	{"read", cell.Read},
	{"eval", cell.Eval},
	{"print", cell.Print},
	{"atom", cell.Atom},
	{"eq", cell.Eq},
	{"=", cell.Eq},
	{"and", cell.And},
	{"or", cell.Or},
	{"not", cell.Not},
	{"add1", cell.Add1},
	{"inc", cell.Add1},
	{"sub1", cell.Sub1},
	{"dec", cell.Sub1},
	{"plus", cell.Plus},
	{"+", cell.Plus},
	{"diff", cell.Diff},
	{"-", cell.Diff},
	{"times", cell.Times},
	{"*", cell.Times},
	{"quot", cell.Quot},
	{"/", cell.Quot},
	{"lessp", cell.Lessp},
	{"<", cell.Lessp},
	{"greaterp", cell.Greaterp},
	{">", cell.Greaterp},
	{"zerop", cell.Zerop},
	{"zero?", cell.Zerop},
	{"numberp", cell.Numberp},
	{"number?", cell.Numberp},
}

// Session bundles everything a REPL or a host embedding needs to start
// reading and evaluating forms.
type Session struct {
	Heap *cell.Heap
	Env  *env.Env
	Lex  *reader.Lexer
	Eval *eval.Evaluator
}

// New builds a fresh Session: an empty heap, a global environment seeded
// with every core primitive and alias plus the truth sentinel, a lexer
// reading from src, and an Evaluator writing to out.
func New(src reader.ByteSource, out io.Writer, log hclog.Logger, opts ...cell.Option) *Session {
	h := cell.NewHeap(opts...)
	e := env.New(h)

	for _, p := range core {
		b := e.Declare(p.name)
		h.SetTag(b, p.tag)
	}

	tBinding := e.Lookup("t")
	truth := h.Alloc(tBinding, cell.Nil)
	h.SetTag(truth, cell.Symbol)

	lx := reader.NewLexer(src)
	ev := eval.New(h, e, lx, out, log)
	ev.True = truth

	return &Session{Heap: h, Env: e, Lex: lx, Eval: ev}
}

// RegisterHost declares name in the session's global environment with tag
// hp.Tag and wires hp into the evaluator's host dispatch table, so (name
// args...) reaches hp.Eval exactly like a core primitive. See spec.md §6:
// this is the seam peripheral drivers (analog capture, a UART bridge) use
// without being part of the core dispatch table.
func (s *Session) RegisterHost(hp eval.HostPrimitive) {
	b := s.Env.Declare(hp.Name)
	s.Heap.SetTag(b, hp.Tag)
	s.Eval.RegisterHost(hp)
}
