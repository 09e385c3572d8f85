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

package eval_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/bodza/cortex/bootstrap"
	"github.com/bodza/cortex/cell"
	"github.com/bodza/cortex/reader"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// session wraps a freshly bootstrapped Session reading from src, with its
// own output buffer for the print/read-eval-print primitives.
type session struct {
	*bootstrap.Session
	out *bytes.Buffer
}

func newSession(t *testing.T, input string) *session {
	t.Helper()
	out := &bytes.Buffer{}
	s := bootstrap.New(reader.NewByteSource(strings.NewReader(input)), out, nil)
	return &session{Session: s, out: out}
}

// evalNext reads and evaluates exactly one top-level form, skipping any
// leading end-of-line tokens (this harness doesn't drive the REPL's
// prompt/oops! state machine; it exercises Eval directly).
func (s *session) evalNext(t *testing.T) cell.Ref {
	t.Helper()
	for s.Lex.Peek() == reader.EOL {
		s.Lex.Src.GetByte()
	}
	if s.Lex.Peek() == reader.LParen {
		s.Lex.Src.GetByte()
	}
	form := reader.Read(s.Lex, s.Env)
	return s.Eval.Eval(form, s.Env)
}

// print mirrors the REPL's top-level print: it wraps r in a fresh list
// cell before printing, exactly like repl.Step's EOL case (which in turn
// matches the original's print(cons(p, nil))), so a bare List result gets
// the printer's parenthesize branch instead of its flatten branch.
func (s *session) print(r cell.Ref) string {
	s.out.Reset()
	s.Eval.Print(s.Heap.Alloc(r, cell.Nil))
	return s.out.String()
}

func TestPlus(t *testing.T) {
	s := newSession(t, "(plus 2 3)")
	v := s.evalNext(t)
	require.Equal(t, cell.Number, s.Heap.Tag(v))
	assert.Equal(t, int32(5), s.Heap.Num(v))
}

func TestFactorialRecursion(t *testing.T) {
	s := newSession(t, "(defun fact (n) (cond ((zerop n) 1) (t (times n (fact (sub1 n))))))\n(fact 5)")
	def := s.evalNext(t)
	assert.Equal(t, cell.Nil, def)

	v := s.evalNext(t)
	require.Equal(t, cell.Number, s.Heap.Tag(v))
	assert.Equal(t, int32(120), s.Heap.Num(v))
}

func TestSetqQuoteCarCdr(t *testing.T) {
	s := newSession(t, "(setq x '(a b c))\n(car x)\n(cdr x)")

	setq := s.evalNext(t)
	assert.Equal(t, "(abc)", s.print(setq))

	car := s.evalNext(t)
	assert.Equal(t, "a", s.print(car))

	cdr := s.evalNext(t)
	assert.Equal(t, "(bc)", s.print(cdr))
}

func TestProgLoop(t *testing.T) {
	src := "(prog (i s) (setq i 10) (setq s 0) loop (cond ((zerop i) (return s))) " +
		"(setq s (plus s i)) (setq i (sub1 i)) (go loop))"
	s := newSession(t, src)
	v := s.evalNext(t)
	require.Equal(t, cell.Number, s.Heap.Tag(v))
	assert.Equal(t, int32(55), s.Heap.Num(v))
}

func TestCondLessp(t *testing.T) {
	s := newSession(t, "(cond ((lessp 1 2) 'yes) (t 'no))")
	v := s.evalNext(t)
	assert.Equal(t, "yes", s.print(v))
}

func TestFuncallOnQuotedCar(t *testing.T) {
	s := newSession(t, "(funcall 'car '(1 2 3))")
	v := s.evalNext(t)
	require.Equal(t, cell.Number, s.Heap.Tag(v))
	assert.Equal(t, int32(1), s.Heap.Num(v))
}

func TestProgFallsOffEndWithoutReturn(t *testing.T) {
	s := newSession(t, "(prog (x) (setq x 1) (setq x (plus x 1)))")
	v := s.evalNext(t)
	require.Equal(t, cell.Number, s.Heap.Tag(v))
	assert.Equal(t, int32(2), s.Heap.Num(v))
}

func TestNestedProgInnerReturnOnlyUnwindsInner(t *testing.T) {
	src := "(prog (x) (setq x 1) (prog (y) (setq y 5) (return y)) (setq x (plus x 1)) (return x))"
	s := newSession(t, src)
	v := s.evalNext(t)
	require.Equal(t, cell.Number, s.Heap.Tag(v))
	assert.Equal(t, int32(2), s.Heap.Num(v))
}

func TestListFoldIsReversedLeftNested(t *testing.T) {
	s := newSession(t, "(list 1 2 3)")
	v := s.evalNext(t)
	// q = cons(nil, 1) -> cons(that, 2) -> cons(that, 3); head of the
	// outermost cell is the previous fold step, not a plain "rest" spine.
	require.Equal(t, cell.List, s.Heap.Tag(v))
	assert.Equal(t, int32(3), s.Heap.Num(s.Heap.Tail(v)))
	inner := s.Heap.Head(v)
	assert.Equal(t, int32(2), s.Heap.Num(s.Heap.Tail(inner)))
}

func TestEqOnSymbols(t *testing.T) {
	s := newSession(t, "(eq 'x 'x)")
	v := s.evalNext(t)
	assert.NotEqual(t, cell.Nil, v)
}

func TestAtomPredicate(t *testing.T) {
	s := newSession(t, "(atom 5)")
	v := s.evalNext(t)
	assert.NotEqual(t, cell.Nil, v)
}

func TestNullPredicate(t *testing.T) {
	s := newSession(t, "(null nil)")
	v := s.evalNext(t)
	assert.NotEqual(t, cell.Nil, v)
}
