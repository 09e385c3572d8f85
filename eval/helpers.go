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

package eval

import (
	"github.com/bodza/cortex/cell"
	"github.com/bodza/cortex/env"
)

// eq reports structural identity in the restricted sense this dialect
// uses it: two empty references are equal, and two Symbol cells are equal
// when they share the same environment entry. Anything else (including
// two Number cells with the same value, or two List cells with the same
// shape) is not eq.
func (ev *Evaluator) eq(x, y cell.Ref) cell.Ref {
	h := ev.Heap
	if x == cell.Nil || y == cell.Nil {
		if x == y {
			return ev.True
		}
		return cell.Nil
	}
	if h.Tag(x) == cell.Symbol && h.Tag(y) == cell.Symbol && h.Head(x) == h.Head(y) {
		return ev.True
	}
	return cell.Nil
}

// atom reports whether v is a Number or Symbol (or empty); anything else
// (a List, a Var reference, a callable) is not an atom.
func (ev *Evaluator) atom(v cell.Ref) cell.Ref {
	if v == cell.Nil {
		return ev.True
	}
	switch ev.Heap.Tag(v) {
	case cell.Number, cell.Symbol:
		return ev.True
	}
	return cell.Nil
}

// arith evaluates one of the numeric primitives. add1/sub1 pass cell.Nil
// for y, which Num() reads back as 0.
func (ev *Evaluator) arith(op cell.Tag, x, y cell.Ref) cell.Ref {
	h := ev.Heap
	switch op {
	case cell.Lessp:
		if h.Num(x) < h.Num(y) {
			return ev.True
		}
		return cell.Nil
	case cell.Greaterp:
		if h.Num(x) > h.Num(y) {
			return ev.True
		}
		return cell.Nil
	}
	var n int32
	switch op {
	case cell.Plus:
		n = h.Num(x) + h.Num(y)
	case cell.Diff:
		n = h.Num(x) - h.Num(y)
	case cell.Times:
		n = h.Num(x) * h.Num(y)
	case cell.Quot:
		if h.Num(y) == 0 {
			return cell.Nil
		}
		n = h.Num(x) / h.Num(y)
	case cell.Add1:
		n = h.Num(x) + 1
	case cell.Sub1:
		n = h.Num(x) - 1
	}
	return h.NewNumber(n)
}

// foldList builds the LIST primitive's result: one cons per remaining
// argument, folded left-to-right so the result comes out reversed
// relative to the argument order. This is the shape the bootstrap source
// builds; it is not a bug to fix.
func (ev *Evaluator) foldList(x cell.Ref) cell.Ref {
	h := ev.Heap
	q := cell.Nil
	for p := h.Tail(x); p != cell.Nil; p = h.Tail(p) {
		q = h.Alloc(q, h.Head(p))
	}
	return q
}

// evalCond walks a COND's clause spine, evaluating each test in turn and
// returning the value of the first clause whose test is non-empty.
func (ev *Evaluator) evalCond(clauses cell.Ref, e *env.Env) cell.Ref {
	h := ev.Heap
	for p := clauses; p != cell.Nil; p = h.Tail(p) {
		clause := h.Head(p)
		if ev.Eval(h.Head(clause), e) != cell.Nil {
			return ev.Eval(h.Head(h.Tail(clause)), e)
		}
	}
	return cell.Nil
}

// and and or fold their operand spine, evaluating every form in a fresh
// empty environment rather than the caller's. That is the behaviour the
// bootstrap source implements (eval(car(p), nil) rather than env): a bare
// variable reference inside an and/or operand will not resolve. Preserved
// as observed rather than "fixed".
func (ev *Evaluator) and(x cell.Ref, e *env.Env) cell.Ref {
	h := ev.Heap
	empty := e.Child(cell.Nil)
	for p := h.Tail(x); p != cell.Nil; p = h.Tail(p) {
		if ev.Eval(h.Head(p), empty) == cell.Nil {
			return cell.Nil
		}
	}
	return ev.True
}

func (ev *Evaluator) or(x cell.Ref, e *env.Env) cell.Ref {
	h := ev.Heap
	empty := e.Child(cell.Nil)
	for p := h.Tail(x); p != cell.Nil; p = h.Tail(p) {
		if ev.Eval(h.Head(p), empty) != cell.Nil {
			return ev.True
		}
	}
	return cell.Nil
}

// not evaluates the tail of the form, not the form's single argument
// slot, and does so in an empty environment like and/or. Both deviations
// are deliberate carry-overs from the source; see DESIGN.md.
func (ev *Evaluator) not(x cell.Ref, e *env.Env) cell.Ref {
	empty := e.Child(cell.Nil)
	if ev.Eval(ev.Heap.Tail(x), empty) == cell.Nil {
		return ev.True
	}
	return cell.Nil
}

// varToAtom walks p, converting in place every cell that is neither a
// List, a Number nor callable, and every Fuser cell, to tag Symbol. Called
// by QUOTE so a quoted function name can be printed and compared without
// being mistaken for something invokable, while a quoted reference to a
// core primitive (whose own tag already doubles as its "name") and a
// quoted number are left alone.
func (ev *Evaluator) varToAtom(p cell.Ref) {
	if p == cell.Nil {
		return
	}
	h := ev.Heap
	t := h.Tag(p)
	if t == cell.Number {
		return
	}
	if (t != cell.List && !cell.IsCallable(t)) || t == cell.Fuser {
		h.SetTag(p, cell.Symbol)
		return
	}
	ev.varToAtom(h.Head(p))
	ev.varToAtom(h.Tail(p))
}

// varToUser walks a freshly-defined function's body, re-tagging any Var
// reference whose binding now carries tag Fuser (i.e. any occurrence of
// the function's own name, following defun's rewrite of its binding) to
// Fuser as well, so a self-recursive call dispatches correctly.
func (ev *Evaluator) varToUser(p cell.Ref) {
	if p == cell.Nil {
		return
	}
	h := ev.Heap
	switch h.Tag(p) {
	case cell.Var:
		if h.Tag(h.Head(p)) == cell.Fuser {
			h.SetTag(p, cell.Fuser)
		}
	case cell.List:
		ev.varToUser(h.Head(p))
		ev.varToUser(h.Tail(p))
	}
}

// evalArgs evaluates each element of arglist in e, left to right,
// collecting the results.
func (ev *Evaluator) evalArgs(arglist cell.Ref, e *env.Env) []cell.Ref {
	var out []cell.Ref
	h := ev.Heap
	for p := arglist; p != cell.Nil; p = h.Tail(p) {
		out = append(out, ev.Eval(h.Head(p), e))
	}
	return out
}

// pairArgs layers one fresh binding per parameter name in front of base,
// in order. When prog is true every binding gets cell.Nil regardless of
// args (prog locals have no initializer); otherwise values are taken from
// args positionally, with cell.Nil once args runs short. Extra args beyond
// the parameter list are silently ignored, matching the source.
func (ev *Evaluator) pairArgs(params cell.Ref, args []cell.Ref, base *env.Env, prog bool) *env.Env {
	h := ev.Heap
	e := base
	i := 0
	for p := params; p != cell.Nil; p = h.Tail(p) {
		paramAtom := h.Head(p)
		name := h.Name(h.Head(paramAtom))
		var val cell.Ref
		if !prog && i < len(args) {
			val = args[i]
		} else {
			val = cell.Nil
		}
		e = e.Bind(name, val)
		i++
	}
	return e
}

// applyFuser calls a user-defined function: it evaluates every argument in
// the caller's environment, binds them against the function's parameter
// list on top of the caller's environment (there are no closures; a
// called function sees the caller's bindings, not its definition site's),
// and evaluates only the first body form.
func (ev *Evaluator) applyFuser(x cell.Ref, e *env.Env) cell.Ref {
	h := ev.Heap
	headAtom := h.Head(x)
	binding := h.Head(headAtom)
	paramsAndBody := h.Tail(binding)
	params := h.Head(paramsAndBody)
	body := h.Tail(paramsAndBody)
	args := ev.evalArgs(h.Tail(x), e)
	callEnv := ev.pairArgs(params, args, e, false)
	return ev.Eval(h.Head(body), callEnv)
}

// applyFuncall implements both FUNCALL and APPLY (the source gives them
// identical bodies): evaluate the designator, confirm its binding is
// callable, splice it onto the remaining argument spine as if it had been
// written literally as the operator, and evaluate that synthetic form.
// A Fuser designator is temporarily retagged so dispatch recognises it;
// the tag is always restored to its pre-call value afterwards.
func (ev *Evaluator) applyFuncall(x cell.Ref, e *env.Env) cell.Ref {
	h := ev.Heap
	fn := ev.Eval(h.Head(h.Tail(x)), e)
	binding := h.Head(fn)
	t := h.Tag(binding)
	if !cell.IsCallable(t) {
		return cell.Nil
	}
	form := h.Alloc(fn, h.Tail(h.Tail(x)))
	orig := h.Tag(fn)
	if t == cell.Fuser {
		h.SetTag(fn, cell.Fuser)
	}
	result := ev.Eval(form, e)
	h.SetTag(fn, orig)
	return result
}
