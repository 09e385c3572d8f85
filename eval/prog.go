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

// EvalProg runs a (prog (locals...) stmt...) form: it binds every local to
// cell.Nil, rewrites any bare label statement to a Labl cell pointing at
// its continuation, then walks the statement spine evaluating one
// statement per step. A GO jumps the cursor to the label's recorded
// continuation; a RETURN clears the active flag, which ends the loop on
// the next check. The flag is unconditionally set back to true on exit,
// so a RETURN only ever unwinds the innermost enclosing prog: a nested
// prog resets the flag again before its own loop next inspects it.
func (ev *Evaluator) EvalProg(p cell.Ref, e *env.Env) cell.Ref {
	h := ev.Heap

	params := h.Head(h.Tail(p))
	frame := ev.pairArgs(params, nil, e, true)

	stmts := h.Tail(h.Tail(p))
	ev.findLabels(stmts)

	ev.progActive = true
	var x cell.Ref = cell.Nil
	for cur := stmts; cur != cell.Nil && ev.progActive; {
		form := h.Head(cur)
		x = ev.Eval(form, frame)
		if h.Tag(h.Head(form)) == cell.Go {
			cur = x
		} else {
			cur = h.Tail(cur)
		}
	}
	ev.progActive = true

	return x
}

// findLabels scans a prog's statement spine once, up front, looking for
// bare identifier statements (a label declaration rather than a call or
// var reference): a statement whose own cell still carries tag Var. Each
// one found is retagged Labl and its binding's tail is pointed at the
// statement list immediately following it, so GO can resolve the jump in
// one step without re-scanning.
func (ev *Evaluator) findLabels(stmts cell.Ref) {
	h := ev.Heap
	for p := stmts; p != cell.Nil; p = h.Tail(p) {
		atomWrapper := h.Head(p)
		if h.Tag(atomWrapper) == cell.Var {
			h.SetTag(atomWrapper, cell.Labl)
			binding := h.Head(atomWrapper)
			h.SetTail(binding, h.Tail(p))
		}
	}
}
