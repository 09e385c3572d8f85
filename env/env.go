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

// Package env implements the interpreter's environment: a singly-linked
// chain of Var bindings, threaded through the shared cell heap.
//
// An environment chain cell is an ordinary List cell whose Head is a
// binding (a Var cell carrying a name and, in its Tail, the binding's
// current value) and whose Tail is the rest of the chain. Declaring a name
// prepends a fresh binding to the front of the chain; looking a name up
// walks the chain head-first and returns the first match.
package env

import "github.com/bodza/cortex/cell"

// Env is a mutable environment chain. Use New for an empty environment;
// Root is the chain's head cell (cell.Nil when empty).
type Env struct {
	Heap *cell.Heap
	Root cell.Ref
}

// New creates an empty environment backed by h.
func New(h *cell.Heap) *Env {
	return &Env{Heap: h, Root: cell.Nil}
}

// Child returns a new Env sharing the same heap but rooted at a different
// chain cell. Function application and prog entry use this to layer a
// fresh frame of parameter bindings in front of the caller's environment
// without disturbing it.
func (e *Env) Child(root cell.Ref) *Env {
	return &Env{Heap: e.Heap, Root: root}
}

// Declare appends a fresh Var binding named name to the front of e and
// returns the binding cell. The binding's initial value is cell.Nil and
// its tag is cell.Var; callers that intend to install a primitive
// immediately rewrite the tag (see bootstrap.New).
func (e *Env) Declare(name string) cell.Ref {
	binding := e.Heap.Alloc(cell.Nil, cell.Nil)
	e.Heap.SetTag(binding, cell.Var)
	e.Heap.SetName(binding, name)
	e.Root = e.Heap.Alloc(binding, e.Root)
	return binding
}

// Lookup walks e's chain head-first and returns the first binding whose
// name equals name, or cell.Nil if there is none. Name equality is
// byte-exact, matching the source's strcmp-based lookup.
func (e *Env) Lookup(name string) cell.Ref {
	h := e.Heap
	for p := e.Root; p != cell.Nil; p = h.Tail(p) {
		b := h.Head(p)
		if h.Name(b) == name {
			return b
		}
	}
	return cell.Nil
}

// Value returns binding's current value (its Tail). Valid only on Var and
// Labl cells (a Labl's Tail is the statement list it points to, which eval
// also treats as the "current value" of a label reference).
func (e *Env) Value(binding cell.Ref) cell.Ref {
	return e.Heap.Tail(binding)
}

// SetValue rebinds binding's Tail to v.
func (e *Env) SetValue(binding, v cell.Ref) {
	e.Heap.SetTail(binding, v)
}

// Bind prepends a single fresh binding (name, value) to e's chain and
// returns the environment extended by it. Used to build function-call and
// prog parameter frames one parameter at a time.
func (e *Env) Bind(name string, value cell.Ref) *Env {
	h := e.Heap
	binding := h.Alloc(cell.Nil, value)
	h.SetTag(binding, cell.Var)
	h.SetName(binding, name)
	return e.Child(h.Alloc(binding, e.Root))
}
