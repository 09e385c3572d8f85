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

// Package cell implements the interpreter's cell heap: a growable arena of
// uniformly-typed cells addressed by index (a Ref), realizing the
// "tagged variant behind a single mutable slot" re-architecture of a
// classic Lisp cons-cell graph whose tag is rewritten in place during
// reading, binding and evaluation.
//
// There is no garbage collection. That is a deliberate property of this
// interpreter, not an oversight: cells are allocated by the reader, by
// cons, by number construction and by call-frame setup, and are never
// freed. Long-running hosts should bound a session's lifetime or set a
// capacity with WithCapacity.
package cell

import "github.com/pkg/errors"

// Ref is an index into a Heap's arena. Indices start at 0, so the zero
// value names the first cell allocated; use Nil for the empty reference.
type Ref int32

// Nil is the single value that simultaneously denotes the empty list, the
// boolean false and "no value". Every accessor on Nil returns a fixed,
// documented result instead of panicking.
const Nil Ref = -1

// cellData holds a cell's tag and payload. Tag rewriting mutates this
// struct in place; Head/Tail/Num/Name are never reassigned except through
// the Heap's mutator methods, keeping aliasing local to the arena.
type cellData struct {
	tag  Tag
	head Ref
	tail Ref
	num  int32
	name string
}

// Heap is an append-only arena of cells. It is not safe for concurrent use;
// the interpreter is single-threaded by design (see spec for the
// concurrency model this package was built against).
type Heap struct {
	cells    []cellData
	capacity int // 0 means unbounded
}

// Option configures a Heap at construction time.
type Option func(*Heap)

// WithCapacity bounds the number of cells a Heap will allocate. Once the
// bound is reached, TryAlloc returns an error and Alloc and NewNumber
// panic instead of growing forever; a zero or negative capacity means
// unbounded (the default).
func WithCapacity(n int) Option {
	return func(h *Heap) {
		if n > 0 {
			h.capacity = n
		}
	}
}

// NewHeap creates an empty heap.
func NewHeap(opts ...Option) *Heap {
	h := &Heap{}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Len returns the number of cells allocated so far.
func (h *Heap) Len() int { return len(h.cells) }

// Cap returns the configured capacity, or 0 if unbounded.
func (h *Heap) Cap() int { return h.capacity }

func (h *Heap) alloc(d cellData) (Ref, error) {
	if h.capacity > 0 && len(h.cells) >= h.capacity {
		return Nil, errors.Errorf("cell heap exhausted: capacity %d reached", h.capacity)
	}
	h.cells = append(h.cells, d)
	return Ref(len(h.cells) - 1), nil
}

// Alloc allocates a fresh List cell with the given Head and Tail.
func (h *Heap) Alloc(head, tail Ref) Ref {
	r, err := h.alloc(cellData{tag: List, head: head, tail: tail})
	if err != nil {
		// A capacity-bounded heap that runs out mid-evaluation has no
		// sane recovery within the cell-access model (every caller
		// assumes Alloc succeeds, just like cons never fails in the
		// source). Surface it loudly rather than silently corrupt the
		// cell graph.
		panic(err)
	}
	return r
}

// TryAlloc is Alloc's error-returning counterpart, for hosts that want to
// enforce WithCapacity without panicking.
func (h *Heap) TryAlloc(head, tail Ref) (Ref, error) {
	return h.alloc(cellData{tag: List, head: head, tail: tail})
}

// NewNumber allocates a Number cell.
func (h *Heap) NewNumber(n int32) Ref {
	r, err := h.alloc(cellData{tag: Number, num: n})
	if err != nil {
		panic(err)
	}
	return r
}

func (h *Heap) cell(r Ref) *cellData {
	if r == Nil {
		return nil
	}
	return &h.cells[r]
}

// Tag returns r's tag. Nil reports List, matching the source's treatment
// of the empty reference as an ordinary (empty) list.
func (h *Heap) Tag(r Ref) Tag {
	if c := h.cell(r); c != nil {
		return c.tag
	}
	return List
}

// SetTag rewrites r's tag in place. This is how a freshly interned
// identifier becomes a Var, a Var becomes a Fuser, and a statement's head
// becomes a Labl.
func (h *Heap) SetTag(r Ref, t Tag) {
	if c := h.cell(r); c != nil {
		c.tag = t
	}
}

// Head returns r's head (car). Nil's head is Nil.
func (h *Heap) Head(r Ref) Ref {
	if c := h.cell(r); c != nil {
		return c.head
	}
	return Nil
}

// Tail returns r's tail (cdr). Nil's tail is Nil.
func (h *Heap) Tail(r Ref) Ref {
	if c := h.cell(r); c != nil {
		return c.tail
	}
	return Nil
}

// SetHead mutates r's head in place.
func (h *Heap) SetHead(r, v Ref) {
	if c := h.cell(r); c != nil {
		c.head = v
	}
}

// SetTail mutates r's tail in place.
func (h *Heap) SetTail(r, v Ref) {
	if c := h.cell(r); c != nil {
		c.tail = v
	}
}

// Num returns r's numeric payload. It is only meaningful when Tag(r) ==
// Number; on any other cell (including Nil) the result is undefined in the
// same sense the source's union access is undefined, and this
// implementation returns 0.
func (h *Heap) Num(r Ref) int32 {
	if c := h.cell(r); c != nil {
		return c.num
	}
	return 0
}

// Name returns r's interned name. It is only meaningful on Var and Symbol
// cells; Nil's name is "".
func (h *Heap) Name(r Ref) string {
	if c := h.cell(r); c != nil {
		return c.name
	}
	return ""
}

// SetName sets r's interned name, used once when a binding is declared.
func (h *Heap) SetName(r Ref, name string) {
	if c := h.cell(r); c != nil {
		c.name = name
	}
}
