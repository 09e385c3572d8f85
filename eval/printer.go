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
	"fmt"
	"io"

	"github.com/bodza/cortex/cell"
	"github.com/fatih/color"
)

var printErrGlyph = color.New(color.FgRed).SprintFunc()

// Print writes p's canonical text form to ev.Out. It walks the same cell
// dispatch Eval uses rather than maintaining a parallel representation:
// Number and Symbol cells print directly, a List whose head is itself a
// List is parenthesized recursively, anything else flattened, and
// whatever doesn't match one of those shapes prints as a single "?".
func (ev *Evaluator) Print(p cell.Ref) {
	ev.print(ev.Out, p)
}

func (ev *Evaluator) print(w io.Writer, p cell.Ref) {
	if p == cell.Nil {
		return
	}
	h := ev.Heap

	switch h.Tag(p) {
	case cell.Number:
		fmt.Fprintf(w, "%d", h.Num(p))
	case cell.Symbol:
		io.WriteString(w, h.Name(h.Head(p)))
	case cell.List:
		if h.Tag(h.Head(p)) == cell.List {
			io.WriteString(w, "(")
			ev.print(w, h.Head(p))
			io.WriteString(w, ")")
			ev.print(w, h.Tail(p))
			return
		}
		ev.print(w, h.Head(p))
		ev.print(w, h.Tail(p))
	default:
		io.WriteString(w, printErrGlyph("?"))
	}
}
