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

package reader

import (
	"github.com/bodza/cortex/cell"
	"github.com/bodza/cortex/env"
)

// Read parses one cell structure from lx, consulting and possibly
// extending e's environment as it encounters identifiers. It is mutually
// recursive with itself: each call reads exactly one "slot" of the
// enclosing list and recurses for the rest. A call made just after an
// opening paren has been consumed (as the REPL does) reads the rest of that
// list up to its closing paren. A call that meets the opening paren itself
// returns a cell whose Head is that list and whose Tail is whatever follows
// it, up to the next closing paren, newline or end of input.
//
// Read never returns an error: malformed input degrades to cell.Nil, the
// policy spec.md mandates for "unexpected end of input mid-form" and
// stray/garbage tokens alike. Callers that need to detect and report a
// stray token (the REPL does) inspect the Kind from Peek before calling
// Read, exactly as the original reader's caller does.
func Read(lx *Lexer, e *env.Env) cell.Ref {
	h := e.Heap

	switch lx.Peek() {
	case LParen:
		lx.Src.GetByte() // consume '(' or '['
		inner := Read(lx, e)
		rest := Read(lx, e)
		p := h.Alloc(inner, rest)
		h.SetTag(p, cell.List)
		return p

	case Alpha:
		atom := ReadSymbol(lx.Src, e)
		return h.Alloc(atom, Read(lx, e))

	case Digit:
		num := ReadNumber(lx.Src, h)
		return h.Alloc(num, Read(lx, e))

	case Quoted:
		quoteAtom := ReadSymbol(lx.Src, e) // a bare "'" names the quote primitive
		next := Read(lx, e)
		xAtom := h.Head(next)
		restAfterX := h.Tail(next)
		quotedForm := h.Alloc(quoteAtom, h.Alloc(xAtom, cell.Nil))
		return h.Alloc(quotedForm, restAfterX)

	case RParen:
		lx.Src.GetByte() // consume ')' or ']', closing the current list
		return cell.Nil

	default: // EOL, EOT, ERR
		lx.Src.GetByte()
		return cell.Nil
	}
}
