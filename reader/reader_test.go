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
	"strings"
	"testing"

	"github.com/bodza/cortex/cell"
	"github.com/bodza/cortex/env"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEnv() (*cell.Heap, *env.Env) {
	h := cell.NewHeap()
	return h, env.New(h)
}

func TestLexerPeekClassifiesAndSkipsWhitespace(t *testing.T) {
	lx := NewLexer(NewByteSource(strings.NewReader("  ,\t(a 1)\n")))
	assert.Equal(t, LParen, lx.Peek())
	assert.Equal(t, LParen, lx.Peek(), "Peek must not consume")
}

func TestReadNumber(t *testing.T) {
	h, _ := newEnv()
	src := NewByteSource(strings.NewReader("123abc"))
	n := ReadNumber(src, h)
	assert.Equal(t, cell.Number, h.Tag(n))
	assert.Equal(t, int32(123), h.Num(n))

	b, err := src.GetByte()
	require.NoError(t, err)
	assert.Equal(t, byte('a'), b, "first non-digit must be pushed back")
}

func TestReadSymbolInternsOnce(t *testing.T) {
	h, e := newEnv()
	src := NewByteSource(strings.NewReader("foo foo"))

	w1 := ReadSymbol(src, e)
	src.GetByte() // consume the space
	w2 := ReadSymbol(src, e)

	assert.Equal(t, h.Head(w1), h.Head(w2), "same name must resolve to the same binding")
}

func TestReadSymbolBareApostropheIsOneByte(t *testing.T) {
	h, e := newEnv()
	e.Declare("'")
	h.SetTag(e.Lookup("'"), cell.Quote)

	src := NewByteSource(strings.NewReader("'("))
	w := ReadSymbol(src, e)
	assert.Equal(t, cell.Quote, h.Tag(w))

	b, err := src.GetByte()
	require.NoError(t, err)
	assert.Equal(t, byte('('), b)
}

func TestReadSimpleList(t *testing.T) {
	h, e := newEnv()
	lx := NewLexer(NewByteSource(strings.NewReader("(1 2 3)")))

	outer := Read(lx, e)
	require.Equal(t, cell.List, h.Tag(outer))
	// The opening paren's cell holds the list itself in its Head.
	form := h.Head(outer)

	first := h.Head(form)
	require.Equal(t, cell.Number, h.Tag(first))
	assert.Equal(t, int32(1), h.Num(first))

	second := h.Head(h.Tail(form))
	assert.Equal(t, int32(2), h.Num(second))

	third := h.Head(h.Tail(h.Tail(form)))
	assert.Equal(t, int32(3), h.Num(third))

	assert.Equal(t, cell.Nil, h.Tail(h.Tail(h.Tail(form))))
}

func TestReadNestedList(t *testing.T) {
	h, e := newEnv()
	lx := NewLexer(NewByteSource(strings.NewReader("((a) b)")))

	outer := Read(lx, e)
	require.Equal(t, cell.List, h.Tag(outer))
	// The opening paren's cell holds the list itself in its Head.
	form := h.Head(outer)
	require.Equal(t, cell.List, h.Tag(form))

	inner := h.Head(form)
	require.Equal(t, cell.List, h.Tag(inner))

	aAtom := h.Head(inner)
	assert.Equal(t, "a", h.Name(h.Head(aAtom)))

	bAtom := h.Head(h.Tail(form))
	assert.Equal(t, "b", h.Name(h.Head(bAtom)))
}

func TestReadQuotedForm(t *testing.T) {
	h, e := newEnv()
	e.Declare("'")
	h.SetTag(e.Lookup("'"), cell.Quote)

	lx := NewLexer(NewByteSource(strings.NewReader("'a")))
	form := Read(lx, e)

	// form == ((quote a))
	quotedForm := h.Head(form)
	quoteAtom := h.Head(quotedForm)
	assert.Equal(t, cell.Quote, h.Tag(quoteAtom))

	xAtom := h.Head(h.Tail(quotedForm))
	assert.Equal(t, "a", h.Name(h.Head(xAtom)))
}

func TestAcceptsBracketDelimiters(t *testing.T) {
	h, e := newEnv()
	lx := NewLexer(NewByteSource(strings.NewReader("[1 2]")))
	outer := Read(lx, e)
	require.Equal(t, cell.List, h.Tag(outer))
	form := h.Head(outer)
	assert.Equal(t, int32(1), h.Num(h.Head(form)))
}
