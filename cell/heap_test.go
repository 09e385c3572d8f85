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

package cell

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllocAndAccessors(t *testing.T) {
	h := NewHeap()
	a := h.NewNumber(7)
	b := h.NewNumber(9)
	p := h.Alloc(a, b)

	assert.Equal(t, List, h.Tag(p))
	assert.Equal(t, a, h.Head(p))
	assert.Equal(t, b, h.Tail(p))
	assert.Equal(t, int32(7), h.Num(a))
	assert.Equal(t, int32(9), h.Num(b))
	assert.Equal(t, 3, h.Len())
}

func TestNilAccessorsDegradeGracefully(t *testing.T) {
	h := NewHeap()

	assert.Equal(t, List, h.Tag(Nil))
	assert.Equal(t, Nil, h.Head(Nil))
	assert.Equal(t, Nil, h.Tail(Nil))
	assert.Equal(t, int32(0), h.Num(Nil))
	assert.Equal(t, "", h.Name(Nil))

	// Mutators on Nil must not panic; they are silent no-ops.
	h.SetTag(Nil, Number)
	h.SetHead(Nil, Nil)
	h.SetTail(Nil, Nil)
	h.SetName(Nil, "x")
}

func TestSetTagRewritesInPlace(t *testing.T) {
	h := NewHeap()
	p := h.Alloc(Nil, Nil)
	require.Equal(t, List, h.Tag(p))

	h.SetTag(p, Var)
	assert.Equal(t, Var, h.Tag(p))

	h.SetTag(p, Fuser)
	assert.Equal(t, Fuser, h.Tag(p))
	assert.True(t, IsCallable(h.Tag(p)))
}

func TestWithCapacityExhausted(t *testing.T) {
	h := NewHeap(WithCapacity(2))
	_, err := h.TryAlloc(Nil, Nil)
	require.NoError(t, err)
	_, err = h.TryAlloc(Nil, Nil)
	require.NoError(t, err)
	_, err = h.TryAlloc(Nil, Nil)
	require.Error(t, err)
}

func TestIsCallable(t *testing.T) {
	assert.False(t, IsCallable(List))
	assert.False(t, IsCallable(Number))
	assert.False(t, IsCallable(Symbol))
	assert.False(t, IsCallable(Var))
	assert.False(t, IsCallable(Labl))
	assert.True(t, IsCallable(Fuser))
	assert.True(t, IsCallable(Numberp))
}
