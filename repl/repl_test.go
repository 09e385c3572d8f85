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

package repl_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/bodza/cortex/bootstrap"
	"github.com/bodza/cortex/reader"
	"github.com/bodza/cortex/repl"
	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// drive runs a whole session's worth of input through the REPL end to
// end, the way cmd/retro/main.go drives vm/vm_test.go's VM: feed bytes
// in, collect whatever the loop writes out, no peeking at internals.
func drive(t *testing.T, input string) string {
	t.Helper()
	color.NoColor = true // the prompt/oops! coloring isn't under test here

	out := &bytes.Buffer{}
	s := bootstrap.New(reader.NewByteSource(strings.NewReader(input)), out, nil)
	r := repl.New(s, out)
	r.Run()
	return out.String()
}

func TestEmptyLinePrintsNil(t *testing.T) {
	got := drive(t, "\n")
	assert.Contains(t, got, "nil")
}

func TestArithmeticResult(t *testing.T) {
	got := drive(t, "(plus 2 3)\n")
	assert.Contains(t, got, "5")
}

func TestStrayCloseParenEmitsOopsAndSurvives(t *testing.T) {
	got := drive(t, ")\n(plus 1 1)\n")
	assert.Contains(t, got, "oops!")
	assert.Contains(t, got, "2")
}

func TestSessionAccumulatesReadErrors(t *testing.T) {
	color.NoColor = true
	out := &bytes.Buffer{}
	s := bootstrap.New(reader.NewByteSource(strings.NewReader(")\n)\n")), out, nil)
	r := repl.New(s, out)
	r.Run()

	require.NotNil(t, r.Errs)
	assert.Equal(t, 2, r.Errs.Len())
}

func TestBareSymbolResolvesToItsValue(t *testing.T) {
	got := drive(t, "(setq x 7)\nx\n")
	assert.Contains(t, got, "7")
}

func TestProgSummingTranscript(t *testing.T) {
	src := "(prog (i s) (setq i 10) (setq s 0) loop (cond ((zerop i) (return s))) " +
		"(setq s (plus s i)) (setq i (sub1 i)) (go loop))\n"
	got := drive(t, src)
	assert.Contains(t, got, "55")
}
