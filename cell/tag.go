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

// Tag is the closed discriminator of a Cell. A Cell's Tag may be rewritten
// in place over its lifetime: a freshly declared identifier is a Var,
// quoting it turns it into a Symbol, and a Var becomes a Fuser once a
// defun installs a body on it. The ordering below is load-bearing: every
// tag at or above Fuser denotes something callable (see IsCallable).
type Tag int32

const (
	// List is an ordinary pair: Head is car, Tail is cdr.
	List Tag = iota
	// Number cells carry an integer payload.
	Number
	// Symbol is a quoted atom; Head points to its environment entry.
	Symbol
	// Var is an environment binding (or a reference to one); Head points
	// to the binding, Tail holds the current value.
	Var
	// Labl marks a label inside a prog; Tail points at the statement
	// that follows it.
	Labl

	// Fuser is a user-defined function header; Tail points at (params . body).
	// Every tag from here on is callable.
	Fuser

	T
	Nil
	Quote
	Cond
	Defun
	Setq
	Nullp
	Funcall
	Apply
	Prog
	Go
	Return
	ListFn
	Cons
	Car
	Cdr
	Read
	Eval
	Print
	Atom
	Eq
	And
	Or
	Not
	Add1
	Sub1
	Plus
	Diff
	Times
	Quot
	Lessp
	Greaterp
	Zerop
	Numberp

	// HostBase is the first Tag value available to host-registered
	// primitives (see eval.HostPrimitive). It sits well above the
	// core primitive range so a host can hand out as many tags as it
	// wants without colliding with the core dispatch table.
	HostBase Tag = 1 << 16
)

// IsCallable reports whether a cell bearing this tag can appear as the
// operator of a form: primitives and user-defined functions, never raw
// data.
func IsCallable(t Tag) bool {
	return t >= Fuser
}

var tagNames = [...]string{
	List:      "list",
	Number:    "number",
	Symbol:    "symbol",
	Var:       "var",
	Labl:      "labl",
	Fuser:     "fuser",
	T:         "t",
	Nil:       "nil",
	Quote:     "quote",
	Cond:      "cond",
	Defun:     "defun",
	Setq:      "setq",
	Nullp:     "null",
	Funcall:   "funcall",
	Apply:     "apply",
	Prog:      "prog",
	Go:        "go",
	Return:    "return",
	ListFn:    "list",
	Cons:      "cons",
	Car:       "car",
	Cdr:       "cdr",
	Read:      "read",
	Eval:      "eval",
	Print:     "print",
	Atom:      "atom",
	Eq:        "eq",
	And:       "and",
	Or:        "or",
	Not:       "not",
	Add1:      "add1",
	Sub1:      "sub1",
	Plus:      "plus",
	Diff:      "diff",
	Times:     "times",
	Quot:      "quot",
	Lessp:     "lessp",
	Greaterp:  "greaterp",
	Zerop:     "zerop",
	Numberp:   "numberp",
}

// String returns the canonical primitive name for core tags, the generic
// label "host" for host-registered ones, and "tag" for any other value. It exists for diagnostics only
// (hclog trace lines, disassembly-style dumps); dispatch never uses it.
func (t Tag) String() string {
	if t >= 0 && int(t) < len(tagNames) && tagNames[t] != "" {
		return tagNames[t]
	}
	if t >= HostBase {
		return "host"
	}
	return "tag"
}
