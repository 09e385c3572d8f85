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

// Package reader implements the tokeniser and recursive-descent parser
// that turn a byte stream into the shared cell graph, consulting (and
// extending) the environment's symbol table as it scans. Token handling is
// split one file per kind, the way cbarrick-ripl/lang/lex splits its
// scanner: lexer.go classifies, number.go and symbol.go consume, list.go
// drives the recursion.
package reader

import "io"

// Kind classifies the next non-whitespace byte without consuming it.
type Kind int

const (
	// EOT marks end of input.
	EOT Kind = iota - 1
	// ERR marks a byte that belongs to none of the recognised classes.
	ERR
	// Quoted is a leading apostrophe.
	Quoted
	// LParen opens a list: '(' or '['.
	LParen
	// RParen closes a list: ')' or ']'.
	RParen
	// Alpha is a letter or an identifier extension character.
	Alpha
	// Digit is a decimal digit.
	Digit
	// EOL is a newline.
	EOL
)

// isAlpha reports whether b may start or continue an identifier: a letter
// or one of the dialect's identifier extension characters.
func isAlpha(b byte) bool {
	switch {
	case b >= 'a' && b <= 'z', b >= 'A' && b <= 'Z':
		return true
	}
	switch b {
	case '!', '*', '+', '-', '/', '<', '=', '>', '?', '_':
		return true
	}
	return false
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

// isSpace reports whether b is whitespace. A comma counts as whitespace,
// matching the wire surface's list-friendly "," separator.
func isSpace(b byte) bool {
	switch b {
	case ' ', '\t', '\r', ',':
		return true
	}
	return false
}

// Lexer classifies the next token in a ByteSource without consuming it,
// skipping whitespace along the way. Individual readers (number.go,
// symbol.go, list.go) consume what they need via the same ByteSource and
// may push back one byte.
type Lexer struct {
	Src ByteSource
}

// NewLexer wraps src.
func NewLexer(src ByteSource) *Lexer { return &Lexer{Src: src} }

// Peek skips leading whitespace and classifies the next byte without
// consuming it: the byte is read once and immediately pushed back, so
// whatever reads next sees it again.
func (l *Lexer) Peek() Kind {
	for {
		b, err := l.Src.GetByte()
		if err != nil {
			if err == io.EOF {
				return EOT
			}
			return EOT
		}
		if isSpace(b) {
			continue
		}
		l.Src.UngetByte(b)
		switch {
		case b == '(', b == '[':
			return LParen
		case b == ')', b == ']':
			return RParen
		case b == '\'':
			return Quoted
		case isAlpha(b):
			return Alpha
		case isDigit(b):
			return Digit
		case b == '\n':
			return EOL
		default:
			return ERR
		}
	}
}
