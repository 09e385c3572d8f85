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
	"bufio"
	"io"
)

// ByteSource is the byte-stream contract a host feeds to the reader: a
// blocking byte read with one byte of pushback. Output goes through the
// evaluator's io.Writer instead. It mirrors the vm.RuneReader / runeWriter split in
// the teacher, scaled down to bytes since this dialect has no string type
// and no need for multi-byte runes on the wire.
type ByteSource interface {
	// GetByte blocks for the next byte. It returns io.EOF at end of
	// stream.
	GetByte() (byte, error)
	// UngetByte buffers a single byte to be returned by the next
	// GetByte. At most one byte of pushback is guaranteed.
	UngetByte(b byte)
}

// byteSource adapts a bufio.Reader into a ByteSource with the guaranteed
// one-byte pushback slot.
type byteSource struct {
	r      *bufio.Reader
	pushed bool
	pb     byte
}

// NewByteSource wraps an io.Reader as a ByteSource.
func NewByteSource(r io.Reader) ByteSource {
	return &byteSource{r: bufio.NewReader(r)}
}

func (s *byteSource) GetByte() (byte, error) {
	if s.pushed {
		s.pushed = false
		return s.pb, nil
	}
	return s.r.ReadByte()
}

func (s *byteSource) UngetByte(b byte) {
	s.pb = b
	s.pushed = true
}
