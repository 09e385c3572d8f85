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
	"io"

	"github.com/bodza/cortex/cell"
)

// ReadNumber accumulates decimal digits from src into a Number cell,
// pushing back the first non-digit byte it reads. There is no sign;
// negative numbers only ever arise from evaluation (diff, sub1, ...).
func ReadNumber(src ByteSource, h *cell.Heap) cell.Ref {
	var n int32
	for {
		b, err := src.GetByte()
		if err != nil {
			if err != io.EOF {
				break
			}
			break
		}
		if !isDigit(b) {
			src.UngetByte(b)
			break
		}
		n = n*10 + int32(b-'0')
	}
	return h.NewNumber(n)
}
