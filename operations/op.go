//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//   http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//
package operations

import (
	hexed "github.com/hexed/hexed/types"
)

type operation struct {
	Cursor hexed.Point
	Offset int
	Undo   bool
}

// init records where the operation acts. A fresh operation acts at the
// cursor; an inverse acts at the offset its original recorded, since the
// cursor may have been clamped since.
func (op *operation) init(e hexed.Editor) {
	if op.Undo {
		e.SetCursor(op.Cursor)
	} else {
		op.Cursor = e.GetCursor()
		op.Offset = e.CursorOffset()
	}
}

func (op *operation) copyForUndo(other *operation) {
	op.Cursor = other.Cursor
	op.Offset = other.Offset
	op.Undo = true
}
