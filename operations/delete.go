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

// Delete removes bytes at the current cursor position. The deleted bytes
// are placed on the pasteboard, except when the delete is the inverse of
// an insert or paste.
type Delete struct {
	operation
	Count          int
	keepPasteBoard bool
}

func (op *Delete) Perform(e hexed.Editor) hexed.Operation {
	op.init(e)
	deleted := e.DeleteBytesAt(op.Offset, op.Count)
	if deleted == nil {
		return nil
	}
	if !op.keepPasteBoard {
		e.SetPasteBoard(deleted)
	}
	inverse := &Insert{Bytes: deleted}
	inverse.copyForUndo(&op.operation)
	return inverse
}
