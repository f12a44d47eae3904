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

// Paste inserts the pasteboard bytes at the current cursor position.
type Paste struct {
	operation
}

func (op *Paste) Perform(e hexed.Editor) hexed.Operation {
	op.init(e)
	data := e.GetPasteBytes()
	if len(data) == 0 {
		return nil
	}
	e.InsertBytesAt(op.Offset, data)
	inverse := &Delete{Count: len(data), keepPasteBoard: true}
	inverse.copyForUndo(&op.operation)
	return inverse
}
