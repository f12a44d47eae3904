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

// SetByte overwrites the byte at the current cursor position.
type SetByte struct {
	operation
	Value byte
}

func (op *SetByte) Perform(e hexed.Editor) hexed.Operation {
	op.init(e)
	old := e.ReplaceByteAt(op.Offset, op.Value)
	inverse := &SetByte{Value: old}
	inverse.copyForUndo(&op.operation)
	return inverse
}
