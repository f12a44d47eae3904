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
package editor

import (
	"fmt"
	"os"

	hexed "github.com/hexed/hexed/types"
)

// An EventSink receives buffer lifecycle notifications. The plugin host
// implements it; the editor never calls plugins directly.
type EventSink interface {
	BufferOpened(data hexed.Buffer)
	BufferSaved(data hexed.Buffer)
	BufferEdited(data hexed.Buffer, offset int, newBytes []byte)
}

// The Editor manages the editing of bytes in a Buffer.
// The cursor column counts nibbles: two columns per byte.
type Editor struct {
	Cursor     hexed.Point      // cursor position
	Offset     hexed.Size       // display offset
	Buffer     *Buffer          // active buffer being edited
	size       hexed.Size       // size of editing area
	layout     hexed.Layout     // byte grouping of the hex pane
	pasteBytes []byte           // used to cut/copy and paste
	previous   hexed.Operation  // last operation performed, available to repeat
	undo       []hexed.Operation // stack of operations to undo
	redo       []hexed.Operation // stack of undone operations to redo
	sink       EventSink        // notified after open, save, and edit
}

func NewEditor(layout hexed.Layout) *Editor {
	e := &Editor{layout: layout}
	e.Buffer = NewBuffer()
	return e
}

func (e *Editor) SetEventSink(sink EventSink) {
	e.sink = sink
}

func (e *Editor) ReadFile(path string) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	e.Buffer.LoadBytes(b)
	e.Buffer.SetFileName(path)
	e.Cursor = hexed.Point{}
	e.Offset = hexed.Size{}
	e.undo = nil
	e.redo = nil
	e.previous = nil
	if e.sink != nil {
		e.sink.BufferOpened(e.Buffer)
	}
	return nil
}

func (e *Editor) Bytes() []byte {
	return e.Buffer.Bytes()
}

func (e *Editor) WriteFile(path string) error {
	if e.Buffer.GetReadOnly() {
		return fmt.Errorf("buffer is read-only")
	}
	if err := os.WriteFile(path, e.Bytes(), 0644); err != nil {
		return err
	}
	e.Buffer.dirty = false
	if e.Buffer.GetFileName() == "" {
		e.Buffer.SetFileName(path)
	}
	if e.sink != nil {
		e.sink.BufferSaved(e.Buffer)
	}
	return nil
}

func (e *Editor) Perform(op hexed.Operation) {
	// perform the operation
	inverse := op.Perform(e)
	// save the operation for repeats
	e.previous = op
	// save the inverse of the operation for undo
	if inverse != nil {
		e.undo = append(e.undo, inverse)
	}
	// a fresh edit invalidates the redo stack
	e.redo = nil
}

func (e *Editor) Repeat() {
	if e.previous != nil {
		inverse := e.previous.Perform(e)
		if inverse != nil {
			e.undo = append(e.undo, inverse)
		}
		e.redo = nil
	}
}

func (e *Editor) PerformUndo() {
	if len(e.undo) > 0 {
		last := len(e.undo) - 1
		undo := e.undo[last]
		e.undo = e.undo[0:last]
		// the inverse of an undo is the redo
		if inverse := undo.Perform(e); inverse != nil {
			e.redo = append(e.redo, inverse)
		}
	}
}

func (e *Editor) PerformRedo() {
	if len(e.redo) > 0 {
		last := len(e.redo) - 1
		redo := e.redo[last]
		e.redo = e.redo[0:last]
		if inverse := redo.Perform(e); inverse != nil {
			e.undo = append(e.undo, inverse)
		}
	}
}

// Editing primitives used by operations. Each one notifies the sink with
// the affected offset and the bytes now there, so undo is observed as an
// edit too.

func (e *Editor) ReplaceByteAt(offset int, value byte) byte {
	old := e.Buffer.SetByteAt(offset, value)
	if offset >= 0 && offset < e.Buffer.Length() {
		e.notifyEdit(offset, []byte{value})
	}
	return old
}

func (e *Editor) InsertBytesAt(offset int, data []byte) {
	e.Buffer.InsertAt(offset, data)
	e.notifyEdit(offset, data)
}

func (e *Editor) DeleteBytesAt(offset int, count int) []byte {
	deleted := e.Buffer.DeleteAt(offset, count)
	if deleted != nil {
		// a delete leaves at most one byte newly at the offset
		var now []byte
		if offset < e.Buffer.Length() {
			now = []byte{e.Buffer.ByteAt(offset)}
		}
		e.notifyEdit(offset, now)
	}
	return deleted
}

// notifyEdit hands the sink a copy of the bytes now at the offset.
func (e *Editor) notifyEdit(offset int, newBytes []byte) {
	if e.sink == nil {
		return
	}
	var out []byte
	if len(newBytes) > 0 {
		out = make([]byte, len(newBytes))
		copy(out, newBytes)
	}
	e.sink.BufferEdited(e.Buffer, offset, out)
}

func (e *Editor) SetPasteBoard(data []byte) {
	e.pasteBytes = make([]byte, len(data))
	copy(e.pasteBytes, data)
}

func (e *Editor) GetPasteBytes() []byte {
	return e.pasteBytes
}

// cursor geometry

// CursorOffset is the byte offset under the cursor.
func (e *Editor) CursorOffset() int {
	offset := e.Cursor.Row*e.layout.BytesPerRow() + e.Cursor.Col/2
	if offset >= e.Buffer.Length() {
		offset = e.Buffer.Length() - 1
	}
	if offset < 0 {
		offset = 0
	}
	return offset
}

func (e *Editor) GoToOffset(offset int) {
	if offset < 0 {
		offset = 0
	}
	if offset >= e.Buffer.Length() {
		offset = e.Buffer.Length() - 1
	}
	if offset < 0 {
		e.Cursor = hexed.Point{}
		return
	}
	perRow := e.layout.BytesPerRow()
	e.Cursor.Row = offset / perRow
	e.Cursor.Col = (offset % perRow) * 2
}

// AdvanceNibble moves one nibble right, wrapping to the next row, stopping
// at the last nibble of the buffer.
func (e *Editor) AdvanceNibble() {
	if e.CursorOffset() == e.Buffer.Length()-1 && e.Cursor.Col%2 == 1 {
		return
	}
	e.Cursor.Col++
	if e.Cursor.Col >= e.layout.BytesPerRow()*2 {
		e.Cursor.Col = 0
		e.Cursor.Row++
	}
	e.KeepCursorInBuffer()
}

func (e *Editor) MoveCursor(direction int) {
	switch direction {
	case hexed.MoveLeft:
		if e.Cursor.Col > 0 {
			e.Cursor.Col--
		} else if e.Cursor.Row > 0 {
			e.Cursor.Row--
			e.Cursor.Col = e.layout.BytesPerRow()*2 - 1
		}
	case hexed.MoveRight:
		e.Cursor.Col++
		if e.Cursor.Col >= e.layout.BytesPerRow()*2 {
			e.Cursor.Col = 0
			e.Cursor.Row++
		}
	case hexed.MoveUp:
		if e.Cursor.Row > 0 {
			e.Cursor.Row--
		}
	case hexed.MoveDown:
		e.Cursor.Row++
	}
	e.KeepCursorInBuffer()
}

// KeepCursorInBuffer clamps the cursor to the nibbles the buffer holds.
func (e *Editor) KeepCursorInBuffer() {
	if e.Buffer.Length() == 0 {
		e.Cursor = hexed.Point{}
		return
	}
	lastRow := e.Buffer.RowCount(e.layout) - 1
	if e.Cursor.Row < 0 {
		e.Cursor.Row = 0
	}
	if e.Cursor.Row > lastRow {
		e.Cursor.Row = lastRow
	}
	if e.Cursor.Col < 0 {
		e.Cursor.Col = 0
	}
	maxCol := e.layout.BytesPerRow()*2 - 1
	if e.Cursor.Row == lastRow {
		bytesInRow := e.Buffer.Length() - lastRow*e.layout.BytesPerRow()
		maxCol = bytesInRow*2 - 1
	}
	if e.Cursor.Col > maxCol {
		e.Cursor.Col = maxCol
	}
}

func (e *Editor) Scroll() {
	if e.Cursor.Row < e.Offset.Rows {
		e.Offset.Rows = e.Cursor.Row
	}
	if e.Cursor.Row-e.Offset.Rows >= e.size.Rows && e.size.Rows > 0 {
		e.Offset.Rows = e.Cursor.Row - e.size.Rows + 1
	}
}

func (e *Editor) PageUp() {
	// move to the top of the screen
	e.Cursor.Row = e.Offset.Rows
	// move up by a page
	for i := 0; i < e.size.Rows; i++ {
		e.MoveCursor(hexed.MoveUp)
	}
}

func (e *Editor) PageDown() {
	// move to the bottom of the screen
	e.Cursor.Row = e.Offset.Rows + e.size.Rows - 1
	// move down by a page
	for i := 0; i < e.size.Rows; i++ {
		e.MoveCursor(hexed.MoveDown)
	}
}

func (e *Editor) MoveToStartOfRow() {
	e.Cursor.Col = 0
}

func (e *Editor) MoveToEndOfRow() {
	e.Cursor.Col = e.layout.BytesPerRow()*2 - 1
	e.KeepCursorInBuffer()
}

func (e *Editor) GetCursor() hexed.Point {
	return e.Cursor
}

func (e *Editor) SetCursor(cursor hexed.Point) {
	e.Cursor = cursor
	e.KeepCursorInBuffer()
}

func (e *Editor) SetSize(s hexed.Size) {
	e.size = s
}

func (e *Editor) GetOffset() hexed.Size {
	return e.Offset
}

func (e *Editor) GetLayout() hexed.Layout {
	return e.layout
}

func (e *Editor) GetBuffer() hexed.Buffer {
	return e.Buffer
}
