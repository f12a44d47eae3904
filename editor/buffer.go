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

	hexed "github.com/hexed/hexed/types"
)

// A Buffer holds the bytes of a file being edited.

type Buffer struct {
	data     []byte
	fileName string
	dirty    bool
	readOnly bool
}

func NewBuffer() *Buffer {
	return &Buffer{data: make([]byte, 0)}
}

func (b *Buffer) GetFileName() string {
	return b.fileName
}

func (b *Buffer) SetFileName(name string) {
	b.fileName = name
}

func (b *Buffer) GetReadOnly() bool {
	return b.readOnly
}

func (b *Buffer) SetReadOnly(readOnly bool) {
	b.readOnly = readOnly
}

func (b *Buffer) GetDirty() bool {
	return b.dirty
}

func (b *Buffer) LoadBytes(data []byte) {
	b.data = make([]byte, len(data))
	copy(b.data, data)
	b.dirty = false
}

func (b *Buffer) Bytes() []byte {
	out := make([]byte, len(b.data))
	copy(out, b.data)
	return out
}

func (b *Buffer) Length() int {
	return len(b.data)
}

func (b *Buffer) ByteAt(offset int) byte {
	if offset < 0 || offset >= len(b.data) {
		return 0
	}
	return b.data[offset]
}

// replace the byte at offset and return the replaced byte
func (b *Buffer) SetByteAt(offset int, value byte) byte {
	if offset < 0 || offset >= len(b.data) {
		return 0
	}
	old := b.data[offset]
	b.data[offset] = value
	b.dirty = true
	return old
}

func (b *Buffer) InsertAt(offset int, data []byte) {
	if len(data) == 0 {
		return
	}
	if offset < 0 {
		offset = 0
	}
	if offset > len(b.data) {
		offset = len(b.data)
	}
	grown := make([]byte, 0, len(b.data)+len(data))
	grown = append(grown, b.data[0:offset]...)
	grown = append(grown, data...)
	grown = append(grown, b.data[offset:]...)
	b.data = grown
	b.dirty = true
}

// delete count bytes at offset and return the deleted bytes
func (b *Buffer) DeleteAt(offset int, count int) []byte {
	if offset < 0 || offset >= len(b.data) || count <= 0 {
		return nil
	}
	if offset+count > len(b.data) {
		count = len(b.data) - offset
	}
	deleted := make([]byte, count)
	copy(deleted, b.data[offset:offset+count])
	b.data = append(b.data[0:offset], b.data[offset+count:]...)
	b.dirty = true
	return deleted
}

// RowCount reports how many rows the buffer occupies for a layout.
// An empty buffer still has one (blank) row.
func (b *Buffer) RowCount(layout hexed.Layout) int {
	perRow := layout.BytesPerRow()
	if perRow <= 0 || len(b.data) == 0 {
		return 1
	}
	return (len(b.data) + perRow - 1) / perRow
}

func printable(c byte) rune {
	if c >= 0x20 && c < 0x7f {
		return rune(c)
	}
	return '.'
}

// draw the address, hex, and text panes for an area defined by origin and
// size with a row offset into the buffer
func (b *Buffer) Render(origin hexed.Point, size hexed.Size, offset hexed.Size, layout hexed.Layout, display hexed.Display) {
	perRow := layout.BytesPerRow()
	rowCount := b.RowCount(layout)
	hexPaneCol := origin.Col + addressWidth
	textPaneCol := hexPaneCol + HexPaneWidth(layout)

	for i := 0; i < size.Rows; i++ {
		bufferRow := i + offset.Rows
		if bufferRow >= rowCount {
			display.SetCell(origin.Col, origin.Row+i, '~', hexed.ColorCyan)
			continue
		}
		address := fmt.Sprintf("%08X", bufferRow*perRow)
		for j, c := range address {
			display.SetCell(origin.Col+j, origin.Row+i, c, hexed.ColorCyan)
		}
		for j := 0; j < perRow; j++ {
			at := bufferRow*perRow + j
			if at >= len(b.data) {
				break
			}
			value := b.data[at]
			color := hexed.ColorWhite
			if value == 0 {
				color = hexed.ColorBlue
			}
			pair := fmt.Sprintf("%02X", value)
			x := hexPaneCol + hexCellCol(layout, j)
			display.SetCell(x, origin.Row+i, rune(pair[0]), color)
			display.SetCell(x+1, origin.Row+i, rune(pair[1]), color)
			display.SetCell(textPaneCol+j, origin.Row+i, printable(value), color)
		}
	}
}

const addressWidth = 10 // eight hex digits and two spaces

// hexCellCol is the column of a byte's first hex digit within the hex pane.
func hexCellCol(layout hexed.Layout, index int) int {
	block := index / layout.BlockSize
	return index*3 + block
}

// HexPaneWidth is the width of the hex pane including the gap after it.
func HexPaneWidth(layout hexed.Layout) int {
	return layout.BytesPerRow()*3 + layout.BlocksPerRow
}

// PaneColumns reports the starting columns of the hex and text panes.
func PaneColumns(layout hexed.Layout) (hexCol int, textCol int) {
	hexCol = addressWidth
	textCol = hexCol + HexPaneWidth(layout)
	return
}

// CursorScreenColumn is the screen column of a nibble cursor position.
func CursorScreenColumn(layout hexed.Layout, nibbleCol int) int {
	return addressWidth + hexCellCol(layout, nibbleCol/2) + nibbleCol%2
}

// HexPaneByteIndex maps a column relative to the hex pane start back to the
// byte index within the row, or false when the column falls in a gap or
// past the row.
func HexPaneByteIndex(layout hexed.Layout, col int) (int, bool) {
	for j := 0; j < layout.BytesPerRow(); j++ {
		cell := hexCellCol(layout, j)
		if col == cell || col == cell+1 {
			return j, true
		}
	}
	return 0, false
}
