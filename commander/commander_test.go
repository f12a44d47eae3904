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
package commander_test

import (
	"strings"
	"testing"

	"github.com/hexed/hexed/commander"
	"github.com/hexed/hexed/editor"
	"github.com/hexed/hexed/logger"
	"github.com/hexed/hexed/plugin"
	hexed "github.com/hexed/hexed/types"
)

func runeEvent(ch rune) *hexed.Event {
	return &hexed.Event{Type: hexed.EventKey, Ch: ch}
}

func keyEvent(k hexed.Key) *hexed.Event {
	return &hexed.Event{Type: hexed.EventKey, Key: k}
}

func typeString(c *commander.Commander, s string) {
	for _, ch := range s {
		c.ProcessEvent(runeEvent(ch))
	}
}

func fixture(n int) (*commander.Commander, *editor.Editor) {
	log := logger.NewLogger()
	host := plugin.NewHost(log)
	e := editor.NewEditor(hexed.Layout{BlockSize: 8, BlocksPerRow: 3})
	data := make([]byte, n)
	e.Buffer.LoadBytes(data)
	return commander.NewCommander(e, host, log), e
}

func TestHexDigitEntry(t *testing.T) {
	c, e := fixture(4)
	c.ProcessEvent(runeEvent('a'))
	if e.Buffer.ByteAt(0) != 0xA0 {
		t.Errorf("expected 0xA0, got %#x", e.Buffer.ByteAt(0))
	}
	if e.Cursor.Col != 1 {
		t.Errorf("expected the cursor on the low nibble, got col %d", e.Cursor.Col)
	}
	c.ProcessEvent(runeEvent('5'))
	if e.Buffer.ByteAt(0) != 0xA5 {
		t.Errorf("expected 0xA5, got %#x", e.Buffer.ByteAt(0))
	}
	if e.CursorOffset() != 1 {
		t.Errorf("expected the cursor on the next byte, got offset %d", e.CursorOffset())
	}
	// each nibble is its own undo step
	c.ProcessEvent(runeEvent('u'))
	c.ProcessEvent(runeEvent('u'))
	if e.Buffer.ByteAt(0) != 0x00 {
		t.Errorf("expected undo to restore 0x00, got %#x", e.Buffer.ByteAt(0))
	}
}

func TestHexDigitEntryStartsEmptyBuffer(t *testing.T) {
	c, e := fixture(0)
	c.ProcessEvent(runeEvent('f'))
	if e.Buffer.Length() != 1 || e.Buffer.ByteAt(0) != 0xF0 {
		t.Errorf("expected a single 0xF0 byte, got %v", e.Bytes())
	}
}

func TestHexDigitEntryReadOnly(t *testing.T) {
	c, e := fixture(4)
	e.Buffer.SetReadOnly(true)
	c.ProcessEvent(runeEvent('a'))
	if e.Buffer.ByteAt(0) != 0 {
		t.Errorf("a read-only buffer must not change, got %#x", e.Buffer.ByteAt(0))
	}
	if !strings.Contains(c.GetMessage(), "read-only") {
		t.Errorf("expected a read-only message, got %q", c.GetMessage())
	}
}

func TestMovementKeys(t *testing.T) {
	c, e := fixture(64)
	c.ProcessEvent(runeEvent('l'))
	c.ProcessEvent(runeEvent('j'))
	if e.Cursor.Row != 1 || e.Cursor.Col != 1 {
		t.Errorf("expected cursor 1,1, got %d,%d", e.Cursor.Row, e.Cursor.Col)
	}
	c.ProcessEvent(runeEvent('h'))
	c.ProcessEvent(runeEvent('k'))
	if e.Cursor.Row != 0 || e.Cursor.Col != 0 {
		t.Errorf("expected cursor 0,0, got %d,%d", e.Cursor.Row, e.Cursor.Col)
	}
	c.ProcessEvent(keyEvent(hexed.KeyArrowDown))
	if e.Cursor.Row != 1 {
		t.Errorf("expected row 1, got %d", e.Cursor.Row)
	}
}

func TestDeleteAndUndoKeys(t *testing.T) {
	c, e := fixture(4)
	e.Buffer.SetByteAt(0, 0x11)
	c.ProcessEvent(runeEvent('x'))
	if e.Buffer.Length() != 3 || e.Buffer.ByteAt(0) == 0x11 {
		t.Errorf("unexpected bytes after delete: %v", e.Bytes())
	}
	c.ProcessEvent(runeEvent('u'))
	if e.Buffer.Length() != 4 || e.Buffer.ByteAt(0) != 0x11 {
		t.Errorf("unexpected bytes after undo: %v", e.Bytes())
	}
}

func TestUndoRedoKeys(t *testing.T) {
	c, e := fixture(4)
	c.ProcessEvent(runeEvent('a'))
	if e.Buffer.ByteAt(0) != 0xA0 {
		t.Fatalf("expected 0xA0, got %#x", e.Buffer.ByteAt(0))
	}
	c.ProcessEvent(keyEvent(hexed.KeyCtrlZ))
	if e.Buffer.ByteAt(0) != 0x00 {
		t.Errorf("expected undo to restore 0x00, got %#x", e.Buffer.ByteAt(0))
	}
	c.ProcessEvent(keyEvent(hexed.KeyCtrlR))
	if e.Buffer.ByteAt(0) != 0xA0 {
		t.Errorf("expected redo to restore 0xA0, got %#x", e.Buffer.ByteAt(0))
	}
}

func TestYankAndPaste(t *testing.T) {
	c, e := fixture(4)
	e.Buffer.SetByteAt(0, 0x42)
	c.ProcessEvent(runeEvent('y'))
	c.ProcessEvent(runeEvent('p'))
	if e.Buffer.Length() != 5 || e.Buffer.ByteAt(0) != 0x42 || e.Buffer.ByteAt(1) != 0x42 {
		t.Errorf("unexpected bytes after paste: %v", e.Bytes())
	}
}

func TestGotoMode(t *testing.T) {
	c, e := fixture(64)
	c.ProcessEvent(runeEvent('g'))
	if c.GetMode() != hexed.ModeGoto {
		t.Fatalf("expected goto mode, got %d", c.GetMode())
	}
	typeString(c, "18")
	c.ProcessEvent(keyEvent(hexed.KeyEnter))
	if c.GetMode() != hexed.ModeEdit {
		t.Errorf("expected edit mode, got %d", c.GetMode())
	}
	if e.CursorOffset() != 0x18 {
		t.Errorf("expected offset 0x18, got %#x", e.CursorOffset())
	}
}

func TestGotoModeBadOffset(t *testing.T) {
	c, e := fixture(64)
	c.ProcessEvent(runeEvent('g'))
	c.ProcessEvent(keyEvent(hexed.KeyEnter))
	if e.CursorOffset() != 0 {
		t.Errorf("expected the cursor to stay put, got %#x", e.CursorOffset())
	}
	if !strings.Contains(c.GetMessage(), "offset") {
		t.Errorf("expected an offset error, got %q", c.GetMessage())
	}
}

func TestCommandGoto(t *testing.T) {
	c, e := fixture(64)
	c.ProcessEvent(runeEvent(':'))
	if c.GetMode() != hexed.ModeCommand {
		t.Fatalf("expected command mode, got %d", c.GetMode())
	}
	typeString(c, "goto")
	c.ProcessEvent(keyEvent(hexed.KeySpace))
	typeString(c, "0x10")
	c.ProcessEvent(keyEvent(hexed.KeyEnter))
	if e.CursorOffset() != 0x10 {
		t.Errorf("expected offset 0x10, got %#x", e.CursorOffset())
	}
}

func TestUnknownCommandSuggestion(t *testing.T) {
	c, _ := fixture(8)
	c.ProcessEvent(runeEvent(':'))
	typeString(c, "got")
	c.ProcessEvent(keyEvent(hexed.KeyEnter))
	if !strings.Contains(c.GetMessage(), `"goto"`) {
		t.Errorf("expected a goto suggestion, got %q", c.GetMessage())
	}
}

func TestQuitCommand(t *testing.T) {
	c, _ := fixture(8)
	c.ProcessEvent(runeEvent(':'))
	typeString(c, "q")
	c.ProcessEvent(keyEvent(hexed.KeyEnter))
	if c.IsRunning() {
		t.Error("expected the commander to stop")
	}
}

func TestQuitDirtyOpensPopup(t *testing.T) {
	c, _ := fixture(8)
	c.ProcessEvent(runeEvent('a')) // dirty the buffer
	c.ProcessEvent(keyEvent(hexed.KeyCtrlQ))
	if c.GetPopup() == nil {
		t.Fatal("expected a quit confirmation popup")
	}
	if !c.IsRunning() {
		t.Fatal("the popup should hold the session open")
	}
	// pick "No": quit without saving
	c.ProcessEvent(keyEvent(hexed.KeyArrowRight))
	c.ProcessEvent(keyEvent(hexed.KeyEnter))
	if c.IsRunning() {
		t.Error("expected the commander to stop")
	}
}

func TestForceQuitCommand(t *testing.T) {
	c, _ := fixture(8)
	c.ProcessEvent(runeEvent('a'))
	c.ProcessEvent(runeEvent(':'))
	typeString(c, "q!")
	c.ProcessEvent(keyEvent(hexed.KeyEnter))
	if c.IsRunning() {
		t.Error("q! must quit even with unsaved changes")
	}
}

func TestPopupEscCloses(t *testing.T) {
	c, _ := fixture(8)
	c.ProcessEvent(runeEvent('?'))
	if c.GetPopup() == nil {
		t.Fatal("expected the help popup")
	}
	c.ProcessEvent(keyEvent(hexed.KeyEsc))
	if c.GetPopup() != nil {
		t.Error("expected esc to close the popup")
	}
}

func TestPluginPopup(t *testing.T) {
	c, _ := fixture(8)
	if err := c.OpenPluginPopup("line one\nline two"); err != nil {
		t.Fatal(err)
	}
	popup := c.GetPopup()
	if popup == nil || len(popup.Lines) != 2 {
		t.Fatalf("unexpected popup: %v", popup)
	}
	if err := c.OpenPluginPopup("again"); err == nil {
		t.Error("only one popup can be open at a time")
	}
	c.ProcessEvent(keyEvent(hexed.KeyEnter))
	if c.GetPopup() != nil {
		t.Error("expected enter to dismiss the popup")
	}
}

func TestMouseWheelMovesCursor(t *testing.T) {
	c, e := fixture(64)
	c.ProcessEvent(&hexed.Event{Type: hexed.EventMouse, Mouse: hexed.MouseWheelDown})
	if e.Cursor.Row != 1 {
		t.Errorf("expected row 1, got %d", e.Cursor.Row)
	}
	c.ProcessEvent(&hexed.Event{Type: hexed.EventMouse, Mouse: hexed.MouseWheelUp})
	if e.Cursor.Row != 0 {
		t.Errorf("expected row 0, got %d", e.Cursor.Row)
	}
}

func TestMouseClickMovesCursor(t *testing.T) {
	c, e := fixture(64)
	layout := e.GetLayout()

	// click the hex cell of byte 2 on the second row
	x := editor.CursorScreenColumn(layout, 4)
	c.ProcessEvent(&hexed.Event{Type: hexed.EventMouse, Mouse: hexed.MousePress, X: x, Y: 1})
	if e.CursorOffset() != layout.BytesPerRow()+2 {
		t.Errorf("expected offset %d, got %d", layout.BytesPerRow()+2, e.CursorOffset())
	}

	// click byte 5 in the text pane of the first row
	_, textCol := editor.PaneColumns(layout)
	c.ProcessEvent(&hexed.Event{Type: hexed.EventMouse, Mouse: hexed.MousePress, X: textCol + 5, Y: 0})
	if e.CursorOffset() != 5 {
		t.Errorf("expected offset 5, got %d", e.CursorOffset())
	}

	// a click in a gap column changes nothing
	c.ProcessEvent(&hexed.Event{Type: hexed.EventMouse, Mouse: hexed.MousePress, X: 2, Y: 0})
	if e.CursorOffset() != 5 {
		t.Errorf("expected offset 5, got %d", e.CursorOffset())
	}
}

func TestSaveCommandWritesFile(t *testing.T) {
	c, e := fixture(0)
	path := t.TempDir() + "/out.bin"
	e.Buffer.LoadBytes([]byte{1, 2, 3})
	c.ProcessEvent(runeEvent(':'))
	typeString(c, "w")
	c.ProcessEvent(keyEvent(hexed.KeySpace))
	typeString(c, path)
	c.ProcessEvent(keyEvent(hexed.KeyEnter))
	if c.GetMessage() != "" && strings.Contains(c.GetMessage(), "error") {
		t.Fatalf("unexpected message: %q", c.GetMessage())
	}
	if e.Buffer.GetDirty() {
		t.Error("expected the save to clear the dirty flag")
	}
}
