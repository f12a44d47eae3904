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
package types

import "fmt"

// Editor modes
const (
	ModeEdit    = 0
	ModeCommand = 1
	ModeGoto    = 2
	ModeLisp    = 3
	ModeQuit    = 9999
)

// Move directions
const (
	MoveUp    = 0
	MoveDown  = 1
	MoveRight = 2
	MoveLeft  = 3
)

// A Level classifies notification log entries. Info is level 1.
type Level int

const (
	LogDebug   Level = 0
	LogInfo    Level = 1
	LogWarning Level = 2
	LogError   Level = 3
)

func (l Level) String() string {
	switch l {
	case LogDebug:
		return "debug"
	case LogInfo:
		return "info"
	case LogWarning:
		return "warning"
	case LogError:
		return "error"
	default:
		return fmt.Sprintf("level-%d", int(l))
	}
}

// Event types
const (
	EventKey    = 0
	EventResize = 1
	EventMouse  = 2
)

// Keys are the special (non-rune) keys forwarded by the screen.
type Key int

const (
	KeyUnsupported Key = iota
	KeyArrowUp
	KeyArrowDown
	KeyArrowLeft
	KeyArrowRight
	KeyBackspace2
	KeyDelete
	KeyEnd
	KeyEnter
	KeyEsc
	KeyHome
	KeyPgdn
	KeyPgup
	KeySpace
	KeyTab
	KeyCtrlC
	KeyCtrlG
	KeyCtrlL
	KeyCtrlQ
	KeyCtrlR
	KeyCtrlS
	KeyCtrlX
	KeyCtrlZ
)

// Modifier bits attached to key and mouse events.
const (
	ModAlt    = 1
	ModMotion = 2
)

// MouseKind distinguishes mouse actions within an EventMouse.
type MouseKind int

const (
	MousePress MouseKind = iota
	MouseRelease
	MouseMove
	MouseWheelUp
	MouseWheelDown
)

func (k MouseKind) String() string {
	switch k {
	case MousePress:
		return "press"
	case MouseRelease:
		return "release"
	case MouseMove:
		return "move"
	case MouseWheelUp:
		return "wheel-up"
	case MouseWheelDown:
		return "wheel-down"
	default:
		return "unknown"
	}
}

// An Event is a terminal input event normalized by the screen.
type Event struct {
	Type  int
	Key   Key
	Ch    rune
	Mod   int
	Mouse MouseKind
	X     int
	Y     int
}

// Code reports the key code carried by a key event: the rune when one was
// typed, the special key otherwise.
func (e *Event) Code() int {
	if e.Ch != 0 {
		return int(e.Ch)
	}
	return int(e.Key)
}

type Point struct {
	Row int
	Col int
}

type Size struct {
	Rows int
	Cols int
}

// A Layout describes how bytes are grouped on a row of the hex pane.
type Layout struct {
	BlockSize    int // bytes per block
	BlocksPerRow int // blocks per row
}

func (l Layout) BytesPerRow() int {
	return l.BlockSize * l.BlocksPerRow
}

type Color uint16

const (
	ColorDefault Color = 0
	ColorBlack   Color = 1
	ColorRed     Color = 2
	ColorGreen   Color = 3
	ColorYellow  Color = 4
	ColorBlue    Color = 5
	ColorMagenta Color = 6
	ColorCyan    Color = 7
	ColorWhite   Color = 8
)

// A Display is a surface that buffers render themselves onto.
type Display interface {
	SetCell(col int, row int, c rune, color Color)
}

// A Popup is a modal box drawn over the panes.
type Popup struct {
	Title    string
	Lines    []string
	Buttons  []string
	Selected int
}

type Editor interface {
	GetCursor() Point
	SetCursor(cursor Point)
	CursorOffset() int
	SetSize(size Size)
	GetOffset() Size
	GetLayout() Layout
	GetBuffer() Buffer
	Scroll()

	MoveCursor(direction int)
	PageUp()
	PageDown()
	MoveToStartOfRow()
	MoveToEndOfRow()
	GoToOffset(offset int)
	AdvanceNibble()

	Perform(op Operation)
	PerformUndo()
	PerformRedo()
	Repeat()

	ReplaceByteAt(offset int, value byte) byte
	InsertBytesAt(offset int, data []byte)
	DeleteBytesAt(offset int, count int) []byte
	SetPasteBoard(data []byte)
	GetPasteBytes() []byte

	ReadFile(path string) error
	WriteFile(path string) error
	Bytes() []byte
}

type Buffer interface {
	Length() int
	ByteAt(offset int) byte
	Bytes() []byte
	LoadBytes(data []byte)
	GetFileName() string
	GetReadOnly() bool
	GetDirty() bool
	Render(origin Point, size Size, offset Size, layout Layout, display Display)
}

// An Operation performs an edit and returns its inverse.
type Operation interface {
	Perform(e Editor) Operation
}

type Commander interface {
	SetMode(int)
	GetMode() int
	GetCommand() string
	GetGotoText() string
	GetLispText() string
	GetMessage() string
	GetPopup() *Popup
}
