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
package screen

import (
	"fmt"
	"log"

	"github.com/mattn/go-runewidth"
	"github.com/nsf/termbox-go"

	"github.com/hexed/hexed/editor"
	hexed "github.com/hexed/hexed/types"
)

// The Screen draws the state of an Editor.
type Screen struct {
	size hexed.Size // screen size
}

func NewScreen() *Screen {
	// Open the terminal.
	err := termbox.Init()
	if err != nil {
		log.Output(1, err.Error())
		return nil
	}
	termbox.SetInputMode(termbox.InputEsc | termbox.InputMouse)
	termbox.SetOutputMode(termbox.Output256)
	return &Screen{}
}

func (s *Screen) Close() {
	termbox.Close()
}

func attribute(color hexed.Color) termbox.Attribute {
	switch color {
	case hexed.ColorBlack:
		return termbox.ColorBlack
	case hexed.ColorRed:
		return termbox.ColorRed
	case hexed.ColorGreen:
		return termbox.ColorGreen
	case hexed.ColorYellow:
		return termbox.ColorYellow
	case hexed.ColorBlue:
		return termbox.ColorBlue
	case hexed.ColorMagenta:
		return termbox.ColorMagenta
	case hexed.ColorCyan:
		return termbox.ColorCyan
	case hexed.ColorWhite:
		return termbox.ColorWhite
	default:
		return termbox.ColorDefault
	}
}

func (s *Screen) SetCell(j int, i int, c rune, color hexed.Color) {
	termbox.SetCell(j, i, c, attribute(color), termbox.ColorDefault)
}

func (s *Screen) Render(e hexed.Editor, c hexed.Commander) {
	termbox.Clear(termbox.ColorWhite, termbox.ColorDefault)
	var screenSize hexed.Size
	screenSize.Cols, screenSize.Rows = termbox.Size()
	s.size = screenSize

	editSize := screenSize
	editSize.Rows -= 2
	e.SetSize(editSize)

	e.Scroll()
	s.RenderInfoBar(e, c)
	s.RenderMessageBar(e, c)
	bufferOrigin := hexed.Point{Row: 0, Col: 0}
	bufferSize := hexed.Size{Rows: s.size.Rows - 2, Cols: s.size.Cols}
	e.GetBuffer().Render(bufferOrigin, bufferSize, e.GetOffset(), e.GetLayout(), s)

	if popup := c.GetPopup(); popup != nil {
		termbox.HideCursor()
		s.RenderPopup(popup)
	} else {
		cursor := e.GetCursor()
		termbox.SetCursor(
			editor.CursorScreenColumn(e.GetLayout(), cursor.Col),
			cursor.Row-e.GetOffset().Rows)
	}
	termbox.Flush()
}

func (s *Screen) RenderInfoBar(e hexed.Editor, c hexed.Commander) {
	buffer := e.GetBuffer()
	name := buffer.GetFileName()
	if name == "" {
		name = "[no file]"
	}
	if buffer.GetDirty() {
		name += " *"
	}
	if buffer.GetReadOnly() {
		name += " [ro]"
	}
	finalText := fmt.Sprintf(" %08X/%08X ", e.CursorOffset(), buffer.Length())
	text := " hexed - " + runewidth.Truncate(name, s.size.Cols/2, "…") + " "
	for len(text) < s.size.Cols-len(finalText)-1 {
		text = text + " "
	}
	text += finalText
	for x, ch := range []rune(text) {
		termbox.SetCell(x, s.size.Rows-2, ch,
			termbox.ColorBlack, termbox.ColorWhite)
	}
}

func (s *Screen) RenderMessageBar(e hexed.Editor, c hexed.Commander) {
	var line string
	switch c.GetMode() {
	case hexed.ModeCommand:
		line += ":" + c.GetCommand()
	case hexed.ModeGoto:
		line += "@" + c.GetGotoText()
	case hexed.ModeLisp:
		line += c.GetLispText()
	default:
		line += c.GetMessage()
	}
	runes := []rune(line)
	if len(runes) > s.size.Cols {
		runes = runes[0:s.size.Cols]
	}
	for x, ch := range runes {
		termbox.SetCell(x, s.size.Rows-1, ch, termbox.ColorWhite, termbox.ColorDefault)
	}
}

// RenderPopup draws a modal box centered over the panes.
func (s *Screen) RenderPopup(p *hexed.Popup) {
	width := runewidth.StringWidth(p.Title) + 4
	for _, line := range p.Lines {
		if w := runewidth.StringWidth(line) + 4; w > width {
			width = w
		}
	}
	buttonsWidth := 0
	for _, b := range p.Buttons {
		buttonsWidth += runewidth.StringWidth(b) + 4
	}
	if buttonsWidth+2 > width {
		width = buttonsWidth + 2
	}
	if width > s.size.Cols {
		width = s.size.Cols
	}
	height := len(p.Lines) + 4
	left := (s.size.Cols - width) / 2
	top := (s.size.Rows - height) / 2
	if left < 0 {
		left = 0
	}
	if top < 0 {
		top = 0
	}

	for y := top; y < top+height; y++ {
		for x := left; x < left+width; x++ {
			var ch rune = ' '
			switch {
			case y == top && x == left:
				ch = '┌'
			case y == top && x == left+width-1:
				ch = '┐'
			case y == top+height-1 && x == left:
				ch = '└'
			case y == top+height-1 && x == left+width-1:
				ch = '┘'
			case y == top || y == top+height-1:
				ch = '─'
			case x == left || x == left+width-1:
				ch = '│'
			}
			termbox.SetCell(x, y, ch, termbox.ColorWhite, termbox.ColorDefault)
		}
	}

	s.drawCentered(left, width, top, p.Title, termbox.ColorYellow, termbox.ColorDefault)
	for i, line := range p.Lines {
		s.drawCentered(left, width, top+1+i, line, termbox.ColorWhite, termbox.ColorDefault)
	}

	x := left + (width-buttonsWidth)/2
	for i, button := range p.Buttons {
		label := "  " + button + "  "
		fg, bg := termbox.ColorWhite, termbox.ColorDefault
		if i == p.Selected {
			fg, bg = termbox.ColorBlack, termbox.ColorWhite
		}
		for _, ch := range label {
			termbox.SetCell(x, top+height-2, ch, fg, bg)
			x++
		}
	}
}

func (s *Screen) drawCentered(left, width, y int, text string, fg, bg termbox.Attribute) {
	text = runewidth.Truncate(text, width-2, "…")
	x := left + (width-runewidth.StringWidth(text))/2
	for _, ch := range text {
		termbox.SetCell(x, y, ch, fg, bg)
		x += runewidth.RuneWidth(ch)
	}
}

func (s *Screen) GetNextEvent() *hexed.Event {
	event := termbox.PollEvent()
	switch event.Type {
	case termbox.EventResize:
		termbox.Flush()
		return &hexed.Event{Type: hexed.EventResize}
	case termbox.EventMouse:
		return &hexed.Event{
			Type:  hexed.EventMouse,
			Mouse: mouseKind(event),
			X:     event.MouseX,
			Y:     event.MouseY,
		}
	default:
		return &hexed.Event{
			Type: hexed.EventKey,
			Key:  key(event.Key),
			Ch:   event.Ch,
			Mod:  modifiers(event.Mod),
		}
	}
}

func mouseKind(event termbox.Event) hexed.MouseKind {
	if event.Mod&termbox.ModMotion != 0 {
		return hexed.MouseMove
	}
	switch event.Key {
	case termbox.MouseRelease:
		return hexed.MouseRelease
	case termbox.MouseWheelUp:
		return hexed.MouseWheelUp
	case termbox.MouseWheelDown:
		return hexed.MouseWheelDown
	default:
		return hexed.MousePress
	}
}

func modifiers(mod termbox.Modifier) int {
	out := 0
	if mod&termbox.ModAlt != 0 {
		out |= hexed.ModAlt
	}
	if mod&termbox.ModMotion != 0 {
		out |= hexed.ModMotion
	}
	return out
}

func key(k termbox.Key) hexed.Key {
	switch k {
	case termbox.KeyArrowDown:
		return hexed.KeyArrowDown
	case termbox.KeyArrowLeft:
		return hexed.KeyArrowLeft
	case termbox.KeyArrowRight:
		return hexed.KeyArrowRight
	case termbox.KeyArrowUp:
		return hexed.KeyArrowUp
	case termbox.KeyBackspace2:
		return hexed.KeyBackspace2
	case termbox.KeyDelete:
		return hexed.KeyDelete
	case termbox.KeyCtrlC:
		return hexed.KeyCtrlC
	case termbox.KeyCtrlG:
		return hexed.KeyCtrlG
	case termbox.KeyCtrlL:
		return hexed.KeyCtrlL
	case termbox.KeyCtrlQ:
		return hexed.KeyCtrlQ
	case termbox.KeyCtrlR:
		return hexed.KeyCtrlR
	case termbox.KeyCtrlS:
		return hexed.KeyCtrlS
	case termbox.KeyCtrlX:
		return hexed.KeyCtrlX
	case termbox.KeyCtrlZ:
		return hexed.KeyCtrlZ
	case termbox.KeyEnd:
		return hexed.KeyEnd
	case termbox.KeyEnter:
		return hexed.KeyEnter
	case termbox.KeyEsc:
		return hexed.KeyEsc
	case termbox.KeyHome:
		return hexed.KeyHome
	case termbox.KeyPgdn:
		return hexed.KeyPgdn
	case termbox.KeyPgup:
		return hexed.KeyPgup
	case termbox.KeySpace:
		return hexed.KeySpace
	case termbox.KeyTab:
		return hexed.KeyTab
	default:
		return hexed.KeyUnsupported
	}
}
