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

// Package commander interprets key and mouse events as editing actions,
// commands, and popup answers.
package commander

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/hexed/hexed/editor"
	"github.com/hexed/hexed/logger"
	"github.com/hexed/hexed/operations"
	"github.com/hexed/hexed/plugin"
	hexed "github.com/hexed/hexed/types"
)

// popup kinds
const (
	popupNone = iota
	popupSave
	popupSaveAndQuit
	popupQuitDirty
	popupHelp
	popupLog
	popupPlugin
)

const logPopupLines = 12

// The Commander converts user input into editor operations, commands, and
// mode changes.
type Commander struct {
	editor    hexed.Editor
	host      *plugin.Host
	log       *logger.Logger
	mode      int
	command   string // command as it is being typed
	gotoText  string // offset as it is being typed
	lispText  string // lisp command as it is being typed
	message   string // status/error message to display
	popup     *hexed.Popup
	popupKind int
}

func NewCommander(e hexed.Editor, host *plugin.Host, log *logger.Logger) *Commander {
	return &Commander{editor: e, host: host, log: log, mode: hexed.ModeEdit}
}

func (c *Commander) IsRunning() bool {
	return c.mode != hexed.ModeQuit
}

func (c *Commander) GetMode() int {
	return c.mode
}

func (c *Commander) SetMode(m int) {
	c.mode = m
}

func (c *Commander) GetCommand() string {
	return c.command
}

func (c *Commander) GetGotoText() string {
	return c.gotoText
}

func (c *Commander) GetLispText() string {
	return c.lispText
}

// GetMessage is the text for the message bar: a transient command result if
// one is pending, otherwise the latest notification.
func (c *Commander) GetMessage() string {
	if c.message != "" {
		return c.message
	}
	if entry, ok := c.log.Latest(); ok {
		return entry.String()
	}
	return ""
}

func (c *Commander) GetPopup() *hexed.Popup {
	return c.popup
}

func (c *Commander) ProcessEvent(event *hexed.Event) error {
	switch event.Type {
	case hexed.EventKey:
		return c.ProcessKey(event)
	case hexed.EventMouse:
		return c.ProcessMouse(event)
	default:
		return nil
	}
}

func (c *Commander) ProcessKey(event *hexed.Event) error {
	if c.popup != nil {
		return c.processKeyPopup(event)
	}
	var err error
	switch c.mode {
	case hexed.ModeCommand:
		err = c.processKeyCommandMode(event)
	case hexed.ModeGoto:
		err = c.processKeyGotoMode(event)
	case hexed.ModeLisp:
		err = c.processKeyLispMode(event)
	default:
		err = c.processKeyEditMode(event)
	}
	return err
}

func (c *Commander) ProcessMouse(event *hexed.Event) error {
	if c.popup != nil {
		return nil
	}
	switch event.Mouse {
	case hexed.MouseWheelUp:
		c.editor.MoveCursor(hexed.MoveUp)
	case hexed.MouseWheelDown:
		c.editor.MoveCursor(hexed.MoveDown)
	case hexed.MousePress:
		c.moveCursorToCell(event.X, event.Y)
	}
	return nil
}

// moveCursorToCell puts the cursor on the byte shown at a screen position,
// in either the hex or the text pane.
func (c *Commander) moveCursorToCell(x, y int) {
	layout := c.editor.GetLayout()
	perRow := layout.BytesPerRow()
	row := y + c.editor.GetOffset().Rows
	hexCol, textCol := editor.PaneColumns(layout)

	var j int
	if x >= textCol && x < textCol+perRow {
		j = x - textCol
	} else if x >= hexCol {
		var ok bool
		j, ok = editor.HexPaneByteIndex(layout, x-hexCol)
		if !ok {
			return
		}
	} else {
		return
	}
	c.editor.GoToOffset(row*perRow + j)
}

func (c *Commander) processKeyEditMode(event *hexed.Event) error {
	c.message = ""
	if k := event.Key; k != 0 {
		switch k {
		case hexed.KeyArrowUp:
			c.editor.MoveCursor(hexed.MoveUp)
		case hexed.KeyArrowDown:
			c.editor.MoveCursor(hexed.MoveDown)
		case hexed.KeyArrowLeft:
			c.editor.MoveCursor(hexed.MoveLeft)
		case hexed.KeyArrowRight:
			c.editor.MoveCursor(hexed.MoveRight)
		case hexed.KeyPgup:
			c.editor.PageUp()
		case hexed.KeyPgdn:
			c.editor.PageDown()
		case hexed.KeyHome:
			c.editor.MoveToStartOfRow()
		case hexed.KeyEnd:
			c.editor.MoveToEndOfRow()
		case hexed.KeyDelete:
			c.editor.Perform(&operations.Delete{Count: 1})
		case hexed.KeyCtrlS:
			c.openSavePopup()
		case hexed.KeyCtrlX:
			c.openSaveAndQuitPopup()
		case hexed.KeyCtrlC, hexed.KeyCtrlQ:
			c.quit()
		case hexed.KeyCtrlL:
			c.openLogPopup()
		case hexed.KeyCtrlG:
			c.mode = hexed.ModeGoto
			c.gotoText = ""
		case hexed.KeyCtrlZ:
			c.editor.PerformUndo()
		case hexed.KeyCtrlR:
			c.editor.PerformRedo()
		}
	}
	if ch := event.Ch; ch != 0 {
		switch ch {
		case ':':
			c.mode = hexed.ModeCommand
			c.command = ""
		case 'g':
			c.mode = hexed.ModeGoto
			c.gotoText = ""
		case '(':
			c.mode = hexed.ModeLisp
			c.lispText = "("
		case '?':
			c.openHelpPopup()
		case 'h':
			c.editor.MoveCursor(hexed.MoveLeft)
		case 'j':
			c.editor.MoveCursor(hexed.MoveDown)
		case 'k':
			c.editor.MoveCursor(hexed.MoveUp)
		case 'l':
			c.editor.MoveCursor(hexed.MoveRight)
		case 'i':
			c.editor.Perform(&operations.Insert{Bytes: []byte{0x00}})
		case 'x':
			c.editor.Perform(&operations.Delete{Count: 1})
		case 'y':
			c.yank()
		case 'p':
			c.editor.Perform(&operations.Paste{})
		case 'u':
			c.editor.PerformUndo()
		case '.':
			c.editor.Repeat()
		default:
			if isHexDigit(ch) {
				c.enterHexDigit(ch)
			}
		}
	}
	return nil
}

func isHexDigit(ch rune) bool {
	return (ch >= '0' && ch <= '9') || (ch >= 'a' && ch <= 'f') || (ch >= 'A' && ch <= 'F')
}

func hexValue(ch rune) byte {
	switch {
	case ch >= '0' && ch <= '9':
		return byte(ch - '0')
	case ch >= 'a' && ch <= 'f':
		return byte(ch-'a') + 10
	default:
		return byte(ch-'A') + 10
	}
}

// enterHexDigit overwrites the nibble under the cursor and advances. Typing
// into an empty buffer starts it with one byte.
func (c *Commander) enterHexDigit(ch rune) {
	buffer := c.editor.GetBuffer()
	if buffer.GetReadOnly() {
		c.message = "buffer is read-only"
		return
	}
	if buffer.Length() == 0 {
		c.editor.Perform(&operations.Insert{Bytes: []byte{0x00}})
	}
	offset := c.editor.CursorOffset()
	current := buffer.ByteAt(offset)
	digit := hexValue(ch)
	var value byte
	if c.editor.GetCursor().Col%2 == 0 {
		value = digit<<4 | current&0x0f
	} else {
		value = current&0xf0 | digit
	}
	c.editor.Perform(&operations.SetByte{Value: value})
	c.editor.AdvanceNibble()
}

func (c *Commander) yank() {
	buffer := c.editor.GetBuffer()
	if buffer.Length() == 0 {
		return
	}
	c.editor.SetPasteBoard([]byte{buffer.ByteAt(c.editor.CursorOffset())})
}

func (c *Commander) processKeyGotoMode(event *hexed.Event) error {
	if k := event.Key; k != 0 {
		switch k {
		case hexed.KeyEsc:
			c.mode = hexed.ModeEdit
		case hexed.KeyEnter:
			c.goToTypedOffset()
			c.mode = hexed.ModeEdit
		case hexed.KeyBackspace2:
			if len(c.gotoText) > 0 {
				c.gotoText = c.gotoText[:len(c.gotoText)-1]
			}
		}
	}
	if ch := event.Ch; ch != 0 {
		if isHexDigit(ch) || ch == 'x' || ch == 'X' {
			c.gotoText += string(ch)
		}
	}
	return nil
}

func (c *Commander) goToTypedOffset() {
	offset, err := parseOffset(c.gotoText)
	if err != nil {
		c.message = fmt.Sprintf("bad offset %q", c.gotoText)
		return
	}
	c.editor.GoToOffset(offset)
}

// parseOffset reads a hexadecimal offset, with or without an 0x prefix.
func parseOffset(text string) (int, error) {
	text = strings.TrimPrefix(strings.ToLower(strings.TrimSpace(text)), "0x")
	if text == "" {
		return 0, fmt.Errorf("empty offset")
	}
	value, err := strconv.ParseInt(text, 16, 64)
	if err != nil {
		return 0, err
	}
	return int(value), nil
}

func (c *Commander) processKeyCommandMode(event *hexed.Event) error {
	if k := event.Key; k != 0 {
		switch k {
		case hexed.KeyEsc:
			c.mode = hexed.ModeEdit
		case hexed.KeyEnter:
			c.PerformCommand()
		case hexed.KeyBackspace2:
			if len(c.command) > 0 {
				c.command = c.command[:len(c.command)-1]
			}
		case hexed.KeySpace:
			c.command += " "
		}
	}
	if ch := event.Ch; ch != 0 {
		c.command += string(ch)
	}
	return nil
}

func (c *Commander) processKeyLispMode(event *hexed.Event) error {
	if k := event.Key; k != 0 {
		switch k {
		case hexed.KeyEsc:
			c.mode = hexed.ModeEdit
		case hexed.KeyEnter:
			c.message = c.host.Eval(c.lispText)
			c.lispText = ""
			c.mode = hexed.ModeEdit
		case hexed.KeyBackspace2:
			if len(c.lispText) > 0 {
				c.lispText = c.lispText[:len(c.lispText)-1]
			}
		case hexed.KeySpace:
			c.lispText += " "
		}
	}
	if ch := event.Ch; ch != 0 {
		c.lispText += string(ch)
	}
	return nil
}

func (c *Commander) PerformCommand() {
	command := c.command
	c.command = ""
	c.mode = hexed.ModeEdit
	c.message = ""

	parts := strings.Fields(command)
	if len(parts) == 0 {
		return
	}
	name := parts[0]
	args := parts[1:]

	switch name {
	case "w":
		c.save(args)
	case "q":
		c.quit()
	case "q!":
		c.mode = hexed.ModeQuit
	case "wq":
		if c.save(nil) {
			c.mode = hexed.ModeQuit
		}
	case "open":
		if len(args) == 0 {
			c.message = "open: missing file name"
			return
		}
		if err := c.editor.ReadFile(args[0]); err != nil {
			c.message = err.Error()
		}
	case "goto":
		if len(args) == 0 {
			c.message = "goto: missing offset"
			return
		}
		offset, err := parseOffset(args[0])
		if err != nil {
			c.message = fmt.Sprintf("bad offset %q", args[0])
			return
		}
		c.editor.GoToOffset(offset)
	case "help":
		c.openHelpPopup()
	case "log":
		c.openLogPopup()
	default:
		if c.host.HasCommand(name) {
			if err := c.host.RunCommand(name); err != nil {
				c.message = err.Error()
			}
			return
		}
		if suggestion := c.suggestCommand(name); suggestion != "" {
			c.message = fmt.Sprintf("unknown command %q (did you mean %q?)", name, suggestion)
		} else {
			c.message = fmt.Sprintf("unknown command %q", name)
		}
	}
}

var builtinCommands = []string{"w", "q", "q!", "wq", "open", "goto", "help", "log"}

// suggestCommand picks the first known command the typed name is a prefix
// or fragment of.
func (c *Commander) suggestCommand(name string) string {
	candidates := append([]string{}, builtinCommands...)
	for _, cmd := range c.host.Commands() {
		candidates = append(candidates, cmd.Name)
	}
	for _, candidate := range candidates {
		if strings.HasPrefix(candidate, name) {
			return candidate
		}
	}
	for _, candidate := range candidates {
		if strings.Contains(candidate, name) {
			return candidate
		}
	}
	return ""
}

// save writes the buffer to its file, or to a name given as an argument.
// It reports whether the write succeeded.
func (c *Commander) save(args []string) bool {
	path := c.editor.GetBuffer().GetFileName()
	if len(args) > 0 {
		path = args[0]
	}
	if path == "" {
		c.message = "no file name"
		return false
	}
	if err := c.editor.WriteFile(path); err != nil {
		c.message = err.Error()
		return false
	}
	return true
}

// quit leaves immediately unless the buffer has unsaved changes, in which
// case the user gets to decide.
func (c *Commander) quit() {
	if c.editor.GetBuffer().GetDirty() {
		c.openQuitDirtyPopup()
		return
	}
	c.mode = hexed.ModeQuit
}

// popups

func (c *Commander) openSavePopup() {
	c.popupKind = popupSave
	c.popup = &hexed.Popup{
		Title:   "Save",
		Lines:   []string{"The file will be saved."},
		Buttons: []string{"Yes", "No"},
	}
}

func (c *Commander) openSaveAndQuitPopup() {
	c.popupKind = popupSaveAndQuit
	c.popup = &hexed.Popup{
		Title:   "Save and Quit",
		Lines:   []string{"The file will be saved before quitting."},
		Buttons: []string{"Yes", "No"},
	}
}

func (c *Commander) openQuitDirtyPopup() {
	c.popupKind = popupQuitDirty
	c.popup = &hexed.Popup{
		Title:   "Quit",
		Lines:   []string{"The file has unsaved changes.", "Save before quitting?"},
		Buttons: []string{"Yes", "No", "Cancel"},
	}
}

func (c *Commander) openHelpPopup() {
	lines := []string{
		"0-9 a-f  set nibble      h j k l  move",
		"i insert   x delete   y yank   p paste",
		"u undo   ^R redo   . repeat   g goto   : command",
		"( lisp   ^S save   ^X save+quit   ^C quit   ^L log",
	}
	commands := c.host.Commands()
	if len(commands) > 0 {
		lines = append(lines, "")
		for _, cmd := range commands {
			lines = append(lines, fmt.Sprintf(":%s  %s", cmd.Name, cmd.Description))
		}
	}
	c.popupKind = popupHelp
	c.popup = &hexed.Popup{Title: "Help", Lines: lines, Buttons: []string{"Ok"}}
}

func (c *Commander) openLogPopup() {
	entries := c.log.Tail(logPopupLines)
	lines := make([]string, 0, len(entries))
	for _, entry := range entries {
		lines = append(lines, entry.String())
	}
	if len(lines) == 0 {
		lines = []string{"(empty)"}
	}
	c.popupKind = popupLog
	c.popup = &hexed.Popup{Title: "Log", Lines: lines, Buttons: []string{"Ok"}}
}

// OpenPluginPopup shows plugin-provided text. It is the surface behind
// Context.OpenPopup; only one popup can be up at a time.
func (c *Commander) OpenPluginPopup(text string) error {
	if c.popup != nil {
		return fmt.Errorf("a popup is already open")
	}
	c.popupKind = popupPlugin
	c.popup = &hexed.Popup{
		Title:   "Plugin",
		Lines:   strings.Split(text, "\n"),
		Buttons: []string{"Ok"},
	}
	return nil
}

func (c *Commander) closePopup() {
	c.popup = nil
	c.popupKind = popupNone
}

func (c *Commander) processKeyPopup(event *hexed.Event) error {
	switch event.Key {
	case hexed.KeyArrowLeft:
		if c.popup.Selected > 0 {
			c.popup.Selected--
		}
	case hexed.KeyArrowRight:
		if c.popup.Selected < len(c.popup.Buttons)-1 {
			c.popup.Selected++
		}
	case hexed.KeyEnter:
		c.confirmPopup()
	case hexed.KeyEsc:
		c.closePopup()
	}
	return nil
}

func (c *Commander) confirmPopup() {
	kind := c.popupKind
	selected := c.popup.Selected
	button := c.popup.Buttons[selected]
	c.closePopup()

	switch kind {
	case popupSave:
		if button == "Yes" {
			c.save(nil)
		}
	case popupSaveAndQuit:
		if button == "Yes" && c.save(nil) {
			c.mode = hexed.ModeQuit
		}
	case popupQuitDirty:
		switch button {
		case "Yes":
			if c.save(nil) {
				c.mode = hexed.ModeQuit
			}
		case "No":
			c.mode = hexed.ModeQuit
		}
	}
}
