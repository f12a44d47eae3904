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

// Package plugin dispatches host events to registered plugins. Plugins may
// be Go values or Lisp scripts; either way they receive the same five
// callbacks and a per-call Context capability.
package plugin

import (
	"fmt"
	"sort"

	"github.com/hexed/hexed/headers"
	"github.com/hexed/hexed/logger"
	hexed "github.com/hexed/hexed/types"
)

// A Context is the capability object handed to a plugin for the duration of
// a single callback. It is built per dispatch; plugins must not retain it.
type Context interface {
	Log(level hexed.Level, message string)
	AddCommand(name string, description string) error
	RemoveCommand(name string) error
	OpenPopup(text string) error
}

// A Plugin receives host events. Every callback runs synchronously on the
// host's event loop; the host ignores anything a callback does besides its
// Context calls, and invocation order across event kinds is host-determined.
type Plugin interface {
	Name() string
	OnOpen(data hexed.Buffer, ctx Context)
	OnSave(data hexed.Buffer, ctx Context)
	OnEdit(data hexed.Buffer, offset int, newBytes []byte, ctx Context)
	OnKey(event hexed.Event, data hexed.Buffer, currentByte int, ctx Context)
	OnMouse(kind hexed.MouseKind, x int, y int, ctx Context)
}

// A CommandRunner is a Plugin that can execute the commands it exports
// through Context.AddCommand.
type CommandRunner interface {
	RunCommand(name string, ctx Context) error
}

// Base is a Plugin with no behavior, for embedding.
type Base struct{}

func (Base) OnOpen(hexed.Buffer, Context)                  {}
func (Base) OnSave(hexed.Buffer, Context)                  {}
func (Base) OnEdit(hexed.Buffer, int, []byte, Context)     {}
func (Base) OnKey(hexed.Event, hexed.Buffer, int, Context) {}
func (Base) OnMouse(hexed.MouseKind, int, int, Context)    {}

// A Command is exported into command mode by a plugin.
type Command struct {
	Name        string
	Description string
	owner       int
}

// The Host owns the registered plugins and fans host events out to them.
// It also implements the editor's EventSink.
type Host struct {
	plugins   []Plugin
	log       *logger.Logger
	commands  map[string]*Command
	popupFunc func(text string) error
}

func NewHost(log *logger.Logger) *Host {
	return &Host{log: log, commands: make(map[string]*Command)}
}

func (h *Host) Register(p Plugin) {
	h.plugins = append(h.plugins, p)
}

// SetPopupFunc installs the surface Context.OpenPopup delegates to.
func (h *Host) SetPopupFunc(open func(text string) error) {
	h.popupFunc = open
}

// dispatch runs one callback with a fresh context, absorbing panics so a
// faulty plugin cannot take down the session.
func (h *Host) dispatch(index int, hook string, call func(ctx Context)) {
	defer func() {
		if r := recover(); r != nil {
			h.log.Log(hexed.LogError, fmt.Sprintf("plugin %s: panic in %s: %v", h.plugins[index].Name(), hook, r))
		}
	}()
	call(&hostContext{host: h, plugin: index})
}

func (h *Host) BufferOpened(data hexed.Buffer) {
	h.logHeaderInfo(data)
	for i, p := range h.plugins {
		h.dispatch(i, "on-open", func(ctx Context) { p.OnOpen(data, ctx) })
	}
}

func (h *Host) BufferSaved(data hexed.Buffer) {
	for i, p := range h.plugins {
		h.dispatch(i, "on-save", func(ctx Context) { p.OnSave(data, ctx) })
	}
}

func (h *Host) BufferEdited(data hexed.Buffer, offset int, newBytes []byte) {
	for i, p := range h.plugins {
		// each plugin gets its own copy of the new bytes
		edited := make([]byte, len(newBytes))
		copy(edited, newBytes)
		h.dispatch(i, "on-edit", func(ctx Context) { p.OnEdit(data, offset, edited, ctx) })
	}
}

func (h *Host) DispatchKey(event hexed.Event, data hexed.Buffer, currentByte int) {
	for i, p := range h.plugins {
		h.dispatch(i, "on-key", func(ctx Context) { p.OnKey(event, data, currentByte, ctx) })
	}
}

func (h *Host) DispatchMouse(kind hexed.MouseKind, x int, y int) {
	for i, p := range h.plugins {
		h.dispatch(i, "on-mouse", func(ctx Context) { p.OnMouse(kind, x, y, ctx) })
	}
}

// logHeaderInfo reports what kind of file was opened.
func (h *Host) logHeaderInfo(data hexed.Buffer) {
	info, ok := headers.Detect(data.Bytes())
	if !ok {
		h.log.Log(hexed.LogInfo, "No known executable header.")
		return
	}
	h.log.Log(hexed.LogInfo, fmt.Sprintf("File type: %s", info.Format))
	h.log.Log(hexed.LogInfo, fmt.Sprintf("Architecture: %s", info.Architecture))
	h.log.Log(hexed.LogInfo, fmt.Sprintf("Bitness: %d", info.Bitness))
	h.log.Log(hexed.LogInfo, fmt.Sprintf("Entry point: %#X", info.EntryPoint))
	for _, section := range info.Sections {
		h.log.Log(hexed.LogInfo, fmt.Sprintf("Section: %s", section))
	}
}

// Commands lists the exported commands sorted by name.
func (h *Host) Commands() []Command {
	out := make([]Command, 0, len(h.commands))
	for _, cmd := range h.commands {
		out = append(out, *cmd)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func (h *Host) HasCommand(name string) bool {
	_, ok := h.commands[name]
	return ok
}

// RunCommand executes a plugin-exported command.
func (h *Host) RunCommand(name string) (err error) {
	cmd, ok := h.commands[name]
	if !ok {
		return fmt.Errorf("command %q not found", name)
	}
	runner, ok := h.plugins[cmd.owner].(CommandRunner)
	if !ok {
		return fmt.Errorf("plugin %s cannot run command %q", h.plugins[cmd.owner].Name(), name)
	}
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("plugin %s: panic in command %q: %v", h.plugins[cmd.owner].Name(), name, r)
		}
	}()
	return runner.RunCommand(name, &hostContext{host: h, plugin: cmd.owner})
}
