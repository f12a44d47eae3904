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
package plugin

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/steelseries/golisp"

	hexed "github.com/hexed/hexed/types"
)

// Lisp plugins are source files that define some of the hook functions
// on-open, on-save, on-edit, on-key, and on-mouse. All scripts share one
// interpreter, so hook and command names collide across scripts; the last
// definition wins.

// activeContext is the Context of the callback currently executing. The
// host dispatches on a single goroutine, so one slot is enough.
var activeContext Context

func init() {
	golisp.MakePrimitiveFunction("log", "2", logImpl)
	golisp.MakePrimitiveFunction("add-command", "2", addCommandImpl)
	golisp.MakePrimitiveFunction("remove-command", "1", removeCommandImpl)
	golisp.MakePrimitiveFunction("open-popup", "1", openPopupImpl)
}

func logImpl(args *golisp.Data, env *golisp.SymbolTableFrame) (*golisp.Data, error) {
	if activeContext == nil {
		return nil, errors.New("log requires an active callback")
	}
	level := golisp.Car(args)
	if !golisp.IntegerP(level) {
		return nil, errors.New("log requires an integer level")
	}
	message := golisp.Cadr(args)
	if !golisp.StringP(message) {
		return nil, errors.New("log requires a string message")
	}
	activeContext.Log(hexed.Level(golisp.IntegerValue(level)), golisp.StringValue(message))
	return nil, nil
}

func addCommandImpl(args *golisp.Data, env *golisp.SymbolTableFrame) (*golisp.Data, error) {
	if activeContext == nil {
		return nil, errors.New("add-command requires an active callback")
	}
	name := golisp.Car(args)
	description := golisp.Cadr(args)
	if !golisp.StringP(name) || !golisp.StringP(description) {
		return nil, errors.New("add-command requires a name and a description")
	}
	if err := activeContext.AddCommand(golisp.StringValue(name), golisp.StringValue(description)); err != nil {
		return nil, err
	}
	return nil, nil
}

func removeCommandImpl(args *golisp.Data, env *golisp.SymbolTableFrame) (*golisp.Data, error) {
	if activeContext == nil {
		return nil, errors.New("remove-command requires an active callback")
	}
	name := golisp.Car(args)
	if !golisp.StringP(name) {
		return nil, errors.New("remove-command requires a name")
	}
	if err := activeContext.RemoveCommand(golisp.StringValue(name)); err != nil {
		return nil, err
	}
	return nil, nil
}

func openPopupImpl(args *golisp.Data, env *golisp.SymbolTableFrame) (*golisp.Data, error) {
	if activeContext == nil {
		return nil, errors.New("open-popup requires an active callback")
	}
	text := golisp.Car(args)
	if !golisp.StringP(text) {
		return nil, errors.New("open-popup requires a string")
	}
	if err := activeContext.OpenPopup(golisp.StringValue(text)); err != nil {
		return nil, err
	}
	return nil, nil
}

// A ScriptPlugin adapts a Lisp source file to the Plugin interface.
type ScriptPlugin struct {
	name  string
	hooks map[string]bool
}

// LoadScript evaluates a plugin source file and records which hooks it
// defines. A script defining no hooks is still a valid plugin.
func LoadScript(path string) (*ScriptPlugin, error) {
	if _, err := golisp.ProcessFile(path); err != nil {
		return nil, fmt.Errorf("loading plugin %s: %v", path, err)
	}
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	p := &ScriptPlugin{name: name, hooks: make(map[string]bool)}
	for _, hook := range []string{"on-open", "on-save", "on-edit", "on-key", "on-mouse"} {
		value := golisp.Global.ValueOf(golisp.SymbolWithName(hook))
		if value != nil && golisp.FunctionP(value) {
			p.hooks[hook] = true
		}
	}
	return p, nil
}

// LoadDirectory loads every *.lsp file in dir. A missing directory means
// no plugins.
func LoadDirectory(dir string) ([]*ScriptPlugin, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	var plugins []*ScriptPlugin
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".lsp") {
			continue
		}
		p, err := LoadScript(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, err
		}
		plugins = append(plugins, p)
	}
	return plugins, nil
}

func (p *ScriptPlugin) Name() string {
	return p.name
}

// call evaluates one hook invocation with ctx active. Script errors are
// logged, never raised; faults inside a callback are the host's concern.
func (p *ScriptPlugin) call(ctx Context, source string) {
	prev := activeContext
	activeContext = ctx
	defer func() { activeContext = prev }()
	if _, err := golisp.ParseAndEval(source); err != nil {
		ctx.Log(hexed.LogError, fmt.Sprintf("plugin %s: %v", p.name, err))
	}
}

func (p *ScriptPlugin) OnOpen(data hexed.Buffer, ctx Context) {
	if !p.hooks["on-open"] {
		return
	}
	p.call(ctx, fmt.Sprintf("(on-open %d)", data.Length()))
}

func (p *ScriptPlugin) OnSave(data hexed.Buffer, ctx Context) {
	if !p.hooks["on-save"] {
		return
	}
	p.call(ctx, fmt.Sprintf("(on-save %d)", data.Length()))
}

func (p *ScriptPlugin) OnEdit(data hexed.Buffer, offset int, newBytes []byte, ctx Context) {
	if !p.hooks["on-edit"] {
		return
	}
	values := make([]string, len(newBytes))
	for i, b := range newBytes {
		values[i] = strconv.Itoa(int(b))
	}
	p.call(ctx, fmt.Sprintf("(on-edit %d (list %s))", offset, strings.Join(values, " ")))
}

func (p *ScriptPlugin) OnKey(event hexed.Event, data hexed.Buffer, currentByte int, ctx Context) {
	if !p.hooks["on-key"] {
		return
	}
	p.call(ctx, fmt.Sprintf("(on-key %d %d %d)", event.Code(), event.Mod, currentByte))
}

func (p *ScriptPlugin) OnMouse(kind hexed.MouseKind, x int, y int, ctx Context) {
	if !p.hooks["on-mouse"] {
		return
	}
	p.call(ctx, fmt.Sprintf("(on-mouse %q %d %d)", kind.String(), x, y))
}

// RunCommand calls the script function exported under name.
func (p *ScriptPlugin) RunCommand(name string, ctx Context) error {
	prev := activeContext
	activeContext = ctx
	defer func() { activeContext = prev }()
	_, err := golisp.ParseAndEval("(" + name + ")")
	return err
}

// Eval evaluates one expression from the Lisp command line. The expression
// gets a context without an owning plugin: it can log but not export
// commands.
func (h *Host) Eval(text string) string {
	prev := activeContext
	activeContext = &hostContext{host: h, plugin: -1}
	defer func() { activeContext = prev }()
	value, err := golisp.ParseAndEval(text)
	if err != nil {
		return fmt.Sprintf("ERR %v", err)
	}
	return golisp.String(value)
}

// EvalFile runs a script file, for --eval batch mode.
func (h *Host) EvalFile(path string) (string, error) {
	prev := activeContext
	activeContext = &hostContext{host: h, plugin: -1}
	defer func() { activeContext = prev }()
	value, err := golisp.ProcessFile(path)
	if err != nil {
		return "", err
	}
	return golisp.String(value), nil
}
