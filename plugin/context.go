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
	"fmt"

	hexed "github.com/hexed/hexed/types"
)

// hostContext is the Context built for a single callback. The plugin index
// is -1 when the evaluation has no owning plugin (the Lisp command line).
type hostContext struct {
	host   *Host
	plugin int
}

func (c *hostContext) Log(level hexed.Level, message string) {
	c.host.log.Log(level, message)
}

func (c *hostContext) AddCommand(name string, description string) error {
	if c.plugin < 0 || c.plugin >= len(c.host.plugins) {
		return fmt.Errorf("only plugins can export commands")
	}
	owner := c.host.plugins[c.plugin]
	if _, ok := owner.(CommandRunner); !ok {
		return fmt.Errorf("plugin %s cannot run commands but tried to export %q", owner.Name(), name)
	}
	if existing, ok := c.host.commands[name]; ok && existing.owner != c.plugin {
		return fmt.Errorf("command %q already exported by %s", name, c.host.plugins[existing.owner].Name())
	}
	c.host.commands[name] = &Command{Name: name, Description: description, owner: c.plugin}
	return nil
}

func (c *hostContext) RemoveCommand(name string) error {
	cmd, ok := c.host.commands[name]
	if !ok || cmd.owner != c.plugin {
		return fmt.Errorf("command %q not found", name)
	}
	delete(c.host.commands, name)
	return nil
}

func (c *hostContext) OpenPopup(text string) error {
	if c.host.popupFunc == nil {
		return fmt.Errorf("no popup surface available")
	}
	return c.host.popupFunc(text)
}
