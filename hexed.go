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

// hexed is a hex editor for the terminal.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"golang.org/x/term"

	"github.com/hexed/hexed/commander"
	"github.com/hexed/hexed/config"
	"github.com/hexed/hexed/editor"
	"github.com/hexed/hexed/logger"
	"github.com/hexed/hexed/plugin"
	"github.com/hexed/hexed/screen"
	hexed "github.com/hexed/hexed/types"
)

var version = "dev"

func main() {
	var configPath, pluginDir, evalPath string
	var readOnly, showVersion bool
	flag.StringVar(&configPath, "config", "", "configuration file")
	flag.StringVar(&pluginDir, "plugins", "", "plugin directory (overrides configuration)")
	flag.StringVar(&evalPath, "eval", "", "evaluate a lisp file and exit")
	flag.BoolVar(&readOnly, "readonly", false, "open the file read-only")
	flag.BoolVar(&showVersion, "version", false, "print the version and exit")
	flag.Parse()

	if showVersion {
		fmt.Println("hexed", version)
		return
	}

	home, _ := os.UserHomeDir()
	if configPath == "" {
		configPath = filepath.Join(home, ".hexed", "config.yaml")
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if pluginDir == "" {
		pluginDir = config.ExpandHome(cfg.PluginDir)
	}

	// send debug log messages to a file
	logfile, err := os.OpenFile(filepath.Join(home, ".hexedlog"),
		os.O_RDWR|os.O_CREATE|os.O_APPEND, 0666)
	if err == nil {
		defer logfile.Close()
		log.SetOutput(logfile)
	}

	notifications := logger.NewLogger()
	host := plugin.NewHost(notifications)
	host.Register(plugin.NewEventLogger())
	scripts, err := plugin.LoadDirectory(pluginDir)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	for _, script := range scripts {
		host.Register(script)
	}

	layout := hexed.Layout{BlockSize: cfg.BlockSize, BlocksPerRow: cfg.BlocksPerRow}
	e := editor.NewEditor(layout)
	e.Buffer.SetReadOnly(readOnly || cfg.ReadOnly)
	e.SetEventSink(host)

	if flag.NArg() > 0 {
		if err := e.ReadFile(flag.Arg(0)); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}

	// batch mode: run a script against the loaded file and print the log
	if evalPath != "" {
		value, err := host.EvalFile(evalPath)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		for _, entry := range notifications.Tail(notifications.Len()) {
			fmt.Println(entry.String())
		}
		if value != "" {
			fmt.Println(value)
		}
		return
	}

	if !term.IsTerminal(int(os.Stdin.Fd())) {
		fmt.Fprintln(os.Stderr, "hexed requires a terminal")
		os.Exit(1)
	}

	// open the terminal
	s := screen.NewScreen()
	if s == nil {
		os.Exit(1)
	}
	defer s.Close()

	c := commander.NewCommander(e, host, notifications)
	host.SetPopupFunc(c.OpenPluginPopup)

	// main event loop: plugins see every key and mouse event before the
	// commander interprets it
	for c.IsRunning() {
		s.Render(e, c)
		event := s.GetNextEvent()
		if event == nil {
			continue
		}
		switch event.Type {
		case hexed.EventKey:
			host.DispatchKey(*event, e.GetBuffer(), e.CursorOffset())
		case hexed.EventMouse:
			host.DispatchMouse(event.Mouse, event.X, event.Y)
		}
		if err := c.ProcessEvent(event); err != nil {
			log.Output(1, err.Error())
		}
	}
}
