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
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hexed/hexed/logger"
	hexed "github.com/hexed/hexed/types"
)

const testScript = `
(define (on-open length) (log 1 "script: opened"))
(define (on-save length) (add-command "hello" "say hello"))
(define (hello) (log 1 "script: hello"))
`

func writeScript(t *testing.T, name string, source string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(source), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

// The interpreter is shared, so one test walks a script through its whole
// life: loading, hooks, and command export.
func TestScriptPlugin(t *testing.T) {
	path := writeScript(t, "tracer.lsp", testScript)
	p, err := LoadScript(path)
	require.NoError(t, err)
	assert.Equal(t, "tracer", p.Name())

	log := logger.NewLogger()
	host := NewHost(log)
	host.Register(p)
	buffer := testBuffer(8)

	host.BufferOpened(buffer)
	entry, ok := log.Latest()
	require.True(t, ok)
	assert.Equal(t, "script: opened", entry.Message)
	assert.Equal(t, hexed.LogInfo, entry.Level)

	// the script defines no mouse hook, so the dispatch is silent
	before := log.Len()
	host.DispatchMouse(hexed.MousePress, 1, 1)
	assert.Equal(t, before, log.Len())

	// saving exports the hello command, which then runs
	host.BufferSaved(buffer)
	require.True(t, host.HasCommand("hello"))
	require.NoError(t, host.RunCommand("hello"))
	entry, _ = log.Latest()
	assert.Equal(t, "script: hello", entry.Message)
}

func TestLoadScriptMissingFile(t *testing.T) {
	_, err := LoadScript(filepath.Join(t.TempDir(), "absent.lsp"))
	assert.Error(t, err)
}

func TestLoadDirectoryMissing(t *testing.T) {
	plugins, err := LoadDirectory(filepath.Join(t.TempDir(), "no-such-dir"))
	require.NoError(t, err)
	assert.Empty(t, plugins)
}

func TestHostEval(t *testing.T) {
	host := NewHost(logger.NewLogger())
	assert.Equal(t, "3", host.Eval("(+ 1 2)"))
	assert.Contains(t, host.Eval("(this-is-not-bound)"), "ERR")
}

func TestHostEvalCanLog(t *testing.T) {
	log := logger.NewLogger()
	host := NewHost(log)
	host.Eval(`(log 2 "from the command line")`)
	entry, ok := log.Latest()
	require.True(t, ok)
	assert.Equal(t, hexed.LogWarning, entry.Level)
	assert.Equal(t, "from the command line", entry.Message)
}
