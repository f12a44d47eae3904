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
package logger

import (
	"fmt"
	"testing"

	hexed "github.com/hexed/hexed/types"
)

func TestEntryString(t *testing.T) {
	entry := Entry{Level: hexed.LogInfo, Message: "hello"}
	if entry.String() != "[info] hello" {
		t.Errorf("unexpected entry text: %q", entry.String())
	}
}

func TestLatestAndTail(t *testing.T) {
	l := NewLogger()
	if _, ok := l.Latest(); ok {
		t.Error("an empty log has no latest entry")
	}
	l.Log(hexed.LogInfo, "one")
	l.Log(hexed.LogWarning, "two")
	l.Log(hexed.LogError, "three")

	entry, ok := l.Latest()
	if !ok || entry.Message != "three" {
		t.Errorf("unexpected latest entry: %v %v", entry, ok)
	}
	tail := l.Tail(2)
	if len(tail) != 2 || tail[0].Message != "two" || tail[1].Message != "three" {
		t.Errorf("unexpected tail: %v", tail)
	}
	if got := l.Tail(100); len(got) != 3 {
		t.Errorf("expected the whole log, got %d entries", len(got))
	}
	if l.Tail(0) != nil {
		t.Error("a zero tail should be empty")
	}
}

func TestCapacityTrim(t *testing.T) {
	l := NewLogger()
	for i := 0; i < defaultCapacity+10; i++ {
		l.Log(hexed.LogDebug, fmt.Sprintf("entry %d", i))
	}
	if l.Len() != defaultCapacity {
		t.Errorf("expected %d entries, got %d", defaultCapacity, l.Len())
	}
	entry, _ := l.Latest()
	if entry.Message != fmt.Sprintf("entry %d", defaultCapacity+9) {
		t.Errorf("unexpected latest entry: %q", entry.Message)
	}
}
