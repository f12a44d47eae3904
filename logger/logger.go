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

// Package logger collects the session's notifications. The newest entry is
// shown in the message bar; the rest are available through the log popup.
package logger

import (
	"fmt"

	hexed "github.com/hexed/hexed/types"
)

const defaultCapacity = 256

type Entry struct {
	Level   hexed.Level
	Message string
}

func (e Entry) String() string {
	return fmt.Sprintf("[%s] %s", e.Level, e.Message)
}

type Logger struct {
	entries  []Entry
	capacity int
}

func NewLogger() *Logger {
	return &Logger{capacity: defaultCapacity}
}

func (l *Logger) Log(level hexed.Level, message string) {
	l.entries = append(l.entries, Entry{Level: level, Message: message})
	if len(l.entries) > l.capacity {
		l.entries = l.entries[len(l.entries)-l.capacity:]
	}
}

// Latest returns the most recent entry.
func (l *Logger) Latest() (Entry, bool) {
	if len(l.entries) == 0 {
		return Entry{}, false
	}
	return l.entries[len(l.entries)-1], true
}

// Tail returns up to n of the most recent entries, oldest first.
func (l *Logger) Tail(n int) []Entry {
	if n <= 0 || len(l.entries) == 0 {
		return nil
	}
	if n > len(l.entries) {
		n = len(l.entries)
	}
	out := make([]Entry, n)
	copy(out, l.entries[len(l.entries)-n:])
	return out
}

func (l *Logger) Len() int {
	return len(l.entries)
}
