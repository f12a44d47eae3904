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

// The EventLogger traces every host event to the notification log. Each
// callback makes exactly one Log call at the Info level and nothing else.
type EventLogger struct{}

func NewEventLogger() *EventLogger {
	return &EventLogger{}
}

func (*EventLogger) Name() string {
	return "event-logger"
}

func (*EventLogger) OnOpen(data hexed.Buffer, ctx Context) {
	ctx.Log(hexed.LogInfo, fmt.Sprintf("Data loaded: %dB", data.Length()))
}

func (*EventLogger) OnSave(data hexed.Buffer, ctx Context) {
	ctx.Log(hexed.LogInfo, fmt.Sprintf("Data saved: %dB", data.Length()))
}

func (*EventLogger) OnEdit(data hexed.Buffer, offset int, newBytes []byte, ctx Context) {
	ctx.Log(hexed.LogInfo, fmt.Sprintf("Data edited: @%d", offset))
}

func (*EventLogger) OnKey(event hexed.Event, data hexed.Buffer, currentByte int, ctx Context) {
	ctx.Log(hexed.LogInfo, fmt.Sprintf("Key event: %d+%d@%d", event.Code(), event.Mod, currentByte))
}

func (*EventLogger) OnMouse(kind hexed.MouseKind, x int, y int, ctx Context) {
	ctx.Log(hexed.LogInfo, fmt.Sprintf("Mouse event: %s@%d,%d", kind, x, y))
}
